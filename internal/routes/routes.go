package routes

import (
	"os"

	"farmacia_back_end/internal/handlers"
	"farmacia_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Catálogo
	r.GET("/", handlers.Index)
	r.GET("/product/:id", handlers.ProductDetail)
	r.GET("/images/:filename", handlers.ServeImage)

	// Carrito
	r.GET("/cart", handlers.ViewCart)
	r.POST("/cart/add/:id", handlers.AddToCart)
	r.POST("/cart/update/:id", handlers.UpdateCart)
	r.GET("/cart/remove/:id", handlers.RemoveFromCart)

	// Checkout
	r.GET("/checkout", handlers.CheckoutForm)
	r.POST("/checkout", handlers.CheckoutSubmit)

	// Cuenta
	r.GET("/register", handlers.RegisterForm)
	r.POST("/register", handlers.Register)
	r.GET("/login", handlers.LoginForm)
	r.POST("/login", middleware.LoginRateLimit(), handlers.Login)
	r.GET("/logout", handlers.Logout)

	// Recetas
	r.GET("/prescription/upload", handlers.UploadPrescriptionForm)
	r.POST("/prescription/upload", handlers.UploadPrescription)

	// Perfil (requiere sesión)
	perfil := r.Group("/profile", middleware.AuthRequired())
	{
		perfil.GET("", handlers.Profile)
		perfil.GET("/order-history", handlers.OrderHistory)
		perfil.GET("/order/:id", handlers.OrderDetail)
		perfil.POST("/order/:id/reorder", handlers.Reorder)
		perfil.GET("/order/:id/invoice", handlers.OrderInvoice)
		perfil.GET("/order/:id/qr", handlers.OrderQR)
		perfil.GET("/edit", handlers.EditProfile)
		perfil.POST("/edit", handlers.EditProfile)
		perfil.GET("/change-password", handlers.ChangePassword)
		perfil.POST("/change-password", handlers.ChangePassword)
		perfil.GET("/notifications", handlers.NotificationSettings)
		perfil.POST("/notifications", handlers.NotificationSettings)
		perfil.GET("/prescriptions", handlers.MyPrescriptions)
		perfil.GET("/addresses", handlers.MyAddresses)
	}

	// Administración (requiere sesión + rol admin)
	admin := r.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin())
	{
		admin.GET("/products", handlers.AdminProducts)
		admin.POST("/products", handlers.AdminProducts)
		admin.POST("/products/delete/:id", handlers.DeleteProduct)
		admin.GET("/products/edit/:id", handlers.EditProduct)
		admin.POST("/products/edit/:id", handlers.EditProduct)

		// Solo en desarrollo
		if os.Getenv("DEBUG") == "true" {
			admin.GET("/clean", handlers.AdminClean)
			admin.GET("/migrate-users", handlers.MigrateUsers)
		}
	}

	r.NoRoute(handlers.NotFound)
}
