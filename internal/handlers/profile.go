package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"farmacia_back_end/internal/database"
	"farmacia_back_end/internal/models"
	"farmacia_back_end/internal/orders"
	"farmacia_back_end/internal/services"
	"farmacia_back_end/internal/session"
	"farmacia_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//
// GET /profile
//
func Profile(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	user := currentUser(c)
	if user == nil {
		flashRedirect(c, "Usuario no encontrado", "/login")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	pedidos := pedidosDelUsuario(ctx, user.Email, 5)
	recetas := recetasDelUsuario(ctx, user.Email)

	render(c, http.StatusOK, "profile.html", gin.H{
		"User":          user,
		"Orders":        pedidos,
		"Prescriptions": recetas,
	})
}

//
// GET /profile/order-history
//
func OrderHistory(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	user := currentUser(c)
	if user == nil {
		flashRedirect(c, "Usuario no encontrado", "/login")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	pedidos := pedidosDelUsuario(ctx, user.Email, 0)

	totalGastado := 0.0
	pendientes, completados := 0, 0
	for _, o := range pedidos {
		totalGastado += o.Total
		switch o.Status {
		case models.OrderStatusPendiente:
			pendientes++
		case models.OrderStatusCompletado:
			completados++
		}
	}

	render(c, http.StatusOK, "order_history.html", gin.H{
		"User":            user,
		"Orders":          pedidos,
		"TotalOrders":     len(pedidos),
		"TotalSpent":      totalGastado,
		"PendingOrders":   pendientes,
		"CompletedOrders": completados,
	})
}

//
// GET /profile/order/:id
//
func OrderDetail(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	user := currentUser(c)
	if user == nil {
		flashRedirect(c, "Usuario no encontrado", "/login")
		return
	}

	order := pedidoDelUsuario(c, user)
	if order == nil {
		return
	}

	render(c, http.StatusOK, "order_detail.html", gin.H{"User": user, "Order": order})
}

//
// POST /profile/order/:id/reorder
//
func Reorder(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	user := currentUser(c)
	if user == nil {
		flashRedirect(c, "Usuario no encontrado", "/login")
		return
	}

	order := pedidoDelUsuario(c, user)
	if order == nil {
		return
	}

	session.SetCart(c, orders.CarritoDesdePedido(order))
	flashRedirect(c, "✅ Productos añadidos al carrito. Revisa y completa tu pedido.", "/cart")
}

//
// GET /profile/order/:id/invoice — nota del pedido en PDF
//
func OrderInvoice(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	user := currentUser(c)
	if user == nil {
		flashRedirect(c, "Usuario no encontrado", "/login")
		return
	}

	order := pedidoDelUsuario(c, user)
	if order == nil {
		return
	}

	pdf, err := services.FacturaPDF(order)
	if err != nil {
		log.Println("❌ Error generando PDF:", err)
		flashRedirect(c, "❌ No se pudo generar la nota del pedido", "/profile/order/"+order.ID.Hex())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="pedido_%s.pdf"`, order.ID.Hex()))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

//
// GET /profile/order/:id/qr — código QR de recolección
//
func OrderQR(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	user := currentUser(c)
	if user == nil {
		flashRedirect(c, "Usuario no encontrado", "/login")
		return
	}

	order := pedidoDelUsuario(c, user)
	if order == nil {
		return
	}

	png, err := services.QRPedido(order)
	if err != nil {
		flashRedirect(c, "❌ No se pudo generar el código QR", "/profile/order/"+order.ID.Hex())
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

//
// GET|POST /profile/edit
//
func EditProfile(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	user := currentUser(c)
	if user == nil {
		flashRedirect(c, "Usuario no encontrado", "/login")
		return
	}

	if c.Request.Method == http.MethodGet {
		render(c, http.StatusOK, "edit_profile.html", gin.H{"User": user})
		return
	}

	update := bson.M{
		"nombre":           strings.TrimSpace(c.PostForm("nombre")),
		"apellido":         strings.TrimSpace(c.PostForm("apellido")),
		"telefono":         strings.TrimSpace(c.PostForm("telefono")),
		"fecha_nacimiento": c.PostForm("fecha_nacimiento"),
		"genero":           c.PostForm("genero"),
		"direccion": models.Direccion{
			Calle:          strings.TrimSpace(c.PostForm("calle")),
			NumeroExterior: strings.TrimSpace(c.PostForm("numero_exterior")),
			NumeroInterior: strings.TrimSpace(c.PostForm("numero_interior")),
			Colonia:        strings.TrimSpace(c.PostForm("colonia")),
			Ciudad:         c.DefaultPostForm("ciudad", "Guadalajara"),
			Estado:         c.DefaultPostForm("estado", "Jalisco"),
			CodigoPostal:   strings.TrimSpace(c.PostForm("codigo_postal")),
			Referencias:    strings.TrimSpace(c.PostForm("referencias")),
		},
		"updated_at": time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := database.Users().UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": update}); err != nil {
		log.Println("❌ Error actualizando perfil:", err)
		flashRedirect(c, "❌ Error al actualizar el perfil", "/profile/edit")
		return
	}

	flashRedirect(c, "✅ Perfil actualizado correctamente", "/profile")
}

//
// GET|POST /profile/change-password
//
func ChangePassword(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	user := currentUser(c)
	if user == nil {
		flashRedirect(c, "Usuario no encontrado", "/login")
		return
	}

	if c.Request.Method == http.MethodGet {
		render(c, http.StatusOK, "change_password.html", nil)
		return
	}

	actual := c.PostForm("current_password")
	nueva := c.PostForm("new_password")
	confirmacion := c.PostForm("confirm_password")

	if ok, err := utils.VerifyPassword(actual, user.Password); err != nil || !ok {
		flashRedirect(c, "❌ La contraseña actual es incorrecta", "/profile/change-password")
		return
	}
	if nueva != confirmacion {
		flashRedirect(c, "❌ Las nuevas contraseñas no coinciden", "/profile/change-password")
		return
	}
	if len(nueva) < 6 {
		flashRedirect(c, "❌ La contraseña debe tener al menos 6 caracteres", "/profile/change-password")
		return
	}

	hashed, err := utils.HashPassword(nueva)
	if err != nil {
		flashRedirect(c, "❌ Error al cambiar la contraseña", "/profile/change-password")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	_, err = database.Users().UpdateOne(ctx, bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"password": hashed, "updated_at": time.Now().UTC()}})
	if err != nil {
		log.Println("❌ Error cambiando contraseña:", err)
		flashRedirect(c, "❌ Error al cambiar la contraseña", "/profile/change-password")
		return
	}

	flashRedirect(c, "✅ Contraseña actualizada correctamente", "/profile")
}

//
// GET|POST /profile/notifications
//
func NotificationSettings(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	user := currentUser(c)
	if user == nil {
		flashRedirect(c, "Usuario no encontrado", "/login")
		return
	}

	if c.Request.Method == http.MethodGet {
		render(c, http.StatusOK, "notification_settings.html", gin.H{"User": user})
		return
	}

	// Checkbox sin marcar no viaja en el form: presencia == activado.
	prefs := models.Notificaciones{
		EmailPromociones:  c.PostForm("email_promociones") != "",
		EmailPedidos:      c.PostForm("email_pedidos") != "",
		EmailRecetas:      c.PostForm("email_recetas") != "",
		SMSNotificaciones: c.PostForm("sms_notificaciones") != "",
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	_, err := database.Users().UpdateOne(ctx, bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"notifications": prefs, "updated_at": time.Now().UTC()}})
	if err != nil {
		log.Println("❌ Error actualizando notificaciones:", err)
		flashRedirect(c, "❌ Error al actualizar la configuración", "/profile/notifications")
		return
	}

	flashRedirect(c, "✅ Configuración de notificaciones actualizada", "/profile")
}

//
// GET /profile/prescriptions
//
func MyPrescriptions(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	user := currentUser(c)
	if user == nil {
		flashRedirect(c, "Usuario no encontrado", "/login")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	recetas := recetasDelUsuario(ctx, user.Email)
	render(c, http.StatusOK, "my_prescriptions.html", gin.H{"User": user, "Prescriptions": recetas})
}

//
// GET /profile/addresses
//
func MyAddresses(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	user := currentUser(c)
	if user == nil {
		flashRedirect(c, "Usuario no encontrado", "/login")
		return
	}

	render(c, http.StatusOK, "my_addresses.html", gin.H{"User": user})
}

// ================== HELPERS ==================

// pedidoDelUsuario busca el pedido del path verificando que pertenezca
// al usuario de la sesión. Responde con redirect y devuelve nil si no.
func pedidoDelUsuario(c *gin.Context, user *models.User) *models.Order {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		flashRedirect(c, "ID de pedido inválido", "/profile/order-history")
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var order models.Order
	err = database.Orders().FindOne(ctx, bson.M{"_id": oid, "user_email": user.Email}).Decode(&order)
	if err != nil {
		flashRedirect(c, "Pedido no encontrado", "/profile/order-history")
		return nil
	}
	return &order
}

func pedidosDelUsuario(ctx context.Context, email string, limit int64) []models.Order {
	opts := optionsFindDesc("created_at")
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := database.Orders().Find(ctx, bson.M{"user_email": email}, opts)
	if err != nil {
		log.Println("❌ Error obteniendo pedidos:", err)
		return nil
	}
	defer cursor.Close(ctx)

	var pedidos []models.Order
	if err := cursor.All(ctx, &pedidos); err != nil {
		log.Println("❌ Error decodificando pedidos:", err)
		return nil
	}
	return pedidos
}

func recetasDelUsuario(ctx context.Context, email string) []models.Prescription {
	cursor, err := database.Prescriptions().Find(ctx, bson.M{"email": email}, optionsFindDesc("uploaded_at"))
	if err != nil {
		log.Println("❌ Error obteniendo recetas:", err)
		return nil
	}
	defer cursor.Close(ctx)

	var recetas []models.Prescription
	if err := cursor.All(ctx, &recetas); err != nil {
		log.Println("❌ Error decodificando recetas:", err)
		return nil
	}
	return recetas
}
