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
	"farmacia_back_end/internal/session"
	"farmacia_back_end/internal/users"
	"farmacia_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// ================== REGISTRO ==================

func RegisterForm(c *gin.Context) {
	render(c, http.StatusOK, "register.html", nil)
}

func Register(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	if email == "" || password == "" {
		flashRedirect(c, "Por favor completa todos los campos requeridos", "/register")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	// ¿email ya registrado?
	var existing models.User
	if err := database.Users().FindOne(ctx, bson.M{"email": email}).Decode(&existing); err == nil {
		flashRedirect(c, "Usuario ya existe", "/login")
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Println("❌ Error hasheando contraseña:", err)
		flashRedirect(c, "Error en el registro", "/register")
		return
	}

	user := models.User{
		Email:         email,
		Password:      hashed,
		Nombre:        strings.TrimSpace(c.PostForm("nombre")),
		Apellido:      strings.TrimSpace(c.PostForm("apellido")),
		Telefono:      strings.TrimSpace(c.PostForm("telefono")),
		Role:          models.RoleUser,
		Notifications: users.DefaultNotificaciones(),
		Direccion:     users.DefaultDireccion(),
		CreatedAt:     time.Now().UTC(),
	}

	if _, err := database.Users().InsertOne(ctx, user); err != nil {
		log.Println("❌ Error creando usuario:", err)
		flashRedirect(c, "Error en el registro", "/register")
		return
	}

	flashRedirect(c, "✅ Registro exitoso, por favor inicia sesión", "/login")
}

// ================== LOGIN / LOGOUT ==================

func LoginForm(c *gin.Context) {
	render(c, http.StatusOK, "login.html", nil)
}

func Login(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	// Mensaje genérico en ambos casos: no distinguimos email desconocido
	// de contraseña incorrecta.
	var user models.User
	err := database.Users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		loginFallido(c)
		return
	}

	ok, err := utils.VerifyPassword(password, user.Password)
	if err != nil || !ok {
		loginFallido(c)
		return
	}

	// Migración perezosa: las cuentas viejas guardaban la contraseña en
	// texto plano; con el login exitoso se rehashea de una vez.
	if !utils.IsArgon2Hash(user.Password) {
		if hashed, herr := utils.HashPassword(password); herr == nil {
			_, _ = database.Users().UpdateOne(ctx,
				bson.M{"_id": user.ID},
				bson.M{"$set": bson.M{"password": hashed, "updated_at": time.Now().UTC()}})
			log.Printf("🔒 Contraseña migrada a Argon2 para %s", user.Email)
		}
	}

	session.SetUser(c, user.ID.Hex(), user.Email)
	flashRedirect(c, fmt.Sprintf("✅ Bienvenido %s", user.NombreCompleto()), "/")
}

func loginFallido(c *gin.Context) {
	c.Set("login_failed", true)
	flashRedirect(c, "❌ Credenciales incorrectas", "/login")
}

func Logout(c *gin.Context) {
	session.ClearUser(c)
	flashRedirect(c, "Sesión cerrada", "/")
}
