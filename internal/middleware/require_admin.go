package middleware

import (
	"net/http"

	"farmacia_back_end/internal/models"
	"farmacia_back_end/internal/session"
	"farmacia_back_end/internal/users"

	"github.com/gin-gonic/gin"
)

// RequireAdmin verifica que el usuario de la sesión tenga rol "admin".
// La sesión solo guarda id y email, así que el rol se consulta en la
// base; con sesión pero sin rol de admin se regresa al catálogo.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := users.Get(c.Request.Context(), c.GetString("user_id"))
		if u == nil || u.Role != models.RoleAdmin {
			session.Flash(c, "Acceso reservado a administradores")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
