package middleware

import (
	"net/http"

	"farmacia_back_end/internal/session"

	"github.com/gin-gonic/gin"
)

// AuthRequired exige sesión iniciada. El id y el email quedan en el
// contexto de Gin para los handlers.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := session.UserID(c)
		if userID == "" {
			session.Flash(c, "Por favor inicia sesión")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("email", session.UserEmail(c))
		c.Next()
	}
}
