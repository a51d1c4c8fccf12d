package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"farmacia_back_end/internal/database"
	"farmacia_back_end/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	LoginMaxAttempts = 5
	LoginCooldown    = 15 * time.Minute
)

// LoginRateLimit limita los intentos de login por email usando Redis.
// Sin Redis configurado no limita nada. El handler de login marca el
// resultado con c.Set("login_failed", true) cuando las credenciales
// no sirven.
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if database.Redis == nil || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		email := c.PostForm("email")
		if email == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "login_attempts:" + email
		cooldownKey := "login_cooldown:" + email

		if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.Redis.TTL(ctx, cooldownKey).Val()
			session.Flash(c, fmt.Sprintf("Demasiados intentos fallidos. Intenta de nuevo en %d minutos", int(ttl.Minutes())+1))
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		attempts, _ := database.Redis.Get(ctx, key).Int()
		if attempts >= LoginMaxAttempts {
			database.Redis.Set(ctx, cooldownKey, "1", LoginCooldown)
			database.Redis.Del(ctx, key)
			session.Flash(c, fmt.Sprintf("Demasiados intentos fallidos. Cuenta bloqueada %d minutos", int(LoginCooldown.Minutes())))
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Next()

		if c.GetBool("login_failed") {
			database.Redis.Incr(ctx, key)
			database.Redis.Expire(ctx, key, LoginCooldown)
		} else {
			database.Redis.Del(ctx, key)
			database.Redis.Del(ctx, cooldownKey)
		}
	}
}
