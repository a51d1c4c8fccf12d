package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"farmacia_back_end/internal/database"
	"farmacia_back_end/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cookiesConSesion genera las cookies de una sesión iniciada, como lo
// haría un login exitoso.
func cookiesConSesion(t *testing.T, id, email string) []*http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	session.SetUser(c, id, email)

	return w.Result().Cookies()
}

func servir(t *testing.T, r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredSinSesion(t *testing.T) {
	gin.SetMode(gin.TestMode)
	session.Init("clave-de-prueba")

	r := gin.New()
	r.GET("/profile", AuthRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "perfil")
	})

	w := servir(t, r, httptest.NewRequest(http.MethodGet, "/profile", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "perfil")
}

func TestAuthRequiredConSesion(t *testing.T) {
	gin.SetMode(gin.TestMode)
	session.Init("clave-de-prueba")

	var userID, email string
	r := gin.New()
	r.GET("/profile", AuthRequired(), func(c *gin.Context) {
		userID = c.GetString("user_id")
		email = c.GetString("email")
		c.String(http.StatusOK, "perfil")
	})

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	for _, ck := range cookiesConSesion(t, "abc123", "cliente@ejemplo.com") {
		req.AddCookie(ck)
	}
	w := servir(t, r, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc123", userID)
	assert.Equal(t, "cliente@ejemplo.com", email)
}

func TestRequireAdminRechazaSesionSinRolVerificable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	session.Init("clave-de-prueba")

	// Sin base de datos el rol no se puede confirmar: la sesión por sí
	// sola nunca abre las rutas de administración.
	require.Nil(t, database.Mongo)

	alcanzado := false
	r := gin.New()
	r.GET("/admin/products", AuthRequired(), RequireAdmin(), func(c *gin.Context) {
		alcanzado = true
		c.String(http.StatusOK, "panel")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	for _, ck := range cookiesConSesion(t, "abc123", "cliente@ejemplo.com") {
		req.AddCookie(ck)
	}
	w := servir(t, r, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.False(t, alcanzado)
}

func TestLoginRateLimitSinRedisDejaPasar(t *testing.T) {
	gin.SetMode(gin.TestMode)
	session.Init("clave-de-prueba")

	require.Nil(t, database.Redis)

	r := gin.New()
	r.POST("/login", LoginRateLimit(), func(c *gin.Context) {
		c.String(http.StatusOK, "login")
	})

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader("email=cliente@ejemplo.com&password=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := servir(t, r, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "login", w.Body.String())
}

func TestLoginRateLimitIgnoraGET(t *testing.T) {
	gin.SetMode(gin.TestMode)
	session.Init("clave-de-prueba")

	r := gin.New()
	r.GET("/login", LoginRateLimit(), func(c *gin.Context) {
		c.String(http.StatusOK, "formulario")
	})

	w := servir(t, r, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "formulario", w.Body.String())
}
