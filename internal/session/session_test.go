package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contexto(t *testing.T, cookies []*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		c.Request.AddCookie(ck)
	}
	return c, w
}

// reenvía las cookies de la respuesta a un request nuevo, como lo
// haría el navegador.
func siguienteRequest(t *testing.T, w *httptest.ResponseRecorder) *gin.Context {
	t.Helper()
	res := w.Result()
	// el navegador conserva solo la última cookie con cada nombre
	ultimas := map[string]*http.Cookie{}
	orden := []string{}
	for _, ck := range res.Cookies() {
		if _, visto := ultimas[ck.Name]; !visto {
			orden = append(orden, ck.Name)
		}
		ultimas[ck.Name] = ck
	}
	cookies := make([]*http.Cookie, 0, len(orden))
	for _, nombre := range orden {
		cookies = append(cookies, ultimas[nombre])
	}
	c, _ := contexto(t, cookies)
	return c
}

func TestUsuarioEnSesion(t *testing.T) {
	Init("clave-de-prueba")

	c, w := contexto(t, nil)
	SetUser(c, "abc123", "cliente@ejemplo.com")

	c2 := siguienteRequest(t, w)
	assert.Equal(t, "abc123", UserID(c2))
	assert.Equal(t, "cliente@ejemplo.com", UserEmail(c2))
}

func TestClearUser(t *testing.T) {
	Init("clave-de-prueba")

	c, w := contexto(t, nil)
	SetUser(c, "abc123", "cliente@ejemplo.com")

	c2, w2 := contexto(t, w.Result().Cookies())
	ClearUser(c2)

	c3 := siguienteRequest(t, w2)
	assert.Empty(t, UserID(c3))
	assert.Empty(t, UserEmail(c3))
}

func TestCarritoRoundTrip(t *testing.T) {
	Init("clave-de-prueba")

	c, w := contexto(t, nil)
	SetCart(c, map[string]int{"p1": 2, "p2": 1})

	c2 := siguienteRequest(t, w)
	carrito := Cart(c2)
	require.Len(t, carrito, 2)
	assert.Equal(t, 2, carrito["p1"])
	assert.Equal(t, 1, carrito["p2"])
}

func TestCartNuncaNil(t *testing.T) {
	Init("clave-de-prueba")

	c, _ := contexto(t, nil)
	carrito := Cart(c)
	require.NotNil(t, carrito)
	assert.Empty(t, carrito)
}

func TestFlashesSeConsumen(t *testing.T) {
	Init("clave-de-prueba")

	c, w := contexto(t, nil)
	Flash(c, "✅ Bienvenido")
	Flash(c, "Carrito actualizado")

	c2 := siguienteRequest(t, w)
	msgs := TakeFlashes(c2)
	require.Len(t, msgs, 2)
	assert.Equal(t, "✅ Bienvenido", msgs[0])

	assert.Empty(t, TakeFlashes(c2), "los flashes se consumen al leerse")
}
