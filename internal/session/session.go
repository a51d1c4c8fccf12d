package session

import (
	"encoding/gob"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

// La sesión vive en la cookie, igual que en la versión anterior de la
// tienda: id y email del usuario, el carrito y los mensajes flash.
const Name = "farmacia_session"

const (
	keyUser      = "user"
	keyUserEmail = "user_email"
	keyCart      = "cart"
)

var Store *sessions.CookieStore

func init() {
	// gorilla/sessions serializa con gob; el carrito es un mapa simple.
	gob.Register(map[string]int{})
}

func Init(secret string) {
	if secret == "" {
		secret = "dev-secret-key-123"
		log.Println("⚠️  SECRET_KEY no configurada — usando clave de desarrollo")
	}

	Store = sessions.NewCookieStore([]byte(secret))
	Store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   false, // true detrás de HTTPS en producción
		SameSite: http.SameSiteLaxMode,
	}
}

// Get devuelve la sesión del request; gorilla la cachea por request,
// así que llamadas repetidas dentro del mismo handler ven lo mismo.
func Get(c *gin.Context) *sessions.Session {
	s, _ := Store.Get(c.Request, Name)
	return s
}

func Save(c *gin.Context, s *sessions.Session) {
	if err := s.Save(c.Request, c.Writer); err != nil {
		log.Println("❌ Error guardando sesión:", err)
	}
}

// --- Usuario ---

func UserID(c *gin.Context) string {
	s := Get(c)
	id, _ := s.Values[keyUser].(string)
	return id
}

func UserEmail(c *gin.Context) string {
	s := Get(c)
	email, _ := s.Values[keyUserEmail].(string)
	return email
}

func SetUser(c *gin.Context, id, email string) {
	s := Get(c)
	s.Values[keyUser] = id
	s.Values[keyUserEmail] = email
	Save(c, s)
}

func ClearUser(c *gin.Context) {
	s := Get(c)
	delete(s.Values, keyUser)
	delete(s.Values, keyUserEmail)
	Save(c, s)
}

// --- Carrito ---

// Cart devuelve el mapa producto→cantidad guardado en la sesión.
// Nunca devuelve nil.
func Cart(c *gin.Context) map[string]int {
	s := Get(c)
	cart, ok := s.Values[keyCart].(map[string]int)
	if !ok || cart == nil {
		return map[string]int{}
	}
	return cart
}

func SetCart(c *gin.Context, cart map[string]int) {
	s := Get(c)
	s.Values[keyCart] = cart
	Save(c, s)
}

func ClearCart(c *gin.Context) {
	SetCart(c, map[string]int{})
}

// --- Mensajes flash ---

func Flash(c *gin.Context, msg string) {
	s := Get(c)
	s.AddFlash(msg)
	Save(c, s)
}

// TakeFlashes devuelve y consume los mensajes pendientes.
func TakeFlashes(c *gin.Context) []string {
	s := Get(c)
	raw := s.Flashes()
	if len(raw) > 0 {
		Save(c, s)
	}
	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if m, ok := f.(string); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}
