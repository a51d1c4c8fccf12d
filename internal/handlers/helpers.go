package handlers

import (
	"net/http"
	"time"

	"farmacia_back_end/internal/database"
	"farmacia_back_end/internal/models"
	"farmacia_back_end/internal/session"
	"farmacia_back_end/internal/users"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func optionsFindDesc(field string) *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: field, Value: -1}})
}

// render pinta una plantilla con los datos comunes de todas las vistas:
// mensajes flash, email de la sesión y año actual para el pie de página.
func render(c *gin.Context, status int, template string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flashes"] = session.TakeFlashes(c)
	data["UserEmail"] = session.UserEmail(c)
	data["LoggedIn"] = session.UserID(c) != ""
	data["CurrentYear"] = time.Now().Year()
	c.HTML(status, template, data)
}

func flashRedirect(c *gin.Context, msg, path string) {
	session.Flash(c, msg)
	c.Redirect(http.StatusFound, path)
}

// NotFound es la página 404 y el handler NoRoute del router.
func NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404.html", nil)
}

// currentUser devuelve el usuario de la sesión ya normalizado, o nil.
func currentUser(c *gin.Context) *models.User {
	return users.Get(c.Request.Context(), session.UserID(c))
}

// sinBaseDeDatos corta la operación cuando el servidor arrancó sin
// MONGO_URI. Devuelve true si ya respondió.
func sinBaseDeDatos(c *gin.Context) bool {
	if database.Disponible() {
		return false
	}
	flashRedirect(c, "⚠️ Base de datos no disponible", "/")
	return true
}
