package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"farmacia_back_end/internal/database"
	"farmacia_back_end/internal/models"
	"farmacia_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Index muestra el catálogo, con búsqueda opcional por ?q=.
func Index(c *gin.Context) {
	query := c.Query("q")

	var productos []models.Product
	var err error

	if !database.Disponible() {
		render(c, http.StatusOK, "index.html", gin.H{"Productos": productos, "Query": query})
		return
	}

	if query != "" {
		productos, err = services.BuscarProductos(c.Request.Context(), query)
	} else {
		productos, err = services.ListarProductos(c.Request.Context())
	}
	if err != nil {
		log.Println("❌ Error cargando catálogo:", err)
	}

	render(c, http.StatusOK, "index.html", gin.H{"Productos": productos, "Query": query})
}

// ProductDetail muestra la página de un producto.
func ProductDetail(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		flashRedirect(c, "ID de producto inválido", "/")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var producto models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&producto); err != nil {
		flashRedirect(c, "Producto no encontrado", "/")
		return
	}

	render(c, http.StatusOK, "product_detail.html", gin.H{"Producto": producto})
}
