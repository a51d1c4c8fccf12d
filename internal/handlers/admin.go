package handlers

import (
	"context"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"farmacia_back_end/internal/database"
	"farmacia_back_end/internal/models"
	"farmacia_back_end/internal/services"
	"farmacia_back_end/internal/storage"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//
// GET|POST /admin/products — listado y alta de productos
//
func AdminProducts(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	if c.Request.Method == http.MethodPost {
		crearProducto(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cursor, err := database.Products().Find(ctx, bson.M{}, optionsFindDesc("created_at"))
	var productos []models.Product
	if err == nil {
		defer cursor.Close(ctx)
		if err := cursor.All(ctx, &productos); err != nil {
			log.Println("❌ Error leyendo productos:", err)
		}
	}

	render(c, http.StatusOK, "admin_products.html", gin.H{"Productos": productos})
}

func crearProducto(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	priceStr := c.PostForm("price")
	desc := strings.TrimSpace(c.PostForm("description"))
	category := strings.TrimSpace(c.DefaultPostForm("category", "general"))

	if name == "" || priceStr == "" {
		flashRedirect(c, "Nombre y precio son obligatorios", "/admin/products")
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		flashRedirect(c, "Precio inválido", "/admin/products")
		return
	}
	if price <= 0 {
		flashRedirect(c, "El precio debe ser mayor a 0", "/admin/products")
		return
	}

	filename, ok := guardarImagen(c, "/admin/products")
	if !ok {
		return
	}

	producto := models.Product{
		Name:        name,
		Price:       price,
		Description: desc,
		Category:    category,
		Image:       filename,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	result, err := database.Products().InsertOne(ctx, producto)
	if err != nil {
		log.Println("❌ Error creando producto:", err)
		flashRedirect(c, "Error al crear producto", "/admin/products")
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		producto.ID = oid
	}

	services.InvalidarCatalogo(ctx)
	go services.IndexProduct(producto)

	flashRedirect(c, "✅ Producto creado exitosamente", "/admin/products")
}

//
// POST /admin/products/delete/:id
//
func DeleteProduct(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		flashRedirect(c, "Producto no encontrado", "/admin/products")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var producto models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&producto); err != nil {
		flashRedirect(c, "Producto no encontrado", "/admin/products")
		return
	}

	result, err := database.Products().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil || result.DeletedCount == 0 {
		flashRedirect(c, "❌ Error al eliminar el producto", "/admin/products")
		return
	}

	// La imagen se borra en el mejor esfuerzo: un fallo se registra
	// pero nunca bloquea la eliminación del producto.
	if producto.Image != "" {
		if err := storage.Activo().Remove(ctx, producto.Image); err != nil {
			log.Println("⚠️ Error eliminando imagen:", err)
		}
	}

	services.InvalidarCatalogo(ctx)
	services.RemoveFromIndex(oid.Hex())

	flashRedirect(c, "✅ Producto eliminado correctamente", "/admin/products")
}

//
// GET|POST /admin/products/edit/:id
//
func EditProduct(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		flashRedirect(c, "Producto no encontrado", "/admin/products")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var producto models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&producto); err != nil {
		flashRedirect(c, "Producto no encontrado", "/admin/products")
		return
	}

	if c.Request.Method == http.MethodGet {
		render(c, http.StatusOK, "edit_product.html", gin.H{"Producto": producto})
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if name == "" || err != nil || price <= 0 {
		flashRedirect(c, "Nombre y precio válido son obligatorios", "/admin/products/edit/"+oid.Hex())
		return
	}

	// La edición se aplica primero sobre el documento decodificado; de
	// ahí salen tanto el $set de Mongo como el documento que va al
	// índice, para que nunca diverjan.
	producto.Name = name
	producto.Price = price
	producto.Description = strings.TrimSpace(c.PostForm("description"))
	producto.Category = strings.TrimSpace(c.DefaultPostForm("category", "general"))
	producto.Active = c.PostForm("active") != ""
	producto.UpdatedAt = time.Now().UTC()

	// Imagen nueva: se elimina la anterior (mejor esfuerzo) antes de
	// guardar la de reemplazo.
	if fileHeader, ferr := c.FormFile("image"); ferr == nil && fileHeader.Filename != "" {
		if !storage.ExtensionPermitida(fileHeader.Filename) {
			flashRedirect(c, "Tipo de imagen no permitido", "/admin/products/edit/"+oid.Hex())
			return
		}
		if producto.Image != "" {
			if err := storage.Activo().Remove(ctx, producto.Image); err != nil {
				log.Println("⚠️ Error eliminando imagen anterior:", err)
			}
		}
		filename, ok := subirArchivo(c, fileHeader, "/admin/products/edit/"+oid.Hex())
		if !ok {
			return
		}
		producto.Image = filename
	}

	if _, err := database.Products().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": edicionProducto(producto)}); err != nil {
		log.Println("❌ Error actualizando producto:", err)
		flashRedirect(c, "❌ Error al actualizar el producto", "/admin/products/edit/"+oid.Hex())
		return
	}

	services.InvalidarCatalogo(ctx)
	go services.IndexProduct(producto)

	flashRedirect(c, "✅ Producto actualizado correctamente", "/admin/products")
}

// edicionProducto arma el $set de una edición a partir del documento
// ya actualizado en memoria.
func edicionProducto(p models.Product) bson.M {
	return bson.M{
		"name":        p.Name,
		"price":       p.Price,
		"description": p.Description,
		"category":    p.Category,
		"image":       p.Image,
		"active":      p.Active,
		"updated_at":  p.UpdatedAt,
	}
}

// guardarImagen procesa la imagen opcional del alta de producto.
// Devuelve el nombre almacenado ("" si no subieron imagen) y false si ya
// respondió con un error.
func guardarImagen(c *gin.Context, backTo string) (string, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil || fileHeader.Filename == "" {
		return "", true
	}
	if !storage.ExtensionPermitida(fileHeader.Filename) {
		flashRedirect(c, "Tipo de imagen no permitido", backTo)
		return "", false
	}
	return subirArchivo(c, fileHeader, backTo)
}

func subirArchivo(c *gin.Context, fileHeader *multipart.FileHeader, backTo string) (string, bool) {
	f, err := fileHeader.Open()
	if err != nil {
		flashRedirect(c, "Error al guardar la imagen", backTo)
		return "", false
	}
	defer f.Close()

	filename := storage.NombreAlmacenado(fileHeader.Filename)
	err = storage.Activo().Save(c.Request.Context(), filename, f, fileHeader.Size,
		fileHeader.Header.Get("Content-Type"))
	if err != nil {
		log.Println("❌ Error guardando imagen:", err)
		flashRedirect(c, "Error al guardar la imagen", backTo)
		return "", false
	}
	return filename, true
}
