package handlers

import (
	"testing"
	"time"

	"farmacia_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdicionProductoCubreTodosLosCampos(t *testing.T) {
	// El documento indexado en Elastic y el $set de Mongo salen de la
	// misma edición en memoria: si difieren, las búsquedas por
	// descripción o categoría regresan texto viejo.
	producto := models.Product{
		Name:        "Ibuprofeno 400mg",
		Price:       52.00,
		Description: "Nueva presentación con 20 cápsulas",
		Category:    "analgesicos",
		Image:       "20240101_120000_abc12345_ibu.png",
		Active:      false,
		UpdatedAt:   time.Now().UTC(),
	}

	update := edicionProducto(producto)

	require.Len(t, update, 7)
	assert.Equal(t, producto.Name, update["name"])
	assert.Equal(t, producto.Price, update["price"])
	assert.Equal(t, producto.Description, update["description"])
	assert.Equal(t, producto.Category, update["category"])
	assert.Equal(t, producto.Image, update["image"])
	assert.Equal(t, producto.Active, update["active"])
	assert.Equal(t, producto.UpdatedAt, update["updated_at"])
}
