package orders

import (
	"context"
	"testing"

	"farmacia_back_end/internal/cart"
	"farmacia_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type catalogoFalso map[string]*models.Product

func (f catalogoFalso) ProductByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := f[id]
	if !ok {
		return nil, cart.ErrProductoInexistente
	}
	return p, nil
}

func catalogoDePrueba() catalogoFalso {
	return catalogoFalso{
		"p1": {ID: primitive.NewObjectID(), Name: "Paracetamol 500mg", Price: 10.00},
		"p2": {ID: primitive.NewObjectID(), Name: "Vitamina C 1g", Price: 5.00},
	}
}

func TestBuildCarritoVacio(t *testing.T) {
	_, _, err := Build(context.Background(), catalogoDePrueba(), map[string]int{}, "a@b.com", "")
	assert.ErrorIs(t, err, ErrCarritoVacio)
}

func TestBuildEmailRequerido(t *testing.T) {
	carrito := map[string]int{"p1": 1}

	_, _, err := Build(context.Background(), catalogoDePrueba(), carrito, "", "")
	assert.ErrorIs(t, err, ErrEmailRequerido)

	_, _, err = Build(context.Background(), catalogoDePrueba(), carrito, "   ", "")
	assert.ErrorIs(t, err, ErrEmailRequerido)
}

func TestBuild(t *testing.T) {
	carrito := map[string]int{"p1": 2, "p2": 1}

	order, descartadas, err := Build(context.Background(), catalogoDePrueba(), carrito,
		"cliente@ejemplo.com", "Av. Juárez 123")
	require.NoError(t, err)
	assert.Zero(t, descartadas)

	assert.Equal(t, "cliente@ejemplo.com", order.UserEmail)
	assert.Equal(t, "Av. Juárez 123", order.Address)
	assert.Equal(t, models.OrderStatusPendiente, order.Status)
	assert.False(t, order.CreatedAt.IsZero())
	require.Len(t, order.Items, 2)
	assert.InDelta(t, 25.00, order.Total, 0.001)
}

func TestBuildRepreciaContraCatalogoActual(t *testing.T) {
	catalogo := catalogoDePrueba()
	catalogo["p1"].Price = 12.50

	order, _, err := Build(context.Background(), catalogo, map[string]int{"p1": 2},
		"cliente@ejemplo.com", "")
	require.NoError(t, err)
	assert.InDelta(t, 25.00, order.Total, 0.001)
}

func TestBuildOmiteProductosRetirados(t *testing.T) {
	carrito := map[string]int{"p1": 2, "retirado": 3, "otro-retirado": 1}

	order, descartadas, err := Build(context.Background(), catalogoDePrueba(), carrito,
		"cliente@ejemplo.com", "")
	require.NoError(t, err)
	assert.Equal(t, 2, descartadas)
	require.Len(t, order.Items, 1)
	assert.InDelta(t, 20.00, order.Total, 0.001)
}

func TestCarritoDesdePedido(t *testing.T) {
	id1 := primitive.NewObjectID()
	id2 := primitive.NewObjectID()

	order := &models.Order{Items: []models.OrderItem{
		{ProductID: id1, Qty: 3},
		{ProductID: id2, Qty: 0},
		{ProductID: primitive.NilObjectID, Qty: 2},
	}}

	carrito := CarritoDesdePedido(order)
	require.Len(t, carrito, 2)
	assert.Equal(t, 3, carrito[id1.Hex()])
	// Cantidades degeneradas se normalizan a 1
	assert.Equal(t, 1, carrito[id2.Hex()])
}
