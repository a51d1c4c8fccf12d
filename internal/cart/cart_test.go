package cart

import (
	"context"
	"testing"

	"farmacia_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalogoFalso resuelve contra un mapa en memoria.
type catalogoFalso map[string]*models.Product

func (f catalogoFalso) ProductByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := f[id]
	if !ok {
		return nil, ErrProductoInexistente
	}
	return p, nil
}

func catalogoDePrueba() catalogoFalso {
	return catalogoFalso{
		"p1": {Name: "Paracetamol 500mg", Price: 10.00},
		"p2": {Name: "Vitamina C 1g", Price: 5.00},
	}
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	catalogo := catalogoDePrueba()
	carrito := map[string]int{}

	p, err := Add(ctx, catalogo, carrito, "p1", 2)
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol 500mg", p.Name)
	assert.Equal(t, 2, carrito["p1"])

	// Agregar de nuevo incrementa, no reemplaza
	_, err = Add(ctx, catalogo, carrito, "p1", 3)
	require.NoError(t, err)
	assert.Equal(t, 5, carrito["p1"])
}

func TestAddCantidadInvalida(t *testing.T) {
	carrito := map[string]int{}

	_, err := Add(context.Background(), catalogoDePrueba(), carrito, "p1", 0)
	assert.ErrorIs(t, err, ErrCantidadInvalida)
	assert.Empty(t, carrito)

	_, err = Add(context.Background(), catalogoDePrueba(), carrito, "p1", -4)
	assert.ErrorIs(t, err, ErrCantidadInvalida)
	assert.Empty(t, carrito)
}

func TestAddProductoInexistente(t *testing.T) {
	carrito := map[string]int{}

	_, err := Add(context.Background(), catalogoDePrueba(), carrito, "no-existe", 1)
	assert.ErrorIs(t, err, ErrProductoInexistente)
	assert.Empty(t, carrito)
}

func TestUpdate(t *testing.T) {
	carrito := map[string]int{"p1": 2}

	Update(carrito, "p1", 7)
	assert.Equal(t, 7, carrito["p1"])

	// Cero o negativo elimina la línea
	Update(carrito, "p1", 0)
	assert.NotContains(t, carrito, "p1")

	carrito["p2"] = 1
	Update(carrito, "p2", -3)
	assert.NotContains(t, carrito, "p2")
}

func TestRemove(t *testing.T) {
	carrito := map[string]int{"p1": 2}

	Remove(carrito, "p1")
	assert.Empty(t, carrito)

	// Quitar algo que no está no truena
	Remove(carrito, "p1")
	assert.Empty(t, carrito)
}

func TestResolve(t *testing.T) {
	carrito := map[string]int{"p1": 2, "p2": 1}

	lines, total := Resolve(context.Background(), catalogoDePrueba(), carrito)
	require.Len(t, lines, 2)
	assert.InDelta(t, 25.00, total, 0.001)

	subtotales := map[string]float64{}
	for _, l := range lines {
		subtotales[l.ID] = l.Subtotal
	}
	assert.InDelta(t, 20.00, subtotales["p1"], 0.001)
	assert.InDelta(t, 5.00, subtotales["p2"], 0.001)
}

func TestResolveExcluyeProductosRetirados(t *testing.T) {
	carrito := map[string]int{"p1": 2, "retirado": 9}

	lines, total := Resolve(context.Background(), catalogoDePrueba(), carrito)
	require.Len(t, lines, 1)
	assert.Equal(t, "p1", lines[0].ID)
	assert.InDelta(t, 20.00, total, 0.001)

	// El carrito no se muta: la línea retirada sigue ahí
	assert.Equal(t, 9, carrito["retirado"])
}
