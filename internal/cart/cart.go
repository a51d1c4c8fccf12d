package cart

import (
	"context"
	"errors"
	"time"

	"farmacia_back_end/internal/database"
	"farmacia_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrCantidadInvalida   = errors.New("la cantidad debe ser mayor a 0")
	ErrProductoInexistente = errors.New("producto no encontrado")
)

// ProductResolver resuelve un id de producto contra el catálogo actual.
// Devuelve ErrProductoInexistente (o cualquier error) cuando el id ya no
// corresponde a un producto.
type ProductResolver interface {
	ProductByID(ctx context.Context, id string) (*models.Product, error)
}

// Line es una línea del carrito ya resuelta contra el catálogo.
type Line struct {
	ID       string
	Producto *models.Product
	Cantidad int
	Subtotal float64
}

// Add incrementa la cantidad del producto en el carrito, validando que
// exista y que la cantidad sea positiva. Si falla no muta el carrito.
func Add(ctx context.Context, r ProductResolver, cart map[string]int, id string, cantidad int) (*models.Product, error) {
	if cantidad < 1 {
		return nil, ErrCantidadInvalida
	}
	p, err := r.ProductByID(ctx, id)
	if err != nil {
		return nil, ErrProductoInexistente
	}
	cart[id] += cantidad
	return p, nil
}

// Update fija (no incrementa) la cantidad; cero o negativo elimina la línea.
func Update(cart map[string]int, id string, cantidad int) {
	if cantidad <= 0 {
		delete(cart, id)
		return
	}
	cart[id] = cantidad
}

// Remove quita la línea si existe; si no, no pasa nada.
func Remove(cart map[string]int, id string) {
	delete(cart, id)
}

// Resolve materializa cada línea contra el producto actual. Las líneas
// cuyo producto ya no resuelve se excluyen del resultado y del total,
// pero el carrito subyacente no se toca.
func Resolve(ctx context.Context, r ProductResolver, cart map[string]int) ([]Line, float64) {
	var lines []Line
	total := 0.0
	for id, qty := range cart {
		p, err := r.ProductByID(ctx, id)
		if err != nil {
			continue
		}
		subtotal := p.Price * float64(qty)
		total += subtotal
		lines = append(lines, Line{ID: id, Producto: p, Cantidad: qty, Subtotal: subtotal})
	}
	return lines, total
}

// MongoResolver busca productos en la colección products.
type MongoResolver struct{}

func (MongoResolver) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	if !database.Disponible() {
		return nil, ErrProductoInexistente
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductoInexistente
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		return nil, ErrProductoInexistente
	}
	return &p, nil
}
