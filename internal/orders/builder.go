package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"farmacia_back_end/internal/cart"
	"farmacia_back_end/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrCarritoVacio   = errors.New("el carrito está vacío")
	ErrEmailRequerido = errors.New("el correo electrónico es obligatorio")
)

// Build arma el pedido a partir del carrito de la sesión. Cada línea se
// vuelve a resolver contra el producto actual: el precio es el de este
// momento, no el que vio el usuario al agregar. Las líneas cuyo producto
// ya no existe se omiten; `descartadas` lo reporta para que el handler
// lo registre y lo mencione al usuario.
//
// Build no persiste ni vacía el carrito; eso es del handler.
func Build(ctx context.Context, r cart.ProductResolver, carrito map[string]int, email, address string) (order *models.Order, descartadas int, err error) {
	if len(carrito) == 0 {
		return nil, 0, ErrCarritoVacio
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, 0, ErrEmailRequerido
	}

	order = &models.Order{
		UserEmail: email,
		Address:   strings.TrimSpace(address),
		Items:     []models.OrderItem{},
		Status:    models.OrderStatusPendiente,
		CreatedAt: time.Now().UTC(),
	}

	for id, qty := range carrito {
		p, rerr := r.ProductByID(ctx, id)
		if rerr != nil {
			descartadas++
			continue
		}
		subtotal := p.Price * float64(qty)
		order.Items = append(order.Items, models.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Qty:       qty,
			Price:     p.Price,
			Subtotal:  subtotal,
		})
		order.Total += subtotal
	}

	return order, descartadas, nil
}

// CarritoDesdePedido reconstruye un carrito con las líneas de un pedido
// anterior (reordenar).
func CarritoDesdePedido(order *models.Order) map[string]int {
	carrito := map[string]int{}
	for _, item := range order.Items {
		if item.ProductID == primitive.NilObjectID {
			continue
		}
		qty := item.Qty
		if qty < 1 {
			qty = 1
		}
		carrito[item.ProductID.Hex()] = qty
	}
	return carrito
}
