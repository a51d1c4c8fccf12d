package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderStatusPendiente  = "pendiente"
	OrderStatusCompletado = "completado"
)

// OrderItem es una copia inmutable del producto al momento de la compra:
// cambios posteriores de precio o nombre no afectan pedidos ya creados.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Name      string             `bson:"name" json:"name"`
	Qty       int                `bson:"qty" json:"qty"`
	Price     float64            `bson:"price" json:"price"`
	Subtotal  float64            `bson:"subtotal" json:"subtotal"`
}

type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail string             `bson:"user_email" json:"user_email"`
	Address   string             `bson:"address" json:"address"`
	Items     []OrderItem        `bson:"items" json:"items"`
	Total     float64            `bson:"total" json:"total"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
