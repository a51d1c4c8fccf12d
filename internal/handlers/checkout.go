package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"farmacia_back_end/internal/database"
	"farmacia_back_end/internal/models"
	"farmacia_back_end/internal/orders"
	"farmacia_back_end/internal/services"
	"farmacia_back_end/internal/session"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//
// GET /checkout
//
func CheckoutForm(c *gin.Context) {
	if len(session.Cart(c)) == 0 {
		flashRedirect(c, "Carrito vacío", "/")
		return
	}
	render(c, http.StatusOK, "checkout.html", gin.H{"Email": session.UserEmail(c)})
}

//
// POST /checkout
//
func CheckoutSubmit(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	carrito := session.Cart(c)
	order, descartadas, err := orders.Build(c.Request.Context(), resolver, carrito,
		c.PostForm("email"), c.PostForm("address"))
	switch {
	case errors.Is(err, orders.ErrCarritoVacio):
		flashRedirect(c, "Carrito vacío", "/")
		return
	case errors.Is(err, orders.ErrEmailRequerido):
		flashRedirect(c, "Por favor ingresa tu correo electrónico", "/checkout")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	result, err := database.Orders().InsertOne(ctx, order)
	if err != nil {
		log.Println("❌ Error creando orden:", err)
		flashRedirect(c, "Error al crear la orden", "/checkout")
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}

	session.ClearCart(c)

	if descartadas > 0 {
		log.Printf("⚠️ Orden %s: %d línea(s) del carrito ya no existían y se omitieron", order.ID.Hex(), descartadas)
		session.Flash(c, fmt.Sprintf("⚠️ %d producto(s) ya no estaban disponibles y se omitieron del pedido", descartadas))
	}

	go enviarConfirmacion(order)

	flashRedirect(c, "✅ ¡Orden creada con éxito! Te contactaremos pronto.", "/")
}

// enviarConfirmacion busca al usuario por email para respetar sus
// preferencias de notificación y manda el correo en segundo plano.
func enviarConfirmacion(order *models.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var destinatario *models.User
	var u models.User
	if err := database.Users().FindOne(ctx, bson.M{"email": order.UserEmail}).Decode(&u); err == nil {
		destinatario = &u
	}

	if err := services.EnviarConfirmacionPedido(destinatario, order); err != nil {
		log.Println("❌ Error enviando confirmación de pedido:", err)
	}
}
