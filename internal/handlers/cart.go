package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"farmacia_back_end/internal/cart"
	"farmacia_back_end/internal/session"

	"github.com/gin-gonic/gin"
)

var resolver = cart.MongoResolver{}

//
// 🟢 POST /cart/add/:id
//
func AddToCart(c *gin.Context) {
	if sinBaseDeDatos(c) {
		return
	}

	pid := c.Param("id")
	cantidad, err := strconv.Atoi(c.DefaultPostForm("cantidad", "1"))
	if err != nil {
		flashRedirect(c, "Cantidad inválida", "/product/"+pid)
		return
	}

	carrito := session.Cart(c)
	producto, err := cart.Add(c.Request.Context(), resolver, carrito, pid, cantidad)
	switch {
	case errors.Is(err, cart.ErrCantidadInvalida):
		flashRedirect(c, "Cantidad debe ser mayor a 0", "/product/"+pid)
		return
	case err != nil:
		flashRedirect(c, "Producto no encontrado", "/")
		return
	}

	session.SetCart(c, carrito)
	flashRedirect(c, fmt.Sprintf("✅ %s añadido al carrito", producto.Name), "/product/"+pid)
}

//
// GET /cart
//
func ViewCart(c *gin.Context) {
	carrito := session.Cart(c)
	lines, total := cart.Resolve(c.Request.Context(), resolver, carrito)
	render(c, http.StatusOK, "cart.html", gin.H{"Items": lines, "Total": total})
}

//
// POST /cart/update/:id
//
func UpdateCart(c *gin.Context) {
	pid := c.Param("id")
	cantidad, err := strconv.Atoi(c.DefaultPostForm("cantidad", "1"))
	if err != nil {
		flashRedirect(c, "Error al actualizar carrito", "/cart")
		return
	}

	carrito := session.Cart(c)
	cart.Update(carrito, pid, cantidad)
	session.SetCart(c, carrito)
	flashRedirect(c, "Carrito actualizado", "/cart")
}

//
// GET /cart/remove/:id
//
func RemoveFromCart(c *gin.Context) {
	pid := c.Param("id")
	carrito := session.Cart(c)
	if _, ok := carrito[pid]; ok {
		cart.Remove(carrito, pid)
		session.SetCart(c, carrito)
		session.Flash(c, "Producto eliminado del carrito")
	}
	c.Redirect(http.StatusFound, "/cart")
}
