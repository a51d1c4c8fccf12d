package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"farmacia_back_end/internal/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"
)

// QRPedido genera el código QR de recolección en mostrador: el personal
// lo escanea para localizar el pedido.
func QRPedido(order *models.Order) ([]byte, error) {
	payload := fmt.Sprintf("FARMACIA-PEDIDO:%s", order.ID.Hex())
	return qrcode.Encode(payload, qrcode.Medium, 256)
}

// FacturaPDF imprime la nota del pedido a PDF con Chrome headless.
// El HTML se arma aquí mismo y se carga como data URL, así no hace
// falta exponer una página interna sin autenticación.
func FacturaPDF(order *models.Order) ([]byte, error) {
	html := facturaHTML(order)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("data:text/html;charset=utf-8,"+url.PathEscape(html)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

func facturaHTML(order *models.Order) string {
	var items strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&items, `
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>$%.2f</td>
				<td>$%.2f</td>
			</tr>`, item.Name, item.Qty, item.Price, item.Subtotal)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="es">
<head><meta charset="UTF-8"><title>Nota de pedido</title>
<style>
body { font-family: Arial, sans-serif; margin: 40px; }
table { width: 100%%; border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 8px; text-align: left; }
th { background: #f0f0f0; }
</style>
</head>
<body>
	<h1>Farmacias La Guadalajara</h1>
	<p><strong>Pedido:</strong> %s<br>
	<strong>Fecha:</strong> %s<br>
	<strong>Cliente:</strong> %s<br>
	<strong>Dirección:</strong> %s<br>
	<strong>Estado:</strong> %s</p>
	<table>
		<thead><tr><th>Producto</th><th>Cantidad</th><th>Precio</th><th>Subtotal</th></tr></thead>
		<tbody>%s</tbody>
		<tfoot><tr><td colspan="3"><strong>Total</strong></td><td><strong>$%.2f</strong></td></tr></tfoot>
	</table>
</body>
</html>`,
		order.ID.Hex(),
		order.CreatedAt.Format("02/01/2006 15:04"),
		order.UserEmail,
		order.Address,
		order.Status,
		items.String(),
		order.Total)
}
