package services

import (
	"fmt"
	"log"
	"os"
	"strings"

	"farmacia_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// EnviarConfirmacionPedido manda el correo de confirmación al crear un
// pedido, respetando la preferencia email_pedidos del usuario. Si no hay
// SMTP configurado, solo lo deja registrado.
func EnviarConfirmacionPedido(destinatario *models.User, order *models.Order) error {
	if destinatario != nil && destinatario.Notifications != nil && !destinatario.Notifications.EmailPedidos {
		log.Printf("📭 Usuario %s desactivó los correos de pedidos, no se envía", order.UserEmail)
		return nil
	}

	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("⚠️  SMTP no configurado — no se envía confirmación de pedido")
		return nil
	}

	remitente := os.Getenv("SMTP_FROM")
	if remitente == "" {
		remitente = "noreply@farmaciaslaguadalajara.mx"
	}

	msg := mail.NewMsg()
	if err := msg.From(remitente); err != nil {
		return err
	}
	if err := msg.To(order.UserEmail); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Confirmación de pedido %s", order.ID.Hex()))
	msg.SetBodyString(mail.TypeTextHTML, confirmacionHTML(order))

	client, err := mail.NewClient(host,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Enviando confirmación de pedido a", order.UserEmail)
	return client.DialAndSend(msg)
}

func confirmacionHTML(order *models.Order) string {
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
<head><meta charset="UTF-8"><title>Confirmación de pedido</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #2e7d32;">¡Gracias por tu pedido!</h2>
		<p>Recibimos tu pedido y lo estamos preparando. Te contactaremos pronto.</p>

		<h3>Detalle del pedido</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; text-align: left;">Producto</th>
					<th style="padding: 8px; text-align: left;">Cantidad</th>
					<th style="padding: 8px; text-align: left;">Precio</th>
					<th style="padding: 8px; text-align: left;">Subtotal</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 8px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 8px; font-weight: bold;">$%.2f</td>
				</tr>
			</tfoot>
		</table>

		<p style="margin-top: 30px; color: #555;">
			Saludos,<br>
			<strong>Farmacias La Guadalajara</strong>
		</p>
	</div>
</body>
</html>`, items.String(), order.Total)
}
