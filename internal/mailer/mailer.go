package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/twnk123/malca-time/internal/config"
	"github.com/twnk123/malca-time/internal/domain"
	"github.com/twnk123/malca-time/internal/pricing"
)

type Sender interface {
	Send(to, subject, htmlBody string) error
}

type SMTPSender struct {
	cfg config.SMTP
}

func NewSMTPSender(cfg config.SMTP) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, htmlBody string) error {
	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
		"",
		htmlBody,
	}, "\r\n")

	addr := s.cfg.Host + ":" + s.cfg.Port
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

// shortRef is the human-facing order number: the last 6 characters of the
// order reference.
func shortRef(reference string) string {
	if len(reference) <= 6 {
		return reference
	}
	return reference[len(reference)-6:]
}

// renderLineHTML renders one order line. Stored unit prices are already
// discounted, so the "was" price is reconstructed from the discount metadata.
func renderLineHTML(item domain.OrderItem) string {
	lineTotal := item.UnitPrice * float64(item.Quantity)
	priceInfo := fmt.Sprintf("%.2f€", lineTotal)

	if item.Discount != nil {
		if originalUnit, ok := pricing.OriginalPrice(item.UnitPrice, item.Discount); ok {
			originalTotal := originalUnit * float64(item.Quantity)
			badge := fmt.Sprintf("-%.0f%%", item.Discount.Amount)
			if item.Discount.Kind == domain.DiscountFixedAmount {
				badge = fmt.Sprintf("-%.2f€", item.Discount.Amount)
			}
			priceInfo = fmt.Sprintf(
				`<span style="text-decoration: line-through; color: #999;">%.2f€</span> <span style="background: #dc2626; color: white; padding: 1px 4px; border-radius: 3px;">%s</span> <strong>%.2f€</strong>`,
				originalTotal, badge, lineTotal)
		}
	}

	return fmt.Sprintf(
		`<tr style="border-bottom: 1px solid #eee;"><td style="padding: 8px;">%dx %s</td><td style="padding: 8px; text-align: right;">%s</td></tr>`,
		item.Quantity, item.ItemName, priceInfo)
}

func renderOrderTable(order *domain.Order) string {
	var rows strings.Builder
	for _, item := range order.Items {
		rows.WriteString(renderLineHTML(item))
	}

	return fmt.Sprintf(`
		<h3>Order items</h3>
		<table style="width: 100%%; border-collapse: collapse;">
			<thead><tr style="background: #f5f5f5;">
				<th style="padding: 10px; text-align: left;">Item</th>
				<th style="padding: 10px; text-align: right;">Price</th>
			</tr></thead>
			<tbody>%s</tbody>
		</table>
		<div style="text-align: right; font-size: 18px;"><strong>Total: %.2f€</strong></div>`,
		rows.String(), order.TotalAmount)
}

func renderDetails(order *domain.Order) string {
	return fmt.Sprintf(`
		<div style="background: #f9f9f9; padding: 15px; border-radius: 5px;">
			<h3 style="margin-top: 0;">Order details</h3>
			<p><strong>Order number:</strong> #%s</p>
			<p><strong>Restaurant:</strong> %s</p>
			<p><strong>Placed:</strong> %s</p>
			<p><strong>Pickup time:</strong> %s</p>
		</div>`,
		shortRef(order.Reference), order.RestaurantName,
		order.CreatedAt.Format("02.01.2006 15:04"), order.PickupAt.Format("02.01.2006 15:04"))
}

func noteSection(order *domain.Order) string {
	if order.Note == "" {
		return ""
	}
	return fmt.Sprintf("<p><strong>Note:</strong> %s</p>", order.Note)
}

// RenderCustomerEmail builds the confirmation sent to the person who ordered.
func RenderCustomerEmail(order *domain.Order) (subject, html string) {
	subject = fmt.Sprintf("Order confirmation #%s", shortRef(order.Reference))
	html = fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1 style="border-bottom: 2px solid #000; padding-bottom: 10px;">Order confirmation</h1>
		<p>Hello %s,</p>
		<p>Your order has been placed successfully!</p>
		%s
		%s
		%s
		<p>Thank you for your order!</p>
	</div>`, order.CustomerName, renderDetails(order), renderOrderTable(order), noteSection(order))
	return subject, html
}

// RenderRestaurantEmail builds the notification sent to the restaurant.
func RenderRestaurantEmail(order *domain.Order) (subject, html string) {
	subject = fmt.Sprintf("New order #%s - %s", shortRef(order.Reference), order.RestaurantName)
	html = fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
		<h1 style="border-bottom: 2px solid #000; padding-bottom: 10px;">New order</h1>
		<p>You have received a new order!</p>
		<p><strong>Customer:</strong> %s (%s)</p>
		%s
		%s
		%s
		<p>Please have the order ready by the pickup time.</p>
	</div>`, order.CustomerName, order.CustomerEmail, renderDetails(order), renderOrderTable(order), noteSection(order))
	return subject, html
}
