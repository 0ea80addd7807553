package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/backend-pay/internal/order"
)

// Message is a single notification ready to hand to the mail transport.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Composer builds the customer and operator notifications for one order.
// It performs no I/O; the injected clock is the only non-deterministic input
// and feeds a single "Generated at" line.
type Composer struct {
	AdminEmail string
	Now        func() time.Time
}

// Compose renders both notification bodies from a single order record.
func (c Composer) Compose(o order.Order) (customer, admin Message) {
	generatedAt := c.now().Format(time.RFC1123)

	customer = Message{
		To:      o.CustomerEmail,
		Subject: fmt.Sprintf("Order confirmation %s", o.OrderNumber),
		Body:    c.customerBody(o, generatedAt),
	}
	admin = Message{
		To:      c.AdminEmail,
		Subject: fmt.Sprintf("New order %s", o.OrderNumber),
		Body:    c.adminBody(o, generatedAt),
	}
	return customer, admin
}

func (c Composer) customerBody(o order.Order, generatedAt string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order %s!\n\n", o.OrderNumber)
	b.WriteString("Your items:\n")
	writeItems(&b, o.Items)
	fmt.Fprintf(&b, "\nTotal: %.2f\n\n", o.Total)
	b.WriteString("Shipping to:\n")
	writeAddress(&b, o.ShippingAddress)
	fmt.Fprintf(&b, "\nGenerated at: %s\n", generatedAt)
	return b.String()
}

func (c Composer) adminBody(o order.Order, generatedAt string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s placed by %s\n\n", o.OrderNumber, o.CustomerEmail)
	b.WriteString("Items:\n")
	writeItems(&b, o.Items)
	fmt.Fprintf(&b, "\nTotal: %.2f\n", o.Total)
	if o.PaymentID != "" {
		fmt.Fprintf(&b, "Payment ID: %s\n", o.PaymentID)
	} else {
		b.WriteString("Payment ID: not available\n")
	}
	b.WriteString("\nShipping address:\n")
	writeAddress(&b, o.ShippingAddress)
	if notes := strings.TrimSpace(o.OrderNotes); notes != "" {
		fmt.Fprintf(&b, "\nOrder notes:\n%s\n", notes)
	}
	fmt.Fprintf(&b, "\nGenerated at: %s\n", generatedAt)
	return b.String()
}

func writeItems(b *strings.Builder, items []order.Item) {
	for _, item := range items {
		fmt.Fprintf(b, "%d × %s — %.2f\n", item.Quantity, item.Name, item.UnitPrice)
	}
}

func writeAddress(b *strings.Builder, a order.Address) {
	fmt.Fprintf(b, "%s %s\n", a.FirstName, a.LastName)
	fmt.Fprintf(b, "%s\n", a.Street)
	fmt.Fprintf(b, "%s %s\n", a.Zip, a.City)
	fmt.Fprintf(b, "%s\n", a.Country)
	if strings.TrimSpace(a.Phone) != "" {
		fmt.Fprintf(b, "%s\n", a.Phone)
	}
}

func (c Composer) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
