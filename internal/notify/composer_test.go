package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-pay/internal/order"
)

func composerClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func sampleOrder() order.Order {
	return order.Order{
		OrderNumber:   "ORD-1001",
		CustomerEmail: "jo@example.com",
		Items: []order.Item{
			{Name: "Espresso beans", Quantity: 2, UnitPrice: 12.5},
			{Name: "Moka pot", Quantity: 1, UnitPrice: 34},
		},
		ShippingAddress: order.Address{
			FirstName: "Jo",
			LastName:  "Smith",
			Street:    "1 Main St",
			Zip:       "10115",
			City:      "Berlin",
			Country:   "DE",
			Phone:     "+49 30 123456",
		},
		Total:     59,
		PaymentID: "pi_abc",
	}
}

func TestComposeCustomerMessage(t *testing.T) {
	c := Composer{AdminEmail: "shop@example.com", Now: composerClock}
	customer, _ := c.Compose(sampleOrder())

	require.Equal(t, "jo@example.com", customer.To)
	require.Equal(t, "Order confirmation ORD-1001", customer.Subject)
	require.Contains(t, customer.Body, "Thank you for your order ORD-1001!")
	require.Contains(t, customer.Body, "2 × Espresso beans — 12.50")
	require.Contains(t, customer.Body, "1 × Moka pot — 34.00")
	require.Contains(t, customer.Body, "Total: 59.00")
	require.Contains(t, customer.Body, "Jo Smith")
	require.Contains(t, customer.Body, "10115 Berlin")
	require.Contains(t, customer.Body, "+49 30 123456")
	require.NotContains(t, customer.Body, "pi_abc", "payment details stay out of the customer mail")

	// items keep request order
	beans := strings.Index(customer.Body, "Espresso beans")
	pot := strings.Index(customer.Body, "Moka pot")
	require.Less(t, beans, pot)
}

func TestComposeAdminMessage(t *testing.T) {
	c := Composer{AdminEmail: "shop@example.com", Now: composerClock}
	o := sampleOrder()
	o.OrderNotes = "  leave at the door  "
	_, admin := c.Compose(o)

	require.Equal(t, "shop@example.com", admin.To)
	require.Equal(t, "New order ORD-1001", admin.Subject)
	require.Contains(t, admin.Body, "placed by jo@example.com")
	require.Contains(t, admin.Body, "Payment ID: pi_abc")
	require.Contains(t, admin.Body, "Order notes:\nleave at the door")
}

func TestComposeAdminWithoutPaymentID(t *testing.T) {
	c := Composer{AdminEmail: "shop@example.com", Now: composerClock}
	o := sampleOrder()
	o.PaymentID = ""
	_, admin := c.Compose(o)

	require.Contains(t, admin.Body, "Payment ID: not available")
}

func TestComposeOmitsBlankNotesAndPhone(t *testing.T) {
	c := Composer{AdminEmail: "shop@example.com", Now: composerClock}
	o := sampleOrder()
	o.OrderNotes = "   "
	o.ShippingAddress.Phone = ""
	customer, admin := c.Compose(o)

	require.NotContains(t, admin.Body, "Order notes:")
	require.NotContains(t, customer.Body, "+49")
}

func TestComposeIsDeterministic(t *testing.T) {
	c := Composer{AdminEmail: "shop@example.com", Now: composerClock}
	first, firstAdmin := c.Compose(sampleOrder())
	second, secondAdmin := c.Compose(sampleOrder())

	require.Equal(t, first, second)
	require.Equal(t, firstAdmin, secondAdmin)
	require.Contains(t, first.Body, "Generated at: Sun, 01 Jun 2025 12:00:00 UTC")
}
