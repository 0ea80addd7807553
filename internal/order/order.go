// Package order defines the order record accepted from the storefront when
// confirmation notifications are requested. Orders are caller-owned input:
// this service reads them to compose messages and never stores them.
package order

// Item is a single purchased line item.
type Item struct {
	Name      string  `json:"name" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
}

// Address is the shipping destination block rendered into notifications.
type Address struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Street    string `json:"street" validate:"required"`
	Zip       string `json:"zip" validate:"required"`
	City      string `json:"city" validate:"required"`
	Country   string `json:"country" validate:"required"`
	Phone     string `json:"phone"`
}

// Order is the full order record supplied by the storefront.
type Order struct {
	OrderNumber     string  `json:"orderNumber" validate:"required"`
	CustomerEmail   string  `json:"customerEmail" validate:"required,email"`
	Items           []Item  `json:"items" validate:"required,min=1,dive"`
	ShippingAddress Address `json:"shippingAddress" validate:"required"`
	Total           float64 `json:"total" validate:"gte=0"`
	PaymentID       string  `json:"paymentId"`
	OrderNotes      string  `json:"orderNotes"`
}
