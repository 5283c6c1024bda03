package order

import "time"

type OrderStatus string

const (
	StatusReceived  OrderStatus = "RECEIVED"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Valid reports whether s is a member of the status set.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusReceived, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID                 uint        `json:"id"`
	OrderNumber        string      `json:"order_number"`
	Status             OrderStatus `json:"status"`
	Total              float64     `json:"total"`
	ShippingName       string      `json:"shipping_name"`
	ShippingAddress    string      `json:"shipping_address"`
	ShippingCity       string      `json:"shipping_city"`
	ShippingPostalCode string      `json:"shipping_postal_code"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
	Items              []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ID        uint    `json:"id"`
	OrderID   uint    `json:"order_id"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	// Price is the unit price snapshot taken at order time, never re-read
	// from the current product price.
	Price       float64 `json:"price"`
	ProductName string  `json:"product_name"`
}

type OrderFilter struct {
	Status *OrderStatus
	Search *string
}
