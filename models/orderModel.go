package models

import "gorm.io/gorm"

// Payment methods selectable at checkout.
const (
	PaymentCashOnDelivery = 1
	PaymentCard           = 2
)

// OrderDetails is the delivery and contact information entered at checkout.
// Only held in memory; persisted as part of an Order once submission succeeds.
type OrderDetails struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Street        string `json:"street"`
	City          string `json:"city"`
	PostalCode    string `json:"postalCode"`
	PaymentMethod int    `json:"paymentMethod"`
}

// Order is the durable record of a successfully placed order.
type Order struct {
	gorm.Model
	FirstName      string      `json:"firstName"`
	LastName       string      `json:"lastName"`
	Street         string      `json:"street"`
	City           string      `json:"city"`
	PostalCode     string      `json:"postalCode"`
	PaymentMethod  int         `json:"paymentMethod"`
	BackendOrderID int64       `json:"backendOrderId"`
	Progress       int         `json:"progress"`
	OrderItems     []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	OrderID   int     `json:"orderId"`
	ItemID    int     `json:"itemId"`
	SizeIndex int     `json:"sizeIndex"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Wire types for the order endpoints of the remote backend.

type OrderRequestItem struct {
	ItemID   int     `json:"item_id"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type OrderRequestDetails struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Street        string `json:"street"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	PaymentMethod int    `json:"payment_method"`
}

type OrderRequest struct {
	Items   []OrderRequestItem  `json:"items"`
	Details OrderRequestDetails `json:"details"`
}

// SubmitOrderResponse is the body of a successful order submission. Newer
// backend variants answer 204 without a body, older ones report
// request_successful explicitly, which is why the field is a pointer.
type SubmitOrderResponse struct {
	RequestSuccessful *bool `json:"request_successful,omitempty"`
	OrderID           int64 `json:"order_id,omitempty"`
}

type OrderProgressResponse struct {
	OrderProgress int `json:"order_progress"`
}

// RemoteOrder is one open order as the backend serves it to the delivery
// side. The backend carries no order id at the top level; the id is repeated
// on every item instead.
type RemoteOrder struct {
	Details RemoteOrderDetails `json:"details"`
	Items   []RemoteOrderItem  `json:"items"`
}

type RemoteOrderDetails struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

type RemoteOrderItem struct {
	OrderID   int64   `json:"order_id"`
	ItemID    int     `json:"item_id"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// AllOrdersResponse is the body of the open-order list download. Time is the
// backend's unix timestamp of when the list was assembled.
type AllOrdersResponse struct {
	Orders []RemoteOrder `json:"orders"`
	Time   int64         `json:"time"`
}
