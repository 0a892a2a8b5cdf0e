package services

import (
	"context"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sp4c38/pizzatech-api/models"
)

// Checkout validation messages. The bounds and the check order are a
// reproducible contract; the first violated rule is the one reported.
const (
	msgFillOutAllFields = "please fill out all fields"
	msgFirstNameLength  = "first name must be between 3 and 30 characters"
	msgLastNameLength   = "last name must be between 3 and 30 characters"
	msgStreetLength     = "street must be between 3 and 40 characters"
	msgCityLength       = "city must be between 2 and 30 characters"
	msgPostalCodeLength = "postal code must be between 1 and 5 digits"
	msgPostalCodeDigits = "postal code may only contain digits"
)

type ValidationResult struct {
	Valid  bool
	Reason string
}

// ValidateDetails checks the delivery details in a fixed order; the first
// failure short-circuits. Lengths count characters, not bytes, and are
// inclusive on both bounds.
func ValidateDetails(details models.OrderDetails) ValidationResult {
	if details.FirstName == "" || details.LastName == "" || details.Street == "" ||
		details.City == "" || details.PostalCode == "" {
		return ValidationResult{Reason: msgFillOutAllFields}
	}
	if length := utf8.RuneCountInString(details.FirstName); length < 3 || length > 30 {
		return ValidationResult{Reason: msgFirstNameLength}
	}
	if length := utf8.RuneCountInString(details.LastName); length < 3 || length > 30 {
		return ValidationResult{Reason: msgLastNameLength}
	}
	if length := utf8.RuneCountInString(details.Street); length < 3 || length > 40 {
		return ValidationResult{Reason: msgStreetLength}
	}
	if length := utf8.RuneCountInString(details.City); length < 2 || length > 30 {
		return ValidationResult{Reason: msgCityLength}
	}
	if length := utf8.RuneCountInString(details.PostalCode); length < 1 || length > 5 {
		return ValidationResult{Reason: msgPostalCodeLength}
	}
	return ValidationResult{Valid: true}
}

// OrderSubmitter is the part of the backend client the order service needs.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, order models.OrderRequest, idempotencyKey string) (*models.SubmitOrderResponse, error)
}

// CartStore is what the order service needs from the cart adapter.
type CartStore interface {
	ListItems() ([]models.CartItem, error)
	ClearAll(items []models.CartItem) error
}

// OrderStore persists submitted orders.
type OrderStore interface {
	SaveOrder(order *models.Order) error
}

// OrderService validates delivery details, assembles the wire order from the
// cart, submits it and records the result.
type OrderService struct {
	api    OrderSubmitter
	cart   CartStore
	orders OrderStore

	mu             sync.Mutex
	idempotencyKey string
}

func NewOrderService(api OrderSubmitter, cart CartStore, orders OrderStore) *OrderService {
	return &OrderService{api: api, cart: cart, orders: orders}
}

// Submit runs the full checkout pipeline. On success the order record is
// persisted first and the cart cleared second: a crash between the two steps
// leaves the order present and the cart non-empty, never the reverse. On any
// failure the cart and the entered details stay untouched so the user can
// retry.
func (s *OrderService) Submit(ctx context.Context, details models.OrderDetails) (*models.Order, error) {
	if result := ValidateDetails(details); !result.Valid {
		return nil, &ValidationError{Reason: result.Reason}
	}
	// Digits only, no sign.
	for _, r := range details.PostalCode {
		if r < '0' || r > '9' {
			return nil, &ValidationError{Reason: msgPostalCodeDigits}
		}
	}

	items, err := s.cart.ListItems()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	request := models.OrderRequest{
		Details: models.OrderRequestDetails{
			FirstName:     details.FirstName,
			LastName:      details.LastName,
			Street:        details.Street,
			City:          details.City,
			PostalCode:    details.PostalCode,
			PaymentMethod: details.PaymentMethod,
		},
	}
	for _, item := range items {
		request.Items = append(request.Items, models.OrderRequestItem{
			ItemID:   item.ItemID,
			Price:    item.UnitPrice,
			Quantity: item.Quantity,
		})
	}

	response, err := s.api.SubmitOrder(ctx, request, s.currentIdempotencyKey())
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		FirstName:      details.FirstName,
		LastName:       details.LastName,
		Street:         details.Street,
		City:           details.City,
		PostalCode:     details.PostalCode,
		PaymentMethod:  details.PaymentMethod,
		BackendOrderID: response.OrderID,
	}
	for _, item := range items {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ItemID:    item.ItemID,
			SizeIndex: item.SizeIndex,
			Price:     item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	if err := s.orders.SaveOrder(order); err != nil {
		return nil, err
	}
	s.rotateIdempotencyKey()

	if err := s.cart.ClearAll(items); err != nil {
		// The order is durably recorded at this point; report the failed
		// clear without undoing anything.
		return order, err
	}
	return order, nil
}

// currentIdempotencyKey returns the key for the ongoing checkout attempt. It
// stays stable across retries of the same attempt so a backend that supports
// deduplication can drop a resubmission after a lost response.
func (s *OrderService) currentIdempotencyKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idempotencyKey == "" {
		s.idempotencyKey = uuid.NewString()
	}
	return s.idempotencyKey
}

func (s *OrderService) rotateIdempotencyKey() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idempotencyKey = ""
}
