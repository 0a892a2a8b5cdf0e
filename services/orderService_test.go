package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sp4c38/pizzatech-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	calls   int
	lastReq models.OrderRequest
	keys    []string
	err     error
	resp    *models.SubmitOrderResponse
}

func (f *fakeSubmitter) SubmitOrder(ctx context.Context, order models.OrderRequest, idempotencyKey string) (*models.SubmitOrderResponse, error) {
	f.calls++
	f.lastReq = order
	f.keys = append(f.keys, idempotencyKey)
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &models.SubmitOrderResponse{}, nil
}

type fakeCart struct {
	items    []models.CartItem
	listErr  error
	clearErr error
	cleared  bool
}

func (f *fakeCart) ListItems() ([]models.CartItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeCart) ClearAll(items []models.CartItem) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.items = nil
	f.cleared = true
	return nil
}

type fakeOrderStore struct {
	saved   []*models.Order
	saveErr error
}

func (f *fakeOrderStore) SaveOrder(order *models.Order) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, order)
	return nil
}

func validDetails() models.OrderDetails {
	return models.OrderDetails{
		FirstName:     "Max",
		LastName:      "Mustermann",
		Street:        "Main Street 1",
		City:          "Dresden",
		PostalCode:    "01067",
		PaymentMethod: models.PaymentCashOnDelivery,
	}
}

func TestValidateDetails(t *testing.T) {
	modify := func(change func(*models.OrderDetails)) models.OrderDetails {
		details := validDetails()
		change(&details)
		return details
	}

	tests := []struct {
		name    string
		details models.OrderDetails
		reason  string
	}{
		{"all valid", validDetails(), ""},
		{"empty first name", modify(func(d *models.OrderDetails) { d.FirstName = "" }), msgFillOutAllFields},
		{"empty last name", modify(func(d *models.OrderDetails) { d.LastName = "" }), msgFillOutAllFields},
		{"empty street", modify(func(d *models.OrderDetails) { d.Street = "" }), msgFillOutAllFields},
		{"empty city", modify(func(d *models.OrderDetails) { d.City = "" }), msgFillOutAllFields},
		{"empty postal code", modify(func(d *models.OrderDetails) { d.PostalCode = "" }), msgFillOutAllFields},

		{"first name too short", modify(func(d *models.OrderDetails) { d.FirstName = "Al" }), msgFirstNameLength},
		{"first name min length", modify(func(d *models.OrderDetails) { d.FirstName = "Ali" }), ""},
		{"first name max length", modify(func(d *models.OrderDetails) { d.FirstName = strings.Repeat("a", 30) }), ""},
		{"first name too long", modify(func(d *models.OrderDetails) { d.FirstName = strings.Repeat("a", 31) }), msgFirstNameLength},

		{"last name too short", modify(func(d *models.OrderDetails) { d.LastName = "Wu" }), msgLastNameLength},
		{"last name min length", modify(func(d *models.OrderDetails) { d.LastName = "FSE" }), ""},
		{"last name too long", modify(func(d *models.OrderDetails) { d.LastName = strings.Repeat("b", 31) }), msgLastNameLength},

		{"street too short", modify(func(d *models.OrderDetails) { d.Street = "A1" }), msgStreetLength},
		{"street min length", modify(func(d *models.OrderDetails) { d.Street = "B 2" }), ""},
		{"street max length", modify(func(d *models.OrderDetails) { d.Street = strings.Repeat("s", 40) }), ""},
		{"street too long", modify(func(d *models.OrderDetails) { d.Street = strings.Repeat("s", 41) }), msgStreetLength},

		{"city too short", modify(func(d *models.OrderDetails) { d.City = "X" }), msgCityLength},
		{"city min length", modify(func(d *models.OrderDetails) { d.City = "Au" }), ""},
		{"city max length", modify(func(d *models.OrderDetails) { d.City = strings.Repeat("c", 30) }), ""},
		{"city too long", modify(func(d *models.OrderDetails) { d.City = strings.Repeat("c", 31) }), msgCityLength},

		// Bounds count characters, not bytes: umlauts are one character each.
		{"first name two umlaut characters", modify(func(d *models.OrderDetails) { d.FirstName = "Jö" }), msgFirstNameLength},
		{"first name three umlaut characters", modify(func(d *models.OrderDetails) { d.FirstName = "Jör" }), ""},
		{"last name thirty umlaut characters", modify(func(d *models.OrderDetails) { d.LastName = strings.Repeat("ä", 30) }), ""},
		{"last name thirty-one umlaut characters", modify(func(d *models.OrderDetails) { d.LastName = strings.Repeat("ä", 31) }), msgLastNameLength},
		{"city thirty umlaut characters", modify(func(d *models.OrderDetails) { d.City = strings.Repeat("ö", 30) }), ""},
		{"street forty umlaut characters", modify(func(d *models.OrderDetails) { d.Street = strings.Repeat("ü", 40) }), ""},

		{"postal code min length", modify(func(d *models.OrderDetails) { d.PostalCode = "1" }), ""},
		{"postal code max length", modify(func(d *models.OrderDetails) { d.PostalCode = "12345" }), ""},
		{"postal code too long", modify(func(d *models.OrderDetails) { d.PostalCode = "123456" }), msgPostalCodeLength},

		// The first violated rule wins when several fields are bad.
		{"first violation reported", modify(func(d *models.OrderDetails) {
			d.FirstName = "Al"
			d.City = "X"
		}), msgFirstNameLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateDetails(tt.details)
			if tt.reason == "" {
				assert.True(t, result.Valid)
			} else {
				assert.False(t, result.Valid)
				assert.Equal(t, tt.reason, result.Reason)
			}
		})
	}
}

func TestSubmitBuildsWireOrder(t *testing.T) {
	submitter := &fakeSubmitter{resp: &models.SubmitOrderResponse{OrderID: 42}}
	cart := &fakeCart{items: []models.CartItem{{ItemID: 1, SizeIndex: 1, UnitPrice: 9.99, Quantity: 2}}}
	store := &fakeOrderStore{}
	service := NewOrderService(submitter, cart, store)

	order, err := service.Submit(context.Background(), validDetails())
	require.NoError(t, err)
	require.NotNil(t, order)

	require.Equal(t, 1, submitter.calls)
	require.Len(t, submitter.lastReq.Items, 1)
	assert.Equal(t, models.OrderRequestItem{ItemID: 1, Price: 9.99, Quantity: 2}, submitter.lastReq.Items[0])
	assert.Equal(t, "Max", submitter.lastReq.Details.FirstName)
	assert.Equal(t, "01067", submitter.lastReq.Details.PostalCode)
	assert.Equal(t, models.PaymentCashOnDelivery, submitter.lastReq.Details.PaymentMethod)

	require.Len(t, store.saved, 1)
	assert.Equal(t, int64(42), store.saved[0].BackendOrderID)
	require.Len(t, store.saved[0].OrderItems, 1)
	assert.Equal(t, 1, store.saved[0].OrderItems[0].SizeIndex)

	assert.True(t, cart.cleared)
}

func TestSubmitInvalidDetailsSkipsBackend(t *testing.T) {
	submitter := &fakeSubmitter{}
	cart := &fakeCart{items: []models.CartItem{{ItemID: 1, UnitPrice: 6.99, Quantity: 1}}}
	service := NewOrderService(submitter, cart, &fakeOrderStore{})

	details := validDetails()
	details.FirstName = "Al"

	_, err := service.Submit(context.Background(), details)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, msgFirstNameLength, validationErr.Reason)
	assert.Zero(t, submitter.calls)
	assert.False(t, cart.cleared)
}

func TestSubmitNonNumericPostalCode(t *testing.T) {
	// Signed numbers parse fine but are not digit-only postal codes.
	for _, postalCode := range []string{"12a45", "-1234", "+1234", "1 2"} {
		t.Run(postalCode, func(t *testing.T) {
			submitter := &fakeSubmitter{}
			service := NewOrderService(submitter, &fakeCart{}, &fakeOrderStore{})

			details := validDetails()
			details.PostalCode = postalCode

			_, err := service.Submit(context.Background(), details)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, msgPostalCodeDigits, validationErr.Reason)
			assert.Zero(t, submitter.calls)
		})
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	submitter := &fakeSubmitter{}
	service := NewOrderService(submitter, &fakeCart{}, &fakeOrderStore{})

	_, err := service.Submit(context.Background(), validDetails())
	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.Zero(t, submitter.calls)
}

func TestSubmitBackendFailureKeepsCart(t *testing.T) {
	submitter := &fakeSubmitter{err: errors.New("connection refused")}
	cart := &fakeCart{items: []models.CartItem{{ItemID: 1, UnitPrice: 6.99, Quantity: 1}}}
	store := &fakeOrderStore{}
	service := NewOrderService(submitter, cart, store)

	_, err := service.Submit(context.Background(), validDetails())
	assert.Error(t, err)
	assert.False(t, cart.cleared)
	assert.Empty(t, store.saved)
}

func TestSubmitIdempotencyKeyLifecycle(t *testing.T) {
	submitter := &fakeSubmitter{err: errors.New("connection refused")}
	cart := &fakeCart{items: []models.CartItem{{ItemID: 1, UnitPrice: 6.99, Quantity: 1}}}
	service := NewOrderService(submitter, cart, &fakeOrderStore{})

	// Two failing attempts retry with the same key.
	_, err := service.Submit(context.Background(), validDetails())
	require.Error(t, err)
	_, err = service.Submit(context.Background(), validDetails())
	require.Error(t, err)

	require.Len(t, submitter.keys, 2)
	assert.NotEmpty(t, submitter.keys[0])
	assert.Equal(t, submitter.keys[0], submitter.keys[1])

	// After a success the next checkout gets a fresh key.
	submitter.err = nil
	_, err = service.Submit(context.Background(), validDetails())
	require.NoError(t, err)

	cart.items = []models.CartItem{{ItemID: 2, UnitPrice: 10.49, Quantity: 1}}
	_, err = service.Submit(context.Background(), validDetails())
	require.NoError(t, err)

	require.Len(t, submitter.keys, 4)
	assert.Equal(t, submitter.keys[0], submitter.keys[2])
	assert.NotEqual(t, submitter.keys[2], submitter.keys[3])
}

func TestSubmitPersistsOrderBeforeClearingCart(t *testing.T) {
	cart := &fakeCart{
		items:    []models.CartItem{{ItemID: 1, UnitPrice: 6.99, Quantity: 1}},
		clearErr: errors.New("disk full"),
	}
	store := &fakeOrderStore{}
	service := NewOrderService(&fakeSubmitter{}, cart, store)

	order, err := service.Submit(context.Background(), validDetails())

	// The failed clear is reported, but the order is already durable.
	assert.Error(t, err)
	assert.NotNil(t, order)
	assert.Len(t, store.saved, 1)
	assert.NotEmpty(t, cart.items)
}

func TestSubmitSaveFailureKeepsCart(t *testing.T) {
	cart := &fakeCart{items: []models.CartItem{{ItemID: 1, UnitPrice: 6.99, Quantity: 1}}}
	store := &fakeOrderStore{saveErr: errors.New("disk full")}
	service := NewOrderService(&fakeSubmitter{}, cart, store)

	_, err := service.Submit(context.Background(), validDetails())
	assert.Error(t, err)
	assert.False(t, cart.cleared)
}
