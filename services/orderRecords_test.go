package services

import (
	"testing"

	"github.com/sp4c38/pizzatech-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func sampleOrder() *models.Order {
	return &models.Order{
		FirstName:      "Max",
		LastName:       "Mustermann",
		Street:         "Main Street 1",
		City:           "Dresden",
		PostalCode:     "01067",
		PaymentMethod:  models.PaymentCashOnDelivery,
		BackendOrderID: 42,
		OrderItems: []models.OrderItem{
			{ItemID: 1, SizeIndex: 1, Price: 9.99, Quantity: 2},
			{ItemID: 20, SizeIndex: 0, Price: 2.49, Quantity: 1},
		},
	}
}

func TestOrderRecordsSaveAndGet(t *testing.T) {
	records := NewOrderRecords(newTestDB(t))

	order := sampleOrder()
	require.NoError(t, records.SaveOrder(order))
	require.NotZero(t, order.ID)

	loaded, err := records.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Max", loaded.FirstName)
	assert.Equal(t, int64(42), loaded.BackendOrderID)
	require.Len(t, loaded.OrderItems, 2)
	assert.Equal(t, 9.99, loaded.OrderItems[0].Price)
}

func TestOrderRecordsList(t *testing.T) {
	records := NewOrderRecords(newTestDB(t))

	require.NoError(t, records.SaveOrder(sampleOrder()))
	require.NoError(t, records.SaveOrder(sampleOrder()))

	orders, err := records.ListOrders()
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Len(t, orders[0].OrderItems, 2)
}

func TestOrderRecordsUpdateProgress(t *testing.T) {
	records := NewOrderRecords(newTestDB(t))

	order := sampleOrder()
	require.NoError(t, records.SaveOrder(order))
	require.NoError(t, records.UpdateProgress(order.ID, 70))

	loaded, err := records.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, loaded.Progress)
}

func TestOrderRecordsDelete(t *testing.T) {
	db := newTestDB(t)
	records := NewOrderRecords(db)

	order := sampleOrder()
	require.NoError(t, records.SaveOrder(order))
	require.NoError(t, records.DeleteOrder(order.ID))

	_, err := records.GetOrder(order.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var remaining int64
	require.NoError(t, db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}
