package services

import (
	"fmt"

	"github.com/sp4c38/pizzatech-api/models"
	"gorm.io/gorm"
)

// OrderRecords is the gorm-backed store for submitted orders.
type OrderRecords struct {
	db *gorm.DB
}

func NewOrderRecords(db *gorm.DB) *OrderRecords {
	return &OrderRecords{db: db}
}

func (r *OrderRecords) SaveOrder(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	return nil
}

func (r *OrderRecords) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("OrderItems").Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRecords) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("OrderItems").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateProgress stores a new fulfillment percentage on an order record.
// Only the progress tracking code mutates submitted orders.
func (r *OrderRecords) UpdateProgress(id uint, progress int) error {
	result := r.db.Model(&models.Order{}).Where("id = ?", id).Update("progress", progress)
	if result.Error != nil {
		return fmt.Errorf("update order progress: %w", result.Error)
	}
	return nil
}

func (r *OrderRecords) DeleteOrder(id uint) error {
	if err := r.db.Select("OrderItems").Delete(&models.Order{Model: gorm.Model{ID: id}}).Error; err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
