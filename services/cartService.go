package services

import (
	"fmt"
	"sync"

	"github.com/sp4c38/pizzatech-api/models"
	"gorm.io/gorm"
)

// CartService is the store adapter for pending cart lines. The underlying
// store is not designed for concurrent writers, so a mutex serializes all
// mutations: one mutation completes fully, including its durable save,
// before the next begins.
type CartService struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// AddItem inserts a new cart line. Adding the same catalog id twice yields
// two lines; there is no deduplication.
func (s *CartService) AddItem(itemID, sizeIndex int, unitPrice float64, quantity int) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := &models.CartItem{
		ItemID:    itemID,
		SizeIndex: sizeIndex,
		UnitPrice: unitPrice,
		Quantity:  quantity,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("save cart item: %w", err)
	}
	return item, nil
}

// ListItems returns all current cart lines in store order. No sort guarantee.
func (s *CartService) ListItems() ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.db.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return items, nil
}

// GetItem loads a single cart line by its record id.
func (s *CartService) GetItem(id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes one cart line.
func (s *CartService) RemoveItem(item *models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Delete(item).Error; err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

// ClearAll deletes every given cart line in one transaction: either all rows
// are gone when it returns, or none are. A clear that verifiably left rows
// behind is corrupted local state.
func (s *CartService) ClearAll(items []models.CartItem) error {
	if len(items) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.CartItem{}, ids).Error; err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		var remaining int64
		if err := tx.Model(&models.CartItem{}).Where("id IN ?", ids).Count(&remaining).Error; err != nil {
			return fmt.Errorf("verify cart clear: %w", err)
		}
		if remaining > 0 {
			return fmt.Errorf("%w: cart clear left %d of %d lines behind", ErrCorruptedState, remaining, len(ids))
		}
		return nil
	})
}
