package models

import "gorm.io/gorm"

// CartItem is one pending, not yet submitted order line. The unit price is
// captured when the item is added and not recomputed from the catalog later.
type CartItem struct {
	gorm.Model
	ItemID    int     `json:"itemId"`
	SizeIndex int     `json:"sizeIndex"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}
