package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CategoryKey identifies one catalog category on the wire.
type CategoryKey string

const (
	CategoryPizza      CategoryKey = "pizza"
	CategoryBurger     CategoryKey = "burger"
	CategorySalad      CategoryKey = "salad"
	CategoryPasta      CategoryKey = "pasta"
	CategoryIceDessert CategoryKey = "ice_dessert"
	CategoryDrink      CategoryKey = "drink"
)

// LookupOrder is the fixed order in which categories are scanned when an item
// id is resolved. First match wins.
var LookupOrder = []CategoryKey{
	CategoryPizza,
	CategoryBurger,
	CategoryIceDessert,
	CategorySalad,
	CategoryDrink,
	CategoryPasta,
}

// Speciality carries the dietary flags of an item. Dessert and drink items
// don't have any, so the field holding a Speciality is nil for them.
type Speciality struct {
	Vegetarian bool `json:"vegetarian"`
	Vegan      bool `json:"vegan"`
	Spicy      bool `json:"spicy"`
}

type Item struct {
	ID                    int         `json:"id"`
	Name                  string      `json:"name"`
	ImageName             string      `json:"imageName"`
	Prices                []float64   `json:"prices"`
	IngredientDescription string      `json:"ingredientDescription"`
	Speciality            *Speciality `json:"speciality,omitempty"`
}

type Category struct {
	SizeNames []string `json:"sizeNames"`
	Items     []Item   `json:"items"`
}

type Categories struct {
	Pizza      Category `json:"pizza"`
	Burger     Category `json:"burger"`
	Salad      Category `json:"salad"`
	Pasta      Category `json:"pasta"`
	IceDessert Category `json:"ice_dessert"`
	Drink      Category `json:"drink"`
}

// ByKey returns the category stored under the given wire key.
func (c *Categories) ByKey(key CategoryKey) *Category {
	switch key {
	case CategoryPizza:
		return &c.Pizza
	case CategoryBurger:
		return &c.Burger
	case CategorySalad:
		return &c.Salad
	case CategoryPasta:
		return &c.Pasta
	case CategoryIceDessert:
		return &c.IceDessert
	case CategoryDrink:
		return &c.Drink
	}
	return nil
}

// Catalog is the full set of orderable categories and items, decoded from the
// backend catalog response. It is replaced wholesale on every fetch and never
// partially mutated.
type Catalog struct {
	Categories Categories `json:"categories"`
}

// CatalogSnapshot stores the last successfully fetched catalog payload so the
// app can fall back to a stale catalog when the backend is unreachable.
type CatalogSnapshot struct {
	gorm.Model
	Payload datatypes.JSON `json:"payload"`
}

// ResolvedItem is a cart or order line projected back onto the catalog for
// display.
type ResolvedItem struct {
	ItemID                int         `json:"itemId"`
	Name                  string      `json:"name"`
	ImageName             string      `json:"imageName"`
	Category              CategoryKey `json:"category"`
	SizeIndex             int         `json:"sizeIndex"`
	SizeName              string      `json:"sizeName,omitempty"`
	Price                 float64     `json:"price"`
	IngredientDescription string      `json:"ingredientDescription"`
	Speciality            *Speciality `json:"speciality,omitempty"`
}
