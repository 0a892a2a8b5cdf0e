package services

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sp4c38/pizzatech-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a throwaway sqlite database with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Account{},
		&models.CatalogSnapshot{},
	))
	return db
}

// testCatalog builds a small catalog covering several categories, including
// one without specialities.
func testCatalog() *models.Catalog {
	return &models.Catalog{Categories: models.Categories{
		Pizza: models.Category{
			SizeNames: []string{"small", "medium", "large"},
			Items: []models.Item{
				{
					ID:                    1,
					Name:                  "Margherita",
					ImageName:             "margherita",
					Prices:                []float64{6.99, 9.99, 11.99},
					IngredientDescription: "tomato sauce, mozzarella, basil",
					Speciality:            &models.Speciality{Vegetarian: true},
				},
				{
					ID:                    2,
					Name:                  "Diavolo",
					ImageName:             "diavolo",
					Prices:                []float64{7.49, 10.49, 12.49},
					IngredientDescription: "tomato sauce, mozzarella, salami, chili",
					Speciality:            &models.Speciality{Spicy: true},
				},
			},
		},
		Burger: models.Category{
			Items: []models.Item{
				{
					ID:                    10,
					Name:                  "Classic Burger",
					ImageName:             "classicBurger",
					Prices:                []float64{8.99},
					IngredientDescription: "beef, lettuce, tomato, onion",
					Speciality:            &models.Speciality{},
				},
			},
		},
		Drink: models.Category{
			Items: []models.Item{
				{
					ID:        20,
					Name:      "Cola",
					ImageName: "cola",
					Prices:    []float64{2.49},
				},
			},
		},
	}}
}
