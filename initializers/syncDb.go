package initializers

import (
	"log"

	"github.com/sp4c38/pizzatech-api/models"
)

func SyncDatabase() {
	err := DB.AutoMigrate(
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Account{},
		&models.CatalogSnapshot{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}
	log.Println("Database synced successfully.")
}
