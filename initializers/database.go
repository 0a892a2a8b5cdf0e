package initializers

import (
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectToDB opens the local store. The default is a sqlite file next to
// the app, standing in for the on-device store. Restaurant-side deployments
// point DB_URL at a shared mysql instead.
func ConnectToDB() {
	var err error

	if dsn := os.Getenv("DB_URL"); dsn != "" {
		DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	} else {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "pizzatech.db"
		}
		DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	}

	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
}
