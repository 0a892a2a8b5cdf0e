package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sp4c38/pizzatech-api/backend"
	"github.com/sp4c38/pizzatech-api/controllers"
	"github.com/sp4c38/pizzatech-api/initializers"
	"github.com/sp4c38/pizzatech-api/routes"
	"github.com/sp4c38/pizzatech-api/secrets"
	"github.com/sp4c38/pizzatech-api/services"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
}

func main() {
	secretStore, err := secrets.NewStore(os.Getenv("SECRETS_FILE"), os.Getenv("SECRETS_PASSPHRASE"))
	if err != nil {
		log.Fatal("Failed to open secret store: ", err)
	}

	api := backend.NewClient(os.Getenv("BACKEND_URL"))
	catalogService := services.NewCatalogService(api, initializers.DB)
	cartService := services.NewCartService(initializers.DB)
	orderRecords := services.NewOrderRecords(initializers.DB)
	orderService := services.NewOrderService(api, cartService, orderRecords)
	progressService := services.NewProgressService(api, orderRecords)
	sessionService := services.NewSessionService(initializers.DB, secretStore, api)

	// The catalog must be available before catalog-dependent screens render.
	// A failed startup fetch is not fatal: the facade serves 503 for the
	// catalog until a refresh succeeds.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := catalogService.Fetch(ctx); err != nil {
		log.Println("Catalog not available at startup:", err)
	}
	cancel()

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server)
	routes.SessionRoutes(server, controllers.NewSessionController(sessionService))
	routes.CatalogRoutes(server, controllers.NewCatalogController(catalogService))
	routes.CartRoutes(server, controllers.NewCartController(catalogService, cartService))
	routes.OrderRoutes(server, controllers.NewOrderController(orderService, orderRecords, progressService, sessionService, api))
	server.Run()
}
