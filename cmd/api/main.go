// server/cmd/api/main.go
package main

import (
	"context"
	"log"

	"cmms-api-server/config"
	"cmms-api-server/internal/api/routes"
	"cmms-api-server/internal/auth"
	"cmms-api-server/internal/database"
	"cmms-api-server/internal/socket"
	"cmms-api-server/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Environment and configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	auth.Configure(cfg.JWT.Secret, cfg.JWT.Expiration)

	// 2. Store connection, held for the process lifetime
	client, err := database.Connect(cfg.Mongo.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.Mongo.DBName)

	// 3. First-run admin account
	if err := database.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	// 4. Evidence bucket
	uploader, err := storage.NewUploader(cfg.S3)
	if err != nil {
		log.Fatalf("Failed to initialize evidence uploader: %v", err)
	}

	// 5. Live event feed
	wsHub := socket.NewHub()

	// 6. Router
	router := routes.SetupRouter(client, db, uploader, wsHub, cfg)

	// 7. Start server
	log.Printf("Starting CMMS API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
