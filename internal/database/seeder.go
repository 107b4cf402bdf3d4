// server/internal/database/seeder.go
package database

import (
	"context"
	"log"

	"cmms-api-server/config"
	"cmms-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedAdmin creates the first Admin account when the usuarios collection has
// none, so a fresh deployment can be logged into. The password is stored as
// plaintext because login compares byte-for-byte against the stored value.
func SeedAdmin(db *mongo.Database, cfg config.Config) error {
	userCollection := db.Collection("usuarios")

	adminEmail := cfg.Seed.AdminEmail
	if adminEmail == "" {
		adminEmail = "admin@cmms.local"
	}
	adminPassword := cfg.Seed.AdminPassword
	if adminPassword == "" {
		adminPassword = "admin"
	}

	count, err := userCollection.CountDocuments(context.Background(), bson.M{"rol": models.RoleAdmin})
	if err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin account already exists. Seeding skipped.")
		return nil
	}

	log.Println("No admin account found. Seeding...")

	admin := models.User{
		Nombre:   "Administrador",
		Email:    adminEmail,
		Password: adminPassword,
		Rol:      models.RoleAdmin,
	}

	_, err = userCollection.InsertOne(context.Background(), admin)
	if err != nil {
		return err
	}

	log.Println("Admin account seeded successfully.")
	return nil
}
