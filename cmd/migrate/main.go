package main

import (
	"context" // Context for seeding

	"hbnb/internal/config"     // Custom import path (Config)
	"hbnb/internal/db"         // Custom import path (Database)
	"hbnb/internal/facade"     // Business facade, used to seed the admin
	"hbnb/internal/repository" // Persistence
	"hbnb/internal/utils"      // Password hashing

	"github.com/sirupsen/logrus" // Logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatal(err)
	}

	// Seed the first admin from ADMIN_EMAIL and ADMIN_PASSWORD, if set
	f := facade.New(repository.NewGormStore(gdb), utils.BcryptHasher{})
	if err := db.SeedAdmin(context.Background(), f, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logrus.Fatal(err)
	}
}
