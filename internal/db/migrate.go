package db

import (
	"context" // Context for seeding
	"errors"  // Error inspection
	"fmt"     // Error wrapping
	"time"    // Pool lifetimes

	"hbnb/internal/config"     // Configuration
	"hbnb/internal/domain"     // Domain models
	"hbnb/internal/facade"     // Facade for seeding through the business rules
	"hbnb/internal/repository" // Model list

	"github.com/sirupsen/logrus" // Structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/driver/postgres"    // Postgres driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger
)

// Open connects to the configured database and tunes the pool
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	default:
		dialector = mysql.Open(cfg.DSN())
	}
	level := logger.Warn
	if cfg.IsProd {
		level = logger.Error
	}
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true, // Surface unique violations as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return gdb, nil
}

// Migrate creates or updates every table the store needs
func Migrate(gdb *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := gdb.AutoMigrate(repository.Models()...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.")
	return nil
}

// SeedAdmin creates the initial admin account unless the email is already taken
func SeedAdmin(ctx context.Context, f *facade.Facade, email, password string) error {
	if email == "" || password == "" {
		return nil // Nothing to seed
	}
	_, err := f.CreateUser(ctx, domain.UserParams{
		FirstName: "Admin",
		LastName:  "HBnB",
		Email:     email,
		Password:  password,
		IsAdmin:   true,
	})
	if errors.Is(err, domain.ErrConflict) {
		logrus.WithField("email", email).Info("Admin already present, skipping seed")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	logrus.WithField("email", email).Info("Admin account seeded")
	return nil
}
