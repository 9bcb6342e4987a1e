package config

import (
	"fmt"

	"github.com/amjadodeh/small-circles-api/pkg/logger"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB holds the database connection
type DB struct {
	Postgres *gorm.DB
}

// InitDB initializes and returns the database connection
func InitDB() (*DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Log.Info("No .env file found, assuming environment variables are set.")
	}

	cfg := Load()

	db, err := initPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	return &DB{Postgres: db}, nil
}

// initPostgres initializes the PostgreSQL database connection using GORM.
// TranslateError turns driver-level unique and foreign key violations into
// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated.
func initPostgres(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	logger.Log.Info("Successfully connected to PostgreSQL!")
	return db, nil
}

// CloseDB closes the database connection
func (db *DB) CloseDB() {
	if db.Postgres == nil {
		return
	}
	sqlDB, err := db.Postgres.DB()
	if err != nil {
		logger.Log.Errorf("Error getting SQL DB from GORM: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Log.Errorf("Error closing PostgreSQL connection: %v", err)
	} else {
		logger.Log.Info("PostgreSQL connection closed.")
	}
}
