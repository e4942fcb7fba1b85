// Package database manages the GORM connection shared by the service.
package database

import (
	"fmt"
	"log"

	"apptrack/config"
	"apptrack/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the PostgreSQL connection and migrates the schema.
// TranslateError is enabled so driver failures classify to
// gorm.ErrRecordNotFound / gorm.ErrDuplicatedKey in the repositories.
func Connect(cfg *config.Config) *gorm.DB {
	var err error

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
	)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})

	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connected successfully")

	err = DB.AutoMigrate(
		&models.User{},
		&models.Application{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	return DB
}
