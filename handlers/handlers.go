// Package handlers implements the HTTP endpoints of the service.
package handlers

import (
	"apptrack/repository"

	"gorm.io/gorm"
)

var (
	appRepo  repository.ApplicationRepository
	userRepo repository.UserRepository
)

// Init wires the handlers to repositories backed by db.
func Init(db *gorm.DB) {
	appRepo = repository.NewApplicationRepository(db)
	userRepo = repository.NewUserRepository(db)
}
