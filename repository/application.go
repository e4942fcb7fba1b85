// Package repository contains the data access layer over GORM. Every method
// classifies persistence failures into the AppError taxonomy so handlers map
// them to the right status code instead of a blanket 500.
package repository

import (
	"context"
	"errors"

	"apptrack/models"

	"gorm.io/gorm"
)

// ApplicationRepository defines the interface for application record operations.
type ApplicationRepository interface {
	List(ctx context.Context) ([]models.Application, error)
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	Create(ctx context.Context, app *models.Application) error
	Update(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, id uint) error
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) List(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.WithContext(ctx).Order("id").Find(&apps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return apps, nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	if err := r.db.WithContext(ctx).First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Application", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &app, nil
}

func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *applicationRepository) Update(ctx context.Context, app *models.Application) error {
	if err := r.db.WithContext(ctx).Save(app).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *applicationRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&models.Application{}, id)
	if tx.Error != nil {
		return models.NewInternalError(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return models.NewNotFoundError("Application", id)
	}
	return nil
}
