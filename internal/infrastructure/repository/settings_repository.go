package repository

import (
	"context"
	"errors"

	"github.com/hkpos/hkpos-api/internal/domain/entity"
	domainRepo "github.com/hkpos/hkpos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*entity.StoreSettings, error) {
	var settings entity.StoreSettings
	err := r.db.WithContext(ctx).First(&settings, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &settings, err
}

func (r *settingsRepository) Create(ctx context.Context, settings *entity.StoreSettings) error {
	settings.ID = 1
	return r.db.WithContext(ctx).Create(settings).Error
}

func (r *settingsRepository) Update(ctx context.Context, settings *entity.StoreSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
