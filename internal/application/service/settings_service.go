package service

import (
	"context"

	"github.com/hkpos/hkpos-api/internal/domain/entity"
	"github.com/hkpos/hkpos-api/internal/domain/repository"
)

// SettingsService handles store settings business logic
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetSettings retrieves store settings, creating defaults if not exists
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.StoreSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	// If no settings exist, create default settings
	if settings == nil {
		settings = &entity.StoreSettings{
			BusinessName: "HK POS",
			RoundCash:    false,
		}
		if err := s.settingsRepo.Create(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

// UpdateSettingsInput represents the input for updating settings
type UpdateSettingsInput struct {
	BusinessName string
	RoundCash    bool
}

// UpdateSettings updates store settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.StoreSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	settings.BusinessName = input.BusinessName
	settings.RoundCash = input.RoundCash

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
