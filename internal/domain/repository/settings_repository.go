package repository

import (
	"context"

	"github.com/hkpos/hkpos-api/internal/domain/entity"
)

// SettingsRepository defines the interface for store settings data access
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.StoreSettings, error)
	Create(ctx context.Context, settings *entity.StoreSettings) error
	Update(ctx context.Context, settings *entity.StoreSettings) error
}
