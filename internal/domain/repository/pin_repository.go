package repository

import (
	"context"

	"github.com/hkpos/hkpos-api/internal/domain/entity"
)

// PINRepository defines the interface for action PIN data access
type PINRepository interface {
	GetByAction(ctx context.Context, action string) (*entity.ActionPIN, error)
	Upsert(ctx context.Context, pin *entity.ActionPIN) error
}
