package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hkpos/hkpos-api/internal/domain/entity"
)

// TaxProfileRepository defines the interface for tax profile data access
type TaxProfileRepository interface {
	Create(ctx context.Context, profile *entity.TaxProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxProfile, error)
	List(ctx context.Context) ([]entity.TaxProfile, error)
	Update(ctx context.Context, profile *entity.TaxProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
}
