package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hkpos/hkpos-api/internal/domain/entity"
	domainRepo "github.com/hkpos/hkpos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type taxProfileRepository struct {
	db *gorm.DB
}

// NewTaxProfileRepository creates a new tax profile repository
func NewTaxProfileRepository(db *gorm.DB) domainRepo.TaxProfileRepository {
	return &taxProfileRepository{db: db}
}

func (r *taxProfileRepository) Create(ctx context.Context, profile *entity.TaxProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *taxProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxProfile, error) {
	var profile entity.TaxProfile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (r *taxProfileRepository) List(ctx context.Context) ([]entity.TaxProfile, error) {
	var profiles []entity.TaxProfile
	err := r.db.WithContext(ctx).Order("name ASC").Find(&profiles).Error
	return profiles, err
}

func (r *taxProfileRepository) Update(ctx context.Context, profile *entity.TaxProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *taxProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.TaxProfile{}, "id = ?", id).Error
}
