package repository

import (
	"context"
	"errors"

	"github.com/hkpos/hkpos-api/internal/domain/entity"
	domainRepo "github.com/hkpos/hkpos-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type pinRepository struct {
	db *gorm.DB
}

// NewPINRepository creates a new PIN repository
func NewPINRepository(db *gorm.DB) domainRepo.PINRepository {
	return &pinRepository{db: db}
}

func (r *pinRepository) GetByAction(ctx context.Context, action string) (*entity.ActionPIN, error) {
	var pin entity.ActionPIN
	err := r.db.WithContext(ctx).First(&pin, "action = ?", action).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pin, err
}

func (r *pinRepository) Upsert(ctx context.Context, pin *entity.ActionPIN) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "action"}},
		DoUpdates: clause.AssignmentColumns([]string{"pin_hash", "updated_at"}),
	}).Create(pin).Error
}
