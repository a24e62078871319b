package service

import (
	"context"

	"github.com/hkpos/hkpos-api/internal/domain/entity"
	"github.com/hkpos/hkpos-api/internal/domain/repository"
	"github.com/hkpos/hkpos-api/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
)

// AuthService verifies the PINs gating protected register actions. There are
// no user accounts; a shared per-action PIN is the whole auth surface.
type AuthService struct {
	pinRepo repository.PINRepository
}

// NewAuthService creates a new auth service
func NewAuthService(pinRepo repository.PINRepository) *AuthService {
	return &AuthService{pinRepo: pinRepo}
}

// CheckPIN verifies the PIN for an action. An action with no stored PIN is
// not gated and always passes.
func (s *AuthService) CheckPIN(ctx context.Context, action, pin string) error {
	stored, err := s.pinRepo.GetByAction(ctx, action)
	if err != nil {
		return err
	}
	if stored == nil {
		return nil
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PINHash), []byte(pin)) != nil {
		return apperror.ErrInvalidPIN
	}
	return nil
}

// SetPIN replaces the PIN for an action. The current PIN must verify first
// when one is already set.
func (s *AuthService) SetPIN(ctx context.Context, action, currentPIN, newPIN string) error {
	if len(newPIN) < 4 {
		return apperror.NewBadRequestError("PIN must be at least 4 digits")
	}
	if err := s.CheckPIN(ctx, action, currentPIN); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPIN), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.pinRepo.Upsert(ctx, &entity.ActionPIN{
		Action:  action,
		PINHash: string(hash),
	})
}
