package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/hkpos/hkpos-api/internal/domain/entity"
	"github.com/hkpos/hkpos-api/internal/domain/repository"
	"github.com/hkpos/hkpos-api/pkg/apperror"
)

// TaxProfileService handles tax profile management
type TaxProfileService struct {
	taxProfileRepo repository.TaxProfileRepository
}

// NewTaxProfileService creates a new tax profile service
func NewTaxProfileService(taxProfileRepo repository.TaxProfileRepository) *TaxProfileService {
	return &TaxProfileService{taxProfileRepo: taxProfileRepo}
}

// TaxProfileInput represents the create/update tax profile input
type TaxProfileInput struct {
	Name  string
	Rates entity.RateMap
}

// CreateTaxProfile creates a new tax profile
func (s *TaxProfileService) CreateTaxProfile(ctx context.Context, input *TaxProfileInput) (*entity.TaxProfile, error) {
	if err := validateProfileInput(input); err != nil {
		return nil, err
	}
	profile := &entity.TaxProfile{
		Name:  input.Name,
		Rates: input.Rates,
	}
	if err := s.taxProfileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetTaxProfile retrieves a tax profile by ID
func (s *TaxProfileService) GetTaxProfile(ctx context.Context, id uuid.UUID) (*entity.TaxProfile, error) {
	profile, err := s.taxProfileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Tax profile")
	}
	return profile, nil
}

// ListTaxProfiles lists all tax profiles
func (s *TaxProfileService) ListTaxProfiles(ctx context.Context) ([]entity.TaxProfile, error) {
	return s.taxProfileRepo.List(ctx)
}

// UpdateTaxProfile updates a tax profile. Historical sales keep the rates
// they were sold under; only future checkouts see the change.
func (s *TaxProfileService) UpdateTaxProfile(ctx context.Context, id uuid.UUID, input *TaxProfileInput) (*entity.TaxProfile, error) {
	if err := validateProfileInput(input); err != nil {
		return nil, err
	}
	profile, err := s.taxProfileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NewNotFoundError("Tax profile")
	}
	profile.Name = input.Name
	profile.Rates = input.Rates
	if err := s.taxProfileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteTaxProfile soft deletes a tax profile. Products referencing it fall
// back to selling untaxed.
func (s *TaxProfileService) DeleteTaxProfile(ctx context.Context, id uuid.UUID) error {
	profile, err := s.taxProfileRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if profile == nil {
		return apperror.NewNotFoundError("Tax profile")
	}
	return s.taxProfileRepo.Delete(ctx, id)
}

func validateProfileInput(input *TaxProfileInput) error {
	if input.Name == "" {
		return apperror.NewBadRequestError("Tax profile name is required")
	}
	for name, rate := range input.Rates {
		if name == "" {
			return apperror.NewBadRequestError("Tax name cannot be empty")
		}
		if rate < 0 || rate > 1 {
			return apperror.NewBadRequestError("Tax rate must be between 0 and 1")
		}
	}
	return nil
}
