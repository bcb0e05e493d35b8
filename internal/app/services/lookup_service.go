package services

import (
	"context"

	"github.com/placemate/placemate/internal/app/models"
	"github.com/placemate/placemate/internal/app/repositories"
)

// LookupService serves the read-only reference data used by dropdowns
type LookupService struct {
	lookupRepo *repositories.LookupRepository
}

// NewLookupService creates a new LookupService
func NewLookupService(lookupRepo *repositories.LookupRepository) *LookupService {
	return &LookupService{lookupRepo: lookupRepo}
}

func (s *LookupService) ListCountries(ctx context.Context) ([]*models.Country, error) {
	return s.lookupRepo.ListCountries(ctx)
}

func (s *LookupService) ListStates(ctx context.Context, countryID *int64) ([]*models.State, error) {
	return s.lookupRepo.ListStates(ctx, countryID)
}

func (s *LookupService) ListCities(ctx context.Context, stateID *int64) ([]*models.City, error) {
	return s.lookupRepo.ListCities(ctx, stateID)
}

func (s *LookupService) ListDegrees(ctx context.Context) ([]*models.Degree, error) {
	return s.lookupRepo.ListDegrees(ctx)
}

func (s *LookupService) ListPrograms(ctx context.Context, degreeID *int64) ([]*models.Program, error) {
	return s.lookupRepo.ListPrograms(ctx, degreeID)
}
