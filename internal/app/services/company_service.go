package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/placemate/placemate/internal/app/models"
	"github.com/placemate/placemate/internal/app/models/dto"
	"github.com/placemate/placemate/internal/app/repositories"
)

// CompanyService handles company catalog operations
type CompanyService struct {
	companyRepo *repositories.CompanyRepository
	logger      zerolog.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo *repositories.CompanyRepository, logger zerolog.Logger) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// Create registers a new company
func (s *CompanyService) Create(ctx context.Context, req *dto.CreateCompanyRequest) (*models.Company, error) {
	company := &models.Company{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Website:     req.Website,
		Description: req.Description,
		YearFounded: req.YearFounded,
		CompanySize: req.CompanySize,
		CityID:      req.CityID,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return s.companyRepo.GetByID(ctx, company.ID)
}

// GetByID retrieves a single company
func (s *CompanyService) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}

// List retrieves companies matching the filter, paginated
func (s *CompanyService) List(ctx context.Context, filter dto.CompanyFilter, offset uint64, limit int) ([]*models.Company, int64, error) {
	return s.companyRepo.List(ctx, filter, offset, limit)
}

// Update partially updates a company
func (s *CompanyService) Update(ctx context.Context, id int64, req *dto.UpdateCompanyRequest) (*models.Company, error) {
	if err := s.companyRepo.Update(ctx, id, req); err != nil {
		return nil, err
	}
	return s.companyRepo.GetByID(ctx, id)
}

// Delete removes a company
func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	return s.companyRepo.Delete(ctx, id)
}
