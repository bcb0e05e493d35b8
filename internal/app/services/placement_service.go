package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/placemate/placemate/internal/app/models"
	"github.com/placemate/placemate/internal/app/models/dto"
	"github.com/placemate/placemate/internal/app/repositories"
	"github.com/placemate/placemate/internal/pkg/apperrors"
)

// PlacementService handles placement drives, company drives and jobs
type PlacementService struct {
	placementRepo *repositories.PlacementRepository
	companyRepo   *repositories.CompanyRepository
	notifications *NotificationService
	logger        zerolog.Logger
}

// NewPlacementService creates a new PlacementService
func NewPlacementService(placementRepo *repositories.PlacementRepository, companyRepo *repositories.CompanyRepository, notifications *NotificationService, logger zerolog.Logger) *PlacementService {
	return &PlacementService{
		placementRepo: placementRepo,
		companyRepo:   companyRepo,
		notifications: notifications,
		logger:        logger,
	}
}

// CreateDrive creates a hiring season
func (s *PlacementService) CreateDrive(ctx context.Context, req *dto.CreatePlacementDriveRequest) (*models.PlacementDrive, error) {
	drive := &models.PlacementDrive{
		Name:        req.Name,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Description: req.Description,
	}
	if err := s.placementRepo.CreateDrive(ctx, drive); err != nil {
		return nil, err
	}
	return s.placementRepo.GetDriveByID(ctx, drive.ID)
}

// GetDriveByID retrieves a single hiring season
func (s *PlacementService) GetDriveByID(ctx context.Context, id int64) (*models.PlacementDrive, error) {
	return s.placementRepo.GetDriveByID(ctx, id)
}

// ListDrives retrieves hiring seasons, paginated
func (s *PlacementService) ListDrives(ctx context.Context, offset uint64, limit int) ([]*models.PlacementDrive, int64, error) {
	return s.placementRepo.ListDrives(ctx, offset, limit)
}

// UpdateDrive partially updates a hiring season
func (s *PlacementService) UpdateDrive(ctx context.Context, id int64, req *dto.UpdatePlacementDriveRequest) (*models.PlacementDrive, error) {
	if err := s.placementRepo.UpdateDrive(ctx, id, req); err != nil {
		return nil, err
	}
	return s.placementRepo.GetDriveByID(ctx, id)
}

// DeleteDrive removes a hiring season
func (s *PlacementService) DeleteDrive(ctx context.Context, id int64) error {
	return s.placementRepo.DeleteDrive(ctx, id)
}

// CreateCompanyDrive opens one company's hiring cycle within a placement
// drive, creating the drive and all its jobs atomically. Eligible cohorts
// are notified off the request path.
func (s *PlacementService) CreateCompanyDrive(ctx context.Context, req *dto.CreateCompanyDriveRequest) (*models.CompanyDrive, error) {
	season, err := s.placementRepo.GetDriveByID(ctx, req.PlacementDriveID)
	if err != nil {
		return nil, err
	}
	company, err := s.companyRepo.GetByID(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if !req.ApplicationDeadline.After(time.Now()) {
		return nil, apperrors.NewValidationError("application deadline must be in the future")
	}

	drive := &models.CompanyDrive{
		PlacementDriveID:    req.PlacementDriveID,
		CompanyID:           req.CompanyID,
		DriveType:           req.DriveType,
		JobMode:             req.JobMode,
		ApplicationDeadline: req.ApplicationDeadline,
		Status:              models.DriveStatusOpen,
		MultipleAllowed:     req.MultipleAllowed,
		Rounds:              req.Rounds,
		Locations:           req.Locations,
	}

	jobs := make([]*models.Job, 0, len(req.Jobs))
	for _, in := range req.Jobs {
		jobs = append(jobs, &models.Job{
			Title:                in.Title,
			DescriptionUG:        in.DescriptionUG,
			DescriptionPG:        in.DescriptionPG,
			UGPackageMin:         in.UGPackageMin,
			UGPackageMax:         in.UGPackageMax,
			PGPackageMin:         in.PGPackageMin,
			PGPackageMax:         in.PGPackageMax,
			UGStipend:            in.UGStipend,
			PGStipend:            in.PGStipend,
			MinTenthPercentage:   in.MinTenthPercentage,
			MinTwelfthPercentage: in.MinTwelfthPercentage,
			MinUGCGPA:            in.MinUGCGPA,
			MinPGCGPA:            in.MinPGCGPA,
			MaxBacklogs:          in.MaxBacklogs,
			EligibleProgramIDs:   in.EligibleProgramIDs,
		})
	}

	if err := s.placementRepo.CreateCompanyDrive(ctx, drive, jobs); err != nil {
		return nil, err
	}

	s.notifications.NotifyDrivePosted(company.Name, season.Name, drive.ApplicationDeadline, eligibleProgramUnion(jobs))

	return s.placementRepo.GetCompanyDriveByID(ctx, drive.ID)
}

// eligibleProgramUnion collects the distinct program IDs across a set of jobs
func eligibleProgramUnion(jobs []*models.Job) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, job := range jobs {
		for _, id := range job.EligibleProgramIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

// GetCompanyDriveByID retrieves a company drive with its jobs
func (s *PlacementService) GetCompanyDriveByID(ctx context.Context, id int64) (*models.CompanyDrive, error) {
	drive, err := s.placementRepo.GetCompanyDriveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	jobs, err := s.placementRepo.ListJobsByCompanyDrive(ctx, id)
	if err != nil {
		return nil, err
	}
	drive.Jobs = make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		drive.Jobs = append(drive.Jobs, *job)
	}
	return drive, nil
}

// ListCompanyDrives retrieves company drives matching the filter, paginated
func (s *PlacementService) ListCompanyDrives(ctx context.Context, filter dto.CompanyDriveFilter, offset uint64, limit int) ([]*models.CompanyDrive, int64, error) {
	return s.placementRepo.ListCompanyDrives(ctx, filter, offset, limit)
}

// UpdateCompanyDrive partially updates a company drive
func (s *PlacementService) UpdateCompanyDrive(ctx context.Context, id int64, req *dto.UpdateCompanyDriveRequest) (*models.CompanyDrive, error) {
	if err := s.placementRepo.UpdateCompanyDrive(ctx, id, req); err != nil {
		return nil, err
	}
	return s.GetCompanyDriveByID(ctx, id)
}

// GetJobByID retrieves a single job with its eligible programs
func (s *PlacementService) GetJobByID(ctx context.Context, id int64) (*models.Job, error) {
	return s.placementRepo.GetJobByID(ctx, id)
}

// ListJobsByCompanyDrive retrieves all jobs under a company drive
func (s *PlacementService) ListJobsByCompanyDrive(ctx context.Context, companyDriveID int64) ([]*models.Job, error) {
	if _, err := s.placementRepo.GetCompanyDriveByID(ctx, companyDriveID); err != nil {
		return nil, err
	}
	return s.placementRepo.ListJobsByCompanyDrive(ctx, companyDriveID)
}
