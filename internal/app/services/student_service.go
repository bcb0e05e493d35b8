package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/placemate/placemate/internal/app/models"
	"github.com/placemate/placemate/internal/app/models/dto"
	"github.com/placemate/placemate/internal/app/repositories"
	"github.com/placemate/placemate/internal/pkg/apperrors"
	"github.com/placemate/placemate/internal/pkg/auth"
	"github.com/placemate/placemate/internal/pkg/email"
	"github.com/placemate/placemate/internal/pkg/validation"
)

// StudentService handles student account and profile operations
type StudentService struct {
	studentRepo *repositories.StudentRepository
	roleRepo    *repositories.RoleRepository
	lookupRepo  *repositories.LookupRepository
	mailer      email.EmailService
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo *repositories.StudentRepository, roleRepo *repositories.RoleRepository, lookupRepo *repositories.LookupRepository, mailer email.EmailService, logger zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		roleRepo:    roleRepo,
		lookupRepo:  lookupRepo,
		mailer:      mailer,
		logger:      logger,
	}
}

// Register creates a student account with its profile in one step. The
// account gets the Student role, a generated password and a credentials
// email off the request path.
func (s *StudentService) Register(ctx context.Context, req *dto.RegisterStudentRequest) (*models.StudentProfile, error) {
	if !validation.IsValidEnrollment(req.EnrollmentNumber) {
		return nil, apperrors.NewValidationError("enrollment number must be 6 to 12 digits")
	}
	if req.Phone != nil && !validation.IsValidPhone(*req.Phone) {
		return nil, apperrors.NewValidationError("invalid phone number format")
	}

	if _, err := s.lookupRepo.GetProgramByID(ctx, req.ProgramID); err != nil {
		return nil, err
	}

	studentRole, err := s.roleRepo.GetByName(ctx, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	password, err := auth.GenerateRandomPassword(12)
	if err != nil {
		return nil, err
	}
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		IsActive:  true,
	}
	profile := &models.StudentProfile{
		ProgramID:         req.ProgramID,
		EnrollmentNumber:  req.EnrollmentNumber,
		JoiningYear:       req.JoiningYear,
		CurrentCGPA:       req.CurrentCGPA,
		TenthPercentage:   req.TenthPercentage,
		TwelfthPercentage: req.TwelfthPercentage,
		BacklogCount:      req.BacklogCount,
	}

	if err := s.studentRepo.CreateWithUser(ctx, user, studentRole.ID, profile); err != nil {
		return nil, err
	}

	go func() {
		if err := s.mailer.SendInitialPasswordEmail(user.Email, user.FirstName, password); err != nil {
			s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send initial password email")
		}
	}()

	return s.studentRepo.GetByID(ctx, profile.ID)
}

// GetByUserID retrieves the profile belonging to a user
func (s *StudentService) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	return s.studentRepo.GetByUserID(ctx, userID)
}

// List retrieves profiles matching the filter, paginated
func (s *StudentService) List(ctx context.Context, filter dto.StudentFilter, offset uint64, limit int) ([]*models.StudentProfile, int64, error) {
	return s.studentRepo.List(ctx, filter, offset, limit)
}

// UpdateSelf applies the self-service subset of profile fields
func (s *StudentService) UpdateSelf(ctx context.Context, userID int64, req *dto.UpdateStudentSelfRequest) (*models.StudentProfile, error) {
	if err := s.studentRepo.UpdateSelf(ctx, userID, req); err != nil {
		return nil, err
	}
	return s.studentRepo.GetByUserID(ctx, userID)
}

// UpdateByUserID applies a staff-side profile update
func (s *StudentService) UpdateByUserID(ctx context.Context, userID int64, req *dto.UpdateStudentAdminRequest) (*models.StudentProfile, error) {
	profile, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.ProgramID != nil {
		if _, err := s.lookupRepo.GetProgramByID(ctx, *req.ProgramID); err != nil {
			return nil, err
		}
	}

	if err := s.studentRepo.Update(ctx, profile.ID, req); err != nil {
		return nil, err
	}

	return s.studentRepo.GetByID(ctx, profile.ID)
}

// MarkAsPlaced records a student as placed
func (s *StudentService) MarkAsPlaced(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	profile, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.studentRepo.SetPlaced(ctx, profile.ID, true); err != nil {
		return nil, err
	}

	return s.studentRepo.GetByID(ctx, profile.ID)
}
