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
)

// UserService handles user management operations
type UserService struct {
	userRepo *repositories.UserRepository
	roleRepo *repositories.RoleRepository
	mailer   email.EmailService
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repositories.UserRepository, roleRepo *repositories.RoleRepository, mailer email.EmailService, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		mailer:   mailer,
		logger:   logger,
	}
}

// Register creates a user with a generated random password, assigns the
// requested roles and emails the credentials off the request path
func (s *UserService) Register(ctx context.Context, req *dto.RegisterUserRequest) (*models.User, error) {
	count, err := s.roleRepo.CountByIDs(ctx, req.RoleIDs)
	if err != nil {
		return nil, err
	}
	if count != len(req.RoleIDs) {
		return nil, apperrors.ErrRoleNotFound
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

	if err := s.userRepo.Create(ctx, user, req.RoleIDs); err != nil {
		return nil, err
	}

	go func() {
		if err := s.mailer.SendInitialPasswordEmail(user.Email, user.FirstName, password); err != nil {
			s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send initial password email")
		}
	}()

	created, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return user, nil
	}
	return created, nil
}

// GetByID retrieves one user
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// List retrieves users, paginated
func (s *UserService) List(ctx context.Context, search string, offset uint64, limit int) ([]*models.User, int64, error) {
	return s.userRepo.List(ctx, search, offset, limit)
}

// UpdateProfile applies a self-service profile update
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	current, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	firstName := current.FirstName
	if req.FirstName != nil {
		firstName = *req.FirstName
	}
	lastName := current.LastName
	if req.LastName != nil {
		lastName = *req.LastName
	}
	phone := current.Phone
	if req.Phone != nil {
		phone = req.Phone
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, firstName, lastName, phone); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, userID)
}

// UpdateRoles replaces a user's role assignments. Admins cannot change
// their own roles.
func (s *UserService) UpdateRoles(ctx context.Context, callerID, userID int64, roleIDs []int64) (*models.User, error) {
	if userID == callerID {
		return nil, apperrors.NewForbiddenError("Cannot modify own roles")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	count, err := s.roleRepo.CountByIDs(ctx, roleIDs)
	if err != nil {
		return nil, err
	}
	if count != len(roleIDs) {
		return nil, apperrors.ErrRoleNotFound
	}

	if err := s.userRepo.ReplaceRoles(ctx, userID, roleIDs); err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, userID)
}

// SetActivation toggles a user's active flag. Self-deactivation is
// rejected; reactivating yourself is a no-op and stays allowed.
func (s *UserService) SetActivation(ctx context.Context, callerID, userID int64, isActive bool) error {
	if userID == callerID && !isActive {
		return apperrors.NewForbiddenError("Cannot deactivate own account")
	}
	return s.userRepo.SetActive(ctx, userID, isActive)
}

// CreateRole creates a new named role
func (s *UserService) CreateRole(ctx context.Context, req *dto.CreateRoleRequest) (*models.Role, error) {
	role := &models.Role{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// ListRoles retrieves all roles
func (s *UserService) ListRoles(ctx context.Context) ([]*models.Role, error) {
	return s.roleRepo.GetAll(ctx)
}
