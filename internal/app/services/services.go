package services

import (
	"github.com/rs/zerolog"

	"github.com/placemate/placemate/internal/app/repositories"
	"github.com/placemate/placemate/internal/config"
	"github.com/placemate/placemate/internal/pkg/auth"
	"github.com/placemate/placemate/internal/pkg/email"
)

// Services holds all the service instances
type Services struct {
	AuthService         *AuthService
	UserService         *UserService
	StudentService      *StudentService
	CompanyService      *CompanyService
	PlacementService    *PlacementService
	ApplicationService  *ApplicationService
	LookupService       *LookupService
	NotificationService *NotificationService
}

// NewServices initializes all services
func NewServices(cfg *config.Config, repos *repositories.Repositories, jwtService *auth.JWTService, mailer email.EmailService, logger zerolog.Logger) *Services {
	notifications := NewNotificationService(
		mailer,
		repos.StudentRepository,
		repos.LookupRepository,
		cfg.Notifications.Workers,
		cfg.Notifications.QueueSize,
		logger,
	)

	return &Services{
		AuthService:         NewAuthService(repos.UserRepository, repos.TokenRepository, jwtService, logger),
		UserService:         NewUserService(repos.UserRepository, repos.RoleRepository, mailer, logger),
		StudentService:      NewStudentService(repos.StudentRepository, repos.RoleRepository, repos.LookupRepository, mailer, logger),
		CompanyService:      NewCompanyService(repos.CompanyRepository, logger),
		PlacementService:    NewPlacementService(repos.PlacementRepository, repos.CompanyRepository, notifications, logger),
		ApplicationService:  NewApplicationService(repos.ApplicationRepository, repos.PlacementRepository, repos.StudentRepository, notifications, logger),
		LookupService:       NewLookupService(repos.LookupRepository),
		NotificationService: notifications,
	}
}
