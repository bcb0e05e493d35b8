package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/placemate/placemate/internal/app/models"
	"github.com/placemate/placemate/internal/app/models/dto"
	"github.com/placemate/placemate/internal/pkg/apperrors"
)

// ApplicationStore is the persistence surface of the application engine
type ApplicationStore interface {
	ExistsByDriveAndStudent(ctx context.Context, companyDriveID, studentID int64) (bool, error)
	CreateWithPreferences(ctx context.Context, app *models.CompanyDriveApplication, prefs []*models.JobPreference) error
	GetByID(ctx context.Context, id int64) (*models.CompanyDriveApplication, error)
	List(ctx context.Context, filter dto.ApplicationFilter, offset uint64, limit int) ([]*models.CompanyDriveApplication, int64, error)
	UpdateStatus(ctx context.Context, id int64, fromStatuses []string, toStatus string, offeredJobID *int64) error
	Delete(ctx context.Context, id int64) error
}

// DriveStore resolves drives and jobs for application checks
type DriveStore interface {
	GetCompanyDriveByID(ctx context.Context, id int64) (*models.CompanyDrive, error)
	GetJobByID(ctx context.Context, id int64) (*models.Job, error)
}

// ProfileStore resolves student profiles for the calling identity
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error)
	GetByID(ctx context.Context, id int64) (*models.StudentProfile, error)
}

// OfferNotifier emits application lifecycle notifications
type OfferNotifier interface {
	NotifyJobOffered(studentEmail, studentName, jobTitle, companyName string)
	NotifyOfferAccepted(studentEmail, studentName, jobTitle, companyName string)
}

// ApplicationService implements application submission, withdrawal and
// the offer state machine
type ApplicationService struct {
	appRepo     ApplicationStore
	driveRepo   DriveStore
	studentRepo ProfileStore
	notifier    OfferNotifier
	logger      zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(appRepo ApplicationStore, driveRepo DriveStore, studentRepo ProfileStore, notifier OfferNotifier, logger zerolog.Logger) *ApplicationService {
	return &ApplicationService{
		appRepo:     appRepo,
		driveRepo:   driveRepo,
		studentRepo: studentRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

// Submit validates and persists a student's application with its ranked
// job preferences. Preconditions run in a fixed order, each with its own
// failure; on success everything commits in one transaction.
func (s *ApplicationService) Submit(ctx context.Context, userID int64, req *dto.SubmitApplicationRequest) (*models.CompanyDriveApplication, error) {
	profile, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	drive, err := s.driveRepo.GetCompanyDriveByID(ctx, req.CompanyDriveID)
	if err != nil {
		return nil, err
	}
	if drive.Status != models.DriveStatusOpen {
		return nil, apperrors.ErrDriveNotOpen
	}
	if time.Now().After(drive.ApplicationDeadline) {
		return nil, apperrors.ErrDeadlinePassed
	}

	exists, err := s.appRepo.ExistsByDriveAndStudent(ctx, drive.ID, profile.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAlreadyApplied
	}

	if !profile.IsVerified {
		return nil, apperrors.ErrProfileNotVerified
	}

	if !drive.MultipleAllowed && len(req.Preferences) > 1 {
		return nil, apperrors.ErrMultipleNotAllowed
	}

	// Eligibility is checked for every preferred job before any
	// structural checks, so a student learns about a failed criterion
	// even when the request is otherwise malformed.
	jobs := make([]*models.Job, 0, len(req.Preferences))
	for _, entry := range req.Preferences {
		job, err := s.driveRepo.GetJobByID(ctx, entry.JobID)
		if err != nil {
			return nil, err
		}

		eligible, reason := CheckEligibility(profile, job)
		if !eligible {
			return nil, apperrors.NewCustomError(apperrors.ErrNotEligible,
				"Not eligible for "+job.Title+": "+reason)
		}
		jobs = append(jobs, job)
	}

	seenJobs := make(map[int64]bool, len(req.Preferences))
	seenRanks := make(map[int]bool, len(req.Preferences))
	prefs := make([]*models.JobPreference, 0, len(req.Preferences))
	for i, entry := range req.Preferences {
		if jobs[i].CompanyDriveID != drive.ID {
			return nil, apperrors.ErrJobDriveMismatch
		}

		if seenJobs[entry.JobID] || seenRanks[entry.PreferenceOrder] {
			return nil, apperrors.ErrDuplicatePreference
		}
		seenJobs[entry.JobID] = true
		seenRanks[entry.PreferenceOrder] = true

		prefs = append(prefs, &models.JobPreference{
			JobID:           entry.JobID,
			PreferenceOrder: entry.PreferenceOrder,
		})
	}

	app := &models.CompanyDriveApplication{
		CompanyDriveID: drive.ID,
		StudentID:      profile.ID,
		Status:         models.ApplicationStatusApplied,
		ResumeURL:      req.ResumeURL,
	}
	if app.ResumeURL == nil {
		app.ResumeURL = profile.ResumeURL
	}

	if err := s.appRepo.CreateWithPreferences(ctx, app, prefs); err != nil {
		return nil, err
	}

	app.Preferences = make([]models.JobPreference, len(prefs))
	for i, pref := range prefs {
		app.Preferences[i] = *pref
	}

	return app, nil
}

// Withdraw deletes a student's own application. Legal only from Applied
// while the parent drive is still Open and before its deadline.
func (s *ApplicationService) Withdraw(ctx context.Context, userID, applicationID int64) error {
	profile, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.StudentID != profile.ID {
		return apperrors.ErrPermissionDenied
	}
	if app.Status != models.ApplicationStatusApplied {
		return apperrors.NewConflictError("only applications in Applied state can be withdrawn")
	}

	drive, err := s.driveRepo.GetCompanyDriveByID(ctx, app.CompanyDriveID)
	if err != nil {
		return err
	}
	if drive.Status != models.DriveStatusOpen {
		return apperrors.ErrDriveNotOpen
	}
	if time.Now().After(drive.ApplicationDeadline) {
		return apperrors.ErrDeadlinePassed
	}

	return s.appRepo.Delete(ctx, applicationID)
}

// OfferJob transitions Applied -> Offered, records the offered job and
// emits an offer notification. The job must belong to the application's
// drive.
func (s *ApplicationService) OfferJob(ctx context.Context, applicationID, jobID int64) error {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}

	job, err := s.driveRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.CompanyDriveID != app.CompanyDriveID {
		return apperrors.ErrJobDriveMismatch
	}

	if !models.CanTransition(app.Status, models.ApplicationStatusOffered) {
		return apperrors.NewCustomError(apperrors.ErrInvalidTransition,
			"can only offer jobs to applications in Applied state")
	}

	err = s.appRepo.UpdateStatus(ctx, applicationID,
		[]string{models.ApplicationStatusApplied}, models.ApplicationStatusOffered, &jobID)
	if err != nil {
		return err
	}

	s.notifyOffer(ctx, app, job.Title, s.notifier.NotifyJobOffered)

	return nil
}

// AcceptOffer transitions Offered -> Accepted for the student's own
// application and emits an acceptance notification
func (s *ApplicationService) AcceptOffer(ctx context.Context, userID, applicationID int64) error {
	app, err := s.ownedApplication(ctx, userID, applicationID)
	if err != nil {
		return err
	}

	if !models.CanTransition(app.Status, models.ApplicationStatusAccepted) {
		return apperrors.NewCustomError(apperrors.ErrInvalidTransition, "no job offer to accept")
	}

	err = s.appRepo.UpdateStatus(ctx, applicationID,
		[]string{models.ApplicationStatusOffered}, models.ApplicationStatusAccepted, nil)
	if err != nil {
		return err
	}

	jobTitle := ""
	if app.OfferedJobID != nil {
		if job, err := s.driveRepo.GetJobByID(ctx, *app.OfferedJobID); err == nil {
			jobTitle = job.Title
		}
	}
	s.notifyOffer(ctx, app, jobTitle, s.notifier.NotifyOfferAccepted)

	return nil
}

// DeclineOffer transitions Offered -> Declined for the student's own
// application
func (s *ApplicationService) DeclineOffer(ctx context.Context, userID, applicationID int64) error {
	app, err := s.ownedApplication(ctx, userID, applicationID)
	if err != nil {
		return err
	}

	if !models.CanTransition(app.Status, models.ApplicationStatusDeclined) {
		return apperrors.NewCustomError(apperrors.ErrInvalidTransition, "no job offer to decline")
	}

	return s.appRepo.UpdateStatus(ctx, applicationID,
		[]string{models.ApplicationStatusOffered}, models.ApplicationStatusDeclined, nil)
}

// Reject transitions Applied or Offered -> Rejected
func (s *ApplicationService) Reject(ctx context.Context, applicationID int64) error {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}

	if !models.CanTransition(app.Status, models.ApplicationStatusRejected) {
		return apperrors.NewCustomError(apperrors.ErrInvalidTransition,
			"can only reject applications in Applied or Offered state")
	}

	return s.appRepo.UpdateStatus(ctx, applicationID,
		[]string{models.ApplicationStatusApplied, models.ApplicationStatusOffered},
		models.ApplicationStatusRejected, nil)
}

// GetByID retrieves one application. Students may only read their own.
func (s *ApplicationService) GetByID(ctx context.Context, applicationID int64, userID int64, staff bool) (*models.CompanyDriveApplication, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if !staff {
		profile, err := s.studentRepo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if app.StudentID != profile.ID {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	return app, nil
}

// List retrieves applications matching the filter
func (s *ApplicationService) List(ctx context.Context, filter dto.ApplicationFilter, offset uint64, limit int) ([]*models.CompanyDriveApplication, int64, error) {
	return s.appRepo.List(ctx, filter, offset, limit)
}

// ListOwn retrieves the calling student's applications
func (s *ApplicationService) ListOwn(ctx context.Context, userID int64, offset uint64, limit int) ([]*models.CompanyDriveApplication, int64, error) {
	profile, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	filter := dto.ApplicationFilter{StudentID: &profile.ID}
	return s.appRepo.List(ctx, filter, offset, limit)
}

func (s *ApplicationService) ownedApplication(ctx context.Context, userID, applicationID int64) (*models.CompanyDriveApplication, error) {
	profile, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.StudentID != profile.ID {
		return nil, apperrors.ErrPermissionDenied
	}

	return app, nil
}

func (s *ApplicationService) notifyOffer(ctx context.Context, app *models.CompanyDriveApplication, jobTitle string, notify func(email, name, title, company string)) {
	profile, err := s.studentRepo.GetByID(ctx, app.StudentID)
	if err != nil || profile.User == nil {
		s.logger.Warn().Err(err).Int64("application_id", app.ID).Msg("Could not resolve student for notification")
		return
	}

	companyName := ""
	if drive, err := s.driveRepo.GetCompanyDriveByID(ctx, app.CompanyDriveID); err == nil && drive.Company != nil {
		companyName = drive.Company.Name
	}

	notify(profile.User.Email, profile.User.FullName(), jobTitle, companyName)
}
