package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/placemate/placemate/internal/app/models"
	"github.com/placemate/placemate/internal/app/repositories"
	"github.com/placemate/placemate/internal/pkg/email"
)

// Notification event kinds
const (
	EventJobOffered    = "job_offered"
	EventOfferAccepted = "offer_accepted"
	EventDrivePosted   = "drive_posted"
)

// NotificationEvent is one unit of work for the dispatcher
type NotificationEvent struct {
	ID   string
	Kind string

	// JobOffered / OfferAccepted
	StudentEmail string
	StudentName  string
	JobTitle     string
	CompanyName  string

	// DrivePosted
	DriveName          string
	Deadline           time.Time
	EligibleProgramIDs []int64
}

// CohortSource resolves drive fan-out recipients
type CohortSource interface {
	ListCohortRecipients(ctx context.Context, targetYearByProgram map[int64]int) ([]repositories.CohortRecipient, error)
}

// ProgramSource resolves program durations for cohort math
type ProgramSource interface {
	GetProgramsByIDs(ctx context.Context, ids []int64) ([]*models.Program, error)
}

// NotificationService dispatches email side effects on a bounded worker
// pool. Submission never blocks the caller and delivery failures only log.
type NotificationService struct {
	mailer      email.EmailService
	studentRepo CohortSource
	lookupRepo  ProgramSource
	logger      zerolog.Logger

	queue chan NotificationEvent
	wg    sync.WaitGroup

	closeOnce sync.Once
	done      chan struct{}
}

// NewNotificationService creates the dispatcher and starts its workers
func NewNotificationService(mailer email.EmailService, studentRepo CohortSource, lookupRepo ProgramSource, workers, queueSize int, logger zerolog.Logger) *NotificationService {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 256
	}

	s := &NotificationService{
		mailer:      mailer,
		studentRepo: studentRepo,
		lookupRepo:  lookupRepo,
		logger:      logger,
		queue:       make(chan NotificationEvent, queueSize),
		done:        make(chan struct{}),
	}

	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}

	return s
}

// NotifyJobOffered queues an offer email to the student
func (s *NotificationService) NotifyJobOffered(studentEmail, studentName, jobTitle, companyName string) {
	s.submit(NotificationEvent{
		ID:           uuid.New().String(),
		Kind:         EventJobOffered,
		StudentEmail: studentEmail,
		StudentName:  studentName,
		JobTitle:     jobTitle,
		CompanyName:  companyName,
	})
}

// NotifyOfferAccepted queues an acceptance confirmation to the student
func (s *NotificationService) NotifyOfferAccepted(studentEmail, studentName, jobTitle, companyName string) {
	s.submit(NotificationEvent{
		ID:           uuid.New().String(),
		Kind:         EventOfferAccepted,
		StudentEmail: studentEmail,
		StudentName:  studentName,
		JobTitle:     jobTitle,
		CompanyName:  companyName,
	})
}

// NotifyDrivePosted queues the new-drive fan-out to the expected
// graduating cohorts of the drive's eligible programs
func (s *NotificationService) NotifyDrivePosted(companyName, driveName string, deadline time.Time, eligibleProgramIDs []int64) {
	s.submit(NotificationEvent{
		ID:                 uuid.New().String(),
		Kind:               EventDrivePosted,
		CompanyName:        companyName,
		DriveName:          driveName,
		Deadline:           deadline,
		EligibleProgramIDs: eligibleProgramIDs,
	})
}

// submit enqueues without blocking; a closed dispatcher or a full queue
// drops the event
func (s *NotificationService) submit(event NotificationEvent) {
	select {
	case <-s.done:
		s.logger.Warn().Str("event_id", event.ID).Str("kind", event.Kind).Msg("Dispatcher closed, notification dropped")
		return
	default:
	}

	select {
	case s.queue <- event:
	default:
		s.logger.Warn().Str("event_id", event.ID).Str("kind", event.Kind).Msg("Notification queue full, event dropped")
	}
}

// Close stops accepting events, drains the queue and waits for in-flight
// deliveries
func (s *NotificationService) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

// The queue channel is never closed; workers exit on done after draining
// whatever is already buffered.
func (s *NotificationService) worker() {
	defer s.wg.Done()
	for {
		select {
		case event := <-s.queue:
			s.deliver(event)
		case <-s.done:
			for {
				select {
				case event := <-s.queue:
					s.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (s *NotificationService) deliver(event NotificationEvent) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Str("event_id", event.ID).Msg("Notification delivery panicked")
		}
	}()

	var err error
	switch event.Kind {
	case EventJobOffered:
		err = s.mailer.SendOfferEmail(event.StudentEmail, event.StudentName, event.JobTitle, event.CompanyName)
	case EventOfferAccepted:
		err = s.mailer.SendOfferAcceptedEmail(event.StudentEmail, event.StudentName, event.JobTitle, event.CompanyName)
	case EventDrivePosted:
		err = s.deliverDrivePosted(event)
	default:
		s.logger.Warn().Str("kind", event.Kind).Msg("Unknown notification kind")
		return
	}

	if err != nil {
		s.logger.Error().Err(err).Str("event_id", event.ID).Str("kind", event.Kind).Msg("Notification delivery failed")
	}
}

func (s *NotificationService) deliverDrivePosted(event NotificationEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	targets, err := s.targetCohorts(ctx, event.EligibleProgramIDs, time.Now().Year())
	if err != nil {
		return err
	}

	recipients, err := s.studentRepo.ListCohortRecipients(ctx, targets)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		s.logger.Info().Str("event_id", event.ID).Msg("No cohort recipients for posted drive")
		return nil
	}

	emails := make([]string, 0, len(recipients))
	for _, rec := range recipients {
		emails = append(emails, rec.Email)
	}

	return s.mailer.SendDrivePostedEmail(emails, event.CompanyName, event.DriveName, event.Deadline)
}

// targetCohorts maps each program to the joining year whose cohort
// graduates this calendar year: target_year = current_year - (duration - 1)
func (s *NotificationService) targetCohorts(ctx context.Context, programIDs []int64, currentYear int) (map[int64]int, error) {
	programs, err := s.lookupRepo.GetProgramsByIDs(ctx, programIDs)
	if err != nil {
		return nil, err
	}

	targets := make(map[int64]int, len(programs))
	for _, p := range programs {
		targets[p.ID] = currentYear - (p.DurationYears - 1)
	}
	return targets, nil
}
