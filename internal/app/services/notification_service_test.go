package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/placemate/placemate/internal/app/models"
	"github.com/placemate/placemate/internal/app/repositories"
)

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendInitialPasswordEmail(toEmail, toName, password string) error {
	args := m.Called(toEmail, toName, password)
	return args.Error(0)
}

func (m *mockMailer) SendDrivePostedEmail(toEmails []string, companyName, driveName string, deadline time.Time) error {
	args := m.Called(toEmails, companyName, driveName, deadline)
	return args.Error(0)
}

func (m *mockMailer) SendOfferEmail(toEmail, toName, jobTitle, companyName string) error {
	args := m.Called(toEmail, toName, jobTitle, companyName)
	return args.Error(0)
}

func (m *mockMailer) SendOfferAcceptedEmail(toEmail, toName, jobTitle, companyName string) error {
	args := m.Called(toEmail, toName, jobTitle, companyName)
	return args.Error(0)
}

func TestTargetCohorts(t *testing.T) {
	programs := new(mockProgramSource)
	svc := NewNotificationService(new(mockMailer), new(mockCohortSource), programs, 1, 4, zerolog.Nop())
	defer svc.Close()

	programs.On("GetProgramsByIDs", mock.Anything, []int64{10, 20}).Return([]*models.Program{
		{ID: 10, DurationYears: 4},
		{ID: 20, DurationYears: 2},
	}, nil)

	targets, err := svc.targetCohorts(context.Background(), []int64{10, 20}, 2026)

	require.NoError(t, err)
	assert.Equal(t, map[int64]int{10: 2023, 20: 2025}, targets)
}

func TestNotifyJobOfferedDelivers(t *testing.T) {
	mailer := new(mockMailer)
	svc := NewNotificationService(mailer, new(mockCohortSource), new(mockProgramSource), 1, 4, zerolog.Nop())

	mailer.On("SendOfferEmail", "jane.doe@university.edu", "Jane Doe", "Backend Engineer", "Acme Corp").Return(nil)

	svc.NotifyJobOffered("jane.doe@university.edu", "Jane Doe", "Backend Engineer", "Acme Corp")
	svc.Close()

	mailer.AssertExpectations(t)
}

func TestNotifyDrivePostedFansOutToCohorts(t *testing.T) {
	mailer := new(mockMailer)
	cohorts := new(mockCohortSource)
	programs := new(mockProgramSource)
	svc := NewNotificationService(mailer, cohorts, programs, 1, 4, zerolog.Nop())

	deadline := time.Now().Add(72 * time.Hour)
	currentYear := time.Now().Year()

	programs.On("GetProgramsByIDs", mock.Anything, []int64{10}).
		Return([]*models.Program{{ID: 10, DurationYears: 4}}, nil)
	cohorts.On("ListCohortRecipients", mock.Anything, map[int64]int{10: currentYear - 3}).
		Return([]repositories.CohortRecipient{
			{Email: "a@university.edu"},
			{Email: "b@university.edu"},
		}, nil)
	mailer.On("SendDrivePostedEmail",
		[]string{"a@university.edu", "b@university.edu"}, "Acme Corp", "Placements 2026", deadline).Return(nil)

	svc.NotifyDrivePosted("Acme Corp", "Placements 2026", deadline, []int64{10})
	svc.Close()

	mailer.AssertExpectations(t)
	cohorts.AssertExpectations(t)
}

func TestNotifyDrivePostedNoRecipients(t *testing.T) {
	mailer := new(mockMailer)
	cohorts := new(mockCohortSource)
	programs := new(mockProgramSource)
	svc := NewNotificationService(mailer, cohorts, programs, 1, 4, zerolog.Nop())

	programs.On("GetProgramsByIDs", mock.Anything, mock.Anything).
		Return([]*models.Program{{ID: 10, DurationYears: 4}}, nil)
	cohorts.On("ListCohortRecipients", mock.Anything, mock.Anything).
		Return([]repositories.CohortRecipient{}, nil)

	svc.NotifyDrivePosted("Acme Corp", "Placements 2026", time.Now(), []int64{10})
	svc.Close()

	mailer.AssertNotCalled(t, "SendDrivePostedEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitAfterCloseDropsEvent(t *testing.T) {
	mailer := new(mockMailer)
	svc := NewNotificationService(mailer, new(mockCohortSource), new(mockProgramSource), 1, 4, zerolog.Nop())
	svc.Close()

	// Must not panic or block
	svc.NotifyJobOffered("jane.doe@university.edu", "Jane Doe", "Backend Engineer", "Acme Corp")

	mailer.AssertNotCalled(t, "SendOfferEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCloseIsIdempotent(t *testing.T) {
	svc := NewNotificationService(new(mockMailer), new(mockCohortSource), new(mockProgramSource), 2, 4, zerolog.Nop())

	svc.Close()
	assert.NotPanics(t, func() { svc.Close() })
}
