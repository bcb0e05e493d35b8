package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/placemate/placemate/internal/app/models"
	"github.com/placemate/placemate/internal/app/models/dto"
	"github.com/placemate/placemate/internal/app/repositories"
)

type mockApplicationStore struct{ mock.Mock }

func (m *mockApplicationStore) ExistsByDriveAndStudent(ctx context.Context, companyDriveID, studentID int64) (bool, error) {
	args := m.Called(ctx, companyDriveID, studentID)
	return args.Bool(0), args.Error(1)
}

func (m *mockApplicationStore) CreateWithPreferences(ctx context.Context, app *models.CompanyDriveApplication, prefs []*models.JobPreference) error {
	args := m.Called(ctx, app, prefs)
	return args.Error(0)
}

func (m *mockApplicationStore) GetByID(ctx context.Context, id int64) (*models.CompanyDriveApplication, error) {
	args := m.Called(ctx, id)
	if app, ok := args.Get(0).(*models.CompanyDriveApplication); ok {
		return app, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockApplicationStore) List(ctx context.Context, filter dto.ApplicationFilter, offset uint64, limit int) ([]*models.CompanyDriveApplication, int64, error) {
	args := m.Called(ctx, filter, offset, limit)
	var apps []*models.CompanyDriveApplication
	if v, ok := args.Get(0).([]*models.CompanyDriveApplication); ok {
		apps = v
	}
	return apps, int64(args.Int(1)), args.Error(2)
}

func (m *mockApplicationStore) UpdateStatus(ctx context.Context, id int64, fromStatuses []string, toStatus string, offeredJobID *int64) error {
	args := m.Called(ctx, id, fromStatuses, toStatus, offeredJobID)
	return args.Error(0)
}

func (m *mockApplicationStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockDriveStore struct{ mock.Mock }

func (m *mockDriveStore) GetCompanyDriveByID(ctx context.Context, id int64) (*models.CompanyDrive, error) {
	args := m.Called(ctx, id)
	if drive, ok := args.Get(0).(*models.CompanyDrive); ok {
		return drive, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDriveStore) GetJobByID(ctx context.Context, id int64) (*models.Job, error) {
	args := m.Called(ctx, id)
	if job, ok := args.Get(0).(*models.Job); ok {
		return job, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockProfileStore struct{ mock.Mock }

func (m *mockProfileStore) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	args := m.Called(ctx, userID)
	if profile, ok := args.Get(0).(*models.StudentProfile); ok {
		return profile, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileStore) GetByID(ctx context.Context, id int64) (*models.StudentProfile, error) {
	args := m.Called(ctx, id)
	if profile, ok := args.Get(0).(*models.StudentProfile); ok {
		return profile, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockOfferNotifier struct{ mock.Mock }

func (m *mockOfferNotifier) NotifyJobOffered(studentEmail, studentName, jobTitle, companyName string) {
	m.Called(studentEmail, studentName, jobTitle, companyName)
}

func (m *mockOfferNotifier) NotifyOfferAccepted(studentEmail, studentName, jobTitle, companyName string) {
	m.Called(studentEmail, studentName, jobTitle, companyName)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) UpdateLastLogin(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	args := m.Called(ctx, userID, hashedPassword)
	return args.Error(0)
}

type mockTokenStore struct{ mock.Mock }

func (m *mockTokenStore) Create(ctx context.Context, tokenID string, userID int64, expiresAt time.Time) error {
	args := m.Called(ctx, tokenID, userID, expiresAt)
	return args.Error(0)
}

func (m *mockTokenStore) GetByTokenID(ctx context.Context, tokenID string) (*models.RefreshToken, error) {
	args := m.Called(ctx, tokenID)
	if token, ok := args.Get(0).(*models.RefreshToken); ok {
		return token, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTokenStore) Revoke(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *mockTokenStore) RevokeAllForUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockTokenStore) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return int64(args.Int(0)), args.Error(1)
}

type mockCohortSource struct{ mock.Mock }

func (m *mockCohortSource) ListCohortRecipients(ctx context.Context, targetYearByProgram map[int64]int) ([]repositories.CohortRecipient, error) {
	args := m.Called(ctx, targetYearByProgram)
	var recipients []repositories.CohortRecipient
	if v, ok := args.Get(0).([]repositories.CohortRecipient); ok {
		recipients = v
	}
	return recipients, args.Error(1)
}

type mockProgramSource struct{ mock.Mock }

func (m *mockProgramSource) GetProgramsByIDs(ctx context.Context, ids []int64) ([]*models.Program, error) {
	args := m.Called(ctx, ids)
	var programs []*models.Program
	if v, ok := args.Get(0).([]*models.Program); ok {
		programs = v
	}
	return programs, args.Error(1)
}
