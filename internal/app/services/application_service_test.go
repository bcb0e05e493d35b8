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
	"github.com/placemate/placemate/internal/app/models/dto"
	"github.com/placemate/placemate/internal/pkg/apperrors"
)

type applicationServiceMocks struct {
	apps     *mockApplicationStore
	drives   *mockDriveStore
	profiles *mockProfileStore
	notifier *mockOfferNotifier
}

func newApplicationService(t *testing.T) (*ApplicationService, *applicationServiceMocks) {
	t.Helper()
	m := &applicationServiceMocks{
		apps:     new(mockApplicationStore),
		drives:   new(mockDriveStore),
		profiles: new(mockProfileStore),
		notifier: new(mockOfferNotifier),
	}
	svc := NewApplicationService(m.apps, m.drives, m.profiles, m.notifier, zerolog.Nop())
	return svc, m
}

func verifiedProfile() *models.StudentProfile {
	return &models.StudentProfile{
		ID:                21,
		UserID:            7,
		ProgramID:         10,
		CurrentCGPA:       f64(8.2),
		TenthPercentage:   f64(90),
		TwelfthPercentage: f64(85),
		IsVerified:        true,
	}
}

func openDrive() *models.CompanyDrive {
	return &models.CompanyDrive{
		ID:                  5,
		CompanyID:           3,
		Status:              models.DriveStatusOpen,
		MultipleAllowed:     true,
		ApplicationDeadline: time.Now().Add(48 * time.Hour),
	}
}

func driveJob(id int64) *models.Job {
	return &models.Job{
		ID:                 id,
		CompanyDriveID:     5,
		Title:              "Backend Engineer",
		EligibleProgramIDs: []int64{10},
	}
}

func TestSubmitHappyPath(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)
	m.drives.On("GetCompanyDriveByID", ctx, int64(5)).Return(openDrive(), nil)
	m.apps.On("ExistsByDriveAndStudent", ctx, int64(5), int64(21)).Return(false, nil)
	m.drives.On("GetJobByID", ctx, int64(100)).Return(driveJob(100), nil)
	m.drives.On("GetJobByID", ctx, int64(101)).Return(driveJob(101), nil)
	m.apps.On("CreateWithPreferences", ctx, mock.AnythingOfType("*models.CompanyDriveApplication"), mock.AnythingOfType("[]*models.JobPreference")).Return(nil)

	resume := "https://cdn.example.com/resume.pdf"
	app, err := svc.Submit(ctx, 7, &dto.SubmitApplicationRequest{
		CompanyDriveID: 5,
		ResumeURL:      &resume,
		Preferences: []dto.JobPreferenceInput{
			{JobID: 100, PreferenceOrder: 1},
			{JobID: 101, PreferenceOrder: 2},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApplied, app.Status)
	assert.Equal(t, int64(5), app.CompanyDriveID)
	assert.Equal(t, int64(21), app.StudentID)
	require.NotNil(t, app.ResumeURL)
	assert.Equal(t, resume, *app.ResumeURL)
	require.Len(t, app.Preferences, 2)
	assert.Equal(t, int64(100), app.Preferences[0].JobID)
	assert.Equal(t, 1, app.Preferences[0].PreferenceOrder)
	assert.Equal(t, int64(101), app.Preferences[1].JobID)
	m.apps.AssertExpectations(t)
}

func TestSubmitFallsBackToProfileResume(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	profileResume := "https://cdn.example.com/profile-resume.pdf"
	profile := verifiedProfile()
	profile.ResumeURL = &profileResume

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(profile, nil)
	m.drives.On("GetCompanyDriveByID", ctx, int64(5)).Return(openDrive(), nil)
	m.apps.On("ExistsByDriveAndStudent", ctx, int64(5), int64(21)).Return(false, nil)
	m.drives.On("GetJobByID", ctx, int64(100)).Return(driveJob(100), nil)
	m.apps.On("CreateWithPreferences", ctx, mock.Anything, mock.Anything).Return(nil)

	app, err := svc.Submit(ctx, 7, &dto.SubmitApplicationRequest{
		CompanyDriveID: 5,
		Preferences:    []dto.JobPreferenceInput{{JobID: 100, PreferenceOrder: 1}},
	})

	require.NoError(t, err)
	require.NotNil(t, app.ResumeURL)
	assert.Equal(t, profileResume, *app.ResumeURL)
}

func TestSubmitDriveNotOpen(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	drive := openDrive()
	drive.Status = models.DriveStatusClosed

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)
	m.drives.On("GetCompanyDriveByID", ctx, int64(5)).Return(drive, nil)

	_, err := svc.Submit(ctx, 7, &dto.SubmitApplicationRequest{
		CompanyDriveID: 5,
		Preferences:    []dto.JobPreferenceInput{{JobID: 100, PreferenceOrder: 1}},
	})

	assert.ErrorIs(t, err, apperrors.ErrDriveNotOpen)
	m.apps.AssertNotCalled(t, "CreateWithPreferences", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitDeadlinePassed(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	drive := openDrive()
	drive.ApplicationDeadline = time.Now().Add(-time.Hour)

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)
	m.drives.On("GetCompanyDriveByID", ctx, int64(5)).Return(drive, nil)

	_, err := svc.Submit(ctx, 7, &dto.SubmitApplicationRequest{
		CompanyDriveID: 5,
		Preferences:    []dto.JobPreferenceInput{{JobID: 100, PreferenceOrder: 1}},
	})

	assert.ErrorIs(t, err, apperrors.ErrDeadlinePassed)
}

func TestSubmitAlreadyApplied(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)
	m.drives.On("GetCompanyDriveByID", ctx, int64(5)).Return(openDrive(), nil)
	m.apps.On("ExistsByDriveAndStudent", ctx, int64(5), int64(21)).Return(true, nil)

	_, err := svc.Submit(ctx, 7, &dto.SubmitApplicationRequest{
		CompanyDriveID: 5,
		Preferences:    []dto.JobPreferenceInput{{JobID: 100, PreferenceOrder: 1}},
	})

	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
}

func TestSubmitUnverifiedProfile(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	profile := verifiedProfile()
	profile.IsVerified = false

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(profile, nil)
	m.drives.On("GetCompanyDriveByID", ctx, int64(5)).Return(openDrive(), nil)
	m.apps.On("ExistsByDriveAndStudent", ctx, int64(5), int64(21)).Return(false, nil)

	_, err := svc.Submit(ctx, 7, &dto.SubmitApplicationRequest{
		CompanyDriveID: 5,
		Preferences:    []dto.JobPreferenceInput{{JobID: 100, PreferenceOrder: 1}},
	})

	assert.ErrorIs(t, err, apperrors.ErrProfileNotVerified)
}

func TestSubmitMultipleNotAllowed(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	drive := openDrive()
	drive.MultipleAllowed = false

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)
	m.drives.On("GetCompanyDriveByID", ctx, int64(5)).Return(drive, nil)
	m.apps.On("ExistsByDriveAndStudent", ctx, int64(5), int64(21)).Return(false, nil)

	_, err := svc.Submit(ctx, 7, &dto.SubmitApplicationRequest{
		CompanyDriveID: 5,
		Preferences: []dto.JobPreferenceInput{
			{JobID: 100, PreferenceOrder: 1},
			{JobID: 101, PreferenceOrder: 2},
		},
	})

	assert.ErrorIs(t, err, apperrors.ErrMultipleNotAllowed)
}

func TestSubmitIneligibleNamesJobAndReason(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	job := driveJob(100)
	job.Title = "Data Analyst"
	job.EligibleProgramIDs = []int64{99}

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)
	m.drives.On("GetCompanyDriveByID", ctx, int64(5)).Return(openDrive(), nil)
	m.apps.On("ExistsByDriveAndStudent", ctx, int64(5), int64(21)).Return(false, nil)
	m.drives.On("GetJobByID", ctx, int64(100)).Return(job, nil)

	_, err := svc.Submit(ctx, 7, &dto.SubmitApplicationRequest{
		CompanyDriveID: 5,
		Preferences:    []dto.JobPreferenceInput{{JobID: 100, PreferenceOrder: 1}},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotEligible)
	assert.Contains(t, err.Error(), "Not eligible for Data Analyst: Your program is not eligible for this job")
	m.apps.AssertNotCalled(t, "CreateWithPreferences", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitJobFromAnotherDrive(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	job := driveJob(100)
	job.CompanyDriveID = 77

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)
	m.drives.On("GetCompanyDriveByID", ctx, int64(5)).Return(openDrive(), nil)
	m.apps.On("ExistsByDriveAndStudent", ctx, int64(5), int64(21)).Return(false, nil)
	m.drives.On("GetJobByID", ctx, int64(100)).Return(job, nil)

	_, err := svc.Submit(ctx, 7, &dto.SubmitApplicationRequest{
		CompanyDriveID: 5,
		Preferences:    []dto.JobPreferenceInput{{JobID: 100, PreferenceOrder: 1}},
	})

	assert.ErrorIs(t, err, apperrors.ErrJobDriveMismatch)
}

func TestSubmitLostRaceSurfacesAlreadyApplied(t *testing.T) {
	// Two concurrent submissions can both pass the existence pre-check;
	// the insert then hits the unique constraint and must map to the
	// same error as the pre-check.
	svc, m := newApplicationService(t)
	ctx := context.Background()

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)
	m.drives.On("GetCompanyDriveByID", ctx, int64(5)).Return(openDrive(), nil)
	m.apps.On("ExistsByDriveAndStudent", ctx, int64(5), int64(21)).Return(false, nil)
	m.drives.On("GetJobByID", ctx, int64(100)).Return(driveJob(100), nil)
	m.apps.On("CreateWithPreferences", ctx, mock.AnythingOfType("*models.CompanyDriveApplication"), mock.AnythingOfType("[]*models.JobPreference")).
		Return(apperrors.ErrAlreadyApplied)

	_, err := svc.Submit(ctx, 7, &dto.SubmitApplicationRequest{
		CompanyDriveID: 5,
		Preferences:    []dto.JobPreferenceInput{{JobID: 100, PreferenceOrder: 1}},
	})

	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
	m.apps.AssertExpectations(t)
}

func TestSubmitReportsIneligibilityBeforeDriveMismatch(t *testing.T) {
	// Every preference is screened for eligibility before any
	// structural check, so an ineligible later entry wins over an
	// earlier entry pointing at the wrong drive.
	svc, m := newApplicationService(t)
	ctx := context.Background()

	foreign := driveJob(100)
	foreign.CompanyDriveID = 77
	ineligible := driveJob(101)
	ineligible.Title = "ML Engineer"
	ineligible.EligibleProgramIDs = []int64{99}

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)
	m.drives.On("GetCompanyDriveByID", ctx, int64(5)).Return(openDrive(), nil)
	m.apps.On("ExistsByDriveAndStudent", ctx, int64(5), int64(21)).Return(false, nil)
	m.drives.On("GetJobByID", ctx, int64(100)).Return(foreign, nil)
	m.drives.On("GetJobByID", ctx, int64(101)).Return(ineligible, nil)

	_, err := svc.Submit(ctx, 7, &dto.SubmitApplicationRequest{
		CompanyDriveID: 5,
		Preferences: []dto.JobPreferenceInput{
			{JobID: 100, PreferenceOrder: 1},
			{JobID: 101, PreferenceOrder: 2},
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotEligible)
	assert.Contains(t, err.Error(), "ML Engineer")
}

func TestSubmitDuplicatePreferences(t *testing.T) {
	tests := []struct {
		name  string
		prefs []dto.JobPreferenceInput
	}{
		{
			name: "same job twice",
			prefs: []dto.JobPreferenceInput{
				{JobID: 100, PreferenceOrder: 1},
				{JobID: 100, PreferenceOrder: 2},
			},
		},
		{
			name: "same rank twice",
			prefs: []dto.JobPreferenceInput{
				{JobID: 100, PreferenceOrder: 1},
				{JobID: 101, PreferenceOrder: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newApplicationService(t)
			ctx := context.Background()

			m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)
			m.drives.On("GetCompanyDriveByID", ctx, int64(5)).Return(openDrive(), nil)
			m.apps.On("ExistsByDriveAndStudent", ctx, int64(5), int64(21)).Return(false, nil)
			m.drives.On("GetJobByID", ctx, int64(100)).Return(driveJob(100), nil)
			m.drives.On("GetJobByID", ctx, int64(101)).Return(driveJob(101), nil)

			_, err := svc.Submit(ctx, 7, &dto.SubmitApplicationRequest{
				CompanyDriveID: 5,
				Preferences:    tt.prefs,
			})

			assert.ErrorIs(t, err, apperrors.ErrDuplicatePreference)
			m.apps.AssertNotCalled(t, "CreateWithPreferences", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestWithdrawHappyPath(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	app := &models.CompanyDriveApplication{
		ID:             44,
		CompanyDriveID: 5,
		StudentID:      21,
		Status:         models.ApplicationStatusApplied,
	}

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)
	m.apps.On("GetByID", ctx, int64(44)).Return(app, nil)
	m.drives.On("GetCompanyDriveByID", ctx, int64(5)).Return(openDrive(), nil)
	m.apps.On("Delete", ctx, int64(44)).Return(nil)

	err := svc.Withdraw(ctx, 7, 44)

	require.NoError(t, err)
	m.apps.AssertExpectations(t)
}

func TestWithdrawNotOwner(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	app := &models.CompanyDriveApplication{ID: 44, CompanyDriveID: 5, StudentID: 999, Status: models.ApplicationStatusApplied}

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)
	m.apps.On("GetByID", ctx, int64(44)).Return(app, nil)

	err := svc.Withdraw(ctx, 7, 44)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	m.apps.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestWithdrawAfterOffer(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	app := &models.CompanyDriveApplication{ID: 44, CompanyDriveID: 5, StudentID: 21, Status: models.ApplicationStatusOffered}

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)
	m.apps.On("GetByID", ctx, int64(44)).Return(app, nil)

	err := svc.Withdraw(ctx, 7, 44)

	require.Error(t, err)
	m.apps.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestWithdrawAfterDeadline(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	app := &models.CompanyDriveApplication{ID: 44, CompanyDriveID: 5, StudentID: 21, Status: models.ApplicationStatusApplied}
	drive := openDrive()
	drive.ApplicationDeadline = time.Now().Add(-time.Minute)

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)
	m.apps.On("GetByID", ctx, int64(44)).Return(app, nil)
	m.drives.On("GetCompanyDriveByID", ctx, int64(5)).Return(drive, nil)

	err := svc.Withdraw(ctx, 7, 44)

	assert.ErrorIs(t, err, apperrors.ErrDeadlinePassed)
	m.apps.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestOfferJobHappyPath(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	app := &models.CompanyDriveApplication{ID: 44, CompanyDriveID: 5, StudentID: 21, Status: models.ApplicationStatusApplied}
	profile := verifiedProfile()
	profile.User = &models.User{Email: "jane.doe@university.edu", FirstName: "Jane", LastName: "Doe"}
	drive := openDrive()
	drive.Company = &models.Company{ID: 3, Name: "Acme Corp"}

	m.apps.On("GetByID", ctx, int64(44)).Return(app, nil)
	m.drives.On("GetJobByID", ctx, int64(100)).Return(driveJob(100), nil)
	m.apps.On("UpdateStatus", ctx, int64(44),
		[]string{models.ApplicationStatusApplied}, models.ApplicationStatusOffered, mock.AnythingOfType("*int64")).Return(nil)
	m.profiles.On("GetByID", ctx, int64(21)).Return(profile, nil)
	m.drives.On("GetCompanyDriveByID", ctx, int64(5)).Return(drive, nil)
	m.notifier.On("NotifyJobOffered", "jane.doe@university.edu", "Jane Doe", "Backend Engineer", "Acme Corp").Return()

	err := svc.OfferJob(ctx, 44, 100)

	require.NoError(t, err)
	m.notifier.AssertExpectations(t)
	m.apps.AssertExpectations(t)
}

func TestOfferJobWrongDrive(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	app := &models.CompanyDriveApplication{ID: 44, CompanyDriveID: 5, StudentID: 21, Status: models.ApplicationStatusApplied}
	job := driveJob(100)
	job.CompanyDriveID = 77

	m.apps.On("GetByID", ctx, int64(44)).Return(app, nil)
	m.drives.On("GetJobByID", ctx, int64(100)).Return(job, nil)

	err := svc.OfferJob(ctx, 44, 100)

	assert.ErrorIs(t, err, apperrors.ErrJobDriveMismatch)
	m.apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOfferJobAlreadyOffered(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	app := &models.CompanyDriveApplication{ID: 44, CompanyDriveID: 5, StudentID: 21, Status: models.ApplicationStatusOffered}

	m.apps.On("GetByID", ctx, int64(44)).Return(app, nil)
	m.drives.On("GetJobByID", ctx, int64(100)).Return(driveJob(100), nil)

	err := svc.OfferJob(ctx, 44, 100)

	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	m.notifier.AssertNotCalled(t, "NotifyJobOffered", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAcceptOfferHappyPath(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	jobID := int64(100)
	app := &models.CompanyDriveApplication{ID: 44, CompanyDriveID: 5, StudentID: 21, Status: models.ApplicationStatusOffered, OfferedJobID: &jobID}
	profile := verifiedProfile()
	profile.User = &models.User{Email: "jane.doe@university.edu", FirstName: "Jane", LastName: "Doe"}
	drive := openDrive()
	drive.Company = &models.Company{ID: 3, Name: "Acme Corp"}

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(profile, nil)
	m.apps.On("GetByID", ctx, int64(44)).Return(app, nil)
	m.apps.On("UpdateStatus", ctx, int64(44),
		[]string{models.ApplicationStatusOffered}, models.ApplicationStatusAccepted, (*int64)(nil)).Return(nil)
	m.drives.On("GetJobByID", ctx, int64(100)).Return(driveJob(100), nil)
	m.profiles.On("GetByID", ctx, int64(21)).Return(profile, nil)
	m.drives.On("GetCompanyDriveByID", ctx, int64(5)).Return(drive, nil)
	m.notifier.On("NotifyOfferAccepted", "jane.doe@university.edu", "Jane Doe", "Backend Engineer", "Acme Corp").Return()

	err := svc.AcceptOffer(ctx, 7, 44)

	require.NoError(t, err)
	m.notifier.AssertExpectations(t)
}

func TestAcceptOfferWithoutOffer(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	app := &models.CompanyDriveApplication{ID: 44, CompanyDriveID: 5, StudentID: 21, Status: models.ApplicationStatusApplied}

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)
	m.apps.On("GetByID", ctx, int64(44)).Return(app, nil)

	err := svc.AcceptOffer(ctx, 7, 44)

	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestDeclineOfferHappyPath(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	app := &models.CompanyDriveApplication{ID: 44, CompanyDriveID: 5, StudentID: 21, Status: models.ApplicationStatusOffered}

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)
	m.apps.On("GetByID", ctx, int64(44)).Return(app, nil)
	m.apps.On("UpdateStatus", ctx, int64(44),
		[]string{models.ApplicationStatusOffered}, models.ApplicationStatusDeclined, (*int64)(nil)).Return(nil)

	err := svc.DeclineOffer(ctx, 7, 44)

	require.NoError(t, err)
	m.apps.AssertExpectations(t)
}

func TestDeclineOfferNotOwner(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	app := &models.CompanyDriveApplication{ID: 44, CompanyDriveID: 5, StudentID: 999, Status: models.ApplicationStatusOffered}

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)
	m.apps.On("GetByID", ctx, int64(44)).Return(app, nil)

	err := svc.DeclineOffer(ctx, 7, 44)

	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestRejectFromAppliedAndOffered(t *testing.T) {
	for _, status := range []string{models.ApplicationStatusApplied, models.ApplicationStatusOffered} {
		t.Run(status, func(t *testing.T) {
			svc, m := newApplicationService(t)
			ctx := context.Background()

			app := &models.CompanyDriveApplication{ID: 44, CompanyDriveID: 5, StudentID: 21, Status: status}

			m.apps.On("GetByID", ctx, int64(44)).Return(app, nil)
			m.apps.On("UpdateStatus", ctx, int64(44),
				[]string{models.ApplicationStatusApplied, models.ApplicationStatusOffered},
				models.ApplicationStatusRejected, (*int64)(nil)).Return(nil)

			err := svc.Reject(ctx, 44)

			require.NoError(t, err)
		})
	}
}

func TestRejectTerminalState(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	app := &models.CompanyDriveApplication{ID: 44, CompanyDriveID: 5, StudentID: 21, Status: models.ApplicationStatusAccepted}

	m.apps.On("GetByID", ctx, int64(44)).Return(app, nil)

	err := svc.Reject(ctx, 44)

	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	m.apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetByIDStudentReadsOwnOnly(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	app := &models.CompanyDriveApplication{ID: 44, CompanyDriveID: 5, StudentID: 999}

	m.apps.On("GetByID", ctx, int64(44)).Return(app, nil)
	m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)

	_, err := svc.GetByID(ctx, 44, 7, false)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	got, err := svc.GetByID(ctx, 44, 7, true)
	require.NoError(t, err)
	assert.Equal(t, app, got)
}

func TestListOwnScopesToProfile(t *testing.T) {
	svc, m := newApplicationService(t)
	ctx := context.Background()

	m.profiles.On("GetByUserID", ctx, int64(7)).Return(verifiedProfile(), nil)
	m.apps.On("List", ctx, mock.MatchedBy(func(f dto.ApplicationFilter) bool {
		return f.StudentID != nil && *f.StudentID == 21 && f.CompanyDriveID == nil && f.Status == nil
	}), uint64(0), 20).Return([]*models.CompanyDriveApplication{{ID: 44}}, 1, nil)

	apps, total, err := svc.ListOwn(ctx, 7, 0, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, apps, 1)
	assert.Equal(t, int64(44), apps[0].ID)
}
