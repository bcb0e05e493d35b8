package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placemate/placemate/internal/app/models"
	"github.com/placemate/placemate/internal/app/models/dto"
	"github.com/placemate/placemate/internal/pkg/apperrors"
	"github.com/placemate/placemate/internal/pkg/dberrors"
)

// ApplicationRepository handles application and job preference database
// operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ExistsByDriveAndStudent reports whether the student already applied to
// the drive
func (r *ApplicationRepository) ExistsByDriveAndStudent(ctx context.Context, companyDriveID, studentID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("company_drive_applications").
		Where(squirrel.Eq{"company_drive_id": companyDriveID, "student_id": studentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking application existence: %w", err)
	}

	return true, nil
}

// CreateWithPreferences inserts the application and all its preferences
// atomically. The unique constraints on (company_drive_id, student_id),
// (application_id, job_id) and (application_id, preference_order) are the
// concurrency guard for racing submissions.
func (r *ApplicationRepository) CreateWithPreferences(ctx context.Context, app *models.CompanyDriveApplication, prefs []*models.JobPreference) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sql, args, err := r.sb.Insert("company_drive_applications").
		Columns("company_drive_id", "student_id", "status", "offered_job_id", "resume_url", "created_at", "updated_at").
		Values(app.CompanyDriveID, app.StudentID, app.Status, app.OfferedJobID, app.ResumeURL, time.Now(), time.Now()).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create application query: %w", err)
	}

	err = tx.QueryRow(ctx, sql, args...).Scan(&app.ID, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "company_drive_applications_company_drive_id_student_id_key") {
			return apperrors.ErrAlreadyApplied
		}
		return fmt.Errorf("error creating application: %w", err)
	}

	for _, pref := range prefs {
		pref.ApplicationID = app.ID
		sql, args, err := r.sb.Insert("job_preferences").
			Columns("application_id", "job_id", "preference_order", "created_at").
			Values(pref.ApplicationID, pref.JobID, pref.PreferenceOrder, time.Now()).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create preference query: %w", err)
		}
		err = tx.QueryRow(ctx, sql, args...).Scan(&pref.ID, &pref.CreatedAt)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrDuplicatePreference
			}
			return fmt.Errorf("error creating job preference: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit application: %w", err)
	}

	return nil
}

// GetByID retrieves an application with its preferences
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.CompanyDriveApplication, error) {
	sql, args, err := r.sb.Select(
		"id", "company_drive_id", "student_id", "status", "offered_job_id", "resume_url",
		"created_at", "updated_at").
		From("company_drive_applications").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	var app models.CompanyDriveApplication
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&app.ID, &app.CompanyDriveID, &app.StudentID, &app.Status, &app.OfferedJobID, &app.ResumeURL,
		&app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error retrieving application: %w", err)
	}

	prefs, err := r.getPreferences(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	app.Preferences = prefs

	return &app, nil
}

func (r *ApplicationRepository) getPreferences(ctx context.Context, applicationID int64) ([]models.JobPreference, error) {
	sql, args, err := r.sb.Select(
		"pr.id", "pr.application_id", "pr.job_id", "pr.preference_order", "pr.created_at",
		"j.id", "j.company_drive_id", "j.title").
		From("job_preferences pr").
		Join("jobs j ON j.id = pr.job_id").
		Where(squirrel.Eq{"pr.application_id": applicationID}).
		OrderBy("pr.preference_order").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build preferences query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing preferences: %w", err)
	}
	defer rows.Close()

	var prefs []models.JobPreference
	for rows.Next() {
		var pref models.JobPreference
		var job models.Job
		if err := rows.Scan(
			&pref.ID, &pref.ApplicationID, &pref.JobID, &pref.PreferenceOrder, &pref.CreatedAt,
			&job.ID, &job.CompanyDriveID, &job.Title,
		); err != nil {
			return nil, fmt.Errorf("error scanning preference row: %w", err)
		}
		pref.Job = &job
		prefs = append(prefs, pref)
	}

	return prefs, rows.Err()
}

// List retrieves applications matching the filter, paginated, with drive
// and student context
func (r *ApplicationRepository) List(ctx context.Context, filter dto.ApplicationFilter, offset uint64, limit int) ([]*models.CompanyDriveApplication, int64, error) {
	builder := r.sb.Select(
		"a.id", "a.company_drive_id", "a.student_id", "a.status", "a.offered_job_id", "a.resume_url",
		"a.created_at", "a.updated_at",
		"sp.id", "sp.user_id", "sp.enrollment_number",
		"u.first_name", "u.last_name", "u.email",
		"c.name",
		"COUNT(*) OVER()").
		From("company_drive_applications a").
		Join("student_profiles sp ON sp.id = a.student_id").
		Join("users u ON u.id = sp.user_id").
		Join("company_drives cd ON cd.id = a.company_drive_id").
		Join("companies c ON c.id = cd.company_id")

	if filter.CompanyDriveID != nil {
		builder = builder.Where(squirrel.Eq{"a.company_drive_id": *filter.CompanyDriveID})
	}
	if filter.StudentID != nil {
		builder = builder.Where(squirrel.Eq{"a.student_id": *filter.StudentID})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"a.status": *filter.Status})
	}

	sql, args, err := builder.
		OrderBy("a.created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var apps []*models.CompanyDriveApplication
	var total int64
	for rows.Next() {
		var app models.CompanyDriveApplication
		var sp models.StudentProfile
		var u models.User
		var company models.Company
		if err := rows.Scan(
			&app.ID, &app.CompanyDriveID, &app.StudentID, &app.Status, &app.OfferedJobID, &app.ResumeURL,
			&app.CreatedAt, &app.UpdatedAt,
			&sp.ID, &sp.UserID, &sp.EnrollmentNumber,
			&u.FirstName, &u.LastName, &u.Email,
			&company.Name,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning application row: %w", err)
		}
		sp.User = &u
		app.Student = &sp
		app.CompanyDrive = &models.CompanyDrive{ID: app.CompanyDriveID, Company: &company}
		apps = append(apps, &app)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// UpdateStatus transitions an application's status, optionally recording
// the offered job. The expected current statuses guard against concurrent
// transitions racing each other.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, fromStatuses []string, toStatus string, offeredJobID *int64) error {
	builder := r.sb.Update("company_drive_applications").
		Set("status", toStatus).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id, "status": fromStatuses})

	if offeredJobID != nil {
		builder = builder.Set("offered_job_id", *offeredJobID)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update status query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvalidTransition
	}

	return nil
}

// Delete removes an application and, via cascade, its preferences. Used
// for withdrawal.
func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("company_drive_applications").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete application query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}

	return nil
}
