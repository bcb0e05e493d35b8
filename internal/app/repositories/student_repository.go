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

// StudentRepository handles student profile database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateWithUser inserts the user account, its student role assignment and
// the profile row in one transaction
func (r *StudentRepository) CreateWithUser(ctx context.Context, user *models.User, studentRoleID int64, profile *models.StudentProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sql, args, err := r.sb.Insert("users").
		Columns("email", "password", "first_name", "last_name", "phone", "is_active", "created_at", "updated_at").
		Values(user.Email, user.Password, user.FirstName, user.LastName, user.Phone, user.IsActive, time.Now(), time.Now()).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}
	err = tx.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_phone_key") {
			return apperrors.ErrPhoneAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	sql, args, err = r.sb.Insert("user_roles").
		Columns("user_id", "role_id").
		Values(user.ID, studentRoleID).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build assign role query: %w", err)
	}
	if _, err = tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error assigning student role: %w", err)
	}

	profile.UserID = user.ID
	sql, args, err = r.sb.Insert("student_profiles").
		Columns("user_id", "program_id", "enrollment_number", "joining_year",
			"current_cgpa", "tenth_percentage", "twelfth_percentage", "backlog_count",
			"resume_url", "is_placed", "is_verified", "created_at", "updated_at").
		Values(profile.UserID, profile.ProgramID, profile.EnrollmentNumber, profile.JoiningYear,
			profile.CurrentCGPA, profile.TenthPercentage, profile.TwelfthPercentage, profile.BacklogCount,
			profile.ResumeURL, profile.IsPlaced, profile.IsVerified, time.Now(), time.Now()).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create profile query: %w", err)
	}
	err = tx.QueryRow(ctx, sql, args...).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "student_profiles_enrollment_number_key") {
			return apperrors.ErrEnrollmentAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrProgramNotFound
		}
		return fmt.Errorf("error creating student profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit student registration: %w", err)
	}

	return nil
}

const studentSelectColumns = `sp.id, sp.user_id, sp.program_id, sp.enrollment_number, sp.joining_year,
	sp.current_cgpa, sp.tenth_percentage, sp.twelfth_percentage, sp.backlog_count,
	sp.resume_url, sp.is_placed, sp.is_verified, sp.created_at, sp.updated_at,
	u.id, u.email, u.first_name, u.last_name, u.phone, u.is_active, u.last_login_at, u.created_at, u.updated_at,
	p.id, p.name, p.degree_id, p.duration_years`

func (r *StudentRepository) scanProfile(row pgx.Row) (*models.StudentProfile, error) {
	var sp models.StudentProfile
	var u models.User
	var p models.Program
	err := row.Scan(
		&sp.ID, &sp.UserID, &sp.ProgramID, &sp.EnrollmentNumber, &sp.JoiningYear,
		&sp.CurrentCGPA, &sp.TenthPercentage, &sp.TwelfthPercentage, &sp.BacklogCount,
		&sp.ResumeURL, &sp.IsPlaced, &sp.IsVerified, &sp.CreatedAt, &sp.UpdatedAt,
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
		&p.ID, &p.Name, &p.DegreeID, &p.DurationYears,
	)
	if err != nil {
		return nil, err
	}
	sp.User = &u
	sp.Program = &p
	return &sp, nil
}

// GetByUserID retrieves a profile with user and program by user ID
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	return r.getOne(ctx, squirrel.Eq{"sp.user_id": userID})
}

// GetByID retrieves a profile with user and program by profile ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.StudentProfile, error) {
	return r.getOne(ctx, squirrel.Eq{"sp.id": id})
}

func (r *StudentRepository) getOne(ctx context.Context, pred squirrel.Eq) (*models.StudentProfile, error) {
	sql, args, err := r.sb.Select(studentSelectColumns).
		From("student_profiles sp").
		Join("users u ON u.id = sp.user_id").
		Join("programs p ON p.id = sp.program_id").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	profile, err := r.scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}

	return profile, nil
}

// List retrieves profiles matching the filter, paginated
func (r *StudentRepository) List(ctx context.Context, filter dto.StudentFilter, offset uint64, limit int) ([]*models.StudentProfile, int64, error) {
	builder := r.sb.Select(studentSelectColumns + ", COUNT(*) OVER()").
		From("student_profiles sp").
		Join("users u ON u.id = sp.user_id").
		Join("programs p ON p.id = sp.program_id")

	if filter.ProgramID != nil {
		builder = builder.Where(squirrel.Eq{"sp.program_id": *filter.ProgramID})
	}
	if filter.JoiningYear != nil {
		builder = builder.Where(squirrel.Eq{"sp.joining_year": *filter.JoiningYear})
	}
	if filter.IsPlaced != nil {
		builder = builder.Where(squirrel.Eq{"sp.is_placed": *filter.IsPlaced})
	}
	if filter.IsVerified != nil {
		builder = builder.Where(squirrel.Eq{"sp.is_verified": *filter.IsVerified})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"u.first_name": pattern},
			squirrel.ILike{"u.last_name": pattern},
			squirrel.ILike{"u.email": pattern},
			squirrel.ILike{"sp.enrollment_number": pattern},
		})
	}

	sql, args, err := builder.
		OrderBy("sp.enrollment_number").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list profiles query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing student profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.StudentProfile
	var total int64
	for rows.Next() {
		var sp models.StudentProfile
		var u models.User
		var p models.Program
		if err := rows.Scan(
			&sp.ID, &sp.UserID, &sp.ProgramID, &sp.EnrollmentNumber, &sp.JoiningYear,
			&sp.CurrentCGPA, &sp.TenthPercentage, &sp.TwelfthPercentage, &sp.BacklogCount,
			&sp.ResumeURL, &sp.IsPlaced, &sp.IsVerified, &sp.CreatedAt, &sp.UpdatedAt,
			&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
			&p.ID, &p.Name, &p.DegreeID, &p.DurationYears,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning profile row: %w", err)
		}
		sp.User = &u
		sp.Program = &p
		profiles = append(profiles, &sp)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

// Update applies non-nil profile fields. The verified-profile check
// constraint rejects updates that would leave a verified profile without
// its academic metrics.
func (r *StudentRepository) Update(ctx context.Context, profileID int64, req *dto.UpdateStudentAdminRequest) error {
	builder := r.sb.Update("student_profiles").Set("updated_at", time.Now())

	if req.ProgramID != nil {
		builder = builder.Set("program_id", *req.ProgramID)
	}
	if req.JoiningYear != nil {
		builder = builder.Set("joining_year", *req.JoiningYear)
	}
	if req.CurrentCGPA != nil {
		builder = builder.Set("current_cgpa", *req.CurrentCGPA)
	}
	if req.TenthPercentage != nil {
		builder = builder.Set("tenth_percentage", *req.TenthPercentage)
	}
	if req.TwelfthPercentage != nil {
		builder = builder.Set("twelfth_percentage", *req.TwelfthPercentage)
	}
	if req.BacklogCount != nil {
		builder = builder.Set("backlog_count", *req.BacklogCount)
	}
	if req.IsVerified != nil {
		builder = builder.Set("is_verified", *req.IsVerified)
	}
	if req.IsPlaced != nil {
		builder = builder.Set("is_placed", *req.IsPlaced)
	}

	sql, args, err := builder.Where(squirrel.Eq{"id": profileID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsCheckViolation(err, "student_profiles_verified_metrics_check") {
			return apperrors.ErrProfileIncomplete
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrProgramNotFound
		}
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// UpdateSelf applies the self-service subset of profile fields
func (r *StudentRepository) UpdateSelf(ctx context.Context, userID int64, req *dto.UpdateStudentSelfRequest) error {
	builder := r.sb.Update("student_profiles").Set("updated_at", time.Now())

	if req.CurrentCGPA != nil {
		builder = builder.Set("current_cgpa", *req.CurrentCGPA)
	}
	if req.TenthPercentage != nil {
		builder = builder.Set("tenth_percentage", *req.TenthPercentage)
	}
	if req.TwelfthPercentage != nil {
		builder = builder.Set("twelfth_percentage", *req.TwelfthPercentage)
	}
	if req.BacklogCount != nil {
		builder = builder.Set("backlog_count", *req.BacklogCount)
	}
	if req.ResumeURL != nil {
		builder = builder.Set("resume_url", *req.ResumeURL)
	}

	sql, args, err := builder.Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build self update query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsCheckViolation(err, "student_profiles_verified_metrics_check") {
			return apperrors.ErrProfileIncomplete
		}
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// SetPlaced marks a student's placement status
func (r *StudentRepository) SetPlaced(ctx context.Context, profileID int64, isPlaced bool) error {
	sql, args, err := r.sb.Update("student_profiles").
		Set("is_placed", isPlaced).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": profileID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set placed query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating placement status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// CohortRecipient is one student address selected for drive fan-out
type CohortRecipient struct {
	Email     string
	FirstName string
}

// ListCohortRecipients selects active, not yet placed students whose
// program and joining year match one of the target cohorts
func (r *StudentRepository) ListCohortRecipients(ctx context.Context, targetYearByProgram map[int64]int) ([]CohortRecipient, error) {
	if len(targetYearByProgram) == 0 {
		return nil, nil
	}

	var cohortPred squirrel.Or
	for programID, year := range targetYearByProgram {
		cohortPred = append(cohortPred, squirrel.Eq{"sp.program_id": programID, "sp.joining_year": year})
	}

	sql, args, err := r.sb.Select("u.email", "u.first_name").
		From("student_profiles sp").
		Join("users u ON u.id = sp.user_id").
		Where(squirrel.Eq{"u.is_active": true, "sp.is_placed": false}).
		Where(cohortPred).
		OrderBy("u.email").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build cohort query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing cohort recipients: %w", err)
	}
	defer rows.Close()

	var recipients []CohortRecipient
	for rows.Next() {
		var rec CohortRecipient
		if err := rows.Scan(&rec.Email, &rec.FirstName); err != nil {
			return nil, err
		}
		recipients = append(recipients, rec)
	}

	return recipients, rows.Err()
}
