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

// PlacementRepository handles placement drive, company drive and job
// database operations
type PlacementRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPlacementRepository creates a new PlacementRepository
func NewPlacementRepository(db *pgxpool.Pool) *PlacementRepository {
	return &PlacementRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateDrive inserts a placement drive
func (r *PlacementRepository) CreateDrive(ctx context.Context, drive *models.PlacementDrive) error {
	sql, args, err := r.sb.Insert("placement_drives").
		Columns("name", "start_date", "end_date", "description", "created_at", "updated_at").
		Values(drive.Name, drive.StartDate, drive.EndDate, drive.Description, time.Now(), time.Now()).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create drive query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&drive.ID, &drive.CreatedAt, &drive.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.NewConflictError("placement drive with this name already exists")
		}
		return fmt.Errorf("error creating placement drive: %w", err)
	}

	return nil
}

// GetDriveByID retrieves a placement drive by ID
func (r *PlacementRepository) GetDriveByID(ctx context.Context, id int64) (*models.PlacementDrive, error) {
	sql, args, err := r.sb.Select("id", "name", "start_date", "end_date", "description", "created_at", "updated_at").
		From("placement_drives").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get drive query: %w", err)
	}

	var drive models.PlacementDrive
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&drive.ID, &drive.Name, &drive.StartDate, &drive.EndDate, &drive.Description, &drive.CreatedAt, &drive.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPlacementDriveNotFound
		}
		return nil, fmt.Errorf("error retrieving placement drive: %w", err)
	}

	return &drive, nil
}

// ListDrives retrieves placement drives, paginated
func (r *PlacementRepository) ListDrives(ctx context.Context, offset uint64, limit int) ([]*models.PlacementDrive, int64, error) {
	sql, args, err := r.sb.Select(
		"id", "name", "start_date", "end_date", "description", "created_at", "updated_at", "COUNT(*) OVER()").
		From("placement_drives").
		OrderBy("created_at DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list drives query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing placement drives: %w", err)
	}
	defer rows.Close()

	var drives []*models.PlacementDrive
	var total int64
	for rows.Next() {
		var drive models.PlacementDrive
		if err := rows.Scan(
			&drive.ID, &drive.Name, &drive.StartDate, &drive.EndDate, &drive.Description,
			&drive.CreatedAt, &drive.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning drive row: %w", err)
		}
		drives = append(drives, &drive)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return drives, total, nil
}

// UpdateDrive applies non-nil fields to a placement drive
func (r *PlacementRepository) UpdateDrive(ctx context.Context, id int64, req *dto.UpdatePlacementDriveRequest) error {
	builder := r.sb.Update("placement_drives").Set("updated_at", time.Now())

	if req.Name != nil {
		builder = builder.Set("name", *req.Name)
	}
	if req.StartDate != nil {
		builder = builder.Set("start_date", *req.StartDate)
	}
	if req.EndDate != nil {
		builder = builder.Set("end_date", *req.EndDate)
	}
	if req.Description != nil {
		builder = builder.Set("description", *req.Description)
	}

	sql, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update drive query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating placement drive: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPlacementDriveNotFound
	}

	return nil
}

// DeleteDrive removes a placement drive and, via cascade, its company
// drives, jobs and applications
func (r *PlacementRepository) DeleteDrive(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("placement_drives").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete drive query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting placement drive: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrPlacementDriveNotFound
	}

	return nil
}

// CreateCompanyDrive inserts a company drive together with its jobs and
// their eligible-program links in one transaction
func (r *PlacementRepository) CreateCompanyDrive(ctx context.Context, drive *models.CompanyDrive, jobs []*models.Job) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sql, args, err := r.sb.Insert("company_drives").
		Columns("placement_drive_id", "company_id", "drive_type", "job_mode",
			"application_deadline", "status", "multiple_allowed", "rounds", "locations",
			"created_at", "updated_at").
		Values(drive.PlacementDriveID, drive.CompanyID, drive.DriveType, drive.JobMode,
			drive.ApplicationDeadline, drive.Status, drive.MultipleAllowed, drive.Rounds, drive.Locations,
			time.Now(), time.Now()).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create company drive query: %w", err)
	}
	err = tx.QueryRow(ctx, sql, args...).Scan(&drive.ID, &drive.CreatedAt, &drive.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewNotFoundError("placement drive or company not found")
		}
		if dberrors.IsDuplicateConstraintError(err, "company_drives_placement_drive_id_company_id_key") {
			return apperrors.NewConflictError("company already participates in this placement drive")
		}
		return fmt.Errorf("error creating company drive: %w", err)
	}

	for _, job := range jobs {
		job.CompanyDriveID = drive.ID
		sql, args, err := r.sb.Insert("jobs").
			Columns("company_drive_id", "title", "description_ug", "description_pg",
				"ug_package_min", "ug_package_max", "pg_package_min", "pg_package_max",
				"ug_stipend", "pg_stipend",
				"min_tenth_percentage", "min_twelfth_percentage", "min_ug_cgpa", "min_pg_cgpa",
				"max_backlogs", "created_at", "updated_at").
			Values(job.CompanyDriveID, job.Title, job.DescriptionUG, job.DescriptionPG,
				job.UGPackageMin, job.UGPackageMax, job.PGPackageMin, job.PGPackageMax,
				job.UGStipend, job.PGStipend,
				job.MinTenthPercentage, job.MinTwelfthPercentage, job.MinUGCGPA, job.MinPGCGPA,
				job.MaxBacklogs, time.Now(), time.Now()).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create job query: %w", err)
		}
		err = tx.QueryRow(ctx, sql, args...).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
		if err != nil {
			return fmt.Errorf("error creating job: %w", err)
		}

		for _, programID := range job.EligibleProgramIDs {
			sql, args, err := r.sb.Insert("job_programs").
				Columns("job_id", "program_id").
				Values(job.ID, programID).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build job program query: %w", err)
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				if dberrors.IsForeignKeyViolation(err) {
					return apperrors.ErrProgramNotFound
				}
				return fmt.Errorf("error linking job program: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit company drive: %w", err)
	}

	return nil
}

const companyDriveColumns = `cd.id, cd.placement_drive_id, cd.company_id, cd.drive_type, cd.job_mode,
	cd.application_deadline, cd.status, cd.multiple_allowed, cd.rounds, cd.locations,
	cd.created_at, cd.updated_at,
	c.id, c.name, c.email, c.phone, c.website, c.description, c.city_id, c.created_at, c.updated_at`

func scanCompanyDrive(row pgx.Row, extra ...interface{}) (*models.CompanyDrive, error) {
	var cd models.CompanyDrive
	var c models.Company
	dest := []interface{}{
		&cd.ID, &cd.PlacementDriveID, &cd.CompanyID, &cd.DriveType, &cd.JobMode,
		&cd.ApplicationDeadline, &cd.Status, &cd.MultipleAllowed, &cd.Rounds, &cd.Locations,
		&cd.CreatedAt, &cd.UpdatedAt,
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Website, &c.Description, &c.CityID, &c.CreatedAt, &c.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	cd.Company = &c
	return &cd, nil
}

// GetCompanyDriveByID retrieves a company drive with its company
func (r *PlacementRepository) GetCompanyDriveByID(ctx context.Context, id int64) (*models.CompanyDrive, error) {
	sql, args, err := r.sb.Select(companyDriveColumns).
		From("company_drives cd").
		Join("companies c ON c.id = cd.company_id").
		Where(squirrel.Eq{"cd.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get company drive query: %w", err)
	}

	drive, err := scanCompanyDrive(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyDriveNotFound
		}
		return nil, fmt.Errorf("error retrieving company drive: %w", err)
	}

	return drive, nil
}

// ListCompanyDrives retrieves company drives matching the filter, paginated
func (r *PlacementRepository) ListCompanyDrives(ctx context.Context, filter dto.CompanyDriveFilter, offset uint64, limit int) ([]*models.CompanyDrive, int64, error) {
	builder := r.sb.Select(companyDriveColumns + ", COUNT(*) OVER()").
		From("company_drives cd").
		Join("companies c ON c.id = cd.company_id")

	if filter.PlacementDriveID != nil {
		builder = builder.Where(squirrel.Eq{"cd.placement_drive_id": *filter.PlacementDriveID})
	}
	if filter.CompanyID != nil {
		builder = builder.Where(squirrel.Eq{"cd.company_id": *filter.CompanyID})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"cd.status": *filter.Status})
	}
	if filter.DriveType != nil {
		builder = builder.Where(squirrel.Eq{"cd.drive_type": *filter.DriveType})
	}

	sql, args, err := builder.
		OrderBy("cd.application_deadline DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list company drives query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing company drives: %w", err)
	}
	defer rows.Close()

	var drives []*models.CompanyDrive
	var total int64
	for rows.Next() {
		drive, err := scanCompanyDrive(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning company drive row: %w", err)
		}
		drives = append(drives, drive)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return drives, total, nil
}

// UpdateCompanyDrive applies non-nil fields to a company drive
func (r *PlacementRepository) UpdateCompanyDrive(ctx context.Context, id int64, req *dto.UpdateCompanyDriveRequest) error {
	builder := r.sb.Update("company_drives").Set("updated_at", time.Now())

	if req.DriveType != nil {
		builder = builder.Set("drive_type", *req.DriveType)
	}
	if req.JobMode != nil {
		builder = builder.Set("job_mode", *req.JobMode)
	}
	if req.ApplicationDeadline != nil {
		builder = builder.Set("application_deadline", *req.ApplicationDeadline)
	}
	if req.Status != nil {
		builder = builder.Set("status", *req.Status)
	}
	if req.MultipleAllowed != nil {
		builder = builder.Set("multiple_allowed", *req.MultipleAllowed)
	}
	if req.Rounds != nil {
		builder = builder.Set("rounds", req.Rounds)
	}
	if req.Locations != nil {
		builder = builder.Set("locations", req.Locations)
	}

	sql, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update company drive query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating company drive: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCompanyDriveNotFound
	}

	return nil
}

// GetJobByID retrieves a job with its eligible program IDs
func (r *PlacementRepository) GetJobByID(ctx context.Context, id int64) (*models.Job, error) {
	sql, args, err := r.sb.Select(
		"j.id", "j.company_drive_id", "j.title", "j.description_ug", "j.description_pg",
		"j.ug_package_min", "j.ug_package_max", "j.pg_package_min", "j.pg_package_max",
		"j.ug_stipend", "j.pg_stipend",
		"j.min_tenth_percentage", "j.min_twelfth_percentage", "j.min_ug_cgpa", "j.min_pg_cgpa",
		"j.max_backlogs", "j.created_at", "j.updated_at",
		"COALESCE(ARRAY_AGG(jp.program_id) FILTER (WHERE jp.program_id IS NOT NULL), '{}')").
		From("jobs j").
		LeftJoin("job_programs jp ON jp.job_id = j.id").
		Where(squirrel.Eq{"j.id": id}).
		GroupBy("j.id").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get job query: %w", err)
	}

	var job models.Job
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&job.ID, &job.CompanyDriveID, &job.Title, &job.DescriptionUG, &job.DescriptionPG,
		&job.UGPackageMin, &job.UGPackageMax, &job.PGPackageMin, &job.PGPackageMax,
		&job.UGStipend, &job.PGStipend,
		&job.MinTenthPercentage, &job.MinTwelfthPercentage, &job.MinUGCGPA, &job.MinPGCGPA,
		&job.MaxBacklogs, &job.CreatedAt, &job.UpdatedAt,
		&job.EligibleProgramIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, fmt.Errorf("error retrieving job: %w", err)
	}

	return &job, nil
}

// ListJobsByCompanyDrive retrieves all jobs of a company drive with their
// eligible program IDs
func (r *PlacementRepository) ListJobsByCompanyDrive(ctx context.Context, companyDriveID int64) ([]*models.Job, error) {
	sql, args, err := r.sb.Select(
		"j.id", "j.company_drive_id", "j.title", "j.description_ug", "j.description_pg",
		"j.ug_package_min", "j.ug_package_max", "j.pg_package_min", "j.pg_package_max",
		"j.ug_stipend", "j.pg_stipend",
		"j.min_tenth_percentage", "j.min_twelfth_percentage", "j.min_ug_cgpa", "j.min_pg_cgpa",
		"j.max_backlogs", "j.created_at", "j.updated_at",
		"COALESCE(ARRAY_AGG(jp.program_id) FILTER (WHERE jp.program_id IS NOT NULL), '{}')").
		From("jobs j").
		LeftJoin("job_programs jp ON jp.job_id = j.id").
		Where(squirrel.Eq{"j.company_drive_id": companyDriveID}).
		GroupBy("j.id").
		OrderBy("j.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list jobs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		var job models.Job
		if err := rows.Scan(
			&job.ID, &job.CompanyDriveID, &job.Title, &job.DescriptionUG, &job.DescriptionPG,
			&job.UGPackageMin, &job.UGPackageMax, &job.PGPackageMin, &job.PGPackageMax,
			&job.UGStipend, &job.PGStipend,
			&job.MinTenthPercentage, &job.MinTwelfthPercentage, &job.MinUGCGPA, &job.MinPGCGPA,
			&job.MaxBacklogs, &job.CreatedAt, &job.UpdatedAt,
			&job.EligibleProgramIDs,
		); err != nil {
			return nil, fmt.Errorf("error scanning job row: %w", err)
		}
		jobs = append(jobs, &job)
	}

	return jobs, rows.Err()
}
