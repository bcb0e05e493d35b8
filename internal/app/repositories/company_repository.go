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

// CompanyRepository handles company database operations
type CompanyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCompanyRepository creates a new CompanyRepository
func NewCompanyRepository(db *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a company record
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	sql, args, err := r.sb.Insert("companies").
		Columns("name", "email", "phone", "website", "description",
			"year_founded", "company_size", "city_id", "created_at", "updated_at").
		Values(company.Name, company.Email, company.Phone, company.Website, company.Description,
			company.YearFounded, company.CompanySize, company.CityID, time.Now(), time.Now()).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create company query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCompanyAlreadyExists
		}
		return fmt.Errorf("error creating company: %w", err)
	}

	return nil
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	sql, args, err := r.sb.Select(
		"id", "name", "email", "phone", "website", "description",
		"year_founded", "company_size", "city_id", "created_at", "updated_at").
		From("companies").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get company query: %w", err)
	}

	var company models.Company
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&company.ID, &company.Name, &company.Email, &company.Phone,
		&company.Website, &company.Description,
		&company.YearFounded, &company.CompanySize, &company.CityID,
		&company.CreatedAt, &company.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("error retrieving company: %w", err)
	}

	return &company, nil
}

// List retrieves companies matching the filter, paginated
func (r *CompanyRepository) List(ctx context.Context, filter dto.CompanyFilter, offset uint64, limit int) ([]*models.Company, int64, error) {
	builder := r.sb.Select(
		"id", "name", "email", "phone", "website", "description",
		"year_founded", "company_size", "city_id",
		"created_at", "updated_at", "COUNT(*) OVER()").
		From("companies")

	if filter.Search != "" {
		builder = builder.Where(squirrel.ILike{"name": "%" + filter.Search + "%"})
	}
	if filter.CityID != nil {
		builder = builder.Where(squirrel.Eq{"city_id": *filter.CityID})
	}

	sql, args, err := builder.
		OrderBy("name").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list companies query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing companies: %w", err)
	}
	defer rows.Close()

	var companies []*models.Company
	var total int64
	for rows.Next() {
		var company models.Company
		if err := rows.Scan(
			&company.ID, &company.Name, &company.Email, &company.Phone,
			&company.Website, &company.Description,
			&company.YearFounded, &company.CompanySize, &company.CityID,
			&company.CreatedAt, &company.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning company row: %w", err)
		}
		companies = append(companies, &company)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}

// Update applies non-nil fields from the request to a company record
func (r *CompanyRepository) Update(ctx context.Context, id int64, req *dto.UpdateCompanyRequest) error {
	builder := r.sb.Update("companies").Set("updated_at", time.Now())

	if req.Name != nil {
		builder = builder.Set("name", *req.Name)
	}
	if req.Email != nil {
		builder = builder.Set("email", *req.Email)
	}
	if req.Phone != nil {
		builder = builder.Set("phone", *req.Phone)
	}
	if req.Website != nil {
		builder = builder.Set("website", *req.Website)
	}
	if req.Description != nil {
		builder = builder.Set("description", *req.Description)
	}
	if req.YearFounded != nil {
		builder = builder.Set("year_founded", *req.YearFounded)
	}
	if req.CompanySize != nil {
		builder = builder.Set("company_size", *req.CompanySize)
	}
	if req.CityID != nil {
		builder = builder.Set("city_id", *req.CityID)
	}

	sql, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update company query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCompanyAlreadyExists
		}
		return fmt.Errorf("error updating company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}

	return nil
}

// Delete removes a company record
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("companies").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete company query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCompanyNotFound
	}

	return nil
}
