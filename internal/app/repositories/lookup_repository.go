package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placemate/placemate/internal/app/models"
	"github.com/placemate/placemate/internal/pkg/apperrors"
)

// LookupRepository serves the reference tables behind the lookup endpoint
type LookupRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLookupRepository creates a new LookupRepository
func NewLookupRepository(db *pgxpool.Pool) *LookupRepository {
	return &LookupRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListCountries retrieves all countries ordered by name
func (r *LookupRepository) ListCountries(ctx context.Context) ([]*models.Country, error) {
	sql, args, err := r.sb.Select("id", "name").From("countries").OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list countries query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing countries: %w", err)
	}
	defer rows.Close()

	var items []*models.Country
	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		items = append(items, &c)
	}
	return items, rows.Err()
}

// ListStates retrieves states, optionally scoped to a country
func (r *LookupRepository) ListStates(ctx context.Context, countryID *int64) ([]*models.State, error) {
	builder := r.sb.Select("id", "name", "country_id").From("states").OrderBy("name")
	if countryID != nil {
		builder = builder.Where(squirrel.Eq{"country_id": *countryID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list states query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing states: %w", err)
	}
	defer rows.Close()

	var items []*models.State
	for rows.Next() {
		var s models.State
		if err := rows.Scan(&s.ID, &s.Name, &s.CountryID); err != nil {
			return nil, err
		}
		items = append(items, &s)
	}
	return items, rows.Err()
}

// ListCities retrieves cities, optionally scoped to a state
func (r *LookupRepository) ListCities(ctx context.Context, stateID *int64) ([]*models.City, error) {
	builder := r.sb.Select("id", "name", "state_id").From("cities").OrderBy("name")
	if stateID != nil {
		builder = builder.Where(squirrel.Eq{"state_id": *stateID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list cities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing cities: %w", err)
	}
	defer rows.Close()

	var items []*models.City
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.ID, &c.Name, &c.StateID); err != nil {
			return nil, err
		}
		items = append(items, &c)
	}
	return items, rows.Err()
}

// ListDegrees retrieves all degrees ordered by name
func (r *LookupRepository) ListDegrees(ctx context.Context) ([]*models.Degree, error) {
	sql, args, err := r.sb.Select("id", "name", "level").From("degrees").OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list degrees query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing degrees: %w", err)
	}
	defer rows.Close()

	var items []*models.Degree
	for rows.Next() {
		var d models.Degree
		if err := rows.Scan(&d.ID, &d.Name, &d.Level); err != nil {
			return nil, err
		}
		items = append(items, &d)
	}
	return items, rows.Err()
}

// ListPrograms retrieves programs with their degree, optionally scoped
// to one degree
func (r *LookupRepository) ListPrograms(ctx context.Context, degreeID *int64) ([]*models.Program, error) {
	builder := r.sb.Select(
		"p.id", "p.name", "p.degree_id", "p.duration_years",
		"d.id", "d.name", "d.level").
		From("programs p").
		Join("degrees d ON d.id = p.degree_id").
		OrderBy("p.name")
	if degreeID != nil {
		builder = builder.Where(squirrel.Eq{"p.degree_id": *degreeID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list programs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing programs: %w", err)
	}
	defer rows.Close()

	var items []*models.Program
	for rows.Next() {
		var p models.Program
		var d models.Degree
		if err := rows.Scan(&p.ID, &p.Name, &p.DegreeID, &p.DurationYears, &d.ID, &d.Name, &d.Level); err != nil {
			return nil, err
		}
		p.Degree = &d
		items = append(items, &p)
	}
	return items, rows.Err()
}

// GetProgramByID retrieves one program with its degree
func (r *LookupRepository) GetProgramByID(ctx context.Context, id int64) (*models.Program, error) {
	sql, args, err := r.sb.Select(
		"p.id", "p.name", "p.degree_id", "p.duration_years",
		"d.id", "d.name", "d.level").
		From("programs p").
		Join("degrees d ON d.id = p.degree_id").
		Where(squirrel.Eq{"p.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get program query: %w", err)
	}

	var p models.Program
	var d models.Degree
	err = r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.Name, &p.DegreeID, &p.DurationYears, &d.ID, &d.Name, &d.Level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}
	p.Degree = &d

	return &p, nil
}

// GetProgramsByIDs retrieves programs with degrees for a set of IDs
func (r *LookupRepository) GetProgramsByIDs(ctx context.Context, ids []int64) ([]*models.Program, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	sql, args, err := r.sb.Select(
		"p.id", "p.name", "p.degree_id", "p.duration_years",
		"d.id", "d.name", "d.level").
		From("programs p").
		Join("degrees d ON d.id = p.degree_id").
		Where(squirrel.Eq{"p.id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get programs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving programs: %w", err)
	}
	defer rows.Close()

	var items []*models.Program
	for rows.Next() {
		var p models.Program
		var d models.Degree
		if err := rows.Scan(&p.ID, &p.Name, &p.DegreeID, &p.DurationYears, &d.ID, &d.Name, &d.Level); err != nil {
			return nil, err
		}
		p.Degree = &d
		items = append(items, &p)
	}
	return items, rows.Err()
}
