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
	"github.com/placemate/placemate/internal/pkg/apperrors"
	"github.com/placemate/placemate/internal/pkg/dberrors"
)

// RoleRepository handles role database operations
type RoleRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new role
func (r *RoleRepository) Create(ctx context.Context, role *models.Role) error {
	sql, args, err := r.sb.Insert("roles").
		Columns("name", "description", "created_at").
		Values(role.Name, role.Description, time.Now()).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create role query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&role.ID, &role.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "roles_name_key") {
			return apperrors.ErrRoleAlreadyExists
		}
		return fmt.Errorf("error creating role: %w", err)
	}

	return nil
}

// GetByID retrieves a role by ID
func (r *RoleRepository) GetByID(ctx context.Context, id int64) (*models.Role, error) {
	sql, args, err := r.sb.Select("id", "name", "description", "created_at").
		From("roles").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get role query: %w", err)
	}

	var role models.Role
	err = r.db.QueryRow(ctx, sql, args...).Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoleNotFound
		}
		return nil, fmt.Errorf("error retrieving role: %w", err)
	}

	return &role, nil
}

// GetByName retrieves a role by name
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	sql, args, err := r.sb.Select("id", "name", "description", "created_at").
		From("roles").
		Where(squirrel.Eq{"name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get role query: %w", err)
	}

	var role models.Role
	err = r.db.QueryRow(ctx, sql, args...).Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoleNotFound
		}
		return nil, fmt.Errorf("error retrieving role: %w", err)
	}

	return &role, nil
}

// GetAll retrieves all roles ordered by name
func (r *RoleRepository) GetAll(ctx context.Context) ([]*models.Role, error) {
	sql, args, err := r.sb.Select("id", "name", "description", "created_at").
		From("roles").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list roles query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing roles: %w", err)
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Description, &role.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning role row: %w", err)
		}
		roles = append(roles, &role)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return roles, nil
}

// CountByIDs returns how many of the given role IDs exist
func (r *RoleRepository) CountByIDs(ctx context.Context, ids []int64) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("roles").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count roles query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting roles: %w", err)
	}

	return count, nil
}
