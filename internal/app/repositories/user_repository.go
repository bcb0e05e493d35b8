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
	"github.com/placemate/placemate/internal/pkg/logger"
)

// UserRepository handles user and role-assignment database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a user and assigns the given roles in one transaction
func (r *UserRepository) Create(ctx context.Context, user *models.User, roleIDs []int64) error {
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
		logger.Error().Err(err).Str("email", user.Email).Msg("Error creating user")
		return fmt.Errorf("error creating user: %w", err)
	}

	for _, roleID := range roleIDs {
		sql, args, err = r.sb.Insert("user_roles").
			Columns("user_id", "role_id").
			Values(user.ID, roleID).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build assign role query: %w", err)
		}
		if _, err = tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrRoleNotFound
			}
			return fmt.Errorf("error assigning role: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user with role names by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.id": id})
}

// GetByEmail retrieves a user with role names by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.email": email})
}

func (r *UserRepository) getOne(ctx context.Context, pred squirrel.Eq) (*models.User, error) {
	sql, args, err := r.sb.Select(
		"u.id", "u.email", "u.password", "u.first_name", "u.last_name",
		"u.phone", "u.is_active", "u.last_login_at", "u.created_at", "u.updated_at",
		"COALESCE(ARRAY_AGG(r.name ORDER BY r.name) FILTER (WHERE r.name IS NOT NULL), '{}')").
		From("users u").
		LeftJoin("user_roles ur ON ur.user_id = u.id").
		LeftJoin("roles r ON r.id = ur.role_id").
		Where(pred).
		GroupBy("u.id").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	var user models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName, &user.LastName,
		&user.Phone, &user.IsActive, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
		&user.Roles,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// List retrieves users with role names, paginated
func (r *UserRepository) List(ctx context.Context, search string, offset uint64, limit int) ([]*models.User, int64, error) {
	builder := r.sb.Select(
		"u.id", "u.email", "u.first_name", "u.last_name",
		"u.phone", "u.is_active", "u.last_login_at", "u.created_at", "u.updated_at",
		"COALESCE(ARRAY_AGG(r.name ORDER BY r.name) FILTER (WHERE r.name IS NOT NULL), '{}')",
		"COUNT(*) OVER()").
		From("users u").
		LeftJoin("user_roles ur ON ur.user_id = u.id").
		LeftJoin("roles r ON r.id = ur.role_id")

	if search != "" {
		pattern := "%" + search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"u.email": pattern},
			squirrel.ILike{"u.first_name": pattern},
			squirrel.ILike{"u.last_name": pattern},
		})
	}

	sql, args, err := builder.
		GroupBy("u.id").
		OrderBy("u.id").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	var total int64
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Email, &user.FirstName, &user.LastName,
			&user.Phone, &user.IsActive, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
			&user.Roles, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// UpdateProfile updates the mutable profile fields
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string, phone *string) error {
	sql, args, err := r.sb.Update("users").
		Set("first_name", firstName).
		Set("last_name", lastName).
		Set("phone", phone).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_phone_key") {
			return apperrors.ErrPhoneAlreadyExists
		}
		return fmt.Errorf("error updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	sql, args, err := r.sb.Update("users").
		Set("password", hashedPassword).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin stamps the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("users").
		Set("last_login_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}

	return nil
}

// SetActive toggles the account active flag
func (r *UserRepository) SetActive(ctx context.Context, userID int64, isActive bool) error {
	sql, args, err := r.sb.Update("users").
		Set("is_active", isActive).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set active query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating activation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// ReplaceRoles replaces a user's role assignments in one transaction
func (r *UserRepository) ReplaceRoles(ctx context.Context, userID int64, roleIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	sql, args, err := r.sb.Delete("user_roles").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear roles query: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error clearing roles: %w", err)
	}

	for _, roleID := range roleIDs {
		sql, args, err := r.sb.Insert("user_roles").
			Columns("user_id", "role_id").
			Values(userID, roleID).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build assign role query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrRoleNotFound
			}
			return fmt.Errorf("error assigning role: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit role replacement: %w", err)
	}

	return nil
}

// HasRole reports whether the user currently holds the named role
func (r *UserRepository) HasRole(ctx context.Context, userID int64, roleName string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("user_roles ur").
		Join("roles r ON r.id = ur.role_id").
		Where(squirrel.Eq{"ur.user_id": userID, "r.name": roleName}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build has role query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking role: %w", err)
	}

	return true, nil
}
