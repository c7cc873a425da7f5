package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/hostelms/internal/app/models"
	"github.com/yigit/hostelms/internal/pkg/apperrors"
	"github.com/yigit/hostelms/internal/pkg/dberrors"
)

// userColumns is the full column list scanned into models.User
var userColumns = []string{
	"id", "name", "email", "password", "role", "phone", "address", "room_id",
	"email_verified_at", "verification_token", "verification_token_expiry",
	"reset_password_token", "reset_password_expiry", "created_at", "updated_at",
}

// UserRepository handles database operations for users
type UserRepository struct {
	db   *pgxpool.Pool
	psql squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db:   db,
		psql: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.Phone, &u.Address,
		&u.RoomID, &u.EmailVerifiedAt, &u.VerificationToken,
		&u.VerificationTokenExpiry, &u.ResetPasswordToken,
		&u.ResetPasswordExpiry, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user and returns it with generated fields populated
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query, args, err := r.psql.Insert("users").
		Columns("name", "email", "password", "role", "phone", "address", "room_id",
			"email_verified_at", "verification_token", "verification_token_expiry").
		Values(user.Name, user.Email, user.Password, user.Role, user.Phone,
			user.Address, user.RoomID, user.EmailVerifiedAt,
			user.VerificationToken, user.VerificationTokenExpiry).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert user query: %w", err)
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query, args, err := r.psql.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query, args, err := r.psql.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetAll retrieves all users, optionally filtered by role
func (r *UserRepository) GetAll(ctx context.Context, role *models.RoleType) ([]models.User, error) {
	builder := r.psql.Select(userColumns...).
		From("users").
		OrderBy("id")
	if role != nil {
		builder = builder.Where(squirrel.Eq{"role": *role})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select users query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return users, nil
}

// Update applies a partial column update to a user
func (r *UserRepository) Update(ctx context.Context, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	builder := r.psql.Update("users").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id})
	for column, value := range fields {
		builder = builder.Set(column, value)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update user query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.psql.Delete("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete user query: %w", err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// GetByVerificationToken retrieves a user by an unexpired verification token
func (r *UserRepository) GetByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	query, args, err := r.psql.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"verification_token": token}).
		Where(squirrel.Gt{"verification_token_expiry": time.Now()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidEmailToken
		}
		return nil, fmt.Errorf("failed to get user by verification token: %w", err)
	}

	return user, nil
}

// MarkEmailVerified stamps email_verified_at and clears the verification token
func (r *UserRepository) MarkEmailVerified(ctx context.Context, id int64) error {
	return r.Update(ctx, id, map[string]interface{}{
		"email_verified_at":         time.Now(),
		"verification_token":        nil,
		"verification_token_expiry": nil,
	})
}

// SetResetPasswordToken stores a password reset token with its expiry
func (r *UserRepository) SetResetPasswordToken(ctx context.Context, id int64, token string, expiry time.Time) error {
	return r.Update(ctx, id, map[string]interface{}{
		"reset_password_token":  token,
		"reset_password_expiry": expiry,
	})
}

// GetByResetPasswordToken retrieves a user by an unexpired reset token
func (r *UserRepository) GetByResetPasswordToken(ctx context.Context, token string) (*models.User, error) {
	query, args, err := r.psql.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"reset_password_token": token}).
		Where(squirrel.Gt{"reset_password_expiry": time.Now()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvalidPasswordResetToken
		}
		return nil, fmt.Errorf("failed to get user by reset token: %w", err)
	}

	return user, nil
}

// UpdatePasswordAndClearResetToken stores a new password hash and
// invalidates the reset token in the same statement.
func (r *UserRepository) UpdatePasswordAndClearResetToken(ctx context.Context, id int64, passwordHash string) error {
	return r.Update(ctx, id, map[string]interface{}{
		"password":              passwordHash,
		"reset_password_token":  nil,
		"reset_password_expiry": nil,
	})
}

// CountByRole returns the number of users with the given role
func (r *UserRepository) CountByRole(ctx context.Context, role models.RoleType) (int64, error) {
	query, args, err := r.psql.Select("COUNT(*)").
		From("users").
		Where(squirrel.Eq{"role": role}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count users query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}
