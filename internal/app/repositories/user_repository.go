package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tomwyatt/hillcrest/internal/app/models"
	"github.com/tomwyatt/hillcrest/internal/pkg/apperrors"
	"github.com/tomwyatt/hillcrest/internal/pkg/dberrors"
)

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create inserts a new user and sets its generated ID. The unique index on
// email is the authoritative duplicate guard.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password, first_name, middle_name, last_name, role_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		user.Email, user.Password, user.FirstName, user.MiddleName, user.LastName, user.RoleID, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password, first_name, middle_name, last_name, role_id, created_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.MiddleName,
		&user.LastName,
		&user.RoleID,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}

	return &user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, email, password, first_name, middle_name, last_name, role_id, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.MiddleName,
		&user.LastName,
		&user.RoleID,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// EmailExists checks if a user exists with the given email
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return exists, nil
}

// GetAllWithRole retrieves all users joined with their role name, optionally
// filtered by role rank (e.g. 4 for teachers, 3 for heads of department).
func (r *UserRepository) GetAllWithRole(ctx context.Context, roleID *int) ([]*models.User, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.middle_name, u.last_name, u.role_id, r.name, u.created_at
		FROM users u
		JOIN roles r ON r.id = u.role_id
	`
	var args []interface{}
	if roleID != nil {
		query += ` WHERE u.role_id = $1`
		args = append(args, *roleID)
	}
	query += ` ORDER BY u.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.FirstName,
			&user.MiddleName,
			&user.LastName,
			&user.RoleID,
			&user.RoleName,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// UpdateRole changes a user's role rank
func (r *UserRepository) UpdateRole(ctx context.Context, userID int64, roleID int) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET role_id = $1 WHERE id = $2`, roleID, userID)
	if err != nil {
		return fmt.Errorf("error updating role: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE users SET password = $1 WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// DeleteCascade removes a user together with everything that references it,
// in dependency order inside one transaction: the user's enrolments, the
// enrolments of courses it hosts, those courses, the enrolments and courses
// under subjects it heads, those subjects, its refresh tokens, its potential
// students (and their enrolments), then the user row itself.
func (r *UserRepository) DeleteCascade(ctx context.Context, userID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	statements := []string{
		`DELETE FROM enrolments WHERE enrolled_by = $1`,
		`DELETE FROM enrolments WHERE course_code IN (SELECT code FROM courses WHERE host_user_id = $1)`,
		`DELETE FROM courses WHERE host_user_id = $1`,
		`DELETE FROM enrolments WHERE course_code IN (
			SELECT code FROM courses WHERE subject_code IN (SELECT code FROM subjects WHERE hod_user_id = $1))`,
		`DELETE FROM courses WHERE subject_code IN (SELECT code FROM subjects WHERE hod_user_id = $1)`,
		`DELETE FROM subjects WHERE hod_user_id = $1`,
		`DELETE FROM refresh_tokens WHERE user_id = $1`,
		`DELETE FROM enrolments WHERE student_id IN (SELECT id FROM potential_students WHERE guardian_id = $1)`,
		`DELETE FROM potential_students WHERE guardian_id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt, userID); err != nil {
			return fmt.Errorf("error cascading user delete: %w", err)
		}
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
