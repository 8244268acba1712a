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

// StudentRepository handles database operations for potential students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new potential student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create inserts a new potential student and sets its generated ID. The unique
// index on email is the authoritative duplicate guard.
func (r *StudentRepository) Create(ctx context.Context, student *models.PotentialStudent) error {
	query := `
		INSERT INTO potential_students (email, first_name, middle_name, last_name, date_of_birth, year_level, guardian_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.Email, student.FirstName, student.MiddleName, student.LastName,
		student.DateOfBirth, student.YearLevel, student.GuardianID, student.CreatedAt,
	).Scan(&student.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrStudentEmailExists
		}
		return fmt.Errorf("error creating potential student: %w", err)
	}

	return nil
}

// GetByID retrieves a potential student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.PotentialStudent, error) {
	query := `
		SELECT id, email, first_name, middle_name, last_name, date_of_birth, year_level, guardian_id, created_at
		FROM potential_students
		WHERE id = $1
	`

	var student models.PotentialStudent
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.Email,
		&student.FirstName,
		&student.MiddleName,
		&student.LastName,
		&student.DateOfBirth,
		&student.YearLevel,
		&student.GuardianID,
		&student.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving potential student: %w", err)
	}

	return &student, nil
}

// GetByGuardian retrieves a guardian's potential students, newest first
func (r *StudentRepository) GetByGuardian(ctx context.Context, guardianID int64) ([]*models.PotentialStudent, error) {
	query := `
		SELECT id, email, first_name, middle_name, last_name, date_of_birth, year_level, guardian_id, created_at
		FROM potential_students
		WHERE guardian_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, guardianID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving potential students: %w", err)
	}
	defer rows.Close()

	return scanStudents(rows)
}

// GetOwnedByIDs retrieves the subset of the given student IDs that belong to
// the guardian. Callers compare the result size against the requested size to
// detect attempts to act on another guardian's students.
func (r *StudentRepository) GetOwnedByIDs(ctx context.Context, guardianID int64, ids []int64) ([]*models.PotentialStudent, error) {
	query := `
		SELECT id, email, first_name, middle_name, last_name, date_of_birth, year_level, guardian_id, created_at
		FROM potential_students
		WHERE guardian_id = $1 AND id = ANY($2)
	`

	rows, err := r.db.Query(ctx, query, guardianID, ids)
	if err != nil {
		return nil, fmt.Errorf("error retrieving owned potential students: %w", err)
	}
	defer rows.Close()

	return scanStudents(rows)
}

// scanStudents scans full potential student rows
func scanStudents(rows pgx.Rows) ([]*models.PotentialStudent, error) {
	var students []*models.PotentialStudent
	for rows.Next() {
		var student models.PotentialStudent
		if err := rows.Scan(
			&student.ID,
			&student.Email,
			&student.FirstName,
			&student.MiddleName,
			&student.LastName,
			&student.DateOfBirth,
			&student.YearLevel,
			&student.GuardianID,
			&student.CreatedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// EmailInUse checks whether an email is already taken by either a user or a
// potential student. Prospective student emails must not collide with either
// table.
func (r *StudentRepository) EmailInUse(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)
			OR EXISTS(SELECT 1 FROM potential_students WHERE email = $1)`,
		email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student email: %w", err)
	}

	return exists, nil
}

// DeleteCascade removes a potential student and its enrolments inside one
// transaction, enrolments first.
func (r *StudentRepository) DeleteCascade(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM enrolments WHERE student_id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student enrolments: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM potential_students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting potential student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
