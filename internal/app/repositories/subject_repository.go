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

// SubjectRepository handles database operations for subjects
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
	}
}

// Create inserts a new subject. The primary key on code is the authoritative
// duplicate guard.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (code, name, faculty, hod_user_id)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, subject.Code, subject.Name, subject.Faculty, subject.HODUserID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrSubjectAlreadyExists
		}
		return fmt.Errorf("error creating subject: %w", err)
	}

	return nil
}

// GetByCode retrieves a subject by its three letter code
func (r *SubjectRepository) GetByCode(ctx context.Context, code string) (*models.Subject, error) {
	query := `
		SELECT code, name, faculty, hod_user_id
		FROM subjects
		WHERE code = $1
	`

	var subject models.Subject
	err := r.db.QueryRow(ctx, query, code).Scan(
		&subject.Code,
		&subject.Name,
		&subject.Faculty,
		&subject.HODUserID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	return &subject, nil
}

// Exists checks if a subject exists with the given code
func (r *SubjectRepository) Exists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM subjects WHERE code = $1)`,
		code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking subject existence: %w", err)
	}

	return exists, nil
}

// GetAllWithHOD retrieves all subjects joined with their head of department's name
func (r *SubjectRepository) GetAllWithHOD(ctx context.Context) ([]*models.Subject, error) {
	query := `
		SELECT s.code, s.name, s.faculty, s.hod_user_id, u.first_name || ' ' || u.last_name
		FROM subjects s
		JOIN users u ON u.id = s.hod_user_id
		ORDER BY s.code
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(
			&subject.Code,
			&subject.Name,
			&subject.Faculty,
			&subject.HODUserID,
			&subject.HODName,
		); err != nil {
			return nil, err
		}
		subjects = append(subjects, &subject)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}

// DeleteCascade removes a subject inside one transaction, in strict order:
// first the enrolments of its courses, then its courses, then the subject.
// Ordering matters so no orphaned enrolment ever references a deleted course.
func (r *SubjectRepository) DeleteCascade(ctx context.Context, code string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		DELETE FROM enrolments WHERE course_code IN (SELECT code FROM courses WHERE subject_code = $1)`, code)
	if err != nil {
		return fmt.Errorf("error deleting subject course enrolments: %w", err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM courses WHERE subject_code = $1`, code)
	if err != nil {
		return fmt.Errorf("error deleting subject courses: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM subjects WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("error deleting subject: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
