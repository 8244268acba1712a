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

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// Create inserts a new course. The primary key on code is the authoritative
// duplicate guard.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (code, name, description, host_user_id, year_level, subject_code,
			offering_date, location, cost, prerequisites, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		course.Code, course.Name, course.Description, course.HostUserID, course.YearLevel,
		course.SubjectCode, course.OfferingDate, course.Location, course.Cost, course.Prerequisites,
		course.CreatedAt,
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseAlreadyExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByCode retrieves a course by its code
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	query := `
		SELECT code, name, description, host_user_id, year_level, subject_code,
			offering_date, location, cost, prerequisites, created_at
		FROM courses
		WHERE code = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, code).Scan(
		&course.Code,
		&course.Name,
		&course.Description,
		&course.HostUserID,
		&course.YearLevel,
		&course.SubjectCode,
		&course.OfferingDate,
		&course.Location,
		&course.Cost,
		&course.Prerequisites,
		&course.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// Exists checks if a course exists with the given code
func (r *CourseRepository) Exists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM courses WHERE code = $1)`,
		code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course existence: %w", err)
	}

	return exists, nil
}

const courseDetailsQuery = `
	SELECT c.code, c.name, c.description, c.host_user_id,
		u.first_name || ' ' || u.last_name,
		c.year_level, c.subject_code, COALESCE(s.name, ''),
		c.offering_date, c.location, c.cost, c.prerequisites, c.created_at
	FROM courses c
	JOIN users u ON u.id = c.host_user_id
	LEFT JOIN subjects s ON s.code = c.subject_code
`

// GetAllWithDetails retrieves all courses joined with host name and subject name
func (r *CourseRepository) GetAllWithDetails(ctx context.Context) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, courseDetailsQuery+` ORDER BY c.code`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	defer rows.Close()

	return scanCourseDetails(rows)
}

// GetByFaculty retrieves courses whose linked subject belongs to the given
// faculty, matched case-insensitively.
func (r *CourseRepository) GetByFaculty(ctx context.Context, faculty string) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, courseDetailsQuery+` WHERE LOWER(s.faculty) = LOWER($1) ORDER BY c.code`, faculty)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses by faculty: %w", err)
	}
	defer rows.Close()

	return scanCourseDetails(rows)
}

// scanCourseDetails scans rows produced by courseDetailsQuery
func scanCourseDetails(rows pgx.Rows) ([]*models.Course, error) {
	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.Code,
			&course.Name,
			&course.Description,
			&course.HostUserID,
			&course.HostName,
			&course.YearLevel,
			&course.SubjectCode,
			&course.SubjectName,
			&course.OfferingDate,
			&course.Location,
			&course.Cost,
			&course.Prerequisites,
			&course.CreatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// DeleteCascade removes a course and its enrolments inside one transaction,
// enrolments first.
func (r *CourseRepository) DeleteCascade(ctx context.Context, code string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM enrolments WHERE course_code = $1`, code)
	if err != nil {
		return fmt.Errorf("error deleting course enrolments: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM courses WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
