package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tomwyatt/hillcrest/internal/app/models"
	"github.com/tomwyatt/hillcrest/internal/app/models/dto"
	"github.com/tomwyatt/hillcrest/internal/pkg/apperrors"
	"github.com/tomwyatt/hillcrest/internal/pkg/dberrors"
)

// EnrolmentRepository handles database operations for enrolments
type EnrolmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrolmentRepository creates a new enrolment repository
func NewEnrolmentRepository(db *pgxpool.Pool) *EnrolmentRepository {
	return &EnrolmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateBatch inserts all enrolments inside one transaction so a failed
// insert never leaves a partial batch behind. A unique violation on the
// (course_code, student_id) index aborts the whole batch.
func (r *EnrolmentRepository) CreateBatch(ctx context.Context, enrolments []*models.Enrolment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO enrolments (course_code, student_id, enrolled_by, enrolled_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for _, enrolment := range enrolments {
		err := tx.QueryRow(ctx, query,
			enrolment.CourseCode, enrolment.StudentID, enrolment.EnrolledBy, enrolment.EnrolledAt,
		).Scan(&enrolment.ID)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrAlreadyEnrolled
			}
			// Course or student deleted between the service checks and the insert
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrResourceNotFound
			}
			return fmt.Errorf("error creating enrolment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetEnrolledStudentIDs returns which of the given students already have an
// enrolment in the course.
func (r *EnrolmentRepository) GetEnrolledStudentIDs(ctx context.Context, courseCode string, studentIDs []int64) ([]int64, error) {
	query := `
		SELECT student_id
		FROM enrolments
		WHERE course_code = $1 AND student_id = ANY($2)
	`

	rows, err := r.db.Query(ctx, query, courseCode, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("error checking existing enrolments: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// GetByStudent retrieves a student's enrolments with course details, newest first
func (r *EnrolmentRepository) GetByStudent(ctx context.Context, studentID int64) ([]*dto.StudentEnrolmentResponse, error) {
	query := `
		SELECT c.code, c.name, e.enrolled_at
		FROM enrolments e
		JOIN courses c ON c.code = e.course_code
		WHERE e.student_id = $1
		ORDER BY e.enrolled_at DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student enrolments: %w", err)
	}
	defer rows.Close()

	var enrolments []*dto.StudentEnrolmentResponse
	for rows.Next() {
		var enrolment dto.StudentEnrolmentResponse
		if err := rows.Scan(&enrolment.CourseCode, &enrolment.CourseName, &enrolment.EnrolledAt); err != nil {
			return nil, err
		}
		enrolments = append(enrolments, &enrolment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrolments, nil
}

// GetByCourseForGuardian returns the IDs of the guardian's own students
// enrolled in a course. Used to pre-check "already enrolled" before a
// guardian opens the enrolment dialog.
func (r *EnrolmentRepository) GetByCourseForGuardian(ctx context.Context, courseCode string, guardianID int64) ([]int64, error) {
	query := `
		SELECT e.student_id
		FROM enrolments e
		JOIN potential_students p ON p.id = e.student_id
		WHERE e.course_code = $1 AND p.guardian_id = $2
	`

	rows, err := r.db.Query(ctx, query, courseCode, guardianID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course enrolments: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// DeleteByStudentAndCourse removes a student's enrolment in a course.
// Idempotent: deleting an absent enrolment is not an error.
func (r *EnrolmentRepository) DeleteByStudentAndCourse(ctx context.Context, studentID int64, courseCode string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM enrolments WHERE student_id = $1 AND course_code = $2`,
		studentID, courseCode)
	if err != nil {
		return fmt.Errorf("error deleting enrolment: %w", err)
	}

	return nil
}

// AdminList retrieves the privileged enrolment directory joining course,
// student and guardian details.
func (r *EnrolmentRepository) AdminList(ctx context.Context) ([]*dto.AdminEnrolmentResponse, error) {
	sql, args, err := r.sb.Select(
		"e.id", "c.name",
		"p.first_name || ' ' || p.last_name", "p.email",
		"g.email", "p.date_of_birth", "p.year_level", "e.enrolled_at").
		From("enrolments e").
		Join("courses c ON c.code = e.course_code").
		Join("potential_students p ON p.id = e.student_id").
		Join("users g ON g.id = p.guardian_id").
		OrderBy("e.enrolled_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build admin enrolment query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving admin enrolments: %w", err)
	}
	defer rows.Close()

	var enrolments []*dto.AdminEnrolmentResponse
	for rows.Next() {
		var enrolment dto.AdminEnrolmentResponse
		if err := rows.Scan(
			&enrolment.ID,
			&enrolment.CourseName,
			&enrolment.StudentName,
			&enrolment.StudentEmail,
			&enrolment.GuardianEmail,
			&enrolment.DateOfBirth,
			&enrolment.YearLevel,
			&enrolment.EnrolledAt,
		); err != nil {
			return nil, err
		}
		enrolments = append(enrolments, &enrolment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrolments, nil
}

// DeleteByID removes a single enrolment unconditionally (admin operation)
func (r *EnrolmentRepository) DeleteByID(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM enrolments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrolment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrolmentNotFound
	}

	return nil
}
