package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomwyatt/hillcrest/internal/app/models"
	"github.com/tomwyatt/hillcrest/internal/app/models/dto"
	"github.com/tomwyatt/hillcrest/internal/app/repositories"
	"github.com/tomwyatt/hillcrest/internal/pkg/apperrors"
)

// EnrolmentService handles enrolling potential students in courses
type EnrolmentService struct {
	enrolmentRepo repositories.IEnrolmentRepository
	studentRepo   repositories.IStudentRepository
	courseRepo    repositories.ICourseRepository
	logger        zerolog.Logger
}

// NewEnrolmentService creates a new EnrolmentService
func NewEnrolmentService(
	enrolmentRepo repositories.IEnrolmentRepository,
	studentRepo repositories.IStudentRepository,
	courseRepo repositories.ICourseRepository,
	logger zerolog.Logger,
) *EnrolmentService {
	return &EnrolmentService{
		enrolmentRepo: enrolmentRepo,
		studentRepo:   studentRepo,
		courseRepo:    courseRepo,
		logger:        logger,
	}
}

// Enrol enrols the guardian's selected students in a course as a single batch.
// Every requested student must belong to the caller, and none may already hold
// an enrolment in the course; otherwise the whole batch is rejected.
func (s *EnrolmentService) Enrol(ctx context.Context, guardianID int64, req *dto.EnrolRequest) error {
	exists, err := s.courseRepo.Exists(ctx, req.CourseCode)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrCourseNotFound
	}

	owned, err := s.studentRepo.GetOwnedByIDs(ctx, guardianID, req.StudentIDs)
	if err != nil {
		return err
	}
	if len(owned) != len(uniqueIDs(req.StudentIDs)) {
		return apperrors.ErrInvalidStudentSelection
	}

	enrolledIDs, err := s.enrolmentRepo.GetEnrolledStudentIDs(ctx, req.CourseCode, req.StudentIDs)
	if err != nil {
		return err
	}
	if len(enrolledIDs) > 0 {
		return &apperrors.AlreadyEnrolledError{StudentNames: namesForIDs(owned, enrolledIDs)}
	}

	now := time.Now()
	enrolments := make([]*models.Enrolment, 0, len(owned))
	for _, student := range owned {
		enrolments = append(enrolments, &models.Enrolment{
			CourseCode: req.CourseCode,
			StudentID:  student.ID,
			EnrolledBy: guardianID,
			EnrolledAt: now,
		})
	}

	if err := s.enrolmentRepo.CreateBatch(ctx, enrolments); err != nil {
		return err
	}

	s.logger.Info().
		Str("courseCode", req.CourseCode).
		Int64("guardianID", guardianID).
		Int("students", len(enrolments)).
		Msg("Students enrolled")

	return nil
}

// Unenrol removes one of the guardian's students from a course. Removing an
// enrolment that does not exist is not an error.
func (s *EnrolmentService) Unenrol(ctx context.Context, guardianID int64, req *dto.UnenrolRequest) error {
	student, err := s.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return err
	}
	if student.GuardianID != guardianID {
		return apperrors.ErrStudentNotFound
	}

	if err := s.enrolmentRepo.DeleteByStudentAndCourse(ctx, req.StudentID, req.CourseCode); err != nil {
		return err
	}

	s.logger.Info().
		Str("courseCode", req.CourseCode).
		Int64("studentID", req.StudentID).
		Msg("Student unenrolled")

	return nil
}

// ListByStudent returns a student's enrolments for the owning guardian
func (s *EnrolmentService) ListByStudent(ctx context.Context, guardianID, studentID int64) ([]*dto.StudentEnrolmentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.GuardianID != guardianID {
		return nil, apperrors.ErrStudentNotFound
	}

	return s.enrolmentRepo.GetByStudent(ctx, studentID)
}

// ListByCourseForGuardian returns which of the guardian's students are
// enrolled in a course.
func (s *EnrolmentService) ListByCourseForGuardian(ctx context.Context, guardianID int64, courseCode string) ([]*dto.CourseEnrolmentResponse, error) {
	exists, err := s.courseRepo.Exists(ctx, courseCode)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrCourseNotFound
	}

	ids, err := s.enrolmentRepo.GetByCourseForGuardian(ctx, courseCode, guardianID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.CourseEnrolmentResponse, 0, len(ids))
	for _, id := range ids {
		responses = append(responses, &dto.CourseEnrolmentResponse{StudentID: id})
	}

	return responses, nil
}

// AdminList returns the privileged enrolment directory
func (s *EnrolmentService) AdminList(ctx context.Context) ([]*dto.AdminEnrolmentResponse, error) {
	return s.enrolmentRepo.AdminList(ctx)
}

// AdminDelete removes any enrolment by ID regardless of ownership
func (s *EnrolmentService) AdminDelete(ctx context.Context, id int64) error {
	if err := s.enrolmentRepo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("enrolmentID", id).Msg("Enrolment deleted by admin")

	return nil
}

// uniqueIDs deduplicates a slice of IDs preserving no particular order
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// namesForIDs returns the full names of the students whose IDs appear in ids
func namesForIDs(students []*models.PotentialStudent, ids []int64) []string {
	wanted := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var names []string
	for _, student := range students {
		if _, ok := wanted[student.ID]; ok {
			names = append(names, student.FirstName+" "+student.LastName)
		}
	}
	return names
}
