package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomwyatt/hillcrest/internal/app/models"
	"github.com/tomwyatt/hillcrest/internal/app/models/dto"
	"github.com/tomwyatt/hillcrest/internal/app/repositories"
	"github.com/tomwyatt/hillcrest/internal/pkg/apperrors"
	"github.com/tomwyatt/hillcrest/internal/pkg/validation"
)

// CatalogueService handles the subject and course catalogue
type CatalogueService struct {
	subjectRepo repositories.ISubjectRepository
	courseRepo  repositories.ICourseRepository
	userRepo    repositories.IUserRepository
	logger      zerolog.Logger
}

// NewCatalogueService creates a new CatalogueService
func NewCatalogueService(
	subjectRepo repositories.ISubjectRepository,
	courseRepo repositories.ICourseRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) *CatalogueService {
	return &CatalogueService{
		subjectRepo: subjectRepo,
		courseRepo:  courseRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// CreateSubject adds a subject to the catalogue. Codes are exactly three
// uppercase letters and the head of department must be an existing user.
func (s *CatalogueService) CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*models.Subject, error) {
	code := strings.TrimSpace(req.Code)
	if !validation.IsValidSubjectCode(code) {
		return nil, apperrors.ErrInvalidSubjectCode
	}

	if _, err := s.userRepo.GetByID(ctx, req.HODUserID); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Code:      code,
		Name:      req.Name,
		Faculty:   req.Faculty,
		HODUserID: req.HODUserID,
	}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}

	s.logger.Info().Str("subjectCode", code).Msg("Subject created")

	return subject, nil
}

// ListSubjects returns the full subject catalogue with head of department names
func (s *CatalogueService) ListSubjects(ctx context.Context) ([]*models.Subject, error) {
	return s.subjectRepo.GetAllWithHOD(ctx)
}

// GetSubject returns a single subject by its code
func (s *CatalogueService) GetSubject(ctx context.Context, code string) (*models.Subject, error) {
	return s.subjectRepo.GetByCode(ctx, code)
}

// DeleteSubject removes a subject together with its courses and their
// enrolments.
func (s *CatalogueService) DeleteSubject(ctx context.Context, code string) error {
	if err := s.subjectRepo.DeleteCascade(ctx, code); err != nil {
		return err
	}

	s.logger.Info().Str("subjectCode", code).Msg("Subject deleted with dependent courses")

	return nil
}

// CreateCourse adds a course to the catalogue. The host must be an existing
// user and a linked subject, when given, must exist.
func (s *CatalogueService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	if !models.IsValidYearLevel(req.YearLevel) {
		return nil, apperrors.ErrInvalidYearLevel
	}

	if _, err := s.userRepo.GetByID(ctx, req.HostUserID); err != nil {
		return nil, err
	}

	if req.SubjectCode != nil && *req.SubjectCode != "" {
		exists, err := s.subjectRepo.Exists(ctx, *req.SubjectCode)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.ErrSubjectNotFound
		}
	}

	course := &models.Course{
		Code:          strings.TrimSpace(req.Code),
		Name:          req.Name,
		Description:   req.Description,
		HostUserID:    req.HostUserID,
		YearLevel:     req.YearLevel,
		SubjectCode:   req.SubjectCode,
		OfferingDate:  req.OfferingDate,
		Location:      req.Location,
		Cost:          req.Cost,
		Prerequisites: req.Prerequisites,
		CreatedAt:     time.Now(),
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().Str("courseCode", course.Code).Msg("Course created")

	return course, nil
}

// ListCourses returns all courses, optionally filtered by the faculty of the
// linked subject.
func (s *CatalogueService) ListCourses(ctx context.Context, faculty string) ([]*models.Course, error) {
	if faculty != "" {
		return s.courseRepo.GetByFaculty(ctx, faculty)
	}
	return s.courseRepo.GetAllWithDetails(ctx)
}

// GetCourse returns a single course by its code
func (s *CatalogueService) GetCourse(ctx context.Context, code string) (*models.Course, error) {
	return s.courseRepo.GetByCode(ctx, code)
}

// DeleteCourse removes a course together with its enrolments
func (s *CatalogueService) DeleteCourse(ctx context.Context, code string) error {
	if err := s.courseRepo.DeleteCascade(ctx, code); err != nil {
		return err
	}

	s.logger.Info().Str("courseCode", code).Msg("Course deleted with dependent enrolments")

	return nil
}
