package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomwyatt/hillcrest/internal/app/models"
	"github.com/tomwyatt/hillcrest/internal/app/models/dto"
	"github.com/tomwyatt/hillcrest/internal/app/repositories"
	"github.com/tomwyatt/hillcrest/internal/pkg/apperrors"
	"github.com/tomwyatt/hillcrest/internal/pkg/helpers"
	"github.com/tomwyatt/hillcrest/internal/pkg/validation"
)

// StudentService handles guardian-owned potential student operations
type StudentService struct {
	studentRepo repositories.IStudentRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo repositories.IStudentRepository, logger zerolog.Logger) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// Create records a new potential student owned by the calling guardian. The
// email must be free across both users and potential students.
func (s *StudentService) Create(ctx context.Context, guardianID int64, req *dto.CreatePotentialStudentRequest) (*models.PotentialStudent, error) {
	if !models.IsValidYearLevel(req.YearLevel) {
		return nil, apperrors.ErrInvalidYearLevel
	}

	dateOfBirth, err := helpers.ParseDateOnly(req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: date of birth must be yyyy-mm-dd", apperrors.ErrValidationFailed)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validation.CompiledPatterns.Email.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email address", apperrors.ErrValidationFailed)
	}

	inUse, err := s.studentRepo.EmailInUse(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking student email: %w", err)
	}
	if inUse {
		return nil, apperrors.ErrStudentEmailExists
	}

	student := &models.PotentialStudent{
		Email:       email,
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		LastName:    req.LastName,
		DateOfBirth: dateOfBirth,
		YearLevel:   req.YearLevel,
		GuardianID:  guardianID,
		CreatedAt:   time.Now(),
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentID", student.ID).Int64("guardianID", guardianID).Msg("Potential student created")

	return student, nil
}

// ListByGuardian returns the calling guardian's potential students, newest first
func (s *StudentService) ListByGuardian(ctx context.Context, guardianID int64) ([]*models.PotentialStudent, error) {
	return s.studentRepo.GetByGuardian(ctx, guardianID)
}

// Delete removes a potential student and all of its enrolments. Only the
// owning guardian may delete; a student owned by someone else is reported as
// not found rather than forbidden.
func (s *StudentService) Delete(ctx context.Context, guardianID, studentID int64) error {
	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if student.GuardianID != guardianID {
		return apperrors.ErrStudentNotFound
	}

	if err := s.studentRepo.DeleteCascade(ctx, studentID); err != nil {
		return err
	}

	s.logger.Info().Int64("studentID", studentID).Int64("guardianID", guardianID).Msg("Potential student deleted")

	return nil
}
