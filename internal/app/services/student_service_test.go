package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomwyatt/hillcrest/internal/app/models/dto"
	"github.com/tomwyatt/hillcrest/internal/pkg/apperrors"
)

func newStudentFixture(t *testing.T) (*StudentService, *fakeStudentRepo) {
	t.Helper()
	studentRepo := newFakeStudentRepo()
	svc := NewStudentService(studentRepo, zerolog.Nop())
	return svc, studentRepo
}

func validStudentRequest() *dto.CreatePotentialStudentRequest {
	return &dto.CreatePotentialStudentRequest{
		Email:       "kid@example.com",
		FirstName:   "Kim",
		LastName:    "Doe",
		DateOfBirth: "2012-05-01",
		YearLevel:   8,
	}
}

func TestCreateStudentSuccess(t *testing.T) {
	svc, _ := newStudentFixture(t)

	student, err := svc.Create(context.Background(), 10, validStudentRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(10), student.GuardianID)
	assert.Equal(t, 2012, student.DateOfBirth.Year())
	assert.NotZero(t, student.ID)
}

func TestCreateStudentNormalizesEmail(t *testing.T) {
	svc, _ := newStudentFixture(t)

	req := validStudentRequest()
	req.Email = "  Kid@Example.com "
	student, err := svc.Create(context.Background(), 10, req)
	require.NoError(t, err)
	assert.Equal(t, "kid@example.com", student.Email)
}

func TestCreateStudentRejectsInvalidYearLevel(t *testing.T) {
	svc, _ := newStudentFixture(t)

	req := validStudentRequest()
	req.YearLevel = 6
	_, err := svc.Create(context.Background(), 10, req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidYearLevel)
}

func TestCreateStudentRejectsBadDateOfBirth(t *testing.T) {
	svc, _ := newStudentFixture(t)

	for _, dob := range []string{"01/05/2012", "2012-13-01", "yesterday", ""} {
		req := validStudentRequest()
		req.DateOfBirth = dob
		_, err := svc.Create(context.Background(), 10, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, dob)
	}
}

func TestCreateStudentRejectsEmailUsedByUser(t *testing.T) {
	svc, studentRepo := newStudentFixture(t)
	studentRepo.userEmails["kid@example.com"] = true

	_, err := svc.Create(context.Background(), 10, validStudentRequest())
	assert.ErrorIs(t, err, apperrors.ErrStudentEmailExists)
}

func TestCreateStudentRejectsEmailUsedByStudent(t *testing.T) {
	svc, _ := newStudentFixture(t)

	_, err := svc.Create(context.Background(), 10, validStudentRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 11, validStudentRequest())
	assert.ErrorIs(t, err, apperrors.ErrStudentEmailExists)
}

func TestListByGuardianOnlyOwnStudents(t *testing.T) {
	svc, _ := newStudentFixture(t)

	_, err := svc.Create(context.Background(), 10, validStudentRequest())
	require.NoError(t, err)

	other := validStudentRequest()
	other.Email = "other@example.com"
	_, err = svc.Create(context.Background(), 99, other)
	require.NoError(t, err)

	students, err := svc.ListByGuardian(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "kid@example.com", students[0].Email)
}

func TestDeleteStudentRequiresOwnership(t *testing.T) {
	svc, _ := newStudentFixture(t)

	student, err := svc.Create(context.Background(), 10, validStudentRequest())
	require.NoError(t, err)

	// Another guardian sees it as not found, not forbidden
	assert.ErrorIs(t, svc.Delete(context.Background(), 99, student.ID), apperrors.ErrStudentNotFound)

	require.NoError(t, svc.Delete(context.Background(), 10, student.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), 10, student.ID), apperrors.ErrStudentNotFound)
}
