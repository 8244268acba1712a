package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomwyatt/hillcrest/internal/app/models"
	"github.com/tomwyatt/hillcrest/internal/app/models/dto"
	"github.com/tomwyatt/hillcrest/internal/pkg/apperrors"
)

func newEnrolmentFixture(t *testing.T) (*EnrolmentService, *fakeStudentRepo, *fakeCourseRepo, *fakeEnrolmentRepo) {
	t.Helper()
	studentRepo := newFakeStudentRepo()
	courseRepo := newFakeCourseRepo()
	enrolmentRepo := newFakeEnrolmentRepo(studentRepo)
	svc := NewEnrolmentService(enrolmentRepo, studentRepo, courseRepo, zerolog.Nop())
	return svc, studentRepo, courseRepo, enrolmentRepo
}

func addStudent(t *testing.T, repo *fakeStudentRepo, guardianID int64, firstName, lastName string) *models.PotentialStudent {
	t.Helper()
	student := &models.PotentialStudent{
		Email:       firstName + "." + lastName + "@example.com",
		FirstName:   firstName,
		LastName:    lastName,
		DateOfBirth: time.Date(2012, 5, 1, 0, 0, 0, 0, time.UTC),
		YearLevel:   8,
		GuardianID:  guardianID,
		CreatedAt:   time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), student))
	return student
}

func addCourse(t *testing.T, repo *fakeCourseRepo, code string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &models.Course{
		Code:       code,
		Name:       "Course " + code,
		HostUserID: 1,
		YearLevel:  8,
	}))
}

func TestEnrolBatchSuccess(t *testing.T) {
	svc, studentRepo, courseRepo, enrolmentRepo := newEnrolmentFixture(t)
	addCourse(t, courseRepo, "ENG101")
	alice := addStudent(t, studentRepo, 10, "Alice", "Smith")
	bob := addStudent(t, studentRepo, 10, "Bob", "Smith")

	err := svc.Enrol(context.Background(), 10, &dto.EnrolRequest{
		CourseCode: "ENG101",
		StudentIDs: []int64{alice.ID, bob.ID},
	})
	require.NoError(t, err)
	assert.Len(t, enrolmentRepo.enrolments, 2)
}

func TestEnrolCourseNotFound(t *testing.T) {
	svc, studentRepo, _, _ := newEnrolmentFixture(t)
	alice := addStudent(t, studentRepo, 10, "Alice", "Smith")

	err := svc.Enrol(context.Background(), 10, &dto.EnrolRequest{
		CourseCode: "MISSING",
		StudentIDs: []int64{alice.ID},
	})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestEnrolRejectsStudentOfAnotherGuardian(t *testing.T) {
	svc, studentRepo, courseRepo, enrolmentRepo := newEnrolmentFixture(t)
	addCourse(t, courseRepo, "ENG101")
	alice := addStudent(t, studentRepo, 10, "Alice", "Smith")
	eve := addStudent(t, studentRepo, 99, "Eve", "Jones")

	err := svc.Enrol(context.Background(), 10, &dto.EnrolRequest{
		CourseCode: "ENG101",
		StudentIDs: []int64{alice.ID, eve.ID},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStudentSelection)
	assert.Empty(t, enrolmentRepo.enrolments)
}

func TestEnrolRejectsUnknownStudentID(t *testing.T) {
	svc, studentRepo, courseRepo, _ := newEnrolmentFixture(t)
	addCourse(t, courseRepo, "ENG101")
	alice := addStudent(t, studentRepo, 10, "Alice", "Smith")

	err := svc.Enrol(context.Background(), 10, &dto.EnrolRequest{
		CourseCode: "ENG101",
		StudentIDs: []int64{alice.ID, 4242},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStudentSelection)
}

func TestEnrolRejectsAlreadyEnrolledSingle(t *testing.T) {
	svc, studentRepo, courseRepo, _ := newEnrolmentFixture(t)
	addCourse(t, courseRepo, "ENG101")
	alice := addStudent(t, studentRepo, 10, "Alice", "Smith")

	require.NoError(t, svc.Enrol(context.Background(), 10, &dto.EnrolRequest{
		CourseCode: "ENG101",
		StudentIDs: []int64{alice.ID},
	}))

	err := svc.Enrol(context.Background(), 10, &dto.EnrolRequest{
		CourseCode: "ENG101",
		StudentIDs: []int64{alice.ID},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)

	var enrolledErr *apperrors.AlreadyEnrolledError
	require.True(t, errors.As(err, &enrolledErr))
	assert.Equal(t, "Alice Smith is already enrolled.", enrolledErr.Error())
}

func TestEnrolRejectsWholeBatchWhenOneIsEnrolled(t *testing.T) {
	svc, studentRepo, courseRepo, enrolmentRepo := newEnrolmentFixture(t)
	addCourse(t, courseRepo, "ENG101")
	alice := addStudent(t, studentRepo, 10, "Alice", "Smith")
	bob := addStudent(t, studentRepo, 10, "Bob", "Smith")

	require.NoError(t, svc.Enrol(context.Background(), 10, &dto.EnrolRequest{
		CourseCode: "ENG101",
		StudentIDs: []int64{alice.ID},
	}))

	err := svc.Enrol(context.Background(), 10, &dto.EnrolRequest{
		CourseCode: "ENG101",
		StudentIDs: []int64{alice.ID, bob.ID},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
	// Bob must not have been enrolled either
	assert.Len(t, enrolmentRepo.enrolments, 1)
}

func TestEnrolDuplicateIDsInRequestCollapse(t *testing.T) {
	svc, studentRepo, courseRepo, enrolmentRepo := newEnrolmentFixture(t)
	addCourse(t, courseRepo, "ENG101")
	alice := addStudent(t, studentRepo, 10, "Alice", "Smith")

	err := svc.Enrol(context.Background(), 10, &dto.EnrolRequest{
		CourseCode: "ENG101",
		StudentIDs: []int64{alice.ID, alice.ID},
	})
	require.NoError(t, err)
	assert.Len(t, enrolmentRepo.enrolments, 1)
}

func TestUnenrolIsIdempotent(t *testing.T) {
	svc, studentRepo, courseRepo, _ := newEnrolmentFixture(t)
	addCourse(t, courseRepo, "ENG101")
	alice := addStudent(t, studentRepo, 10, "Alice", "Smith")

	require.NoError(t, svc.Enrol(context.Background(), 10, &dto.EnrolRequest{
		CourseCode: "ENG101",
		StudentIDs: []int64{alice.ID},
	}))

	req := &dto.UnenrolRequest{CourseCode: "ENG101", StudentID: alice.ID}
	assert.NoError(t, svc.Unenrol(context.Background(), 10, req))
	assert.NoError(t, svc.Unenrol(context.Background(), 10, req))
}

func TestUnenrolRejectsStudentOfAnotherGuardian(t *testing.T) {
	svc, studentRepo, courseRepo, _ := newEnrolmentFixture(t)
	addCourse(t, courseRepo, "ENG101")
	eve := addStudent(t, studentRepo, 99, "Eve", "Jones")

	err := svc.Unenrol(context.Background(), 10, &dto.UnenrolRequest{
		CourseCode: "ENG101",
		StudentID:  eve.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestListByStudentRequiresOwnership(t *testing.T) {
	svc, studentRepo, courseRepo, _ := newEnrolmentFixture(t)
	addCourse(t, courseRepo, "ENG101")
	alice := addStudent(t, studentRepo, 10, "Alice", "Smith")

	require.NoError(t, svc.Enrol(context.Background(), 10, &dto.EnrolRequest{
		CourseCode: "ENG101",
		StudentIDs: []int64{alice.ID},
	}))

	enrolments, err := svc.ListByStudent(context.Background(), 10, alice.ID)
	require.NoError(t, err)
	assert.Len(t, enrolments, 1)

	_, err = svc.ListByStudent(context.Background(), 99, alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestListByCourseForGuardianOnlyOwnStudents(t *testing.T) {
	svc, studentRepo, courseRepo, _ := newEnrolmentFixture(t)
	addCourse(t, courseRepo, "ENG101")
	alice := addStudent(t, studentRepo, 10, "Alice", "Smith")
	eve := addStudent(t, studentRepo, 99, "Eve", "Jones")

	require.NoError(t, svc.Enrol(context.Background(), 10, &dto.EnrolRequest{
		CourseCode: "ENG101",
		StudentIDs: []int64{alice.ID},
	}))
	require.NoError(t, svc.Enrol(context.Background(), 99, &dto.EnrolRequest{
		CourseCode: "ENG101",
		StudentIDs: []int64{eve.ID},
	}))

	enrolments, err := svc.ListByCourseForGuardian(context.Background(), 10, "ENG101")
	require.NoError(t, err)
	require.Len(t, enrolments, 1)
	assert.Equal(t, alice.ID, enrolments[0].StudentID)
}

func TestAdminDeleteEnrolment(t *testing.T) {
	svc, studentRepo, courseRepo, enrolmentRepo := newEnrolmentFixture(t)
	addCourse(t, courseRepo, "ENG101")
	alice := addStudent(t, studentRepo, 10, "Alice", "Smith")

	require.NoError(t, svc.Enrol(context.Background(), 10, &dto.EnrolRequest{
		CourseCode: "ENG101",
		StudentIDs: []int64{alice.ID},
	}))
	require.Len(t, enrolmentRepo.enrolments, 1)

	require.NoError(t, svc.AdminDelete(context.Background(), enrolmentRepo.enrolments[0].ID))
	assert.Empty(t, enrolmentRepo.enrolments)

	err := svc.AdminDelete(context.Background(), 4242)
	assert.ErrorIs(t, err, apperrors.ErrEnrolmentNotFound)
}
