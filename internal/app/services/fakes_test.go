package services

import (
	"context"
	"sort"
	"time"

	"github.com/tomwyatt/hillcrest/internal/app/models"
	"github.com/tomwyatt/hillcrest/internal/app/models/dto"
	"github.com/tomwyatt/hillcrest/internal/pkg/apperrors"
)

// In-memory repository fakes used by the service tests.

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	f.nextID++
	user.ID = f.nextID
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) GetAllWithRole(_ context.Context, roleID *int) ([]*models.User, error) {
	var users []*models.User
	for _, u := range f.users {
		if roleID != nil && u.RoleID != *roleID {
			continue
		}
		clone := *u
		users = append(users, &clone)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, userID int64, roleID int) error {
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.RoleID = roleID
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Password = passwordHash
	return nil
}

func (f *fakeUserRepo) DeleteCascade(_ context.Context, userID int64) error {
	if _, ok := f.users[userID]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(f.users, userID)
	return nil
}

type storedToken struct {
	userID    int64
	expiry    time.Time
	isRevoked bool
}

type fakeTokenRepo struct {
	tokens map[string]*storedToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*storedToken)}
}

func (f *fakeTokenRepo) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	f.tokens[token] = &storedToken{userID: userID, expiry: expiryDate}
	return nil
}

func (f *fakeTokenRepo) GetTokenByValue(_ context.Context, token string) (int64, time.Time, bool, error) {
	t, ok := f.tokens[token]
	if !ok {
		return 0, time.Time{}, false, apperrors.ErrTokenNotFound
	}
	return t.userID, t.expiry, t.isRevoked, nil
}

func (f *fakeTokenRepo) RevokeToken(_ context.Context, token string) error {
	t, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.isRevoked = true
	return nil
}

func (f *fakeTokenRepo) DeleteExpiredTokens(_ context.Context) (int64, error) {
	var deleted int64
	for token, t := range f.tokens {
		if time.Now().After(t.expiry) {
			delete(f.tokens, token)
			deleted++
		}
	}
	return deleted, nil
}

type fakeSubjectRepo struct {
	subjects map[string]*models.Subject
}

func newFakeSubjectRepo() *fakeSubjectRepo {
	return &fakeSubjectRepo{subjects: make(map[string]*models.Subject)}
}

func (f *fakeSubjectRepo) Create(_ context.Context, subject *models.Subject) error {
	if _, ok := f.subjects[subject.Code]; ok {
		return apperrors.ErrSubjectAlreadyExists
	}
	clone := *subject
	f.subjects[subject.Code] = &clone
	return nil
}

func (f *fakeSubjectRepo) GetByCode(_ context.Context, code string) (*models.Subject, error) {
	s, ok := f.subjects[code]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	clone := *s
	return &clone, nil
}

func (f *fakeSubjectRepo) Exists(_ context.Context, code string) (bool, error) {
	_, ok := f.subjects[code]
	return ok, nil
}

func (f *fakeSubjectRepo) GetAllWithHOD(_ context.Context) ([]*models.Subject, error) {
	var subjects []*models.Subject
	for _, s := range f.subjects {
		clone := *s
		subjects = append(subjects, &clone)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].Code < subjects[j].Code })
	return subjects, nil
}

func (f *fakeSubjectRepo) DeleteCascade(_ context.Context, code string) error {
	if _, ok := f.subjects[code]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	delete(f.subjects, code)
	return nil
}

type fakeCourseRepo struct {
	courses map[string]*models.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[string]*models.Course)}
}

func (f *fakeCourseRepo) Create(_ context.Context, course *models.Course) error {
	if _, ok := f.courses[course.Code]; ok {
		return apperrors.ErrCourseAlreadyExists
	}
	clone := *course
	f.courses[course.Code] = &clone
	return nil
}

func (f *fakeCourseRepo) GetByCode(_ context.Context, code string) (*models.Course, error) {
	c, ok := f.courses[code]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCourseRepo) Exists(_ context.Context, code string) (bool, error) {
	_, ok := f.courses[code]
	return ok, nil
}

func (f *fakeCourseRepo) GetAllWithDetails(_ context.Context) ([]*models.Course, error) {
	var courses []*models.Course
	for _, c := range f.courses {
		clone := *c
		courses = append(courses, &clone)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Code < courses[j].Code })
	return courses, nil
}

func (f *fakeCourseRepo) GetByFaculty(_ context.Context, _ string) ([]*models.Course, error) {
	return f.GetAllWithDetails(nil)
}

func (f *fakeCourseRepo) DeleteCascade(_ context.Context, code string) error {
	if _, ok := f.courses[code]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(f.courses, code)
	return nil
}

type fakeStudentRepo struct {
	students   map[int64]*models.PotentialStudent
	userEmails map[string]bool
	nextID     int64
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{
		students:   make(map[int64]*models.PotentialStudent),
		userEmails: make(map[string]bool),
	}
}

func (f *fakeStudentRepo) Create(_ context.Context, student *models.PotentialStudent) error {
	for _, s := range f.students {
		if s.Email == student.Email {
			return apperrors.ErrStudentEmailExists
		}
	}
	f.nextID++
	student.ID = f.nextID
	clone := *student
	f.students[student.ID] = &clone
	return nil
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.PotentialStudent, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	clone := *s
	return &clone, nil
}

func (f *fakeStudentRepo) GetByGuardian(_ context.Context, guardianID int64) ([]*models.PotentialStudent, error) {
	var students []*models.PotentialStudent
	for _, s := range f.students {
		if s.GuardianID == guardianID {
			clone := *s
			students = append(students, &clone)
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID > students[j].ID })
	return students, nil
}

func (f *fakeStudentRepo) GetOwnedByIDs(_ context.Context, guardianID int64, ids []int64) ([]*models.PotentialStudent, error) {
	// ANY($2) in SQL returns each matching row once, however often the ID repeats
	seen := make(map[int64]bool, len(ids))
	var students []*models.PotentialStudent
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		s, ok := f.students[id]
		if ok && s.GuardianID == guardianID {
			clone := *s
			students = append(students, &clone)
		}
	}
	return students, nil
}

func (f *fakeStudentRepo) EmailInUse(_ context.Context, email string) (bool, error) {
	if f.userEmails[email] {
		return true, nil
	}
	for _, s := range f.students {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStudentRepo) DeleteCascade(_ context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

type fakeEnrolmentRepo struct {
	enrolments []*models.Enrolment
	students   *fakeStudentRepo
	nextID     int64
}

func newFakeEnrolmentRepo(students *fakeStudentRepo) *fakeEnrolmentRepo {
	return &fakeEnrolmentRepo{students: students}
}

func (f *fakeEnrolmentRepo) CreateBatch(_ context.Context, enrolments []*models.Enrolment) error {
	for _, e := range enrolments {
		for _, existing := range f.enrolments {
			if existing.CourseCode == e.CourseCode && existing.StudentID == e.StudentID {
				return apperrors.ErrAlreadyEnrolled
			}
		}
	}
	for _, e := range enrolments {
		f.nextID++
		e.ID = f.nextID
		clone := *e
		f.enrolments = append(f.enrolments, &clone)
	}
	return nil
}

func (f *fakeEnrolmentRepo) GetEnrolledStudentIDs(_ context.Context, courseCode string, studentIDs []int64) ([]int64, error) {
	wanted := make(map[int64]bool, len(studentIDs))
	for _, id := range studentIDs {
		wanted[id] = true
	}
	var ids []int64
	for _, e := range f.enrolments {
		if e.CourseCode == courseCode && wanted[e.StudentID] {
			ids = append(ids, e.StudentID)
		}
	}
	return ids, nil
}

func (f *fakeEnrolmentRepo) GetByStudent(_ context.Context, studentID int64) ([]*dto.StudentEnrolmentResponse, error) {
	var responses []*dto.StudentEnrolmentResponse
	for _, e := range f.enrolments {
		if e.StudentID == studentID {
			responses = append(responses, &dto.StudentEnrolmentResponse{
				CourseCode: e.CourseCode,
				EnrolledAt: e.EnrolledAt,
			})
		}
	}
	return responses, nil
}

func (f *fakeEnrolmentRepo) GetByCourseForGuardian(_ context.Context, courseCode string, guardianID int64) ([]int64, error) {
	var ids []int64
	for _, e := range f.enrolments {
		if e.CourseCode != courseCode {
			continue
		}
		s, ok := f.students.students[e.StudentID]
		if ok && s.GuardianID == guardianID {
			ids = append(ids, e.StudentID)
		}
	}
	return ids, nil
}

func (f *fakeEnrolmentRepo) DeleteByStudentAndCourse(_ context.Context, studentID int64, courseCode string) error {
	kept := f.enrolments[:0]
	for _, e := range f.enrolments {
		if e.StudentID == studentID && e.CourseCode == courseCode {
			continue
		}
		kept = append(kept, e)
	}
	f.enrolments = kept
	return nil
}

func (f *fakeEnrolmentRepo) AdminList(_ context.Context) ([]*dto.AdminEnrolmentResponse, error) {
	var responses []*dto.AdminEnrolmentResponse
	for _, e := range f.enrolments {
		responses = append(responses, &dto.AdminEnrolmentResponse{
			ID:         e.ID,
			EnrolledAt: e.EnrolledAt,
		})
	}
	return responses, nil
}

func (f *fakeEnrolmentRepo) DeleteByID(_ context.Context, id int64) error {
	for i, e := range f.enrolments {
		if e.ID == id {
			f.enrolments = append(f.enrolments[:i], f.enrolments[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrEnrolmentNotFound
}
