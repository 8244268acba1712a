package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository      *UserRepository
	TokenRepository     *TokenRepository
	SubjectRepository   *SubjectRepository
	CourseRepository    *CourseRepository
	StudentRepository   *StudentRepository
	EnrolmentRepository *EnrolmentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db),
		TokenRepository:     NewTokenRepository(db),
		SubjectRepository:   NewSubjectRepository(db),
		CourseRepository:    NewCourseRepository(db),
		StudentRepository:   NewStudentRepository(db),
		EnrolmentRepository: NewEnrolmentRepository(db),
	}
}
