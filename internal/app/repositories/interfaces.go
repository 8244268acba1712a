package repositories

import (
	"context"
	"time"

	"github.com/tomwyatt/hillcrest/internal/app/models"
	"github.com/tomwyatt/hillcrest/internal/app/models/dto"
)

// Interfaces over the concrete repositories. Services depend on these so they
// can be exercised against in-memory fakes in tests.

// IUserRepository defines user data access operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetAllWithRole(ctx context.Context, roleID *int) ([]*models.User, error)
	UpdateRole(ctx context.Context, userID int64, roleID int) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	DeleteCascade(ctx context.Context, userID int64) error
}

// ITokenRepository defines refresh token data access operations
type ITokenRepository interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (userID int64, expiryDate time.Time, isRevoked bool, err error)
	RevokeToken(ctx context.Context, token string) error
	DeleteExpiredTokens(ctx context.Context) (int64, error)
}

// ISubjectRepository defines subject data access operations
type ISubjectRepository interface {
	Create(ctx context.Context, subject *models.Subject) error
	GetByCode(ctx context.Context, code string) (*models.Subject, error)
	Exists(ctx context.Context, code string) (bool, error)
	GetAllWithHOD(ctx context.Context) ([]*models.Subject, error)
	DeleteCascade(ctx context.Context, code string) error
}

// ICourseRepository defines course data access operations
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	Exists(ctx context.Context, code string) (bool, error)
	GetAllWithDetails(ctx context.Context) ([]*models.Course, error)
	GetByFaculty(ctx context.Context, faculty string) ([]*models.Course, error)
	DeleteCascade(ctx context.Context, code string) error
}

// IStudentRepository defines potential student data access operations
type IStudentRepository interface {
	Create(ctx context.Context, student *models.PotentialStudent) error
	GetByID(ctx context.Context, id int64) (*models.PotentialStudent, error)
	GetByGuardian(ctx context.Context, guardianID int64) ([]*models.PotentialStudent, error)
	GetOwnedByIDs(ctx context.Context, guardianID int64, ids []int64) ([]*models.PotentialStudent, error)
	EmailInUse(ctx context.Context, email string) (bool, error)
	DeleteCascade(ctx context.Context, id int64) error
}

// IEnrolmentRepository defines enrolment data access operations
type IEnrolmentRepository interface {
	CreateBatch(ctx context.Context, enrolments []*models.Enrolment) error
	GetEnrolledStudentIDs(ctx context.Context, courseCode string, studentIDs []int64) ([]int64, error)
	GetByStudent(ctx context.Context, studentID int64) ([]*dto.StudentEnrolmentResponse, error)
	GetByCourseForGuardian(ctx context.Context, courseCode string, guardianID int64) ([]int64, error)
	DeleteByStudentAndCourse(ctx context.Context, studentID int64, courseCode string) error
	AdminList(ctx context.Context) ([]*dto.AdminEnrolmentResponse, error)
	DeleteByID(ctx context.Context, id int64) error
}
