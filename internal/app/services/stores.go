package services

import (
	"context"
	"time"

	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/app/models/dto"
)

// The store interfaces are the slices of the repository layer each service
// actually touches. The concrete repositories in the repositories package
// satisfy them; tests substitute in-memory fakes.

// UserStore persists accounts
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// StudentStore persists student records
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context, filter dto.StudentFilter) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	UpdateImageURL(ctx context.Context, id int64, imageURL *string) error
	Delete(ctx context.Context, id int64) error
}

// TeacherStore persists teacher records
type TeacherStore interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	List(ctx context.Context, filter dto.TeacherFilter) ([]*models.Teacher, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	UpdateImageURL(ctx context.Context, id int64, imageURL *string) error
	Delete(ctx context.Context, id int64) error
}

// CourseStore persists course records
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context, filter dto.CourseFilter) ([]*models.Course, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
}

// EnrollmentStore persists enrollments and their grading state
type EnrollmentStore interface {
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID int64, filter dto.EnrollmentFilter) ([]*models.Enrollment, error)
	ListByStudent(ctx context.Context, studentID int64, filter dto.EnrollmentFilter) ([]*models.Enrollment, error)
	YearsWithEnrollments(ctx context.Context, courseID int64) ([]int, error)
	EnrollSelected(ctx context.Context, courseID int64, year int, semester string, studentIDs []int64) (int, error)
	DeactivateSelected(ctx context.Context, courseID int64, enrollmentIDs []int64, finishDate time.Time) (int, error)
	UpdateGrading(ctx context.Context, e *models.Enrollment) error
	UpdateSeminar(ctx context.Context, id int64, seminarURL, fileName string, uploadedAt time.Time) error
	ClearSeminar(ctx context.Context, id int64) error
	UpdateProjectURL(ctx context.Context, id int64, projectURL *string) error
}
