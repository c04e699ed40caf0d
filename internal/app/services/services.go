package services

import (
	"github.com/veles/academia/internal/app/repositories"
	"github.com/veles/academia/internal/config"
	pkgauth "github.com/veles/academia/internal/pkg/auth"
	"github.com/veles/academia/internal/pkg/filestorage"
)

// Services bundles the service layer
type Services struct {
	Auth          AuthService
	Students      StudentService
	Teachers      TeacherService
	Courses       CourseService
	Enrollments   EnrollmentService
	Gradebook     GradebookService
	StudentPortal StudentPortalService
}

// NewServices wires the services over the repository set
func NewServices(repos *repositories.Repositories, jwtService *pkgauth.JWTService, fileStorage filestorage.FileStorage, cfg *config.Config) *Services {
	return &Services{
		Auth:          NewAuthService(repos.Users, jwtService),
		Students:      NewStudentService(repos.Students, repos.Enrollments, fileStorage),
		Teachers:      NewTeacherService(repos.Teachers, repos.Courses, fileStorage, cfg.University.EmailDomain),
		Courses:       NewCourseService(repos.Courses, repos.Enrollments),
		Enrollments:   NewEnrollmentService(repos.Courses, repos.Enrollments, repos.Students),
		Gradebook:     NewGradebookService(repos.Courses, repos.Enrollments),
		StudentPortal: NewStudentPortalService(repos.Enrollments, fileStorage, cfg.University.ProjectHost),
	}
}
