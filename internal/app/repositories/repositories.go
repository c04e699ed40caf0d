package repositories

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles all repositories over one connection pool
type Repositories struct {
	Users       *UserRepository
	Students    *StudentRepository
	Teachers    *TeacherRepository
	Courses     *CourseRepository
	Enrollments *EnrollmentRepository
}

// NewRepositories creates the repository set
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(db),
		Students:    NewStudentRepository(db),
		Teachers:    NewTeacherRepository(db),
		Courses:     NewCourseRepository(db),
		Enrollments: NewEnrollmentRepository(db),
	}
}
