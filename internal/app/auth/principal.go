package auth

import (
	"github.com/veles/academia/internal/app/models"
)

// ContextKey is the gin context key the authenticated principal is stored
// under by the auth middleware.
const ContextKey = "principal"

// Principal is the resolved identity of the caller for one request: the
// account, its role, and the domain record it acts for. Services receive it
// explicitly and never reach back into transport state.
type Principal struct {
	UserID    int64
	Email     string
	Role      models.RoleType
	TeacherID *int64
	StudentID *int64
}

// NewPrincipal builds a principal from an account record
func NewPrincipal(user *models.User) Principal {
	return Principal{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.RoleType,
		TeacherID: user.TeacherID,
		StudentID: user.StudentID,
	}
}

// IsAdmin reports whether the caller holds the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// CanManageCourse reports whether the caller may act on the course's roster:
// admins always, teachers only for courses they occupy a teacher slot in.
func (p Principal) CanManageCourse(course *models.Course) bool {
	if p.IsAdmin() {
		return true
	}
	if p.Role == models.RoleTeacher && p.TeacherID != nil {
		return course.HasTeacher(*p.TeacherID)
	}
	return false
}

// OwnsEnrollment reports whether the caller is the student the enrollment
// belongs to
func (p Principal) OwnsEnrollment(enrollment *models.Enrollment) bool {
	return p.Role == models.RoleStudent && p.StudentID != nil && *p.StudentID == enrollment.StudentID
}
