package models

import (
	"time"
)

// User defines an authentication account based on the 'users' table. An
// account optionally links to the teacher or student record it acts for; the
// link is a plain id reference stored on the account.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	RoleType  RoleType  `json:"roleType" db:"role_type"`
	TeacherID *int64    `json:"teacherId,omitempty" db:"teacher_id"`
	StudentID *int64    `json:"studentId,omitempty" db:"student_id"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
