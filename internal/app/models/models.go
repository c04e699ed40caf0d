package models

// RoleType defines the account role. An account carries exactly one role.
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleTeacher RoleType = "TEACHER"
	RoleStudent RoleType = "STUDENT"
)

// EnrollmentStatus is the lifecycle state of an enrollment.
type EnrollmentStatus string

const (
	StatusEnrolled  EnrollmentStatus = "ENROLLED"
	StatusCompleted EnrollmentStatus = "COMPLETED"
	StatusDropped   EnrollmentStatus = "DROPPED"
)

// Semester labels used on enrollments.
const (
	SemesterWinter = "Winter"
	SemesterSummer = "Summer"
)
