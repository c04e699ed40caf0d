package models

import "time"

// Student defines the student model based on the 'students' table.
type Student struct {
	ID              int64      `json:"id" db:"id"`
	IndexNumber     string     `json:"indexNumber" db:"index_number"` // unique human-readable student number
	FirstName       string     `json:"firstName" db:"first_name"`
	LastName        string     `json:"lastName" db:"last_name"`
	EnrollmentDate  *time.Time `json:"enrollmentDate,omitempty" db:"enrollment_date"`
	AcquiredCredits *int       `json:"acquiredCredits,omitempty" db:"acquired_credits"`
	CurrentSemester *int       `json:"currentSemester,omitempty" db:"current_semester"`
	EducationLevel  *string    `json:"educationLevel,omitempty" db:"education_level"` // Bachelor, Master, PhD
	ImageURL        *string    `json:"imageUrl,omitempty" db:"image_url"`

	// Relations (populated when needed)
	Enrollments []*Enrollment `json:"enrollments,omitempty"`
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
