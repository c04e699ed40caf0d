package models

import "time"

// Teacher defines the teacher model based on the 'teachers' table. A teacher
// cannot be deleted while any course references them in either teacher slot.
type Teacher struct {
	ID           int64      `json:"id" db:"id"`
	FirstName    string     `json:"firstName" db:"first_name"`
	LastName     string     `json:"lastName" db:"last_name"`
	Degree       *string    `json:"degree,omitempty" db:"degree"`
	AcademicRank *string    `json:"academicRank,omitempty" db:"academic_rank"`
	OfficeNumber *string    `json:"officeNumber,omitempty" db:"office_number"`
	HireDate     *time.Time `json:"hireDate,omitempty" db:"hire_date"`
	Email        string     `json:"email" db:"email"` // must belong to the institutional domain
	ImageURL     *string    `json:"imageUrl,omitempty" db:"image_url"`

	// Relations (populated when needed)
	Courses []*Course `json:"courses,omitempty"` // courses taught in either slot
}

// FullName returns the teacher's display name.
func (t *Teacher) FullName() string {
	return t.FirstName + " " + t.LastName
}
