package models

// Course represents a course offering. The two teacher slots are functionally
// symmetric and independently nullable; deletion of a referenced teacher is
// blocked by the database.
type Course struct {
	ID              int64   `json:"id" db:"id"`
	Title           string  `json:"title" db:"title"`
	Credits         int     `json:"credits" db:"credits"`
	Semester        int     `json:"semester" db:"semester"`
	Programme       *string `json:"programme,omitempty" db:"programme"`
	EducationLevel  *string `json:"educationLevel,omitempty" db:"education_level"`
	FirstTeacherID  *int64  `json:"firstTeacherId,omitempty" db:"first_teacher_id"`
	SecondTeacherID *int64  `json:"secondTeacherId,omitempty" db:"second_teacher_id"`

	// Relations (populated when needed)
	FirstTeacher  *Teacher      `json:"firstTeacher,omitempty"`
	SecondTeacher *Teacher      `json:"secondTeacher,omitempty"`
	Enrollments   []*Enrollment `json:"enrollments,omitempty"`
}

// TeacherIDs returns the occupied teacher slots in order.
func (c *Course) TeacherIDs() []int64 {
	ids := make([]int64, 0, 2)
	if c.FirstTeacherID != nil {
		ids = append(ids, *c.FirstTeacherID)
	}
	if c.SecondTeacherID != nil {
		ids = append(ids, *c.SecondTeacherID)
	}
	return ids
}

// HasTeacher reports whether the teacher occupies either slot of the course.
// Ownership checks reduce to this one containment test.
func (c *Course) HasTeacher(teacherID int64) bool {
	for _, id := range c.TeacherIDs() {
		if id == teacherID {
			return true
		}
	}
	return false
}
