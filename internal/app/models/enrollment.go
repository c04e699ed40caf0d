package models

import "time"

// Enrollment ties one student to one course offering (course + year +
// semester) and carries its grading and lifecycle state. A nil finish date
// means the enrollment is still running.
type Enrollment struct {
	ID          int64            `json:"id" db:"id"`
	CourseID    int64            `json:"courseId" db:"course_id"`
	StudentID   int64            `json:"studentId" db:"student_id"`
	Semester    string           `json:"semester" db:"semester"` // Winter or Summer
	Year        int              `json:"year" db:"year"`
	Status      EnrollmentStatus `json:"status" db:"status"`
	IsRepeating bool             `json:"isRepeating" db:"is_repeating"`
	EnrolledOn  time.Time        `json:"enrolledOn" db:"enrolled_on"`
	FinishDate  *time.Time       `json:"finishDate,omitempty" db:"finish_date"`

	Grade            *int `json:"grade,omitempty" db:"grade"`
	ExamPoints       *int `json:"examPoints,omitempty" db:"exam_points"`
	SeminarPoints    *int `json:"seminarPoints,omitempty" db:"seminar_points"`
	ProjectPoints    *int `json:"projectPoints,omitempty" db:"project_points"`
	AdditionalPoints *int `json:"additionalPoints,omitempty" db:"additional_points"`

	SeminarURL        *string    `json:"seminarUrl,omitempty" db:"seminar_url"`
	SeminarFileName   *string    `json:"seminarFileName,omitempty" db:"seminar_file_name"`
	SeminarUploadedAt *time.Time `json:"seminarUploadedAt,omitempty" db:"seminar_uploaded_at"`
	ProjectURL        *string    `json:"projectUrl,omitempty" db:"project_url"`

	// Relations (populated when needed)
	Student *Student `json:"student,omitempty"`
	Course  *Course  `json:"course,omitempty"`
}

// TotalPoints sums exam, seminar and project points, counting absent values
// as zero. Additional points are shown separately and not part of the total.
func (e *Enrollment) TotalPoints() int {
	total := 0
	if e.ExamPoints != nil {
		total += *e.ExamPoints
	}
	if e.SeminarPoints != nil {
		total += *e.SeminarPoints
	}
	if e.ProjectPoints != nil {
		total += *e.ProjectPoints
	}
	return total
}

// IsActive reports whether the enrollment is still running: no finish date
// and status ENROLLED.
func (e *Enrollment) IsActive() bool {
	return e.FinishDate == nil && e.Status == StatusEnrolled
}

// NextStatus is the single place the implicit status transition lives:
// setting a finish date on an ENROLLED enrollment completes it; everything
// else leaves the status untouched. DROPPED is only ever set explicitly by
// administrative deactivation.
func NextStatus(current EnrollmentStatus, finishDate *time.Time) EnrollmentStatus {
	if current == StatusEnrolled && finishDate != nil {
		return StatusCompleted
	}
	return current
}
