package dto

import (
	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/pkg/helpers"
)

// EnrollSelectedRequest enrolls a batch of students into a course for a given
// academic year and semester. Students already enrolled for that offering are
// skipped rather than rejected.
type EnrollSelectedRequest struct {
	Year       int     `json:"year" binding:"required,min=2000"`
	Semester   string  `json:"semester" binding:"required,oneof=Winter Summer"`
	StudentIDs []int64 `json:"studentIds" binding:"required,min=1,dive,gt=0"`
}

// DeactivateSelectedRequest drops a batch of enrollments. When no finish date
// is supplied the current date is used.
type DeactivateSelectedRequest struct {
	EnrollmentIDs []int64 `json:"enrollmentIds" binding:"required,min=1,dive,gt=0"`
	FinishDate    *string `json:"finishDate,omitempty"`
}

// GradingUpdateRequest carries the fields a teacher may edit on an enrollment
// of one of their courses. Setting a finish date on a running enrollment
// completes it.
type GradingUpdateRequest struct {
	Grade            *int    `json:"grade,omitempty" binding:"omitempty,min=5,max=10"`
	ExamPoints       *int    `json:"examPoints,omitempty" binding:"omitempty,min=0,max=100"`
	SeminarPoints    *int    `json:"seminarPoints,omitempty" binding:"omitempty,min=0,max=100"`
	ProjectPoints    *int    `json:"projectPoints,omitempty" binding:"omitempty,min=0,max=100"`
	AdditionalPoints *int    `json:"additionalPoints,omitempty" binding:"omitempty,min=0,max=100"`
	FinishDate       *string `json:"finishDate,omitempty"`
}

// ProjectURLRequest sets the project link on a student's own enrollment.
// An empty URL clears the stored link.
type ProjectURLRequest struct {
	ProjectURL string `json:"projectUrl" binding:"max=255"`
}

// EnrollmentFilter represents roster filter parameters bound from the query string
type EnrollmentFilter struct {
	Year     *int   `form:"year"`
	Semester string `form:"semester"`
	Status   string `form:"status"`
}

// EnrollSelectedResponse reports the outcome of a batch enrollment
type EnrollSelectedResponse struct {
	Enrolled int `json:"enrolled"`
	Skipped  int `json:"skipped"`
}

// DeactivateSelectedResponse reports the outcome of a batch deactivation
type DeactivateSelectedResponse struct {
	Deactivated int `json:"deactivated"`
}

// RosterResponse is a course roster for one enrollment year, along with the
// other years the course has enrollments for
type RosterResponse struct {
	CourseResponse
	Year        int                  `json:"year"`
	Years       []int                `json:"years"`
	Enrollments []EnrollmentResponse `json:"enrollments"`
}

// ManageEnrollmentsResponse is the administrative roster view for one course
// offering: the current roster plus the full student pick list
type ManageEnrollmentsResponse struct {
	CourseResponse
	Year        int                  `json:"year"`
	Semester    string               `json:"semester"`
	Enrollments []EnrollmentResponse `json:"enrollments"`
	Students    []StudentResponse    `json:"students"`
}

// EnrollmentResponse represents enrollment data returned to clients. Points is
// the computed total of exam, seminar and project points.
type EnrollmentResponse struct {
	ID                int64            `json:"id"`
	CourseID          int64            `json:"courseId"`
	StudentID         int64            `json:"studentId"`
	Semester          string           `json:"semester"`
	Year              int              `json:"year"`
	Status            string           `json:"status"`
	IsRepeating       bool             `json:"isRepeating"`
	IsActive          bool             `json:"isActive"`
	EnrolledOn        string           `json:"enrolledOn"`
	FinishDate        *string          `json:"finishDate,omitempty"`
	Grade             *int             `json:"grade,omitempty"`
	ExamPoints        *int             `json:"examPoints,omitempty"`
	SeminarPoints     *int             `json:"seminarPoints,omitempty"`
	ProjectPoints     *int             `json:"projectPoints,omitempty"`
	AdditionalPoints  *int             `json:"additionalPoints,omitempty"`
	Points            int              `json:"points"`
	SeminarURL        *string          `json:"seminarUrl,omitempty"`
	SeminarFileName   *string          `json:"seminarFileName,omitempty"`
	SeminarUploadedAt *string          `json:"seminarUploadedAt,omitempty"`
	ProjectURL        *string          `json:"projectUrl,omitempty"`
	Student           *StudentResponse `json:"student,omitempty"`
	Course            *CourseResponse  `json:"course,omitempty"`
}

// ToEnrollmentResponse maps an enrollment model to its response form
func ToEnrollmentResponse(e *models.Enrollment) EnrollmentResponse {
	resp := EnrollmentResponse{
		ID:               e.ID,
		CourseID:         e.CourseID,
		StudentID:        e.StudentID,
		Semester:         e.Semester,
		Year:             e.Year,
		Status:           string(e.Status),
		IsRepeating:      e.IsRepeating,
		IsActive:         e.IsActive(),
		EnrolledOn:       e.EnrolledOn.Format(helpers.DateLayout),
		FinishDate:       helpers.FormatDate(e.FinishDate),
		Grade:            e.Grade,
		ExamPoints:       e.ExamPoints,
		SeminarPoints:    e.SeminarPoints,
		ProjectPoints:    e.ProjectPoints,
		AdditionalPoints: e.AdditionalPoints,
		Points:           e.TotalPoints(),
		SeminarURL:       e.SeminarURL,
		SeminarFileName:  e.SeminarFileName,
		ProjectURL:       e.ProjectURL,
	}
	if e.SeminarUploadedAt != nil {
		ts := e.SeminarUploadedAt.Format("2006-01-02T15:04:05Z07:00")
		resp.SeminarUploadedAt = &ts
	}
	if e.Student != nil {
		s := ToStudentResponse(e.Student)
		resp.Student = &s
	}
	if e.Course != nil {
		c := ToCourseResponse(e.Course)
		resp.Course = &c
	}
	return resp
}

// ToEnrollmentResponses maps an enrollment list to response form
func ToEnrollmentResponses(enrollments []*models.Enrollment) []EnrollmentResponse {
	responses := make([]EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		responses = append(responses, ToEnrollmentResponse(e))
	}
	return responses
}
