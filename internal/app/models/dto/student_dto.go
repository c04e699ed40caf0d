package dto

import (
	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/pkg/helpers"
)

// CreateStudentRequest represents student creation data. Dates travel as
// "YYYY-MM-DD" strings.
type CreateStudentRequest struct {
	IndexNumber     string  `json:"indexNumber" binding:"required,max=10"`
	FirstName       string  `json:"firstName" binding:"required,max=50"`
	LastName        string  `json:"lastName" binding:"required,max=50"`
	EnrollmentDate  *string `json:"enrollmentDate,omitempty"`
	AcquiredCredits *int    `json:"acquiredCredits,omitempty" binding:"omitempty,min=0"`
	CurrentSemester *int    `json:"currentSemester,omitempty" binding:"omitempty,min=1"`
	EducationLevel  *string `json:"educationLevel,omitempty" binding:"omitempty,max=25"`
}

// UpdateStudentRequest represents student update data
type UpdateStudentRequest struct {
	IndexNumber     string  `json:"indexNumber" binding:"required,max=10"`
	FirstName       string  `json:"firstName" binding:"required,max=50"`
	LastName        string  `json:"lastName" binding:"required,max=50"`
	EnrollmentDate  *string `json:"enrollmentDate,omitempty"`
	AcquiredCredits *int    `json:"acquiredCredits,omitempty" binding:"omitempty,min=0"`
	CurrentSemester *int    `json:"currentSemester,omitempty" binding:"omitempty,min=1"`
	EducationLevel  *string `json:"educationLevel,omitempty" binding:"omitempty,max=25"`
}

// StudentFilter represents list filter parameters bound from the query string
type StudentFilter struct {
	IndexNumber string `form:"indexNumber"`
	FirstName   string `form:"firstName"`
	LastName    string `form:"lastName"`
}

// StudentResponse represents student data returned to clients
type StudentResponse struct {
	ID              int64   `json:"id"`
	IndexNumber     string  `json:"indexNumber"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	FullName        string  `json:"fullName"`
	EnrollmentDate  *string `json:"enrollmentDate,omitempty"`
	AcquiredCredits *int    `json:"acquiredCredits,omitempty"`
	CurrentSemester *int    `json:"currentSemester,omitempty"`
	EducationLevel  *string `json:"educationLevel,omitempty"`
	ImageURL        *string `json:"imageUrl,omitempty"`
}

// StudentDetailResponse adds the student's enrollments to the base response
type StudentDetailResponse struct {
	StudentResponse
	Enrollments []EnrollmentResponse `json:"enrollments"`
}

// ToStudentResponse maps a student model to its response form
func ToStudentResponse(s *models.Student) StudentResponse {
	return StudentResponse{
		ID:              s.ID,
		IndexNumber:     s.IndexNumber,
		FirstName:       s.FirstName,
		LastName:        s.LastName,
		FullName:        s.FullName(),
		EnrollmentDate:  helpers.FormatDate(s.EnrollmentDate),
		AcquiredCredits: s.AcquiredCredits,
		CurrentSemester: s.CurrentSemester,
		EducationLevel:  s.EducationLevel,
		ImageURL:        s.ImageURL,
	}
}

// ToStudentResponses maps a student list to response form
func ToStudentResponses(students []*models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		responses = append(responses, ToStudentResponse(s))
	}
	return responses
}
