package dto

import (
	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/pkg/helpers"
)

// CreateTeacherRequest represents teacher creation data
type CreateTeacherRequest struct {
	FirstName    string  `json:"firstName" binding:"required,max=50"`
	LastName     string  `json:"lastName" binding:"required,max=50"`
	Degree       *string `json:"degree,omitempty" binding:"omitempty,max=25"`
	AcademicRank *string `json:"academicRank,omitempty" binding:"omitempty,max=25"`
	OfficeNumber *string `json:"officeNumber,omitempty" binding:"omitempty,max=10"`
	HireDate     *string `json:"hireDate,omitempty"`
	Email        string  `json:"email" binding:"required,email"`
}

// UpdateTeacherRequest represents teacher update data
type UpdateTeacherRequest struct {
	FirstName    string  `json:"firstName" binding:"required,max=50"`
	LastName     string  `json:"lastName" binding:"required,max=50"`
	Degree       *string `json:"degree,omitempty" binding:"omitempty,max=25"`
	AcademicRank *string `json:"academicRank,omitempty" binding:"omitempty,max=25"`
	OfficeNumber *string `json:"officeNumber,omitempty" binding:"omitempty,max=10"`
	HireDate     *string `json:"hireDate,omitempty"`
	Email        string  `json:"email" binding:"required,email"`
}

// TeacherFilter represents list filter parameters bound from the query string
type TeacherFilter struct {
	FirstName    string `form:"firstName"`
	LastName     string `form:"lastName"`
	Degree       string `form:"degree"`
	AcademicRank string `form:"academicRank"`
}

// TeacherResponse represents teacher data returned to clients
type TeacherResponse struct {
	ID           int64   `json:"id"`
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	FullName     string  `json:"fullName"`
	Degree       *string `json:"degree,omitempty"`
	AcademicRank *string `json:"academicRank,omitempty"`
	OfficeNumber *string `json:"officeNumber,omitempty"`
	HireDate     *string `json:"hireDate,omitempty"`
	Email        string  `json:"email"`
	ImageURL     *string `json:"imageUrl,omitempty"`
}

// TeacherDetailResponse adds the teacher's courses to the base response
type TeacherDetailResponse struct {
	TeacherResponse
	Courses []CourseResponse `json:"courses"`
}

// ToTeacherResponse maps a teacher model to its response form
func ToTeacherResponse(t *models.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:           t.ID,
		FirstName:    t.FirstName,
		LastName:     t.LastName,
		FullName:     t.FullName(),
		Degree:       t.Degree,
		AcademicRank: t.AcademicRank,
		OfficeNumber: t.OfficeNumber,
		HireDate:     helpers.FormatDate(t.HireDate),
		Email:        t.Email,
		ImageURL:     t.ImageURL,
	}
}

// ToTeacherResponses maps a teacher list to response form
func ToTeacherResponses(teachers []*models.Teacher) []TeacherResponse {
	responses := make([]TeacherResponse, 0, len(teachers))
	for _, t := range teachers {
		responses = append(responses, ToTeacherResponse(t))
	}
	return responses
}
