package dto

import "github.com/veles/academia/internal/app/models"

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Title           string  `json:"title" binding:"required,max=100"`
	Credits         int     `json:"credits" binding:"required,min=1"`
	Semester        int     `json:"semester" binding:"required,min=1"`
	Programme       *string `json:"programme,omitempty" binding:"omitempty,max=100"`
	EducationLevel  *string `json:"educationLevel,omitempty" binding:"omitempty,max=25"`
	FirstTeacherID  *int64  `json:"firstTeacherId,omitempty" binding:"omitempty,gt=0"`
	SecondTeacherID *int64  `json:"secondTeacherId,omitempty" binding:"omitempty,gt=0"`
}

// UpdateCourseRequest represents course update data
type UpdateCourseRequest struct {
	Title           string  `json:"title" binding:"required,max=100"`
	Credits         int     `json:"credits" binding:"required,min=1"`
	Semester        int     `json:"semester" binding:"required,min=1"`
	Programme       *string `json:"programme,omitempty" binding:"omitempty,max=100"`
	EducationLevel  *string `json:"educationLevel,omitempty" binding:"omitempty,max=25"`
	FirstTeacherID  *int64  `json:"firstTeacherId,omitempty" binding:"omitempty,gt=0"`
	SecondTeacherID *int64  `json:"secondTeacherId,omitempty" binding:"omitempty,gt=0"`
}

// CourseFilter represents list filter parameters bound from the query string
type CourseFilter struct {
	Title     string `form:"title"`
	Programme string `form:"programme"`
	Semester  *int   `form:"semester"`
	TeacherID *int64 `form:"teacherId"`
}

// CourseResponse represents course data returned to clients
type CourseResponse struct {
	ID              int64            `json:"id"`
	Title           string           `json:"title"`
	Credits         int              `json:"credits"`
	Semester        int              `json:"semester"`
	Programme       *string          `json:"programme,omitempty"`
	EducationLevel  *string          `json:"educationLevel,omitempty"`
	FirstTeacherID  *int64           `json:"firstTeacherId,omitempty"`
	SecondTeacherID *int64           `json:"secondTeacherId,omitempty"`
	FirstTeacher    *TeacherResponse `json:"firstTeacher,omitempty"`
	SecondTeacher   *TeacherResponse `json:"secondTeacher,omitempty"`
}

// CourseDetailResponse adds the course roster to the base response
type CourseDetailResponse struct {
	CourseResponse
	Enrollments []EnrollmentResponse `json:"enrollments"`
}

// ToCourseResponse maps a course model to its response form
func ToCourseResponse(c *models.Course) CourseResponse {
	resp := CourseResponse{
		ID:              c.ID,
		Title:           c.Title,
		Credits:         c.Credits,
		Semester:        c.Semester,
		Programme:       c.Programme,
		EducationLevel:  c.EducationLevel,
		FirstTeacherID:  c.FirstTeacherID,
		SecondTeacherID: c.SecondTeacherID,
	}
	if c.FirstTeacher != nil {
		t := ToTeacherResponse(c.FirstTeacher)
		resp.FirstTeacher = &t
	}
	if c.SecondTeacher != nil {
		t := ToTeacherResponse(c.SecondTeacher)
		resp.SecondTeacher = &t
	}
	return resp
}

// ToCourseResponses maps a course list to response form
func ToCourseResponses(courses []*models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		responses = append(responses, ToCourseResponse(c))
	}
	return responses
}
