package services

import (
	"context"
	"fmt"
	"time"

	"github.com/veles/academia/internal/app/auth"
	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/app/models/dto"
	"github.com/veles/academia/internal/pkg/apperrors"
	"github.com/veles/academia/internal/pkg/helpers"
	"github.com/veles/academia/internal/pkg/logger"
)

// GradebookService is the teacher-facing surface: a teacher sees their own
// courses and rosters and edits grading on their own students only.
type GradebookService interface {
	MyCourses(ctx context.Context, principal auth.Principal) ([]dto.CourseResponse, error)
	Roster(ctx context.Context, principal auth.Principal, courseID int64, filter dto.EnrollmentFilter) (*dto.RosterResponse, error)
	GetEnrollment(ctx context.Context, principal auth.Principal, id int64) (*dto.EnrollmentResponse, error)
	UpdateGrading(ctx context.Context, principal auth.Principal, id int64, req dto.GradingUpdateRequest) (*dto.EnrollmentResponse, error)
}

type gradebookServiceImpl struct {
	courseRepo     CourseStore
	enrollmentRepo EnrollmentStore
}

// NewGradebookService creates a new GradebookService
func NewGradebookService(courseRepo CourseStore, enrollmentRepo EnrollmentStore) GradebookService {
	return &gradebookServiceImpl{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// MyCourses lists the courses the calling teacher occupies a slot in
func (s *gradebookServiceImpl) MyCourses(ctx context.Context, principal auth.Principal) ([]dto.CourseResponse, error) {
	if principal.TeacherID == nil {
		return nil, apperrors.ErrAccountNotLinked
	}

	courses, err := s.courseRepo.ListByTeacher(ctx, *principal.TeacherID)
	if err != nil {
		return nil, fmt.Errorf("error listing teacher courses: %w", err)
	}
	return dto.ToCourseResponses(courses), nil
}

// Roster retrieves the roster of one of the calling teacher's courses for a
// single year. Without an explicit year the most recent year with
// enrollments is shown, falling back to the current year. An absent course
// reports not found before any ownership check so the two failures stay
// distinguishable.
func (s *gradebookServiceImpl) Roster(ctx context.Context, principal auth.Principal, courseID int64, filter dto.EnrollmentFilter) (*dto.RosterResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !principal.CanManageCourse(course) {
		return nil, apperrors.ErrPermissionDenied
	}

	years, err := s.enrollmentRepo.YearsWithEnrollments(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollment years: %w", err)
	}

	if filter.Year == nil {
		year := time.Now().Year()
		if len(years) > 0 {
			year = years[0]
		}
		filter.Year = &year
	}

	enrollments, err := s.enrollmentRepo.ListByCourse(ctx, courseID, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing course roster: %w", err)
	}

	return &dto.RosterResponse{
		CourseResponse: dto.ToCourseResponse(course),
		Year:           *filter.Year,
		Years:          years,
		Enrollments:    dto.ToEnrollmentResponses(enrollments),
	}, nil
}

// GetEnrollment retrieves a single enrollment of one of the calling
// teacher's courses
func (s *gradebookServiceImpl) GetEnrollment(ctx context.Context, principal auth.Principal, id int64) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.CanManageCourse(enrollment.Course) {
		return nil, apperrors.ErrPermissionDenied
	}

	resp := dto.ToEnrollmentResponse(enrollment)
	return &resp, nil
}

// UpdateGrading applies grading edits to an enrollment of one of the calling
// teacher's courses. Fields absent from the request keep their stored value;
// an empty finishDate string clears the date. Setting a finish date on a
// running enrollment completes it.
func (s *gradebookServiceImpl) UpdateGrading(ctx context.Context, principal auth.Principal, id int64, req dto.GradingUpdateRequest) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.CanManageCourse(enrollment.Course) {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.FinishDate != nil {
		finishDate, err := helpers.ParseDate(req.FinishDate)
		if err != nil {
			return nil, apperrors.NewValidationError("finishDate must be in YYYY-MM-DD format")
		}
		enrollment.FinishDate = finishDate
	}
	if req.Grade != nil {
		enrollment.Grade = req.Grade
	}
	if req.ExamPoints != nil {
		enrollment.ExamPoints = req.ExamPoints
	}
	if req.SeminarPoints != nil {
		enrollment.SeminarPoints = req.SeminarPoints
	}
	if req.ProjectPoints != nil {
		enrollment.ProjectPoints = req.ProjectPoints
	}
	if req.AdditionalPoints != nil {
		enrollment.AdditionalPoints = req.AdditionalPoints
	}

	enrollment.Status = models.NextStatus(enrollment.Status, enrollment.FinishDate)

	if err := s.enrollmentRepo.UpdateGrading(ctx, enrollment); err != nil {
		return nil, err
	}

	logger.Info().Int64("enrollmentID", id).Str("status", string(enrollment.Status)).Msg("Grading updated")
	resp := dto.ToEnrollmentResponse(enrollment)
	return &resp, nil
}
