package services

import (
	"context"
	"fmt"
	"time"

	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/app/models/dto"
	"github.com/veles/academia/internal/pkg/apperrors"
	"github.com/veles/academia/internal/pkg/helpers"
)

// EnrollmentService defines the interface for course roster administration
type EnrollmentService interface {
	ManageView(ctx context.Context, courseID int64, filter dto.EnrollmentFilter) (*dto.ManageEnrollmentsResponse, error)
	EnrollSelected(ctx context.Context, courseID int64, req dto.EnrollSelectedRequest) (*dto.EnrollSelectedResponse, error)
	DeactivateSelected(ctx context.Context, courseID int64, req dto.DeactivateSelectedRequest) (*dto.DeactivateSelectedResponse, error)
}

type enrollmentServiceImpl struct {
	courseRepo     CourseStore
	enrollmentRepo EnrollmentStore
	studentRepo    StudentStore
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(courseRepo CourseStore, enrollmentRepo EnrollmentStore, studentRepo StudentStore) EnrollmentService {
	return &enrollmentServiceImpl{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		studentRepo:    studentRepo,
	}
}

// ManageView retrieves a course's roster for one offering together with the
// full student pick list. The offering defaults to the current year's Winter
// semester when not specified.
func (s *enrollmentServiceImpl) ManageView(ctx context.Context, courseID int64, filter dto.EnrollmentFilter) (*dto.ManageEnrollmentsResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if filter.Year == nil {
		year := time.Now().Year()
		filter.Year = &year
	}
	if filter.Semester == "" {
		filter.Semester = models.SemesterWinter
	}

	enrollments, err := s.enrollmentRepo.ListByCourse(ctx, courseID, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing course roster: %w", err)
	}

	students, err := s.studentRepo.List(ctx, dto.StudentFilter{})
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	return &dto.ManageEnrollmentsResponse{
		CourseResponse: dto.ToCourseResponse(course),
		Year:           *filter.Year,
		Semester:       filter.Semester,
		Enrollments:    dto.ToEnrollmentResponses(enrollments),
		Students:       dto.ToStudentResponses(students),
	}, nil
}

// EnrollSelected enrolls a batch of students into the course for the given
// offering. Students already enrolled for that offering are reported as
// skipped, not failed.
func (s *enrollmentServiceImpl) EnrollSelected(ctx context.Context, courseID int64, req dto.EnrollSelectedRequest) (*dto.EnrollSelectedResponse, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	enrolled, err := s.enrollmentRepo.EnrollSelected(ctx, courseID, req.Year, req.Semester, req.StudentIDs)
	if err != nil {
		return nil, err
	}

	return &dto.EnrollSelectedResponse{
		Enrolled: enrolled,
		Skipped:  len(req.StudentIDs) - enrolled,
	}, nil
}

// DeactivateSelected drops a batch of the course's enrollments. Without an
// explicit finish date the current date is recorded.
func (s *enrollmentServiceImpl) DeactivateSelected(ctx context.Context, courseID int64, req dto.DeactivateSelectedRequest) (*dto.DeactivateSelectedResponse, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	finishDate, err := helpers.ParseDate(req.FinishDate)
	if err != nil {
		return nil, apperrors.NewValidationError("finishDate must be in YYYY-MM-DD format")
	}
	if finishDate == nil {
		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		finishDate = &today
	}

	deactivated, err := s.enrollmentRepo.DeactivateSelected(ctx, courseID, req.EnrollmentIDs, *finishDate)
	if err != nil {
		return nil, err
	}

	return &dto.DeactivateSelectedResponse{Deactivated: deactivated}, nil
}
