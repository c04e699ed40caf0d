package services

import (
	"context"
	"fmt"

	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/app/models/dto"
	"github.com/veles/academia/internal/pkg/apperrors"
)

// CourseService defines the interface for course administration
type CourseService interface {
	List(ctx context.Context, filter dto.CourseFilter) ([]dto.CourseResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.CourseDetailResponse, error)
	Create(ctx context.Context, req dto.CreateCourseRequest) (*dto.CourseResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id int64) error
}

type courseServiceImpl struct {
	courseRepo     CourseStore
	enrollmentRepo EnrollmentStore
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo CourseStore, enrollmentRepo EnrollmentStore) CourseService {
	return &courseServiceImpl{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// List retrieves courses matching the filter
func (s *courseServiceImpl) List(ctx context.Context, filter dto.CourseFilter) ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	return dto.ToCourseResponses(courses), nil
}

// GetByID retrieves a course together with its roster
func (s *courseServiceImpl) GetByID(ctx context.Context, id int64) (*dto.CourseDetailResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.ListByCourse(ctx, id, dto.EnrollmentFilter{})
	if err != nil {
		return nil, fmt.Errorf("error listing course roster: %w", err)
	}

	return &dto.CourseDetailResponse{
		CourseResponse: dto.ToCourseResponse(course),
		Enrollments:    dto.ToEnrollmentResponses(enrollments),
	}, nil
}

// Create adds a new course. Both teacher slots are optional but must
// reference different teachers when both are set.
func (s *courseServiceImpl) Create(ctx context.Context, req dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if err := validateTeacherSlots(req.FirstTeacherID, req.SecondTeacherID); err != nil {
		return nil, err
	}

	course := &models.Course{
		Title:           req.Title,
		Credits:         req.Credits,
		Semester:        req.Semester,
		Programme:       req.Programme,
		EducationLevel:  req.EducationLevel,
		FirstTeacherID:  req.FirstTeacherID,
		SecondTeacherID: req.SecondTeacherID,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	// Re-read to resolve the teacher slots for the response
	created, err := s.courseRepo.GetByID(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToCourseResponse(created)
	return &resp, nil
}

// Update rewrites a course's editable fields
func (s *courseServiceImpl) Update(ctx context.Context, id int64, req dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	if err := validateTeacherSlots(req.FirstTeacherID, req.SecondTeacherID); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Credits = req.Credits
	course.Semester = req.Semester
	course.Programme = req.Programme
	course.EducationLevel = req.EducationLevel
	course.FirstTeacherID = req.FirstTeacherID
	course.SecondTeacherID = req.SecondTeacherID

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	updated, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToCourseResponse(updated)
	return &resp, nil
}

// Delete removes a course. Its enrollments cascade at the database level.
func (s *courseServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.courseRepo.Delete(ctx, id)
}

func validateTeacherSlots(first, second *int64) error {
	if first != nil && second != nil && *first == *second {
		return apperrors.NewValidationError("the two teacher slots must reference different teachers")
	}
	return nil
}
