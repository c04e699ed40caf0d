package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/app/models/dto"
	"github.com/veles/academia/internal/pkg/apperrors"
	"github.com/veles/academia/internal/pkg/filestorage"
	"github.com/veles/academia/internal/pkg/helpers"
	"github.com/veles/academia/internal/pkg/logger"
	"github.com/veles/academia/internal/pkg/validation"
)

// TeacherService defines the interface for teacher administration
type TeacherService interface {
	List(ctx context.Context, filter dto.TeacherFilter) ([]dto.TeacherResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.TeacherDetailResponse, error)
	Create(ctx context.Context, req dto.CreateTeacherRequest) (*dto.TeacherResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateTeacherRequest) (*dto.TeacherResponse, error)
	Delete(ctx context.Context, id int64) error
	UploadImage(ctx context.Context, id int64, file *multipart.FileHeader) (*dto.TeacherResponse, error)
}

type teacherServiceImpl struct {
	teacherRepo TeacherStore
	courseRepo  CourseStore
	fileStorage filestorage.FileStorage
	emailDomain string
}

// NewTeacherService creates a new TeacherService. emailDomain is the
// institutional domain teacher emails must belong to.
func NewTeacherService(teacherRepo TeacherStore, courseRepo CourseStore, fileStorage filestorage.FileStorage, emailDomain string) TeacherService {
	return &teacherServiceImpl{
		teacherRepo: teacherRepo,
		courseRepo:  courseRepo,
		fileStorage: fileStorage,
		emailDomain: emailDomain,
	}
}

// List retrieves teachers matching the filter
func (s *teacherServiceImpl) List(ctx context.Context, filter dto.TeacherFilter) ([]dto.TeacherResponse, error) {
	teachers, err := s.teacherRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	return dto.ToTeacherResponses(teachers), nil
}

// GetByID retrieves a teacher together with the courses they teach
func (s *teacherServiceImpl) GetByID(ctx context.Context, id int64) (*dto.TeacherDetailResponse, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	courses, err := s.courseRepo.ListByTeacher(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error listing teacher courses: %w", err)
	}

	return &dto.TeacherDetailResponse{
		TeacherResponse: dto.ToTeacherResponse(teacher),
		Courses:         dto.ToCourseResponses(courses),
	}, nil
}

// Create adds a new teacher record
func (s *teacherServiceImpl) Create(ctx context.Context, req dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	if !validation.HasInstitutionalDomain(req.Email, s.emailDomain) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("teacher email must belong to the %s domain", s.emailDomain))
	}
	hireDate, err := helpers.ParseDate(req.HireDate)
	if err != nil {
		return nil, apperrors.NewValidationError("hireDate must be in YYYY-MM-DD format")
	}

	teacher := &models.Teacher{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Degree:       req.Degree,
		AcademicRank: req.AcademicRank,
		OfficeNumber: req.OfficeNumber,
		HireDate:     hireDate,
		Email:        req.Email,
	}
	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return nil, err
	}

	resp := dto.ToTeacherResponse(teacher)
	return &resp, nil
}

// Update rewrites a teacher's editable fields
func (s *teacherServiceImpl) Update(ctx context.Context, id int64, req dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	if !validation.HasInstitutionalDomain(req.Email, s.emailDomain) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("teacher email must belong to the %s domain", s.emailDomain))
	}
	hireDate, err := helpers.ParseDate(req.HireDate)
	if err != nil {
		return nil, apperrors.NewValidationError("hireDate must be in YYYY-MM-DD format")
	}

	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	teacher.FirstName = req.FirstName
	teacher.LastName = req.LastName
	teacher.Degree = req.Degree
	teacher.AcademicRank = req.AcademicRank
	teacher.OfficeNumber = req.OfficeNumber
	teacher.HireDate = hireDate
	teacher.Email = req.Email

	if err := s.teacherRepo.Update(ctx, teacher); err != nil {
		return nil, err
	}

	resp := dto.ToTeacherResponse(teacher)
	return &resp, nil
}

// Delete removes a teacher. A teacher still occupying a course slot cannot
// be deleted; that surfaces as a conflict.
func (s *teacherServiceImpl) Delete(ctx context.Context, id int64) error {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		if err == apperrors.ErrTeacherNotFound {
			// Deleting an absent teacher is a no-op
			return nil
		}
		return err
	}

	if err := s.teacherRepo.Delete(ctx, id); err != nil {
		return err
	}

	if teacher.ImageURL != nil {
		if err := s.fileStorage.DeleteFile(*teacher.ImageURL); err != nil {
			logger.Warn().Err(err).Int64("teacherID", id).Msg("Failed to remove teacher image after delete")
		}
	}
	return nil
}

// UploadImage stores a new profile image for the teacher, replacing any
// previous one
func (s *teacherServiceImpl) UploadImage(ctx context.Context, id int64, file *multipart.FileHeader) (*dto.TeacherResponse, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.fileStorage.SaveFileWithPath(file, filestorage.TeacherImagesPath)
	if err != nil {
		return nil, fmt.Errorf("error saving teacher image: %w", err)
	}

	if err := s.teacherRepo.UpdateImageURL(ctx, id, &imageURL); err != nil {
		if delErr := s.fileStorage.DeleteFile(imageURL); delErr != nil {
			logger.Warn().Err(delErr).Msg("Failed to remove image after aborted update")
		}
		return nil, err
	}

	if teacher.ImageURL != nil {
		if err := s.fileStorage.DeleteFile(*teacher.ImageURL); err != nil {
			logger.Warn().Err(err).Int64("teacherID", id).Msg("Failed to remove replaced teacher image")
		}
	}

	teacher.ImageURL = &imageURL
	resp := dto.ToTeacherResponse(teacher)
	return &resp, nil
}
