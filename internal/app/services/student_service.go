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
)

// StudentService defines the interface for student administration
type StudentService interface {
	List(ctx context.Context, filter dto.StudentFilter) ([]dto.StudentResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.StudentDetailResponse, error)
	Create(ctx context.Context, req dto.CreateStudentRequest) (*dto.StudentResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	Delete(ctx context.Context, id int64) error
	UploadImage(ctx context.Context, id int64, file *multipart.FileHeader) (*dto.StudentResponse, error)
}

type studentServiceImpl struct {
	studentRepo    StudentStore
	enrollmentRepo EnrollmentStore
	fileStorage    filestorage.FileStorage
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo StudentStore, enrollmentRepo EnrollmentStore, fileStorage filestorage.FileStorage) StudentService {
	return &studentServiceImpl{
		studentRepo:    studentRepo,
		enrollmentRepo: enrollmentRepo,
		fileStorage:    fileStorage,
	}
}

// List retrieves students matching the filter
func (s *studentServiceImpl) List(ctx context.Context, filter dto.StudentFilter) ([]dto.StudentResponse, error) {
	students, err := s.studentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	return dto.ToStudentResponses(students), nil
}

// GetByID retrieves a student together with their enrollment history
func (s *studentServiceImpl) GetByID(ctx context.Context, id int64) (*dto.StudentDetailResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.ListByStudent(ctx, id, dto.EnrollmentFilter{})
	if err != nil {
		return nil, fmt.Errorf("error listing student enrollments: %w", err)
	}

	return &dto.StudentDetailResponse{
		StudentResponse: dto.ToStudentResponse(student),
		Enrollments:     dto.ToEnrollmentResponses(enrollments),
	}, nil
}

// Create adds a new student record
func (s *studentServiceImpl) Create(ctx context.Context, req dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	enrollmentDate, err := helpers.ParseDate(req.EnrollmentDate)
	if err != nil {
		return nil, apperrors.NewValidationError("enrollmentDate must be in YYYY-MM-DD format")
	}

	student := &models.Student{
		IndexNumber:     req.IndexNumber,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		EnrollmentDate:  enrollmentDate,
		AcquiredCredits: req.AcquiredCredits,
		CurrentSemester: req.CurrentSemester,
		EducationLevel:  req.EducationLevel,
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	resp := dto.ToStudentResponse(student)
	return &resp, nil
}

// Update rewrites a student's editable fields
func (s *studentServiceImpl) Update(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	enrollmentDate, err := helpers.ParseDate(req.EnrollmentDate)
	if err != nil {
		return nil, apperrors.NewValidationError("enrollmentDate must be in YYYY-MM-DD format")
	}

	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	student.IndexNumber = req.IndexNumber
	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.EnrollmentDate = enrollmentDate
	student.AcquiredCredits = req.AcquiredCredits
	student.CurrentSemester = req.CurrentSemester
	student.EducationLevel = req.EducationLevel

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	resp := dto.ToStudentResponse(student)
	return &resp, nil
}

// Delete removes a student. Their enrollments cascade at the database level
// and an orphaned profile image is cleaned up afterwards.
func (s *studentServiceImpl) Delete(ctx context.Context, id int64) error {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if err == apperrors.ErrStudentNotFound {
			// Deleting an absent student is a no-op
			return nil
		}
		return err
	}

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}

	if student.ImageURL != nil {
		if err := s.fileStorage.DeleteFile(*student.ImageURL); err != nil {
			logger.Warn().Err(err).Int64("studentID", id).Msg("Failed to remove student image after delete")
		}
	}
	return nil
}

// UploadImage stores a new profile image for the student, replacing any
// previous one. The new file is written before the reference moves, and the
// old file is removed only after the database accepted the change.
func (s *studentServiceImpl) UploadImage(ctx context.Context, id int64, file *multipart.FileHeader) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.fileStorage.SaveFileWithPath(file, filestorage.StudentImagesPath)
	if err != nil {
		return nil, fmt.Errorf("error saving student image: %w", err)
	}

	if err := s.studentRepo.UpdateImageURL(ctx, id, &imageURL); err != nil {
		if delErr := s.fileStorage.DeleteFile(imageURL); delErr != nil {
			logger.Warn().Err(delErr).Msg("Failed to remove image after aborted update")
		}
		return nil, err
	}

	if student.ImageURL != nil {
		if err := s.fileStorage.DeleteFile(*student.ImageURL); err != nil {
			logger.Warn().Err(err).Int64("studentID", id).Msg("Failed to remove replaced student image")
		}
	}

	student.ImageURL = &imageURL
	resp := dto.ToStudentResponse(student)
	return &resp, nil
}
