package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"time"

	"github.com/veles/academia/internal/app/auth"
	"github.com/veles/academia/internal/app/models/dto"
	"github.com/veles/academia/internal/pkg/apperrors"
	"github.com/veles/academia/internal/pkg/filestorage"
	"github.com/veles/academia/internal/pkg/logger"
	"github.com/veles/academia/internal/pkg/validation"
)

// StudentPortalService is the student-facing surface: a student sees their
// own enrollments and attaches seminar documents and project links to them.
type StudentPortalService interface {
	MyEnrollments(ctx context.Context, principal auth.Principal, filter dto.EnrollmentFilter) ([]dto.EnrollmentResponse, error)
	GetEnrollment(ctx context.Context, principal auth.Principal, enrollmentID int64) (*dto.EnrollmentResponse, error)
	UploadSeminar(ctx context.Context, principal auth.Principal, enrollmentID int64, file *multipart.FileHeader) (*dto.EnrollmentResponse, error)
	DeleteSeminar(ctx context.Context, principal auth.Principal, enrollmentID int64) error
	SetProjectURL(ctx context.Context, principal auth.Principal, enrollmentID int64, req dto.ProjectURLRequest) (*dto.EnrollmentResponse, error)
	ClearProjectURL(ctx context.Context, principal auth.Principal, enrollmentID int64) error
}

type studentPortalServiceImpl struct {
	enrollmentRepo EnrollmentStore
	fileStorage    filestorage.FileStorage
	projectHost    string
}

// NewStudentPortalService creates a new StudentPortalService. projectHost is
// the hosting domain project links must point at.
func NewStudentPortalService(enrollmentRepo EnrollmentStore, fileStorage filestorage.FileStorage, projectHost string) StudentPortalService {
	return &studentPortalServiceImpl{
		enrollmentRepo: enrollmentRepo,
		fileStorage:    fileStorage,
		projectHost:    projectHost,
	}
}

// MyEnrollments lists the calling student's enrollments
func (s *studentPortalServiceImpl) MyEnrollments(ctx context.Context, principal auth.Principal, filter dto.EnrollmentFilter) ([]dto.EnrollmentResponse, error) {
	if principal.StudentID == nil {
		return nil, apperrors.ErrAccountNotLinked
	}

	enrollments, err := s.enrollmentRepo.ListByStudent(ctx, *principal.StudentID, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	return dto.ToEnrollmentResponses(enrollments), nil
}

// GetEnrollment retrieves one of the calling student's own enrollments with
// its course resolved
func (s *studentPortalServiceImpl) GetEnrollment(ctx context.Context, principal auth.Principal, enrollmentID int64) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if !principal.OwnsEnrollment(enrollment) {
		return nil, apperrors.ErrPermissionDenied
	}

	resp := dto.ToEnrollmentResponse(enrollment)
	return &resp, nil
}

// UploadSeminar stores a seminar document on the calling student's own
// enrollment, replacing any previous upload. Rejected uploads leave the
// enrollment and storage untouched. The stored URL carries the original
// filename as a query parameter so downloads keep a human-readable name.
func (s *studentPortalServiceImpl) UploadSeminar(ctx context.Context, principal auth.Principal, enrollmentID int64, file *multipart.FileHeader) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if !principal.OwnsEnrollment(enrollment) {
		return nil, apperrors.ErrPermissionDenied
	}

	if file == nil {
		return nil, apperrors.NewValidationError("a seminar document is required")
	}
	if !validation.IsAllowedSeminarFile(file.Filename) {
		return nil, apperrors.NewValidationError("seminar document must be a .pdf, .doc or .docx file")
	}
	if file.Size > validation.SeminarMaxBytes {
		return nil, apperrors.NewValidationError("seminar document may not exceed 10 MB")
	}

	storedURL, err := s.fileStorage.SaveFileWithPath(file, filestorage.SeminarsPath)
	if err != nil {
		return nil, fmt.Errorf("error saving seminar document: %w", err)
	}
	seminarURL := storedURL + "?name=" + url.QueryEscape(file.Filename)
	uploadedAt := time.Now()

	oldURL := enrollment.SeminarURL
	if err := s.enrollmentRepo.UpdateSeminar(ctx, enrollmentID, seminarURL, file.Filename, uploadedAt); err != nil {
		if delErr := s.fileStorage.DeleteFile(storedURL); delErr != nil {
			logger.Warn().Err(delErr).Msg("Failed to remove seminar document after aborted update")
		}
		return nil, err
	}

	if oldURL != nil {
		if err := s.fileStorage.DeleteFile(*oldURL); err != nil {
			logger.Warn().Err(err).Int64("enrollmentID", enrollmentID).Msg("Failed to remove replaced seminar document")
		}
	}

	enrollment.SeminarURL = &seminarURL
	enrollment.SeminarFileName = &file.Filename
	enrollment.SeminarUploadedAt = &uploadedAt

	logger.Info().Int64("enrollmentID", enrollmentID).Str("fileName", file.Filename).Msg("Seminar document uploaded")
	resp := dto.ToEnrollmentResponse(enrollment)
	return &resp, nil
}

// DeleteSeminar removes the seminar document from the calling student's own
// enrollment. The record is cleared first; a file missing on disk afterwards
// is tolerated.
func (s *studentPortalServiceImpl) DeleteSeminar(ctx context.Context, principal auth.Principal, enrollmentID int64) error {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return err
	}
	if !principal.OwnsEnrollment(enrollment) {
		return apperrors.ErrPermissionDenied
	}
	if enrollment.SeminarURL == nil {
		return nil
	}

	if err := s.enrollmentRepo.ClearSeminar(ctx, enrollmentID); err != nil {
		return err
	}
	if err := s.fileStorage.DeleteFile(*enrollment.SeminarURL); err != nil {
		logger.Warn().Err(err).Int64("enrollmentID", enrollmentID).Msg("Failed to remove deleted seminar document")
	}

	logger.Info().Int64("enrollmentID", enrollmentID).Msg("Seminar document removed")
	return nil
}

// SetProjectURL records the project link on the calling student's own
// enrollment. The link must be an absolute URL on the configured hosting
// domain; an empty link clears the stored one.
func (s *studentPortalServiceImpl) SetProjectURL(ctx context.Context, principal auth.Principal, enrollmentID int64, req dto.ProjectURLRequest) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if !principal.OwnsEnrollment(enrollment) {
		return nil, apperrors.ErrPermissionDenied
	}

	var projectURL *string
	if req.ProjectURL != "" {
		if err := validation.ValidateProjectURL(req.ProjectURL, s.projectHost); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		projectURL = &req.ProjectURL
	}

	if err := s.enrollmentRepo.UpdateProjectURL(ctx, enrollmentID, projectURL); err != nil {
		return nil, err
	}

	enrollment.ProjectURL = projectURL
	resp := dto.ToEnrollmentResponse(enrollment)
	return &resp, nil
}

// ClearProjectURL removes the project link from the calling student's own
// enrollment
func (s *studentPortalServiceImpl) ClearProjectURL(ctx context.Context, principal auth.Principal, enrollmentID int64) error {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return err
	}
	if !principal.OwnsEnrollment(enrollment) {
		return apperrors.ErrPermissionDenied
	}

	return s.enrollmentRepo.UpdateProjectURL(ctx, enrollmentID, nil)
}
