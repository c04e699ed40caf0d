package services

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veles/academia/internal/app/auth"
	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/app/models/dto"
	"github.com/veles/academia/internal/pkg/apperrors"
	"github.com/veles/academia/internal/pkg/validation"
)

func studentPrincipal(studentID int64) auth.Principal {
	return auth.Principal{UserID: 2, Role: models.RoleStudent, StudentID: &studentID}
}

func ownEnrollment(id, studentID int64) *models.Enrollment {
	return &models.Enrollment{ID: id, CourseID: 1, StudentID: studentID, Status: models.StatusEnrolled}
}

func TestMyEnrollmentsRequiresLinkedStudent(t *testing.T) {
	svc := NewStudentPortalService(newFakeEnrollmentStore(), &fakeFileStorage{}, "github.com")

	_, err := svc.MyEnrollments(context.Background(), auth.Principal{Role: models.RoleStudent}, dto.EnrollmentFilter{})
	assert.ErrorIs(t, err, apperrors.ErrAccountNotLinked)
}

func TestUploadSeminarHappyPath(t *testing.T) {
	store := newFakeEnrollmentStore(ownEnrollment(10, 3))
	storage := &fakeFileStorage{}
	svc := NewStudentPortalService(store, storage, "github.com")

	file := &multipart.FileHeader{Filename: "seminar report.pdf", Size: 1 << 20}
	resp, err := svc.UploadSeminar(context.Background(), studentPrincipal(3), 10, file)
	require.NoError(t, err)

	require.NotNil(t, resp.SeminarURL)
	assert.Contains(t, *resp.SeminarURL, "uploads/seminars/")
	// original filename travels as an escaped query parameter
	assert.Contains(t, *resp.SeminarURL, "?name=seminar+report.pdf")
	assert.Equal(t, "seminar report.pdf", *resp.SeminarFileName)
	assert.True(t, store.seminarSet)
	assert.Len(t, storage.saved, 1)
}

func TestUploadSeminarReplacesPreviousFile(t *testing.T) {
	enrollment := ownEnrollment(10, 3)
	oldURL := "uploads/seminars/old-file.pdf?name=old.pdf"
	enrollment.SeminarURL = &oldURL
	storage := &fakeFileStorage{}
	svc := NewStudentPortalService(newFakeEnrollmentStore(enrollment), storage, "github.com")

	_, err := svc.UploadSeminar(context.Background(), studentPrincipal(3), 10, &multipart.FileHeader{Filename: "new.docx", Size: 100})
	require.NoError(t, err)

	// the old file is deleted only after the reference moved
	assert.Equal(t, []string{oldURL}, storage.deleted)
}

func TestUploadSeminarRejectsDisallowedExtension(t *testing.T) {
	store := newFakeEnrollmentStore(ownEnrollment(10, 3))
	storage := &fakeFileStorage{}
	svc := NewStudentPortalService(store, storage, "github.com")

	_, err := svc.UploadSeminar(context.Background(), studentPrincipal(3), 10, &multipart.FileHeader{Filename: "report.exe", Size: 100})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	// nothing written, nothing recorded
	assert.Empty(t, storage.saved)
	assert.False(t, store.seminarSet)
}

func TestUploadSeminarRejectsOversizedFile(t *testing.T) {
	store := newFakeEnrollmentStore(ownEnrollment(10, 3))
	storage := &fakeFileStorage{}
	svc := NewStudentPortalService(store, storage, "github.com")

	_, err := svc.UploadSeminar(context.Background(), studentPrincipal(3), 10, &multipart.FileHeader{
		Filename: "big.pdf", Size: validation.SeminarMaxBytes + 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, storage.saved)
}

func TestUploadSeminarStorageFailure(t *testing.T) {
	store := newFakeEnrollmentStore(ownEnrollment(10, 3))
	storage := &fakeFileStorage{failSave: true}
	svc := NewStudentPortalService(store, storage, "github.com")

	_, err := svc.UploadSeminar(context.Background(), studentPrincipal(3), 10, &multipart.FileHeader{Filename: "a.pdf", Size: 1})
	require.Error(t, err)
	assert.False(t, store.seminarSet)
}

func TestUploadSeminarRemovesFileWhenUpdateFails(t *testing.T) {
	store := newFakeEnrollmentStore(ownEnrollment(10, 3))
	store.failSeminarUpdate = true
	storage := &fakeFileStorage{}
	svc := NewStudentPortalService(store, storage, "github.com")

	_, err := svc.UploadSeminar(context.Background(), studentPrincipal(3), 10, &multipart.FileHeader{Filename: "a.pdf", Size: 1})
	require.Error(t, err)

	// the freshly written file does not outlive the failed record update
	require.Len(t, storage.saved, 1)
	assert.Equal(t, []string{storage.saved[0]}, storage.deleted)
	assert.False(t, store.seminarSet)
}

func TestUploadSeminarDeniedForOtherStudent(t *testing.T) {
	storage := &fakeFileStorage{}
	svc := NewStudentPortalService(newFakeEnrollmentStore(ownEnrollment(10, 3)), storage, "github.com")

	_, err := svc.UploadSeminar(context.Background(), studentPrincipal(4), 10, &multipart.FileHeader{Filename: "a.pdf", Size: 1})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Empty(t, storage.saved)
}

func TestSetProjectURL(t *testing.T) {
	tests := []struct {
		name    string
		rawURL  string
		wantErr bool
	}{
		{"github repository", "https://github.com/student/project", false},
		{"github subdomain", "https://gist.github.com/student/abc", false},
		{"other host", "https://gitlab.com/student/project", true},
		{"lookalike host", "https://notgithub.com/student/project", true},
		{"relative URL", "/student/project", true},
		{"bad scheme", "ftp://github.com/student/project", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeEnrollmentStore(ownEnrollment(10, 3))
			svc := NewStudentPortalService(store, &fakeFileStorage{}, "github.com")

			resp, err := svc.SetProjectURL(context.Background(), studentPrincipal(3), 10, dto.ProjectURLRequest{ProjectURL: tt.rawURL})
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
				assert.Nil(t, store.projectURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rawURL, *resp.ProjectURL)
			require.NotNil(t, store.projectURL)
			assert.Equal(t, tt.rawURL, *store.projectURL)
		})
	}
}

func TestSetProjectURLEmptyClears(t *testing.T) {
	enrollment := ownEnrollment(10, 3)
	existing := "https://github.com/student/project"
	enrollment.ProjectURL = &existing
	store := newFakeEnrollmentStore(enrollment)
	svc := NewStudentPortalService(store, &fakeFileStorage{}, "github.com")

	resp, err := svc.SetProjectURL(context.Background(), studentPrincipal(3), 10, dto.ProjectURLRequest{})
	require.NoError(t, err)

	assert.Nil(t, resp.ProjectURL)
	assert.Nil(t, store.enrollments[10].ProjectURL)
}

func TestClearProjectURL(t *testing.T) {
	enrollment := ownEnrollment(10, 3)
	existing := "https://github.com/student/project"
	enrollment.ProjectURL = &existing
	store := newFakeEnrollmentStore(enrollment)
	svc := NewStudentPortalService(store, &fakeFileStorage{}, "github.com")

	require.NoError(t, svc.ClearProjectURL(context.Background(), studentPrincipal(3), 10))
	assert.Nil(t, store.enrollments[10].ProjectURL)

	err := svc.ClearProjectURL(context.Background(), studentPrincipal(4), 10)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestDeleteSeminar(t *testing.T) {
	enrollment := ownEnrollment(10, 3)
	seminarURL := "uploads/seminars/stored.pdf?name=report.pdf"
	fileName := "report.pdf"
	enrollment.SeminarURL = &seminarURL
	enrollment.SeminarFileName = &fileName
	store := newFakeEnrollmentStore(enrollment)
	storage := &fakeFileStorage{}
	svc := NewStudentPortalService(store, storage, "github.com")

	require.NoError(t, svc.DeleteSeminar(context.Background(), studentPrincipal(3), 10))

	assert.True(t, store.seminarCleared)
	assert.Nil(t, store.enrollments[10].SeminarURL)
	assert.Equal(t, []string{seminarURL}, storage.deleted)
}

func TestDeleteSeminarWithoutFileIsNoOp(t *testing.T) {
	store := newFakeEnrollmentStore(ownEnrollment(10, 3))
	storage := &fakeFileStorage{}
	svc := NewStudentPortalService(store, storage, "github.com")

	require.NoError(t, svc.DeleteSeminar(context.Background(), studentPrincipal(3), 10))
	assert.False(t, store.seminarCleared)
	assert.Empty(t, storage.deleted)
}

func TestGetEnrollmentOwnershipChecked(t *testing.T) {
	svc := NewStudentPortalService(newFakeEnrollmentStore(ownEnrollment(10, 3)), &fakeFileStorage{}, "github.com")

	resp, err := svc.GetEnrollment(context.Background(), studentPrincipal(3), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)

	_, err = svc.GetEnrollment(context.Background(), studentPrincipal(4), 10)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestSetProjectURLNotFoundBeforeOwnership(t *testing.T) {
	svc := NewStudentPortalService(newFakeEnrollmentStore(), &fakeFileStorage{}, "github.com")

	_, err := svc.SetProjectURL(context.Background(), studentPrincipal(3), 99, dto.ProjectURLRequest{ProjectURL: "https://github.com/x/y"})
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}
