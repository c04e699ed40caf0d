package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veles/academia/internal/app/auth"
	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/pkg/apperrors"

	"github.com/veles/academia/internal/app/models/dto"
)

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func teacherPrincipal(teacherID int64) auth.Principal {
	return auth.Principal{UserID: 1, Role: models.RoleTeacher, TeacherID: &teacherID}
}

func ownedCourse(courseID, teacherID int64) *models.Course {
	return &models.Course{ID: courseID, Title: "Distributed Systems", Credits: 6, Semester: 5, FirstTeacherID: &teacherID}
}

func TestMyCoursesRequiresLinkedTeacher(t *testing.T) {
	svc := NewGradebookService(newFakeCourseStore(), newFakeEnrollmentStore())

	_, err := svc.MyCourses(context.Background(), auth.Principal{Role: models.RoleTeacher})
	assert.ErrorIs(t, err, apperrors.ErrAccountNotLinked)
}

func TestMyCoursesListsBothSlots(t *testing.T) {
	first := ownedCourse(1, 7)
	second := &models.Course{ID: 2, Title: "Databases", Credits: 6, Semester: 3, SecondTeacherID: int64Ptr(7)}
	other := ownedCourse(3, 9)
	svc := NewGradebookService(newFakeCourseStore(first, second, other), newFakeEnrollmentStore())

	courses, err := svc.MyCourses(context.Background(), teacherPrincipal(7))
	require.NoError(t, err)
	assert.Len(t, courses, 2)
}

func TestRosterNotFoundBeforeOwnership(t *testing.T) {
	svc := NewGradebookService(newFakeCourseStore(), newFakeEnrollmentStore())

	// A missing course must be reported as not found even to a non-owner,
	// not masked as permission denied
	_, err := svc.Roster(context.Background(), teacherPrincipal(7), 42, dto.EnrollmentFilter{})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestRosterDeniedForUnrelatedTeacher(t *testing.T) {
	svc := NewGradebookService(newFakeCourseStore(ownedCourse(1, 7)), newFakeEnrollmentStore())

	_, err := svc.Roster(context.Background(), teacherPrincipal(9), 1, dto.EnrollmentFilter{})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestRosterDefaultsToMostRecentYear(t *testing.T) {
	course := ownedCourse(1, 7)
	older := &models.Enrollment{ID: 1, CourseID: 1, StudentID: 3, Year: 2024, Semester: models.SemesterWinter, Status: models.StatusCompleted}
	newer := &models.Enrollment{ID: 2, CourseID: 1, StudentID: 4, Year: 2026, Semester: models.SemesterWinter, Status: models.StatusEnrolled}
	svc := NewGradebookService(newFakeCourseStore(course), newFakeEnrollmentStore(older, newer))

	resp, err := svc.Roster(context.Background(), teacherPrincipal(7), 1, dto.EnrollmentFilter{})
	require.NoError(t, err)

	assert.Equal(t, 2026, resp.Year)
	assert.Equal(t, []int{2026, 2024}, resp.Years)
}

func TestUpdateGradingCompletesOnFinishDate(t *testing.T) {
	course := ownedCourse(1, 7)
	enrollment := &models.Enrollment{
		ID: 10, CourseID: 1, StudentID: 3,
		Status: models.StatusEnrolled, Course: course,
		ExamPoints: intPtr(40),
	}
	store := newFakeEnrollmentStore(enrollment)
	svc := NewGradebookService(newFakeCourseStore(course), store)

	resp, err := svc.UpdateGrading(context.Background(), teacherPrincipal(7), 10, dto.GradingUpdateRequest{
		Grade:      intPtr(9),
		FinishDate: strPtr("2026-06-15"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(models.StatusCompleted), resp.Status)
	assert.Equal(t, "2026-06-15", *resp.FinishDate)
	assert.Equal(t, 9, *resp.Grade)
	// untouched fields keep their stored values
	assert.Equal(t, 40, *resp.ExamPoints)
	require.NotNil(t, store.graded)
	assert.Equal(t, models.StatusCompleted, store.graded.Status)
}

func TestUpdateGradingWithoutFinishDateStaysEnrolled(t *testing.T) {
	course := ownedCourse(1, 7)
	enrollment := &models.Enrollment{ID: 10, CourseID: 1, StudentID: 3, Status: models.StatusEnrolled, Course: course}
	svc := NewGradebookService(newFakeCourseStore(course), newFakeEnrollmentStore(enrollment))

	resp, err := svc.UpdateGrading(context.Background(), teacherPrincipal(7), 10, dto.GradingUpdateRequest{
		ExamPoints: intPtr(55),
	})
	require.NoError(t, err)

	assert.Equal(t, string(models.StatusEnrolled), resp.Status)
	assert.True(t, resp.IsActive)
	assert.Equal(t, 55, resp.Points)
}

func TestUpdateGradingNeverRevivesDropped(t *testing.T) {
	course := ownedCourse(1, 7)
	enrollment := &models.Enrollment{ID: 10, CourseID: 1, StudentID: 3, Status: models.StatusDropped, Course: course}
	svc := NewGradebookService(newFakeCourseStore(course), newFakeEnrollmentStore(enrollment))

	resp, err := svc.UpdateGrading(context.Background(), teacherPrincipal(7), 10, dto.GradingUpdateRequest{
		FinishDate: strPtr("2026-06-15"),
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusDropped), resp.Status)
}

func TestUpdateGradingDeniedForUnrelatedTeacher(t *testing.T) {
	course := ownedCourse(1, 7)
	enrollment := &models.Enrollment{ID: 10, CourseID: 1, StudentID: 3, Status: models.StatusEnrolled, Course: course}
	store := newFakeEnrollmentStore(enrollment)
	svc := NewGradebookService(newFakeCourseStore(course), store)

	_, err := svc.UpdateGrading(context.Background(), teacherPrincipal(9), 10, dto.GradingUpdateRequest{Grade: intPtr(10)})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Nil(t, store.graded)
}

func TestUpdateGradingRejectsBadFinishDate(t *testing.T) {
	course := ownedCourse(1, 7)
	enrollment := &models.Enrollment{ID: 10, CourseID: 1, StudentID: 3, Status: models.StatusEnrolled, Course: course}
	svc := NewGradebookService(newFakeCourseStore(course), newFakeEnrollmentStore(enrollment))

	_, err := svc.UpdateGrading(context.Background(), teacherPrincipal(7), 10, dto.GradingUpdateRequest{
		FinishDate: strPtr("15.06.2026"),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
