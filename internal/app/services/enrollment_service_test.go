package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/app/models/dto"
	"github.com/veles/academia/internal/pkg/apperrors"
	"github.com/veles/academia/internal/pkg/helpers"
)

func TestManageViewDefaultsAndPickList(t *testing.T) {
	course := &models.Course{ID: 1, Title: "Algorithms", Credits: 6, Semester: 1}
	thisYear := time.Now().Year()
	current := &models.Enrollment{ID: 1, CourseID: 1, StudentID: 3, Year: thisYear, Semester: models.SemesterWinter, Status: models.StatusEnrolled}
	past := &models.Enrollment{ID: 2, CourseID: 1, StudentID: 4, Year: thisYear - 1, Semester: models.SemesterWinter, Status: models.StatusCompleted}
	students := newFakeStudentStore(
		&models.Student{ID: 3, IndexNumber: "1001", FirstName: "Ana", LastName: "Petrova"},
		&models.Student{ID: 4, IndexNumber: "1002", FirstName: "Marko", LastName: "Stojanov"},
	)
	svc := NewEnrollmentService(newFakeCourseStore(course), newFakeEnrollmentStore(current, past), students)

	view, err := svc.ManageView(context.Background(), 1, dto.EnrollmentFilter{})
	require.NoError(t, err)

	// defaults to the current year's Winter offering
	assert.Equal(t, thisYear, view.Year)
	assert.Equal(t, models.SemesterWinter, view.Semester)
	assert.Len(t, view.Enrollments, 1)
	// every student is offered for selection regardless of enrollment
	assert.Len(t, view.Students, 2)
}

func TestEnrollSelectedSkipsAlreadyEnrolled(t *testing.T) {
	course := &models.Course{ID: 1, Title: "Algorithms", Credits: 6, Semester: 1}
	existing := &models.Enrollment{
		ID: 1, CourseID: 1, StudentID: 3,
		Year: 2026, Semester: models.SemesterWinter, Status: models.StatusEnrolled,
	}
	store := newFakeEnrollmentStore(existing)
	svc := NewEnrollmentService(newFakeCourseStore(course), store, newFakeStudentStore())

	resp, err := svc.EnrollSelected(context.Background(), 1, dto.EnrollSelectedRequest{
		Year:       2026,
		Semester:   models.SemesterWinter,
		StudentIDs: []int64{3, 4, 5},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Enrolled)
	assert.Equal(t, 1, resp.Skipped)
}

func TestEnrollSelectedSameCourseDifferentOffering(t *testing.T) {
	course := &models.Course{ID: 1, Title: "Algorithms", Credits: 6, Semester: 1}
	previous := &models.Enrollment{
		ID: 1, CourseID: 1, StudentID: 3,
		Year: 2025, Semester: models.SemesterWinter, Status: models.StatusDropped,
	}
	store := newFakeEnrollmentStore(previous)
	svc := NewEnrollmentService(newFakeCourseStore(course), store, newFakeStudentStore())

	// A new offering of the same course is a fresh enrollment, not a skip
	resp, err := svc.EnrollSelected(context.Background(), 1, dto.EnrollSelectedRequest{
		Year:       2026,
		Semester:   models.SemesterWinter,
		StudentIDs: []int64{3},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Enrolled)
	assert.Zero(t, resp.Skipped)

	// even a re-take starts non-repeating
	for _, e := range store.enrollments {
		if e.Year == 2026 {
			assert.False(t, e.IsRepeating)
		}
	}
}

func TestEnrollSelectedUnknownCourse(t *testing.T) {
	svc := NewEnrollmentService(newFakeCourseStore(), newFakeEnrollmentStore(), newFakeStudentStore())

	_, err := svc.EnrollSelected(context.Background(), 42, dto.EnrollSelectedRequest{
		Year: 2026, Semester: models.SemesterWinter, StudentIDs: []int64{1},
	})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestDeactivateSelectedDefaultsToToday(t *testing.T) {
	course := &models.Course{ID: 1, Title: "Algorithms", Credits: 6, Semester: 1}
	enrollment := &models.Enrollment{
		ID: 1, CourseID: 1, StudentID: 3,
		Year: 2026, Semester: models.SemesterWinter, Status: models.StatusEnrolled,
	}
	store := newFakeEnrollmentStore(enrollment)
	svc := NewEnrollmentService(newFakeCourseStore(course), store, newFakeStudentStore())

	resp, err := svc.DeactivateSelected(context.Background(), 1, dto.DeactivateSelectedRequest{
		EnrollmentIDs: []int64{1},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Deactivated)
	assert.Equal(t, models.StatusDropped, enrollment.Status)
	require.NotNil(t, enrollment.FinishDate)

	// the default is the local calendar date at midnight
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	assert.Equal(t, today, *enrollment.FinishDate)
}

func TestDeactivateSelectedExplicitDateAndIdempotency(t *testing.T) {
	course := &models.Course{ID: 1, Title: "Algorithms", Credits: 6, Semester: 1}
	active := &models.Enrollment{ID: 1, CourseID: 1, StudentID: 3, Year: 2026, Semester: models.SemesterWinter, Status: models.StatusEnrolled}
	dropped := &models.Enrollment{ID: 2, CourseID: 1, StudentID: 4, Year: 2026, Semester: models.SemesterWinter, Status: models.StatusDropped}
	store := newFakeEnrollmentStore(active, dropped)
	svc := NewEnrollmentService(newFakeCourseStore(course), store, newFakeStudentStore())

	resp, err := svc.DeactivateSelected(context.Background(), 1, dto.DeactivateSelectedRequest{
		EnrollmentIDs: []int64{1, 2},
		FinishDate:    strPtr("2026-02-01"),
	})
	require.NoError(t, err)

	// the already dropped enrollment is not counted again
	assert.Equal(t, 1, resp.Deactivated)
	assert.Equal(t, "2026-02-01", active.FinishDate.Format(helpers.DateLayout))
}

func TestDeactivateSelectedRejectsBadDate(t *testing.T) {
	course := &models.Course{ID: 1, Title: "Algorithms", Credits: 6, Semester: 1}
	svc := NewEnrollmentService(newFakeCourseStore(course), newFakeEnrollmentStore(), newFakeStudentStore())

	_, err := svc.DeactivateSelected(context.Background(), 1, dto.DeactivateSelectedRequest{
		EnrollmentIDs: []int64{1},
		FinishDate:    strPtr("01/02/2026"),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
