package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestEnrollmentTotalPoints(t *testing.T) {
	tests := []struct {
		name       string
		enrollment Enrollment
		expected   int
	}{
		{
			name:       "all nil counts as zero",
			enrollment: Enrollment{},
			expected:   0,
		},
		{
			name: "sums exam seminar and project",
			enrollment: Enrollment{
				ExamPoints:    intPtr(52),
				SeminarPoints: intPtr(18),
				ProjectPoints: intPtr(20),
			},
			expected: 90,
		},
		{
			name: "partial components",
			enrollment: Enrollment{
				ExamPoints: intPtr(40),
			},
			expected: 40,
		},
		{
			name: "additional points are not included",
			enrollment: Enrollment{
				ExamPoints:       intPtr(50),
				AdditionalPoints: intPtr(10),
			},
			expected: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.enrollment.TotalPoints())
		})
	}
}

func TestEnrollmentIsActive(t *testing.T) {
	now := time.Now()

	active := Enrollment{Status: StatusEnrolled}
	assert.True(t, active.IsActive())

	finished := Enrollment{Status: StatusEnrolled, FinishDate: &now}
	assert.False(t, finished.IsActive())

	dropped := Enrollment{Status: StatusDropped}
	assert.False(t, dropped.IsActive())
}

func TestNextStatus(t *testing.T) {
	finish := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		current    EnrollmentStatus
		finishDate *time.Time
		expected   EnrollmentStatus
	}{
		{"enrolled with finish date completes", StatusEnrolled, &finish, StatusCompleted},
		{"enrolled without finish date stays enrolled", StatusEnrolled, nil, StatusEnrolled},
		{"dropped never auto-completes", StatusDropped, &finish, StatusDropped},
		{"completed stays completed", StatusCompleted, &finish, StatusCompleted},
		{"completed without finish date stays completed", StatusCompleted, nil, StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextStatus(tt.current, tt.finishDate))
		})
	}
}

func TestCourseHasTeacher(t *testing.T) {
	first := int64(3)
	second := int64(7)

	course := Course{FirstTeacherID: &first, SecondTeacherID: &second}
	assert.True(t, course.HasTeacher(3))
	assert.True(t, course.HasTeacher(7))
	assert.False(t, course.HasTeacher(9))

	unassigned := Course{}
	assert.False(t, unassigned.HasTeacher(3))
	assert.Empty(t, unassigned.TeacherIDs())
}
