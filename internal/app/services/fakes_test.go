package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"time"

	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/app/models/dto"
	"github.com/veles/academia/internal/pkg/apperrors"
)

// In-memory fakes for the store interfaces. They implement just enough
// behavior for the service semantics under test.

type fakeUserStore struct {
	users  map[string]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User), nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.Email]; ok {
		return apperrors.ErrEmailAlreadyExists
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := f.users[email]
	return ok, nil
}

type fakeStudentStore struct {
	students map[int64]*models.Student
}

func newFakeStudentStore(students ...*models.Student) *fakeStudentStore {
	f := &fakeStudentStore{students: make(map[int64]*models.Student)}
	for _, s := range students {
		f.students[s.ID] = s
	}
	return f
}

func (f *fakeStudentStore) Create(_ context.Context, student *models.Student) error {
	student.ID = int64(len(f.students) + 1)
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	if s, ok := f.students[id]; ok {
		return s, nil
	}
	return nil, apperrors.ErrStudentNotFound
}

func (f *fakeStudentStore) List(_ context.Context, _ dto.StudentFilter) ([]*models.Student, error) {
	var out []*models.Student
	for _, s := range f.students {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStudentStore) Update(_ context.Context, student *models.Student) error {
	if _, ok := f.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentStore) UpdateImageURL(_ context.Context, id int64, imageURL *string) error {
	s, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.ImageURL = imageURL
	return nil
}

func (f *fakeStudentStore) Delete(_ context.Context, id int64) error {
	delete(f.students, id)
	return nil
}

type fakeCourseStore struct {
	courses map[int64]*models.Course
}

func newFakeCourseStore(courses ...*models.Course) *fakeCourseStore {
	f := &fakeCourseStore{courses: make(map[int64]*models.Course)}
	for _, c := range courses {
		f.courses[c.ID] = c
	}
	return f
}

func (f *fakeCourseStore) Create(_ context.Context, course *models.Course) error {
	course.ID = int64(len(f.courses) + 1)
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	if c, ok := f.courses[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrCourseNotFound
}

func (f *fakeCourseStore) List(_ context.Context, _ dto.CourseFilter) ([]*models.Course, error) {
	var out []*models.Course
	for _, c := range f.courses {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCourseStore) ListByTeacher(_ context.Context, teacherID int64) ([]*models.Course, error) {
	var out []*models.Course
	for _, c := range f.courses {
		if c.HasTeacher(teacherID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCourseStore) Update(_ context.Context, course *models.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) Delete(_ context.Context, id int64) error {
	delete(f.courses, id)
	return nil
}

type enrollKey struct {
	studentID int64
	year      int
	semester  string
}

type fakeEnrollmentStore struct {
	enrollments       map[int64]*models.Enrollment
	graded            *models.Enrollment
	seminarSet        bool
	seminarCleared    bool
	failSeminarUpdate bool
	projectURL        *string
}

func newFakeEnrollmentStore(enrollments ...*models.Enrollment) *fakeEnrollmentStore {
	f := &fakeEnrollmentStore{enrollments: make(map[int64]*models.Enrollment)}
	for _, e := range enrollments {
		f.enrollments[e.ID] = e
	}
	return f
}

func (f *fakeEnrollmentStore) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	if e, ok := f.enrollments[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, apperrors.ErrEnrollmentNotFound
}

func (f *fakeEnrollmentStore) ListByCourse(_ context.Context, courseID int64, filter dto.EnrollmentFilter) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range f.enrollments {
		if e.CourseID != courseID {
			continue
		}
		if filter.Year != nil && e.Year != *filter.Year {
			continue
		}
		if filter.Semester != "" && e.Semester != filter.Semester {
			continue
		}
		if filter.Status != "" && string(e.Status) != filter.Status {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEnrollmentStore) ListByStudent(_ context.Context, studentID int64, _ dto.EnrollmentFilter) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range f.enrollments {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) YearsWithEnrollments(_ context.Context, courseID int64) ([]int, error) {
	seen := make(map[int]bool)
	var years []int
	for _, e := range f.enrollments {
		if e.CourseID == courseID && !seen[e.Year] {
			seen[e.Year] = true
			years = append(years, e.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

func (f *fakeEnrollmentStore) EnrollSelected(_ context.Context, courseID int64, year int, semester string, studentIDs []int64) (int, error) {
	taken := make(map[enrollKey]bool)
	for _, e := range f.enrollments {
		if e.CourseID == courseID {
			taken[enrollKey{e.StudentID, e.Year, e.Semester}] = true
		}
	}

	enrolled := 0
	for _, sid := range studentIDs {
		key := enrollKey{sid, year, semester}
		if taken[key] {
			continue
		}
		id := int64(len(f.enrollments) + 1)
		f.enrollments[id] = &models.Enrollment{
			ID: id, CourseID: courseID, StudentID: sid,
			Year: year, Semester: semester, Status: models.StatusEnrolled,
			IsRepeating: false, EnrolledOn: time.Now(),
		}
		taken[key] = true
		enrolled++
	}
	return enrolled, nil
}

func (f *fakeEnrollmentStore) DeactivateSelected(_ context.Context, courseID int64, enrollmentIDs []int64, finishDate time.Time) (int, error) {
	deactivated := 0
	for _, id := range enrollmentIDs {
		e, ok := f.enrollments[id]
		if !ok || e.CourseID != courseID || e.Status == models.StatusDropped {
			continue
		}
		e.Status = models.StatusDropped
		e.FinishDate = &finishDate
		deactivated++
	}
	return deactivated, nil
}

func (f *fakeEnrollmentStore) UpdateGrading(_ context.Context, e *models.Enrollment) error {
	if _, ok := f.enrollments[e.ID]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	copied := *e
	f.enrollments[e.ID] = &copied
	f.graded = &copied
	return nil
}

func (f *fakeEnrollmentStore) UpdateSeminar(_ context.Context, id int64, seminarURL, fileName string, uploadedAt time.Time) error {
	if f.failSeminarUpdate {
		return fmt.Errorf("database unavailable")
	}
	e, ok := f.enrollments[id]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	e.SeminarURL = &seminarURL
	e.SeminarFileName = &fileName
	e.SeminarUploadedAt = &uploadedAt
	f.seminarSet = true
	return nil
}

func (f *fakeEnrollmentStore) ClearSeminar(_ context.Context, id int64) error {
	e, ok := f.enrollments[id]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	e.SeminarURL = nil
	e.SeminarFileName = nil
	e.SeminarUploadedAt = nil
	f.seminarCleared = true
	return nil
}

func (f *fakeEnrollmentStore) UpdateProjectURL(_ context.Context, id int64, projectURL *string) error {
	e, ok := f.enrollments[id]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	e.ProjectURL = projectURL
	f.projectURL = projectURL
	return nil
}

type fakeFileStorage struct {
	saved    []string
	deleted  []string
	failSave bool
}

func (f *fakeFileStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if f.failSave {
		return "", fmt.Errorf("storage unavailable")
	}
	stored := fmt.Sprintf("uploads/%s/generated-%d", subPath, len(f.saved)+1)
	f.saved = append(f.saved, stored)
	return stored, nil
}

func (f *fakeFileStorage) DeleteFile(filePath string) error {
	f.deleted = append(f.deleted, filePath)
	return nil
}
