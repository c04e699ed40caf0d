package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/app/models/dto"
	"github.com/veles/academia/internal/db"
	"github.com/veles/academia/internal/pkg/apperrors"
	"github.com/veles/academia/internal/pkg/logger"
)

var enrollmentColumns = []string{
	"e.id", "e.course_id", "e.student_id", "e.semester", "e.year", "e.status",
	"e.is_repeating", "e.enrolled_on", "e.finish_date",
	"e.grade", "e.exam_points", "e.seminar_points", "e.project_points", "e.additional_points",
	"e.seminar_url", "e.seminar_file_name", "e.seminar_uploaded_at", "e.project_url",
}

// enrollSelectedSQL inserts one row per requested student, skipping students
// already enrolled for the same offering via the unique index. New
// enrollments always start non-repeating.
const enrollSelectedSQL = `
INSERT INTO enrollments (course_id, student_id, semester, year, status, is_repeating, enrolled_on)
SELECT $1, s.id, $2, $3, 'ENROLLED', FALSE, CURRENT_DATE
FROM students s
WHERE s.id = ANY($4)
ON CONFLICT (course_id, student_id, year, semester) DO NOTHING`

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanEnrollmentFields(row pgx.Row, extra ...any) (*models.Enrollment, error) {
	var e models.Enrollment
	fields := []any{
		&e.ID, &e.CourseID, &e.StudentID, &e.Semester, &e.Year, &e.Status,
		&e.IsRepeating, &e.EnrolledOn, &e.FinishDate,
		&e.Grade, &e.ExamPoints, &e.SeminarPoints, &e.ProjectPoints, &e.AdditionalPoints,
		&e.SeminarURL, &e.SeminarFileName, &e.SeminarUploadedAt, &e.ProjectURL,
	}
	fields = append(fields, extra...)
	if err := row.Scan(fields...); err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByID retrieves an enrollment with its course and student resolved. The
// course carries both teacher slot IDs so callers can check ownership.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	columns := append([]string{}, enrollmentColumns...)
	columns = append(columns,
		"c.title", "c.credits", "c.semester", "c.programme", "c.education_level",
		"c.first_teacher_id", "c.second_teacher_id",
		"s.index_number", "s.first_name", "s.last_name", "s.image_url")

	sql, args, err := r.sb.Select(columns...).
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		Join("students s ON s.id = e.student_id").
		Where(squirrel.Eq{"e.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	var course models.Course
	var student models.Student
	enrollment, err := scanEnrollmentFields(r.db.QueryRow(ctx, sql, args...),
		&course.Title, &course.Credits, &course.Semester, &course.Programme, &course.EducationLevel,
		&course.FirstTeacherID, &course.SecondTeacherID,
		&student.IndexNumber, &student.FirstName, &student.LastName, &student.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		logger.Error().Err(err).Int64("enrollmentID", id).Msg("Error scanning enrollment row")
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	course.ID = enrollment.CourseID
	student.ID = enrollment.StudentID
	enrollment.Course = &course
	enrollment.Student = &student
	return enrollment, nil
}

// ListByCourse retrieves a course's roster with student records resolved,
// ordered by student last then first name
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID int64, filter dto.EnrollmentFilter) ([]*models.Enrollment, error) {
	columns := append([]string{}, enrollmentColumns...)
	columns = append(columns, "s.index_number", "s.first_name", "s.last_name", "s.image_url")

	query := r.sb.Select(columns...).
		From("enrollments e").
		Join("students s ON s.id = e.student_id").
		Where(squirrel.Eq{"e.course_id": courseID}).
		OrderBy("s.last_name", "s.first_name")
	query = applyEnrollmentFilter(query, filter)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list roster query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing list roster query")
		return nil, fmt.Errorf("error listing course roster: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var student models.Student
		e, err := scanEnrollmentFields(rows,
			&student.IndexNumber, &student.FirstName, &student.LastName, &student.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("error scanning roster row: %w", err)
		}
		student.ID = e.StudentID
		e.Student = &student
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// ListByStudent retrieves a student's enrollments with course records
// resolved, newest offering first
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64, filter dto.EnrollmentFilter) ([]*models.Enrollment, error) {
	columns := append([]string{}, enrollmentColumns...)
	columns = append(columns,
		"c.title", "c.credits", "c.semester", "c.programme", "c.education_level",
		"c.first_teacher_id", "c.second_teacher_id")

	query := r.sb.Select(columns...).
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("e.year DESC", "c.title")
	query = applyEnrollmentFilter(query, filter)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list student enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list student enrollments query")
		return nil, fmt.Errorf("error listing student enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var course models.Course
		e, err := scanEnrollmentFields(rows,
			&course.Title, &course.Credits, &course.Semester, &course.Programme,
			&course.EducationLevel, &course.FirstTeacherID, &course.SecondTeacherID)
		if err != nil {
			return nil, fmt.Errorf("error scanning student enrollment row: %w", err)
		}
		course.ID = e.CourseID
		e.Course = &course
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// YearsWithEnrollments lists the distinct years a course has enrollments for,
// newest first
func (r *EnrollmentRepository) YearsWithEnrollments(ctx context.Context, courseID int64) ([]int, error) {
	sql, args, err := r.sb.Select("DISTINCT year").
		From("enrollments").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("year DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollment years query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error executing enrollment years query")
		return nil, fmt.Errorf("error listing enrollment years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("error scanning enrollment year: %w", err)
		}
		years = append(years, year)
	}
	return years, rows.Err()
}

func applyEnrollmentFilter(query squirrel.SelectBuilder, filter dto.EnrollmentFilter) squirrel.SelectBuilder {
	if filter.Year != nil {
		query = query.Where(squirrel.Eq{"e.year": *filter.Year})
	}
	if filter.Semester != "" {
		query = query.Where(squirrel.Eq{"e.semester": filter.Semester})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"e.status": filter.Status})
	}
	return query
}

// EnrollSelected enrolls the given students into a course offering in one
// transaction. Students already enrolled for the same course, year and
// semester are skipped. Returns the number of rows actually inserted.
func (r *EnrollmentRepository) EnrollSelected(ctx context.Context, courseID int64, year int, semester string, studentIDs []int64) (int, error) {
	var enrolled int
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		result, err := tx.Exec(ctx, enrollSelectedSQL, courseID, semester, year, studentIDs)
		if err != nil {
			return fmt.Errorf("error enrolling students: %w", err)
		}
		enrolled = int(result.RowsAffected())
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Batch enrollment failed")
		return 0, err
	}

	logger.Info().Int64("courseID", courseID).Int("year", year).Str("semester", semester).
		Int("requested", len(studentIDs)).Int("enrolled", enrolled).Msg("Students enrolled")
	return enrolled, nil
}

// DeactivateSelected drops the given enrollments of a course in one
// transaction, recording the finish date. Already dropped enrollments are
// left untouched. Returns the number of rows updated.
func (r *EnrollmentRepository) DeactivateSelected(ctx context.Context, courseID int64, enrollmentIDs []int64, finishDate time.Time) (int, error) {
	sql, args, err := r.sb.Update("enrollments").
		Set("status", models.StatusDropped).
		Set("finish_date", finishDate).
		Where(squirrel.Eq{"course_id": courseID, "id": enrollmentIDs}).
		Where(squirrel.NotEq{"status": models.StatusDropped}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build deactivate enrollments query: %w", err)
	}

	var deactivated int
	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		result, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error deactivating enrollments: %w", err)
		}
		deactivated = int(result.RowsAffected())
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Batch deactivation failed")
		return 0, err
	}

	logger.Info().Int64("courseID", courseID).Int("deactivated", deactivated).Msg("Enrollments deactivated")
	return deactivated, nil
}

// UpdateGrading rewrites the grading fields and lifecycle state of an
// enrollment
func (r *EnrollmentRepository) UpdateGrading(ctx context.Context, e *models.Enrollment) error {
	sql, args, err := r.sb.Update("enrollments").
		Set("status", e.Status).
		Set("finish_date", e.FinishDate).
		Set("grade", e.Grade).
		Set("exam_points", e.ExamPoints).
		Set("seminar_points", e.SeminarPoints).
		Set("project_points", e.ProjectPoints).
		Set("additional_points", e.AdditionalPoints).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update grading query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("enrollmentID", e.ID).Msg("Error executing update grading query")
		return fmt.Errorf("error updating grading: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// UpdateSeminar records a freshly stored seminar file on an enrollment
func (r *EnrollmentRepository) UpdateSeminar(ctx context.Context, id int64, seminarURL, fileName string, uploadedAt time.Time) error {
	sql, args, err := r.sb.Update("enrollments").
		Set("seminar_url", seminarURL).
		Set("seminar_file_name", fileName).
		Set("seminar_uploaded_at", uploadedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update seminar query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("enrollmentID", id).Msg("Error executing update seminar query")
		return fmt.Errorf("error updating seminar: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// ClearSeminar removes the seminar file reference from an enrollment
func (r *EnrollmentRepository) ClearSeminar(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("enrollments").
		Set("seminar_url", nil).
		Set("seminar_file_name", nil).
		Set("seminar_uploaded_at", nil).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear seminar query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("enrollmentID", id).Msg("Error executing clear seminar query")
		return fmt.Errorf("error clearing seminar: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// UpdateProjectURL sets or clears the project link on an enrollment
func (r *EnrollmentRepository) UpdateProjectURL(ctx context.Context, id int64, projectURL *string) error {
	sql, args, err := r.sb.Update("enrollments").
		Set("project_url", projectURL).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update project URL query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("enrollmentID", id).Msg("Error executing update project URL query")
		return fmt.Errorf("error updating project URL: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}
