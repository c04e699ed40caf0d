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
	"github.com/veles/academia/internal/pkg/apperrors"
	"github.com/veles/academia/internal/pkg/dberrors"
	"github.com/veles/academia/internal/pkg/logger"
)

// courseJoinedColumns selects course fields plus both teacher slots via the
// aliased left joins in courseSelect.
var courseJoinedColumns = []string{
	"c.id", "c.title", "c.credits", "c.semester", "c.programme", "c.education_level",
	"c.first_teacher_id", "c.second_teacher_id",
	"t1.first_name", "t1.last_name", "t1.degree", "t1.academic_rank",
	"t1.office_number", "t1.hire_date", "t1.email", "t1.image_url",
	"t2.first_name", "t2.last_name", "t2.degree", "t2.academic_rank",
	"t2.office_number", "t2.hire_date", "t2.email", "t2.image_url",
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *CourseRepository) courseSelect() squirrel.SelectBuilder {
	return r.sb.Select(courseJoinedColumns...).
		From("courses c").
		LeftJoin("teachers t1 ON t1.id = c.first_teacher_id").
		LeftJoin("teachers t2 ON t2.id = c.second_teacher_id")
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	var (
		t1FirstName, t1LastName, t1Email    *string
		t1Degree, t1Rank, t1Office, t1Image *string
		t2FirstName, t2LastName, t2Email    *string
		t2Degree, t2Rank, t2Office, t2Image *string
		t1HireDate, t2HireDate              *time.Time
	)

	err := row.Scan(
		&c.ID, &c.Title, &c.Credits, &c.Semester, &c.Programme, &c.EducationLevel,
		&c.FirstTeacherID, &c.SecondTeacherID,
		&t1FirstName, &t1LastName, &t1Degree, &t1Rank, &t1Office, &t1HireDate, &t1Email, &t1Image,
		&t2FirstName, &t2LastName, &t2Degree, &t2Rank, &t2Office, &t2HireDate, &t2Email, &t2Image)
	if err != nil {
		return nil, err
	}

	if c.FirstTeacherID != nil && t1FirstName != nil {
		c.FirstTeacher = &models.Teacher{
			ID: *c.FirstTeacherID, FirstName: *t1FirstName, LastName: *t1LastName,
			Degree: t1Degree, AcademicRank: t1Rank, OfficeNumber: t1Office,
			HireDate: t1HireDate, Email: *t1Email, ImageURL: t1Image,
		}
	}
	if c.SecondTeacherID != nil && t2FirstName != nil {
		c.SecondTeacher = &models.Teacher{
			ID: *c.SecondTeacherID, FirstName: *t2FirstName, LastName: *t2LastName,
			Degree: t2Degree, AcademicRank: t2Rank, OfficeNumber: t2Office,
			HireDate: t2HireDate, Email: *t2Email, ImageURL: t2Image,
		}
	}
	return &c, nil
}

// Create inserts a new course and fills in the generated ID
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("title", "credits", "semester", "programme", "education_level",
			"first_teacher_id", "second_teacher_id").
		Values(course.Title, course.Credits, course.Semester, course.Programme,
			course.EducationLevel, course.FirstTeacherID, course.SecondTeacherID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&course.ID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrTeacherNotFound
		}
		logger.Error().Err(err).Str("title", course.Title).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}

	logger.Info().Int64("courseID", course.ID).Str("title", course.Title).Msg("Course created")
	return nil
}

// GetByID retrieves a course with both teacher slots resolved
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.courseSelect().
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

// List retrieves courses matching the filter, ordered by title. A teacherId
// filter matches the teacher in either slot.
func (r *CourseRepository) List(ctx context.Context, filter dto.CourseFilter) ([]*models.Course, error) {
	query := r.courseSelect().OrderBy("c.title")

	if filter.Title != "" {
		query = query.Where(squirrel.ILike{"c.title": "%" + filter.Title + "%"})
	}
	if filter.Programme != "" {
		query = query.Where(squirrel.ILike{"c.programme": "%" + filter.Programme + "%"})
	}
	if filter.Semester != nil {
		query = query.Where(squirrel.Eq{"c.semester": *filter.Semester})
	}
	if filter.TeacherID != nil {
		query = query.Where(squirrel.Or{
			squirrel.Eq{"c.first_teacher_id": *filter.TeacherID},
			squirrel.Eq{"c.second_teacher_id": *filter.TeacherID},
		})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// ListByTeacher retrieves the courses a teacher occupies in either slot
func (r *CourseRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]*models.Course, error) {
	return r.List(ctx, dto.CourseFilter{TeacherID: &teacherID})
}

// Update rewrites a course's editable fields
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		Set("title", course.Title).
		Set("credits", course.Credits).
		Set("semester", course.Semester).
		Set("programme", course.Programme).
		Set("education_level", course.EducationLevel).
		Set("first_teacher_id", course.FirstTeacherID).
		Set("second_teacher_id", course.SecondTeacherID).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrTeacherNotFound
		}
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// Delete removes a course. Enrollments cascade at the database level.
// Deleting an absent course is not an error.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	return nil
}
