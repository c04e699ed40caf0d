package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veles/academia/internal/app/models"
	"github.com/veles/academia/internal/app/models/dto"
	"github.com/veles/academia/internal/pkg/apperrors"
	"github.com/veles/academia/internal/pkg/dberrors"
	"github.com/veles/academia/internal/pkg/logger"
)

var teacherColumns = []string{
	"id", "first_name", "last_name", "degree", "academic_rank",
	"office_number", "hire_date", "email", "image_url",
}

// TeacherRepository handles teacher database operations
type TeacherRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	var t models.Teacher
	err := row.Scan(
		&t.ID, &t.FirstName, &t.LastName, &t.Degree, &t.AcademicRank,
		&t.OfficeNumber, &t.HireDate, &t.Email, &t.ImageURL)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new teacher and fills in the generated ID
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	sql, args, err := r.sb.Insert("teachers").
		Columns("first_name", "last_name", "degree", "academic_rank",
			"office_number", "hire_date", "email", "image_url").
		Values(teacher.FirstName, teacher.LastName, teacher.Degree, teacher.AcademicRank,
			teacher.OfficeNumber, teacher.HireDate, teacher.Email, teacher.ImageURL).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create teacher query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&teacher.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "teachers_email_key") {
			logger.Warn().Str("email", teacher.Email).Msg("Attempted to create teacher with duplicate email")
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", teacher.Email).Msg("Error executing create teacher query")
		return fmt.Errorf("error creating teacher: %w", err)
	}

	logger.Info().Int64("teacherID", teacher.ID).Msg("Teacher created")
	return nil
}

// GetByID retrieves a teacher by ID
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	sql, args, err := r.sb.Select(teacherColumns...).
		From("teachers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get teacher query: %w", err)
	}

	teacher, err := scanTeacher(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		logger.Error().Err(err).Int64("teacherID", id).Msg("Error scanning teacher row")
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return teacher, nil
}

// List retrieves teachers matching the filter, ordered by last then first
// name. Filter values match as case-insensitive substrings.
func (r *TeacherRepository) List(ctx context.Context, filter dto.TeacherFilter) ([]*models.Teacher, error) {
	query := r.sb.Select(teacherColumns...).
		From("teachers").
		OrderBy("last_name", "first_name")

	if filter.FirstName != "" {
		query = query.Where(squirrel.ILike{"first_name": "%" + filter.FirstName + "%"})
	}
	if filter.LastName != "" {
		query = query.Where(squirrel.ILike{"last_name": "%" + filter.LastName + "%"})
	}
	if filter.Degree != "" {
		query = query.Where(squirrel.ILike{"degree": "%" + filter.Degree + "%"})
	}
	if filter.AcademicRank != "" {
		query = query.Where(squirrel.ILike{"academic_rank": "%" + filter.AcademicRank + "%"})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list teachers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list teachers query")
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning teacher row: %w", err)
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

// Update rewrites a teacher's editable fields
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	sql, args, err := r.sb.Update("teachers").
		Set("first_name", teacher.FirstName).
		Set("last_name", teacher.LastName).
		Set("degree", teacher.Degree).
		Set("academic_rank", teacher.AcademicRank).
		Set("office_number", teacher.OfficeNumber).
		Set("hire_date", teacher.HireDate).
		Set("email", teacher.Email).
		Where(squirrel.Eq{"id": teacher.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update teacher query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "teachers_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Int64("teacherID", teacher.ID).Msg("Error executing update teacher query")
		return fmt.Errorf("error updating teacher: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}

// UpdateImageURL sets or clears the teacher's profile image reference
func (r *TeacherRepository) UpdateImageURL(ctx context.Context, id int64, imageURL *string) error {
	sql, args, err := r.sb.Update("teachers").
		Set("image_url", imageURL).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update teacher image query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating teacher image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}

// Delete removes a teacher. The courses foreign keys are RESTRICT, so a
// teacher still assigned to a course cannot be deleted. Deleting an absent
// teacher is not an error.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("teachers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete teacher query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			logger.Warn().Int64("teacherID", id).Msg("Attempted to delete teacher still assigned to courses")
			return apperrors.ErrTeacherHasCourses
		}
		logger.Error().Err(err).Int64("teacherID", id).Msg("Error executing delete teacher query")
		return fmt.Errorf("error deleting teacher: %w", err)
	}
	return nil
}
