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

var studentColumns = []string{
	"id", "index_number", "first_name", "last_name", "enrollment_date",
	"acquired_credits", "current_semester", "education_level", "image_url",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.IndexNumber, &s.FirstName, &s.LastName, &s.EnrollmentDate,
		&s.AcquiredCredits, &s.CurrentSemester, &s.EducationLevel, &s.ImageURL)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student and fills in the generated ID
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("index_number", "first_name", "last_name", "enrollment_date",
			"acquired_credits", "current_semester", "education_level", "image_url").
		Values(student.IndexNumber, student.FirstName, student.LastName, student.EnrollmentDate,
			student.AcquiredCredits, student.CurrentSemester, student.EducationLevel, student.ImageURL).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_index_number_key") {
			logger.Warn().Str("indexNumber", student.IndexNumber).Msg("Attempted to create student with duplicate index number")
			return apperrors.ErrIndexNumberExists
		}
		logger.Error().Err(err).Str("indexNumber", student.IndexNumber).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Int64("studentID", student.ID).Str("indexNumber", student.IndexNumber).Msg("Student created")
	return nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// List retrieves students matching the filter, ordered by last then first
// name. Filter values match as case-insensitive substrings.
func (r *StudentRepository) List(ctx context.Context, filter dto.StudentFilter) ([]*models.Student, error) {
	query := r.sb.Select(studentColumns...).
		From("students").
		OrderBy("last_name", "first_name")

	if filter.IndexNumber != "" {
		query = query.Where(squirrel.ILike{"index_number": "%" + filter.IndexNumber + "%"})
	}
	if filter.FirstName != "" {
		query = query.Where(squirrel.ILike{"first_name": "%" + filter.FirstName + "%"})
	}
	if filter.LastName != "" {
		query = query.Where(squirrel.ILike{"last_name": "%" + filter.LastName + "%"})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// Update rewrites a student's editable fields
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("index_number", student.IndexNumber).
		Set("first_name", student.FirstName).
		Set("last_name", student.LastName).
		Set("enrollment_date", student.EnrollmentDate).
		Set("acquired_credits", student.AcquiredCredits).
		Set("current_semester", student.CurrentSemester).
		Set("education_level", student.EducationLevel).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_index_number_key") {
			return apperrors.ErrIndexNumberExists
		}
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// UpdateImageURL sets or clears the student's profile image reference
func (r *StudentRepository) UpdateImageURL(ctx context.Context, id int64, imageURL *string) error {
	sql, args, err := r.sb.Update("students").
		Set("image_url", imageURL).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student image query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating student image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student. Enrollments cascade at the database level.
// Deleting an absent student is not an error.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", id).Msg("Error executing delete student query")
		return fmt.Errorf("error deleting student: %w", err)
	}
	return nil
}
