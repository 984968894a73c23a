package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jromero/examcal/internal/app/models"
)

// Course error types
var (
	ErrCourseNotFound = errors.New("course not found")
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, program_id, name, titular_professor_id
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(&course.ID, &course.ProgramID, &course.Name, &course.TitularProfessorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetAll retrieves all courses
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	return r.list(ctx, `
		SELECT id, program_id, name, titular_professor_id
		FROM courses
		ORDER BY id
	`)
}

// GetByProgramID retrieves all courses of a program
func (r *CourseRepository) GetByProgramID(ctx context.Context, programID int64) ([]*models.Course, error) {
	return r.list(ctx, `
		SELECT id, program_id, name, titular_professor_id
		FROM courses
		WHERE program_id = $1
		ORDER BY id
	`, programID)
}

func (r *CourseRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.ProgramID, &course.Name, &course.TitularProfessorID); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}
