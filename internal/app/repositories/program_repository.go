package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jromero/examcal/internal/app/models"
)

// Program error types
var (
	ErrProgramNotFound = errors.New("program not found")
	ErrCohortNotFound  = errors.New("cohort not found")
)

// ProgramRepository handles database operations for programs and cohorts
type ProgramRepository struct {
	db *pgxpool.Pool
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// GetAll retrieves all programs
func (r *ProgramRepository) GetAll(ctx context.Context) ([]*models.Program, error) {
	query := `
		SELECT id, name, code, description
		FROM programs
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		var program models.Program
		if err := rows.Scan(&program.ID, &program.Name, &program.Code, &program.Description); err != nil {
			return nil, err
		}
		programs = append(programs, &program)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return programs, nil
}

// GetByID retrieves a program by ID
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	query := `
		SELECT id, name, code, description
		FROM programs
		WHERE id = $1
	`

	var program models.Program
	err := r.db.QueryRow(ctx, query, id).Scan(&program.ID, &program.Name, &program.Code, &program.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}

	return &program, nil
}

// GetCohortByID retrieves a cohort by ID
func (r *ProgramRepository) GetCohortByID(ctx context.Context, id int64) (*models.Cohort, error) {
	query := `
		SELECT id, program_id, name
		FROM cohorts
		WHERE id = $1
	`

	var cohort models.Cohort
	err := r.db.QueryRow(ctx, query, id).Scan(&cohort.ID, &cohort.ProgramID, &cohort.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCohortNotFound
		}
		return nil, fmt.Errorf("error retrieving cohort: %w", err)
	}

	return &cohort, nil
}

// GetCohortsByProgramID retrieves all cohorts of a program
func (r *ProgramRepository) GetCohortsByProgramID(ctx context.Context, programID int64) ([]*models.Cohort, error) {
	query := `
		SELECT id, program_id, name
		FROM cohorts
		WHERE program_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cohorts []*models.Cohort
	for rows.Next() {
		var cohort models.Cohort
		if err := rows.Scan(&cohort.ID, &cohort.ProgramID, &cohort.Name); err != nil {
			return nil, err
		}
		cohorts = append(cohorts, &cohort)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cohorts, nil
}
