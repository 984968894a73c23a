package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jromero/examcal/internal/app/models"
)

// Professor error types
var (
	ErrProfessorNotFound = errors.New("professor not found")
)

// ProfessorRepository handles database operations for professors
type ProfessorRepository struct {
	db *pgxpool.Pool
}

// NewProfessorRepository creates a new professor repository
func NewProfessorRepository(db *pgxpool.Pool) *ProfessorRepository {
	return &ProfessorRepository{db: db}
}

// GetByID retrieves a professor by ID, including grouping memberships
func (r *ProfessorRepository) GetByID(ctx context.Context, id int64) (*models.Professor, error) {
	query := `
		SELECT id, name, email
		FROM professors
		WHERE id = $1
	`

	var professor models.Professor
	err := r.db.QueryRow(ctx, query, id).Scan(&professor.ID, &professor.Name, &professor.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfessorNotFound
		}
		return nil, fmt.Errorf("error retrieving professor: %w", err)
	}

	groupings, err := r.groupingIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	professor.GroupingIDs = groupings

	return &professor, nil
}

// GetAll retrieves all professors with their grouping memberships
func (r *ProfessorRepository) GetAll(ctx context.Context) ([]*models.Professor, error) {
	query := `
		SELECT id, name, email
		FROM professors
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var professors []*models.Professor
	byID := make(map[int64]*models.Professor)
	for rows.Next() {
		var professor models.Professor
		if err := rows.Scan(&professor.ID, &professor.Name, &professor.Email); err != nil {
			return nil, err
		}
		professors = append(professors, &professor)
		byID[professor.ID] = &professor
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach memberships in one pass instead of a query per professor.
	memberRows, err := r.db.Query(ctx, `SELECT professor_id, grouping_id FROM professor_groupings`)
	if err != nil {
		return nil, err
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var professorID, groupingID int64
		if err := memberRows.Scan(&professorID, &groupingID); err != nil {
			return nil, err
		}
		if professor, ok := byID[professorID]; ok {
			professor.GroupingIDs = append(professor.GroupingIDs, groupingID)
		}
	}
	if err := memberRows.Err(); err != nil {
		return nil, err
	}

	return professors, nil
}

func (r *ProfessorRepository) groupingIDs(ctx context.Context, professorID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT grouping_id FROM professor_groupings WHERE professor_id = $1`, professorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
