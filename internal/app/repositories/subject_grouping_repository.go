package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jromero/examcal/internal/app/models"
)

// SubjectGroupingRepository handles database operations for subject groupings
type SubjectGroupingRepository struct {
	db *pgxpool.Pool
}

// NewSubjectGroupingRepository creates a new subject grouping repository
func NewSubjectGroupingRepository(db *pgxpool.Pool) *SubjectGroupingRepository {
	return &SubjectGroupingRepository{db: db}
}

// GetAll retrieves all subject groupings with their program associations
func (r *SubjectGroupingRepository) GetAll(ctx context.Context) ([]*models.SubjectGrouping, error) {
	query := `
		SELECT id, name, code, description
		FROM subject_groupings
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groupings []*models.SubjectGrouping
	byID := make(map[int64]*models.SubjectGrouping)
	for rows.Next() {
		var grouping models.SubjectGrouping
		if err := rows.Scan(&grouping.ID, &grouping.Name, &grouping.Code, &grouping.Description); err != nil {
			return nil, err
		}
		groupings = append(groupings, &grouping)
		byID[grouping.ID] = &grouping
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	programRows, err := r.db.Query(ctx, `SELECT grouping_id, program_id FROM grouping_programs`)
	if err != nil {
		return nil, err
	}
	defer programRows.Close()

	for programRows.Next() {
		var groupingID, programID int64
		if err := programRows.Scan(&groupingID, &programID); err != nil {
			return nil, err
		}
		if grouping, ok := byID[groupingID]; ok {
			grouping.ProgramIDs = append(grouping.ProgramIDs, programID)
		}
	}
	if err := programRows.Err(); err != nil {
		return nil, err
	}

	return groupings, nil
}
