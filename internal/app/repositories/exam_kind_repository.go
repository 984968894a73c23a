package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jromero/examcal/internal/app/models"
)

// Exam kind error types
var (
	ErrExamKindNotFound = errors.New("exam kind not found")
)

// ExamKindRepository handles database operations for exam kinds
type ExamKindRepository struct {
	db *pgxpool.Pool
}

// NewExamKindRepository creates a new exam kind repository
func NewExamKindRepository(db *pgxpool.Pool) *ExamKindRepository {
	return &ExamKindRepository{db: db}
}

// GetByID retrieves an exam kind by ID
func (r *ExamKindRepository) GetByID(ctx context.Context, id int64) (*models.ExamKind, error) {
	query := `
		SELECT id, name, description
		FROM exam_kinds
		WHERE id = $1
	`

	var kind models.ExamKind
	err := r.db.QueryRow(ctx, query, id).Scan(&kind.ID, &kind.Name, &kind.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExamKindNotFound
		}
		return nil, fmt.Errorf("error retrieving exam kind: %w", err)
	}

	return &kind, nil
}

// GetAll retrieves all exam kinds
func (r *ExamKindRepository) GetAll(ctx context.Context) ([]*models.ExamKind, error) {
	query := `
		SELECT id, name, description
		FROM exam_kinds
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var kinds []*models.ExamKind
	for rows.Next() {
		var kind models.ExamKind
		if err := rows.Scan(&kind.ID, &kind.Name, &kind.Description); err != nil {
			return nil, err
		}
		kinds = append(kinds, &kind)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return kinds, nil
}

// Create inserts an exam kind if it does not already exist by name
func (r *ExamKindRepository) Create(ctx context.Context, kind *models.ExamKind) error {
	query := `
		INSERT INTO exam_kinds (name, description)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, kind.Name, kind.Description).Scan(&kind.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Already present; fetch the existing id.
			return r.db.QueryRow(ctx, `SELECT id FROM exam_kinds WHERE name = $1`, kind.Name).Scan(&kind.ID)
		}
		return err
	}
	return nil
}
