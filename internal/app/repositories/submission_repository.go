package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jromero/examcal/internal/app/models"
)

// Submission error types
var (
	ErrSubmissionNotFound = errors.New("calendar submission not found")
)

// SubmissionRepository handles database operations for calendar submissions
type SubmissionRepository struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// CreateTx inserts a calendar submission within a transaction
func (r *SubmissionRepository) CreateTx(ctx context.Context, tx pgx.Tx, submission *models.CalendarSubmission) error {
	query := `
		INSERT INTO calendar_submissions (program_id, status, submitted_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query, submission.ProgramID, submission.Status, submission.SubmittedAt).Scan(&submission.ID)
	if err != nil {
		return fmt.Errorf("error creating calendar submission: %w", err)
	}

	return nil
}

// UpdateDecisionTx records the decision on a submission within a transaction
func (r *SubmissionRepository) UpdateDecisionTx(ctx context.Context, tx pgx.Tx, submission *models.CalendarSubmission) error {
	query := `
		UPDATE calendar_submissions
		SET status = $1, rejection_reason = $2, decided_at = $3
		WHERE id = $4
	`

	cmdTag, err := tx.Exec(ctx, query, submission.Status, submission.RejectionReason, submission.DecidedAt, submission.ID)
	if err != nil {
		return fmt.Errorf("error updating calendar submission: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrSubmissionNotFound
	}

	return nil
}

// GetByID retrieves a calendar submission with its member exam ids
func (r *SubmissionRepository) GetByID(ctx context.Context, id int64) (*models.CalendarSubmission, error) {
	query := `
		SELECT id, program_id, status, rejection_reason, submitted_at, decided_at
		FROM calendar_submissions
		WHERE id = $1
	`

	var submission models.CalendarSubmission
	err := r.db.QueryRow(ctx, query, id).Scan(
		&submission.ID,
		&submission.ProgramID,
		&submission.Status,
		&submission.RejectionReason,
		&submission.SubmittedAt,
		&submission.DecidedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("error retrieving calendar submission: %w", err)
	}

	if err := r.attachExamIDs(ctx, &submission); err != nil {
		return nil, err
	}

	return &submission, nil
}

// ListByProgram retrieves the submissions of a program, newest first. A nil
// programID lists submissions across all programs.
func (r *SubmissionRepository) ListByProgram(ctx context.Context, programID *int64) ([]*models.CalendarSubmission, error) {
	query := `
		SELECT id, program_id, status, rejection_reason, submitted_at, decided_at
		FROM calendar_submissions
	`
	var args []interface{}
	if programID != nil {
		query += ` WHERE program_id = $1`
		args = append(args, *programID)
	}
	query += ` ORDER BY submitted_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []*models.CalendarSubmission
	for rows.Next() {
		var submission models.CalendarSubmission
		if err := rows.Scan(
			&submission.ID,
			&submission.ProgramID,
			&submission.Status,
			&submission.RejectionReason,
			&submission.SubmittedAt,
			&submission.DecidedAt,
		); err != nil {
			return nil, err
		}
		submissions = append(submissions, &submission)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, submission := range submissions {
		if err := r.attachExamIDs(ctx, submission); err != nil {
			return nil, err
		}
	}

	return submissions, nil
}

func (r *SubmissionRepository) attachExamIDs(ctx context.Context, submission *models.CalendarSubmission) error {
	rows, err := r.db.Query(ctx, `SELECT id FROM exams WHERE submission_id = $1 ORDER BY id`, submission.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var examID int64
		if err := rows.Scan(&examID); err != nil {
			return err
		}
		submission.ExamIDs = append(submission.ExamIDs, examID)
	}

	return rows.Err()
}
