package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jromero/examcal/internal/app/models"
)

// Exam error types
var (
	ErrExamNotFound = errors.New("exam not found")
)

// ExamFilter narrows exam listings.
type ExamFilter struct {
	ProgramID *int64
	CohortID  *int64
	Status    *models.ExamStatus
	FromDate  *time.Time
	ToDate    *time.Time
}

const examColumns = `
	e.id, e.course_id, e.cohort_id, e.room_id, e.exam_kind_id, e.date,
	e.start_time, e.end_time, e.expected_students, e.titular_professor_id,
	e.sinodal_professor_id, e.status, e.submission_id`

// ExamRepository handles database operations for exam records
type ExamRepository struct {
	db *pgxpool.Pool
}

// NewExamRepository creates a new exam repository
func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{db: db}
}

func scanExam(row pgx.Row) (*models.Exam, error) {
	var exam models.Exam
	err := row.Scan(
		&exam.ID,
		&exam.CourseID,
		&exam.CohortID,
		&exam.RoomID,
		&exam.ExamKindID,
		&exam.Date,
		&exam.StartTime,
		&exam.EndTime,
		&exam.ExpectedStudents,
		&exam.TitularProfessorID,
		&exam.SinodalProfessorID,
		&exam.Status,
		&exam.SubmissionID,
	)
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

// Create inserts a new exam record
func (r *ExamRepository) Create(ctx context.Context, exam *models.Exam) error {
	query := `
		INSERT INTO exams (
			course_id, cohort_id, room_id, exam_kind_id, date, start_time,
			end_time, expected_students, titular_professor_id,
			sinodal_professor_id, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		exam.CourseID, exam.CohortID, exam.RoomID, exam.ExamKindID, exam.Date,
		exam.StartTime, exam.EndTime, exam.ExpectedStudents,
		exam.TitularProfessorID, exam.SinodalProfessorID, exam.Status,
	).Scan(&exam.ID)
	if err != nil {
		return fmt.Errorf("error creating exam: %w", err)
	}

	return nil
}

// GetByID retrieves an exam by ID
func (r *ExamRepository) GetByID(ctx context.Context, id int64) (*models.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams e WHERE e.id = $1`

	exam, err := scanExam(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("error retrieving exam: %w", err)
	}

	return exam, nil
}

// List retrieves exams matching the filter, most recent date first
func (r *ExamRepository) List(ctx context.Context, filter ExamFilter, offset uint64, limit int) ([]*models.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams e JOIN courses c ON c.id = e.course_id`
	where, args := buildExamFilter(filter)
	query += where
	query += fmt.Sprintf(` ORDER BY e.date DESC, e.start_time, e.id LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExams(rows)
}

// Count returns the number of exams matching the filter
func (r *ExamRepository) Count(ctx context.Context, filter ExamFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM exams e JOIN courses c ON c.id = e.course_id`
	where, args := buildExamFilter(filter)
	query += where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting exams: %w", err)
	}
	return count, nil
}

// GetAllActive retrieves every exam record. Used to prime the conflict index
// at startup: any persisted record still occupies its room and examiners.
func (r *ExamRepository) GetAllActive(ctx context.Context) ([]*models.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams e ORDER BY e.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExams(rows)
}

// GetDraftByProgram retrieves the draft exams of a program, ordered by id so
// submission batches are reproducible.
func (r *ExamRepository) GetDraftByProgram(ctx context.Context, programID int64) ([]*models.Exam, error) {
	query := `SELECT ` + examColumns + `
		FROM exams e
		JOIN courses c ON c.id = e.course_id
		WHERE c.program_id = $1 AND e.status = $2
		ORDER BY e.id`

	rows, err := r.db.Query(ctx, query, programID, models.ExamDraft)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExams(rows)
}

// GetBySubmissionID retrieves the member exams of a calendar submission
func (r *ExamRepository) GetBySubmissionID(ctx context.Context, submissionID int64) ([]*models.Exam, error) {
	query := `SELECT ` + examColumns + ` FROM exams e WHERE e.submission_id = $1 ORDER BY e.id`

	rows, err := r.db.Query(ctx, query, submissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExams(rows)
}

// UpdateSinodal sets or clears the sinodal of an exam
func (r *ExamRepository) UpdateSinodal(ctx context.Context, examID int64, sinodalID *int64) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE exams SET sinodal_professor_id = $1 WHERE id = $2`, sinodalID, examID)
	if err != nil {
		return fmt.Errorf("error updating exam sinodal: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrExamNotFound
	}
	return nil
}

// UpdateStatusTx updates status and submission membership of a set of exams
// within a transaction.
func (r *ExamRepository) UpdateStatusTx(ctx context.Context, tx pgx.Tx, examIDs []int64, status models.ExamStatus, submissionID *int64) error {
	if len(examIDs) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx,
		`UPDATE exams SET status = $1, submission_id = $2 WHERE id = ANY($3)`,
		status, submissionID, examIDs)
	if err != nil {
		return fmt.Errorf("error updating exam statuses: %w", err)
	}
	return nil
}

func buildExamFilter(filter ExamFilter) (string, []interface{}) {
	where := ""
	var args []interface{}
	add := func(clause string, value interface{}) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		args = append(args, value)
		where += fmt.Sprintf(clause, len(args))
	}

	if filter.ProgramID != nil {
		add("c.program_id = $%d", *filter.ProgramID)
	}
	if filter.CohortID != nil {
		add("e.cohort_id = $%d", *filter.CohortID)
	}
	if filter.Status != nil {
		add("e.status = $%d", *filter.Status)
	}
	if filter.FromDate != nil {
		add("e.date >= $%d", *filter.FromDate)
	}
	if filter.ToDate != nil {
		add("e.date <= $%d", *filter.ToDate)
	}
	return where, args
}

func collectExams(rows pgx.Rows) ([]*models.Exam, error) {
	var exams []*models.Exam
	for rows.Next() {
		exam, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		exams = append(exams, exam)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exams, nil
}
