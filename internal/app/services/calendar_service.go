package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jromero/examcal/internal/app/models"
	"github.com/jromero/examcal/internal/app/models/dto"
	"github.com/jromero/examcal/internal/app/repositories"
	"github.com/jromero/examcal/internal/app/scheduling"
	"github.com/jromero/examcal/internal/db"
	"github.com/jromero/examcal/internal/pkg/apperrors"
	"github.com/jromero/examcal/internal/pkg/logger"
)

// CalendarService drives the submission workflow: draft exams are batched
// into a submission, which school services either validates or rejects. All
// persistence of a transition happens inside one database transaction.
type CalendarService struct {
	db             *db.PostgresDB
	examRepo       *repositories.ExamRepository
	submissionRepo *repositories.SubmissionRepository
	programRepo    *repositories.ProgramRepository
}

// NewCalendarService creates a new calendar service instance
func NewCalendarService(database *db.PostgresDB, repos *repositories.Repositories) *CalendarService {
	return &CalendarService{
		db:             database,
		examRepo:       repos.ExamRepository,
		submissionRepo: repos.SubmissionRepository,
		programRepo:    repos.ProgramRepository,
	}
}

// Submit moves every draft exam of a program into a new submission. Blocked
// with an IncompleteAssignmentError when any draft is missing its second
// examiner; nothing is persisted in that case.
func (s *CalendarService) Submit(ctx context.Context, programID int64) (*dto.SubmissionResponse, error) {
	if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrProgramNotFound, fmt.Sprintf("program %d not found", programID))
	}

	exams, err := s.examRepo.GetDraftByProgram(ctx, programID)
	if err != nil {
		return nil, err
	}
	if len(exams) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrNoDraftExams,
			fmt.Sprintf("program %d has no draft exams to submit", programID))
	}

	submission := &models.CalendarSubmission{ProgramID: programID}
	if err := scheduling.SubmitExams(submission, exams); err != nil {
		return nil, err
	}

	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.submissionRepo.CreateTx(ctx, tx, submission); err != nil {
			return err
		}
		return s.examRepo.UpdateStatusTx(ctx, tx, submission.ExamIDs, models.ExamSubmitted, &submission.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("programId", programID).
		Int64("submissionId", submission.ID).
		Int("exams", len(exams)).
		Msg("Calendar submitted")

	return &dto.SubmissionResponse{Submission: submission, Exams: exams}, nil
}

// Validate approves a submitted calendar. The decision is terminal.
func (s *CalendarService) Validate(ctx context.Context, submissionID int64) (*dto.SubmissionResponse, error) {
	submission, exams, err := s.loadSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if err := scheduling.ValidateSubmission(submission, exams); err != nil {
		return nil, err
	}

	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.submissionRepo.UpdateDecisionTx(ctx, tx, submission); err != nil {
			return err
		}
		return s.examRepo.UpdateStatusTx(ctx, tx, examIDs(exams), models.ExamValidated, &submission.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("submissionId", submissionID).Msg("Calendar validated")
	return &dto.SubmissionResponse{Submission: submission, Exams: exams}, nil
}

// Reject turns down a submitted calendar with a reason. Member exams return
// to draft so they can be amended and resubmitted; the submission row keeps
// the rejection for audit.
func (s *CalendarService) Reject(ctx context.Context, submissionID int64, reason string) (*dto.SubmissionResponse, error) {
	submission, exams, err := s.loadSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if err := scheduling.RejectSubmission(submission, exams, reason); err != nil {
		return nil, err
	}

	err = s.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.submissionRepo.UpdateDecisionTx(ctx, tx, submission); err != nil {
			return err
		}
		return s.examRepo.UpdateStatusTx(ctx, tx, examIDs(exams), models.ExamDraft, nil)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("submissionId", submissionID).Str("reason", reason).Msg("Calendar rejected")
	return &dto.SubmissionResponse{Submission: submission, Exams: exams}, nil
}

// GetSubmission retrieves a submission with its member exams.
func (s *CalendarService) GetSubmission(ctx context.Context, submissionID int64) (*dto.SubmissionResponse, error) {
	submission, exams, err := s.loadSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	return &dto.SubmissionResponse{Submission: submission, Exams: exams}, nil
}

// ListSubmissions retrieves submissions, optionally scoped to one program.
func (s *CalendarService) ListSubmissions(ctx context.Context, programID *int64) ([]*models.CalendarSubmission, error) {
	return s.submissionRepo.ListByProgram(ctx, programID)
}

func (s *CalendarService) loadSubmission(ctx context.Context, submissionID int64) (*models.CalendarSubmission, []*models.Exam, error) {
	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, nil, apperrors.NewCustomError(apperrors.ErrSubmissionNotFound,
			fmt.Sprintf("calendar submission %d not found", submissionID))
	}
	exams, err := s.examRepo.GetBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, nil, err
	}
	return submission, exams, nil
}

func examIDs(exams []*models.Exam) []int64 {
	ids := make([]int64, len(exams))
	for i, exam := range exams {
		ids[i] = exam.ID
	}
	return ids
}
