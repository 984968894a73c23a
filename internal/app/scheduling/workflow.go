package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/jromero/examcal/internal/app/models"
)

// TransitionError reports an illegal calendar workflow transition.
type TransitionError struct {
	From models.SubmissionStatus
	To   models.SubmissionStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal calendar transition %s -> %s", e.From, e.To)
}

// IncompleteAssignmentError blocks submission and names exactly which records
// are at fault.
type IncompleteAssignmentError struct {
	// MissingSinodal lists course ids of exams without a second examiner.
	MissingSinodal []int64
	// NotDraft lists course ids of exams that are not editable.
	NotDraft []int64
}

func (e *IncompleteAssignmentError) Error() string {
	var parts []string
	if len(e.MissingSinodal) > 0 {
		parts = append(parts, fmt.Sprintf("courses missing sinodal: %v", e.MissingSinodal))
	}
	if len(e.NotDraft) > 0 {
		parts = append(parts, fmt.Sprintf("courses not in draft: %v", e.NotDraft))
	}
	return "calendar cannot be submitted: " + strings.Join(parts, "; ")
}

// CanTransition reports whether a submission may move between two states.
// VALIDATED is terminal; REJECTED is recoverable through resubmission.
func CanTransition(from, to models.SubmissionStatus) bool {
	switch from {
	case models.SubmissionSubmitted:
		return to == models.SubmissionValidated || to == models.SubmissionRejected
	default:
		return false
	}
}

// SubmitExams moves a draft batch into a submission. Every member record must
// be DRAFT and must have both examiners assigned; otherwise the submission is
// blocked with an IncompleteAssignmentError and nothing changes.
func SubmitExams(sub *models.CalendarSubmission, exams []*models.Exam) error {
	incomplete := &IncompleteAssignmentError{}
	for _, exam := range exams {
		if exam.Status != models.ExamDraft {
			incomplete.NotDraft = append(incomplete.NotDraft, exam.CourseID)
			continue
		}
		if !exam.HasSinodal() {
			incomplete.MissingSinodal = append(incomplete.MissingSinodal, exam.CourseID)
		}
	}
	if len(incomplete.MissingSinodal) > 0 || len(incomplete.NotDraft) > 0 {
		return incomplete
	}

	now := time.Now()
	sub.Status = models.SubmissionSubmitted
	sub.SubmittedAt = now
	sub.ExamIDs = sub.ExamIDs[:0]
	for _, exam := range exams {
		exam.Status = models.ExamSubmitted
		sub.ExamIDs = append(sub.ExamIDs, exam.ID)
	}
	return nil
}

// ValidateSubmission approves a submitted calendar. The transition is
// irreversible except through an administrative override outside this core.
func ValidateSubmission(sub *models.CalendarSubmission, exams []*models.Exam) error {
	if !CanTransition(sub.Status, models.SubmissionValidated) {
		return &TransitionError{From: sub.Status, To: models.SubmissionValidated}
	}
	now := time.Now()
	sub.Status = models.SubmissionValidated
	sub.DecidedAt = &now
	for _, exam := range exams {
		exam.Status = models.ExamValidated
	}
	return nil
}

// RejectSubmission rejects a submitted calendar, storing the reason. Member
// records return to DRAFT so they can be amended and resubmitted; the
// submission row keeps the rejection for audit.
func RejectSubmission(sub *models.CalendarSubmission, exams []*models.Exam, reason string) error {
	if !CanTransition(sub.Status, models.SubmissionRejected) {
		return &TransitionError{From: sub.Status, To: models.SubmissionRejected}
	}
	now := time.Now()
	sub.Status = models.SubmissionRejected
	sub.RejectionReason = &reason
	sub.DecidedAt = &now
	for _, exam := range exams {
		exam.Status = models.ExamDraft
		exam.SubmissionID = nil
	}
	return nil
}
