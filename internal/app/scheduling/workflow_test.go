package scheduling

import (
	"errors"
	"testing"

	"github.com/jromero/examcal/internal/app/models"
)

func completeExam(id, courseID int64) *models.Exam {
	sinodal := int64(102)
	return &models.Exam{
		ID:                 id,
		CourseID:           courseID,
		Date:               examDay,
		StartTime:          "10:00",
		EndTime:            "11:00",
		TitularProfessorID: 100,
		SinodalProfessorID: &sinodal,
		Status:             models.ExamDraft,
	}
}

func TestCanTransitionMatrix(t *testing.T) {
	cases := []struct {
		from, to models.SubmissionStatus
		want     bool
	}{
		{models.SubmissionSubmitted, models.SubmissionValidated, true},
		{models.SubmissionSubmitted, models.SubmissionRejected, true},
		{models.SubmissionValidated, models.SubmissionRejected, false},
		{models.SubmissionValidated, models.SubmissionSubmitted, false},
		{models.SubmissionRejected, models.SubmissionValidated, false},
		{models.SubmissionRejected, models.SubmissionSubmitted, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestSubmitExamsSuccess(t *testing.T) {
	sub := &models.CalendarSubmission{ProgramID: 1}
	exams := []*models.Exam{completeExam(1, 10), completeExam(2, 11)}

	if err := SubmitExams(sub, exams); err != nil {
		t.Fatalf("SubmitExams should succeed: %v", err)
	}
	if sub.Status != models.SubmissionSubmitted {
		t.Errorf("submission should be SUBMITTED, got %s", sub.Status)
	}
	if sub.SubmittedAt.IsZero() {
		t.Error("SubmittedAt should be stamped")
	}
	if len(sub.ExamIDs) != 2 {
		t.Fatalf("submission should record 2 exam ids, got %d", len(sub.ExamIDs))
	}
	for _, exam := range exams {
		if exam.Status != models.ExamSubmitted {
			t.Errorf("exam %d should be SUBMITTED, got %s", exam.ID, exam.Status)
		}
	}
}

func TestSubmitExamsBlockedByMissingSinodal(t *testing.T) {
	sub := &models.CalendarSubmission{ProgramID: 1}
	incomplete := completeExam(2, 11)
	incomplete.SinodalProfessorID = nil
	exams := []*models.Exam{completeExam(1, 10), incomplete}

	err := SubmitExams(sub, exams)
	var blocked *IncompleteAssignmentError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected *IncompleteAssignmentError, got: %v", err)
	}
	if len(blocked.MissingSinodal) != 1 || blocked.MissingSinodal[0] != 11 {
		t.Errorf("error should name course 11, got %v", blocked.MissingSinodal)
	}
	// Nothing changes on a blocked submission.
	if exams[0].Status != models.ExamDraft {
		t.Errorf("complete exam must stay DRAFT, got %s", exams[0].Status)
	}
	if sub.Status != "" {
		t.Errorf("submission must stay untouched, got %s", sub.Status)
	}
}

func TestSubmitExamsBlockedByNonDraft(t *testing.T) {
	sub := &models.CalendarSubmission{ProgramID: 1}
	validated := completeExam(1, 10)
	validated.Status = models.ExamValidated

	err := SubmitExams(sub, []*models.Exam{validated})
	var blocked *IncompleteAssignmentError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected *IncompleteAssignmentError, got: %v", err)
	}
	if len(blocked.NotDraft) != 1 || blocked.NotDraft[0] != 10 {
		t.Errorf("error should name course 10, got %v", blocked.NotDraft)
	}
}

func TestValidateSubmission(t *testing.T) {
	sub := &models.CalendarSubmission{ProgramID: 1}
	exams := []*models.Exam{completeExam(1, 10)}
	if err := SubmitExams(sub, exams); err != nil {
		t.Fatalf("SubmitExams: %v", err)
	}

	if err := ValidateSubmission(sub, exams); err != nil {
		t.Fatalf("ValidateSubmission should succeed: %v", err)
	}
	if sub.Status != models.SubmissionValidated {
		t.Errorf("submission should be VALIDATED, got %s", sub.Status)
	}
	if sub.DecidedAt == nil {
		t.Error("DecidedAt should be stamped")
	}
	if exams[0].Status != models.ExamValidated {
		t.Errorf("member exam should be VALIDATED, got %s", exams[0].Status)
	}

	// VALIDATED is terminal.
	err := RejectSubmission(sub, exams, "too late")
	var transition *TransitionError
	if !errors.As(err, &transition) {
		t.Fatalf("expected *TransitionError, got: %v", err)
	}
	if transition.From != models.SubmissionValidated || transition.To != models.SubmissionRejected {
		t.Errorf("transition error should carry VALIDATED -> REJECTED, got %s -> %s", transition.From, transition.To)
	}
}

func TestRejectSubmissionReturnsExamsToDraft(t *testing.T) {
	sub := &models.CalendarSubmission{ID: 5, ProgramID: 1}
	exams := []*models.Exam{completeExam(1, 10), completeExam(2, 11)}
	if err := SubmitExams(sub, exams); err != nil {
		t.Fatalf("SubmitExams: %v", err)
	}
	for _, exam := range exams {
		exam.SubmissionID = &sub.ID
	}

	if err := RejectSubmission(sub, exams, "room changes pending"); err != nil {
		t.Fatalf("RejectSubmission should succeed: %v", err)
	}
	if sub.Status != models.SubmissionRejected {
		t.Errorf("submission should be REJECTED, got %s", sub.Status)
	}
	if sub.RejectionReason == nil || *sub.RejectionReason != "room changes pending" {
		t.Errorf("rejection reason should be kept, got %v", sub.RejectionReason)
	}
	for _, exam := range exams {
		if exam.Status != models.ExamDraft {
			t.Errorf("exam %d should return to DRAFT, got %s", exam.ID, exam.Status)
		}
		if exam.SubmissionID != nil {
			t.Errorf("exam %d should be detached from the submission", exam.ID)
		}
	}

	// A rejected submission cannot be decided again; the exams are resubmitted
	// as a fresh batch instead.
	if err := ValidateSubmission(sub, exams); err == nil {
		t.Error("validating a rejected submission should fail")
	}
}

func TestValidateUnsubmittedFails(t *testing.T) {
	sub := &models.CalendarSubmission{ProgramID: 1}
	if err := ValidateSubmission(sub, nil); err == nil {
		t.Error("validating an unsubmitted calendar should fail")
	}
}
