package dto

import "github.com/jromero/examcal/internal/app/models"

// SubmitCalendarRequest submits every draft exam of a program for approval.
type SubmitCalendarRequest struct {
	ProgramID int64 `json:"programId" binding:"required,min=1"`
}

// RejectCalendarRequest rejects a submitted calendar with a reason.
type RejectCalendarRequest struct {
	Reason string `json:"reason" binding:"required,min=3"`
}

// SubmissionResponse is a calendar submission with its member exams.
type SubmissionResponse struct {
	Submission *models.CalendarSubmission `json:"submission"`
	Exams      []*models.Exam             `json:"exams,omitempty"`
}
