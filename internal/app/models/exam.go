package models

import "time"

// Exam represents one scheduled exam instance. Records are created by the
// allocation engine with status DRAFT and are never deleted afterwards:
// rejection is a status change, preserving audit history.
type Exam struct {
	ID                 int64      `json:"id" db:"id"`
	CourseID           int64      `json:"courseId" db:"course_id"`
	CohortID           int64      `json:"cohortId" db:"cohort_id"`
	RoomID             int64      `json:"roomId" db:"room_id"`
	ExamKindID         int64      `json:"examKindId" db:"exam_kind_id"`
	Date               time.Time  `json:"date" db:"date"`
	StartTime          string     `json:"startTime" db:"start_time"` // HH:MM
	EndTime            string     `json:"endTime" db:"end_time"`     // HH:MM
	ExpectedStudents   int        `json:"expectedStudents" db:"expected_students"`
	TitularProfessorID int64      `json:"titularProfessorId" db:"titular_professor_id"`
	SinodalProfessorID *int64     `json:"sinodalProfessorId,omitempty" db:"sinodal_professor_id"` // Nullable
	Status             ExamStatus `json:"status" db:"status"`
	SubmissionID       *int64     `json:"submissionId,omitempty" db:"submission_id"` // Nullable

	// Relations (populated when needed)
	Course           *Course    `json:"course,omitempty"`
	Room             *Room      `json:"room,omitempty"`
	ExamKind         *ExamKind  `json:"examKind,omitempty"`
	TitularProfessor *Professor `json:"titularProfessor,omitempty"`
	SinodalProfessor *Professor `json:"sinodalProfessor,omitempty"`
}

// HasSinodal reports whether a second examiner has been assigned.
func (e *Exam) HasSinodal() bool {
	return e.SinodalProfessorID != nil && *e.SinodalProfessorID > 0
}

// CalendarSubmission represents a batch of exams submitted together by a
// program for institutional approval.
type CalendarSubmission struct {
	ID              int64            `json:"id" db:"id"`
	ProgramID       int64            `json:"programId" db:"program_id"`
	Status          SubmissionStatus `json:"status" db:"status"`
	RejectionReason *string          `json:"rejectionReason,omitempty" db:"rejection_reason"` // Nullable
	SubmittedAt     time.Time        `json:"submittedAt" db:"submitted_at"`
	DecidedAt       *time.Time       `json:"decidedAt,omitempty" db:"decided_at"` // Nullable

	ExamIDs []int64 `json:"examIds,omitempty"`
}
