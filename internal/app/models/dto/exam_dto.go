package dto

import (
	"github.com/jromero/examcal/internal/app/models"
	"github.com/jromero/examcal/internal/app/scheduling"
)

// CourseRequestItem is one course slot request inside a generation batch.
type CourseRequestItem struct {
	CourseID         int64  `json:"courseId" binding:"required,min=1"`
	ExamKindID       int64  `json:"examKindId" binding:"required,min=1"`
	Modality         string `json:"modality" binding:"required,oneof=WRITTEN DIGITAL"`
	Date             string `json:"date" binding:"required"`      // YYYY-MM-DD
	StartTime        string `json:"startTime" binding:"required"` // HH:MM
	EndTime          string `json:"endTime" binding:"required"`   // HH:MM
	ExpectedStudents int    `json:"expectedStudents" binding:"required,min=1"`
	RoomID           *int64 `json:"roomId,omitempty"` // explicit room, optional
}

// GenerateExamsRequest asks the engine to allocate a batch of exams.
type GenerateExamsRequest struct {
	ProgramID int64               `json:"programId" binding:"required,min=1"`
	CohortID  int64               `json:"cohortId" binding:"required,min=1"`
	Requests  []CourseRequestItem `json:"requests" binding:"required,min=1,dive"`
}

// GenerateFromTimetableRequest derives the course batch from the cohort's
// weekly class schedule instead of an explicit request list.
type GenerateFromTimetableRequest struct {
	ProgramID        int64  `json:"programId" binding:"required,min=1"`
	CohortID         int64  `json:"cohortId" binding:"required,min=1"`
	ExamKindID       int64  `json:"examKindId" binding:"required,min=1"`
	Modality         string `json:"modality" binding:"required,oneof=WRITTEN DIGITAL"`
	ExpectedStudents int    `json:"expectedStudents" binding:"required,min=1"`
	// StartDate anchors the exam week; generation uses the next Monday on or
	// after this date (today when omitted).
	StartDate *string `json:"startDate,omitempty"`
}

// GenerationResultResponse reports committed records and deferred courses.
type GenerationResultResponse struct {
	Committed []*models.Exam        `json:"committed"`
	Deferred  []scheduling.Deferral `json:"deferred"`
}

// CreateExamRequest creates a single exam record manually. It goes through
// the same engine validation as batch generation.
type CreateExamRequest struct {
	CohortID         int64  `json:"cohortId" binding:"required,min=1"`
	CourseID         int64  `json:"courseId" binding:"required,min=1"`
	ExamKindID       int64  `json:"examKindId" binding:"required,min=1"`
	Modality         string `json:"modality" binding:"required,oneof=WRITTEN DIGITAL"`
	Date             string `json:"date" binding:"required"`
	StartTime        string `json:"startTime" binding:"required"`
	EndTime          string `json:"endTime" binding:"required"`
	ExpectedStudents int    `json:"expectedStudents" binding:"required,min=1"`
	RoomID           *int64 `json:"roomId,omitempty"`
}

// AssignSinodalRequest assigns a second examiner to an exam.
type AssignSinodalRequest struct {
	ProfessorID int64 `json:"professorId" binding:"required,min=1"`
}

// ExamListResponse wraps a filtered exam listing.
type ExamListResponse struct {
	Exams []*models.Exam `json:"exams"`
	PaginationInfo
}
