package scheduling

import (
	"errors"
	"testing"

	"github.com/jromero/examcal/internal/app/models"
)

func draftExam() *models.Exam {
	return &models.Exam{
		ID:                 1,
		CourseID:           10,
		CohortID:           1,
		RoomID:             1,
		ExamKindID:         1,
		Date:               examDay,
		StartTime:          "10:00",
		EndTime:            "11:00",
		TitularProfessorID: 100,
		Status:             models.ExamDraft,
	}
}

func TestAssignSinodalSuccess(t *testing.T) {
	index := NewConflictIndex()
	validator := NewValidator(testCatalog(), index)
	exam := draftExam()

	if err := validator.AssignSinodal(exam, 102); err != nil {
		t.Fatalf("AssignSinodal should succeed: %v", err)
	}
	if exam.SinodalProfessorID == nil || *exam.SinodalProfessorID != 102 {
		t.Fatalf("exam should carry sinodal 102, got %v", exam.SinodalProfessorID)
	}
	if index.IsFree(ResourceProfessor, 102, examDay, Interval{Start: 600, End: 660}) {
		t.Error("the sinodal's slot should be reserved")
	}
}

func TestAssignSinodalRejectsTitular(t *testing.T) {
	validator := NewValidator(testCatalog(), NewConflictIndex())

	err := validator.AssignSinodal(draftExam(), 100)
	if !errors.Is(err, ErrSelfAssignment) {
		t.Errorf("expected ErrSelfAssignment, got: %v", err)
	}
}

func TestAssignSinodalRejectsIneligibleGrouping(t *testing.T) {
	// Professor 200 belongs to a grouping of another program only.
	rooms := []models.Room{{ID: 1, Type: models.RoomStandard, Capacity: 30}}
	courses := []models.Course{{ID: 10, ProgramID: 1, Name: "Algebra", TitularProfessorID: 100}}
	professors := []models.Professor{
		{ID: 100, GroupingIDs: []int64{1}},
		{ID: 200, GroupingIDs: []int64{9}},
	}
	groupings := []models.SubjectGrouping{
		{ID: 1, ProgramIDs: []int64{1}},
		{ID: 9, ProgramIDs: []int64{2}},
	}
	validator := NewValidator(NewCatalog(rooms, courses, professors, groupings), NewConflictIndex())

	err := validator.AssignSinodal(draftExam(), 200)
	if !errors.Is(err, ErrIneligibleProfessor) {
		t.Errorf("expected ErrIneligibleProfessor, got: %v", err)
	}
}

func TestAssignSinodalPermissiveWithoutGroupings(t *testing.T) {
	// A program with no groupings accepts any non-titular professor.
	rooms := []models.Room{{ID: 1, Type: models.RoomStandard, Capacity: 30}}
	courses := []models.Course{{ID: 10, ProgramID: 1, Name: "Algebra", TitularProfessorID: 100}}
	professors := []models.Professor{
		{ID: 100},
		{ID: 200},
	}
	validator := NewValidator(NewCatalog(rooms, courses, professors, nil), NewConflictIndex())

	exam := draftExam()
	if err := validator.AssignSinodal(exam, 200); err != nil {
		t.Errorf("grouping-free program should accept any professor: %v", err)
	}
}

func TestAssignSinodalRejectsBusyCandidate(t *testing.T) {
	index := NewConflictIndex()
	// Professor 102 already proctors 10:30-11:30 that day.
	if err := index.Reserve(ResourceProfessor, 102, examDay, Interval{Start: 630, End: 690}); err != nil {
		t.Fatalf("seed reservation: %v", err)
	}
	validator := NewValidator(testCatalog(), index)

	exam := draftExam()
	err := validator.AssignSinodal(exam, 102)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *ConflictError, got: %v", err)
	}
	if exam.SinodalProfessorID != nil {
		t.Error("failed assignment must not mutate the exam")
	}
}

func TestAssignSinodalRejectsDoubleAssignment(t *testing.T) {
	validator := NewValidator(testCatalog(), NewConflictIndex())

	exam := draftExam()
	already := int64(101)
	exam.SinodalProfessorID = &already

	err := validator.AssignSinodal(exam, 102)
	if !errors.Is(err, ErrSinodalAlreadySet) {
		t.Errorf("expected ErrSinodalAlreadySet, got: %v", err)
	}
}

func TestAssignSinodalUnknownProfessor(t *testing.T) {
	validator := NewValidator(testCatalog(), NewConflictIndex())

	err := validator.AssignSinodal(draftExam(), 999)
	if !errors.Is(err, ErrProfessorNotFound) {
		t.Errorf("expected ErrProfessorNotFound, got: %v", err)
	}
}

func TestUnassignSinodalReleasesSlot(t *testing.T) {
	index := NewConflictIndex()
	validator := NewValidator(testCatalog(), index)
	exam := draftExam()

	if err := validator.AssignSinodal(exam, 102); err != nil {
		t.Fatalf("AssignSinodal: %v", err)
	}
	if err := validator.UnassignSinodal(exam); err != nil {
		t.Fatalf("UnassignSinodal: %v", err)
	}
	if exam.SinodalProfessorID != nil {
		t.Error("sinodal should be cleared")
	}
	if !index.IsFree(ResourceProfessor, 102, examDay, Interval{Start: 600, End: 660}) {
		t.Error("the released slot should be free for other exams")
	}
}

func TestUnassignSinodalSlotCanBeReclaimed(t *testing.T) {
	index := NewConflictIndex()
	validator := NewValidator(testCatalog(), index)
	exam := draftExam()
	slot := Interval{Start: 600, End: 660}

	if err := validator.AssignSinodal(exam, 102); err != nil {
		t.Fatalf("AssignSinodal: %v", err)
	}
	if err := validator.UnassignSinodal(exam); err != nil {
		t.Fatalf("UnassignSinodal: %v", err)
	}

	// When persisting the removal fails, the caller re-reserves the slot;
	// it must claim the professor exclusively again.
	if err := index.Reserve(ResourceProfessor, 102, examDay, slot); err != nil {
		t.Fatalf("reclaiming the released slot should succeed: %v", err)
	}
	if index.IsFree(ResourceProfessor, 102, examDay, slot) {
		t.Error("the reclaimed slot should block the professor again")
	}
}

func TestUnassignSinodalWithoutAssignment(t *testing.T) {
	validator := NewValidator(testCatalog(), NewConflictIndex())

	err := validator.UnassignSinodal(draftExam())
	if !errors.Is(err, ErrSinodalNotAssigned) {
		t.Errorf("expected ErrSinodalNotAssigned, got: %v", err)
	}
}
