package scheduling

import (
	"context"
	"errors"
	"testing"

	"github.com/jromero/examcal/internal/app/models"
)

func testCatalog() *Catalog {
	rooms := []models.Room{
		{ID: 1, Name: "Aula A", Type: models.RoomStandard, Capacity: 30},
		{ID: 2, Name: "Lab B", Type: models.RoomLab, Capacity: 20},
		{ID: 3, Name: "Auditorio", Type: models.RoomHall, Capacity: 120},
	}
	courses := []models.Course{
		{ID: 10, ProgramID: 1, Name: "Algebra", TitularProfessorID: 100},
		{ID: 11, ProgramID: 1, Name: "Programacion", TitularProfessorID: 101},
		{ID: 12, ProgramID: 1, Name: "Fisica", TitularProfessorID: 100},
	}
	professors := []models.Professor{
		{ID: 100, Name: "Dra. Reyes", GroupingIDs: []int64{1}},
		{ID: 101, Name: "Mtro. Vega", GroupingIDs: []int64{2}},
		{ID: 102, Name: "Dr. Silva", GroupingIDs: []int64{1}},
	}
	groupings := []models.SubjectGrouping{
		{ID: 1, Name: "Ciencias Basicas", ProgramIDs: []int64{1}},
		{ID: 2, Name: "Computacion", ProgramIDs: []int64{1}},
	}
	return NewCatalog(rooms, courses, professors, groupings)
}

func request(courseID int64, modality models.ExamModality, start, end string, students int) CourseRequest {
	return CourseRequest{
		CourseID:         courseID,
		ExamKindID:       1,
		Modality:         modality,
		Date:             examDay,
		StartTime:        start,
		EndTime:          end,
		ExpectedStudents: students,
	}
}

func TestEnginePicksSmallestSufficientRoom(t *testing.T) {
	engine := NewEngine(testCatalog(), NewConflictIndex())

	result, err := engine.Generate(context.Background(), []CourseRequest{
		request(10, models.ModalityWritten, "10:00", "11:00", 25),
	})
	if err != nil {
		t.Fatalf("Generate should succeed: %v", err)
	}
	if len(result.Committed) != 1 || len(result.Deferred) != 0 {
		t.Fatalf("expected 1 committed, 0 deferred; got %d/%d", len(result.Committed), len(result.Deferred))
	}
	// Aula A (30 seats) is the smallest written room that fits 25 students.
	if result.Committed[0].RoomID != 1 {
		t.Errorf("expected room 1, got %d", result.Committed[0].RoomID)
	}
}

func TestEngineModalityRestrictsRooms(t *testing.T) {
	engine := NewEngine(testCatalog(), NewConflictIndex())

	result, err := engine.Generate(context.Background(), []CourseRequest{
		request(11, models.ModalityDigital, "10:00", "11:00", 15),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Committed) != 1 {
		t.Fatalf("expected 1 committed, got %d deferred=%v", len(result.Committed), result.Deferred)
	}
	if result.Committed[0].RoomID != 2 {
		t.Errorf("digital exam must land in the lab, got room %d", result.Committed[0].RoomID)
	}
}

func TestEngineDefersWhenNoRoomFits(t *testing.T) {
	engine := NewEngine(testCatalog(), NewConflictIndex())

	// No lab seats 25 students.
	result, err := engine.Generate(context.Background(), []CourseRequest{
		request(11, models.ModalityDigital, "10:00", "11:00", 25),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Deferred) != 1 {
		t.Fatalf("expected 1 deferral, got %d", len(result.Deferred))
	}
	if result.Deferred[0].Code != DeferralCapacityExceeded {
		t.Errorf("expected CAPACITY_EXCEEDED, got %s", result.Deferred[0].Code)
	}
}

func TestEngineFallsBackToNextRoomOnConflict(t *testing.T) {
	index := NewConflictIndex()
	// Aula A is taken for the slot; the hall is the next written candidate.
	if err := index.Reserve(ResourceRoom, 1, examDay, Interval{Start: 600, End: 660}); err != nil {
		t.Fatalf("seed reservation: %v", err)
	}
	engine := NewEngine(testCatalog(), index)

	result, err := engine.Generate(context.Background(), []CourseRequest{
		request(10, models.ModalityWritten, "10:00", "11:00", 25),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Committed) != 1 {
		t.Fatalf("expected 1 committed, got deferrals %v", result.Deferred)
	}
	if result.Committed[0].RoomID != 3 {
		t.Errorf("expected fallback to room 3, got %d", result.Committed[0].RoomID)
	}
}

func TestEngineProfessorConflictShortCircuits(t *testing.T) {
	engine := NewEngine(testCatalog(), NewConflictIndex())

	// Courses 10 and 12 share titular 100; overlapping slots can only place one.
	result, err := engine.Generate(context.Background(), []CourseRequest{
		request(10, models.ModalityWritten, "10:00", "11:00", 25),
		request(12, models.ModalityWritten, "10:30", "11:30", 25),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Committed) != 1 || len(result.Deferred) != 1 {
		t.Fatalf("expected 1 committed + 1 deferred, got %d/%d", len(result.Committed), len(result.Deferred))
	}
	deferral := result.Deferred[0]
	if deferral.CourseID != 12 {
		t.Errorf("course 12 (higher id) should lose the slot, got %d", deferral.CourseID)
	}
	if deferral.Code != DeferralProfessorConflict {
		t.Errorf("expected PROFESSOR_CONFLICT, got %s", deferral.Code)
	}
	if deferral.ResourceKind != ResourceProfessor || deferral.ResourceID != 100 {
		t.Errorf("deferral should name professor 100, got %s %d", deferral.ResourceKind, deferral.ResourceID)
	}
}

func TestEngineIsDeterministic(t *testing.T) {
	// Same batch, fresh index each time: identical assignments regardless of
	// input order.
	batch := []CourseRequest{
		request(12, models.ModalityWritten, "12:00", "13:00", 20),
		request(10, models.ModalityWritten, "10:00", "11:00", 25),
		request(11, models.ModalityWritten, "11:00", "12:00", 28),
	}
	reversed := []CourseRequest{batch[1], batch[2], batch[0]}

	first, err := NewEngine(testCatalog(), NewConflictIndex()).Generate(context.Background(), batch)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := NewEngine(testCatalog(), NewConflictIndex()).Generate(context.Background(), reversed)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(first.Committed) != len(second.Committed) {
		t.Fatalf("runs disagree on committed count: %d vs %d", len(first.Committed), len(second.Committed))
	}
	for i := range first.Committed {
		if first.Committed[i] != second.Committed[i] {
			t.Errorf("assignment %d differs: %+v vs %+v", i, first.Committed[i], second.Committed[i])
		}
	}
}

func TestEngineExplicitRoomRequest(t *testing.T) {
	engine := NewEngine(testCatalog(), NewConflictIndex())

	hall := int64(3)
	req := request(10, models.ModalityWritten, "10:00", "11:00", 25)
	req.RoomID = &hall

	result, err := engine.Generate(context.Background(), []CourseRequest{req})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Committed) != 1 || result.Committed[0].RoomID != hall {
		t.Fatalf("explicit room request should pin room 3, got %+v", result)
	}
}

func TestEngineExplicitRoomModalityMismatch(t *testing.T) {
	engine := NewEngine(testCatalog(), NewConflictIndex())

	lab := int64(2)
	req := request(10, models.ModalityWritten, "10:00", "11:00", 15)
	req.RoomID = &lab

	result, err := engine.Generate(context.Background(), []CourseRequest{req})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Deferred) != 1 || result.Deferred[0].Code != DeferralCapacityExceeded {
		t.Fatalf("written exam pinned to a lab should defer, got %+v", result)
	}
}

func TestEngineFatalErrorsAbortWithoutCommits(t *testing.T) {
	index := NewConflictIndex()
	engine := NewEngine(testCatalog(), index)

	_, err := engine.Generate(context.Background(), []CourseRequest{
		request(10, models.ModalityWritten, "10:00", "11:00", 25),
		request(999, models.ModalityWritten, "12:00", "13:00", 25),
	})
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got: %v", err)
	}
	// Validation runs before allocation, so even the valid course left no trace.
	if !index.IsFree(ResourceRoom, 1, examDay, Interval{Start: 600, End: 660}) {
		t.Error("aborted run must not leave reservations behind")
	}
}

func TestEngineBadIntervalIsFatal(t *testing.T) {
	engine := NewEngine(testCatalog(), NewConflictIndex())

	_, err := engine.Generate(context.Background(), []CourseRequest{
		request(10, models.ModalityWritten, "11:00", "10:00", 25),
	})
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("expected ErrInvalidInterval, got: %v", err)
	}
}

func TestEngineHonorsCancellation(t *testing.T) {
	engine := NewEngine(testCatalog(), NewConflictIndex())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := engine.Generate(ctx, []CourseRequest{
		request(10, models.ModalityWritten, "10:00", "11:00", 25),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
	if result == nil || len(result.Committed) != 0 {
		t.Errorf("cancelled run should return the (empty) partial result, got %+v", result)
	}
}
