package scheduling

import (
	"errors"
	"sync"
	"testing"
	"time"
)

var examDay = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

func TestConflictIndexReserveAndDetect(t *testing.T) {
	index := NewConflictIndex()
	slot := Interval{Start: 600, End: 660} // 10:00-11:00

	if err := index.Reserve(ResourceRoom, 1, examDay, slot); err != nil {
		t.Fatalf("first reservation should succeed: %v", err)
	}

	err := index.Reserve(ResourceRoom, 1, examDay, Interval{Start: 630, End: 690})
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *ConflictError, got: %v", err)
	}
	if conflict.Kind != ResourceRoom || conflict.ResourceID != 1 {
		t.Errorf("conflict should name room 1, got %s %d", conflict.Kind, conflict.ResourceID)
	}
	if conflict.Blocking != slot {
		t.Errorf("conflict should carry the blocking interval %v, got %v", slot, conflict.Blocking)
	}
}

func TestConflictIndexBackToBackSlotsAreFree(t *testing.T) {
	index := NewConflictIndex()

	if err := index.Reserve(ResourceRoom, 1, examDay, Interval{Start: 600, End: 660}); err != nil {
		t.Fatalf("reserve 10:00-11:00: %v", err)
	}
	if err := index.Reserve(ResourceRoom, 1, examDay, Interval{Start: 660, End: 720}); err != nil {
		t.Errorf("11:00-12:00 should be free after reserving 10:00-11:00: %v", err)
	}
}

func TestConflictIndexIsolatesResourcesAndDates(t *testing.T) {
	index := NewConflictIndex()
	slot := Interval{Start: 600, End: 660}

	if err := index.Reserve(ResourceRoom, 1, examDay, slot); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	if !index.IsFree(ResourceRoom, 2, examDay, slot) {
		t.Error("a different room must be unaffected")
	}
	if !index.IsFree(ResourceProfessor, 1, examDay, slot) {
		t.Error("a professor with the same id must be unaffected")
	}
	if !index.IsFree(ResourceRoom, 1, examDay.AddDate(0, 0, 1), slot) {
		t.Error("the same room on another date must be unaffected")
	}
}

func TestConflictIndexReserveAllIsAtomic(t *testing.T) {
	index := NewConflictIndex()
	slot := Interval{Start: 600, End: 660}

	// Occupy the professor so the pair below must fail as a whole.
	if err := index.Reserve(ResourceProfessor, 7, examDay, slot); err != nil {
		t.Fatalf("reserve professor: %v", err)
	}

	err := index.ReserveAll(
		Reservation{Kind: ResourceRoom, ResourceID: 1, Date: examDay, Interval: slot},
		Reservation{Kind: ResourceProfessor, ResourceID: 7, Date: examDay, Interval: slot},
	)
	if err == nil {
		t.Fatal("ReserveAll should fail when any member slot is taken")
	}
	if !index.IsFree(ResourceRoom, 1, examDay, slot) {
		t.Error("failed ReserveAll must not leave a partial room reservation behind")
	}
}

func TestConflictIndexReserveAllRejectsOverlapWithinBatch(t *testing.T) {
	index := NewConflictIndex()

	// Two overlapping claims on professor 7 arrive in the same call; the
	// batch must be rejected as a whole even though the index is empty.
	err := index.ReserveAll(
		Reservation{Kind: ResourceProfessor, ResourceID: 7, Date: examDay, Interval: Interval{Start: 600, End: 660}},
		Reservation{Kind: ResourceProfessor, ResourceID: 7, Date: examDay, Interval: Interval{Start: 630, End: 690}},
	)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("overlapping reservations within one batch must conflict, got: %v", err)
	}
	if conflict.Kind != ResourceProfessor || conflict.ResourceID != 7 {
		t.Errorf("conflict should name professor 7, got %s %d", conflict.Kind, conflict.ResourceID)
	}
	if !index.IsFree(ResourceProfessor, 7, examDay, Interval{Start: 600, End: 690}) {
		t.Error("rejected batch must not commit anything")
	}

	// Back-to-back claims for the same resource in one batch stay legal.
	err = index.ReserveAll(
		Reservation{Kind: ResourceProfessor, ResourceID: 7, Date: examDay, Interval: Interval{Start: 600, End: 660}},
		Reservation{Kind: ResourceProfessor, ResourceID: 7, Date: examDay, Interval: Interval{Start: 660, End: 720}},
	)
	if err != nil {
		t.Errorf("back-to-back batch should succeed: %v", err)
	}
}

func TestConflictIndexPrimeSkipsOnlyConflictingSlot(t *testing.T) {
	index := NewConflictIndex()
	slot := Interval{Start: 600, End: 660}

	// An earlier record already holds professor 100.
	if err := index.Reserve(ResourceProfessor, 100, examDay, slot); err != nil {
		t.Fatalf("seed reservation: %v", err)
	}

	// Priming a record whose titular conflicts must still claim its room.
	conflicts := index.Prime(
		Reservation{Kind: ResourceRoom, ResourceID: 2, Date: examDay, Interval: slot},
		Reservation{Kind: ResourceProfessor, ResourceID: 100, Date: examDay, Interval: slot},
	)
	if len(conflicts) != 1 {
		t.Fatalf("expected exactly one conflict, got %d", len(conflicts))
	}
	if conflicts[0].Kind != ResourceProfessor || conflicts[0].ResourceID != 100 {
		t.Errorf("conflict should name professor 100, got %s %d", conflicts[0].Kind, conflicts[0].ResourceID)
	}
	if index.IsFree(ResourceRoom, 2, examDay, slot) {
		t.Error("the room slot must be reserved despite the professor conflict")
	}
}

func TestConflictIndexReleaseFreesSlot(t *testing.T) {
	index := NewConflictIndex()
	slot := Interval{Start: 600, End: 660}

	if err := index.Reserve(ResourceProfessor, 3, examDay, slot); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	index.Release(ResourceProfessor, 3, examDay, slot)
	if !index.IsFree(ResourceProfessor, 3, examDay, slot) {
		t.Error("released slot should be free again")
	}

	// Releasing twice is a no-op.
	index.Release(ResourceProfessor, 3, examDay, slot)
	if err := index.Reserve(ResourceProfessor, 3, examDay, slot); err != nil {
		t.Errorf("re-reserving a released slot should succeed: %v", err)
	}
}

func TestConflictIndexConcurrentReserve(t *testing.T) {
	index := NewConflictIndex()
	slot := Interval{Start: 600, End: 660}

	const workers = 16
	var wg sync.WaitGroup
	wins := make(chan int64, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := index.Reserve(ResourceRoom, 42, examDay, slot); err == nil {
				wins <- 42
			}
		}()
	}
	wg.Wait()
	close(wins)

	won := 0
	for range wins {
		won++
	}
	if won != 1 {
		t.Errorf("exactly one concurrent reservation should win, got %d", won)
	}
}
