package scheduling

import (
	"fmt"
	"sync"
	"time"
)

// ResourceKind identifies the kind of resource a reservation occupies.
type ResourceKind string

const (
	ResourceRoom      ResourceKind = "ROOM"
	ResourceProfessor ResourceKind = "PROFESSOR"
)

// Reservation is one (resource, date, interval) occupancy claim.
type Reservation struct {
	Kind       ResourceKind
	ResourceID int64
	Date       time.Time
	Interval   Interval
}

// ConflictError reports that a reservation overlaps an existing one. It
// carries the blocking resource and interval so callers can resolve the
// conflict without re-deriving it.
type ConflictError struct {
	Kind       ResourceKind
	ResourceID int64
	Date       time.Time
	Requested  Interval
	Blocking   Interval
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %d already reserved on %s for %s (requested %s)",
		e.Kind, e.ResourceID, e.Date.Format(DateLayout), e.Blocking, e.Requested)
}

type resourceKey struct {
	kind ResourceKind
	id   int64
	date string
}

// ConflictIndex tracks committed (resource, interval) reservations to prevent
// double-booking of rooms and professors. It is shared across concurrent
// generation runs; every mutating operation is a single critical section, held
// only for the duration of the free-check-and-reserve pair.
type ConflictIndex struct {
	mu       sync.Mutex
	reserved map[resourceKey][]Interval
}

// NewConflictIndex creates an empty index.
func NewConflictIndex() *ConflictIndex {
	return &ConflictIndex{reserved: make(map[resourceKey][]Interval)}
}

func keyFor(kind ResourceKind, id int64, date time.Time) resourceKey {
	return resourceKey{kind: kind, id: id, date: date.Format(DateLayout)}
}

// blockingInterval returns the first committed interval overlapping iv, or
// nil when the slot is free. Callers must hold mu.
func (x *ConflictIndex) blockingInterval(key resourceKey, iv Interval) *Interval {
	for _, existing := range x.reserved[key] {
		if existing.Overlaps(iv) {
			blocked := existing
			return &blocked
		}
	}
	return nil
}

// IsFree reports whether the resource has no committed reservation
// overlapping the interval on the given date.
func (x *ConflictIndex) IsFree(kind ResourceKind, id int64, date time.Time, iv Interval) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.blockingInterval(keyFor(kind, id, date), iv) == nil
}

// Reserve commits a single reservation, failing with *ConflictError if the
// slot is taken. The free check and the commit happen atomically.
func (x *ConflictIndex) Reserve(kind ResourceKind, id int64, date time.Time, iv Interval) error {
	return x.ReserveAll(Reservation{Kind: kind, ResourceID: id, Date: date, Interval: iv})
}

// ReserveAll commits a set of reservations atomically: either every slot is
// free and all are committed, or none is and the first conflict is returned.
// Reservations within one batch are checked against each other as well, so a
// single call can never commit overlapping intervals for one resource. The
// allocation engine uses this to claim a room and its titular professor as
// one unit.
func (x *ConflictIndex) ReserveAll(reservations ...Reservation) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	for i, r := range reservations {
		key := keyFor(r.Kind, r.ResourceID, r.Date)
		if blocking := x.blockingInterval(key, r.Interval); blocking != nil {
			return &ConflictError{
				Kind:       r.Kind,
				ResourceID: r.ResourceID,
				Date:       r.Date,
				Requested:  r.Interval,
				Blocking:   *blocking,
			}
		}
		// The batch must be conflict-free within itself too, not only
		// against committed intervals.
		for _, prior := range reservations[:i] {
			if keyFor(prior.Kind, prior.ResourceID, prior.Date) == key && prior.Interval.Overlaps(r.Interval) {
				return &ConflictError{
					Kind:       r.Kind,
					ResourceID: r.ResourceID,
					Date:       r.Date,
					Requested:  r.Interval,
					Blocking:   prior.Interval,
				}
			}
		}
	}
	for _, r := range reservations {
		key := keyFor(r.Kind, r.ResourceID, r.Date)
		x.reserved[key] = append(x.reserved[key], r.Interval)
	}
	return nil
}

// Prime commits reservations one at a time, skipping only the individual
// slots that conflict and returning those conflicts. Startup priming uses
// this instead of ReserveAll: a persisted record that overlaps older data
// must still claim the rest of its resources, or later generation runs could
// double-book against it.
func (x *ConflictIndex) Prime(reservations ...Reservation) []*ConflictError {
	x.mu.Lock()
	defer x.mu.Unlock()

	var conflicts []*ConflictError
	for _, r := range reservations {
		key := keyFor(r.Kind, r.ResourceID, r.Date)
		if blocking := x.blockingInterval(key, r.Interval); blocking != nil {
			conflicts = append(conflicts, &ConflictError{
				Kind:       r.Kind,
				ResourceID: r.ResourceID,
				Date:       r.Date,
				Requested:  r.Interval,
				Blocking:   *blocking,
			})
			continue
		}
		x.reserved[key] = append(x.reserved[key], r.Interval)
	}
	return conflicts
}

// Release removes a previously committed reservation. Releasing a slot that
// was never reserved is a no-op, which makes rollback paths idempotent.
func (x *ConflictIndex) Release(kind ResourceKind, id int64, date time.Time, iv Interval) {
	x.mu.Lock()
	defer x.mu.Unlock()

	key := keyFor(kind, id, date)
	intervals := x.reserved[key]
	for i, existing := range intervals {
		if existing == iv {
			x.reserved[key] = append(intervals[:i], intervals[i+1:]...)
			if len(x.reserved[key]) == 0 {
				delete(x.reserved, key)
			}
			return
		}
	}
}
