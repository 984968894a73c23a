package scheduling

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jromero/examcal/internal/app/models"
)

// Fatal input errors. They indicate a corrupt catalog reference and abort the
// whole generation run; they are never turned into deferrals.
var (
	ErrCourseNotFound    = errors.New("course not found in catalog")
	ErrRoomNotFound      = errors.New("room not found in catalog")
	ErrProfessorNotFound = errors.New("professor not found in catalog")
)

// DeferralCode is a machine-checkable reason for deferring a course.
type DeferralCode string

const (
	DeferralCapacityExceeded  DeferralCode = "CAPACITY_EXCEEDED"
	DeferralRoomConflict      DeferralCode = "ROOM_CONFLICT"
	DeferralProfessorConflict DeferralCode = "PROFESSOR_CONFLICT"
)

// CourseRequest asks for one exam slot to be allocated.
type CourseRequest struct {
	CourseID         int64
	ExamKindID       int64
	Modality         models.ExamModality
	Date             time.Time
	StartTime        string // HH:MM
	EndTime          string // HH:MM
	ExpectedStudents int
	RoomID           *int64 // explicit room, restricts the candidate set to one
}

// Assignment is one committed room/time/professor allocation.
type Assignment struct {
	CourseID           int64
	ExamKindID         int64
	RoomID             int64
	TitularProfessorID int64
	Date               time.Time
	StartTime          string
	EndTime            string
	Interval           Interval
	ExpectedStudents   int
}

// Deferral reports a course that could not be placed, with the specific
// conflicting resource so the caller can resolve it manually.
type Deferral struct {
	CourseID     int64        `json:"courseId"`
	Code         DeferralCode `json:"code"`
	Reason       string       `json:"reason"`
	ResourceKind ResourceKind `json:"resourceKind,omitempty"`
	ResourceID   int64        `json:"resourceId,omitempty"`
	Blocking     *Interval    `json:"blocking,omitempty"`
}

// GenerationResult aggregates the outcome of one run. Committed assignments
// are never rolled back because of later deferrals: courses are independent.
type GenerationResult struct {
	Committed []Assignment
	Deferred  []Deferral
}

// Engine allocates non-conflicting room/time/examiner combinations for a
// batch of courses. It is deterministic: the same request batch against an
// identical catalog and an empty conflict index always yields the same
// assignments.
type Engine struct {
	catalog *Catalog
	index   *ConflictIndex
}

// NewEngine creates an allocation engine over a catalog snapshot and a
// (possibly shared) conflict index.
func NewEngine(catalog *Catalog, index *ConflictIndex) *Engine {
	return &Engine{catalog: catalog, index: index}
}

// validated is a request with its catalog references resolved.
type validated struct {
	req      CourseRequest
	course   models.Course
	interval Interval
}

// Generate runs the single-pass allocation described in the package
// documentation. Fatal input errors (unknown course/room/professor, malformed
// interval) abort before anything is committed. Constraint failures defer the
// course and generation continues. Cancellation is honored at each course
// boundary; assignments committed before the cancellation stay committed.
func (e *Engine) Generate(ctx context.Context, requests []CourseRequest) (*GenerationResult, error) {
	// Stable allocation order: course id ascending.
	ordered := make([]CourseRequest, len(requests))
	copy(ordered, requests)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].CourseID < ordered[j].CourseID })

	// Validation pass first, so corrupt input never leaves partial commits.
	batch := make([]validated, 0, len(ordered))
	for _, req := range ordered {
		v, err := e.validate(req)
		if err != nil {
			return nil, err
		}
		batch = append(batch, v)
	}

	result := &GenerationResult{}
	for _, v := range batch {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		e.allocate(v, result)
	}
	return result, nil
}

func (e *Engine) validate(req CourseRequest) (validated, error) {
	course, ok := e.catalog.Course(req.CourseID)
	if !ok {
		return validated{}, fmt.Errorf("%w: course %d", ErrCourseNotFound, req.CourseID)
	}
	if _, ok := e.catalog.Professor(course.TitularProfessorID); !ok {
		return validated{}, fmt.Errorf("%w: titular professor %d of course %d",
			ErrProfessorNotFound, course.TitularProfessorID, course.ID)
	}
	if req.RoomID != nil {
		if _, ok := e.catalog.Room(*req.RoomID); !ok {
			return validated{}, fmt.Errorf("%w: room %d", ErrRoomNotFound, *req.RoomID)
		}
	}
	iv, err := ParseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return validated{}, fmt.Errorf("course %d: %w", req.CourseID, err)
	}
	return validated{req: req, course: course, interval: iv}, nil
}

// candidateRooms computes the admissible room set for a request: rooms
// matching the modality with sufficient capacity, smallest first. An explicit
// room request narrows the set to that single room.
func (e *Engine) candidateRooms(v validated) []models.Room {
	var pool []models.Room
	if v.req.RoomID != nil {
		room, _ := e.catalog.Room(*v.req.RoomID)
		pool = []models.Room{room}
		if v.req.Modality != "" && !v.req.Modality.AllowsRoom(room.Type) {
			return nil
		}
	} else {
		pool = e.catalog.RoomsForModality(v.req.Modality)
	}

	var out []models.Room
	for _, room := range pool {
		if room.Capacity >= v.req.ExpectedStudents {
			out = append(out, room)
		}
	}
	return out
}

func (e *Engine) allocate(v validated, result *GenerationResult) {
	candidates := e.candidateRooms(v)
	if len(candidates) == 0 {
		result.Deferred = append(result.Deferred, Deferral{
			CourseID: v.course.ID,
			Code:     DeferralCapacityExceeded,
			Reason: fmt.Sprintf("no %s room with capacity for %d students",
				v.req.Modality, v.req.ExpectedStudents),
		})
		return
	}

	var lastRoomConflict *ConflictError
	for _, room := range candidates {
		err := e.index.ReserveAll(
			Reservation{Kind: ResourceRoom, ResourceID: room.ID, Date: v.req.Date, Interval: v.interval},
			Reservation{Kind: ResourceProfessor, ResourceID: v.course.TitularProfessorID, Date: v.req.Date, Interval: v.interval},
		)
		if err == nil {
			result.Committed = append(result.Committed, Assignment{
				CourseID:           v.course.ID,
				ExamKindID:         v.req.ExamKindID,
				RoomID:             room.ID,
				TitularProfessorID: v.course.TitularProfessorID,
				Date:               v.req.Date,
				StartTime:          v.req.StartTime,
				EndTime:            v.req.EndTime,
				Interval:           v.interval,
				ExpectedStudents:   v.req.ExpectedStudents,
			})
			return
		}

		var conflict *ConflictError
		if !errors.As(err, &conflict) {
			// ReserveAll only ever fails with *ConflictError; keep the
			// deferral loop going regardless.
			continue
		}
		if conflict.Kind == ResourceProfessor {
			// The titular is busy for this interval; no other room can help.
			result.Deferred = append(result.Deferred, Deferral{
				CourseID:     v.course.ID,
				Code:         DeferralProfessorConflict,
				Reason:       conflict.Error(),
				ResourceKind: ResourceProfessor,
				ResourceID:   conflict.ResourceID,
				Blocking:     &conflict.Blocking,
			})
			return
		}
		lastRoomConflict = conflict
	}

	result.Deferred = append(result.Deferred, Deferral{
		CourseID:     v.course.ID,
		Code:         DeferralRoomConflict,
		Reason:       lastRoomConflict.Error(),
		ResourceKind: ResourceRoom,
		ResourceID:   lastRoomConflict.ResourceID,
		Blocking:     &lastRoomConflict.Blocking,
	})
}
