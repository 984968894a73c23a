package scheduling

import (
	"sort"

	"github.com/jromero/examcal/internal/app/models"
)

// Catalog is an immutable snapshot of the resource registry (rooms, courses,
// professors, subject groupings) valid for the duration of one allocation
// run. Reloading the catalog swaps the whole snapshot; the snapshot itself is
// never mutated.
type Catalog struct {
	rooms      []models.Room // sorted by capacity asc, id asc
	roomsByID  map[int64]models.Room
	courses    map[int64]models.Course
	professors map[int64]models.Professor

	// groupingsByProgram holds the grouping ids associated with each program.
	groupingsByProgram map[int64]map[int64]struct{}
}

// NewCatalog builds a snapshot from registry listings. The room slice is
// copied and sorted smallest-first so candidate iteration is deterministic.
func NewCatalog(rooms []models.Room, courses []models.Course, professors []models.Professor, groupings []models.SubjectGrouping) *Catalog {
	c := &Catalog{
		rooms:              make([]models.Room, len(rooms)),
		roomsByID:          make(map[int64]models.Room, len(rooms)),
		courses:            make(map[int64]models.Course, len(courses)),
		professors:         make(map[int64]models.Professor, len(professors)),
		groupingsByProgram: make(map[int64]map[int64]struct{}),
	}

	copy(c.rooms, rooms)
	sort.Slice(c.rooms, func(i, j int) bool {
		if c.rooms[i].Capacity != c.rooms[j].Capacity {
			return c.rooms[i].Capacity < c.rooms[j].Capacity
		}
		return c.rooms[i].ID < c.rooms[j].ID
	})
	for _, r := range c.rooms {
		c.roomsByID[r.ID] = r
	}
	for _, course := range courses {
		c.courses[course.ID] = course
	}
	for _, p := range professors {
		c.professors[p.ID] = p
	}
	for _, g := range groupings {
		for _, programID := range g.ProgramIDs {
			set, ok := c.groupingsByProgram[programID]
			if !ok {
				set = make(map[int64]struct{})
				c.groupingsByProgram[programID] = set
			}
			set[g.ID] = struct{}{}
		}
	}
	return c
}

// Room looks up a room by id.
func (c *Catalog) Room(id int64) (models.Room, bool) {
	r, ok := c.roomsByID[id]
	return r, ok
}

// Course looks up a course by id.
func (c *Catalog) Course(id int64) (models.Course, bool) {
	course, ok := c.courses[id]
	return course, ok
}

// Professor looks up a professor by id.
func (c *Catalog) Professor(id int64) (models.Professor, bool) {
	p, ok := c.professors[id]
	return p, ok
}

// RoomsForModality returns rooms admissible for the modality, ordered by
// ascending capacity so the smallest sufficient room is tried first. An empty
// modality matches every room.
func (c *Catalog) RoomsForModality(m models.ExamModality) []models.Room {
	if m == "" {
		out := make([]models.Room, len(c.rooms))
		copy(out, c.rooms)
		return out
	}
	var out []models.Room
	for _, r := range c.rooms {
		if m.AllowsRoom(r.Type) {
			out = append(out, r)
		}
	}
	return out
}

// ProgramHasGroupings reports whether any subject grouping is associated with
// the program. Programs without groupings fall back to permissive sinodal
// eligibility.
func (c *Catalog) ProgramHasGroupings(programID int64) bool {
	return len(c.groupingsByProgram[programID]) > 0
}

// ProfessorEligibleForProgram reports whether the professor belongs to at
// least one subject grouping associated with the program.
func (c *Catalog) ProfessorEligibleForProgram(professorID, programID int64) bool {
	p, ok := c.professors[professorID]
	if !ok {
		return false
	}
	programGroupings := c.groupingsByProgram[programID]
	for _, gid := range p.GroupingIDs {
		if _, ok := programGroupings[gid]; ok {
			return true
		}
	}
	return false
}
