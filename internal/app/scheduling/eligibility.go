package scheduling

import (
	"errors"
	"fmt"

	"github.com/jromero/examcal/internal/app/models"
)

// Sinodal eligibility errors. These are expected outcomes under contention,
// not exceptions: callers surface them as typed results.
var (
	ErrSelfAssignment      = errors.New("sinodal cannot be the titular professor of the exam")
	ErrIneligibleProfessor = errors.New("professor does not belong to a subject grouping of the course's program")
	ErrSinodalNotAssigned  = errors.New("exam has no sinodal assigned")
	ErrSinodalAlreadySet   = errors.New("exam already has a sinodal assigned")
)

// Validator decides sinodal admissibility and claims the candidate's time
// slot on success.
type Validator struct {
	catalog *Catalog
	index   *ConflictIndex
}

// NewValidator creates an eligibility validator over a catalog snapshot and
// the shared conflict index.
func NewValidator(catalog *Catalog, index *ConflictIndex) *Validator {
	return &Validator{catalog: catalog, index: index}
}

// AssignSinodal validates the candidate against the eligibility rules, in
// order: not the titular, member of a grouping of the course's program (with
// a permissive fallback when the program has no groupings), and free for the
// exam's slot. On success the candidate's slot is reserved and the record is
// updated in place; the caller persists it.
func (v *Validator) AssignSinodal(exam *models.Exam, candidateID int64) error {
	if exam.HasSinodal() {
		return ErrSinodalAlreadySet
	}
	candidate, ok := v.catalog.Professor(candidateID)
	if !ok {
		return fmt.Errorf("%w: professor %d", ErrProfessorNotFound, candidateID)
	}
	if candidateID == exam.TitularProfessorID {
		return ErrSelfAssignment
	}

	course, ok := v.catalog.Course(exam.CourseID)
	if !ok {
		return fmt.Errorf("%w: course %d", ErrCourseNotFound, exam.CourseID)
	}
	// Programs without groupings accept any non-titular professor.
	if v.catalog.ProgramHasGroupings(course.ProgramID) &&
		!v.catalog.ProfessorEligibleForProgram(candidate.ID, course.ProgramID) {
		return fmt.Errorf("%w: professor %d, program %d", ErrIneligibleProfessor, candidate.ID, course.ProgramID)
	}

	iv, err := ParseInterval(exam.StartTime, exam.EndTime)
	if err != nil {
		return err
	}
	if err := v.index.Reserve(ResourceProfessor, candidate.ID, exam.Date, iv); err != nil {
		return err
	}

	exam.SinodalProfessorID = &candidate.ID
	return nil
}

// UnassignSinodal clears the exam's sinodal and releases the corresponding
// conflict index reservation.
func (v *Validator) UnassignSinodal(exam *models.Exam) error {
	if !exam.HasSinodal() {
		return ErrSinodalNotAssigned
	}
	iv, err := ParseInterval(exam.StartTime, exam.EndTime)
	if err != nil {
		return err
	}
	v.index.Release(ResourceProfessor, *exam.SinodalProfessorID, exam.Date, iv)
	exam.SinodalProfessorID = nil
	return nil
}
