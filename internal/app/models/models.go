package models

// RoleType defines the user role type
type RoleType string

const (
	RoleSchoolServices RoleType = "SCHOOL_SERVICES" // validates calendars, manages accounts
	RoleProgramHead    RoleType = "PROGRAM_HEAD"    // generates calendars, assigns sinodales
	RoleSecretary      RoleType = "SECRETARY"       // read-only access
)

// RoomType classifies a physical space
type RoomType string

const (
	RoomStandard RoomType = "STANDARD"
	RoomHall     RoomType = "HALL"
	RoomLab      RoomType = "LAB"
)

// ExamModality is the delivery mode of an exam. It is derived at generation
// time and never persisted: written exams need a standard room or a hall,
// digital exams need a lab.
type ExamModality string

const (
	ModalityWritten ExamModality = "WRITTEN"
	ModalityDigital ExamModality = "DIGITAL"
)

// AllowsRoom reports whether a room of the given type can host the modality.
func (m ExamModality) AllowsRoom(t RoomType) bool {
	switch m {
	case ModalityWritten:
		return t == RoomStandard || t == RoomHall
	case ModalityDigital:
		return t == RoomLab
	}
	return false
}

// ExamStatus is the lifecycle state of a scheduled exam
type ExamStatus string

const (
	ExamDraft     ExamStatus = "DRAFT"
	ExamSubmitted ExamStatus = "SUBMITTED"
	ExamValidated ExamStatus = "VALIDATED"
)

// SubmissionStatus is the lifecycle state of a calendar submission batch
type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "SUBMITTED"
	SubmissionValidated SubmissionStatus = "VALIDATED"
	SubmissionRejected  SubmissionStatus = "REJECTED"
)

// Weekday names used by class schedule slots
const (
	WeekdayMonday    = "MONDAY"
	WeekdayTuesday   = "TUESDAY"
	WeekdayWednesday = "WEDNESDAY"
	WeekdayThursday  = "THURSDAY"
	WeekdayFriday    = "FRIDAY"
	WeekdaySaturday  = "SATURDAY"
)
