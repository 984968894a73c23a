package models

// Course represents a subject (materia) taught within a program.
type Course struct {
	ID                 int64  `json:"id" db:"id"`
	ProgramID          int64  `json:"programId" db:"program_id"`
	Name               string `json:"name" db:"name"`
	TitularProfessorID int64  `json:"titularProfessorId" db:"titular_professor_id"`

	// Relations (populated when needed)
	Program          *Program   `json:"program,omitempty"`
	TitularProfessor *Professor `json:"titularProfessor,omitempty"`
}

// Professor represents a teaching staff member.
type Professor struct {
	ID    int64   `json:"id" db:"id"`
	Name  string  `json:"name" db:"name"`
	Email *string `json:"email,omitempty" db:"email"` // Nullable

	// GroupingIDs are the subject groupings the professor belongs to
	GroupingIDs []int64 `json:"groupingIds,omitempty"`
}

// ClassSchedule represents one weekly class slot (horario) of a cohort.
// Exam generation can derive exam requests from these slots.
type ClassSchedule struct {
	ID        int64  `json:"id" db:"id"`
	CohortID  int64  `json:"cohortId" db:"cohort_id"`
	CourseID  int64  `json:"courseId" db:"course_id"`
	RoomID    int64  `json:"roomId" db:"room_id"`
	Weekday   string `json:"weekday" db:"weekday"`
	StartTime string `json:"startTime" db:"start_time"` // HH:MM
	EndTime   string `json:"endTime" db:"end_time"`     // HH:MM

	Course *Course `json:"course,omitempty"`
	Room   *Room   `json:"room,omitempty"`
}
