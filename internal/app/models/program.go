package models

// Program represents an academic program (carrera).
type Program struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Code        string  `json:"code" db:"code"`
	Description *string `json:"description,omitempty" db:"description"` // Nullable
}

// Cohort represents a student group (grupo) within a program.
type Cohort struct {
	ID        int64  `json:"id" db:"id"`
	ProgramID int64  `json:"programId" db:"program_id"`
	Name      string `json:"name" db:"name"`

	// Relations (populated when needed)
	Program *Program `json:"program,omitempty"`
}

// SubjectGrouping represents an academic clustering (academia) used to
// constrain sinodal eligibility. A grouping can span several programs.
type SubjectGrouping struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Code        *string `json:"code,omitempty" db:"code"`
	Description *string `json:"description,omitempty" db:"description"`

	ProgramIDs []int64 `json:"programIds,omitempty"`
}
