package models

// User represents an account that can operate on exam calendars.
// PROGRAM_HEAD accounts carry an explicit program affiliation; affiliation is
// never inferred from the username.
type User struct {
	ID        int64    `json:"id" db:"id"`
	Username  string   `json:"username" db:"username"`
	Password  string   `json:"-" db:"password"` // bcrypt hash, never serialized
	Email     *string  `json:"email,omitempty" db:"email"`
	RoleType  RoleType `json:"roleType" db:"role_type"`
	ProgramID *int64   `json:"programId,omitempty" db:"program_id"` // Nullable, set for PROGRAM_HEAD
	IsActive  bool     `json:"isActive" db:"is_active"`

	Program *Program `json:"program,omitempty"`
}
