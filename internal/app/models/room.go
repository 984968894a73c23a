package models

// Room represents a physical space (aula or lab) where exams take place.
type Room struct {
	ID       int64    `json:"id" db:"id"`
	Name     string   `json:"name" db:"name"`
	Type     RoomType `json:"type" db:"type"`
	Capacity int      `json:"capacity" db:"capacity"`
}

// ExamKind represents an administrative exam category (tipo de examen),
// e.g. Parcial, Ordinario, Extraordinario.
type ExamKind struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`
}
