package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository            *UserRepository
	ProgramRepository         *ProgramRepository
	CourseRepository          *CourseRepository
	ProfessorRepository       *ProfessorRepository
	RoomRepository            *RoomRepository
	ExamKindRepository        *ExamKindRepository
	SubjectGroupingRepository *SubjectGroupingRepository
	ClassScheduleRepository   *ClassScheduleRepository
	ExamRepository            *ExamRepository
	SubmissionRepository      *SubmissionRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:            NewUserRepository(db),
		ProgramRepository:         NewProgramRepository(db),
		CourseRepository:          NewCourseRepository(db),
		ProfessorRepository:       NewProfessorRepository(db),
		RoomRepository:            NewRoomRepository(db),
		ExamKindRepository:        NewExamKindRepository(db),
		SubjectGroupingRepository: NewSubjectGroupingRepository(db),
		ClassScheduleRepository:   NewClassScheduleRepository(db),
		ExamRepository:            NewExamRepository(db),
		SubmissionRepository:      NewSubmissionRepository(db),
	}
}
