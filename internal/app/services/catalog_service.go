package services

import (
	"context"
	"fmt"

	"github.com/jromero/examcal/internal/app/models"
	"github.com/jromero/examcal/internal/app/repositories"
	"github.com/jromero/examcal/internal/pkg/apperrors"
)

// CatalogService exposes read access to the resource registry: programs,
// cohorts, courses, professors, rooms, exam kinds and subject groupings.
type CatalogService struct {
	programRepo   *repositories.ProgramRepository
	courseRepo    *repositories.CourseRepository
	professorRepo *repositories.ProfessorRepository
	roomRepo      *repositories.RoomRepository
	examKindRepo  *repositories.ExamKindRepository
	groupingRepo  *repositories.SubjectGroupingRepository
}

// NewCatalogService creates a new catalog service instance
func NewCatalogService(repos *repositories.Repositories) *CatalogService {
	return &CatalogService{
		programRepo:   repos.ProgramRepository,
		courseRepo:    repos.CourseRepository,
		professorRepo: repos.ProfessorRepository,
		roomRepo:      repos.RoomRepository,
		examKindRepo:  repos.ExamKindRepository,
		groupingRepo:  repos.SubjectGroupingRepository,
	}
}

// GetPrograms retrieves all programs
func (s *CatalogService) GetPrograms(ctx context.Context) ([]*models.Program, error) {
	return s.programRepo.GetAll(ctx)
}

// GetProgram retrieves one program by id
func (s *CatalogService) GetProgram(ctx context.Context, id int64) (*models.Program, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrProgramNotFound, fmt.Sprintf("program %d not found", id))
	}
	return program, nil
}

// GetCohorts retrieves the cohorts of a program
func (s *CatalogService) GetCohorts(ctx context.Context, programID int64) ([]*models.Cohort, error) {
	if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrProgramNotFound, fmt.Sprintf("program %d not found", programID))
	}
	return s.programRepo.GetCohortsByProgramID(ctx, programID)
}

// GetCourses retrieves courses, optionally scoped to a program
func (s *CatalogService) GetCourses(ctx context.Context, programID *int64) ([]*models.Course, error) {
	if programID != nil {
		return s.courseRepo.GetByProgramID(ctx, *programID)
	}
	return s.courseRepo.GetAll(ctx)
}

// GetProfessors retrieves all professors with their grouping memberships
func (s *CatalogService) GetProfessors(ctx context.Context) ([]*models.Professor, error) {
	return s.professorRepo.GetAll(ctx)
}

// GetRooms retrieves rooms, optionally filtered by type, smallest first
func (s *CatalogService) GetRooms(ctx context.Context, roomType *models.RoomType) ([]*models.Room, error) {
	return s.roomRepo.GetAll(ctx, roomType)
}

// GetExamKinds retrieves all exam kinds
func (s *CatalogService) GetExamKinds(ctx context.Context) ([]*models.ExamKind, error) {
	return s.examKindRepo.GetAll(ctx)
}

// GetSubjectGroupings retrieves all subject groupings
func (s *CatalogService) GetSubjectGroupings(ctx context.Context) ([]*models.SubjectGrouping, error) {
	return s.groupingRepo.GetAll(ctx)
}
