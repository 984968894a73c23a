package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jromero/examcal/internal/app/models"
	"github.com/jromero/examcal/internal/app/models/dto"
	"github.com/jromero/examcal/internal/app/repositories"
	"github.com/jromero/examcal/internal/app/scheduling"
	"github.com/jromero/examcal/internal/pkg/apperrors"
	"github.com/jromero/examcal/internal/pkg/helpers"
	"github.com/jromero/examcal/internal/pkg/logger"
)

// ExamService runs the allocation engine over the resource registry and
// persists its outcomes. A single conflict index is shared across all
// requests so concurrent generation runs never double-book a resource.
type ExamService struct {
	examRepo      *repositories.ExamRepository
	programRepo   *repositories.ProgramRepository
	courseRepo    *repositories.CourseRepository
	professorRepo *repositories.ProfessorRepository
	roomRepo      *repositories.RoomRepository
	examKindRepo  *repositories.ExamKindRepository
	groupingRepo  *repositories.SubjectGroupingRepository
	scheduleRepo  *repositories.ClassScheduleRepository

	index *scheduling.ConflictIndex
}

// NewExamService creates a new exam service instance
func NewExamService(repos *repositories.Repositories, index *scheduling.ConflictIndex) *ExamService {
	return &ExamService{
		examRepo:      repos.ExamRepository,
		programRepo:   repos.ProgramRepository,
		courseRepo:    repos.CourseRepository,
		professorRepo: repos.ProfessorRepository,
		roomRepo:      repos.RoomRepository,
		examKindRepo:  repos.ExamKindRepository,
		groupingRepo:  repos.SubjectGroupingRepository,
		scheduleRepo:  repos.ClassScheduleRepository,
		index:         index,
	}
}

// PrimeConflictIndex loads every persisted exam into the shared conflict
// index. Called once at startup so generation runs see reservations from
// previous process lifetimes.
func (s *ExamService) PrimeConflictIndex(ctx context.Context) error {
	exams, err := s.examRepo.GetAllActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to load exams for conflict index: %w", err)
	}

	for _, exam := range exams {
		iv, err := scheduling.ParseInterval(exam.StartTime, exam.EndTime)
		if err != nil {
			logger.Warn().Err(err).Int64("examId", exam.ID).Msg("Skipping exam with malformed interval")
			continue
		}
		reservations := []scheduling.Reservation{
			{Kind: scheduling.ResourceRoom, ResourceID: exam.RoomID, Date: exam.Date, Interval: iv},
			{Kind: scheduling.ResourceProfessor, ResourceID: exam.TitularProfessorID, Date: exam.Date, Interval: iv},
		}
		if exam.HasSinodal() {
			reservations = append(reservations, scheduling.Reservation{
				Kind: scheduling.ResourceProfessor, ResourceID: *exam.SinodalProfessorID, Date: exam.Date, Interval: iv,
			})
		}
		// Persisted records are the source of truth; an overlap here means
		// the data predates conflict checking. Skip only the conflicting
		// slot so the exam's remaining resources stay protected.
		for _, conflict := range s.index.Prime(reservations...) {
			logger.Warn().Err(conflict).Int64("examId", exam.ID).Msg("Conflicting persisted reservation while priming index")
		}
	}

	logger.Info().Int("exams", len(exams)).Msg("Conflict index primed")
	return nil
}

// loadCatalog snapshots the resource registry for one allocation run.
func (s *ExamService) loadCatalog(ctx context.Context) (*scheduling.Catalog, error) {
	roomPtrs, err := s.roomRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	coursePtrs, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}
	professorPtrs, err := s.professorRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load professors: %w", err)
	}
	groupingPtrs, err := s.groupingRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load subject groupings: %w", err)
	}

	rooms := make([]models.Room, len(roomPtrs))
	for i, r := range roomPtrs {
		rooms[i] = *r
	}
	courses := make([]models.Course, len(coursePtrs))
	for i, c := range coursePtrs {
		courses[i] = *c
	}
	professors := make([]models.Professor, len(professorPtrs))
	for i, p := range professorPtrs {
		professors[i] = *p
	}
	groupings := make([]models.SubjectGrouping, len(groupingPtrs))
	for i, g := range groupingPtrs {
		groupings[i] = *g
	}

	return scheduling.NewCatalog(rooms, courses, professors, groupings), nil
}

// checkProgramAndCohort verifies the cohort exists and belongs to the program.
func (s *ExamService) checkProgramAndCohort(ctx context.Context, programID, cohortID int64) error {
	if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
		return apperrors.NewCustomError(apperrors.ErrProgramNotFound, fmt.Sprintf("program %d not found", programID))
	}
	cohort, err := s.programRepo.GetCohortByID(ctx, cohortID)
	if err != nil {
		return apperrors.NewCustomError(apperrors.ErrCohortNotFound, fmt.Sprintf("cohort %d not found", cohortID))
	}
	if cohort.ProgramID != programID {
		return apperrors.NewCustomError(apperrors.ErrCohortNotFound,
			fmt.Sprintf("cohort %d does not belong to program %d", cohortID, programID))
	}
	return nil
}

// GenerateExams allocates slots for an explicit batch of course requests and
// persists the committed assignments as draft exams.
func (s *ExamService) GenerateExams(ctx context.Context, req *dto.GenerateExamsRequest) (*dto.GenerationResultResponse, error) {
	if err := s.checkProgramAndCohort(ctx, req.ProgramID, req.CohortID); err != nil {
		return nil, err
	}

	requests := make([]scheduling.CourseRequest, 0, len(req.Requests))
	for _, item := range req.Requests {
		date, err := time.Parse(scheduling.DateLayout, item.Date)
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
				fmt.Sprintf("course %d: invalid date %q, expected YYYY-MM-DD", item.CourseID, item.Date))
		}
		if _, err := s.examKindRepo.GetByID(ctx, item.ExamKindID); err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrExamKindNotFound,
				fmt.Sprintf("exam kind %d not found", item.ExamKindID))
		}
		requests = append(requests, scheduling.CourseRequest{
			CourseID:         item.CourseID,
			ExamKindID:       item.ExamKindID,
			Modality:         models.ExamModality(item.Modality),
			Date:             date,
			StartTime:        item.StartTime,
			EndTime:          item.EndTime,
			ExpectedStudents: item.ExpectedStudents,
			RoomID:           item.RoomID,
		})
	}

	return s.generate(ctx, req.ProgramID, req.CohortID, requests)
}

// GenerateFromTimetable derives a course batch from the cohort's weekly class
// schedule: each course is examined in its first weekly slot, moved into the
// exam week anchored on the next Monday.
func (s *ExamService) GenerateFromTimetable(ctx context.Context, req *dto.GenerateFromTimetableRequest) (*dto.GenerationResultResponse, error) {
	if err := s.checkProgramAndCohort(ctx, req.ProgramID, req.CohortID); err != nil {
		return nil, err
	}
	if _, err := s.examKindRepo.GetByID(ctx, req.ExamKindID); err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrExamKindNotFound,
			fmt.Sprintf("exam kind %d not found", req.ExamKindID))
	}

	schedules, err := s.scheduleRepo.GetByCohortAndProgram(ctx, req.CohortID, req.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("failed to load class schedules: %w", err)
	}
	if len(schedules) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest,
			fmt.Sprintf("cohort %d has no class schedules to derive exams from", req.CohortID))
	}

	anchor := time.Now()
	if req.StartDate != nil {
		anchor, err = time.Parse(scheduling.DateLayout, *req.StartDate)
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
				fmt.Sprintf("invalid start date %q, expected YYYY-MM-DD", *req.StartDate))
		}
	}
	weekStart := helpers.NextMonday(anchor)

	// One exam per course, using its first weekly slot.
	seen := make(map[int64]bool)
	var requests []scheduling.CourseRequest
	for _, slot := range schedules {
		if seen[slot.CourseID] {
			continue
		}
		seen[slot.CourseID] = true

		date, err := helpers.NextWeekday(weekStart, slot.Weekday)
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
				fmt.Sprintf("class schedule %d: %v", slot.ID, err))
		}
		requests = append(requests, scheduling.CourseRequest{
			CourseID:         slot.CourseID,
			ExamKindID:       req.ExamKindID,
			Modality:         models.ExamModality(req.Modality),
			Date:             date,
			StartTime:        slot.StartTime,
			EndTime:          slot.EndTime,
			ExpectedStudents: req.ExpectedStudents,
		})
	}

	return s.generate(ctx, req.ProgramID, req.CohortID, requests)
}

// generate runs the engine over a fresh catalog snapshot and persists every
// committed assignment as a draft exam.
func (s *ExamService) generate(ctx context.Context, programID, cohortID int64, requests []scheduling.CourseRequest) (*dto.GenerationResultResponse, error) {
	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	// Requests may only name courses of the requesting program.
	for _, req := range requests {
		course, ok := catalog.Course(req.CourseID)
		if !ok {
			return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound,
				fmt.Sprintf("course %d not found", req.CourseID))
		}
		if course.ProgramID != programID {
			return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound,
				fmt.Sprintf("course %d does not belong to program %d", req.CourseID, programID))
		}
	}

	engine := scheduling.NewEngine(catalog, s.index)
	result, err := engine.Generate(ctx, requests)
	if err != nil {
		return nil, err
	}

	response := &dto.GenerationResultResponse{
		Committed: make([]*models.Exam, 0, len(result.Committed)),
		Deferred:  result.Deferred,
	}
	for _, assignment := range result.Committed {
		exam := &models.Exam{
			CourseID:           assignment.CourseID,
			CohortID:           cohortID,
			RoomID:             assignment.RoomID,
			ExamKindID:         assignment.ExamKindID,
			Date:               assignment.Date,
			StartTime:          assignment.StartTime,
			EndTime:            assignment.EndTime,
			ExpectedStudents:   assignment.ExpectedStudents,
			TitularProfessorID: assignment.TitularProfessorID,
			Status:             models.ExamDraft,
		}
		if err := s.examRepo.Create(ctx, exam); err != nil {
			// The reservation stands even if persistence fails; release it so
			// the slot is not lost until restart.
			s.index.Release(scheduling.ResourceRoom, assignment.RoomID, assignment.Date, assignment.Interval)
			s.index.Release(scheduling.ResourceProfessor, assignment.TitularProfessorID, assignment.Date, assignment.Interval)
			return nil, err
		}
		response.Committed = append(response.Committed, exam)
	}

	logger.Info().
		Int64("programId", programID).
		Int64("cohortId", cohortID).
		Int("committed", len(response.Committed)).
		Int("deferred", len(response.Deferred)).
		Msg("Exam generation completed")

	return response, nil
}

// CreateExam creates one exam record manually, going through the same
// allocation path as batch generation. A deferral here is returned as a
// conflict error instead of a partial result.
func (s *ExamService) CreateExam(ctx context.Context, req *dto.CreateExamRequest) (*models.Exam, error) {
	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrCourseNotFound,
			fmt.Sprintf("course %d not found", req.CourseID))
	}

	result, err := s.GenerateExams(ctx, &dto.GenerateExamsRequest{
		ProgramID: course.ProgramID,
		CohortID:  req.CohortID,
		Requests: []dto.CourseRequestItem{{
			CourseID:         req.CourseID,
			ExamKindID:       req.ExamKindID,
			Modality:         req.Modality,
			Date:             req.Date,
			StartTime:        req.StartTime,
			EndTime:          req.EndTime,
			ExpectedStudents: req.ExpectedStudents,
			RoomID:           req.RoomID,
		}},
	})
	if err != nil {
		return nil, err
	}
	if len(result.Deferred) > 0 {
		deferral := result.Deferred[0]
		return nil, apperrors.NewCustomError(apperrors.ErrConflict, deferral.Reason).
			WithCode(string(deferral.Code)).
			WithDetails(map[string]interface{}{
				"courseId":     deferral.CourseID,
				"resourceKind": deferral.ResourceKind,
				"resourceId":   deferral.ResourceID,
			})
	}
	return result.Committed[0], nil
}

// GetExam retrieves an exam with its relations populated.
func (s *ExamService) GetExam(ctx context.Context, id int64) (*models.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrExamNotFound, fmt.Sprintf("exam %d not found", id))
	}
	s.attachRelations(ctx, exam)
	return exam, nil
}

// ListExams retrieves exams matching the filter with pagination.
func (s *ExamService) ListExams(ctx context.Context, filter repositories.ExamFilter, page, pageSize int) ([]*models.Exam, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	exams, err := s.examRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.examRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	for _, exam := range exams {
		s.attachRelations(ctx, exam)
	}
	return exams, total, nil
}

// AssignSinodal validates and assigns a second examiner to a draft exam.
func (s *ExamService) AssignSinodal(ctx context.Context, examID, professorID int64) (*models.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrExamNotFound, fmt.Sprintf("exam %d not found", examID))
	}
	if exam.Status != models.ExamDraft {
		return nil, apperrors.NewCustomError(apperrors.ErrConflict,
			fmt.Sprintf("exam %d is %s, only draft exams can be modified", examID, exam.Status))
	}

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	validator := scheduling.NewValidator(catalog, s.index)
	if err := validator.AssignSinodal(exam, professorID); err != nil {
		return nil, err
	}

	if err := s.examRepo.UpdateSinodal(ctx, examID, exam.SinodalProfessorID); err != nil {
		// Roll the reservation back so an unpersisted assignment does not
		// block the professor's slot.
		if iv, parseErr := scheduling.ParseInterval(exam.StartTime, exam.EndTime); parseErr == nil {
			s.index.Release(scheduling.ResourceProfessor, professorID, exam.Date, iv)
		}
		exam.SinodalProfessorID = nil
		return nil, err
	}

	s.attachRelations(ctx, exam)
	return exam, nil
}

// UnassignSinodal clears the second examiner of a draft exam.
func (s *ExamService) UnassignSinodal(ctx context.Context, examID int64) (*models.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrExamNotFound, fmt.Sprintf("exam %d not found", examID))
	}
	if exam.Status != models.ExamDraft {
		return nil, apperrors.NewCustomError(apperrors.ErrConflict,
			fmt.Sprintf("exam %d is %s, only draft exams can be modified", examID, exam.Status))
	}

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	validator := scheduling.NewValidator(catalog, s.index)
	previous := exam.SinodalProfessorID
	if err := validator.UnassignSinodal(exam); err != nil {
		return nil, err
	}

	if err := s.examRepo.UpdateSinodal(ctx, examID, nil); err != nil {
		// The database still records the sinodal; reclaim the released slot
		// so the professor cannot be double-booked meanwhile.
		if previous != nil {
			if iv, parseErr := scheduling.ParseInterval(exam.StartTime, exam.EndTime); parseErr == nil {
				_ = s.index.Reserve(scheduling.ResourceProfessor, *previous, exam.Date, iv)
			}
		}
		exam.SinodalProfessorID = previous
		return nil, err
	}

	s.attachRelations(ctx, exam)
	return exam, nil
}

// attachRelations populates the exam's reference data. Lookup failures leave
// the relation nil rather than failing the whole request.
func (s *ExamService) attachRelations(ctx context.Context, exam *models.Exam) {
	if course, err := s.courseRepo.GetByID(ctx, exam.CourseID); err == nil {
		exam.Course = course
	}
	if room, err := s.roomRepo.GetByID(ctx, exam.RoomID); err == nil {
		exam.Room = room
	}
	if kind, err := s.examKindRepo.GetByID(ctx, exam.ExamKindID); err == nil {
		exam.ExamKind = kind
	}
	if titular, err := s.professorRepo.GetByID(ctx, exam.TitularProfessorID); err == nil {
		exam.TitularProfessor = titular
	}
	if exam.HasSinodal() {
		if sinodal, err := s.professorRepo.GetByID(ctx, *exam.SinodalProfessorID); err == nil {
			exam.SinodalProfessor = sinodal
		}
	}
}
