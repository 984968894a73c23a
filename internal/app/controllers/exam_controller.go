package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appAuth "github.com/jromero/examcal/internal/app/auth"
	"github.com/jromero/examcal/internal/app/models"
	"github.com/jromero/examcal/internal/app/models/dto"
	"github.com/jromero/examcal/internal/app/repositories"
	"github.com/jromero/examcal/internal/app/scheduling"
	"github.com/jromero/examcal/internal/app/services"
	"github.com/jromero/examcal/internal/middleware"
	"github.com/jromero/examcal/internal/pkg/helpers"
)

// ExamController handles exam generation and examiner assignment
type ExamController struct {
	examService  *services.ExamService
	authzService *appAuth.AuthorizationService
}

// NewExamController creates a new ExamController
func NewExamController(examService *services.ExamService, authzService *appAuth.AuthorizationService) *ExamController {
	return &ExamController{examService: examService, authzService: authzService}
}

// GenerateExams allocates a batch of exam slots
// @Summary Generate exams for a course batch
// @Description Allocates date, time, room and titular for each requested course. Courses that cannot be placed are reported as deferred with a machine-checkable reason; committed records are not rolled back.
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateExamsRequest true "Course batch"
// @Success 200 {object} dto.APIResponse{data=dto.GenerationResultResponse} "Generation result"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Program, cohort, course or exam kind not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/generate [post]
func (c *ExamController) GenerateExams(ctx *gin.Context) {
	var req dto.GenerateExamsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid generation request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authzService.ValidateProgramAccess(ctx, ctx.GetInt64(middleware.ContextUserID), req.ProgramID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result, err := c.examService.GenerateExams(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// GenerateFromTimetable derives exams from the weekly class schedule
// @Summary Generate exams from the class timetable
// @Description Derives one exam per course from the cohort's weekly class slots, anchored on the next Monday on or after the start date.
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateFromTimetableRequest true "Timetable generation parameters"
// @Success 200 {object} dto.APIResponse{data=dto.GenerationResultResponse} "Generation result"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or no class schedules"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Program, cohort or exam kind not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/generate-from-timetable [post]
func (c *ExamController) GenerateFromTimetable(ctx *gin.Context) {
	var req dto.GenerateFromTimetableRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid timetable generation request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authzService.ValidateProgramAccess(ctx, ctx.GetInt64(middleware.ContextUserID), req.ProgramID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result, err := c.examService.GenerateFromTimetable(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// CreateExam creates one exam record manually
// @Summary Create a single exam
// @Description Creates one exam through the same allocation checks as batch generation. A scheduling conflict is returned as an error instead of a deferral.
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateExamRequest true "Exam information"
// @Success 201 {object} dto.APIResponse{data=models.Exam} "Exam created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Course, cohort, room or exam kind not found"
// @Failure 409 {object} dto.ErrorResponse "Room or professor conflict"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req dto.CreateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid exam data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	exam, err := c.examService.CreateExam(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      exam,
		Timestamp: time.Now(),
	})
}

// GetExams lists exams with filters and pagination
// @Summary List exams
// @Description Retrieves exams filtered by program, cohort, status and date range
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param programId query int false "Filter by program ID"
// @Param cohortId query int false "Filter by cohort ID"
// @Param status query string false "Filter by status" Enums(DRAFT, SUBMITTED, VALIDATED)
// @Param from query string false "Start of date range (YYYY-MM-DD)"
// @Param to query string false "End of date range (YYYY-MM-DD)"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.ExamListResponse} "Exams retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams [get]
func (c *ExamController) GetExams(ctx *gin.Context) {
	filter, ok := parseExamFilter(ctx)
	if !ok {
		return
	}
	page, size := helpers.ParsePaginationParams(ctx)

	exams, total, err := c.examService.ListExams(ctx, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.ExamListResponse{
			Exams:          exams,
			PaginationInfo: helpers.NewPaginationInfo(total, page, size),
		},
		Timestamp: time.Now(),
	})
}

// GetExamByID retrieves one exam
// @Summary Get exam by ID
// @Description Retrieves a specific exam with its course, room and examiner relations
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.APIResponse{data=models.Exam} "Exam retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid exam ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/{id} [get]
func (c *ExamController) GetExamByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Exam")
	if !ok {
		return
	}

	exam, err := c.examService.GetExam(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      exam,
		Timestamp: time.Now(),
	})
}

// AssignSinodal assigns a second examiner to a draft exam
// @Summary Assign a sinodal
// @Description Validates and assigns a second examiner: the candidate must not be the titular, must belong to a subject grouping of the course's program, and must be free for the exam's slot.
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Param request body dto.AssignSinodalRequest true "Candidate professor"
// @Success 200 {object} dto.APIResponse{data=models.Exam} "Sinodal assigned successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Exam or professor not found"
// @Failure 409 {object} dto.ErrorResponse "Candidate ineligible, busy, or exam not editable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/{id}/sinodal [put]
func (c *ExamController) AssignSinodal(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Exam")
	if !ok {
		return
	}

	var req dto.AssignSinodalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid sinodal assignment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	exam, err := c.examService.AssignSinodal(ctx, id, req.ProfessorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      exam,
		Timestamp: time.Now(),
	})
}

// UnassignSinodal clears the second examiner of a draft exam
// @Summary Unassign the sinodal
// @Description Removes the second examiner and releases their reserved slot
// @Tags exams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exam ID"
// @Success 200 {object} dto.APIResponse{data=models.Exam} "Sinodal removed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid exam ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 409 {object} dto.ErrorResponse "Exam has no sinodal or is not editable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exams/{id}/sinodal [delete]
func (c *ExamController) UnassignSinodal(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Exam")
	if !ok {
		return
	}

	exam, err := c.examService.UnassignSinodal(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      exam,
		Timestamp: time.Now(),
	})
}

// parseExamFilter builds an exam filter from query parameters. Writes the
// error response itself and returns ok=false on malformed input.
func parseExamFilter(ctx *gin.Context) (repositories.ExamFilter, bool) {
	var filter repositories.ExamFilter

	for _, q := range []struct {
		name   string
		target **int64
	}{
		{"programId", &filter.ProgramID},
		{"cohortId", &filter.CohortID},
	} {
		if raw := ctx.Query(q.name); raw != "" {
			value, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameter").WithField(q.name)
				ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
				return filter, false
			}
			*q.target = &value
		}
	}

	if raw := ctx.Query("status"); raw != "" {
		status := models.ExamStatus(raw)
		filter.Status = &status
	}

	for _, q := range []struct {
		name   string
		target **time.Time
	}{
		{"from", &filter.FromDate},
		{"to", &filter.ToDate},
	} {
		if raw := ctx.Query(q.name); raw != "" {
			value, err := time.Parse(scheduling.DateLayout, raw)
			if err != nil {
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid date, expected YYYY-MM-DD").WithField(q.name)
				ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
				return filter, false
			}
			*q.target = &value
		}
	}

	return filter, true
}

// parseIDParam parses a positive integer path parameter, writing the error
// response itself on failure.
func parseIDParam(ctx *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID")
		errorDetail = errorDetail.WithDetails(label + " ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
