package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	appAuth "github.com/jromero/examcal/internal/app/auth"
	"github.com/jromero/examcal/internal/app/models"
	"github.com/jromero/examcal/internal/app/models/dto"
	"github.com/jromero/examcal/internal/app/services"
	"github.com/jromero/examcal/internal/middleware"
)

// CalendarController handles the submission workflow
type CalendarController struct {
	calendarService *services.CalendarService
	authzService    *appAuth.AuthorizationService
}

// NewCalendarController creates a new CalendarController
func NewCalendarController(calendarService *services.CalendarService, authzService *appAuth.AuthorizationService) *CalendarController {
	return &CalendarController{calendarService: calendarService, authzService: authzService}
}

// SubmitCalendar submits every draft exam of a program
// @Summary Submit a program's exam calendar
// @Description Batches every draft exam of the program into a submission. Blocked when any draft is missing its second examiner.
// @Tags calendars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitCalendarRequest true "Program to submit"
// @Success 201 {object} dto.APIResponse{data=dto.SubmissionResponse} "Calendar submitted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or no draft exams"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 409 {object} dto.ErrorResponse "Draft exams with incomplete examiner assignment"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendars [post]
func (c *CalendarController) SubmitCalendar(ctx *gin.Context) {
	var req dto.SubmitCalendarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid submission data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.authzService.ValidateProgramAccess(ctx, ctx.GetInt64(middleware.ContextUserID), req.ProgramID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result, err := c.calendarService.Submit(ctx, req.ProgramID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// GetSubmissions lists calendar submissions
// @Summary List calendar submissions
// @Description Retrieves calendar submissions, optionally scoped to one program, newest first
// @Tags calendars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param programId query int false "Filter by program ID"
// @Success 200 {object} dto.APIResponse{data=[]models.CalendarSubmission} "Submissions retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendars [get]
func (c *CalendarController) GetSubmissions(ctx *gin.Context) {
	var programID *int64
	if raw := ctx.Query("programId"); raw != "" {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameter").WithField("programId")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		programID = &value
	}

	submissions, err := c.calendarService.ListSubmissions(ctx, programID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if submissions == nil {
		submissions = []*models.CalendarSubmission{}
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      submissions,
		Timestamp: time.Now(),
	})
}

// GetSubmissionByID retrieves one submission with its member exams
// @Summary Get submission by ID
// @Description Retrieves a specific calendar submission and its member exams
// @Tags calendars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse} "Submission retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid submission ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendars/{id} [get]
func (c *CalendarController) GetSubmissionByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Submission")
	if !ok {
		return
	}

	result, err := c.calendarService.GetSubmission(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// ValidateSubmission approves a submitted calendar
// @Summary Validate a submitted calendar
// @Description Approves a submitted calendar. The decision is terminal; validated exams are immutable.
// @Tags calendars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse} "Calendar validated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid submission ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 409 {object} dto.ErrorResponse "Submission is not in a submittable state"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendars/{id}/validate [post]
func (c *CalendarController) ValidateSubmission(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Submission")
	if !ok {
		return
	}

	result, err := c.calendarService.Validate(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// RejectSubmission turns down a submitted calendar
// @Summary Reject a submitted calendar
// @Description Rejects a submitted calendar with a reason. Member exams return to draft for amendment and resubmission.
// @Tags calendars
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Param request body dto.RejectCalendarRequest true "Rejection reason"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse} "Calendar rejected successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 409 {object} dto.ErrorResponse "Submission is not in a submittable state"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /calendars/{id}/reject [post]
func (c *CalendarController) RejectSubmission(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Submission")
	if !ok {
		return
	}

	body, ok := ctx.Get(middleware.ContextValidatedBody)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid rejection data")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	req := body.(*dto.RejectCalendarRequest)

	result, err := c.calendarService.Reject(ctx, id, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}
