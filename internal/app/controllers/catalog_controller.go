package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jromero/examcal/internal/app/models"
	"github.com/jromero/examcal/internal/app/models/dto"
	"github.com/jromero/examcal/internal/app/services"
	"github.com/jromero/examcal/internal/middleware"
)

// CatalogController exposes the resource registry listings
type CatalogController struct {
	catalogService *services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// GetPrograms retrieves all programs
// @Summary List programs
// @Description Retrieves all academic programs
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Program} "Programs retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs [get]
func (c *CatalogController) GetPrograms(ctx *gin.Context) {
	programs, err := c.catalogService.GetPrograms(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      programs,
		Timestamp: time.Now(),
	})
}

// GetProgramByID retrieves one program
// @Summary Get program by ID
// @Description Retrieves a specific academic program
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=models.Program} "Program retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid program ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id} [get]
func (c *CatalogController) GetProgramByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Program")
	if !ok {
		return
	}

	program, err := c.catalogService.GetProgram(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      program,
		Timestamp: time.Now(),
	})
}

// GetProgramCohorts retrieves the cohorts of a program
// @Summary List program cohorts
// @Description Retrieves all cohorts belonging to a specific program
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Cohort} "Cohorts retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid program ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/cohorts [get]
func (c *CatalogController) GetProgramCohorts(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Program")
	if !ok {
		return
	}

	cohorts, err := c.catalogService.GetCohorts(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      cohorts,
		Timestamp: time.Now(),
	})
}

// GetCourses retrieves courses
// @Summary List courses
// @Description Retrieves courses, optionally filtered by program
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param programId query int false "Filter by program ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CatalogController) GetCourses(ctx *gin.Context) {
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

	courses, err := c.catalogService.GetCourses(ctx, programID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courses,
		Timestamp: time.Now(),
	})
}

// GetProfessors retrieves all professors
// @Summary List professors
// @Description Retrieves all professors with their subject grouping memberships
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Professor} "Professors retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /professors [get]
func (c *CatalogController) GetProfessors(ctx *gin.Context) {
	professors, err := c.catalogService.GetProfessors(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      professors,
		Timestamp: time.Now(),
	})
}

// GetRooms retrieves rooms
// @Summary List rooms
// @Description Retrieves rooms ordered by ascending capacity, optionally filtered by type
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter by room type" Enums(STANDARD, HALL, LAB)
// @Success 200 {object} dto.APIResponse{data=[]models.Room} "Rooms retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid room type"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /rooms [get]
func (c *CatalogController) GetRooms(ctx *gin.Context) {
	var roomType *models.RoomType
	if raw := ctx.Query("type"); raw != "" {
		value := models.RoomType(raw)
		switch value {
		case models.RoomStandard, models.RoomHall, models.RoomLab:
			roomType = &value
		default:
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid room type").WithField("type")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
	}

	rooms, err := c.catalogService.GetRooms(ctx, roomType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      rooms,
		Timestamp: time.Now(),
	})
}

// GetExamKinds retrieves all exam kinds
// @Summary List exam kinds
// @Description Retrieves all exam kinds (partial, ordinary, extraordinary, ...)
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ExamKind} "Exam kinds retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /exam-kinds [get]
func (c *CatalogController) GetExamKinds(ctx *gin.Context) {
	kinds, err := c.catalogService.GetExamKinds(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      kinds,
		Timestamp: time.Now(),
	})
}

// GetSubjectGroupings retrieves all subject groupings
// @Summary List subject groupings
// @Description Retrieves all subject groupings with their program associations
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.SubjectGrouping} "Subject groupings retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /subject-groupings [get]
func (c *CatalogController) GetSubjectGroupings(ctx *gin.Context) {
	groupings, err := c.catalogService.GetSubjectGroupings(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      groupings,
		Timestamp: time.Now(),
	})
}
