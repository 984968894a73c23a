package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jromero/examcal/internal/app/models/dto"
	"github.com/jromero/examcal/internal/app/services"
	"github.com/jromero/examcal/internal/middleware"
)

// AuthController handles authentication and user administration
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login authenticates an account
// @Summary Log in
// @Description Authenticates a user and issues a bearer access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials or disabled account"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}

// Register creates a new account
// @Summary Register an account
// @Description Creates a new account. Only school services staff can register accounts; PROGRAM_HEAD accounts must name the program they coordinate.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterRequest true "Account information"
// @Success 201 {object} dto.APIResponse{data=models.User} "Account created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 409 {object} dto.ErrorResponse "Username already taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	user, err := c.authService.Register(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      user,
		Timestamp: time.Now(),
	})
}

// GetCurrentUser retrieves the authenticated account
// @Summary Get current user
// @Description Retrieves the account behind the presented token
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.User} "User retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/me [get]
func (c *AuthController) GetCurrentUser(ctx *gin.Context) {
	user, err := c.authService.GetUser(ctx, ctx.GetInt64(middleware.ContextUserID))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      user,
		Timestamp: time.Now(),
	})
}

// GetUsers lists all accounts
// @Summary List users
// @Description Retrieves all accounts
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.User} "Users retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [get]
func (c *AuthController) GetUsers(ctx *gin.Context) {
	users, err := c.authService.GetUsers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      users,
		Timestamp: time.Now(),
	})
}

// GetUserByID retrieves one account
// @Summary Get user by ID
// @Description Retrieves a specific account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=models.User} "User retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [get]
func (c *AuthController) GetUserByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "User")
	if !ok {
		return
	}

	user, err := c.authService.GetUser(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      user,
		Timestamp: time.Now(),
	})
}

// DeactivateUser disables an account
// @Summary Deactivate a user
// @Description Disables an account without deleting it
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "User deactivated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{id} [delete]
func (c *AuthController) DeactivateUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "User")
	if !ok {
		return
	}

	if err := c.authService.DeactivateUser(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "User deactivated"},
		Timestamp: time.Now(),
	})
}
