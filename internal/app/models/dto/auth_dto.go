package dto

import "github.com/jromero/examcal/internal/app/models"

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username  string  `json:"username" binding:"required,min=3,max=64"`
	Password  string  `json:"password" binding:"required,min=8"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	RoleType  string  `json:"roleType" binding:"required,oneof=SCHOOL_SERVICES PROGRAM_HEAD SECRETARY"`
	ProgramID *int64  `json:"programId,omitempty"`
}

// LoginRequest authenticates an account.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType" example:"Bearer"`
	ExpiresIn   int          `json:"expiresIn"`
	User        *models.User `json:"user"`
}
