package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jromero/examcal/internal/app/models"
	"github.com/jromero/examcal/internal/app/models/dto"
	"github.com/jromero/examcal/internal/app/repositories"
	"github.com/jromero/examcal/internal/pkg/apperrors"
	"github.com/jromero/examcal/internal/pkg/auth"
	"github.com/jromero/examcal/internal/pkg/logger"
)

// AuthService handles account registration, login and user administration.
type AuthService struct {
	userRepo    *repositories.UserRepository
	programRepo *repositories.ProgramRepository
	jwtService  *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(repos *repositories.Repositories, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:    repos.UserRepository,
		programRepo: repos.ProgramRepository,
		jwtService:  jwtService,
	}
}

// Register creates a new account. PROGRAM_HEAD accounts must name an existing
// program; the affiliation is stored explicitly, never derived.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	role := models.RoleType(req.RoleType)
	if role == models.RoleProgramHead && req.ProgramID == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
			"PROGRAM_HEAD accounts require a programId")
	}
	if req.ProgramID != nil {
		if _, err := s.programRepo.GetByID(ctx, *req.ProgramID); err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrProgramNotFound,
				fmt.Sprintf("program %d not found", *req.ProgramID))
		}
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:  req.Username,
		Password:  hashed,
		Email:     req.Email,
		RoleType:  role,
		ProgramID: req.ProgramID,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.NewCustomError(apperrors.ErrUsernameExists,
				fmt.Sprintf("username %q is taken", req.Username))
		}
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Str("role", req.RoleType).Msg("User registered")
	return user, nil
}

// Login authenticates an account and issues an access token.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		User:        user,
	}, nil
}

// GetUser retrieves an account by id
func (s *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound, fmt.Sprintf("user %d not found", id))
	}
	return user, nil
}

// GetUsers retrieves all accounts
func (s *AuthService) GetUsers(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// DeactivateUser disables an account without deleting it
func (s *AuthService) DeactivateUser(ctx context.Context, id int64) error {
	if err := s.userRepo.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewCustomError(apperrors.ErrUserNotFound, fmt.Sprintf("user %d not found", id))
		}
		return err
	}
	logger.Info().Int64("userId", id).Msg("User deactivated")
	return nil
}
