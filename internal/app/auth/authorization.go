package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jromero/examcal/internal/app/models"
	"github.com/jromero/examcal/internal/app/repositories"
	"github.com/jromero/examcal/internal/pkg/apperrors"
	"github.com/jromero/examcal/internal/pkg/logger"
)

// ErrProgramAccessDenied reports an attempt to operate on a program the
// account does not coordinate.
var ErrProgramAccessDenied = errors.New("you don't have access to this program")

// AuthorizationService decides program-level access: role middleware answers
// "may this role call this endpoint", this service answers "may this account
// touch this particular program".
type AuthorizationService struct {
	userRepo *repositories.UserRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo *repositories.UserRepository) *AuthorizationService {
	return &AuthorizationService{userRepo: userRepo}
}

// ValidateProgramAccess checks whether the account may operate on the given
// program. School services staff may operate on any program; program heads
// only on the program stored against their account. Affiliation is read from
// the account record, never inferred.
func (s *AuthorizationService) ValidateProgramAccess(ctx context.Context, userID, programID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userId", userID).Msg("Error loading user for program access check")
		return fmt.Errorf("failed to check program access: %w", err)
	}

	switch user.RoleType {
	case models.RoleSchoolServices:
		return nil
	case models.RoleProgramHead:
		if user.ProgramID != nil && *user.ProgramID == programID {
			return nil
		}
		return fmt.Errorf("%w: program %d", ErrProgramAccessDenied, programID)
	default:
		return fmt.Errorf("%w: program %d", ErrProgramAccessDenied, programID)
	}
}
