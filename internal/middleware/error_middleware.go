package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	appAuth "github.com/jromero/examcal/internal/app/auth"
	"github.com/jromero/examcal/internal/app/models/dto"
	"github.com/jromero/examcal/internal/app/scheduling"
	"github.com/jromero/examcal/internal/pkg/apperrors"
	"github.com/jromero/examcal/internal/pkg/logger"
)

// HandleAPIError maps domain errors onto HTTP responses. Scheduling errors
// carry machine-checkable codes so clients can react to the specific
// constraint that failed.
func HandleAPIError(c *gin.Context, err error) {
	// Typed scheduling errors first: they carry structured context.
	var conflict *scheduling.ConflictError
	if errors.As(err, &conflict) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeScheduleConflict, conflict.Error()).
			WithDetails(map[string]interface{}{
				"resourceKind": conflict.Kind,
				"resourceId":   conflict.ResourceID,
				"date":         conflict.Date.Format(scheduling.DateLayout),
				"requested":    conflict.Requested.String(),
				"blocking":     conflict.Blocking.String(),
			})
		c.JSON(409, dto.NewErrorResponse(errorDetail))
		return
	}

	var incomplete *scheduling.IncompleteAssignmentError
	if errors.As(err, &incomplete) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeIncompleteAssignment, incomplete.Error()).
			WithDetails(map[string]interface{}{
				"missingSinodal": incomplete.MissingSinodal,
				"notDraft":       incomplete.NotDraft,
			})
		c.JSON(409, dto.NewErrorResponse(errorDetail))
		return
	}

	var transition *scheduling.TransitionError
	if errors.As(err, &transition) {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeIllegalTransition, transition.Error()).
			WithDetails(map[string]interface{}{
				"from": transition.From,
				"to":   transition.To,
			})
		c.JSON(409, dto.NewErrorResponse(errorDetail))
		return
	}

	switch {
	case errors.Is(err, scheduling.ErrSelfAssignment):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeSelfAssignment, err.Error())))
	case errors.Is(err, scheduling.ErrIneligibleProfessor):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeIneligibleSinodal, err.Error())))
	case errors.Is(err, scheduling.ErrSinodalAlreadySet),
		errors.Is(err, scheduling.ErrSinodalNotAssigned):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeScheduleConflict, err.Error())))
	case errors.Is(err, scheduling.ErrCourseNotFound),
		errors.Is(err, scheduling.ErrRoomNotFound),
		errors.Is(err, scheduling.ErrProfessorNotFound):
		c.JSON(404, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())))
	case errors.Is(err, scheduling.ErrInvalidInterval):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))

	case errors.Is(err, apperrors.ErrProgramNotFound),
		errors.Is(err, apperrors.ErrCohortNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrProfessorNotFound),
		errors.Is(err, apperrors.ErrRoomNotFound),
		errors.Is(err, apperrors.ErrExamKindNotFound),
		errors.Is(err, apperrors.ErrExamNotFound),
		errors.Is(err, apperrors.ErrSubmissionNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.NewErrorResponse(errorDetailFor(dto.ErrorCodeResourceNotFound, err)))
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(409, dto.NewErrorResponse(errorDetailFor(dto.ErrorCodeScheduleConflict, err)))
	case errors.Is(err, apperrors.ErrUsernameExists),
		errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.NewErrorResponse(errorDetailFor(dto.ErrorCodeResourceAlreadyExists, err)))
	case errors.Is(err, apperrors.ErrNoDraftExams),
		errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(400, dto.NewErrorResponse(errorDetailFor(dto.ErrorCodeValidationFailed, err)))
	case errors.Is(err, apperrors.ErrPermissionDenied),
		errors.Is(err, appAuth.ErrProgramAccessDenied):
		c.JSON(403, dto.NewErrorResponse(errorDetailFor(dto.ErrorCodeForbidden, err)))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))
	case errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Account is disabled")))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		c.JSON(500, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}

// errorDetailFor builds an error detail, carrying over any code and details
// attached to a CustomError.
func errorDetailFor(code dto.ErrorCode, err error) *dto.ErrorDetail {
	errorDetail := dto.NewErrorDetail(code, err.Error())

	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		if custom.Code != "" {
			errorDetail.Code = dto.ErrorCode(custom.Code)
		}
		if custom.Details != nil {
			errorDetail = errorDetail.WithDetails(custom.Details)
		}
	}
	return errorDetail
}
