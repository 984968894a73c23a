package middleware

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jromero/examcal/internal/app/models/dto"
)

// ContextValidatedBody is the context key under which ValidateRequest stores
// the bound request body.
const ContextValidatedBody = "validatedBody"

var validate = validator.New()

// ValidateRequest binds and validates the request body against the given
// model type. A fresh instance is allocated per request; handlers retrieve it
// via ContextValidatedBody instead of binding again.
func ValidateRequest(model interface{}) gin.HandlerFunc {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	return func(c *gin.Context) {
		obj := reflect.New(modelType).Interface()

		if err := c.ShouldBindJSON(obj); err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
			errorDetail = errorDetail.WithDetails(err.Error())
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}

		if err := validate.Struct(obj); err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
			if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
				errorDetail = errorDetail.WithField(fieldErrors[0].Field())
				errorDetail = errorDetail.WithDetails(formatValidationError(fieldErrors[0]))
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextValidatedBody, obj)
		c.Next()
	}
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
