package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jromero/examcal/internal/app/models/dto"
	"github.com/jromero/examcal/internal/pkg/auth"
)

// Context keys set by JWTAuth.
const (
	ContextUserID    = "userID"
	ContextUsername  = "username"
	ContextRoleType  = "roleType"
	ContextProgramID = "programID"
)

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// JWTAuth middleware for JWT token validation
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		var tokenString string
		// Accept a raw JWT without the Bearer prefix (Swagger UI convenience).
		if strings.Count(authHeader, ".") == 2 && !strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = authHeader
		} else {
			var err error
			tokenString, err = auth.ExtractBearerToken(authHeader)
			if err != nil {
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
				errorDetail = errorDetail.WithDetails("Invalid token format")
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
				return
			}
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
			errorDetail = errorDetail.WithDetails(errorDetails)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRoleType, claims.RoleType)
		if claims.ProgramID != nil {
			c.Set(ContextProgramID, *claims.ProgramID)
		}

		c.Next()
	}
}

// RoleRequired middleware to check if the user holds one of the given roles
func (m *AuthMiddleware) RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRoleType)
		if !exists {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("User role not found")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		roleStr, ok := role.(string)
		if ok {
			for _, allowed := range roles {
				if roleStr == allowed {
					c.Next()
					return
				}
			}
		}

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
		errorDetail = errorDetail.WithDetails("You don't have sufficient permissions for this operation")
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
	}
}
