package services

import (
	"github.com/jromero/examcal/internal/app/repositories"
	"github.com/jromero/examcal/internal/app/scheduling"
	"github.com/jromero/examcal/internal/db"
	"github.com/jromero/examcal/internal/pkg/auth"
)

// Services holds all the service instances
type Services struct {
	AuthService     *AuthService
	CatalogService  *CatalogService
	ExamService     *ExamService
	CalendarService *CalendarService
}

// NewServices initializes all services over a shared conflict index.
func NewServices(database *db.PostgresDB, repos *repositories.Repositories, jwtService *auth.JWTService, index *scheduling.ConflictIndex) *Services {
	return &Services{
		AuthService:     NewAuthService(repos, jwtService),
		CatalogService:  NewCatalogService(repos),
		ExamService:     NewExamService(repos, index),
		CalendarService: NewCalendarService(database, repos),
	}
}
