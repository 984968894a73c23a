package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/jromero/examcal/internal/app/models"
	appRepos "github.com/jromero/examcal/internal/app/repositories"
	"github.com/jromero/examcal/internal/pkg/auth"
)

// Default exam kinds, created when missing.
var defaultExamKinds = []appModels.ExamKind{
	{Name: "Parcial", Description: strPtr("Partial exam held during the term")},
	{Name: "Ordinario", Description: strPtr("Ordinary end-of-term exam")},
	{Name: "Extraordinario", Description: strPtr("Extraordinary make-up exam")},
}

func strPtr(s string) *string { return &s }

// CreateDefaultData seeds the exam kind catalog and a default school services
// account so the workflow is operable on a fresh database.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	examKindRepo := appRepos.NewExamKindRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (exam kinds, admin account)...")
	var finalErr error

	for _, kind := range defaultExamKinds {
		k := kind
		if err := examKindRepo.Create(ctx, &k); err != nil {
			lgr.Error().Err(err).Str("name", k.Name).Msg("Error creating default exam kind")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// Create a default school services account when no such account exists.
	count, err := userRepo.CountByRole(ctx, appModels.RoleSchoolServices)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for school services accounts")
		return errors.Join(finalErr, err)
	}
	if count > 0 {
		lgr.Info().Msg("School services account already exists, skipping creation")
		return finalErr
	}

	lgr.Info().Msg("Creating default school services account...")
	hashedPassword, err := auth.HashPassword("Admin123!")
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return errors.Join(finalErr, err)
	}

	email := "servicios@examcal.edu"
	admin := &appModels.User{
		Username: "servicios_escolares",
		Password: hashedPassword,
		Email:    &email,
		RoleType: appModels.RoleSchoolServices,
		IsActive: true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating default school services account")
		return errors.Join(finalErr, err)
	}
	lgr.Info().Int64("userId", admin.ID).Msg("Default school services account created")

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
