package seed

import (
	"context"
	"errors"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/questionmaster/api/internal/app/models"
	appRepos "github.com/questionmaster/api/internal/app/repositories"
	"github.com/questionmaster/api/internal/pkg/apperrors"
	"github.com/questionmaster/api/internal/pkg/auth"
	"github.com/questionmaster/api/internal/pkg/helpers"
)

const (
	defaultAdminEmail    = "admin@questionmaster.dev"
	defaultAdminPassword = "admin123"
	demoExamSlug         = "enem"
)

// CreateDefaultData creates the default admin account and a demo exam
// with one subject and topic when they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	examRepo := appRepos.NewExamRepository(dbPool)
	subjectRepo := appRepos.NewSubjectRepository(dbPool)
	topicRepo := appRepos.NewTopicRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	if err := createDefaultAdmin(ctx, userRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if err := createDemoExam(ctx, examRepo, subjectRepo, topicRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func createDefaultAdmin(ctx context.Context, userRepo *appRepos.UserRepository, lgr zerolog.Logger) error {
	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin")
		return err
	}
	if exists {
		return nil
	}

	password := defaultAdminPassword
	if fromEnv := os.Getenv("SEED_ADMIN_PASSWORD"); fromEnv != "" {
		password = fromEnv
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	admin := &appModels.User{
		ID:           uuid.New(),
		Role:         appModels.RoleAdmin,
		DisplayName:  helpers.StringPtr("admin"),
		Email:        helpers.StringPtr(defaultAdminEmail),
		PasswordHash: &hash,
	}
	if err := userRepo.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating default admin")
		return err
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
	return nil
}

func createDemoExam(
	ctx context.Context,
	examRepo *appRepos.ExamRepository,
	subjectRepo *appRepos.SubjectRepository,
	topicRepo *appRepos.TopicRepository,
	lgr zerolog.Logger,
) error {
	if _, err := examRepo.GetBySlug(ctx, demoExamSlug); err == nil {
		return nil
	} else if !errors.Is(err, apperrors.ErrExamNotFound) {
		lgr.Error().Err(err).Msg("Error checking for demo exam")
		return err
	}

	exam := &appModels.Exam{
		Name:        "ENEM",
		Slug:        demoExamSlug,
		Institution: helpers.StringPtr("INEP"),
	}
	examID, err := examRepo.Create(ctx, exam)
	if err != nil {
		if errors.Is(err, apperrors.ErrExamSlugExists) {
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating demo exam")
		return err
	}

	subject := &appModels.Subject{Name: "Mathematics", ExamID: &examID}
	subjectID, err := subjectRepo.Create(ctx, subject)
	if err != nil && !errors.Is(err, apperrors.ErrSubjectAlreadyExists) {
		lgr.Error().Err(err).Msg("Error creating demo subject")
		return err
	}

	if subjectID > 0 {
		topic := &appModels.Topic{SubjectID: subjectID, Name: "Geometry"}
		if _, err := topicRepo.Create(ctx, topic); err != nil && !errors.Is(err, apperrors.ErrTopicAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating demo topic")
			return err
		}
	}

	lgr.Info().Str("slug", demoExamSlug).Msg("Demo exam data created")
	return nil
}
