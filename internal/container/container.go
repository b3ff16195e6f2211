package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nexcruit/ats-backend/config"
	"github.com/nexcruit/ats-backend/internal/application"
	repo "github.com/nexcruit/ats-backend/internal/domain/repository"
	"github.com/nexcruit/ats-backend/internal/infrastructure/cache"
	"github.com/nexcruit/ats-backend/internal/infrastructure/googleauth"
	"github.com/nexcruit/ats-backend/internal/infrastructure/mongodb"
	pginfra "github.com/nexcruit/ats-backend/internal/infrastructure/postgres"
	"github.com/nexcruit/ats-backend/internal/infrastructure/search"
	fileinfra "github.com/nexcruit/ats-backend/internal/infrastructure/storage"
	"github.com/nexcruit/ats-backend/pkg/helpers"
	"github.com/nexcruit/ats-backend/pkg/resume"
)

// Infra holds the clients cmd/main.go connected. Mongo, Notifier and Meetings are required;
// the rest are optional and switch their feature off when nil.
type Infra struct {
	Mongo    *mongodb.Store
	Redis    *redis.Client
	Audit    *pgxpool.Pool
	ES       *elasticsearch.Client
	GCS      *storage.Client
	Notifier application.Notifier
	Meetings application.MeetingScheduler
}

// Container is the wired application: one instance per process, built once at startup.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Infra  Infra
	JWT    *helpers.JWTManager

	Auth        *application.AuthService
	Candidates  *application.CandidateService
	Interviews  *application.InterviewService
	Reminders   *application.ReminderService
	Assessments *application.AssessmentService
	Comments    *application.CommentService
	Sections    *application.SectionService
	Letters     *application.LetterService
	Offers      *application.OfferService
	Templates   *application.TemplateService
	Stats       *application.StatsService
	Export      *application.ExportService
}

func New(cfg *config.Config, logger *logrus.Logger, infra Infra) *Container {
	jwt := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTActionSecret, cfg.AccessTTL, cfg.RefreshTTL)

	users := mongodb.NewUserRepository(infra.Mongo)
	candidates := mongodb.NewCandidateRepository(infra.Mongo)
	interviews := mongodb.NewInterviewRepository(infra.Mongo)
	assessments := mongodb.NewAssessmentRepository(infra.Mongo)
	letters := mongodb.NewLetterRepository(infra.Mongo)
	offers := mongodb.NewOfferRepository(infra.Mongo)
	templates := mongodb.NewOfferTemplateRepository(infra.Mongo)
	jobs := mongodb.NewJobRepository(infra.Mongo)

	// Optional adapters stay untyped nil interfaces when their backend is absent.
	var sessions application.SessionStore
	if infra.Redis != nil {
		sessions = cache.NewSessionStore(infra.Redis)
	}
	var audit repo.AuditRepository
	if infra.Audit != nil {
		audit = pginfra.NewAuditRepository(infra.Audit)
	}
	var index application.CandidateIndex
	if infra.ES != nil {
		index = search.NewCandidateIndex(infra.ES, cfg.ESCandidatesIndex)
	}
	files := fileStorage(cfg, infra.GCS, logger)

	c := &Container{Config: cfg, Logger: logger, Infra: infra, JWT: jwt}
	c.Auth = application.NewAuthService(users, jwt, sessions, infra.Notifier, googleauth.NewVerifier(cfg.GoogleClientID), audit, cfg, logger)
	c.Candidates = application.NewCandidateService(candidates, letters, assessments, files, resume.NewParser(), index, infra.Notifier, cfg, logger)
	c.Interviews = application.NewInterviewService(interviews, candidates, jobs, infra.Meetings, infra.Notifier, cfg, logger)
	c.Reminders = application.NewReminderService(jobs, interviews, infra.Notifier, cfg, logger)
	c.Assessments = application.NewAssessmentService(assessments, candidates, files, logger)
	c.Comments = application.NewCommentService(mongodb.NewCommentRepository(infra.Mongo), candidates, users)
	c.Sections = application.NewSectionService(mongodb.NewSectionRepository(infra.Mongo))
	c.Letters = application.NewLetterService(letters, candidates, infra.Notifier, cfg, logger)
	c.Offers = application.NewOfferService(offers, templates, candidates, infra.Notifier, logger)
	c.Templates = application.NewTemplateService(templates)
	c.Stats = application.NewStatsService(candidates, interviews, letters, offers)
	c.Export = application.NewExportService(c.Candidates)
	return c
}

func fileStorage(cfg *config.Config, gcs *storage.Client, logger logrus.FieldLogger) application.FileStorage {
	if cfg.StorageDriver == "gcs" {
		if gcs != nil && cfg.GCSBucket != "" {
			return fileinfra.NewGCS(gcs, cfg.GCSBucket)
		}
		logger.Warn("gcs storage requested without a client or bucket, using local uploads")
	}
	return fileinfra.NewLocal(cfg.UploadDir)
}

// LocalUploads reports whether uploaded files are served from UploadDir.
func (c *Container) LocalUploads() bool {
	return c.Config.StorageDriver != "gcs" || c.Infra.GCS == nil || c.Config.GCSBucket == ""
}
