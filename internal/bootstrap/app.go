package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "tradecase-backend/internal/auth"
	"tradecase-backend/internal/casedocs"
	"tradecase-backend/internal/cases"
	"tradecase-backend/internal/gendocs"
	"tradecase-backend/internal/llm"
	openai "tradecase-backend/internal/llm/openai"
	"tradecase-backend/internal/notify"
	"tradecase-backend/internal/notify/sendgrid"
	"tradecase-backend/internal/render"
	"tradecase-backend/internal/shared/config"
	"tradecase-backend/internal/shared/server"
	"tradecase-backend/internal/shared/storage/db"
	"tradecase-backend/internal/shared/storage/object"
	localstore "tradecase-backend/internal/shared/storage/object/local"
	s3store "tradecase-backend/internal/shared/storage/object/s3"
	"tradecase-backend/internal/strategy"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Mailer notify.Mailer

	CasesRepo     cases.Repo
	EvidenceRepo  casedocs.Repo
	DocumentsRepo gendocs.Repo
	NotifyRepo    notify.Repo

	CasesService     *cases.Service
	EvidenceService  *casedocs.Service
	DocumentsService *gendocs.Service
	NotifyService    *notify.Service
	Sweeper          *notify.Sweeper

	GoogleAuth *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB := buildDB(ctx, cfg)

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	mailer, err := buildMailer(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Mailer: mailer,
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		GoogleAuth:    app.GoogleAuth,
		Cases:         cases.NewHandler(app.CasesService),
		Evidence:      casedocs.NewHandler(app.EvidenceService),
		Documents:     gendocs.NewHandler(app.DocumentsService),
		Notifications: notify.NewHandler(app.NotifyService),
	})
	return app, nil
}

// buildDB connects and migrates when DATABASE_URL is set; otherwise the app
// runs on in-memory repos. Connection failures fall back the same way
// outside production.
func buildDB(ctx context.Context, cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		return nil
	}
	return conn
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	if cfg.ObjectStoreType == "s3" {
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	}
	return localstore.New(cfg.LocalStoreDir), nil
}

func buildMailer(cfg config.Config) (notify.Mailer, error) {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if cfg.MailProvider != "sendgrid" || apiKey == "" || cfg.MailFromEmail == "" {
		return notify.NoopMailer{}, nil
	}
	return sendgrid.New(apiKey, cfg.MailFromEmail, cfg.MailFromName)
}

func buildServices(app *App) error {
	var (
		caseRepo     cases.Repo
		evidenceRepo casedocs.Repo
		docRepo      gendocs.Repo
		notifyRepo   notify.Repo
	)
	if app.DB != nil {
		caseRepo = &cases.PGRepo{DB: app.DB}
		evidenceRepo = &casedocs.PGRepo{DB: app.DB}
		docRepo = &gendocs.PGRepo{DB: app.DB}
		notifyRepo = &notify.PGRepo{DB: app.DB}
	} else {
		caseRepo = cases.NewMemoryRepo()
		evidenceRepo = casedocs.NewMemoryRepo()
		docRepo = gendocs.NewMemoryRepo()
		notifyRepo = notify.NewMemoryRepo()
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.LLMProvider == "openai" {
		if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
			openaiClient, err := openai.NewClient(apiKey, app.Config.LLMModel)
			if err != nil {
				return err
			}
			llmClient = openaiClient
		}
	}

	caseSvc := &cases.Service{Repo: caseRepo}
	evidenceSvc := &casedocs.Service{Repo: evidenceRepo, Cases: caseRepo, Store: app.Store}
	notifySvc := &notify.Service{Repo: notifyRepo}
	docSvc := &gendocs.Service{
		Repo:          docRepo,
		Cases:         caseRepo,
		Strategy:      &strategy.Service{LLM: llmClient},
		Renderer:      &render.Renderer{},
		Store:         app.Store,
		Mailer:        app.Mailer,
		Notifications: notifySvc,
		Evidence:      evidenceSvc,
	}

	app.CasesRepo = caseRepo
	app.EvidenceRepo = evidenceRepo
	app.DocumentsRepo = docRepo
	app.NotifyRepo = notifyRepo
	app.CasesService = caseSvc
	app.EvidenceService = evidenceSvc
	app.DocumentsService = docSvc
	app.NotifyService = notifySvc
	app.Sweeper = &notify.Sweeper{Cases: caseRepo, Svc: notifySvc}
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
	)
	return nil
}
