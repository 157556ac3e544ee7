package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"docintake-backend/internal/analyzer"
	"docintake-backend/internal/analyzer/formrec"
	"docintake-backend/internal/config"
	"docintake-backend/internal/documents"
	"docintake-backend/internal/shared/server"
	"docintake-backend/internal/shared/storage/db"
	"docintake-backend/internal/shared/storage/object"
	localstore "docintake-backend/internal/shared/storage/object/local"
	s3store "docintake-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Local            *localstore.Store
	Cloud            object.BlobStore
	Analyzer         analyzer.Analyzer
	DocumentsRepo    documents.Repo
	DocumentsService *documents.Service
	DocumentsHandler *documents.Handler
}

// Build prepares shared dependencies and wires the router. The storage and
// analyzer strategies are chosen here, once, from configuration presence.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	localStore := localstore.New(cfg.UploadDir)

	var cloud object.BlobStore
	if cfg.CloudStorageEnabled() {
		cloud, err = s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, fmt.Errorf("build s3 store: %w", err)
		}
	}

	var docAnalyzer analyzer.Analyzer
	if cfg.CloudAnalyzerEnabled() {
		docAnalyzer, err = formrec.NewClient(cfg.AnalyzerEndpoint, cfg.AnalyzerKey)
		if err != nil {
			return nil, fmt.Errorf("build analyzer client: %w", err)
		}
	} else {
		docAnalyzer = analyzer.NewMock()
	}

	var repo documents.Repo
	if sqlDB != nil {
		repo = &documents.PGRepo{DB: sqlDB}
	} else {
		repo = documents.NewMemoryRepo()
	}

	svc := &documents.Service{
		Local:    localStore,
		Cloud:    cloud,
		Repo:     repo,
		Analyzer: docAnalyzer,
	}
	handler := documents.NewHandler(svc)

	app := &App{
		Config:           cfg,
		DB:               sqlDB,
		Local:            localStore,
		Cloud:            cloud,
		Analyzer:         docAnalyzer,
		DocumentsRepo:    repo,
		DocumentsService: svc,
		DocumentsHandler: handler,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:    cfg,
		Documents: handler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repository")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repository: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
