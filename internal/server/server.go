package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osint-hub/backend/internal/queue"
	mid "github.com/osint-hub/backend/internal/server/middleware"
	"github.com/osint-hub/backend/internal/storage"
	"github.com/osint-hub/backend/internal/util"
	"github.com/osint-hub/backend/pkg/logger"
	"github.com/osint-hub/backend/pkg/store/positions"
	pgstore "github.com/osint-hub/backend/pkg/store/pgx"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/go-playground/validator"
	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// RunMigrations applies every pending migration found in dir.
func RunMigrations(dir, databaseURL string) error {
	m, err := migrate.New("file://"+dir, databaseURL)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// NewPositionStore builds the node position store selected by
// POSITION_STORE: redis, file or memory.
func NewPositionStore(ctx context.Context) (*positions.Store, func(), error) {
	switch backend := util.GetEnvString("POSITION_STORE", "redis"); backend {
	case "redis":
		kv, err := positions.NewRedisKV(ctx, util.GetEnvString("REDIS_ADDR", "localhost:6379"))
		if err != nil {
			return nil, nil, err
		}
		return positions.New(kv), func() { _ = kv.Close() }, nil
	case "file":
		kv, err := positions.NewFileKV(util.GetEnvString("POSITION_DIR", "./data/positions"))
		if err != nil {
			return nil, nil, err
		}
		return positions.New(kv), func() {}, nil
	case "memory":
		return positions.New(positions.NewMemoryKV()), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown POSITION_STORE %q", backend)
	}
}

func newAuth(ctx context.Context, app *mid.App) error {
	switch provider := util.GetEnvString("AUTH_PROVIDER", "jwks"); provider {
	case "supabase":
		resolver, err := mid.NewSupabaseResolver(util.GetEnv("SUPABASE_URL"), util.GetEnv("SUPABASE_SERVICE_ROLE_KEY"))
		if err != nil {
			return fmt.Errorf("create supabase client: %w", err)
		}
		app.Resolver = resolver
	case "jwks":
		jwksUrl := util.GetEnv("AUTH_URL") + "/jwks"
		k, err := keyfunc.NewDefaultCtx(ctx, []string{jwksUrl})
		if err != nil {
			return fmt.Errorf("load jwks keys: %w", err)
		}
		app.Keyfunc = k.Keyfunc
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", provider)
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = NewValidator()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	databaseURL := util.GetEnv("DATABASE_URL")
	if err := RunMigrations(util.GetEnvString("MIGRATIONS_PATH", "migrations"), databaseURL); err != nil {
		logger.Fatal("Failed to run migrations", "err", err)
	}

	conn, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}
	defer conn.Close()

	que := queue.Init()
	defer que.Close()
	ch, err := que.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	if err := queue.SetupQueues(ch, queue.Queues); err != nil {
		logger.Fatal("Failed to set up queues", "err", err)
	}

	s3, err := storage.NewS3Client(ctx)
	if err != nil {
		logger.Fatal("Failed to create S3 client", "err", err)
	}

	positionStore, closePositions, err := NewPositionStore(ctx)
	if err != nil {
		logger.Fatal("Failed to open position store", "err", err)
	}
	defer closePositions()

	metrics := mid.NewCollector("osint")

	app := &mid.App{
		DBConn:           conn,
		Queue:            queue.NewChannelPublisher(ch),
		S3:               s3,
		Graph:            pgstore.NewGraphDBStorageWithConnection(conn),
		Positions:        positionStore,
		Metrics:          metrics,
		MasterAPIKey:     util.GetEnv("MASTER_API_KEY"),
		MasterUserID:     util.GetEnv("MASTER_USER_ID"),
		MaxImageBytes:    util.GetEnvBytes("MAX_IMAGE_BYTES", 5<<20),
		MaxDocumentBytes: util.GetEnvBytes("MAX_DOCUMENT_BYTES", 50<<20),
	}
	if err := newAuth(ctx, app); err != nil {
		logger.Fatal("Failed to set up authentication", "err", err)
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(metrics.Middleware())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dB", max(app.MaxDocumentBytes, app.MaxImageBytes)+(1<<20))))

	RegisterRoutes(e, metrics)

	go func() {
		port := util.GetEnvString("PORT", "8080")
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
