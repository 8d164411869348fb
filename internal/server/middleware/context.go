package middleware

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/osint-hub/backend/internal/queue"
	"github.com/osint-hub/backend/internal/storage"
	pgdb "github.com/osint-hub/backend/pkg/db/pgx"
	"github.com/osint-hub/backend/pkg/graph"
	"github.com/osint-hub/backend/pkg/store"
)

// DBConn is the part of a pgx pool the handlers use.
type DBConn interface {
	pgdb.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TokenResolver maps an access token to the id of its user.
type TokenResolver interface {
	ResolveUser(ctx context.Context, token string) (string, error)
}

type AppUser struct {
	UserID string
	Master bool
}

type App struct {
	DBConn    DBConn
	Queue     queue.Publisher
	Keyfunc   jwt.Keyfunc
	Resolver  TokenResolver
	S3        storage.ObjectStore
	Graph     store.GraphStorage
	Positions graph.PositionStore
	Metrics   *Collector

	MasterAPIKey string
	MasterUserID string

	MaxImageBytes    int64
	MaxDocumentBytes int64
}

type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
