package routes

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/osint-hub/backend/internal/server/middleware"
	"github.com/osint-hub/backend/pkg/common"
	"github.com/osint-hub/backend/pkg/logger"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// respondError writes the JSON response of err. Validation failures are
// 400, unknown records 404 and failures of the store or object storage 502.
func respondError(c echo.Context, err error) error {
	var v *common.ValidationError
	switch {
	case errors.As(err, &v):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: v.Message, Code: v.Code})
	case errors.Is(err, common.ErrNotFound), errors.Is(err, pgx.ErrNoRows):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "Not found"})
	case errors.Is(err, common.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
	case errors.Is(err, common.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorResponse{Error: "Forbidden"})
	case common.IsRemote(err):
		logger.Error("Remote call failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "Upstream service failed"})
	default:
		logger.Error("Request failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: message})
}

// remote wraps a failed database call so respondError reports it as an
// upstream failure.
func remote(op string, err error) error {
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	return common.NewRemoteError(op, err)
}

func appContext(c echo.Context) *middleware.AppContext {
	return c.(*middleware.AppContext)
}

// currentUser returns the id of the authenticated user.
func currentUser(c echo.Context) (uuid.UUID, error) {
	user := appContext(c).User
	if user == nil {
		return uuid.Nil, common.ErrUnauthenticated
	}
	id, err := uuid.Parse(user.UserID)
	if err != nil {
		return uuid.Nil, common.ErrUnauthenticated
	}
	return id, nil
}

func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, common.ErrNotFound
	}
	return id, nil
}
