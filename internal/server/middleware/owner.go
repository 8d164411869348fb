package middleware

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	pgdb "github.com/osint-hub/backend/pkg/db/pgx"
	"github.com/osint-hub/backend/pkg/logger"
)

const entityKey = "entity"

// RequireEntityOwner loads the entity named by the :id path parameter and
// rejects the request unless it belongs to the current user. Foreign and
// unknown entities both yield 404.
func RequireEntityOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ac := c.(*AppContext)
		if ac.User == nil {
			return unauthorized(c)
		}

		entityID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid entity id"})
		}
		userID, err := uuid.Parse(ac.User.UserID)
		if err != nil {
			return unauthorized(c)
		}

		entity, err := pgdb.New(ac.App.DBConn).GetEntity(c.Request().Context(), pgdb.GetEntityParams{
			ID:     entityID,
			UserID: userID,
		})
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Entity not found"})
		}
		if err != nil {
			logger.Error("Failed to load entity", "entity_id", entityID, "err", err)
			return c.JSON(http.StatusBadGateway, map[string]string{"error": "Failed to load entity"})
		}

		c.Set(entityKey, entity)
		return next(c)
	}
}

// OwnedEntity returns the entity loaded by RequireEntityOwner.
func OwnedEntity(c echo.Context) pgdb.Entity {
	entity, _ := c.Get(entityKey).(pgdb.Entity)
	return entity
}
