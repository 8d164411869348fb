package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/supabase-community/supabase-go"

	"github.com/osint-hub/backend/pkg/logger"
)

var errInvalidUserID = errors.New("invalid user id claim")

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
}

// AuthMiddleware resolves the bearer token of the request into an AppUser.
// The master API key maps to MasterUserID; any other token is checked by
// the configured TokenResolver or, without one, verified as a JWT against
// the JWKS key set.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthorized(c)
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		ac := c.(*AppContext)
		app := ac.App

		// Master API Key bypass
		if app.MasterAPIKey != "" && app.MasterUserID != "" && token == app.MasterAPIKey {
			ac.User = &AppUser{UserID: app.MasterUserID, Master: true}
			return next(c)
		}

		var (
			userID string
			err    error
		)
		if app.Resolver != nil {
			userID, err = app.Resolver.ResolveUser(c.Request().Context(), token)
		} else {
			userID, err = userFromJWT(token, app.Keyfunc)
		}
		if err != nil {
			logger.Debug("Rejected token", "err", err)
			return unauthorized(c)
		}
		if _, err := uuid.Parse(userID); err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid user ID"})
		}

		ac.User = &AppUser{UserID: userID}
		return next(c)
	}
}

func userFromJWT(token string, keyfunc jwt.Keyfunc) (string, error) {
	if keyfunc == nil {
		return "", errors.New("no key set configured")
	}
	parsed, err := jwt.Parse(token, keyfunc)
	if err != nil {
		return "", err
	}
	if !parsed.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("unexpected claims")
	}

	for _, name := range []string{"sub", "id"} {
		if id, ok := claims[name].(string); ok && id != "" {
			return id, nil
		}
	}
	return "", errInvalidUserID
}

// SupabaseResolver checks tokens against the Supabase auth API.
type SupabaseResolver struct {
	client *supabase.Client
}

func NewSupabaseResolver(url, serviceKey string) (*SupabaseResolver, error) {
	client, err := supabase.NewClient(url, serviceKey, nil)
	if err != nil {
		return nil, err
	}
	return &SupabaseResolver{client: client}, nil
}

func (r *SupabaseResolver) ResolveUser(_ context.Context, token string) (string, error) {
	user, err := r.client.Auth.WithToken(token).GetUser()
	if err != nil {
		return "", err
	}
	return user.ID.String(), nil
}
