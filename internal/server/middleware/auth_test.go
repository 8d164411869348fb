package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testUserID = "5d3c8f0e-2b7a-4a55-8d0b-1f7e9c2a4b61"
)

type stubResolver struct {
	id  string
	err error
}

func (s stubResolver) ResolveUser(context.Context, string) (string, error) {
	return s.id, s.err
}

func hmacKeyfunc(*jwt.Token) (any, error) {
	return []byte(testSecret), nil
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

// serve runs AuthMiddleware for one request and returns the status code and
// the resolved user, if any.
func serve(app *App, authorization string) (int, *AppUser) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/graph", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := &AppContext{Context: e.NewContext(req, rec), App: app}

	var user *AppUser
	handler := AuthMiddleware(func(c echo.Context) error {
		user = c.(*AppContext).User
		return c.NoContent(http.StatusNoContent)
	})
	_ = handler(c)
	return rec.Code, user
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	code, user := serve(&App{Keyfunc: hmacKeyfunc}, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Nil(t, user)

	code, _ = serve(&App{Keyfunc: hmacKeyfunc}, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuthMiddlewareMasterKey(t *testing.T) {
	app := &App{MasterAPIKey: "master", MasterUserID: testUserID}

	code, user := serve(app, "Bearer master")
	require.Equal(t, http.StatusNoContent, code)
	assert.Equal(t, testUserID, user.UserID)
	assert.True(t, user.Master)

	code, _ = serve(app, "Bearer not-master")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuthMiddlewareJWT(t *testing.T) {
	app := &App{Keyfunc: hmacKeyfunc}

	code, user := serve(app, "Bearer "+signToken(t, jwt.MapClaims{"sub": testUserID}))
	require.Equal(t, http.StatusNoContent, code)
	assert.Equal(t, testUserID, user.UserID)
	assert.False(t, user.Master)

	code, user = serve(app, "Bearer "+signToken(t, jwt.MapClaims{"id": testUserID}))
	require.Equal(t, http.StatusNoContent, code)
	assert.Equal(t, testUserID, user.UserID)

	code, _ = serve(app, "Bearer "+signToken(t, jwt.MapClaims{"sub": "42"}))
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = serve(app, "Bearer "+signToken(t, jwt.MapClaims{"email": "a@b.c"}))
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = serve(app, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuthMiddlewareWithoutKeySet(t *testing.T) {
	code, _ := serve(&App{}, "Bearer "+signToken(t, jwt.MapClaims{"sub": testUserID}))
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAuthMiddlewareResolver(t *testing.T) {
	code, user := serve(&App{Resolver: stubResolver{id: testUserID}}, "Bearer opaque")
	require.Equal(t, http.StatusNoContent, code)
	assert.Equal(t, testUserID, user.UserID)

	code, _ = serve(&App{Resolver: stubResolver{err: errors.New("expired")}}, "Bearer opaque")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRequireEntityOwnerRejectsBadInput(t *testing.T) {
	e := echo.New()
	called := false
	handler := RequireEntityOwner(func(c echo.Context) error {
		called = true
		return nil
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/entities/x", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	require.NoError(t, handler(&AppContext{Context: c, App: &App{}, User: &AppUser{UserID: testUserID}}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/api/entities/x", nil), rec)
	require.NoError(t, handler(&AppContext{Context: c, App: &App{}}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.False(t, called)
}
