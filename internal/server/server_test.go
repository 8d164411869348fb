package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osint-hub/backend/pkg/graph"
)

func TestCustomValidator(t *testing.T) {
	type tagBody struct {
		Name  string `validate:"required"`
		Color string `validate:"omitempty,hexcolor"`
	}

	v := NewValidator()
	assert.NoError(t, v.Validate(tagBody{Name: "suspect", Color: "#8B5CF6"}))
	assert.Error(t, v.Validate(tagBody{Color: "#8B5CF6"}))
	assert.Error(t, v.Validate(tagBody{Name: "suspect", Color: "purple"}))
}

func TestNewPositionStore(t *testing.T) {
	t.Setenv("POSITION_STORE", "memory")
	store, closeFn, err := NewPositionStore(context.Background())
	require.NoError(t, err)
	defer closeFn()

	scope := graph.Scope{UserID: "u1"}
	require.NoError(t, store.SavePositions(context.Background(), scope, []graph.Node{{ID: "a", Position: graph.Position{X: 1, Y: 2}}}))
	assert.Equal(t, graph.Position{X: 1, Y: 2}, store.LoadPositions(context.Background(), scope)["a"])

	t.Setenv("POSITION_STORE", "file")
	t.Setenv("POSITION_DIR", t.TempDir())
	_, closeFn, err = NewPositionStore(context.Background())
	require.NoError(t, err)
	closeFn()

	t.Setenv("POSITION_STORE", "etcd")
	_, _, err = NewPositionStore(context.Background())
	assert.Error(t, err)
}

func TestHealthRoute(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e, nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}
