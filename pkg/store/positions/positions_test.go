package positions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osint-hub/backend/pkg/common"
	"github.com/osint-hub/backend/pkg/graph"
)

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingKV) Set(context.Context, string, []byte) error  { return f.err }

var scope = graph.Scope{UserID: "u1"}

func TestScopedKey(t *testing.T) {
	assert.Equal(t, "graph-node-positions:u1:default", ScopedKey(scope))
	assert.Equal(t, "graph-node-positions:u1:tablet", ScopedKey(graph.Scope{UserID: "u1", ClientID: "tablet"}))
}

func TestLoadPositions_Missing(t *testing.T) {
	s := New(NewMemoryKV())
	got := s.LoadPositions(context.Background(), scope)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadPositions_Malformed(t *testing.T) {
	for name, raw := range map[string]string{
		"not json":      "{{{",
		"null":          "null",
		"array":         "[1,2]",
		"number":        `{"a": 5}`,
		"null entry":    `{"a": null}`,
		"empty entry":   `{"a": {}}`,
		"missing y":     `{"a": {"x": 1}}`,
		"one bad entry": `{"a": {"x": 1, "y": 2}, "b": {"y": 3}}`,
	} {
		t.Run(name, func(t *testing.T) {
			kv := NewMemoryKV()
			require.NoError(t, kv.Set(context.Background(), ScopedKey(scope), []byte(raw)))
			got := New(kv).LoadPositions(context.Background(), scope)
			assert.Empty(t, got)
		})
	}
}

func TestLoadPositions_BackendFailure(t *testing.T) {
	s := New(failingKV{err: errors.New("connection refused")})
	assert.Empty(t, s.LoadPositions(context.Background(), scope))
}

func TestSaveThenLoad(t *testing.T) {
	s := New(NewMemoryKV())
	nodes := []graph.Node{
		{ID: "a", Position: graph.Position{X: 1, Y: 2}},
		{ID: "b", Position: graph.Position{X: -3.5, Y: 4}},
	}
	require.NoError(t, s.SavePositions(context.Background(), scope, nodes))

	got := s.LoadPositions(context.Background(), scope)
	assert.Equal(t, graph.Positions{
		"a": {X: 1, Y: 2},
		"b": {X: -3.5, Y: 4},
	}, got)

	other := s.LoadPositions(context.Background(), graph.Scope{UserID: "u2"})
	assert.Empty(t, other)
}

func TestSaveReplaces(t *testing.T) {
	s := New(NewMemoryKV())
	ctx := context.Background()
	require.NoError(t, s.SavePositions(ctx, scope, []graph.Node{{ID: "a"}, {ID: "b"}}))
	require.NoError(t, s.SavePositions(ctx, scope, []graph.Node{{ID: "c", Position: graph.Position{X: 9}}}))

	assert.Equal(t, graph.Positions{"c": {X: 9}}, s.LoadPositions(ctx, scope))
}

func TestSavePositions_RemoteError(t *testing.T) {
	s := New(failingKV{err: errors.New("down")})
	err := s.SavePositions(context.Background(), scope, []graph.Node{{ID: "a"}})
	require.Error(t, err)
	assert.True(t, common.IsRemote(err))
}

func TestDecode(t *testing.T) {
	got, err := Decode("k", nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Decode("k", []byte("oops"))
	var malformed *common.MalformedCacheError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "k", malformed.Key)

	got, err = Decode("k", []byte(`{"x":{"x":10,"y":20}}`))
	require.NoError(t, err)
	assert.Equal(t, graph.Position{X: 10, Y: 20}, got["x"])

	_, err = Decode("k", []byte(`{"x":null}`))
	require.ErrorAs(t, err, &malformed)
}

func TestMalformedEntryFallsBackToCircle(t *testing.T) {
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), ScopedKey(scope), []byte(`{"a": {"x": 5}}`)))

	saved := New(kv).LoadPositions(context.Background(), scope)
	g := graph.BuildGraph([]common.Entity{{ID: "a", Name: "A"}}, nil, saved)

	require.Len(t, g.Nodes, 1)
	assert.InDelta(t, 800.0, g.Nodes[0].Position.X, 1e-9)
	assert.InDelta(t, 400.0, g.Nodes[0].Position.Y, 1e-9)
}

func TestFileKV(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = kv.Get(ctx, "graph-node-positions:u1:default")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "graph-node-positions:u1:default", []byte(`{"a":{"x":1,"y":1}}`)))
	raw, err := kv.Get(ctx, "graph-node-positions:u1:default")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":{"x":1,"y":1}}`, string(raw))

	got := New(kv).LoadPositions(ctx, scope)
	assert.Equal(t, graph.Position{X: 1, Y: 1}, got["a"])
}

func TestMemoryKV_CopiesValues(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	v := []byte("abc")
	require.NoError(t, kv.Set(ctx, "k", v))
	v[0] = 'z'

	raw, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(raw))
}
