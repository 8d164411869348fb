package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osint-hub/backend/pkg/common"
)

type fakeStore struct {
	entities      []common.Entity
	relationships []common.Relationship

	loadErr   error
	createErr error
	deleteErr error

	loads   int
	creates []common.Relationship
	deletes []string
	nextID  int
}

func (f *fakeStore) LoadGraph(_ context.Context, _ string) ([]common.Entity, []common.Relationship, error) {
	f.loads++
	if f.loadErr != nil {
		return nil, nil, f.loadErr
	}
	return f.entities, f.relationships, nil
}

func (f *fakeStore) CreateRelationship(_ context.Context, ownerID string, r common.Relationship) (common.Relationship, error) {
	f.creates = append(f.creates, r)
	if f.createErr != nil {
		return common.Relationship{}, f.createErr
	}
	f.nextID++
	r.ID = "new-" + string(rune('0'+f.nextID))
	r.UserID = ownerID
	f.relationships = append(f.relationships, r)
	return r, nil
}

func (f *fakeStore) DeleteRelationship(_ context.Context, _ string, id string) error {
	f.deletes = append(f.deletes, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, r := range f.relationships {
		if r.ID == id {
			f.relationships = append(f.relationships[:i], f.relationships[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

type fakePositions struct {
	saved Positions
	saves [][]Node
	err   error
}

func (f *fakePositions) LoadPositions(context.Context, Scope) Positions {
	if f.saved == nil {
		return Positions{}
	}
	return f.saved
}

func (f *fakePositions) SavePositions(_ context.Context, _ Scope, nodes []Node) error {
	f.saves = append(f.saves, nodes)
	return f.err
}

func newSession(t *testing.T, st *fakeStore, pos *fakePositions) *Session {
	t.Helper()
	s, err := NewSession(st, pos, Scope{UserID: "user-1"})
	require.NoError(t, err)
	return s
}

func TestNewSession_RequiresUser(t *testing.T) {
	_, err := NewSession(&fakeStore{}, &fakePositions{}, Scope{})
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestSession_Load(t *testing.T) {
	st := &fakeStore{
		entities:      entities("a", "b"),
		relationships: []common.Relationship{rel("r1", "a", "b", "knows")},
	}
	pos := &fakePositions{saved: Positions{"a": {X: 1, Y: 2}}}
	s := newSession(t, st, pos)

	g, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 2)
	assert.Len(t, g.Edges, 1)
	assert.Equal(t, Position{X: 1, Y: 2}, g.Nodes[0].Position)
	assert.Equal(t, g, s.Graph())
}

func TestSession_LoadFailureKeepsGraph(t *testing.T) {
	st := &fakeStore{entities: entities("a")}
	s := newSession(t, st, &fakePositions{})
	before, err := s.Load(context.Background())
	require.NoError(t, err)

	st.loadErr = common.NewRemoteError("load graph", errors.New("timeout"))
	g, err := s.Load(context.Background())
	assert.True(t, common.IsRemote(err))
	assert.Equal(t, before, g)
}

func TestSession_ProposeConnection(t *testing.T) {
	s := newSession(t, &fakeStore{}, &fakePositions{})

	_, err := s.ProposeConnection("a", "a")
	assert.ErrorIs(t, err, common.ErrInvalidSelfLoop)
	_, open := s.Draft()
	assert.False(t, open)

	d, err := s.ProposeConnection("a", "b")
	require.NoError(t, err)
	assert.Equal(t, Draft{EntityAID: "a", EntityBID: "b"}, d)

	got, open := s.Draft()
	assert.True(t, open)
	assert.Equal(t, d, got)

	s.CancelDraft()
	_, open = s.Draft()
	assert.False(t, open)
}

func TestSession_CommitValidation(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		relType string
		want    error
	}{
		{"self loop", "a", "a", "knows", common.ErrInvalidSelfLoop},
		{"blank type", "a", "b", "   ", common.ErrMissingType},
		{"missing source", "", "b", "knows", common.ErrMissingEndpoint},
		{"missing target", "a", "", "knows", common.ErrMissingEndpoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &fakeStore{}
			s := newSession(t, st, &fakePositions{})

			_, err := s.CommitRelationship(context.Background(), tt.a, tt.b, tt.relType, "")
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, common.IsValidation(err))
			assert.Empty(t, st.creates)
			assert.Zero(t, st.loads)
		})
	}
}

func TestSession_CommitCreatesAndReloads(t *testing.T) {
	st := &fakeStore{entities: entities("a", "b")}
	s := newSession(t, st, &fakePositions{})
	_, err := s.ProposeConnection("a", "b")
	require.NoError(t, err)

	g, err := s.CommitRelationship(context.Background(), "a", "b", "  employer  ", " met at conf ")
	require.NoError(t, err)

	require.Len(t, st.creates, 1)
	assert.Equal(t, "employer", st.creates[0].RelationshipType)
	require.NotNil(t, st.creates[0].Notes)
	assert.Equal(t, "met at conf", *st.creates[0].Notes)

	assert.Equal(t, 1, st.loads)
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "employer", g.Edges[0].Label)
	assert.Nil(t, g.Edges[0].Curvature)

	_, open := s.Draft()
	assert.False(t, open)
}

func TestSession_CommitParallelEdges(t *testing.T) {
	st := &fakeStore{entities: entities("a", "b")}
	s := newSession(t, st, &fakePositions{})
	ctx := context.Background()

	_, err := s.CommitRelationship(ctx, "a", "b", "knows", "")
	require.NoError(t, err)
	g, err := s.CommitRelationship(ctx, "b", "a", "funds", "")
	require.NoError(t, err)

	require.Len(t, g.Edges, 2)
	assert.InDelta(t, -0.25, *g.Edges[0].Curvature, 1e-9)
	assert.InDelta(t, 0.25, *g.Edges[1].Curvature, 1e-9)
}

func TestSession_CommitRemoteFailure(t *testing.T) {
	st := &fakeStore{
		entities:  entities("a", "b"),
		createErr: common.NewRemoteError("create relationship", errors.New("boom")),
	}
	s := newSession(t, st, &fakePositions{})
	before, err := s.Load(context.Background())
	require.NoError(t, err)
	_, err = s.ProposeConnection("a", "b")
	require.NoError(t, err)

	g, err := s.CommitRelationship(context.Background(), "a", "b", "knows", "")
	assert.True(t, common.IsRemote(err))
	assert.Equal(t, before, g)
	assert.Equal(t, 1, st.loads)

	_, open := s.Draft()
	assert.True(t, open)
}

func TestSession_RemoveSelected(t *testing.T) {
	st := &fakeStore{
		entities:      entities("a", "b"),
		relationships: []common.Relationship{rel("r1", "a", "b", "knows"), rel("r2", "a", "b", "owns")},
	}
	s := newSession(t, st, &fakePositions{})
	_, err := s.Load(context.Background())
	require.NoError(t, err)

	s.SelectEdge("r1")
	g, err := s.RemoveSelected(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"r1"}, st.deletes)
	assert.Empty(t, s.Selected())
	require.Len(t, g.Edges, 1)
	assert.Equal(t, "r2", g.Edges[0].ID)
	assert.Nil(t, g.Edges[0].Curvature)
}

func TestSession_RemoveNothingSelected(t *testing.T) {
	st := &fakeStore{}
	s := newSession(t, st, &fakePositions{})

	_, err := s.RemoveSelected(context.Background())
	assert.ErrorIs(t, err, common.ErrMissingEndpoint)
	assert.Empty(t, st.deletes)
}

func TestSession_RemoveFailureKeepsSelection(t *testing.T) {
	st := &fakeStore{deleteErr: common.NewRemoteError("delete relationship", errors.New("boom"))}
	s := newSession(t, st, &fakePositions{})

	s.SelectEdge("r9")
	_, err := s.RemoveSelected(context.Background())
	assert.True(t, common.IsRemote(err))
	assert.Equal(t, "r9", s.Selected())
	assert.Zero(t, st.loads)
}

func TestSession_DragEnd(t *testing.T) {
	st := &fakeStore{entities: entities("a", "b")}
	pos := &fakePositions{}
	s := newSession(t, st, pos)
	_, err := s.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.DragEnd(context.Background(), Positions{"a": {X: 10, Y: 20}}))

	require.Len(t, pos.saves, 1)
	saved := pos.saves[0]
	require.Len(t, saved, 2)
	assert.Equal(t, Position{X: 10, Y: 20}, saved[0].Position)
	assert.Equal(t, Position{X: 10, Y: 20}, s.Graph().Nodes[0].Position)
}

func TestSession_DragEndBeforeLoad(t *testing.T) {
	pos := &fakePositions{}
	s := newSession(t, &fakeStore{}, pos)

	require.NoError(t, s.DragEnd(context.Background(), Positions{"x": {X: 1, Y: 1}}))
	require.Len(t, pos.saves, 1)
	assert.Equal(t, []Node{{ID: "x", Position: Position{X: 1, Y: 1}}}, pos.saves[0])
}
