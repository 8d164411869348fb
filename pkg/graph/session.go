package graph

import (
	"context"
	"strings"

	"github.com/osint-hub/backend/pkg/common"
	"github.com/osint-hub/backend/pkg/logger"
	"github.com/osint-hub/backend/pkg/store"
)

// Scope identifies whose node positions are read and written: one user on
// one client profile. Positions are never shared between scopes.
type Scope struct {
	UserID   string
	ClientID string
}

// PositionStore persists user arranged node coordinates.
//
// LoadPositions never fails: a missing or unreadable value is an empty
// mapping.
type PositionStore interface {
	LoadPositions(ctx context.Context, scope Scope) Positions
	SavePositions(ctx context.Context, scope Scope, nodes []Node) error
}

// Draft is the edit prompt opened by a proposed connection.
type Draft struct {
	EntityAID        string `json:"entity_a_id"`
	EntityBID        string `json:"entity_b_id"`
	RelationshipType string `json:"relationship_type"`
	Notes            string `json:"notes"`
}

// Session mediates the relationship graph of one user: it loads the graph,
// validates connection gestures and turns committed edits into store writes
// followed by a full reload. The visible graph only changes after the store
// has confirmed a write.
//
// A Session is not safe for concurrent use.
type Session struct {
	store     store.GraphStorage
	positions PositionStore
	scope     Scope

	graph    Graph
	loaded   bool
	draft    *Draft
	selected string
}

// NewSession returns a session for scope. It fails with
// common.ErrUnauthenticated when the scope carries no user.
func NewSession(storage store.GraphStorage, positions PositionStore, scope Scope) (*Session, error) {
	if scope.UserID == "" {
		return nil, common.ErrUnauthenticated
	}
	return &Session{
		store:     storage,
		positions: positions,
		scope:     scope,
	}, nil
}

// Graph returns the last loaded graph.
func (s *Session) Graph() Graph {
	return s.graph
}

// Load fetches entities, relationships and saved positions and rebuilds the
// graph from scratch. On failure the previous graph is kept.
func (s *Session) Load(ctx context.Context) (Graph, error) {
	entities, relationships, err := s.store.LoadGraph(ctx, s.scope.UserID)
	if err != nil {
		return s.graph, err
	}

	saved := s.positions.LoadPositions(ctx, s.scope)
	s.graph = BuildGraph(entities, relationships, saved)
	s.loaded = true

	logger.Debug("[Graph][Load] Built graph", "user", s.scope.UserID, "nodes", len(s.graph.Nodes), "edges", len(s.graph.Edges))
	return s.graph, nil
}

// ProposeConnection opens an edit prompt for a connection dragged from
// sourceID to targetID.
func (s *Session) ProposeConnection(sourceID, targetID string) (Draft, error) {
	if sourceID == targetID {
		return Draft{}, common.ErrInvalidSelfLoop
	}
	d := Draft{EntityAID: sourceID, EntityBID: targetID}
	s.draft = &d
	return d, nil
}

// Draft returns the open edit prompt, if any.
func (s *Session) Draft() (Draft, bool) {
	if s.draft == nil {
		return Draft{}, false
	}
	return *s.draft, true
}

// CancelDraft closes the edit prompt without writing anything.
func (s *Session) CancelDraft() {
	s.draft = nil
}

// CommitRelationship validates the relationship, asks the store to create it
// and reloads the graph once the store confirmed.
func (s *Session) CommitRelationship(ctx context.Context, entityAID, entityBID, relType, notes string) (Graph, error) {
	relType = strings.TrimSpace(relType)
	if relType == "" {
		return s.graph, common.ErrMissingType
	}
	if entityAID == "" || entityBID == "" {
		return s.graph, common.ErrMissingEndpoint
	}
	if entityAID == entityBID {
		return s.graph, common.ErrInvalidSelfLoop
	}

	rel := common.Relationship{
		EntityAID:        entityAID,
		EntityBID:        entityBID,
		RelationshipType: relType,
	}
	if n := strings.TrimSpace(notes); n != "" {
		rel.Notes = &n
	}

	created, err := s.store.CreateRelationship(ctx, s.scope.UserID, rel)
	if err != nil {
		return s.graph, err
	}
	logger.Info("Relationship created", "id", created.ID, "type", created.RelationshipType)

	s.draft = nil
	return s.Load(ctx)
}

// SelectEdge marks the edge a later RemoveSelected acts on.
func (s *Session) SelectEdge(edgeID string) {
	s.selected = edgeID
}

// Selected returns the selected edge id, or "" when none is selected.
func (s *Session) Selected() string {
	return s.selected
}

// RemoveRelationship asks the store to delete the relationship and reloads
// the graph once the store confirmed.
func (s *Session) RemoveRelationship(ctx context.Context, edgeID string) (Graph, error) {
	if edgeID == "" {
		return s.graph, common.ErrMissingEndpoint
	}
	if err := s.store.DeleteRelationship(ctx, s.scope.UserID, edgeID); err != nil {
		return s.graph, err
	}
	logger.Info("Relationship deleted", "id", edgeID)

	if s.selected == edgeID {
		s.selected = ""
	}
	return s.Load(ctx)
}

// RemoveSelected deletes the selected edge.
func (s *Session) RemoveSelected(ctx context.Context) (Graph, error) {
	return s.RemoveRelationship(ctx, s.selected)
}

// DragEnd applies the final coordinates of dragged nodes and persists the
// positions of every known node. Intermediate drag movements are never
// persisted.
func (s *Session) DragEnd(ctx context.Context, moved Positions) error {
	for _, p := range moved {
		if !p.Valid() {
			return common.ErrInvalidPositions
		}
	}

	if !s.loaded {
		nodes := make([]Node, 0, len(moved))
		for id, p := range moved {
			nodes = append(nodes, Node{ID: id, Position: p})
		}
		return s.positions.SavePositions(ctx, s.scope, nodes)
	}

	for i := range s.graph.Nodes {
		if p, ok := moved[s.graph.Nodes[i].ID]; ok {
			s.graph.Nodes[i].Position = p
		}
	}
	return s.positions.SavePositions(ctx, s.scope, s.graph.Nodes)
}
