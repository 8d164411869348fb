package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/osint-hub/backend/pkg/common"
)

const (
	// MinRadius is the smallest radius of the initial circular layout.
	MinRadius = 300.0
	// RadiusPerEntity grows the layout radius with the number of entities.
	RadiusPerEntity = 50.0
	// CenterX and CenterY place the layout inside a conventional viewport.
	CenterX = 500.0
	CenterY = 400.0
	// CurvatureStep is the bend between two neighbouring parallel edges.
	CurvatureStep = 0.5
)

// Position is a node coordinate on the rendering surface.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Valid reports whether both coordinates are finite.
func (p Position) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Positions maps an entity id to its saved coordinate.
type Positions map[string]Position

// ParsePositions decodes a JSON object of entity id to {"x", "y"}. Every
// entry must carry both coordinates as finite numbers; a null entry or a
// missing coordinate rejects the whole mapping.
func ParsePositions(raw []byte) (Positions, error) {
	var entries map[string]*struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		return nil, errors.New("value is not an object")
	}

	positions := make(Positions, len(entries))
	for id, e := range entries {
		if e == nil || e.X == nil || e.Y == nil {
			return nil, fmt.Errorf("missing coordinate for %s", id)
		}
		p := Position{X: *e.X, Y: *e.Y}
		if !p.Valid() {
			return nil, fmt.Errorf("invalid coordinate for %s", id)
		}
		positions[id] = p
	}
	return positions, nil
}

// Node is the renderable form of an entity.
type Node struct {
	ID        string            `json:"id"`
	Label     string            `json:"label"`
	Type      common.EntityType `json:"type"`
	AvatarURL *string           `json:"avatar_url"`
	Position  Position          `json:"position"`
}

// Edge is the renderable form of a relationship. Curvature is nil for the
// only relationship between a pair of entities.
type Edge struct {
	ID        string   `json:"id"`
	SourceID  string   `json:"source"`
	TargetID  string   `json:"target"`
	Label     string   `json:"label"`
	Curvature *float64 `json:"curvature,omitempty"`
}

// Graph is a snapshot of the catalogue ready to be drawn.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// BuildGraph converts entities and relationships into nodes and edges.
//
// Every entity yields exactly one node and every relationship exactly one
// edge, both in input order. A saved position always wins over the computed
// circular layout. Relationships sharing the same unordered pair of entities
// fan out symmetrically through their curvature.
func BuildGraph(entities []common.Entity, relationships []common.Relationship, saved Positions) Graph {
	g := Graph{
		Nodes: make([]Node, len(entities)),
		Edges: make([]Edge, len(relationships)),
	}

	n := len(entities)
	radius := math.Max(MinRadius, float64(n)*RadiusPerEntity)
	for i, entity := range entities {
		pos, ok := saved[entity.ID]
		if !ok {
			pos = CircularPosition(i, n, radius)
		}
		g.Nodes[i] = Node{
			ID:        entity.ID,
			Label:     entity.Name,
			Type:      entity.Type,
			AvatarURL: entity.AvatarURL,
			Position:  pos,
		}
	}

	totals := make(map[string]int, len(relationships))
	for _, rel := range relationships {
		totals[PairKey(rel.EntityAID, rel.EntityBID)]++
	}

	seen := make(map[string]int, len(totals))
	for i, rel := range relationships {
		key := PairKey(rel.EntityAID, rel.EntityBID)
		k := seen[key]
		seen[key] = k + 1

		g.Edges[i] = Edge{
			ID:        rel.ID,
			SourceID:  rel.EntityAID,
			TargetID:  rel.EntityBID,
			Label:     rel.RelationshipType,
			Curvature: Curvature(k, totals[key]),
		}
	}

	return g
}

// CircularPosition places index i of n evenly on a circle of the given
// radius around (CenterX, CenterY).
func CircularPosition(i, n int, radius float64) Position {
	angle := 2 * math.Pi * float64(i) / float64(n)
	return Position{
		X: math.Cos(angle)*radius + CenterX,
		Y: math.Sin(angle)*radius + CenterY,
	}
}

// Curvature returns the bend of the k-th of total parallel edges, or nil when
// the edge is the only one between its entities.
func Curvature(k, total int) *float64 {
	if total <= 1 {
		return nil
	}
	offset := (float64(k) - float64(total-1)/2) * CurvatureStep
	return &offset
}

// PairKey identifies the unordered pair of two entity ids.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return strings.Join([]string{a, b}, "-")
}
