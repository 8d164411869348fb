package positions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/osint-hub/backend/pkg/common"
	"github.com/osint-hub/backend/pkg/graph"
	"github.com/osint-hub/backend/pkg/logger"
)

// Key is the fixed key the node positions are stored under. Every scope gets
// its own copy of it.
const Key = "graph-node-positions"

// ErrNotFound is returned by a KV when the key holds no value.
var ErrNotFound = errors.New("position key not found")

// KV is a minimal persistent key-value store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store implements graph.PositionStore on top of a KV.
type Store struct {
	kv KV
}

func New(kv KV) *Store {
	return &Store{kv: kv}
}

// ScopedKey returns the storage key of scope.
func ScopedKey(scope graph.Scope) string {
	client := scope.ClientID
	if client == "" {
		client = "default"
	}
	return fmt.Sprintf("%s:%s:%s", Key, scope.UserID, client)
}

// SavePositions stores the coordinates of every node, replacing whatever was
// stored for scope before.
func (s *Store) SavePositions(ctx context.Context, scope graph.Scope, nodes []graph.Node) error {
	positions := make(graph.Positions, len(nodes))
	for _, n := range nodes {
		positions[n.ID] = n.Position
	}

	raw, err := json.Marshal(positions)
	if err != nil {
		return err
	}

	if err := s.kv.Set(ctx, ScopedKey(scope), raw); err != nil {
		return common.NewRemoteError("save positions", err)
	}
	return nil
}

// LoadPositions returns the stored coordinates of scope. Absent, unreadable
// or malformed values all result in an empty mapping.
func (s *Store) LoadPositions(ctx context.Context, scope graph.Scope) graph.Positions {
	key := ScopedKey(scope)
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("Failed to read node positions", "key", key, "err", err)
		}
		return graph.Positions{}
	}

	positions, err := Decode(key, raw)
	if err != nil {
		logger.Debug("Ignoring stored node positions", "err", err)
		return graph.Positions{}
	}
	return positions
}

// Decode parses a stored position mapping. A null entry, a missing or
// non-finite coordinate makes the whole value malformed.
func Decode(key string, raw []byte) (graph.Positions, error) {
	if len(raw) == 0 {
		return graph.Positions{}, nil
	}

	positions, err := graph.ParsePositions(raw)
	if err != nil {
		return nil, &common.MalformedCacheError{Key: key, Err: err}
	}
	return positions, nil
}
