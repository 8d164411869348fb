package store

import (
	"context"

	"github.com/osint-hub/backend/pkg/common"
)

// GraphStorage is the slice of the catalogue store the relationship graph
// needs: reading a user's entities and relationships and creating or
// deleting relationships. All methods are scoped to the owning user.
//
// Failures of the underlying store are returned as *common.RemoteError.
// Unknown or foreign ids yield common.ErrNotFound.
type GraphStorage interface {
	LoadGraph(ctx context.Context, ownerID string) ([]common.Entity, []common.Relationship, error)

	CreateRelationship(ctx context.Context, ownerID string, rel common.Relationship) (common.Relationship, error)
	DeleteRelationship(ctx context.Context, ownerID string, relationshipID string) error
}
