package pgx

import (
	"context"
	"errors"

	"github.com/google/uuid"
	pgxv5 "github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"

	"github.com/osint-hub/backend/pkg/common"
	pgdb "github.com/osint-hub/backend/pkg/db/pgx"
	"github.com/osint-hub/backend/pkg/logger"
)

// GraphDBStorage implements store.GraphStorage on PostgreSQL. Every query is
// scoped to the owning user.
type GraphDBStorage struct {
	conn pgdb.DBTX
}

// NewGraphDBStorageWithConnection creates a GraphDBStorage using an existing
// connection or pool. LoadGraph issues its two queries concurrently, so conn
// must be safe for concurrent use (a pool, not a transaction).
func NewGraphDBStorageWithConnection(conn pgdb.DBTX) *GraphDBStorage {
	return &GraphDBStorage{conn: conn}
}

func (s *GraphDBStorage) LoadGraph(ctx context.Context, ownerID string) ([]common.Entity, []common.Relationship, error) {
	owner, err := ParseID(ownerID)
	if err != nil {
		return nil, nil, common.ErrUnauthenticated
	}

	q := pgdb.New(s.conn)

	var (
		entities      []pgdb.Entity
		relationships []pgdb.Relationship
	)
	eg, ectx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		res, err := q.ListEntitiesForGraph(ectx, owner)
		entities = res
		return err
	})
	eg.Go(func() error {
		res, err := q.ListRelationships(ectx, owner)
		relationships = res
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, common.NewRemoteError("load graph", err)
	}

	logger.Debug("[Store][LoadGraph] Loaded rows", "entities", len(entities), "relationships", len(relationships))
	return EntitiesFromDB(entities), RelationshipsFromDB(relationships), nil
}

func (s *GraphDBStorage) CreateRelationship(ctx context.Context, ownerID string, rel common.Relationship) (common.Relationship, error) {
	owner, err := ParseID(ownerID)
	if err != nil {
		return common.Relationship{}, common.ErrUnauthenticated
	}
	a, err := ParseID(rel.EntityAID)
	if err != nil {
		return common.Relationship{}, err
	}
	b, err := ParseID(rel.EntityBID)
	if err != nil {
		return common.Relationship{}, err
	}

	q := pgdb.New(s.conn)
	row, err := q.CreateRelationship(ctx, pgdb.CreateRelationshipParams{
		UserID:           owner,
		RelationshipType: rel.RelationshipType,
		Notes:            rel.Notes,
		EntityAID:        a,
		EntityBID:        b,
	})
	if err != nil {
		if errors.Is(err, pgxv5.ErrNoRows) {
			return common.Relationship{}, common.ErrNotFound
		}
		return common.Relationship{}, common.NewRemoteError("create relationship", err)
	}
	return RelationshipFromDB(row), nil
}

func (s *GraphDBStorage) DeleteRelationship(ctx context.Context, ownerID string, relationshipID string) error {
	owner, err := ParseID(ownerID)
	if err != nil {
		return common.ErrUnauthenticated
	}
	id, err := ParseID(relationshipID)
	if err != nil {
		return common.ErrNotFound
	}

	q := pgdb.New(s.conn)
	n, err := q.DeleteRelationship(ctx, pgdb.DeleteRelationshipParams{ID: id, UserID: owner})
	if err != nil {
		return common.NewRemoteError("delete relationship", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// ParseID parses a row id. Malformed ids yield common.ErrInvalidEntityID.
func ParseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, common.ErrInvalidEntityID
	}
	return parsed, nil
}
