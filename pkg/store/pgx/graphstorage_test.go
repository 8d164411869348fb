package pgx

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osint-hub/backend/pkg/common"
)

type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return r.rows[r.idx-1], nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgxv5.Conn                            { return nil }

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.rows) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	return assign(r.rows[r.idx-1], dest)
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(r.values, dest)
}

func assign(values []any, dest []any) error {
	if len(values) != len(dest) {
		return errors.New("column count mismatch")
	}
	for i, v := range values {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

// fakeDB answers queries by their sqlc name.
type fakeDB struct {
	mu      sync.Mutex
	queries map[string][][]any
	row     fakeRow
	tag     pgconn.CommandTag
	err     error
	args    map[string][]any
}

func (f *fakeDB) record(sql string, args []any) string {
	name := strings.Fields(sql)[2]
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.args == nil {
		f.args = map[string][]any{}
	}
	f.args[name] = args
	return name
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.record(sql, args)
	return f.tag, f.err
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgxv5.Rows, error) {
	name := f.record(sql, args)
	if f.err != nil {
		return nil, f.err
	}
	return &fakeRows{rows: f.queries[name]}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgxv5.Row {
	f.record(sql, args)
	return f.row
}

var (
	owner   = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	alice   = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")
	bob     = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000002")
	relID   = uuid.MustParse("cccccccc-0000-0000-0000-000000000003")
	created = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func entityRow(id uuid.UUID, name, typ string) []any {
	var none *string
	return []any{id, owner, name, typ, none, none, none, none, none, none, created, created}
}

func relationshipRow(id, a, b uuid.UUID, typ string) []any {
	var none *string
	return []any{id, owner, a, b, typ, none, created, created}
}

func TestLoadGraph(t *testing.T) {
	db := &fakeDB{queries: map[string][][]any{
		"ListEntitiesForGraph": {entityRow(alice, "Alice", "person"), entityRow(bob, "Bob Corp", "organization")},
		"ListRelationships":    {relationshipRow(relID, alice, bob, "employee")},
	}}
	s := NewGraphDBStorageWithConnection(db)

	entities, rels, err := s.LoadGraph(context.Background(), owner.String())
	require.NoError(t, err)

	require.Len(t, entities, 2)
	assert.Equal(t, alice.String(), entities[0].ID)
	assert.Equal(t, "Bob Corp", entities[1].Name)
	assert.Equal(t, common.EntityTypeOrganization, entities[1].Type)

	require.Len(t, rels, 1)
	assert.Equal(t, alice.String(), rels[0].EntityAID)
	assert.Equal(t, bob.String(), rels[0].EntityBID)
	assert.Equal(t, "employee", rels[0].RelationshipType)

	assert.Equal(t, []any{owner}, db.args["ListEntitiesForGraph"])
	assert.Equal(t, []any{owner}, db.args["ListRelationships"])
}

func TestLoadGraph_RemoteError(t *testing.T) {
	s := NewGraphDBStorageWithConnection(&fakeDB{err: errors.New("connection reset")})

	_, _, err := s.LoadGraph(context.Background(), owner.String())
	assert.True(t, common.IsRemote(err))
}

func TestLoadGraph_InvalidOwner(t *testing.T) {
	s := NewGraphDBStorageWithConnection(&fakeDB{})
	_, _, err := s.LoadGraph(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestCreateRelationship(t *testing.T) {
	notes := "met 2019"
	db := &fakeDB{row: fakeRow{values: []any{relID, owner, alice, bob, "knows", &notes, created, created}}}
	s := NewGraphDBStorageWithConnection(db)

	rel, err := s.CreateRelationship(context.Background(), owner.String(), common.Relationship{
		EntityAID:        alice.String(),
		EntityBID:        bob.String(),
		RelationshipType: "knows",
		Notes:            &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, relID.String(), rel.ID)
	require.NotNil(t, rel.Notes)
	assert.Equal(t, notes, *rel.Notes)
	assert.Equal(t, []any{owner, "knows", &notes, alice, bob}, db.args["CreateRelationship"])
}

func TestCreateRelationship_Errors(t *testing.T) {
	tests := []struct {
		name   string
		row    fakeRow
		a      string
		want   error
		remote bool
	}{
		{name: "foreign entity", row: fakeRow{err: pgxv5.ErrNoRows}, a: alice.String(), want: common.ErrNotFound},
		{name: "bad id", a: "nope", want: common.ErrInvalidEntityID},
		{name: "store failure", row: fakeRow{err: errors.New("timeout")}, a: alice.String(), remote: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewGraphDBStorageWithConnection(&fakeDB{row: tt.row})
			_, err := s.CreateRelationship(context.Background(), owner.String(), common.Relationship{
				EntityAID:        tt.a,
				EntityBID:        bob.String(),
				RelationshipType: "knows",
			})
			if tt.remote {
				assert.True(t, common.IsRemote(err))
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDeleteRelationship(t *testing.T) {
	db := &fakeDB{tag: pgconn.NewCommandTag("DELETE 1")}
	s := NewGraphDBStorageWithConnection(db)
	require.NoError(t, s.DeleteRelationship(context.Background(), owner.String(), relID.String()))
	assert.Equal(t, []any{relID, owner}, db.args["DeleteRelationship"])

	db.tag = pgconn.NewCommandTag("DELETE 0")
	assert.ErrorIs(t, s.DeleteRelationship(context.Background(), owner.String(), relID.String()), common.ErrNotFound)
	assert.ErrorIs(t, s.DeleteRelationship(context.Background(), owner.String(), "garbage"), common.ErrNotFound)

	db.err = errors.New("down")
	assert.True(t, common.IsRemote(s.DeleteRelationship(context.Background(), owner.String(), relID.String())))
}
