package routes

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osint-hub/backend/pkg/common"
	pgdb "github.com/osint-hub/backend/pkg/db/pgx"
)

func TestPatchString(t *testing.T) {
	current := ptr("kept")

	assert.Equal(t, current, patchString(current, nil))
	assert.Nil(t, patchString(current, ptr("  ")))
	assert.Equal(t, "new", *patchString(current, ptr(" new ")))
	assert.Nil(t, patchString(nil, nil))
}

func TestSocialAccountPatchKeepsAbsentFields(t *testing.T) {
	current := pgdb.SocialAccount{
		ID:          uuid.New(),
		EntityID:    uuid.New(),
		Platform:    "github",
		Username:    ptr("octocat"),
		DisplayName: ptr("The Octocat"),
		Notes:       ptr("found via commit history"),
	}

	next, err := socialAccountBody{DisplayName: ptr("Mona")}.apply(current)
	require.NoError(t, err)
	assert.Equal(t, "github", next.Platform)
	assert.Equal(t, "octocat", *next.Username)
	assert.Equal(t, "Mona", *next.DisplayName)
	assert.Equal(t, "found via commit history", *next.Notes)

	next, err = socialAccountBody{Platform: ptr(" GitLab "), Notes: ptr("")}.apply(current)
	require.ErrorIs(t, err, common.ErrInvalidPlatform)

	next, err = socialAccountBody{Platform: ptr(" Reddit "), Notes: ptr("")}.apply(current)
	require.NoError(t, err)
	assert.Equal(t, "reddit", next.Platform)
	assert.Nil(t, next.Notes)
	assert.Equal(t, "octocat", *next.Username)
}

func TestSocialAccountCreateRequiresPlatform(t *testing.T) {
	_, err := socialAccountBody{Username: ptr("octocat")}.apply(pgdb.SocialAccount{})
	assert.ErrorIs(t, err, common.ErrInvalidPlatform)
}

func TestImagePatchKeepsAbsentFields(t *testing.T) {
	current := pgdb.EntityImage{ID: uuid.New(), EntityID: uuid.New(), Title: ptr("Profile photo"), Notes: ptr("2023")}

	arg := imagePatch{Notes: ptr("2024")}.apply(current)
	assert.Equal(t, current.ID, arg.ID)
	assert.Equal(t, current.EntityID, arg.EntityID)
	assert.Equal(t, "Profile photo", *arg.Title)
	assert.Equal(t, "2024", *arg.Notes)

	arg = imagePatch{Title: ptr("")}.apply(current)
	assert.Nil(t, arg.Title)
	assert.Equal(t, "2023", *arg.Notes)
}

func TestDocumentPatchKeepsAbsentFields(t *testing.T) {
	current := pgdb.EntityDocument{ID: uuid.New(), Title: "Leak.pdf", Notes: ptr("from forum dump")}

	arg, err := documentPatch{Title: ptr(" Leak (redacted) ")}.apply(current)
	require.NoError(t, err)
	assert.Equal(t, "Leak (redacted)", arg.Title)
	assert.Equal(t, "from forum dump", *arg.Notes)

	arg, err = documentPatch{Notes: ptr("checked")}.apply(current)
	require.NoError(t, err)
	assert.Equal(t, "Leak.pdf", arg.Title)

	_, err = documentPatch{Title: ptr("  ")}.apply(current)
	assert.ErrorIs(t, err, errMissingTitle)
}

func TestTagPatchKeepsAbsentFields(t *testing.T) {
	current := pgdb.Tag{ID: uuid.New(), Name: "suspect", Color: "#FF0000"}

	next, err := tagBody{Name: ptr("person of interest")}.apply(current)
	require.NoError(t, err)
	assert.Equal(t, "person of interest", next.Name)
	assert.Equal(t, "#FF0000", next.Color)

	next, err = tagBody{Color: ptr("")}.apply(current)
	require.NoError(t, err)
	assert.Equal(t, "suspect", next.Name)
	assert.Equal(t, DefaultTagColor, next.Color)

	_, err = tagBody{Color: ptr("#00FF00")}.apply(pgdb.Tag{})
	assert.ErrorIs(t, err, errInvalidTag)
}
