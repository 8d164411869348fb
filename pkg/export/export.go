package export

import (
	"time"

	"github.com/osint-hub/backend/pkg/common"
)

// TagLink attaches a tag to an entity.
type TagLink struct {
	EntityID string
	TagID    string
}

// Source is everything a user owns, as loaded from the store.
type Source struct {
	Entities       []common.Entity
	Relationships  []common.Relationship
	SocialAccounts []common.SocialAccount
	Tags           []common.Tag
	TagLinks       []TagLink
	Images         []common.EntityImage
	Documents      []common.EntityDocument
}

// DossierEntity is an entity together with everything attached to it.
type DossierEntity struct {
	common.Entity
	SocialAccounts []common.SocialAccount  `json:"social_accounts"`
	Tags           []common.Tag            `json:"tags"`
	Images         []common.EntityImage    `json:"images"`
	Documents      []common.EntityDocument `json:"documents"`
}

// Dossier is the full export of one user's catalogue.
type Dossier struct {
	ExportedAt    time.Time             `json:"exported_at"`
	Entities      []DossierEntity       `json:"entities"`
	Relationships []common.Relationship `json:"relationships"`
	Tags          []common.Tag          `json:"tags"`
}

// BuildDossier groups the attachments of src under their entities. Entity
// order is kept; attachments of unknown entities are dropped.
func BuildDossier(src Source, now time.Time) Dossier {
	d := Dossier{
		ExportedAt:    now.UTC(),
		Entities:      make([]DossierEntity, len(src.Entities)),
		Relationships: nonNil(src.Relationships),
		Tags:          nonNil(src.Tags),
	}

	index := make(map[string]int, len(src.Entities))
	for i, e := range src.Entities {
		index[e.ID] = i
		d.Entities[i] = DossierEntity{
			Entity:         e,
			SocialAccounts: []common.SocialAccount{},
			Tags:           []common.Tag{},
			Images:         []common.EntityImage{},
			Documents:      []common.EntityDocument{},
		}
	}

	for _, a := range src.SocialAccounts {
		if i, ok := index[a.EntityID]; ok {
			d.Entities[i].SocialAccounts = append(d.Entities[i].SocialAccounts, a)
		}
	}
	for _, img := range src.Images {
		if i, ok := index[img.EntityID]; ok {
			d.Entities[i].Images = append(d.Entities[i].Images, img)
		}
	}
	for _, doc := range src.Documents {
		if i, ok := index[doc.EntityID]; ok {
			d.Entities[i].Documents = append(d.Entities[i].Documents, doc)
		}
	}

	tags := make(map[string]common.Tag, len(src.Tags))
	for _, t := range src.Tags {
		tags[t.ID] = t
	}
	for _, l := range src.TagLinks {
		i, ok := index[l.EntityID]
		if !ok {
			continue
		}
		if t, ok := tags[l.TagID]; ok {
			d.Entities[i].Tags = append(d.Entities[i].Tags, t)
		}
	}

	return d
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
