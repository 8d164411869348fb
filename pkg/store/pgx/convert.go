package pgx

import (
	"github.com/osint-hub/backend/pkg/common"
	pgdb "github.com/osint-hub/backend/pkg/db/pgx"
)

func mapRows[T, U any](rows []T, fn func(T) U) []U {
	out := make([]U, len(rows))
	for i, r := range rows {
		out[i] = fn(r)
	}
	return out
}

func EntityFromDB(e pgdb.Entity) common.Entity {
	return common.Entity{
		ID:            e.ID.String(),
		UserID:        e.UserID.String(),
		Name:          e.Name,
		Type:          common.EntityType(e.Type),
		AvatarURL:     e.AvatarUrl,
		Notes:         e.Notes,
		IPs:           e.Ips,
		Domains:       e.Domains,
		HostingInfo:   e.HostingInfo,
		WebArchiveURL: e.WebArchiveUrl,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func EntitiesFromDB(rows []pgdb.Entity) []common.Entity {
	return mapRows(rows, EntityFromDB)
}

func RelationshipFromDB(r pgdb.Relationship) common.Relationship {
	return common.Relationship{
		ID:               r.ID.String(),
		UserID:           r.UserID.String(),
		EntityAID:        r.EntityAID.String(),
		EntityBID:        r.EntityBID.String(),
		RelationshipType: r.RelationshipType,
		Notes:            r.Notes,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func RelationshipsFromDB(rows []pgdb.Relationship) []common.Relationship {
	return mapRows(rows, RelationshipFromDB)
}

func SocialAccountFromDB(s pgdb.SocialAccount) common.SocialAccount {
	return common.SocialAccount{
		ID:             s.ID.String(),
		EntityID:       s.EntityID.String(),
		Platform:       common.SocialPlatform(s.Platform),
		Username:       s.Username,
		UserIDPlatform: s.UserIDPlatform,
		DisplayName:    s.DisplayName,
		ProfileURL:     s.ProfileUrl,
		AvatarURL:      s.AvatarUrl,
		Notes:          s.Notes,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func SocialAccountsFromDB(rows []pgdb.SocialAccount) []common.SocialAccount {
	return mapRows(rows, SocialAccountFromDB)
}

func TagFromDB(t pgdb.Tag) common.Tag {
	return common.Tag{
		ID:        t.ID.String(),
		UserID:    t.UserID.String(),
		Name:      t.Name,
		Color:     t.Color,
		CreatedAt: t.CreatedAt,
	}
}

func TagsFromDB(rows []pgdb.Tag) []common.Tag {
	return mapRows(rows, TagFromDB)
}

func EntityImageFromDB(i pgdb.EntityImage) common.EntityImage {
	return common.EntityImage{
		ID:        i.ID.String(),
		EntityID:  i.EntityID.String(),
		ImageURL:  i.ImageUrl,
		ObjectKey: i.ObjectKey,
		Title:     i.Title,
		Notes:     i.Notes,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func EntityImagesFromDB(rows []pgdb.EntityImage) []common.EntityImage {
	return mapRows(rows, EntityImageFromDB)
}

func EntityDocumentFromDB(d pgdb.EntityDocument) common.EntityDocument {
	return common.EntityDocument{
		ID:            d.ID.String(),
		EntityID:      d.EntityID.String(),
		Title:         d.Title,
		ObjectKey:     d.ObjectKey,
		FileName:      d.FileName,
		FileType:      d.FileType,
		FileSize:      d.FileSize,
		Notes:         d.Notes,
		ExtractStatus: common.ExtractStatus(d.ExtractStatus),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func EntityDocumentsFromDB(rows []pgdb.EntityDocument) []common.EntityDocument {
	return mapRows(rows, EntityDocumentFromDB)
}
