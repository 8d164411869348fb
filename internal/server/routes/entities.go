package routes

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/osint-hub/backend/internal/server/middleware"
	"github.com/osint-hub/backend/internal/storage"
	"github.com/osint-hub/backend/internal/util"
	"github.com/osint-hub/backend/pkg/common"
	pgdb "github.com/osint-hub/backend/pkg/db/pgx"
	"github.com/osint-hub/backend/pkg/logger"
	"github.com/osint-hub/backend/pkg/render"
	pgstore "github.com/osint-hub/backend/pkg/store/pgx"
)

type entityBody struct {
	Name          *string `json:"name"`
	Type          *string `json:"type"`
	Notes         *string `json:"notes"`
	IPs           *string `json:"ips"`
	Domains       *string `json:"domains"`
	HostingInfo   *string `json:"hosting_info"`
	WebArchiveURL *string `json:"web_archive_url" validate:"omitempty,url"`
}

// entityFields is the validated form of an entityBody applied on top of an
// existing entity.
type entityFields struct {
	name          string
	entityType    common.EntityType
	notes         *string
	ips           *string
	domains       *string
	hostingInfo   *string
	webArchiveURL *string
}

func (b entityBody) apply(base entityFields) (entityFields, error) {
	f := base
	if b.Name != nil {
		f.name = strings.TrimSpace(*b.Name)
	}
	if b.Type != nil {
		f.entityType = common.EntityType(strings.TrimSpace(*b.Type))
	}
	if f.entityType == "" {
		f.entityType = common.EntityTypePerson
	}
	if f.name == "" || !f.entityType.Valid() {
		return f, common.ErrInvalidEntity
	}

	f.notes = patchString(f.notes, b.Notes)
	f.ips = patchString(f.ips, b.IPs)
	f.domains = patchString(f.domains, b.Domains)
	f.hostingInfo = patchString(f.hostingInfo, b.HostingInfo)
	f.webArchiveURL = patchString(f.webArchiveURL, b.WebArchiveURL)

	// website details only make sense on websites
	if f.entityType != common.EntityTypeWebsite {
		f.ips, f.domains, f.hostingInfo, f.webArchiveURL = nil, nil, nil, nil
	}
	return f, nil
}

// patchString returns current when patch is absent and the trimmed patch
// otherwise, with an empty string clearing the value.
func patchString(current, patch *string) *string {
	if patch == nil {
		return current
	}
	return util.OptionalString(patch)
}

func fieldsOf(e pgdb.Entity) entityFields {
	return entityFields{
		name:          e.Name,
		entityType:    common.EntityType(e.Type),
		notes:         e.Notes,
		ips:           e.Ips,
		domains:       e.Domains,
		hostingInfo:   e.HostingInfo,
		webArchiveURL: e.WebArchiveUrl,
	}
}

// GetEntitiesHandler lists the entities of the user, newest first. The
// optional q parameter searches name, type, notes and extracted document
// text; tag restricts the list to entities carrying that tag.
func GetEntitiesHandler(c echo.Context) error {
	type listEntitiesParams struct {
		Query string `query:"q"`
		Tag   string `query:"tag"`
	}

	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	params := new(listEntitiesParams)
	if err := c.Bind(params); err != nil {
		return badRequest(c, "Invalid query parameters")
	}

	arg := pgdb.ListEntitiesParams{UserID: userID}
	if q := strings.TrimSpace(params.Query); q != "" {
		arg.Query = &q
	}
	if params.Tag != "" {
		tagID, err := uuid.Parse(params.Tag)
		if err != nil {
			return badRequest(c, "Invalid tag id")
		}
		arg.TagID = &tagID
	}

	q := pgdb.New(appContext(c).App.DBConn)
	entities, err := q.ListEntities(c.Request().Context(), arg)
	if err != nil {
		return respondError(c, remote("list entities", err))
	}

	return c.JSON(http.StatusOK, pgstore.EntitiesFromDB(entities))
}

func GetEntityHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, pgstore.EntityFromDB(middleware.OwnedEntity(c)))
}

func CreateEntityHandler(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	body := new(entityBody)
	if err := c.Bind(body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	f, err := body.apply(entityFields{})
	if err != nil {
		return respondError(c, err)
	}

	q := pgdb.New(appContext(c).App.DBConn)
	entity, err := q.CreateEntity(c.Request().Context(), pgdb.CreateEntityParams{
		UserID:        userID,
		Name:          f.name,
		Type:          string(f.entityType),
		Notes:         f.notes,
		Ips:           f.ips,
		Domains:       f.domains,
		HostingInfo:   f.hostingInfo,
		WebArchiveUrl: f.webArchiveURL,
	})
	if err != nil {
		return respondError(c, remote("create entity", err))
	}

	logger.Info("Entity created", "id", entity.ID, "type", entity.Type)
	return c.JSON(http.StatusCreated, pgstore.EntityFromDB(entity))
}

// UpdateEntityHandler applies the fields present in the body and keeps the
// others.
func UpdateEntityHandler(c echo.Context) error {
	current := middleware.OwnedEntity(c)

	body := new(entityBody)
	if err := c.Bind(body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := c.Validate(body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	f, err := body.apply(fieldsOf(current))
	if err != nil {
		return respondError(c, err)
	}

	q := pgdb.New(appContext(c).App.DBConn)
	entity, err := q.UpdateEntity(c.Request().Context(), pgdb.UpdateEntityParams{
		ID:            current.ID,
		UserID:        current.UserID,
		Name:          f.name,
		Type:          string(f.entityType),
		Notes:         f.notes,
		Ips:           f.ips,
		Domains:       f.domains,
		HostingInfo:   f.hostingInfo,
		WebArchiveUrl: f.webArchiveURL,
	})
	if err != nil {
		return respondError(c, remote("update entity", err))
	}

	return c.JSON(http.StatusOK, pgstore.EntityFromDB(entity))
}

// DeleteEntityHandler removes the entity. Relationships, social accounts,
// images, documents and tag links go with it; stored objects are removed
// afterwards.
func DeleteEntityHandler(c echo.Context) error {
	entity := middleware.OwnedEntity(c)
	app := appContext(c).App
	ctx := c.Request().Context()

	q := pgdb.New(app.DBConn)
	n, err := q.DeleteEntity(ctx, pgdb.DeleteEntityParams{ID: entity.ID, UserID: entity.UserID})
	if err != nil {
		return respondError(c, remote("delete entity", err))
	}
	if n == 0 {
		return respondError(c, common.ErrNotFound)
	}

	if err := app.S3.DeleteFolder(ctx, storage.EntityPrefix(entity.ID.String())+"/"); err != nil {
		logger.Warn("Failed to delete entity objects", "entity_id", entity.ID, "err", err)
	}

	logger.Info("Entity deleted", "id", entity.ID)
	return c.NoContent(http.StatusNoContent)
}

// GetEntityStatsHandler counts the user's entities by type.
func GetEntityStatsHandler(c echo.Context) error {
	type entityStats struct {
		Total         int64                       `json:"total"`
		People        int64                       `json:"people"`
		Organizations int64                       `json:"organizations"`
		ByType        map[common.EntityType]int64 `json:"by_type"`
	}

	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, err)
	}

	rows, err := pgdb.New(appContext(c).App.DBConn).CountEntitiesByType(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, remote("count entities", err))
	}

	stats := entityStats{ByType: make(map[common.EntityType]int64, len(common.EntityTypes))}
	for _, t := range common.EntityTypes {
		stats.ByType[t] = 0
	}
	for _, r := range rows {
		t := common.EntityType(r.Type)
		stats.ByType[t] = r.Count
		stats.Total += r.Count
		switch t {
		case common.EntityTypePerson:
			stats.People += r.Count
		case common.EntityTypeGroup, common.EntityTypeOrganization:
			stats.Organizations += r.Count
		}
	}

	return c.JSON(http.StatusOK, stats)
}

// UploadAvatarHandler turns the uploaded image into a round avatar and sets
// it on the entity. Previous avatars are removed afterwards.
func UploadAvatarHandler(c echo.Context) error {
	entity := middleware.OwnedEntity(c)
	app := appContext(c).App
	ctx := c.Request().Context()

	raw, err := readUpload(c, "file", app.MaxImageBytes)
	if err != nil {
		return respondError(c, err)
	}

	avatar, err := render.Avatar(raw.data, render.AvatarSize)
	if err != nil {
		return badRequest(c, "File is not a supported image")
	}

	fileID, err := gonanoid.New()
	if err != nil {
		return respondError(c, err)
	}
	prefix := storage.AvatarPrefix(entity.ID.String())
	key, err := app.S3.PutFile(ctx, prefix, "avatar.png", fileID, bytes.NewReader(avatar), "image/png")
	if err != nil {
		return respondError(c, err)
	}

	avatarURL := app.S3.PublicURL(key)
	updated, err := pgdb.New(app.DBConn).SetEntityAvatar(ctx, pgdb.SetEntityAvatarParams{
		ID:        entity.ID,
		UserID:    entity.UserID,
		AvatarUrl: &avatarURL,
	})
	if err != nil {
		if delErr := app.S3.DeleteFile(ctx, key); delErr != nil {
			logger.Warn("Failed to delete orphaned avatar", "key", key, "err", delErr)
		}
		return respondError(c, remote("set avatar", err))
	}

	if old, err := app.S3.ListFilesWithPrefix(ctx, prefix+"/"); err == nil {
		stale := make([]string, 0, len(old))
		for _, k := range old {
			if k != key {
				stale = append(stale, k)
			}
		}
		if err := app.S3.DeleteKeys(ctx, stale); err != nil {
			logger.Warn("Failed to delete old avatars", "entity_id", entity.ID, "err", err)
		}
	}

	return c.JSON(http.StatusOK, pgstore.EntityFromDB(updated))
}

type upload struct {
	name        string
	contentType string
	data        []byte
}

var errTooLarge = common.NewValidationError("file_too_large", "file exceeds the size limit")

// readUpload reads the multipart file field into memory, refusing files
// larger than limit bytes.
func readUpload(c echo.Context, field string, limit int64) (upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return upload{}, common.NewValidationError("missing_file", "a file is required")
	}
	if limit > 0 && fh.Size > limit {
		return upload{}, errTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return upload{}, common.NewValidationError("invalid_file", "file could not be read")
	}
	defer src.Close()

	reader := io.Reader(src)
	if limit > 0 {
		reader = io.LimitReader(src, limit+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return upload{}, errors.Join(common.NewValidationError("invalid_file", "file could not be read"), err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return upload{}, errTooLarge
	}

	return upload{
		name:        fh.Filename,
		contentType: fh.Header.Get("Content-Type"),
		data:        data,
	}, nil
}
