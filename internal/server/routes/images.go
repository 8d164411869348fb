package routes

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/osint-hub/backend/internal/server/middleware"
	"github.com/osint-hub/backend/internal/storage"
	"github.com/osint-hub/backend/internal/util"
	"github.com/osint-hub/backend/pkg/common"
	pgdb "github.com/osint-hub/backend/pkg/db/pgx"
	"github.com/osint-hub/backend/pkg/logger"
	pgstore "github.com/osint-hub/backend/pkg/store/pgx"
)

var errNotAnImage = common.NewValidationError("invalid_image", "file must be an image")

func GetImagesHandler(c echo.Context) error {
	entity := middleware.OwnedEntity(c)
	images, err := pgdb.New(appContext(c).App.DBConn).ListEntityImages(c.Request().Context(), entity.ID)
	if err != nil {
		return respondError(c, remote("list images", err))
	}
	return c.JSON(http.StatusOK, pgstore.EntityImagesFromDB(images))
}

// CreateImageHandler attaches an image to the entity. A multipart request
// uploads the file to object storage; a JSON request references an external
// image_url.
func CreateImageHandler(c echo.Context) error {
	type imageURLBody struct {
		ImageURL string  `json:"image_url" validate:"required,url"`
		Title    *string `json:"title"`
		Notes    *string `json:"notes"`
	}

	entity := middleware.OwnedEntity(c)
	app := appContext(c).App
	ctx := c.Request().Context()
	q := pgdb.New(app.DBConn)

	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		body := new(imageURLBody)
		if err := c.Bind(body); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := c.Validate(body); err != nil {
			return badRequest(c, "Invalid request body")
		}

		image, err := q.CreateEntityImage(ctx, pgdb.CreateEntityImageParams{
			EntityID: entity.ID,
			ImageUrl: body.ImageURL,
			Title:    util.OptionalString(body.Title),
			Notes:    util.OptionalString(body.Notes),
		})
		if err != nil {
			return respondError(c, remote("create image", err))
		}
		return c.JSON(http.StatusCreated, pgstore.EntityImageFromDB(image))
	}

	file, err := readUpload(c, "file", app.MaxImageBytes)
	if err != nil {
		return respondError(c, err)
	}
	contentType := file.contentType
	if !strings.HasPrefix(contentType, "image/") {
		contentType = http.DetectContentType(file.data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return respondError(c, errNotAnImage)
	}

	fileID, err := gonanoid.New()
	if err != nil {
		return respondError(c, err)
	}
	key, err := app.S3.PutFile(ctx, storage.ImagePrefix(entity.ID.String()), file.name, fileID, bytes.NewReader(file.data), contentType)
	if err != nil {
		return respondError(c, err)
	}

	title := c.FormValue("title")
	notes := c.FormValue("notes")
	image, err := q.CreateEntityImage(ctx, pgdb.CreateEntityImageParams{
		EntityID:  entity.ID,
		ImageUrl:  app.S3.PublicURL(key),
		ObjectKey: &key,
		Title:     util.OptionalString(&title),
		Notes:     util.OptionalString(&notes),
	})
	if err != nil {
		if delErr := app.S3.DeleteFile(ctx, key); delErr != nil {
			logger.Warn("Failed to delete orphaned image", "key", key, "err", delErr)
		}
		return respondError(c, remote("create image", err))
	}

	return c.JSON(http.StatusCreated, pgstore.EntityImageFromDB(image))
}

type imagePatch struct {
	Title *string `json:"title"`
	Notes *string `json:"notes"`
}

func (b imagePatch) apply(current pgdb.EntityImage) pgdb.UpdateEntityImageParams {
	return pgdb.UpdateEntityImageParams{
		ID:       current.ID,
		EntityID: current.EntityID,
		Title:    patchString(current.Title, b.Title),
		Notes:    patchString(current.Notes, b.Notes),
	}
}

// UpdateImageHandler applies the fields present in the body and keeps the
// others.
func UpdateImageHandler(c echo.Context) error {
	entity := middleware.OwnedEntity(c)
	imageID, err := pathID(c, "image_id")
	if err != nil {
		return respondError(c, err)
	}
	body := new(imagePatch)
	if err := c.Bind(body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	q := pgdb.New(appContext(c).App.DBConn)
	ctx := c.Request().Context()
	current, err := q.GetEntityImage(ctx, pgdb.GetEntityImageParams{ID: imageID, EntityID: entity.ID})
	if err != nil {
		return respondError(c, remote("get image", err))
	}

	image, err := q.UpdateEntityImage(ctx, body.apply(current))
	if err != nil {
		return respondError(c, remote("update image", err))
	}
	return c.JSON(http.StatusOK, pgstore.EntityImageFromDB(image))
}

// DeleteImageHandler removes the image and, for uploaded images, its object.
func DeleteImageHandler(c echo.Context) error {
	entity := middleware.OwnedEntity(c)
	imageID, err := pathID(c, "image_id")
	if err != nil {
		return respondError(c, err)
	}

	app := appContext(c).App
	ctx := c.Request().Context()
	key, err := pgdb.New(app.DBConn).DeleteEntityImage(ctx, pgdb.DeleteEntityImageParams{
		ID:       imageID,
		EntityID: entity.ID,
	})
	if err != nil {
		return respondError(c, remote("delete image", err))
	}

	if key != nil {
		if err := app.S3.DeleteFile(ctx, *key); err != nil {
			logger.Warn("Failed to delete image object", "key", *key, "err", err)
		}
	}
	return c.NoContent(http.StatusNoContent)
}
