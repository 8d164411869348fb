package routes

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/osint-hub/backend/internal/queue"
	"github.com/osint-hub/backend/internal/server/middleware"
	"github.com/osint-hub/backend/internal/storage"
	"github.com/osint-hub/backend/internal/util"
	"github.com/osint-hub/backend/pkg/common"
	pgdb "github.com/osint-hub/backend/pkg/db/pgx"
	"github.com/osint-hub/backend/pkg/loader"
	"github.com/osint-hub/backend/pkg/logger"
	pgstore "github.com/osint-hub/backend/pkg/store/pgx"
)

var errDocumentType = common.NewValidationError("invalid_document_type", "document type is not allowed")

func GetDocumentsHandler(c echo.Context) error {
	entity := middleware.OwnedEntity(c)
	docs, err := pgdb.New(appContext(c).App.DBConn).ListEntityDocuments(c.Request().Context(), entity.ID)
	if err != nil {
		return respondError(c, remote("list documents", err))
	}
	return c.JSON(http.StatusOK, pgstore.EntityDocumentsFromDB(docs))
}

// UploadDocumentHandler stores the uploaded file and queues it for text
// extraction. The title defaults to the file name.
func UploadDocumentHandler(c echo.Context) error {
	entity := middleware.OwnedEntity(c)
	app := appContext(c).App
	ctx := c.Request().Context()

	file, err := readUpload(c, "file", app.MaxDocumentBytes)
	if err != nil {
		return respondError(c, err)
	}
	mimeType := documentMime(file)
	if !loader.Allowed(mimeType) {
		return respondError(c, errDocumentType)
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		title = file.name
	}
	notes := c.FormValue("notes")

	fileID, err := gonanoid.New()
	if err != nil {
		return respondError(c, err)
	}
	key, err := app.S3.PutFile(ctx, storage.DocumentPrefix(entity.ID.String()), file.name, fileID, bytes.NewReader(file.data), mimeType)
	if err != nil {
		return respondError(c, err)
	}

	doc, err := pgdb.New(app.DBConn).CreateEntityDocument(ctx, pgdb.CreateEntityDocumentParams{
		EntityID:  entity.ID,
		Title:     title,
		ObjectKey: key,
		FileName:  file.name,
		FileType:  mimeType,
		FileSize:  int64(len(file.data)),
		Notes:     util.OptionalString(&notes),
	})
	if err != nil {
		if delErr := app.S3.DeleteFile(ctx, key); delErr != nil {
			logger.Warn("Failed to delete orphaned document", "key", key, "err", delErr)
		}
		return respondError(c, remote("create document", err))
	}

	msg := util.ConvertStructToJson(queue.ExtractDocumentMsg{
		DocumentID: doc.ID.String(),
		EntityID:   entity.ID.String(),
	})
	if err := app.Queue.Publish(ctx, queue.QueueDocumentExtract, msg); err != nil {
		// the document stays pending until it is queued again
		logger.Error("Failed to queue document for extraction", "document_id", doc.ID, "err", err)
	} else {
		app.Metrics.DocumentQueued()
	}

	return c.JSON(http.StatusCreated, pgstore.EntityDocumentFromDB(doc))
}

// documentMime returns the declared type of an upload, sniffing the content
// when the client sent none or a generic one.
func documentMime(file upload) string {
	mt := strings.ToLower(strings.TrimSpace(file.contentType))
	if mt != "" && mt != "application/octet-stream" {
		mt, _, _ = strings.Cut(mt, ";")
		return mt
	}
	switch loader.KindOf("", file.name) {
	case loader.KindDocx:
		return loader.MimeDocx
	case loader.KindODT:
		return loader.MimeODT
	case loader.KindPDF:
		return loader.MimePDF
	}
	if strings.HasSuffix(strings.ToLower(file.name), ".json") {
		return loader.MimeJSON
	}
	if strings.HasSuffix(strings.ToLower(file.name), ".rar") {
		return loader.MimeRar
	}
	if strings.HasSuffix(strings.ToLower(file.name), ".doc") {
		return loader.MimeWord
	}
	sniffed, _, _ := strings.Cut(http.DetectContentType(file.data), ";")
	return sniffed
}

type documentPatch struct {
	Title *string `json:"title"`
	Notes *string `json:"notes"`
}

func (b documentPatch) apply(current pgdb.EntityDocument) (pgdb.UpdateEntityDocumentParams, error) {
	title := current.Title
	if b.Title != nil {
		title = strings.TrimSpace(*b.Title)
	}
	if title == "" {
		return pgdb.UpdateEntityDocumentParams{}, errMissingTitle
	}
	return pgdb.UpdateEntityDocumentParams{
		ID:       current.ID,
		EntityID: current.EntityID,
		Title:    title,
		Notes:    patchString(current.Notes, b.Notes),
	}, nil
}

var errMissingTitle = common.NewValidationError("missing_title", "title is required")

// UpdateDocumentHandler applies the fields present in the body and keeps
// the others.
func UpdateDocumentHandler(c echo.Context) error {
	entity := middleware.OwnedEntity(c)
	docID, err := pathID(c, "document_id")
	if err != nil {
		return respondError(c, err)
	}
	body := new(documentPatch)
	if err := c.Bind(body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	q := pgdb.New(appContext(c).App.DBConn)
	ctx := c.Request().Context()
	current, err := q.GetEntityDocument(ctx, pgdb.GetEntityDocumentParams{ID: docID, EntityID: entity.ID})
	if err != nil {
		return respondError(c, remote("get document", err))
	}
	arg, err := body.apply(current)
	if err != nil {
		return respondError(c, err)
	}

	doc, err := q.UpdateEntityDocument(ctx, arg)
	if err != nil {
		return respondError(c, remote("update document", err))
	}
	return c.JSON(http.StatusOK, pgstore.EntityDocumentFromDB(doc))
}

func DeleteDocumentHandler(c echo.Context) error {
	entity := middleware.OwnedEntity(c)
	docID, err := pathID(c, "document_id")
	if err != nil {
		return respondError(c, err)
	}

	app := appContext(c).App
	ctx := c.Request().Context()
	key, err := pgdb.New(app.DBConn).DeleteEntityDocument(ctx, pgdb.DeleteEntityDocumentParams{
		ID:       docID,
		EntityID: entity.ID,
	})
	if err != nil {
		return respondError(c, remote("delete document", err))
	}

	if err := app.S3.DeleteFile(ctx, key); err != nil {
		logger.Warn("Failed to delete document object", "key", key, "err", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetDocumentDownloadHandler returns a short lived download link.
func GetDocumentDownloadHandler(c echo.Context) error {
	type downloadResponse struct {
		URL string `json:"url"`
	}

	entity := middleware.OwnedEntity(c)
	docID, err := pathID(c, "document_id")
	if err != nil {
		return respondError(c, err)
	}

	app := appContext(c).App
	ctx := c.Request().Context()
	doc, err := pgdb.New(app.DBConn).GetEntityDocument(ctx, pgdb.GetEntityDocumentParams{
		ID:       docID,
		EntityID: entity.ID,
	})
	if err != nil {
		return respondError(c, remote("get document", err))
	}

	link, err := app.S3.GenerateDownloadLink(ctx, doc.ObjectKey)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, downloadResponse{URL: link})
}
