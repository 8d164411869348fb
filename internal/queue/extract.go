package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/osint-hub/backend/internal/util"
	"github.com/osint-hub/backend/pkg/common"
	pgdb "github.com/osint-hub/backend/pkg/db/pgx"
	"github.com/osint-hub/backend/pkg/leaselock"
	"github.com/osint-hub/backend/pkg/loader"
	"github.com/osint-hub/backend/pkg/loader/doc"
	"github.com/osint-hub/backend/pkg/loader/pdf"
	"github.com/osint-hub/backend/pkg/loader/text"
	"github.com/osint-hub/backend/pkg/logger"
)

// ExtractDocumentMsg asks the worker to extract the text of one document.
type ExtractDocumentMsg struct {
	DocumentID string `json:"document_id"`
	EntityID   string `json:"entity_id"`
}

// DocumentStore reads documents and records extraction results.
type DocumentStore interface {
	GetDocument(ctx context.Context, id uuid.UUID) (pgdb.EntityDocument, error)
	SetDocumentExtraction(ctx context.Context, arg pgdb.SetDocumentExtractionParams) error
}

// Locker runs fn while holding the lease on key.
type Locker interface {
	WithLease(ctx context.Context, key string, opts leaselock.Options, fn func(ctx context.Context) error) error
}

type forgetter interface {
	Forget(file loader.File)
}

// Extractor fills in the extracted text of uploaded documents.
type Extractor struct {
	docs  DocumentStore
	locks Locker
	raw   loader.FileLoader

	loaders map[loader.Kind]loader.FileLoader
}

// NewExtractor returns an Extractor reading object bytes through raw.
func NewExtractor(docs DocumentStore, locks Locker, raw loader.FileLoader) *Extractor {
	officeLoader := doc.NewDocFileLoader(raw)
	return &Extractor{
		docs:  docs,
		locks: locks,
		raw:   raw,
		loaders: map[loader.Kind]loader.FileLoader{
			loader.KindText: text.NewTextFileLoader(raw),
			loader.KindDocx: officeLoader,
			loader.KindODT:  officeLoader,
			loader.KindPDF:  pdf.NewPDFFileLoader(raw),
		},
	}
}

// ProcessExtractMessage handles one message of QueueDocumentExtract.
// Malformed messages are dropped. Object storage failures are returned so
// the message is retried; documents that cannot be parsed are marked failed.
func (e *Extractor) ProcessExtractMessage(ctx context.Context, body []byte) error {
	var msg ExtractDocumentMsg
	if err := json.Unmarshal(body, &msg); err != nil {
		logger.Error("[Queue] Dropping malformed extract message", "err", err)
		return nil
	}
	id, err := uuid.Parse(msg.DocumentID)
	if err != nil {
		logger.Error("[Queue] Dropping extract message with invalid document id", "document_id", msg.DocumentID)
		return nil
	}

	return e.locks.WithLease(ctx, leaselock.DocumentKey(id.String()), leaselock.Options{
		TTL:         5 * time.Minute,
		Wait:        true,
		TokenPrefix: "extract/",
	}, func(ctx context.Context) error {
		return e.extract(ctx, id)
	})
}

func (e *Extractor) extract(ctx context.Context, id uuid.UUID) error {
	log := logger.With("document_id", id)

	d, err := e.docs.GetDocument(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Info("[Queue] Document no longer exists")
		return nil
	}
	if err != nil {
		return fmt.Errorf("get document %s: %w", id, err)
	}
	if common.ExtractStatus(d.ExtractStatus) != common.ExtractStatusPending {
		log.Debug("[Queue] Document already processed", "status", d.ExtractStatus)
		return nil
	}

	file := loader.File{
		ID:       d.ID.String(),
		Key:      d.ObjectKey,
		Name:     d.FileName,
		MimeType: d.FileType,
		Loader:   e.raw,
	}
	defer e.forget(file)

	start := time.Now()
	status, extracted, err := e.extractText(ctx, log, file)
	if err != nil {
		return err
	}

	err = e.docs.SetDocumentExtraction(ctx, pgdb.SetDocumentExtractionParams{
		ID:            d.ID,
		ExtractedText: extracted,
		ExtractStatus: string(status),
	})
	if err != nil {
		return fmt.Errorf("store extraction of %s: %w", id, err)
	}

	log.Info("[Queue] Document processed",
		"kind", file.Kind(),
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func (e *Extractor) extractText(ctx context.Context, log logger.Fields, file loader.File) (common.ExtractStatus, *string, error) {
	l, ok := e.loaders[file.Kind()]
	if !ok {
		return common.ExtractStatusUnsupported, nil, nil
	}

	content, err := l.GetFileText(ctx, file)
	switch {
	case errors.Is(err, loader.ErrUnsupported):
		return common.ExtractStatusUnsupported, nil, nil
	case errors.Is(err, common.ErrNotFound):
		log.Warn("[Queue] Document object is missing", "key", file.Key)
		return common.ExtractStatusFailed, nil, nil
	case common.IsRemote(err), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "", nil, err
	case err != nil:
		log.Warn("[Queue] Failed to extract document text", "kind", file.Kind(), "err", err)
		return common.ExtractStatusFailed, nil, nil
	}

	normalized := util.NormalizeExtractedText(string(content))
	if normalized == "" {
		return common.ExtractStatusDone, nil, nil
	}
	return common.ExtractStatusDone, &normalized, nil
}

func (e *Extractor) forget(file loader.File) {
	if f, ok := e.raw.(forgetter); ok {
		f.Forget(file)
	}
	for _, l := range e.loaders {
		if f, ok := l.(forgetter); ok {
			f.Forget(file)
		}
	}
}
