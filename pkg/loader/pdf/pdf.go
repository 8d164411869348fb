package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/singleflight"

	"github.com/osint-hub/backend/pkg/loader"
)

// PDFFileLoader extracts the embedded text layer of PDF files. Scanned
// documents without a text layer yield an empty result.
type PDFFileLoader struct {
	loader loader.FileLoader

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

func NewPDFFileLoader(l loader.FileLoader) *PDFFileLoader {
	return &PDFFileLoader{
		loader: l,
		cache:  make(map[string][]byte),
	}
}

// GetFileText extracts text from a PDF file.
func (l *PDFFileLoader) GetFileText(ctx context.Context, file loader.File) ([]byte, error) {
	if file.Kind() != loader.KindPDF {
		return nil, loader.ErrUnsupported
	}

	key := loader.CacheKey(file)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		content, err := l.loader.GetFileText(ctx, file)
		if err != nil {
			return nil, err
		}

		text, err := parsePDF(content)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = text
		l.cacheMu.Unlock()

		return text, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

func parsePDF(content []byte) (text []byte, err error) {
	// the reader panics on some truncated xref tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to parse pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("failed to extract pdf text: %w", err)
	}

	return io.ReadAll(plain)
}

// Forget drops the cached text of file.
func (l *PDFFileLoader) Forget(file loader.File) {
	l.cacheMu.Lock()
	delete(l.cache, loader.CacheKey(file))
	l.cacheMu.Unlock()
}
