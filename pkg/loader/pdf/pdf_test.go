package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osint-hub/backend/pkg/loader"
)

type bytesLoader []byte

func (b bytesLoader) GetFileText(context.Context, loader.File) ([]byte, error) {
	return b, nil
}

func TestPDFFileLoader_Unsupported(t *testing.T) {
	l := NewPDFFileLoader(bytesLoader("hello"))
	_, err := l.GetFileText(context.Background(), loader.File{ID: "1", Name: "a.txt", MimeType: loader.MimeText})
	assert.ErrorIs(t, err, loader.ErrUnsupported)
}

func TestPDFFileLoader_Garbage(t *testing.T) {
	l := NewPDFFileLoader(bytesLoader("definitely not a pdf"))
	_, err := l.GetFileText(context.Background(), loader.File{ID: "1", Name: "a.pdf", MimeType: loader.MimePDF})
	assert.Error(t, err)
}
