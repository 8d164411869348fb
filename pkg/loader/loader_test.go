package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	for _, mt := range []string{MimeText, MimeJSON, MimePDF, MimeDocx, MimeODT, MimeWord, MimeRar, "text/plain; charset=utf-8"} {
		assert.True(t, Allowed(mt), mt)
	}
	for _, mt := range []string{"image/png", "application/zip", ""} {
		assert.False(t, Allowed(mt), mt)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		mime, name string
		want       Kind
	}{
		{MimePDF, "a.bin", KindPDF},
		{MimeJSON, "data.json", KindText},
		{MimeDocx, "cv.docx", KindDocx},
		{MimeODT, "notes.odt", KindODT},
		{MimeWord, "old.doc", KindNone},
		{"application/octet-stream", "scan.PDF", KindPDF},
		{"application/octet-stream", "archive.zip", KindNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.mime, tt.name), tt.mime+" "+tt.name)
	}
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "d1:entities/e/documents/x.pdf", CacheKey(File{ID: "d1", Key: "entities/e/documents/x.pdf"}))
}
