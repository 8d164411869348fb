package loader

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned for documents no extractor understands.
var ErrUnsupported = errors.New("unsupported document type")

// Kind is the text extraction strategy of a document.
type Kind string

const (
	KindText Kind = "text"
	KindDocx Kind = "docx"
	KindODT  Kind = "odt"
	KindPDF  Kind = "pdf"
	// KindNone covers accepted uploads that carry no extractable text, such
	// as rar archives and legacy .doc files.
	KindNone Kind = "none"
)

// Document MIME types accepted for upload.
const (
	MimeText  = "text/plain"
	MimeJSON  = "application/json"
	MimePDF   = "application/pdf"
	MimeDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeODT   = "application/vnd.oasis.opendocument.text"
	MimeWord  = "application/msword"
	MimeRar   = "application/vnd.rar"
	MimeXRar  = "application/x-rar-compressed"
	MimeXRar2 = "application/x-rar"
)

var kindsByMime = map[string]Kind{
	MimeText:  KindText,
	MimeJSON:  KindText,
	MimePDF:   KindPDF,
	MimeDocx:  KindDocx,
	MimeODT:   KindODT,
	MimeWord:  KindNone,
	MimeRar:   KindNone,
	MimeXRar:  KindNone,
	MimeXRar2: KindNone,
}

var kindsByExt = map[string]Kind{
	".txt":  KindText,
	".json": KindText,
	".pdf":  KindPDF,
	".docx": KindDocx,
	".odt":  KindODT,
	".doc":  KindNone,
	".rar":  KindNone,
}

// Allowed reports whether a document of this MIME type may be uploaded.
func Allowed(mimeType string) bool {
	_, ok := kindsByMime[normalizeMime(mimeType)]
	return ok
}

// KindOf picks the extraction strategy from the MIME type, falling back to
// the file extension for generic types.
func KindOf(mimeType, name string) Kind {
	if k, ok := kindsByMime[normalizeMime(mimeType)]; ok {
		return k
	}
	if k, ok := kindsByExt[strings.ToLower(filepath.Ext(name))]; ok {
		return k
	}
	return KindNone
}

func normalizeMime(mimeType string) string {
	mt, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

// File is a stored document whose bytes are fetched through Loader.
type File struct {
	ID       string
	Key      string
	Name     string
	MimeType string
	Loader   FileLoader
}

func (f File) Kind() Kind {
	return KindOf(f.MimeType, f.Name)
}

// GetText returns the file content as produced by its Loader.
func (f File) GetText(ctx context.Context) ([]byte, error) {
	return f.Loader.GetFileText(ctx, f)
}

// FileLoader loads the content of a File. Raw loaders return the stored
// bytes; extracting loaders wrap a raw loader and return plain text.
type FileLoader interface {
	GetFileText(ctx context.Context, file File) ([]byte, error)
}

// CacheKey generates a unique cache key for a File based on its ID and key.
func CacheKey(file File) string {
	return file.ID + ":" + file.Key
}
