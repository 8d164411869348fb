package text

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osint-hub/backend/pkg/loader"
)

type bytesLoader []byte

func (b bytesLoader) GetFileText(context.Context, loader.File) ([]byte, error) {
	return b, nil
}

func TestTextFileLoader_Plain(t *testing.T) {
	l := NewTextFileLoader(bytesLoader("seen on\x00 forum"))
	out, err := l.GetFileText(context.Background(), loader.File{Name: "notes.txt", MimeType: loader.MimeText})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "\x00")
	assert.Contains(t, string(out), "forum")
}

func TestTextFileLoader_JSON(t *testing.T) {
	l := NewTextFileLoader(bytesLoader(`{"handle":"jd","ids":[1,2]}`))
	out, err := l.GetFileText(context.Background(), loader.File{Name: "dump.json", MimeType: loader.MimeJSON})
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n  \"handle\": \"jd\"")
}

func TestTextFileLoader_InvalidJSONKeptAsIs(t *testing.T) {
	l := NewTextFileLoader(bytesLoader(`{broken`))
	out, err := l.GetFileText(context.Background(), loader.File{Name: "dump.json", MimeType: loader.MimeJSON})
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(out))
}

func TestTextFileLoader_Unsupported(t *testing.T) {
	l := NewTextFileLoader(bytesLoader("x"))
	_, err := l.GetFileText(context.Background(), loader.File{Name: "a.pdf", MimeType: loader.MimePDF})
	assert.ErrorIs(t, err, loader.ErrUnsupported)
}
