package text

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/osint-hub/backend/internal/util"
	"github.com/osint-hub/backend/pkg/loader"
)

// TextFileLoader returns plain text and JSON documents as text. JSON is
// re-indented so nested values end up on their own lines.
type TextFileLoader struct {
	loader loader.FileLoader
}

func NewTextFileLoader(l loader.FileLoader) *TextFileLoader {
	return &TextFileLoader{loader: l}
}

func (l *TextFileLoader) GetFileText(ctx context.Context, file loader.File) ([]byte, error) {
	if file.Kind() != loader.KindText {
		return nil, loader.ErrUnsupported
	}

	content, err := l.loader.GetFileText(ctx, file)
	if err != nil {
		return nil, err
	}

	if isJSON(file) {
		var buf bytes.Buffer
		if err := json.Indent(&buf, content, "", "  "); err == nil {
			content = buf.Bytes()
		}
	}

	return []byte(util.SanitizePostgresText(string(content))), nil
}

func isJSON(file loader.File) bool {
	return strings.HasPrefix(strings.ToLower(file.MimeType), loader.MimeJSON) ||
		strings.HasSuffix(strings.ToLower(file.Name), ".json")
}
