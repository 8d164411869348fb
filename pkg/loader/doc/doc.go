package doc

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/osint-hub/backend/pkg/loader"
)

// DocFileLoader extracts the text of Word (.docx) and OpenDocument (.odt)
// files loaded through another FileLoader.
type DocFileLoader struct {
	loader loader.FileLoader

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

func NewDocFileLoader(l loader.FileLoader) *DocFileLoader {
	return &DocFileLoader{
		loader: l,
		cache:  make(map[string][]byte),
	}
}

// GetFileText returns the plain text of file. Files that are neither docx
// nor odt yield loader.ErrUnsupported.
func (l *DocFileLoader) GetFileText(ctx context.Context, file loader.File) ([]byte, error) {
	parse := parseDocx
	switch file.Kind() {
	case loader.KindDocx:
	case loader.KindODT:
		parse = parseODT
	default:
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

		text, err := parse(content)
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

// Forget drops the cached text of file.
func (l *DocFileLoader) Forget(file loader.File) {
	l.cacheMu.Lock()
	delete(l.cache, loader.CacheKey(file))
	l.cacheMu.Unlock()
}
