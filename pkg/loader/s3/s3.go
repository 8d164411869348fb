package s3

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/osint-hub/backend/pkg/loader"
)

// ObjectGetter fetches a stored object by key.
type ObjectGetter interface {
	GetFile(ctx context.Context, key string) ([]byte, error)
}

// S3FileLoader loads file contents from object storage. Concurrent loads
// of the same file share one request and results stay cached until Forget.
type S3FileLoader struct {
	objects ObjectGetter

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

func NewS3FileLoader(objects ObjectGetter) *S3FileLoader {
	return &S3FileLoader{
		objects: objects,
		cache:   make(map[string][]byte),
	}
}

// GetFileText returns the raw bytes stored under file.Key.
func (l *S3FileLoader) GetFileText(ctx context.Context, file loader.File) ([]byte, error) {
	cacheKey := loader.CacheKey(file)

	l.cacheMu.RLock()
	if cached, ok := l.cache[cacheKey]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(cacheKey, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[cacheKey]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		byts, err := l.objects.GetFile(ctx, file.Key)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[cacheKey] = byts
		l.cacheMu.Unlock()

		return byts, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

// Forget drops the cached content of file.
func (l *S3FileLoader) Forget(file loader.File) {
	l.cacheMu.Lock()
	delete(l.cache, loader.CacheKey(file))
	l.cacheMu.Unlock()
}
