package extract

import (
	"context"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/golang-lru/v2"
	"github.com/huangsam/weektrack/internal/contract"
)

// CachedExtractor memoizes extracted text in memory. Entries are keyed by
// path, size and modification time, so an edited document is read again.
// Failed extractions are not cached.
type CachedExtractor struct {
	next  contract.Extractor
	cache *lru.Cache[uint64, string]
}

var _ contract.Extractor = &CachedExtractor{} // Compile-time check

// WithCache wraps next with an LRU cache of the given size. A size of zero
// returns next unchanged.
func WithCache(next contract.Extractor, size int) (contract.Extractor, error) {
	if size <= 0 {
		return next, nil
	}
	cache, err := lru.New[uint64, string](size)
	if err != nil {
		return nil, err
	}
	return &CachedExtractor{next: next, cache: cache}, nil
}

// Extract implements the contract.Extractor interface.
func (e *CachedExtractor) Extract(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	key := cacheKey(path, info)
	if text, ok := e.cache.Get(key); ok {
		return text, nil
	}

	text, err := e.next.Extract(ctx, path)
	if err != nil {
		return "", err
	}
	e.cache.Add(key, text)
	return text, nil
}

// Len returns the number of cached documents.
func (e *CachedExtractor) Len() int {
	return e.cache.Len()
}

// cacheKey hashes the identity of a document version.
func cacheKey(path string, info os.FileInfo) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(path)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(strconv.FormatInt(info.Size(), 10))
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(strconv.FormatInt(info.ModTime().UnixNano(), 10))
	return d.Sum64()
}
