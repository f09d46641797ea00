package extract

import (
	"context"
	"time"

	"github.com/huangsam/weektrack/internal/contract"
)

// TimeoutExtractor bounds every extraction by a fixed duration. A hung
// extraction keeps running in the background, but the scan moves on.
type TimeoutExtractor struct {
	next    contract.Extractor
	timeout time.Duration
}

var _ contract.Extractor = &TimeoutExtractor{} // Compile-time check

// WithTimeout wraps next with a per-document timeout. A zero or negative
// timeout returns next unchanged.
func WithTimeout(next contract.Extractor, timeout time.Duration) contract.Extractor {
	if timeout <= 0 {
		return next
	}
	return &TimeoutExtractor{next: next, timeout: timeout}
}

type extractResult struct {
	text string
	err  error
}

// Extract implements the contract.Extractor interface.
func (e *TimeoutExtractor) Extract(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	done := make(chan extractResult, 1)
	go func() {
		text, err := e.next.Extract(ctx, path)
		done <- extractResult{text: text, err: err}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
