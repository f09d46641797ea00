package core

import "context"

// Context keys for scan options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	scanTriggerKey    contextKey = "scanTrigger"
)

// WithSuppressHeader marks the context so that no progress lines are printed.
// The MCP server uses this to keep stdout free for the protocol.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// withScanTrigger records why a scan runs (initial run, file change, tool call).
func withScanTrigger(ctx context.Context, trigger string) context.Context {
	return context.WithValue(ctx, scanTriggerKey, trigger)
}

// getScanTrigger returns the scan trigger from context
func getScanTrigger(ctx context.Context) (string, bool) {
	trigger, ok := ctx.Value(scanTriggerKey).(string)
	return trigger, ok
}
