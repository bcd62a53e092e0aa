package contextutil

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// GetRequestID returns the request ID previously injected by the
// middleware, or "" when the context carries none.
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// WithRequestID injects a request ID into the context. Also handy in tests.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetKey() string {
	return string(requestIDKey)
}
