package errorreport

import "context"

type contextKey string

const (
	pathKey   contextKey = "path"
	userIDKey contextKey = "userId"
)

// WithPath returns a context carrying the request path reported with errors.
func WithPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, pathKey, path)
}

func Path(ctx context.Context) string {
	if p, ok := ctx.Value(pathKey).(string); ok {
		return p
	}
	return ""
}

// WithUserID returns a context carrying the authenticated user reported with errors.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func UserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}
