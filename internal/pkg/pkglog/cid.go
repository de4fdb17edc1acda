package pkglog

import "context"

type chainIDContextKey struct{}

// GetCorrelationID returns the correlation ID stored in the context, or ""
// when the request never went through the correlation middleware.
func GetCorrelationID(ctx context.Context) string {
	cid, _ := ctx.Value(chainIDContextKey{}).(string)
	return cid
}

// SetCorrelationID stores a correlation ID into the context.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, chainIDContextKey{}, cid)
}
