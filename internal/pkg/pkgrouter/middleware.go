package pkgrouter

import "net/http"

// Middleware wraps an http.Handler, typically to add cross-cutting behavior.
type Middleware func(http.Handler) http.Handler

// Chain applies middleware in order, returning the final wrapped handler.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// join returns global followed by route middleware without sharing the
// backing array of global between routes.
func join(global, route []Middleware) []Middleware {
	out := make([]Middleware, 0, len(global)+len(route))
	out = append(out, global...)
	return append(out, route...)
}

// MaxBody caps the request body at limit bytes. Reads past the cap fail and
// ReadUpload reports them as too large.
func MaxBody(limit int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
