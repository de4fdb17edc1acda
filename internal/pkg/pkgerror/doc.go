// Package pkgerror defines the structured error used between usecases and the
// HTTP edge. An Error carries a user-facing message, a type (server, business,
// validation), a code that maps to an HTTP status, and an optional cause that
// the router exposes for non-server errors.
package pkgerror
