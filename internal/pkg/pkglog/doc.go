// Package pkglog sets up slog for the service: JSON records on stdout with
// "ts", "severity" and "file" keys, the service name, and the request
// correlation ID when the context carries one.
package pkglog
