// Package pkgrouter is the HTTP edge of the service: an httprouter wrapper
// whose handlers return (data, error), a JSON envelope codec that maps
// pkgerror codes to status codes, upload reading for multipart and raw
// bodies, static file serving, and the recovery, correlation ID and request
// logging middlewares.
package pkgrouter
