// Package pkguid generates identifiers behind the StringID and NumberID
// interfaces: UUIDv7 strings for resources and Snowflake numbers for chat
// messages.
package pkguid
