package pkguid

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates unique int64 identifiers.
type NumberID interface {
	Generate() int64
}
