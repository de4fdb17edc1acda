package profile

import (
	"errors"
	"fmt"
)

var (
	ErrParse           = errors.New("invalid csv")
	ErrEmptyDataset    = fmt.Errorf("%w: dataset has no data rows", ErrParse)
	ErrMalformedRow    = fmt.Errorf("%w: malformed row", ErrParse)
	ErrPayloadTooLarge = errors.New("payload too large")
)

// RowError reports a data row whose field count differs from the header.
type RowError struct {
	Line     int
	Expected int
	Got      int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: expected %d fields, got %d", e.Line, e.Expected, e.Got)
}

func (e *RowError) Unwrap() error {
	return ErrMalformedRow
}

// PayloadTooLargeError reports an input whose size exceeds the configured
// limit. It matches ErrPayloadTooLarge with errors.Is.
type PayloadTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("payload of %d bytes exceeds limit of %d bytes", e.Size, e.Limit)
}

func (e *PayloadTooLargeError) Unwrap() error {
	return ErrPayloadTooLarge
}
