package profile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
)

// Table is a parsed CSV file. Header fixes the column order; every record has
// exactly one entry per header column.
type Table struct {
	Header []string
	Rows   []entity.Record
}

// Parse decodes data as UTF-8 CSV with a header row. A leading byte-order mark
// is dropped, fields are trimmed and blank lines are skipped. A row with the
// wrong number of fields rejects the whole input.
func Parse(data []byte) (Table, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := csv.NewReader(transform.NewReader(bytes.NewReader(data), decoder))
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	raw, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, ErrEmptyDataset
	}
	if err != nil {
		return Table{}, fmt.Errorf("%w: %w", ErrParse, err)
	}

	header, err := normalizeHeader(raw)
	if err != nil {
		return Table{}, err
	}

	var rows []entity.Record
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("%w: %w", ErrParse, err)
		}

		if len(fields) != len(header) {
			line, _ := reader.FieldPos(0)
			return Table{}, &RowError{Line: line, Expected: len(header), Got: len(fields)}
		}

		rec := make(entity.Record, len(header))
		for i, name := range header {
			rec[name] = strings.TrimSpace(fields[i])
		}
		rows = append(rows, rec)
	}

	if len(rows) == 0 {
		return Table{}, ErrEmptyDataset
	}

	return Table{Header: header, Rows: rows}, nil
}

func normalizeHeader(raw []string) ([]string, error) {
	header := make([]string, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: column %d has no name", ErrParse, i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrParse, name)
		}
		seen[name] = struct{}{}
		header[i] = name
	}
	return header, nil
}

// Column returns every raw value of the named column in row order.
func (t Table) Column(name string) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[name]
	}
	return values
}
