package entity

type ColumnType string

const (
	ColumnTypeNumeric     ColumnType = "numeric"
	ColumnTypeTemporal    ColumnType = "temporal"
	ColumnTypeCategorical ColumnType = "categorical"
)

// Record is one data row keyed by column name. Column order is carried by the
// table header, never by the map.
type Record map[string]string

type NumericStats struct {
	Min               float64 `json:"min"`
	Max               float64 `json:"max"`
	Mean              float64 `json:"mean"`
	Median            float64 `json:"median"`
	StandardDeviation float64 `json:"standardDeviation"`
}

type ColumnProfile struct {
	Name         string        `json:"name"`
	Type         ColumnType    `json:"type"`
	UniqueCount  int           `json:"uniqueCount"`
	MissingCount int           `json:"missingCount"`
	SampleValues []string      `json:"sampleValues"`
	Stats        *NumericStats `json:"stats,omitempty"`
}

// DatasetSummary is the complete profiling result for one CSV source. It is
// treated as immutable once built; callers that hand it across a boundary
// use Clone.
type DatasetSummary struct {
	ID                          string          `json:"id"`
	Name                        string          `json:"name"`
	RowCount                    int             `json:"rowCount"`
	ColumnCount                 int             `json:"columnCount"`
	Columns                     []ColumnProfile `json:"columns"`
	SampleRows                  []Record        `json:"sampleRows"`
	ColumnWithMostMissingValues string          `json:"columnWithMostMissingValues,omitempty"`
}

func (r Record) Clone() Record {
	if r == nil {
		return nil
	}

	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func (c ColumnProfile) Clone() ColumnProfile {
	out := c
	if c.SampleValues != nil {
		out.SampleValues = append([]string(nil), c.SampleValues...)
	}
	if c.Stats != nil {
		stats := *c.Stats
		out.Stats = &stats
	}
	return out
}

// Clone returns a deep copy sharing no slices, maps or pointers with s.
func (s DatasetSummary) Clone() DatasetSummary {
	out := s
	if s.Columns != nil {
		out.Columns = make([]ColumnProfile, len(s.Columns))
		for i, col := range s.Columns {
			out.Columns[i] = col.Clone()
		}
	}
	if s.SampleRows != nil {
		out.SampleRows = make([]Record, len(s.SampleRows))
		for i, row := range s.SampleRows {
			out.SampleRows[i] = row.Clone()
		}
	}
	return out
}

// ColumnNames returns the column names in header order.
func (s DatasetSummary) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}
