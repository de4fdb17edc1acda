package profile

import (
	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
)

const (
	SampleValueCount = 5
	SampleRowCount   = 20
)

// Summarize profiles every column of t in header order.
func Summarize(id, name string, t Table) entity.DatasetSummary {
	columns := make([]entity.ColumnProfile, 0, len(t.Header))
	mostMissing, mostMissingCount := "", 0

	for _, header := range t.Header {
		values := t.Column(header)
		present := NonMissing(values)
		missing, unique := CountValues(values)

		col := entity.ColumnProfile{
			Name:         header,
			Type:         InferType(present),
			UniqueCount:  unique,
			MissingCount: missing,
			SampleValues: append([]string{}, values[:min(SampleValueCount, len(values))]...),
		}
		if col.Type == entity.ColumnTypeNumeric {
			col.Stats = ComputeStats(present)
		}
		columns = append(columns, col)

		if missing > mostMissingCount {
			mostMissing, mostMissingCount = header, missing
		}
	}

	rows := make([]entity.Record, 0, min(SampleRowCount, len(t.Rows)))
	for _, row := range t.Rows[:min(SampleRowCount, len(t.Rows))] {
		rows = append(rows, row.Clone())
	}

	return entity.DatasetSummary{
		ID:                          id,
		Name:                        name,
		RowCount:                    len(t.Rows),
		ColumnCount:                 len(t.Header),
		Columns:                     columns,
		SampleRows:                  rows,
		ColumnWithMostMissingValues: mostMissing,
	}
}
