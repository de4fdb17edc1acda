package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
)

const (
	MaxRenderedColumns    = 40
	MaxRenderedValueRunes = 80
	MaxRenderedSampleRows = 5
	MaxContextBytes       = 16 << 10

	truncatedMarker = "\n[truncated]"
)

// RenderContext renders s as a deterministic, size-bounded text block.
func RenderContext(s entity.DatasetSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Dataset %s contains %d rows and %d columns.\n", clip(s.Name), s.RowCount, s.ColumnCount)
	b.WriteString("Columns:\n")
	for i, col := range s.Columns {
		if i == MaxRenderedColumns {
			fmt.Fprintf(&b, "... %d more columns omitted\n", len(s.Columns)-MaxRenderedColumns)
			break
		}
		b.WriteString(renderColumn(col))
		b.WriteByte('\n')
	}

	if s.ColumnWithMostMissingValues != "" {
		fmt.Fprintf(&b, "Column with most missing values: %s\n", clip(s.ColumnWithMostMissingValues))
	}

	b.WriteString("Sample rows:")
	header := s.ColumnNames()
	for i, row := range s.SampleRows {
		if i == MaxRenderedSampleRows {
			break
		}
		fmt.Fprintf(&b, "\n%d. %s", i+1, renderRow(header, row))
	}

	return truncate(b.String(), MaxContextBytes)
}

func renderColumn(col entity.ColumnProfile) string {
	parts := []string{
		fmt.Sprintf("%s (%s)", clip(col.Name), col.Type),
		fmt.Sprintf("unique: %d", col.UniqueCount),
		fmt.Sprintf("missing: %d", col.MissingCount),
	}
	if st := col.Stats; st != nil {
		parts = append(parts, fmt.Sprintf("min: %s, max: %s, mean: %s, median: %s, stdev: %s",
			formatStat(st.Min), formatStat(st.Max), formatStat(st.Mean), formatStat(st.Median), formatStat(st.StandardDeviation)))
	}
	return strings.Join(parts, " | ")
}

// renderRow writes row as a JSON object whose keys follow header order.
func renderRow(header []string, row entity.Record) string {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, name := range header {
		if i > 0 {
			b.WriteByte(',')
		}
		writeJSONString(&b, clip(name))
		b.WriteByte(':')
		writeJSONString(&b, clip(row[name]))
	}
	b.WriteByte('}')
	return b.String()
}

func writeJSONString(b *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		b.WriteString(`""`)
		return
	}
	b.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
}

func formatStat(v float64) string {
	if math.Abs(v) >= 1e12 {
		return fmt.Sprintf("%.4g", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func clip(s string) string {
	if utf8.RuneCountInString(s) <= MaxRenderedValueRunes {
		return s
	}

	runes := []rune(s)
	return string(runes[:MaxRenderedValueRunes]) + "…"
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	cut := limit - len(truncatedMarker)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncatedMarker
}
