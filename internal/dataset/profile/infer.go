package profile

import (
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
)

const (
	// InferenceSampleSize bounds how many non-missing values decide a type.
	InferenceSampleSize = 25
	// InferenceThreshold is the share of samples that must agree on a type.
	InferenceThreshold = 0.7
)

var decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

var temporalLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"2006/01/02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// ParseNumber parses a plain base-10 integer or float. Hex, Inf, NaN and
// thousands separators are not numbers here.
func ParseNumber(value string) (float64, bool) {
	if !decimalPattern.MatchString(value) {
		return 0, false
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// IsTemporal reports whether value parses with one of the known date layouts.
func IsTemporal(value string) bool {
	for _, layout := range temporalLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

// InferType classifies a column from its non-missing values. Only the first
// InferenceSampleSize values are examined and numeric wins over temporal.
func InferType(values []string) entity.ColumnType {
	if len(values) > InferenceSampleSize {
		values = values[:InferenceSampleSize]
	}
	if len(values) == 0 {
		return entity.ColumnTypeCategorical
	}

	var numeric, temporal int
	for _, v := range values {
		if _, ok := ParseNumber(v); ok {
			numeric++
			continue
		}
		if IsTemporal(v) {
			temporal++
		}
	}

	n := float64(len(values))
	switch {
	case float64(numeric)/n > InferenceThreshold:
		return entity.ColumnTypeNumeric
	case float64(temporal)/n > InferenceThreshold:
		return entity.ColumnTypeTemporal
	default:
		return entity.ColumnTypeCategorical
	}
}
