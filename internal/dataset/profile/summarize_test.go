package profile

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
)

const canonicalCSV = "name,age,joined\nAlice,30,2020-01-01\nBob,,2021-06-15\nCleo,45,not-a-date\n"

func TestSummarizeCanonical(t *testing.T) {
	table, err := Parse([]byte(canonicalCSV))
	require.NoError(t, err)

	s := Summarize("d1", "people.csv", table)

	assert.Equal(t, "d1", s.ID)
	assert.Equal(t, "people.csv", s.Name)
	assert.Equal(t, 3, s.RowCount)
	assert.Equal(t, 3, s.ColumnCount)
	assert.Equal(t, []string{"name", "age", "joined"}, s.ColumnNames())
	assert.Equal(t, "age", s.ColumnWithMostMissingValues)

	name := s.Columns[0]
	assert.Equal(t, entity.ColumnTypeCategorical, name.Type)
	assert.Equal(t, 3, name.UniqueCount)
	assert.Nil(t, name.Stats)

	age := s.Columns[1]
	assert.Equal(t, entity.ColumnTypeNumeric, age.Type)
	assert.Equal(t, 1, age.MissingCount)
	assert.Equal(t, 2, age.UniqueCount)
	assert.Equal(t, []string{"30", "", "45"}, age.SampleValues)
	require.NotNil(t, age.Stats)
	assert.Equal(t, entity.NumericStats{Min: 30, Max: 45, Mean: 37.5, Median: 37.5, StandardDeviation: 7.5}, *age.Stats)

	joined := s.Columns[2]
	assert.Equal(t, entity.ColumnTypeCategorical, joined.Type)
	assert.Nil(t, joined.Stats)

	require.Len(t, s.SampleRows, 3)
	assert.Equal(t, entity.Record{"name": "Bob", "age": "", "joined": "2021-06-15"}, s.SampleRows[1])
}

func TestSummarizeNoMissingValues(t *testing.T) {
	table, err := Parse([]byte("a,b\n1,x\n2,y\n"))
	require.NoError(t, err)

	s := Summarize("id", "n", table)
	assert.Empty(t, s.ColumnWithMostMissingValues)
}

func TestSummarizeMostMissingTieBreaksOnHeaderOrder(t *testing.T) {
	table, err := Parse([]byte("a,b,c\n,,1\n1,,\n,1,2\n"))
	require.NoError(t, err)

	s := Summarize("id", "n", table)
	assert.Equal(t, "a", s.ColumnWithMostMissingValues)
}

func TestSummarizeBoundsSamples(t *testing.T) {
	var b strings.Builder
	b.WriteString("n\n")
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&b, "%d\n", i)
	}
	table, err := Parse([]byte(b.String()))
	require.NoError(t, err)

	s := Summarize("id", "n", table)
	assert.Equal(t, 50, s.RowCount)
	assert.Len(t, s.SampleRows, SampleRowCount)
	assert.Equal(t, []string{"0", "1", "2", "3", "4"}, s.Columns[0].SampleValues)

	col := s.Columns[0]
	assert.LessOrEqual(t, col.MissingCount, s.RowCount)
	assert.LessOrEqual(t, col.UniqueCount, s.RowCount-col.MissingCount)
}

func TestSummarizeSampleRowsAreCopies(t *testing.T) {
	table, err := Parse([]byte("a\n1\n"))
	require.NoError(t, err)

	s := Summarize("id", "n", table)
	table.Rows[0]["a"] = "changed"
	assert.Equal(t, "1", s.SampleRows[0]["a"])
}
