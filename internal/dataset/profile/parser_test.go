package profile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	table, err := Parse([]byte("\ufeffname, age \n Alice ,30\n\nBob,\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Alice", table.Rows[0]["name"])
	assert.Equal(t, "30", table.Rows[0]["age"])
	assert.Equal(t, "", table.Rows[1]["age"])
	assert.Equal(t, []string{"30", ""}, table.Column("age"))
}

func TestParseQuotedFields(t *testing.T) {
	table, err := Parse([]byte("city,note\n\"Paris, FR\",\"said \"\"hi\"\"\"\n"))
	require.NoError(t, err)

	assert.Equal(t, "Paris, FR", table.Rows[0]["city"])
	assert.Equal(t, `said "hi"`, table.Rows[0]["note"])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{name: "empty input", in: "", want: ErrEmptyDataset},
		{name: "header only", in: "a,b\n", want: ErrEmptyDataset},
		{name: "short row", in: "a,b\n1,2\n3\n", want: ErrMalformedRow},
		{name: "long row", in: "a,b\n1,2,3\n", want: ErrMalformedRow},
		{name: "duplicate header", in: "a,a\n1,2\n", want: ErrParse},
		{name: "empty header name", in: ",b\n,1\n,2\n", want: ErrParse},
		{name: "blank header name", in: "a, \n1,2\n", want: ErrParse},
		{name: "bad quote", in: "a,b\n\"1,2\n", want: ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestParseRowErrorCarriesLine(t *testing.T) {
	_, err := Parse([]byte("a,b\n1,2\n3\n"))

	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 3, rowErr.Line)
	assert.Equal(t, 2, rowErr.Expected)
	assert.Equal(t, 1, rowErr.Got)
}
