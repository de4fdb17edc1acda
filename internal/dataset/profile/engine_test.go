package profile

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func TestEngineProfile(t *testing.T) {
	engine := NewEngine(fixedID("fixed"), 0)

	s, err := engine.Profile("people.csv", []byte(canonicalCSV))
	require.NoError(t, err)
	assert.Equal(t, "fixed", s.ID)
	assert.Equal(t, 3, s.RowCount)
}

func TestEngineProfileHugeValuesEncode(t *testing.T) {
	engine := NewEngine(fixedID("fixed"), 0)

	s, err := engine.Profile("x.csv", []byte("v\n1e308\n-1e308\n"))
	require.NoError(t, err)
	require.NotNil(t, s.Columns[0].Stats)
	assert.Equal(t, 0.0, s.Columns[0].Stats.Mean)

	_, err = json.Marshal(s)
	require.NoError(t, err)
}

func TestEngineRejectsOversizedInput(t *testing.T) {
	engine := NewEngine(fixedID("fixed"), 16)

	_, err := engine.Profile("big.csv", []byte(strings.Repeat("a", 17)))

	var tooLarge *PayloadTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
	assert.Equal(t, int64(17), tooLarge.Size)
	assert.Equal(t, int64(16), tooLarge.Limit)
}

func TestCheckSize(t *testing.T) {
	assert.NoError(t, CheckSize(10, 10))
	assert.ErrorIs(t, CheckSize(11, 10), ErrPayloadTooLarge)
	assert.NoError(t, CheckSize(DefaultMaxBytes, 0))
	assert.ErrorIs(t, CheckSize(DefaultMaxBytes+1, -1), ErrPayloadTooLarge)
}
