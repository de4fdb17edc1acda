package profile

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStats(t *testing.T) {
	st := ComputeStats([]string{"30", "45"})
	require.NotNil(t, st)

	assert.Equal(t, 30.0, st.Min)
	assert.Equal(t, 45.0, st.Max)
	assert.Equal(t, 37.5, st.Mean)
	assert.Equal(t, 37.5, st.Median)
	assert.Equal(t, 7.5, st.StandardDeviation)
}

func TestComputeStatsOddCountAndUnparsable(t *testing.T) {
	st := ComputeStats([]string{"5", "n/a", "1", "3"})
	require.NotNil(t, st)

	assert.Equal(t, 1.0, st.Min)
	assert.Equal(t, 5.0, st.Max)
	assert.Equal(t, 3.0, st.Median)
	assert.InDelta(t, 3.0, st.Mean, 1e-12)
	assert.InDelta(t, 1.632993, st.StandardDeviation, 1e-6)
}

func TestComputeStatsIdenticalValues(t *testing.T) {
	st := ComputeStats([]string{"0.1", "0.1", "0.1", "0.1", "0.1", "0.1", "0.1"})
	require.NotNil(t, st)

	assert.Equal(t, 0.1, st.Mean)
	assert.Equal(t, 0.1, st.Median)
	assert.Equal(t, 0.0, st.StandardDeviation)
}

func TestComputeStatsInvariants(t *testing.T) {
	st := ComputeStats([]string{"1e300", "1e300", "-1e300", "7", "1e-300"})
	require.NotNil(t, st)

	assert.LessOrEqual(t, st.Min, st.Median)
	assert.LessOrEqual(t, st.Median, st.Max)
	assert.LessOrEqual(t, st.Min, st.Mean)
	assert.LessOrEqual(t, st.Mean, st.Max)
}

func TestComputeStatsNothingParses(t *testing.T) {
	assert.Nil(t, ComputeStats(nil))
	assert.Nil(t, ComputeStats([]string{"a", "b"}))
}

func TestCountValues(t *testing.T) {
	missing, unique := CountValues([]string{"a", "", "b", "a", ""})
	assert.Equal(t, 2, missing)
	assert.Equal(t, 2, unique)
}

func TestComputeStatsNearFloatLimit(t *testing.T) {
	st := ComputeStats([]string{"1e308", "-1e308"})
	require.NotNil(t, st)

	assert.Equal(t, 0.0, st.Mean)
	assert.Equal(t, 0.0, st.Median)
	assert.InDelta(t, 1e308, st.StandardDeviation, 1e293)

	_, err := json.Marshal(st)
	require.NoError(t, err)
}

func TestComputeStatsLargeSameSign(t *testing.T) {
	st := ComputeStats([]string{"1.7e308", "1.7e308", "-1.7e308", "1.7e308"})
	require.NotNil(t, st)

	assert.InDelta(t, 0.85e308, st.Mean, 1e294)
	assert.False(t, math.IsInf(st.StandardDeviation, 0))
	assert.False(t, math.IsNaN(st.StandardDeviation))
	assert.LessOrEqual(t, st.Mean, st.Max)
}
