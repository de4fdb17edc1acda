package profile

import (
	"math"
	"slices"

	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
)

// IsMissing reports whether a trimmed cell counts as a missing value.
func IsMissing(value string) bool {
	return value == ""
}

// NonMissing filters out missing values, keeping order.
func NonMissing(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

// CountValues returns the number of missing values and the number of distinct
// non-missing values.
func CountValues(values []string) (missing, unique int) {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if IsMissing(v) {
			missing++
			continue
		}
		seen[v] = struct{}{}
	}
	return missing, len(seen)
}

// ComputeStats describes the numeric values among values. Unparsable entries
// are skipped; nil is returned when nothing parses.
func ComputeStats(values []string) *entity.NumericStats {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := ParseNumber(v); ok {
			nums = append(nums, f)
		}
	}
	if len(nums) == 0 {
		return nil
	}

	mean, sd := moments(nums)

	slices.Sort(nums)
	lo, hi := nums[0], nums[len(nums)-1]

	mid := len(nums) / 2
	median := nums[mid]
	if len(nums)%2 == 0 {
		median = nums[mid-1]/2 + nums[mid]/2
	}

	return &entity.NumericStats{
		Min:               lo,
		Max:               hi,
		Mean:              clamp(mean, lo, hi),
		Median:            clamp(median, lo, hi),
		StandardDeviation: sd,
	}
}

// moments returns the population mean and standard deviation of nums.
// Welford keeps the mean exact for identical values; when its running delta
// overflows, the values are rescaled by their largest magnitude instead.
func moments(nums []float64) (mean, sd float64) {
	var m2 float64
	for i, x := range nums {
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)
	}
	if isFinite(mean) && isFinite(m2) {
		return mean, math.Sqrt(m2 / float64(len(nums)))
	}

	var scale float64
	for _, x := range nums {
		scale = math.Max(scale, math.Abs(x))
	}

	n := float64(len(nums))
	var sum float64
	for _, x := range nums {
		sum += x / scale
	}
	scaledMean := sum / n

	var sq float64
	for _, x := range nums {
		d := x/scale - scaledMean
		sq += d * d
	}
	// scaled values lie in [-1, 1], so only rounding can push sd past the range
	return scaledMean * scale, math.Min(math.Sqrt(sq/n)*scale, math.MaxFloat64)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
