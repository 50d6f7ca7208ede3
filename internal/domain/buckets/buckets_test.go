package buckets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRangeEmptyBounds(t *testing.T) {
	require.Nil(t, Range(nil, 10))
	require.Nil(t, Range([]float64{}, 10))
}

func TestRangeBelowFirstBoundary(t *testing.T) {
	bounds := []float64{0, 50, 100}

	require.Nil(t, Range(bounds, -5))
	require.Nil(t, Range(bounds, 0))
}

func TestRangeInteriorBucket(t *testing.T) {
	bounds := []float64{0, 50, 100}

	bucket := Range(bounds, 75)

	require.NotNil(t, bucket)
	require.Equal(t, []float64{50, 100}, bucket.Pair())
}

func TestRangeUpperInclusiveTieBreak(t *testing.T) {
	bounds := []float64{0, 50, 100}

	// A value equal to a boundary falls into the bucket that boundary closes,
	// never the one it opens.
	require.Equal(t, []float64{0, 50}, Range(bounds, 50).Pair())
	require.Equal(t, []float64{50, 100}, Range(bounds, 100).Pair())
}

func TestRangeTerminalBucket(t *testing.T) {
	bounds := []float64{0, 50, 100}

	bucket := Range(bounds, 150)

	require.NotNil(t, bucket)
	require.Nil(t, bucket.Upper)
	require.Equal(t, []float64{100}, bucket.Pair())
}

func TestRangeSingleBoundary(t *testing.T) {
	bounds := []float64{10}

	require.Nil(t, Range(bounds, 10))
	require.Equal(t, []float64{10}, Range(bounds, 11).Pair())
}

func TestClassIndex(t *testing.T) {
	bounds := []float64{0, 2, 2.5, 3}

	tests := []struct {
		value float64
		class int
	}{
		{-1, 0},
		{0, 0},
		{1.5, 1},
		{2, 1},
		{2.3, 2},
		{2.5, 2},
		{3, 3},
		{4, 4},
	}
	for _, tt := range tests {
		require.Equal(t, tt.class, ClassIndex(bounds, tt.value), "value %v", tt.value)
	}
}

func TestClassIndexMatchesRange(t *testing.T) {
	bounds := []float64{0, 5, 10, 20}

	for _, v := range []float64{-1, 0, 0.5, 5, 7, 10, 15, 20, 99} {
		idx := ClassIndex(bounds, v)
		bucket := Range(bounds, v)
		if idx == 0 {
			require.Nil(t, bucket, "value %v", v)
			continue
		}
		require.NotNil(t, bucket, "value %v", v)
		require.Equal(t, bounds[idx-1], bucket.Lower, "value %v", v)
	}
}

func TestValidateAscending(t *testing.T) {
	require.NoError(t, ValidateAscending(nil))
	require.NoError(t, ValidateAscending([]float64{1}))
	require.NoError(t, ValidateAscending([]float64{0, 1, 2.5}))

	require.Error(t, ValidateAscending([]float64{0, 0}))
	require.Error(t, ValidateAscending([]float64{2, 1}))
	require.Error(t, ValidateAscending([]float64{0, 5, 5, 10}))
}
