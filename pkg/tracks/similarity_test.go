package tracks

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offsetLatitude shifts a polyline north by roughly the given number of
// metres.
func offsetLatitude(points [][2]float64, metres float64) [][2]float64 {
	shifted := make([][2]float64, len(points))
	for i, point := range points {
		shifted[i] = [2]float64{point[0], point[1] + metres/111200}
	}

	return shifted
}

var basePolyline = [][2]float64{
	{-1.4700, 53.3800},
	{-1.4650, 53.3820},
	{-1.4600, 53.3845},
}

func TestHausdorffDistanceIdentical(t *testing.T) {
	assert.InDelta(t, 0, HausdorffDistance(basePolyline, basePolyline), 1e-9)
}

func TestHausdorffDistanceOffset(t *testing.T) {
	shifted := offsetLatitude(basePolyline, 5)
	distance := HausdorffDistance(basePolyline, shifted)
	assert.InDelta(t, 5, distance, 1)
}

func TestHausdorffDistanceEmpty(t *testing.T) {
	assert.True(t, math.IsInf(HausdorffDistance(nil, basePolyline), 1))
	assert.True(t, math.IsInf(HausdorffDistance(basePolyline, nil), 1))
}

func TestSimilarPairs(t *testing.T) {
	group := []Track{
		{ID: 3, Points: basePolyline},
		{ID: 1, Points: offsetLatitude(basePolyline, 5)},
		{ID: 2, Points: offsetLatitude(basePolyline, 500)},
	}

	pairs := SimilarPairs(group, DefaultThreshold)
	require.Len(t, pairs, 1)
	assert.Equal(t, Pair{A: 1, B: 3}, pairs[0])
}

func TestSimilarPairsAboveThreshold(t *testing.T) {
	group := []Track{
		{ID: 1, Points: basePolyline},
		{ID: 2, Points: offsetLatitude(basePolyline, 30)},
	}

	assert.Empty(t, SimilarPairs(group, DefaultThreshold))
}

func TestLengthMetres(t *testing.T) {
	line := [][2]float64{{-1.4700, 53.3800}, {-1.4700, 53.3810}}
	assert.InDelta(t, 111.2, LengthMetres(line), 1.5)

	assert.Zero(t, LengthMetres(nil))
	assert.Zero(t, LengthMetres(line[:1]))
}
