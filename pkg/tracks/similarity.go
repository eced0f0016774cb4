package tracks

import "math"

// DefaultThreshold is the Hausdorff distance in metres under which two tracks
// between the same stop pair count as duplicates.
const DefaultThreshold = 20.0

// Track is a candidate polyline: the row id and its WGS-84 coordinates in
// [longitude, latitude] order.
type Track struct {
	ID     int64
	Points [][2]float64
}

// Pair is an unordered duplicate candidate with A < B by id.
type Pair struct {
	A int64
	B int64
}

// gridPoint is a projected OSGB coordinate.
type gridPoint struct {
	easting  float64
	northing float64
}

func project(points [][2]float64) []gridPoint {
	projected := make([]gridPoint, len(points))
	for i, point := range points {
		easting, northing := ToOSGB(point[1], point[0])
		projected[i] = gridPoint{easting: easting, northing: northing}
	}

	return projected
}

// HausdorffDistance is the symmetric Hausdorff distance between two WGS-84
// polylines, in metres on the OSGB grid. Either polyline being empty yields
// +Inf: an empty geometry is never a duplicate of anything.
func HausdorffDistance(a, b [][2]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return math.Inf(1)
	}

	pa := project(a)
	pb := project(b)

	return math.Max(directedHausdorff(pa, pb), directedHausdorff(pb, pa))
}

func directedHausdorff(from, to []gridPoint) float64 {
	worst := 0.0
	for _, point := range from {
		nearest := math.Inf(1)
		for _, other := range to {
			de := point.easting - other.easting
			dn := point.northing - other.northing
			if d := de*de + dn*dn; d < nearest {
				nearest = d
			}
		}
		if nearest > worst {
			worst = nearest
		}
	}

	return math.Sqrt(worst)
}

// LengthMetres is the planar length of a WGS-84 polyline on the OSGB grid.
func LengthMetres(points [][2]float64) float64 {
	projected := project(points)

	total := 0.0
	for i := 1; i < len(projected); i++ {
		de := projected[i].easting - projected[i-1].easting
		dn := projected[i].northing - projected[i-1].northing
		total += math.Sqrt(de*de + dn*dn)
	}

	return total
}

// SimilarPairs compares every track against every other within one stop-pair
// group and returns the id pairs whose Hausdorff distance is below threshold,
// ordered with the lower id first.
func SimilarPairs(group []Track, threshold float64) []Pair {
	var pairs []Pair

	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			a, b := group[i], group[j]
			if a.ID > b.ID {
				a, b = b, a
			}

			if HausdorffDistance(a.Points, b.Points) < threshold {
				pairs = append(pairs, Pair{A: a.ID, B: b.ID})
			}
		}
	}

	return pairs
}
