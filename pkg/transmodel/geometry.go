package transmodel

import (
	"fmt"
	"strconv"
	"strings"
)

// PointWKT renders a WGS-84 point as WKT in lon/lat axis order.
func PointWKT(longitude, latitude float64) string {
	return fmt.Sprintf("SRID=4326;POINT(%f %f)", longitude, latitude)
}

// LineStringWKT renders a WGS-84 polyline as WKT. Coordinates are
// [longitude, latitude] pairs; fewer than two points yields an empty string
// since a degenerate linestring is not storable.
func LineStringWKT(coordinates [][2]float64) string {
	if len(coordinates) < 2 {
		return ""
	}

	points := make([]string, len(coordinates))
	for i, coordinate := range coordinates {
		points[i] = fmt.Sprintf("%f %f", coordinate[0], coordinate[1])
	}

	return fmt.Sprintf("SRID=4326;LINESTRING(%s)", strings.Join(points, ","))
}

// ParseLineStringWKT reads a linestring produced by LineStringWKT (or the
// database's WKT output) back into [longitude, latitude] pairs.
func ParseLineStringWKT(wkt string) ([][2]float64, error) {
	if i := strings.Index(wkt, ";"); i >= 0 {
		wkt = wkt[i+1:]
	}

	wkt = strings.TrimSpace(wkt)
	if !strings.HasPrefix(wkt, "LINESTRING(") || !strings.HasSuffix(wkt, ")") {
		return nil, fmt.Errorf("not a linestring: %q", wkt)
	}

	body := wkt[len("LINESTRING(") : len(wkt)-1]
	parts := strings.Split(body, ",")
	coordinates := make([][2]float64, 0, len(parts))
	for _, part := range parts {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed linestring point: %q", part)
		}

		longitude, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, err
		}
		latitude, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, err
		}

		coordinates = append(coordinates, [2]float64{longitude, latitude})
	}

	return coordinates, nil
}
