package transmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBaseSQLModelTouch(t *testing.T) {
	local := time.Date(2024, 6, 1, 13, 0, 0, 0, time.FixedZone("BST", 3600))

	var model BaseSQLModel
	model.TouchForInsert(local)
	assert.Equal(t, time.UTC, model.Created.Location())
	assert.Equal(t, model.Created, model.Modified)
	assert.Equal(t, 12, model.Created.Hour())

	later := local.Add(time.Hour)
	model.TouchForUpdate(later)
	assert.Equal(t, later.UTC(), model.Modified)
	assert.Equal(t, local.UTC(), model.Created)
}

func TestPointWKT(t *testing.T) {
	assert.Equal(t, "SRID=4326;POINT(-1.470000 53.380000)", PointWKT(-1.47, 53.38))
}

func TestLineStringWKT(t *testing.T) {
	wkt := LineStringWKT([][2]float64{{-1.47, 53.38}, {-1.46, 53.39}})
	assert.Equal(t, "SRID=4326;LINESTRING(-1.470000 53.380000,-1.460000 53.390000)", wkt)

	assert.Empty(t, LineStringWKT([][2]float64{{-1.47, 53.38}}))
	assert.Empty(t, LineStringWKT(nil))
}

func TestParseLineStringWKT(t *testing.T) {
	points := [][2]float64{{-1.47, 53.38}, {-1.46, 53.39}}

	parsed, err := ParseLineStringWKT(LineStringWKT(points))
	assert.NoError(t, err)
	assert.InDelta(t, -1.47, parsed[0][0], 1e-9)
	assert.InDelta(t, 53.39, parsed[1][1], 1e-9)

	_, err = ParseLineStringWKT("POINT(0 0)")
	assert.Error(t, err)

	_, err = ParseLineStringWKT("LINESTRING(1)")
	assert.Error(t, err)
}
