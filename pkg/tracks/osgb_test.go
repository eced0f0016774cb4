package tracks

import (
	"math"
	"testing"

	"github.com/paulcager/osgridref"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Worked example from the Ordnance Survey projection guide:
// OSGB36 52°39'27.2531"N 1°43'4.5177"E is TG 51409 13177.
func TestProjectAiry(t *testing.T) {
	lat := (52 + 39.0/60 + 27.2531/3600) * math.Pi / 180
	lon := (1 + 43.0/60 + 4.5177/3600) * math.Pi / 180

	easting, northing := projectAiry(lat, lon)
	assert.InDelta(t, 651409.903, easting, 0.01)
	assert.InDelta(t, 313177.270, northing, 0.01)
}

// Round trip through the grid-ref library: its ToLatLon applies the inverse
// datum shift, so projecting the result forward must land back on the grid
// square within the Helmert approximation error.
func TestToOSGBRoundTrip(t *testing.T) {
	gridRef, err := osgridref.ParseOsGridRef("TG 51409 13177")
	require.NoError(t, err)

	latitude, longitude := gridRef.ToLatLon()
	easting, northing := ToOSGB(latitude, longitude)

	assert.InDelta(t, 651409, easting, 5)
	assert.InDelta(t, 313177, northing, 5)
}

func TestToOSGBPlanarDistance(t *testing.T) {
	// Two points ~111m apart on a meridian near Sheffield.
	e1, n1 := ToOSGB(53.3800, -1.4700)
	e2, n2 := ToOSGB(53.3810, -1.4700)

	distance := math.Hypot(e2-e1, n2-n1)
	assert.InDelta(t, 111.2, distance, 1.5)
}
