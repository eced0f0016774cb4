package transxchange

import (
	"fmt"
	"math"

	"github.com/paulcager/osgridref"
)

type Location struct {
	LocationInner

	Translation LocationInner
}

type LocationInner struct {
	Longitude float64
	Latitude  float64

	GridType string
	Easting  string
	Northing string
}

// Coordinates resolves the location to WGS-84, converting from OSGB
// easting/northing when no longitude/latitude was supplied.
func (l *Location) Coordinates() (latitude float64, longitude float64, ok bool) {
	latitude = l.Latitude
	longitude = l.Longitude

	if longitude == 0 && latitude == 0 && l.Easting != "" && l.Northing != "" {
		gridRef, err := osgridref.ParseOsGridRef(fmt.Sprintf("%s,%s", l.Easting, l.Northing))
		if err == nil {
			latitude, longitude = gridRef.ToLatLon()
		}
	}

	if longitude == 0 && latitude == 0 && l.Translation.Easting != "" && l.Translation.Northing != "" {
		gridRef, err := osgridref.ParseOsGridRef(fmt.Sprintf("%s,%s", l.Translation.Easting, l.Translation.Northing))
		if err == nil {
			latitude, longitude = gridRef.ToLatLon()
		}
	}

	if longitude == 0 && latitude == 0 {
		latitude = l.Translation.Latitude
		longitude = l.Translation.Longitude
	}

	ok = isFiniteWGS84(latitude, longitude) && !(latitude == 0 && longitude == 0)

	return latitude, longitude, ok
}

func isFiniteWGS84(latitude, longitude float64) bool {
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) || math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return false
	}

	return latitude >= -90 && latitude <= 90 && longitude >= -180 && longitude <= 180
}
