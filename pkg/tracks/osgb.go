// Package tracks deduplicates track polylines by geometric similarity.
// Distances are computed in the OSGB planar grid (EPSG:27700) so thresholds
// are metres on the ground.
package tracks

import "math"

// Airy 1830 ellipsoid and the OSGB national grid projection constants.
const (
	airyA = 6377563.396
	airyB = 6356256.909

	wgs84A = 6378137.0
	wgs84B = 6356752.314245

	gridScale   = 0.9996012717
	gridLat0    = 49.0 * math.Pi / 180
	gridLon0    = -2.0 * math.Pi / 180
	gridEast0   = 400000.0
	gridNorth0  = -100000.0
)

// Helmert parameters for WGS-84 to OSGB36 (OSTN-free approximation, good to
// a few metres nationally which is ample for similarity thresholds).
const (
	helmertTX = -446.448
	helmertTY = 125.157
	helmertTZ = -542.060
	helmertS  = 20.4894e-6
	helmertRX = -0.1502 / 3600 * math.Pi / 180
	helmertRY = -0.2470 / 3600 * math.Pi / 180
	helmertRZ = -0.8421 / 3600 * math.Pi / 180
)

// ToOSGB converts a WGS-84 coordinate to OSGB easting/northing in metres.
func ToOSGB(latitude, longitude float64) (easting, northing float64) {
	lat, lon := wgs84ToOSGB36(latitude*math.Pi/180, longitude*math.Pi/180)
	return projectAiry(lat, lon)
}

// wgs84ToOSGB36 performs the cartesian Helmert datum shift.
func wgs84ToOSGB36(lat, lon float64) (float64, float64) {
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)

	e2 := 1 - (wgs84B*wgs84B)/(wgs84A*wgs84A)
	nu := wgs84A / math.Sqrt(1-e2*sinLat*sinLat)

	x := nu * cosLat * cosLon
	y := nu * cosLat * sinLon
	z := nu * (1 - e2) * sinLat

	x2 := helmertTX + (1+helmertS)*x - helmertRZ*y + helmertRY*z
	y2 := helmertTY + helmertRZ*x + (1+helmertS)*y - helmertRX*z
	z2 := helmertTZ - helmertRY*x + helmertRX*y + (1+helmertS)*z

	// Back to geodetic on the Airy ellipsoid.
	e2 = 1 - (airyB*airyB)/(airyA*airyA)
	p := math.Sqrt(x2*x2 + y2*y2)
	outLat := math.Atan2(z2, p*(1-e2))
	for i := 0; i < 10; i++ {
		sin := math.Sin(outLat)
		nu = airyA / math.Sqrt(1-e2*sin*sin)
		next := math.Atan2(z2+e2*nu*sin, p)
		if math.Abs(next-outLat) < 1e-12 {
			outLat = next
			break
		}
		outLat = next
	}

	return outLat, math.Atan2(y2, x2)
}

// projectAiry applies the national grid transverse Mercator projection to an
// OSGB36 latitude/longitude in radians.
func projectAiry(lat, lon float64) (easting, northing float64) {
	e2 := 1 - (airyB*airyB)/(airyA*airyA)
	n := (airyA - airyB) / (airyA + airyB)
	n2 := n * n
	n3 := n2 * n

	sinLat, cosLat := math.Sincos(lat)
	nu := airyA * gridScale / math.Sqrt(1-e2*sinLat*sinLat)
	rho := airyA * gridScale * (1 - e2) / math.Pow(1-e2*sinLat*sinLat, 1.5)
	eta2 := nu/rho - 1

	ma := (1 + n + 5.0/4.0*n2 + 5.0/4.0*n3) * (lat - gridLat0)
	mb := (3*n + 3*n2 + 21.0/8.0*n3) * math.Sin(lat-gridLat0) * math.Cos(lat+gridLat0)
	mc := (15.0/8.0*n2 + 15.0/8.0*n3) * math.Sin(2*(lat-gridLat0)) * math.Cos(2*(lat+gridLat0))
	md := 35.0 / 24.0 * n3 * math.Sin(3*(lat-gridLat0)) * math.Cos(3*(lat+gridLat0))
	m := airyB * gridScale * (ma - mb + mc - md)

	tanLat := sinLat / cosLat
	tan2 := tanLat * tanLat
	tan4 := tan2 * tan2
	cos3 := cosLat * cosLat * cosLat
	cos5 := cos3 * cosLat * cosLat

	i := m + gridNorth0
	ii := nu / 2 * sinLat * cosLat
	iii := nu / 24 * sinLat * cos3 * (5 - tan2 + 9*eta2)
	iiia := nu / 720 * sinLat * cos5 * (61 - 58*tan2 + tan4)
	iv := nu * cosLat
	v := nu / 6 * cos3 * (nu/rho - tan2)
	vi := nu / 120 * cos5 * (5 - 18*tan2 + tan4 + 14*eta2 - 58*tan2*eta2)

	dLon := lon - gridLon0
	dLon2 := dLon * dLon

	northing = i + ii*dLon2 + iii*dLon2*dLon2 + iiia*dLon2*dLon2*dLon2
	easting = gridEast0 + iv*dLon + v*dLon*dLon2 + vi*dLon2*dLon2*dLon

	return easting, northing
}
