package various

import (
	"math"

	"github.com/Flokey82/go_gens/vectors"
)

func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// LatLonToCartesian converts latitude and longitude to x, y, z coordinates.
// See: https://rbrundritt.wordpress.com/2008/10/14/conversion-between-spherical-and-cartesian-coordinates-systems/
func LatLonToCartesian(latDeg, lonDeg float64) []float64 {
	latRad := (latDeg / 180.0) * math.Pi
	lonRad := (lonDeg / 180.0) * math.Pi
	return []float64{
		math.Cos(latRad) * math.Cos(lonRad),
		math.Cos(latRad) * math.Sin(lonRad),
		math.Sin(latRad),
	}
}

// LatLonFromVec3 converts a vectors.Vec3 to latitude and longitude.
func LatLonFromVec3(position vectors.Vec3, sphereRadius float64) (float64, float64) {
	// See https://stackoverflow.com/questions/46247499/vector3-to-latitude-longitude
	return RadToDeg(math.Asin(position.Z / sphereRadius)), // theta
		RadToDeg(math.Atan2(position.Y, position.X)) // phi
}

// ConvToVec3 converts a float slice containing 3 values into a vectors.Vec3.
func ConvToVec3(xyz []float64) vectors.Vec3 {
	return vectors.Vec3{
		X: xyz[0],
		Y: xyz[1],
		Z: xyz[2],
	}
}

// Haversine returns the great arc distance between two lat/long pairs.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLatSin := math.Sin(DegToRad(lat2-lat1) / 2)
	dLonSin := math.Sin(DegToRad(lon2-lon1) / 2)
	a := dLatSin*dLatSin + dLonSin*dLonSin*math.Cos(DegToRad(lat1))*math.Cos(DegToRad(lat2))
	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
