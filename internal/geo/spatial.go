package geo

import "math"

const (
	earthRadiusMeters = 6371000.0
	metersPerDegree   = 111320.0

	// floor for cos(lat) so the longitude span near the poles degenerates
	// to "very wide" instead of dividing by zero
	minCosLat = 1e-6
)

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate is finite and within WGS84 range.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) {
		return false
	}
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// HaversineDistance calculates the distance in meters between two points
// using the Haversine formula.
func HaversineDistance(from, to Coordinate) float64 {
	dLat := (to.Latitude - from.Latitude) * math.Pi / 180.0
	dLng := (to.Longitude - from.Longitude) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(from.Latitude*math.Pi/180.0)*math.Cos(to.Latitude*math.Pi/180.0)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// BoundingBox is a rectangular latitude/longitude pre-filter. It is a
// superset of the circle it was derived from; callers still need an exact
// distance pass to discard the corners.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// NewBoundingBox calculates a rough bounding box around a center point for
// the given radius in meters.
func NewBoundingBox(center Coordinate, radiusMeters float64) BoundingBox {
	cosLat := math.Cos(center.Latitude * math.Pi / 180.0)
	if cosLat < minCosLat {
		cosLat = minCosLat
	}

	deltaLat := radiusMeters / metersPerDegree
	deltaLng := radiusMeters / (metersPerDegree * cosLat)

	return BoundingBox{
		MinLat: center.Latitude - deltaLat,
		MaxLat: center.Latitude + deltaLat,
		MinLng: center.Longitude - deltaLng,
		MaxLng: center.Longitude + deltaLng,
	}
}

// Contains reports whether the point falls inside the box.
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Latitude >= b.MinLat && c.Latitude <= b.MaxLat &&
		c.Longitude >= b.MinLng && c.Longitude <= b.MaxLng
}
