package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistanceSymmetry(t *testing.T) {
	a := Coordinate{Latitude: 9.59, Longitude: 76.52}
	b := Coordinate{Latitude: 9.65, Longitude: 76.44}

	assert.InDelta(t, HaversineDistance(a, b), HaversineDistance(b, a), 1e-9)
	assert.InDelta(t, 0, HaversineDistance(a, a), 1e-9)
}

func TestHaversineDistanceKnownValue(t *testing.T) {
	// One degree of latitude is roughly 111.2 km
	a := Coordinate{Latitude: 9.0, Longitude: 76.52}
	b := Coordinate{Latitude: 10.0, Longitude: 76.52}

	distance := HaversineDistance(a, b)
	assert.InDelta(t, 111195, distance, 200)
}

func TestCoordinateValid(t *testing.T) {
	assert.True(t, Coordinate{Latitude: 9.59, Longitude: 76.52}.Valid())
	assert.True(t, Coordinate{Latitude: -90, Longitude: 180}.Valid())

	assert.False(t, Coordinate{Latitude: 200, Longitude: 76.52}.Valid())
	assert.False(t, Coordinate{Latitude: 9.59, Longitude: -500}.Valid())
	assert.False(t, Coordinate{Latitude: math.NaN(), Longitude: 0}.Valid())
	assert.False(t, Coordinate{Latitude: 0, Longitude: math.Inf(1)}.Valid())
}

func TestBoundingBoxContainsCircle(t *testing.T) {
	center := Coordinate{Latitude: 9.59, Longitude: 76.52}
	radius := 5000.0
	box := NewBoundingBox(center, radius)

	assert.True(t, box.Contains(center))

	// Points on the circle rim in each compass direction stay inside the box
	for _, bearing := range []float64{0, 90, 180, 270} {
		rad := bearing * math.Pi / 180
		point := Coordinate{
			Latitude:  center.Latitude + (radius/metersPerDegree)*math.Cos(rad)*0.999,
			Longitude: center.Longitude + (radius/(metersPerDegree*math.Cos(center.Latitude*math.Pi/180)))*math.Sin(rad)*0.999,
		}
		assert.True(t, box.Contains(point), "bearing %v should be inside the box", bearing)
	}
}

func TestBoundingBoxGrowsWithRadius(t *testing.T) {
	center := Coordinate{Latitude: 9.59, Longitude: 76.52}
	small := NewBoundingBox(center, 2000)
	large := NewBoundingBox(center, 7000)

	assert.Less(t, large.MinLat, small.MinLat)
	assert.Greater(t, large.MaxLat, small.MaxLat)
	assert.Less(t, large.MinLng, small.MinLng)
	assert.Greater(t, large.MaxLng, small.MaxLng)
}

func TestBoundingBoxNearPole(t *testing.T) {
	// cos(lat) is clamped; the box must stay finite at the pole
	box := NewBoundingBox(Coordinate{Latitude: 90, Longitude: 0}, 2000)
	assert.False(t, math.IsNaN(box.MinLng))
	assert.False(t, math.IsInf(box.MinLng, 0))
	assert.False(t, math.IsInf(box.MaxLng, 0))
}
