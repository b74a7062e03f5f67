package util

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"

	"safemap/internal/model"
)

const earthRadiusMeters = 6371000.0

// HaversineDistance returns the great-circle distance in meters between two
// points given in degrees.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	point1 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat1, lng1))
	point2 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat2, lng2))

	angle := s1.Angle(s2.ChordAngleBetweenPoints(point1, point2).Angle())

	return angle.Radians() * earthRadiusMeters
}

// ZoneBound returns the bounding box enclosing the coordinates of the given
// markers. The second return is false when the list is empty.
func ZoneBound(markers []model.Marker) (orb.Bound, bool) {
	if len(markers) == 0 {
		return orb.Bound{}, false
	}

	mp := make(orb.MultiPoint, len(markers))
	for i, m := range markers {
		mp[i] = orb.Point{m.Lng(), m.Lat()}
	}
	return mp.Bound(), true
}

// BoundContains reports whether the point (in degrees) falls inside the
// bound, edges included.
func BoundContains(b orb.Bound, lat, lng float64) bool {
	return b.Contains(orb.Point{lng, lat})
}
