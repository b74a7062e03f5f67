package model

import (
	"time"
)

// Kind selects which of the two map domains an entity belongs to.
// Hazard entities live in the danger collections, safety entities in the
// safe collections.
type Kind string

const (
	KindHazard Kind = "hazard"
	KindSafety Kind = "safety"
)

// Marker is the unified model for a single geocoded point (used for both
// MongoDB storage and API responses).
type Marker struct {
	ID          string     `json:"id" bson:"_id"`
	Kind        Kind       `json:"kind" bson:"kind"`
	Coordinates [2]float64 `json:"coordinates" bson:"coordinates"` // [longitude, latitude]
	PlaceName   string     `json:"placeName" bson:"place_name,omitempty"`
	Tags        []string   `json:"tags" bson:"tags,omitempty"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	ZoneID      string     `json:"zoneId,omitempty" bson:"zone,omitempty"`
	CreatedAt   time.Time  `json:"timestamp" bson:"created_at"`
}

// Lng returns the marker longitude.
func (m *Marker) Lng() float64 { return m.Coordinates[0] }

// Lat returns the marker latitude.
func (m *Marker) Lat() float64 { return m.Coordinates[1] }

// MarkerPayload is the client-supplied shape of a marker, before an id or a
// zone is assigned. Coordinates must be [longitude, latitude].
type MarkerPayload struct {
	Coordinates []float64 `json:"coordinates" binding:"required"`
	PlaceName   string    `json:"placeName"`
	Tags        []string  `json:"tags"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Validate checks the coordinate pair. Exactly two elements are required.
func (p MarkerPayload) Validate() error {
	if len(p.Coordinates) != 2 {
		return ErrMalformedCoordinates
	}
	return nil
}

// ToMarker builds a Marker from the payload. The id must be assigned by the
// caller; the timestamp defaults to now when the payload omits it.
func (p MarkerPayload) ToMarker(kind Kind) Marker {
	ts := p.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return Marker{
		Kind:        kind,
		Coordinates: [2]float64{p.Coordinates[0], p.Coordinates[1]},
		PlaceName:   p.PlaceName,
		Tags:        p.Tags,
		Description: p.Description,
		CreatedAt:   ts,
	}
}
