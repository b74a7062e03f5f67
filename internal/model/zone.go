package model

import (
	"time"
)

// ZoneMarkerCount is the number of markers every persisted zone must carry.
// A zone never exists with any other count; dropping below it triggers
// auto-dissolution.
const ZoneMarkerCount = 10

// ZoneStatus is the reviewer disposition of a zone.
type ZoneStatus string

const (
	ZoneStatusPending     ZoneStatus = "pending"
	ZoneStatusApproved    ZoneStatus = "approved"
	ZoneStatusDisapproved ZoneStatus = "disapproved"
)

// Zone is a region defined by exactly ten marker references.
type Zone struct {
	ID        string     `json:"id" bson:"_id"`
	Kind      Kind       `json:"kind" bson:"kind"`
	MarkerIDs []string   `json:"markerIds" bson:"markers"`
	Status    ZoneStatus `json:"status" bson:"status"`
	CreatedAt time.Time  `json:"timestamp" bson:"created_at"`
}

// ResolvedZone is a zone with its marker references expanded to the full
// marker documents, in reference order.
type ResolvedZone struct {
	Zone
	Markers []Marker `json:"markers"`
}
