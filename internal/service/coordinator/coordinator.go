// Package coordinator is the sole mutation path for zones and their markers.
// It upholds the ten-marker invariant at every mutation boundary: a zone is
// persisted with exactly ten marker references or not at all.
package coordinator

import (
	"context"
	"errors"
	"time"

	"safemap/internal/events"
	"safemap/internal/model"
	"safemap/internal/store"
	"safemap/internal/util"
)

// Coordinator owns the cross-referencing fields between one zone collection
// and its marker collection. Direct entity endpoints must go through it when
// a zone back-reference is involved. One instance per domain kind.
type Coordinator struct {
	kind    model.Kind
	markers store.MarkerStore
	zones   store.ZoneStore
	tx      store.TxRunner
	bus     *events.Bus

	// Serializes replace/delete cascades per zone id so two concurrent
	// replaces cannot interleave and orphan the losing marker set.
	zoneLocks *keyedMutex
}

func New(kind model.Kind, markers store.MarkerStore, zones store.ZoneStore, tx store.TxRunner, bus *events.Bus) *Coordinator {
	return &Coordinator{
		kind:      kind,
		markers:   markers,
		zones:     zones,
		tx:        tx,
		bus:       bus,
		zoneLocks: newKeyedMutex(),
	}
}

// Kind returns the domain this coordinator mutates.
func (c *Coordinator) Kind() model.Kind { return c.kind }

// CreateZone persists ten new markers and a zone referencing them in one
// transaction. The zoneAdded event is published only after the commit.
func (c *Coordinator) CreateZone(ctx context.Context, payloads []model.MarkerPayload) (*model.ResolvedZone, error) {
	if len(payloads) != model.ZoneMarkerCount {
		return nil, model.ErrInvalidMarkerCount
	}
	for _, p := range payloads {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	zone := &model.Zone{
		ID:        util.ShortUUID(),
		Kind:      c.kind,
		Status:    model.ZoneStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	markers := make([]*model.Marker, len(payloads))
	zone.MarkerIDs = make([]string, len(payloads))
	for i, p := range payloads {
		m := p.ToMarker(c.kind)
		m.ID = util.ShortUUID()
		m.ZoneID = zone.ID
		markers[i] = &m
		zone.MarkerIDs[i] = m.ID
	}

	err := c.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := c.markers.InsertBatch(ctx, markers); err != nil {
			return err
		}
		return c.zones.Insert(ctx, zone)
	})
	if err != nil {
		return nil, err
	}

	resolved := &model.ResolvedZone{Zone: *zone, Markers: make([]model.Marker, len(markers))}
	for i, m := range markers {
		resolved.Markers[i] = *m
	}

	c.publish(events.Event{Kind: events.ZoneAdded, Payload: resolved})
	return resolved, nil
}

// ReplaceZoneMarkers swaps the full marker set of a zone: every marker the
// zone currently owns is deleted and the ten new payloads take their place.
// This is a replace, not a merge.
func (c *Coordinator) ReplaceZoneMarkers(ctx context.Context, zoneID string, payloads []model.MarkerPayload) (*model.ResolvedZone, error) {
	if len(payloads) != model.ZoneMarkerCount {
		return nil, model.ErrInvalidMarkerCount
	}
	for _, p := range payloads {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	unlock := c.zoneLocks.lock(zoneID)
	defer unlock()

	zone, err := c.zones.Get(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	markers := make([]*model.Marker, len(payloads))
	ids := make([]string, len(payloads))
	for i, p := range payloads {
		m := p.ToMarker(c.kind)
		m.ID = util.ShortUUID()
		m.ZoneID = zoneID
		markers[i] = &m
		ids[i] = m.ID
	}

	err = c.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if _, err := c.markers.DeleteByZone(ctx, zoneID); err != nil {
			return err
		}
		if err := c.markers.InsertBatch(ctx, markers); err != nil {
			return err
		}
		return c.zones.UpdateMarkers(ctx, zoneID, ids)
	})
	if err != nil {
		return nil, err
	}

	zone.MarkerIDs = ids
	resolved := &model.ResolvedZone{Zone: *zone, Markers: make([]model.Marker, len(markers))}
	for i, m := range markers {
		resolved.Markers[i] = *m
	}
	return resolved, nil
}

// DeleteZone removes the zone record and every marker referencing it. The
// zone goes first so no window exists where it references deleted markers.
func (c *Coordinator) DeleteZone(ctx context.Context, zoneID string) error {
	unlock := c.zoneLocks.lock(zoneID)
	defer unlock()

	return c.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := c.zones.Delete(ctx, zoneID); err != nil {
			return err
		}
		_, err := c.markers.DeleteByZone(ctx, zoneID)
		return err
	})
}

// DeleteMarker removes a single marker. If it was owned by a zone and the
// remaining count drops below ten, the zone auto-dissolves: the zone record
// and all its surviving markers are deleted in the same transaction.
func (c *Coordinator) DeleteMarker(ctx context.Context, markerID string) error {
	marker, err := c.markers.Get(ctx, markerID)
	if err != nil {
		return err
	}

	if marker.ZoneID != "" {
		unlock := c.zoneLocks.lock(marker.ZoneID)
		defer unlock()
	}

	return c.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := c.markers.Delete(ctx, markerID); err != nil {
			return err
		}
		if marker.ZoneID == "" {
			return nil
		}

		remaining, err := c.markers.CountByZone(ctx, marker.ZoneID)
		if err != nil {
			return err
		}
		if remaining >= model.ZoneMarkerCount {
			return nil
		}

		if err := c.zones.Delete(ctx, marker.ZoneID); err != nil {
			return err
		}
		_, err = c.markers.DeleteByZone(ctx, marker.ZoneID)
		return err
	})
}

// CreateMarker persists a zoneless marker and publishes markerAdded.
func (c *Coordinator) CreateMarker(ctx context.Context, payload model.MarkerPayload) (*model.Marker, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	m := payload.ToMarker(c.kind)
	m.ID = util.ShortUUID()
	if err := c.markers.Insert(ctx, &m); err != nil {
		return nil, err
	}

	c.publish(events.Event{Kind: events.MarkerAdded, Payload: &m})
	return &m, nil
}

// UpdateMarker rewrites a marker's coordinates and metadata. The zone
// back-reference and the id are preserved; this never affects any zone
// invariant.
func (c *Coordinator) UpdateMarker(ctx context.Context, markerID string, payload model.MarkerPayload) (*model.Marker, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	existing, err := c.markers.Get(ctx, markerID)
	if err != nil {
		return nil, err
	}

	updated := payload.ToMarker(c.kind)
	updated.ID = existing.ID
	updated.ZoneID = existing.ZoneID
	if payload.Timestamp.IsZero() {
		updated.CreatedAt = existing.CreatedAt
	}

	if err := c.markers.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetZone returns the zone with its markers resolved in reference order.
func (c *Coordinator) GetZone(ctx context.Context, zoneID string) (*model.ResolvedZone, error) {
	zone, err := c.zones.Get(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	owned, err := c.markers.FindByZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Marker, len(owned))
	for _, m := range owned {
		byID[m.ID] = m
	}

	resolved := &model.ResolvedZone{Zone: *zone}
	for _, id := range zone.MarkerIDs {
		if m, ok := byID[id]; ok {
			resolved.Markers = append(resolved.Markers, m)
		}
	}
	return resolved, nil
}

// ListZones returns all zones of this kind, markers unresolved.
func (c *Coordinator) ListZones(ctx context.Context) ([]model.Zone, error) {
	return c.zones.FindAll(ctx)
}

// GetMarker returns a single marker.
func (c *Coordinator) GetMarker(ctx context.Context, markerID string) (*model.Marker, error) {
	return c.markers.Get(ctx, markerID)
}

// ListMarkers returns all markers of this kind.
func (c *Coordinator) ListMarkers(ctx context.Context) ([]model.Marker, error) {
	return c.markers.FindAll(ctx)
}

// MarkersNear returns markers within radiusMeters of the given point.
func (c *Coordinator) MarkersNear(ctx context.Context, lat, lng, radiusMeters float64) ([]model.Marker, error) {
	all, err := c.markers.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var result []model.Marker
	for _, m := range all {
		if util.HaversineDistance(lat, lng, m.Lat(), m.Lng()) <= radiusMeters {
			result = append(result, m)
		}
	}
	return result, nil
}

// SweepOrphans deletes markers whose zone back-reference no longer
// resolves. Such markers can only appear when a multi-step write was
// interrupted outside a transaction; the sweeper is the compensating
// cleanup. Returns the number of markers removed.
func (c *Coordinator) SweepOrphans(ctx context.Context) (int, error) {
	all, err := c.markers.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, m := range all {
		if m.ZoneID == "" {
			continue
		}
		_, err := c.zones.Get(ctx, m.ZoneID)
		if err == nil {
			continue
		}
		if !errors.Is(err, model.ErrZoneNotFound) {
			return swept, err
		}
		if err := c.markers.Delete(ctx, m.ID); err != nil && !errors.Is(err, model.ErrMarkerNotFound) {
			return swept, err
		}
		swept++
	}
	return swept, nil
}

func (c *Coordinator) publish(evt events.Event) {
	if c.bus != nil {
		c.bus.Publish(evt)
	}
}
