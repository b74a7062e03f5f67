package zoneindex

import (
	"context"
	"testing"

	"safemap/internal/events"
	"safemap/internal/model"
	"safemap/internal/service/coordinator"
	"safemap/internal/store"
	"safemap/internal/store/memstore"
)

func makePayloads(baseLng, baseLat float64) []model.MarkerPayload {
	payloads := make([]model.MarkerPayload, model.ZoneMarkerCount)
	for i := range payloads {
		payloads[i] = model.MarkerPayload{
			Coordinates: []float64{baseLng + float64(i)*0.001, baseLat + float64(i)*0.001},
		}
	}
	return payloads
}

func TestRebuildIndexesPersistedZones(t *testing.T) {
	ctx := context.Background()
	markers := memstore.NewMarkerStore()
	zones := memstore.NewZoneStore()
	c := coordinator.New(model.KindHazard, markers, zones, store.NopTxRunner{}, nil)

	zone, err := c.CreateZone(ctx, makePayloads(10.0, 45.0))
	if err != nil {
		t.Fatalf("CreateZone: %v", err)
	}

	idx := New([]Source{{Kind: model.KindHazard, Markers: markers, Zones: zones}})
	if err := idx.Rebuild(ctx); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if idx.Count() != 1 {
		t.Fatalf("expected 1 indexed zone, got %d", idx.Count())
	}

	found := idx.ZonesInBounds(44.0, 9.0, 46.0, 11.0)
	if len(found) != 1 || found[0].ID != zone.ID {
		t.Fatalf("viewport query missed the zone: %v", found)
	}
	if got := idx.ZonesInBounds(50.0, 20.0, 51.0, 21.0); len(got) != 0 {
		t.Fatalf("distant viewport must be empty, got %v", got)
	}
}

func TestInsertMakesZoneQueryable(t *testing.T) {
	idx := New(nil)

	zone := &model.ResolvedZone{Zone: model.Zone{ID: "z1", Kind: model.KindSafety}}
	for i := 0; i < model.ZoneMarkerCount; i++ {
		zone.Markers = append(zone.Markers, model.Marker{
			Coordinates: [2]float64{10.0 + float64(i)*0.001, 45.0 + float64(i)*0.001},
		})
	}
	idx.Insert(zone)

	at := idx.ZonesAtPoint(45.005, 10.005)
	if len(at) != 1 || at[0].ID != "z1" {
		t.Fatalf("expected the zone at an interior point, got %v", at)
	}
	if got := idx.ZonesAtPoint(44.0, 9.0); len(got) != 0 {
		t.Fatalf("expected no zone outside the bound, got %v", got)
	}
}

func TestRebuildDropsDissolvedZones(t *testing.T) {
	ctx := context.Background()
	markers := memstore.NewMarkerStore()
	zones := memstore.NewZoneStore()
	bus := events.NewBus()
	c := coordinator.New(model.KindHazard, markers, zones, store.NopTxRunner{}, bus)

	zone, err := c.CreateZone(ctx, makePayloads(10.0, 45.0))
	if err != nil {
		t.Fatalf("CreateZone: %v", err)
	}

	idx := New([]Source{{Kind: model.KindHazard, Markers: markers, Zones: zones}})
	if err := idx.Rebuild(ctx); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	// Dissolve by deleting one marker, then rebuild.
	if err := c.DeleteMarker(ctx, zone.MarkerIDs[0]); err != nil {
		t.Fatalf("DeleteMarker: %v", err)
	}
	if err := idx.Rebuild(ctx); err != nil {
		t.Fatalf("Rebuild after dissolve: %v", err)
	}
	if idx.Count() != 0 {
		t.Fatalf("expected empty index after dissolution, got %d", idx.Count())
	}
}
