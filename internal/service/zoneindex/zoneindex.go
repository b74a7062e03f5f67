// Package zoneindex keeps an in-memory spatial read model of all zones so
// map viewport queries never hit the durable stores. The R-tree is
// warm-loaded at startup, receives live inserts from the event bus, and is
// rebuilt periodically to pick up deletions and dissolutions.
package zoneindex

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"

	"safemap/internal/events"
	"safemap/internal/model"
	"safemap/internal/store"
	"safemap/internal/util"
)

// pointSearchRadius pads degenerate rectangles; rtreego requires positive
// edge lengths.
const pointSearchRadius = 0.0001

// zoneEntry is a zone with its bounding box, as stored in the R-tree.
type zoneEntry struct {
	Zone  model.Zone
	Bound orb.Bound
}

// Bounds implements the rtreego.Spatial interface.
func (e *zoneEntry) Bounds() rtreego.Rect {
	minX, minY := e.Bound.Min[0], e.Bound.Min[1]
	maxX, maxY := e.Bound.Max[0], e.Bound.Max[1]

	lengths := []float64{maxX - minX, maxY - minY}
	for i := range lengths {
		if lengths[i] <= 0 {
			lengths[i] = pointSearchRadius
		}
	}

	rect, _ := rtreego.NewRect(rtreego.Point{minX, minY}, lengths)
	return rect
}

// Source is one domain's pair of stores feeding the index.
type Source struct {
	Kind    model.Kind
	Markers store.MarkerStore
	Zones   store.ZoneStore
}

// Index is the shared spatial read model across both domains.
type Index struct {
	sources []Source

	mu   sync.RWMutex
	tree *rtreego.Rtree
}

func New(sources []Source) *Index {
	return &Index{
		sources: sources,
		tree:    rtreego.NewTree(2, 25, 50),
	}
}

// Rebuild reloads every zone from the stores and swaps in a fresh tree.
// This is how deletions and auto-dissolutions leave the index.
func (idx *Index) Rebuild(ctx context.Context) error {
	fresh := rtreego.NewTree(2, 25, 50)
	total := 0

	for _, src := range idx.sources {
		zones, err := src.Zones.FindAll(ctx)
		if err != nil {
			return fmt.Errorf("load %s zones: %w", src.Kind, err)
		}
		for _, z := range zones {
			markers, err := src.Markers.FindByZone(ctx, z.ID)
			if err != nil {
				return fmt.Errorf("load markers of zone %s: %w", z.ID, err)
			}
			bound, ok := util.ZoneBound(markers)
			if !ok {
				continue
			}
			fresh.Insert(&zoneEntry{Zone: z, Bound: bound})
			total++
		}
	}

	idx.mu.Lock()
	idx.tree = fresh
	idx.mu.Unlock()

	log.Printf("Zone index rebuilt: %d zones indexed", total)
	return nil
}

// Insert adds a freshly created zone to the live index.
func (idx *Index) Insert(z *model.ResolvedZone) {
	bound, ok := util.ZoneBound(z.Markers)
	if !ok {
		return
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.tree.Insert(&zoneEntry{Zone: z.Zone, Bound: bound})
}

// Listen consumes the event bus until the context is cancelled, feeding
// zone creations into the index.
func (idx *Index) Listen(ctx context.Context, bus *events.Bus) {
	id, ch := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(id)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-ch:
				if !ok {
					return
				}
				if evt.Kind != events.ZoneAdded {
					continue
				}
				if z, ok := evt.Payload.(*model.ResolvedZone); ok {
					idx.Insert(z)
				}
			}
		}
	}()
}

// ZonesInBounds returns all indexed zones whose bounding box intersects the
// given viewport.
func (idx *Index) ZonesInBounds(minLat, minLng, maxLat, maxLng float64) []model.Zone {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	searchRect, err := rtreego.NewRect(
		rtreego.Point{minLng, minLat},
		[]float64{maxLng - minLng, maxLat - minLat},
	)
	if err != nil {
		log.Printf("invalid search rect: %v", err)
		return nil
	}

	results := idx.tree.SearchIntersect(searchRect)
	zones := make([]model.Zone, 0, len(results))
	for _, item := range results {
		zones = append(zones, item.(*zoneEntry).Zone)
	}
	return zones
}

// ZonesAtPoint returns all indexed zones whose bounding box contains the
// point.
func (idx *Index) ZonesAtPoint(lat, lng float64) []model.Zone {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	searchRect, err := rtreego.NewRect(
		rtreego.Point{lng, lat},
		[]float64{pointSearchRadius, pointSearchRadius},
	)
	if err != nil {
		log.Printf("invalid search rect: %v", err)
		return nil
	}

	var zones []model.Zone
	for _, item := range idx.tree.SearchIntersect(searchRect) {
		entry := item.(*zoneEntry)
		if util.BoundContains(entry.Bound, lat, lng) {
			zones = append(zones, entry.Zone)
		}
	}
	return zones
}

// Count returns how many zones are currently indexed.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.tree.Size()
}
