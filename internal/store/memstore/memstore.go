// Package memstore provides mutex-guarded in-memory implementations of the
// store contracts. They back the unit tests and the local development mode
// that runs without MongoDB.
package memstore

import (
	"context"
	"sync"

	"safemap/internal/model"
)

type MarkerStore struct {
	mu      sync.RWMutex
	markers map[string]model.Marker
}

func NewMarkerStore() *MarkerStore {
	return &MarkerStore{markers: make(map[string]model.Marker)}
}

func (s *MarkerStore) Insert(ctx context.Context, m *model.Marker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers[m.ID] = *m
	return nil
}

func (s *MarkerStore) InsertBatch(ctx context.Context, markers []*model.Marker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range markers {
		s.markers[m.ID] = *m
	}
	return nil
}

func (s *MarkerStore) Get(ctx context.Context, id string) (*model.Marker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.markers[id]
	if !ok {
		return nil, model.ErrMarkerNotFound
	}
	clone := m
	return &clone, nil
}

func (s *MarkerStore) Update(ctx context.Context, m *model.Marker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.markers[m.ID]; !ok {
		return model.ErrMarkerNotFound
	}
	s.markers[m.ID] = *m
	return nil
}

func (s *MarkerStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.markers[id]; !ok {
		return model.ErrMarkerNotFound
	}
	delete(s.markers, id)
	return nil
}

func (s *MarkerStore) FindByZone(ctx context.Context, zoneID string) ([]model.Marker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []model.Marker
	for _, m := range s.markers {
		if m.ZoneID == zoneID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (s *MarkerStore) CountByZone(ctx context.Context, zoneID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, m := range s.markers {
		if m.ZoneID == zoneID {
			count++
		}
	}
	return count, nil
}

func (s *MarkerStore) DeleteByZone(ctx context.Context, zoneID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for id, m := range s.markers {
		if m.ZoneID == zoneID {
			delete(s.markers, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MarkerStore) FindAll(ctx context.Context) ([]model.Marker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.Marker, 0, len(s.markers))
	for _, m := range s.markers {
		result = append(result, m)
	}
	return result, nil
}

type ZoneStore struct {
	mu    sync.RWMutex
	zones map[string]model.Zone
}

func NewZoneStore() *ZoneStore {
	return &ZoneStore{zones: make(map[string]model.Zone)}
}

func (s *ZoneStore) Insert(ctx context.Context, z *model.Zone) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *z
	clone.MarkerIDs = append([]string(nil), z.MarkerIDs...)
	s.zones[z.ID] = clone
	return nil
}

func (s *ZoneStore) Get(ctx context.Context, id string) (*model.Zone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	z, ok := s.zones[id]
	if !ok {
		return nil, model.ErrZoneNotFound
	}
	clone := z
	clone.MarkerIDs = append([]string(nil), z.MarkerIDs...)
	return &clone, nil
}

func (s *ZoneStore) UpdateMarkers(ctx context.Context, zoneID string, markerIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	z, ok := s.zones[zoneID]
	if !ok {
		return model.ErrZoneNotFound
	}
	z.MarkerIDs = append([]string(nil), markerIDs...)
	s.zones[zoneID] = z
	return nil
}

func (s *ZoneStore) UpdateStatus(ctx context.Context, zoneID string, status model.ZoneStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	z, ok := s.zones[zoneID]
	if !ok {
		return model.ErrZoneNotFound
	}
	z.Status = status
	s.zones[zoneID] = z
	return nil
}

func (s *ZoneStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zones[id]; !ok {
		return model.ErrZoneNotFound
	}
	delete(s.zones, id)
	return nil
}

func (s *ZoneStore) FindAll(ctx context.Context) ([]model.Zone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.Zone, 0, len(s.zones))
	for _, z := range s.zones {
		clone := z
		clone.MarkerIDs = append([]string(nil), z.MarkerIDs...)
		result = append(result, clone)
	}
	return result, nil
}
