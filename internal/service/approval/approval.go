// Package approval tracks reviewer disposition of zones. Transitions are
// status-only updates and never touch a zone's marker set.
package approval

import (
	"context"

	"safemap/internal/model"
	"safemap/internal/store"
)

// AlertFinder resolves the alert a reviewer acted on.
type AlertFinder interface {
	GetAlert(ctx context.Context, id string) (*model.Alert, error)
}

// Service applies pending → approved / pending → disapproved transitions.
// Re-invoking a transition the zone is already in is a no-op success.
type Service struct {
	zones  map[model.Kind]store.ZoneStore
	alerts AlertFinder
}

func New(hazardZones, safetyZones store.ZoneStore, alerts AlertFinder) *Service {
	return &Service{
		zones: map[model.Kind]store.ZoneStore{
			model.KindHazard: hazardZones,
			model.KindSafety: safetyZones,
		},
		alerts: alerts,
	}
}

// Approve marks the zone approved.
func (s *Service) Approve(ctx context.Context, kind model.Kind, zoneID string) (*model.Zone, error) {
	return s.transition(ctx, kind, zoneID, model.ZoneStatusApproved)
}

// Disapprove marks the zone disapproved.
func (s *Service) Disapprove(ctx context.Context, kind model.Kind, zoneID string) (*model.Zone, error) {
	return s.transition(ctx, kind, zoneID, model.ZoneStatusDisapproved)
}

func (s *Service) transition(ctx context.Context, kind model.Kind, zoneID string, status model.ZoneStatus) (*model.Zone, error) {
	zones := s.zones[kind]
	zone, err := zones.Get(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	if zone.Status == status {
		return zone, nil
	}

	if err := zones.UpdateStatus(ctx, zoneID, status); err != nil {
		return nil, err
	}
	zone.Status = status
	return zone, nil
}

// PendingZoneForAlert is the read-only join from an alert's weak zone
// reference to the pending zone it points at. The reference may be stale:
// a dissolved or already-reviewed zone resolves to ErrZoneNotFound.
func (s *Service) PendingZoneForAlert(ctx context.Context, alertID string) (*model.Zone, error) {
	alert, err := s.alerts.GetAlert(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if alert.ZoneID == "" {
		return nil, model.ErrZoneNotFound
	}

	zones, ok := s.zones[alert.ZoneKind]
	if !ok {
		return nil, model.ErrZoneNotFound
	}
	zone, err := zones.Get(ctx, alert.ZoneID)
	if err != nil {
		return nil, err
	}
	if zone.Status != model.ZoneStatusPending {
		return nil, model.ErrZoneNotFound
	}
	return zone, nil
}
