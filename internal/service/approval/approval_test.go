package approval

import (
	"context"
	"errors"
	"testing"
	"time"

	"safemap/internal/model"
	"safemap/internal/store/memstore"
	"safemap/internal/util"
)

type fakeAlertFinder struct {
	alerts map[string]model.Alert
}

func (f *fakeAlertFinder) GetAlert(ctx context.Context, id string) (*model.Alert, error) {
	a, ok := f.alerts[id]
	if !ok {
		return nil, model.ErrAlertNotFound
	}
	return &a, nil
}

func seedZone(t *testing.T, zones *memstore.ZoneStore, status model.ZoneStatus) *model.Zone {
	t.Helper()
	ids := make([]string, model.ZoneMarkerCount)
	for i := range ids {
		ids[i] = util.ShortUUID()
	}
	z := &model.Zone{
		ID:        util.ShortUUID(),
		Kind:      model.KindHazard,
		MarkerIDs: ids,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	if err := zones.Insert(context.Background(), z); err != nil {
		t.Fatalf("seed zone: %v", err)
	}
	return z
}

func TestApproveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	hazard := memstore.NewZoneStore()
	safety := memstore.NewZoneStore()
	svc := New(hazard, safety, &fakeAlertFinder{})

	zone := seedZone(t, hazard, model.ZoneStatusPending)

	for i := 0; i < 2; i++ {
		got, err := svc.Approve(ctx, model.KindHazard, zone.ID)
		if err != nil {
			t.Fatalf("Approve call %d: %v", i+1, err)
		}
		if got.Status != model.ZoneStatusApproved {
			t.Fatalf("call %d: expected approved, got %s", i+1, got.Status)
		}
		if len(got.MarkerIDs) != model.ZoneMarkerCount {
			t.Fatalf("call %d: marker set changed, %d references", i+1, len(got.MarkerIDs))
		}
	}
}

func TestDisapprove(t *testing.T) {
	ctx := context.Background()
	hazard := memstore.NewZoneStore()
	svc := New(hazard, memstore.NewZoneStore(), &fakeAlertFinder{})

	zone := seedZone(t, hazard, model.ZoneStatusPending)

	got, err := svc.Disapprove(ctx, model.KindHazard, zone.ID)
	if err != nil {
		t.Fatalf("Disapprove: %v", err)
	}
	if got.Status != model.ZoneStatusDisapproved {
		t.Fatalf("expected disapproved, got %s", got.Status)
	}
}

func TestTransitionsOnMissingZone(t *testing.T) {
	ctx := context.Background()
	svc := New(memstore.NewZoneStore(), memstore.NewZoneStore(), &fakeAlertFinder{})

	if _, err := svc.Approve(ctx, model.KindHazard, "missing"); !errors.Is(err, model.ErrZoneNotFound) {
		t.Fatalf("Approve: expected ErrZoneNotFound, got %v", err)
	}
	if _, err := svc.Disapprove(ctx, model.KindSafety, "missing"); !errors.Is(err, model.ErrZoneNotFound) {
		t.Fatalf("Disapprove: expected ErrZoneNotFound, got %v", err)
	}
}

func TestPendingZoneForAlert(t *testing.T) {
	ctx := context.Background()
	hazard := memstore.NewZoneStore()
	pending := seedZone(t, hazard, model.ZoneStatusPending)
	reviewed := seedZone(t, hazard, model.ZoneStatusApproved)

	alerts := &fakeAlertFinder{alerts: map[string]model.Alert{
		"a-pending":  {ID: "a-pending", ZoneID: pending.ID, ZoneKind: model.KindHazard},
		"a-reviewed": {ID: "a-reviewed", ZoneID: reviewed.ID, ZoneKind: model.KindHazard},
		"a-plain":    {ID: "a-plain"},
	}}
	svc := New(hazard, memstore.NewZoneStore(), alerts)

	zone, err := svc.PendingZoneForAlert(ctx, "a-pending")
	if err != nil {
		t.Fatalf("PendingZoneForAlert: %v", err)
	}
	if zone.ID != pending.ID {
		t.Errorf("resolved zone %s, want %s", zone.ID, pending.ID)
	}

	if _, err := svc.PendingZoneForAlert(ctx, "a-reviewed"); !errors.Is(err, model.ErrZoneNotFound) {
		t.Errorf("reviewed zone: expected ErrZoneNotFound, got %v", err)
	}
	if _, err := svc.PendingZoneForAlert(ctx, "a-plain"); !errors.Is(err, model.ErrZoneNotFound) {
		t.Errorf("plain alert: expected ErrZoneNotFound, got %v", err)
	}
	if _, err := svc.PendingZoneForAlert(ctx, "missing"); !errors.Is(err, model.ErrAlertNotFound) {
		t.Errorf("missing alert: expected ErrAlertNotFound, got %v", err)
	}
}
