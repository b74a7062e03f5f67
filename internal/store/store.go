// Package store defines the persistence contracts for markers and zones.
// There is one MarkerStore/ZoneStore pair per domain (hazard, safety), each
// backed by its own collection.
package store

import (
	"context"

	"safemap/internal/model"
)

// MarkerStore is the durable record set for one marker kind. Get returns
// model.ErrMarkerNotFound when the id does not resolve.
type MarkerStore interface {
	Insert(ctx context.Context, m *model.Marker) error
	InsertBatch(ctx context.Context, markers []*model.Marker) error
	Get(ctx context.Context, id string) (*model.Marker, error)
	Update(ctx context.Context, m *model.Marker) error
	Delete(ctx context.Context, id string) error
	FindByZone(ctx context.Context, zoneID string) ([]model.Marker, error)
	CountByZone(ctx context.Context, zoneID string) (int64, error)
	DeleteByZone(ctx context.Context, zoneID string) (int64, error)
	FindAll(ctx context.Context) ([]model.Marker, error)
}

// ZoneStore is the durable record set for one zone kind. Get returns
// model.ErrZoneNotFound when the id does not resolve.
type ZoneStore interface {
	Insert(ctx context.Context, z *model.Zone) error
	Get(ctx context.Context, id string) (*model.Zone, error)
	UpdateMarkers(ctx context.Context, zoneID string, markerIDs []string) error
	UpdateStatus(ctx context.Context, zoneID string, status model.ZoneStatus) error
	Delete(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]model.Zone, error)
}

// TxRunner scopes a multi-document mutation in a single transaction. The
// callback's context must be passed to every store call made inside it;
// returning an error aborts the whole transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NopTxRunner runs the callback directly, for backends without transaction
// support.
type NopTxRunner struct{}

func (NopTxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
