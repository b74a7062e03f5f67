// Package mongostore implements the store contracts on MongoDB. Each domain
// gets its own pair of collections (dangermarkers/dangerzones,
// safetymarkers/safezones), every document keyed by the opaque short id.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"safemap/internal/model"
)

// MarkerCollectionName returns the collection markers of the given kind
// live in.
func MarkerCollectionName(kind model.Kind) string {
	if kind == model.KindHazard {
		return "dangermarkers"
	}
	return "safetymarkers"
}

// ZoneCollectionName returns the collection zones of the given kind live in.
func ZoneCollectionName(kind model.Kind) string {
	if kind == model.KindHazard {
		return "dangerzones"
	}
	return "safezones"
}

type MarkerStore struct {
	coll *mongo.Collection
}

func NewMarkerStore(db *mongo.Database, kind model.Kind) *MarkerStore {
	return &MarkerStore{coll: db.Collection(MarkerCollectionName(kind))}
}

func (s *MarkerStore) Insert(ctx context.Context, m *model.Marker) error {
	if _, err := s.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert marker: %w", err)
	}
	return nil
}

func (s *MarkerStore) InsertBatch(ctx context.Context, markers []*model.Marker) error {
	docs := make([]interface{}, len(markers))
	for i, m := range markers {
		docs[i] = m
	}
	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert marker batch: %w", err)
	}
	return nil
}

func (s *MarkerStore) Get(ctx context.Context, id string) (*model.Marker, error) {
	var m model.Marker
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrMarkerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get marker: %w", err)
	}
	return &m, nil
}

func (s *MarkerStore) Update(ctx context.Context, m *model.Marker) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return fmt.Errorf("update marker: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrMarkerNotFound
	}
	return nil
}

func (s *MarkerStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete marker: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrMarkerNotFound
	}
	return nil
}

func (s *MarkerStore) FindByZone(ctx context.Context, zoneID string) ([]model.Marker, error) {
	cur, err := s.coll.Find(ctx, bson.M{"zone": zoneID})
	if err != nil {
		return nil, fmt.Errorf("find markers by zone: %w", err)
	}
	var markers []model.Marker
	if err := cur.All(ctx, &markers); err != nil {
		return nil, fmt.Errorf("decode markers: %w", err)
	}
	return markers, nil
}

func (s *MarkerStore) CountByZone(ctx context.Context, zoneID string) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"zone": zoneID})
	if err != nil {
		return 0, fmt.Errorf("count markers by zone: %w", err)
	}
	return count, nil
}

func (s *MarkerStore) DeleteByZone(ctx context.Context, zoneID string) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"zone": zoneID})
	if err != nil {
		return 0, fmt.Errorf("delete markers by zone: %w", err)
	}
	return res.DeletedCount, nil
}

func (s *MarkerStore) FindAll(ctx context.Context) ([]model.Marker, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find markers: %w", err)
	}
	var markers []model.Marker
	if err := cur.All(ctx, &markers); err != nil {
		return nil, fmt.Errorf("decode markers: %w", err)
	}
	return markers, nil
}
