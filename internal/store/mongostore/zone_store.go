package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"safemap/internal/model"
)

type ZoneStore struct {
	coll *mongo.Collection
}

func NewZoneStore(db *mongo.Database, kind model.Kind) *ZoneStore {
	return &ZoneStore{coll: db.Collection(ZoneCollectionName(kind))}
}

func (s *ZoneStore) Insert(ctx context.Context, z *model.Zone) error {
	if _, err := s.coll.InsertOne(ctx, z); err != nil {
		return fmt.Errorf("insert zone: %w", err)
	}
	return nil
}

func (s *ZoneStore) Get(ctx context.Context, id string) (*model.Zone, error) {
	var z model.Zone
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&z)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrZoneNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get zone: %w", err)
	}
	return &z, nil
}

func (s *ZoneStore) UpdateMarkers(ctx context.Context, zoneID string, markerIDs []string) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": zoneID},
		bson.M{"$set": bson.M{"markers": markerIDs}},
	)
	if err != nil {
		return fmt.Errorf("update zone markers: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrZoneNotFound
	}
	return nil
}

func (s *ZoneStore) UpdateStatus(ctx context.Context, zoneID string, status model.ZoneStatus) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": zoneID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("update zone status: %w", err)
	}
	if res.MatchedCount == 0 {
		return model.ErrZoneNotFound
	}
	return nil
}

func (s *ZoneStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete zone: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrZoneNotFound
	}
	return nil
}

func (s *ZoneStore) FindAll(ctx context.Context) ([]model.Zone, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find zones: %w", err)
	}
	var zones []model.Zone
	if err := cur.All(ctx, &zones); err != nil {
		return nil, fmt.Errorf("decode zones: %w", err)
	}
	return zones, nil
}

// TxRunner scopes multi-document writes in a MongoDB session transaction so
// the marker batch and the zone record commit or abort together.
type TxRunner struct {
	client *mongo.Client
}

func NewTxRunner(client *mongo.Client) *TxRunner {
	return &TxRunner{client: client}
}

func (r *TxRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
