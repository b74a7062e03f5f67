// Command export-geojson dumps every zone and marker from MongoDB into a
// GeoJSON FeatureCollection for offline visualization.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.mongodb.org/mongo-driver/mongo"

	"safemap/internal/model"
	"safemap/internal/mongodb"
	"safemap/internal/store/mongostore"
)

var (
	mongoURL    string
	mongoDBName string
	outputFile  string
	onlyZoned   bool
)

func init() {
	flag.StringVar(&mongoURL, "mongo-url", "mongodb://localhost:27017", "MongoDB connection URL")
	flag.StringVar(&mongoDBName, "mongo-db", "safemap", "MongoDB database name")
	flag.StringVar(&outputFile, "out", "safemap.geojson", "Output GeoJSON file")
	flag.BoolVar(&onlyZoned, "only-zoned", false, "Skip markers that do not belong to a zone")
}

func main() {
	flag.Parse()

	_, db := mongodb.Init(mongoURL, mongoDBName)
	defer mongodb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fc := geojson.NewFeatureCollection()
	zones, markers := 0, 0

	for _, kind := range []model.Kind{model.KindHazard, model.KindSafety} {
		z, m := exportKind(ctx, db, kind, fc)
		zones += z
		markers += m
	}

	jsonData, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal GeoJSON: %v", err)
	}

	if err := os.WriteFile(outputFile, jsonData, 0644); err != nil {
		log.Fatalf("Failed to write GeoJSON file: %v", err)
	}

	log.Printf("Exported %d zones and %d markers to %s", zones, markers, outputFile)
}

// exportKind appends one domain's zones as polygons and its markers as
// points.
func exportKind(ctx context.Context, db *mongo.Database, kind model.Kind, fc *geojson.FeatureCollection) (int, int) {
	markerStore := mongostore.NewMarkerStore(db, kind)
	zoneStore := mongostore.NewZoneStore(db, kind)

	zones, err := zoneStore.FindAll(ctx)
	if err != nil {
		log.Fatalf("Failed to load %s zones: %v", kind, err)
	}

	zoneCount := 0
	for _, z := range zones {
		members, err := markerStore.FindByZone(ctx, z.ID)
		if err != nil {
			log.Fatalf("Failed to load markers of zone %s: %v", z.ID, err)
		}
		if len(members) == 0 {
			continue
		}

		// Close the ring back to the first marker
		ring := make(orb.Ring, 0, len(members)+1)
		for _, m := range members {
			ring = append(ring, orb.Point{m.Lng(), m.Lat()})
		}
		ring = append(ring, ring[0])

		feature := geojson.NewFeature(orb.Polygon{ring})
		feature.Properties["id"] = z.ID
		feature.Properties["kind"] = string(z.Kind)
		feature.Properties["status"] = string(z.Status)
		feature.Properties["markers"] = len(members)
		fc.Append(feature)
		zoneCount++
	}

	allMarkers, err := markerStore.FindAll(ctx)
	if err != nil {
		log.Fatalf("Failed to load %s markers: %v", kind, err)
	}

	markerCount := 0
	for _, m := range allMarkers {
		if onlyZoned && m.ZoneID == "" {
			continue
		}

		feature := geojson.NewFeature(orb.Point{m.Lng(), m.Lat()})
		feature.Properties["id"] = m.ID
		feature.Properties["kind"] = string(m.Kind)
		feature.Properties["type"] = "marker"
		if m.ZoneID != "" {
			feature.Properties["zone"] = m.ZoneID
		}
		if m.PlaceName != "" {
			feature.Properties["placeName"] = m.PlaceName
		}
		fc.Append(feature)
		markerCount++
	}

	return zoneCount, markerCount
}
