package worker

import (
	"context"
	"log"
	"time"

	"safemap/internal/config"
	"safemap/internal/service/zoneindex"
)

// StartIndexRebuilder starts the worker that periodically rebuilds the
// spatial zone index so deleted and dissolved zones drop out of map queries.
func StartIndexRebuilder(index *zoneindex.Index) {
	ticker := time.NewTicker(config.IndexRebuildInterval)
	go func() {
		for range ticker.C {
			if err := index.Rebuild(context.Background()); err != nil {
				log.Printf("Zone index rebuild failed: %v", err)
			}
		}
	}()

	log.Println("Index rebuilder started with interval:", config.IndexRebuildInterval)
}
