package worker

import (
	"context"
	"log"
	"time"

	"safemap/internal/config"
	"safemap/internal/service/coordinator"
)

// StartOrphanSweeper starts the worker that removes markers left behind by
// interrupted multi-step writes.
func StartOrphanSweeper(coordinators []*coordinator.Coordinator) {
	ticker := time.NewTicker(config.OrphanSweepInterval)
	go func() {
		for range ticker.C {
			for _, c := range coordinators {
				swept, err := c.SweepOrphans(context.Background())
				if err != nil {
					log.Printf("Orphan sweep (%s) failed: %v", c.Kind(), err)
					continue
				}
				if swept > 0 {
					log.Printf("Orphan sweep (%s): removed %d markers", c.Kind(), swept)
				}
			}
		}
	}()

	log.Println("Orphan sweeper started with interval:", config.OrphanSweepInterval)
}
