package worker

import (
	"log"

	"safemap/internal/service/coordinator"
	"safemap/internal/service/zoneindex"
)

// StartAllWorkers initializes and starts all background workers
func StartAllWorkers(coordinators []*coordinator.Coordinator, index *zoneindex.Index) {
	log.Println("Starting all workers...")

	StartOrphanSweeper(coordinators)
	StartIndexRebuilder(index)

	log.Println("All workers started")
}
