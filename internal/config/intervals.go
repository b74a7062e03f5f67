package config

import "time"

// Worker intervals and expirations
const (
	// OrphanSweepInterval defines how often the sweeper looks for markers
	// whose owning zone no longer resolves
	OrphanSweepInterval = 5 * time.Minute

	// IndexRebuildInterval defines how often the spatial zone index is
	// rebuilt to reflect deletions
	IndexRebuildInterval = 2 * time.Minute

	// SessionTTL defines how long an issued auth token stays valid
	SessionTTL = 24 * time.Hour
)
