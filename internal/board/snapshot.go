package board

import (
	"time"

	"board/internal/models"
)

// Snapshot is the durable subset of store state. Loading and error flags
// are transient and never persisted.
type Snapshot struct {
	Columns     models.Columns `json:"columns"`
	LastFetched time.Time      `json:"last_fetched"`
}

// SnapshotStore persists board snapshots across restarts so the board can
// paint immediately without waiting for a gateway round-trip.
type SnapshotStore interface {
	// Load returns the stored snapshot, or nil when none exists.
	Load() (*Snapshot, error)
	// Save replaces the stored snapshot.
	Save(Snapshot) error
}
