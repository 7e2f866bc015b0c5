// Package snapshot persists board snapshots in a local bbolt file, the
// service-side equivalent of the browser storage slot the board UI uses.
package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"board/internal/board"
)

var bucketSnapshots = []byte("snapshots")

// SchemaVersion tags the storage key. Bumping it orphans old snapshots
// instead of migrating them: the store simply starts reading a new key.
const SchemaVersion = "v2"

var snapshotKey = []byte("board-state-" + SchemaVersion)

// BoltStore keeps the single board snapshot under a versioned key.
type BoltStore struct {
	db *bbolt.DB
}

// Open creates or opens the snapshot database at path.
func Open(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open snapshot database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSnapshots)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshots bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close releases the database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// Load returns the stored snapshot, or nil when the versioned key is empty.
func (s *BoltStore) Load() (*board.Snapshot, error) {
	var snap *board.Snapshot
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshots)
		if bucket == nil {
			return nil
		}
		data := bucket.Get(snapshotKey)
		if data == nil {
			return nil
		}
		snap = &board.Snapshot{}
		if err := json.Unmarshal(data, snap); err != nil {
			return fmt.Errorf("decode snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Save replaces the stored snapshot.
func (s *BoltStore) Save(snap board.Snapshot) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSnapshots)
		if bucket == nil {
			return fmt.Errorf("snapshots bucket not found")
		}
		data, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		return bucket.Put(snapshotKey, data)
	})
}
