// Package runstore persists a record of each simulation run so a host
// can list and inspect past runs after the process that drove them has
// exited.
package runstore

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketRuns = []byte("runs")

// RunSummary is the durable record of one completed or in-progress run.
type RunSummary struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	CompletedAt   time.Time `json:"completed_at,omitempty"`
	DispatchCount uint64    `json:"dispatch_count"`
	Error         string    `json:"error,omitempty"`
	AgentCount    int       `json:"agent_count"`
}

// Store is a BoltDB-backed append/update log of RunSummary records.
type Store struct {
	db *bolt.DB
}

// Open creates or opens the run database under dataDir.
func Open(dataDir string) (*Store, error) {
	dbPath := filepath.Join(dataDir, "runs.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open run store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create run bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put upserts a RunSummary keyed by its ID.
func (s *Store) Put(summary RunSummary) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		data, err := json.Marshal(summary)
		if err != nil {
			return err
		}
		return b.Put([]byte(summary.ID), data)
	})
}

// Get retrieves a single run by ID.
func (s *Store) Get(id string) (RunSummary, error) {
	var summary RunSummary
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		data := b.Get([]byte(id))
		if data == nil {
			return fmt.Errorf("run not found: %s", id)
		}
		return json.Unmarshal(data, &summary)
	})
	return summary, err
}

// List returns every stored run, most recently started first.
func (s *Store) List() ([]RunSummary, error) {
	var runs []RunSummary
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRuns)
		return b.ForEach(func(_, v []byte) error {
			var summary RunSummary
			if err := json.Unmarshal(v, &summary); err != nil {
				return err
			}
			runs = append(runs, summary)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].StartedAt.After(runs[j].StartedAt) })
	return runs, nil
}
