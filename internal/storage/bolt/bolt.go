package bolt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chris-regnier/habitctl/internal/habit"
	"github.com/chris-regnier/habitctl/internal/storage"
	"go.etcd.io/bbolt"
)

// FileName is the database file kept in the data directory.
const FileName = "habitctl.bolt"

const (
	rootBucket = "habitctl"
	trackerKey = "tracker"
)

type Store struct {
	db *bbolt.DB
}

func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}

	// A second process holding the file lock makes Open block; fail instead.
	db, err := bbolt.Open(filepath.Join(dataDir, FileName), 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrStorage, err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(rootBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: creating bucket: %v", storage.ErrStorage, err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Load() (habit.Tracker, error) {
	var val []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		// Value is only valid for the life of the transaction.
		if v := tx.Bucket([]byte(rootBucket)).Get([]byte(trackerKey)); v != nil {
			val = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return habit.Tracker{}, fmt.Errorf("%w: reading tracker: %v", storage.ErrStorage, err)
	}
	if val == nil {
		return habit.Tracker{}, storage.ErrNotFound
	}

	var t habit.Tracker
	if err := json.Unmarshal(val, &t); err != nil {
		return habit.Tracker{}, fmt.Errorf("%w: %v", storage.ErrCorrupt, err)
	}
	return t, nil
}

func (s *Store) Save(t habit.Tracker) error {
	val, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("%w: encoding habits: %v", storage.ErrStorage, err)
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(rootBucket)).Put([]byte(trackerKey), val)
	})
	if err != nil {
		return fmt.Errorf("%w: writing tracker: %v", storage.ErrStorage, err)
	}
	return nil
}

var _ storage.Storage = (*Store)(nil)
