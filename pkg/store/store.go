// Package store implements the run history, a database of past executions of
// programs.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.simple-lang.dev/pkg/logutil"
	"src.simple-lang.dev/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

var initDB = map[string](func(*bolt.Tx) error){}

// DBStore is the permanent storage backend for the run history.
type DBStore interface {
	storedefs.Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore creates a new Store from the given file.
func NewStore(dbname string) (DBStore, error) {
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new Store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	defer logger.Println("initialized store")
	st := &dbStore{db: db}

	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	return st, err
}

// Close closes the store.
func (s *dbStore) Close() error {
	return s.db.Close()
}
