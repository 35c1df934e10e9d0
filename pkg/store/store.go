// Package store abstracts the persistent cache that maps the checksum of a
// source file to its formatted output.
package store

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var initDB = map[string]func(tx *bolt.Tx) error{}

// ErrNoCachedOutput is returned by CachedOutput when the input has no cached
// formatting result.
var ErrNoCachedOutput = errors.New("no cached output")

// Store is the interface of the formatting result cache.
type Store interface {
	// CachedOutput returns the cached output for the input with the given
	// checksum, or ErrNoCachedOutput.
	CachedOutput(sum string) (string, error)
	// PutOutput records the output for the input with the given checksum.
	PutOutput(sum, output string) error
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore creates a Store backed by the named database file, creating the
// file and the tables as needed.
func NewStore(dbname string) (Store, error) {
	db, err := bolt.Open(dbname, 0o644, &bolt.Options{
		Timeout: time.Second,
	})
	if err != nil {
		return nil, err
	}
	st := &dbStore{db}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

func (s *dbStore) Close() error {
	return s.db.Close()
}
