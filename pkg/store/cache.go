package store

import (
	bolt "go.etcd.io/bbolt"
)

const bucketOutput = "output"

func init() {
	initDB["initialize output cache table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketOutput))
		return err
	}
}

func (s *dbStore) CachedOutput(sum string) (string, error) {
	var out string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketOutput))
		v := b.Get([]byte(sum))
		if v == nil {
			return ErrNoCachedOutput
		}
		out = string(v)
		return nil
	})
	return out, err
}

func (s *dbStore) PutOutput(sum, output string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketOutput))
		return b.Put([]byte(sum), []byte(output))
	})
}
