// Package cache memoizes calculation results in a bbolt file.
//
// Calculations are pure, so a result stored once stays valid for as long as
// the calculator limits do not change. Failures are never stored.
package cache

import (
	"errors"
	"fmt"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

// BucketResults holds op/left/right → result entries.
const BucketResults = "results"

// ErrClosed is returned when the cache is used after Close.
var ErrClosed = errors.New("cache closed")

// Cache represents the bbolt database wrapper.
type Cache struct {
	db *bolt.DB
}

// Open creates the cache file if needed and initializes its bucket. The
// parent directory must exist.
func Open(path string) (*Cache, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(BucketResults)); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", BucketResults, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db}, nil
}

// Close closes the cache file.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// Key builds the storage key for a calculation.
func Key(op, left, right string) []byte {
	return []byte(strings.Join([]string{op, left, right}, "\x00"))
}

// Get returns the stored result of a calculation.
func (c *Cache) Get(op, left, right string) (string, bool, error) {
	if c.db == nil {
		return "", false, ErrClosed
	}

	var (
		result string
		found  bool
	)
	err := c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(BucketResults)).Get(Key(op, left, right))
		if v != nil {
			result = string(v)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read cache: %w", err)
	}

	return result, found, nil
}

// Put stores the result of a calculation.
func (c *Cache) Put(op, left, right, result string) error {
	if c.db == nil {
		return ErrClosed
	}

	err := c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketResults)).Put(Key(op, left, right), []byte(result))
	})
	if err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// Len returns the number of stored results.
func (c *Cache) Len() (int, error) {
	if c.db == nil {
		return 0, ErrClosed
	}

	var n int
	err := c.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(BucketResults)).Stats().KeyN
		return nil
	})
	return n, err
}

// Purge removes every stored result.
func (c *Cache) Purge() error {
	if c.db == nil {
		return ErrClosed
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(BucketResults)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(BucketResults))
		return err
	})
}
