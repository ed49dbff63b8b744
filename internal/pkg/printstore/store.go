package printstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/smash-arena/pos-terminal/internal/domain/receipt"
	bolt "go.etcd.io/bbolt"
)

var ErrNothingToPrint = errors.New("no receipt to print")

var (
	bucketName = []byte("print")
	printKey   = []byte("print_data")
)

// Store keeps the last completed receipt on disk so the print view can be
// reopened after a restart.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the bbolt file at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open print store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create print bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Save replaces the stored receipt.
func (s *Store) Save(r receipt.Receipt) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode receipt: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(printKey, raw)
	})
}

// Load returns the stored receipt or ErrNothingToPrint.
func (s *Store) Load() (receipt.Receipt, error) {
	var r receipt.Receipt
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketName).Get(printKey)
		if raw == nil {
			return ErrNothingToPrint
		}
		return json.Unmarshal(raw, &r)
	})
	if err != nil {
		return receipt.Receipt{}, err
	}
	return r, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
