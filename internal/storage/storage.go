package storage

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// KeyValue is the persistence collaborator: a store of named string blobs
// with whole-value overwrite semantics.
type KeyValue interface {
	// Get returns the value for key, with ok reporting whether it exists.
	Get(key string) (value string, ok bool, err error)
	// Set writes the value for key, replacing any previous value.
	Set(key, value string) error
}

// Blob is a single named value in the database.
type Blob struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

// Store is a KeyValue backed by a sqlite database.
type Store struct {
	db *gorm.DB
}

var _ KeyValue = (*Store)(nil)

// Open creates a Store at the given DSN and migrates the schema.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&Blob{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(key string) (string, bool, error) {
	var blob Blob
	err := s.db.First(&blob, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return blob.Value, true, nil
}

func (s *Store) Set(key, value string) error {
	blob := Blob{Key: key, Value: value}
	if err := s.db.Save(&blob).Error; err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Memory is a map-backed KeyValue for tests and ephemeral runs.
type Memory struct {
	values map[string]string
}

var _ KeyValue = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.values[key] = value
	return nil
}
