package journal

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trade-journal-go/internal/models"
	"trade-journal-go/internal/storage"
)

// ErrNotFound is returned by Update when no trade has the given id.
var ErrNotFound = errors.New("trade not found")

// PersistenceError reports a failed write of the collection to the
// key-value slot. The in-memory mutation it accompanies has already been
// applied and is not rolled back.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist trades: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Store owns the canonical in-memory trade collection and mirrors it to an
// injected key-value slot on every mutation. The collection is kept
// newest-first; aggregation does not depend on order, display does.
// The HTTP layer runs each request on its own goroutine, so the mutex
// serializes every access; persisting under the lock keeps the blob
// consistent with the collection it mirrors.
type Store struct {
	kv     storage.KeyValue
	key    string
	logger *zap.Logger

	mu     sync.RWMutex
	trades []models.Trade
}

// NewStore creates a Store persisting under the given key.
func NewStore(kv storage.KeyValue, key string, logger *zap.Logger) *Store {
	return &Store{
		kv:     kv,
		key:    key,
		logger: logger,
		trades: []models.Trade{},
	}
}

// Load hydrates the collection from the key-value slot. A missing or empty
// value yields an empty collection.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok, err := s.kv.Get(s.key)
	if err != nil {
		return fmt.Errorf("failed to load trades: %w", err)
	}
	if !ok {
		s.trades = []models.Trade{}
		return nil
	}
	trades, err := models.DecodeTrades(value)
	if err != nil {
		return fmt.Errorf("failed to load trades: %w", err)
	}
	s.trades = trades
	s.logger.Info("Loaded trade collection", zap.Int("count", len(trades)))
	return nil
}

// Add assigns a fresh id to the draft, prepends the trade, and persists.
// The trade is returned even when persistence fails; the error then is a
// *PersistenceError and the mutation survives in memory.
func (s *Store) Add(draft models.TradeDraft) (models.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trade := models.Trade{
		ID:     uuid.NewString(),
		Symbol: draft.Symbol,
		Side:   draft.Side,
		Profit: draft.Profit,
		Date:   draft.Date,
		Notes:  draft.Notes,
	}
	s.trades = append([]models.Trade{trade}, s.trades...)
	return trade, s.persist()
}

// Update replaces the stored trade with a matching id. Unknown ids are
// reported as ErrNotFound rather than ignored, so a stale client sees the
// miss instead of silently losing its edit.
func (s *Store) Update(trade models.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.trades {
		if s.trades[i].ID == trade.ID {
			s.trades[i] = trade
			return s.persist()
		}
	}
	return ErrNotFound
}

// Remove deletes the trade with the given id. Removing an unknown id is a
// no-op, which makes the call idempotent; nothing is persisted in that case.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.trades {
		if s.trades[i].ID == id {
			s.trades = append(s.trades[:i:i], s.trades[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// All returns a copy of the collection, newest-first. Callers never see the
// store's internal slice.
func (s *Store) All() []models.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]models.Trade, len(s.trades))
	copy(snapshot, s.trades)
	return snapshot
}

// persist overwrites the whole collection in the key-value slot.
// Callers must hold mu.
func (s *Store) persist() error {
	value, err := models.EncodeTrades(s.trades)
	if err != nil {
		return &PersistenceError{Err: err}
	}
	if err := s.kv.Set(s.key, value); err != nil {
		s.logger.Error("Failed to persist trades", zap.Error(err))
		return &PersistenceError{Err: err}
	}
	return nil
}
