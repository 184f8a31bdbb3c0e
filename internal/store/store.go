package store

import (
	"sync"

	"github.com/HACKWAVE2025/B30/internal/models"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// DefaultCapacity is the number of entries kept when none is configured.
const DefaultCapacity = 100

// Store keeps the most recent readings in a fixed size ring. The oldest entry
// is overwritten once the ring is full.
type Store struct {
	mu    sync.RWMutex
	ring  []models.HistoryEntry
	head  int // index of the oldest entry
	size  int
	total uint64

	clock clockwork.Clock
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used to stamp entries.
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

// NewStore creates an in-memory history holding up to capacity entries.
func NewStore(capacity int, opts ...Option) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	s := &Store{
		ring:  make([]models.HistoryEntry, capacity),
		clock: clockwork.NewRealClock(),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping reports the store as healthy. It exists for parity with external
// backends behind DataStore.
func (s *Store) Ping() error {
	return nil
}

// Append stamps the reading and stores it with its analysis, evicting the
// oldest entry when full. Stamping and eviction happen under one lock.
func (s *Store) Append(reading models.Reading, analysis models.AnalysisResult) models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.total++
	reading.Timestamp = s.clock.Now()
	entry := models.HistoryEntry{
		ID:       s.newID(),
		Seq:      s.total,
		Reading:  reading,
		Analysis: analysis,
	}

	capacity := len(s.ring)
	if s.size < capacity {
		s.ring[(s.head+s.size)%capacity] = entry
		s.size++
	} else {
		s.ring[s.head] = entry
		s.head = (s.head + 1) % capacity
	}
	return entry
}

// Recent returns up to n of the newest entries, oldest first.
func (s *Store) Recent(n int) []models.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 {
		return []models.HistoryEntry{}
	}
	if n > s.size {
		n = s.size
	}
	return s.copyRange(s.size-n, n)
}

// All returns every held entry in insertion order.
func (s *Store) All() []models.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyRange(0, s.size)
}

// Latest returns the newest entry.
func (s *Store) Latest() (models.HistoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.size == 0 {
		return models.HistoryEntry{}, false
	}
	return s.ring[(s.head+s.size-1)%len(s.ring)], true
}

// Count returns the number of entries currently held.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// Total returns the number of entries appended since the store was created.
func (s *Store) Total() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// Capacity returns the maximum number of entries held.
func (s *Store) Capacity() int {
	return len(s.ring)
}

// copyRange copies n entries starting at logical offset from. Caller holds mu.
func (s *Store) copyRange(from, n int) []models.HistoryEntry {
	out := make([]models.HistoryEntry, n)
	for i := 0; i < n; i++ {
		out[i] = s.ring[(s.head+from+i)%len(s.ring)]
	}
	return out
}
