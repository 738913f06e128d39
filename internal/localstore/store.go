// Package localstore is the durable key-space store backing the local
// repositories: generic CRUD over named collections persisted as JSON
// files in a data directory.
//
// The store hands out ids and timestamps itself through an injected
// id source and clock, so that repositories never inline either. It is
// process-wide and has no cross-process coordination, concurrent
// writers from two processes can silently overwrite each other.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crmap/backend/internal/models"
)

// Record is the contract every stored entity satisfies, the store
// assigns the id and timestamps through it.
type Record interface {
	RecordID() uuid.UUID
	SetRecordID(uuid.UUID)
	Stamp(created, updated time.Time)
}

// Store owns the data directory and the id/clock sources shared by all
// collections.
type Store struct {
	dir   string
	now   func() time.Time
	newID func() uuid.UUID
}

type Option func(*Store)

// WithClock overrides the timestamp source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDSource overrides the id source, used by tests.
func WithIDSource(newID func() uuid.UUID) Option {
	return func(s *Store) { s.newID = newID }
}

// Open creates the data directory if needed and returns a store
// rooted in it.
func Open(dir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	s := &Store{
		dir:   dir,
		now:   time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Now returns the store's current time in UTC.
func (s *Store) Now() time.Time {
	return s.now().In(time.UTC)
}

// Collection is one named collection of records. Every operation reads
// the backing file, acts and persists, serialized by a mutex so that a
// single logical write is never torn.
type Collection[T any, PT interface {
	Record
	*T
}] struct {
	store *Store
	name  string
	mu    sync.Mutex
}

// NewCollection returns the named collection of the store.
func NewCollection[T any, PT interface {
	Record
	*T
}](store *Store, name string) *Collection[T, PT] {
	return &Collection[T, PT]{store: store, name: name}
}

func (c *Collection[T, PT]) path() string {
	return filepath.Join(c.store.dir, c.name+".json")
}

// Init ensures the backing file exists. Idempotent.
func (c *Collection[T, PT]) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(c.path()); err == nil {
		return nil
	}

	return c.save([]T{})
}

func (c *Collection[T, PT]) load() ([]T, error) {
	data, err := os.ReadFile(c.path())
	if os.IsNotExist(err) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading collection %s: %w", c.name, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding collection %s: %w", c.name, err)
	}

	return records, nil
}

func (c *Collection[T, PT]) save(records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding collection %s: %w", c.name, err)
	}

	if err := os.WriteFile(c.path(), data, 0o644); err != nil {
		return fmt.Errorf("writing collection %s: %w", c.name, err)
	}

	return nil
}

// GetAll returns the full collection.
func (c *Collection[T, PT]) GetAll() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.load()
}

// Find returns all records matching the predicate.
func (c *Collection[T, PT]) Find(pred func(T) bool) ([]T, error) {
	records, err := c.GetAll()
	if err != nil {
		return nil, err
	}

	matches := []T{}
	for _, record := range records {
		if pred(record) {
			matches = append(matches, record)
		}
	}

	return matches, nil
}

// FindOne returns the first record matching the predicate.
func (c *Collection[T, PT]) FindOne(pred func(T) bool) (T, bool, error) {
	var zero T

	records, err := c.GetAll()
	if err != nil {
		return zero, false, err
	}

	for _, record := range records {
		if pred(record) {
			return record, true, nil
		}
	}

	return zero, false, nil
}

// FindByID returns the record with the given id.
func (c *Collection[T, PT]) FindByID(id uuid.UUID) (T, bool, error) {
	return c.FindOne(func(record T) bool {
		return PT(&record).RecordID() == id
	})
}

// Create assigns a fresh id and timestamps, appends and persists the
// record.
func (c *Collection[T, PT]) Create(record T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T

	records, err := c.load()
	if err != nil {
		return zero, err
	}

	now := c.store.Now()
	pt := PT(&record)
	pt.SetRecordID(c.store.newID())
	pt.Stamp(now, now)

	records = append(records, record)
	if err := c.save(records); err != nil {
		return zero, err
	}

	return record, nil
}

// Update mutates the record with the given id and refreshes its
// updated timestamp. Returns models.ErrNotFound when the id is absent.
func (c *Collection[T, PT]) Update(id uuid.UUID, mutate func(PT)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T

	records, err := c.load()
	if err != nil {
		return zero, err
	}

	for i := range records {
		pt := PT(&records[i])
		if pt.RecordID() != id {
			continue
		}

		mutate(pt)
		pt.Stamp(time.Time{}, c.store.Now())

		if err := c.save(records); err != nil {
			return zero, err
		}

		return records[i], nil
	}

	return zero, fmt.Errorf("%s %s: %w", c.name, id, models.ErrNotFound)
}

// Delete removes the record with the given id. Returns
// models.ErrNotFound when the id is absent.
func (c *Collection[T, PT]) Delete(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, record := range records {
		if PT(&record).RecordID() != id {
			kept = append(kept, record)
		}
	}

	if len(kept) == len(records) {
		return fmt.Errorf("%s %s: %w", c.name, id, models.ErrNotFound)
	}

	return c.save(kept)
}

// DeleteWhere removes all records matching the predicate and reports
// how many were removed. Used for cascade deletes.
func (c *Collection[T, PT]) DeleteWhere(pred func(T) bool) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return 0, err
	}

	kept := records[:0]
	for _, record := range records {
		if !pred(record) {
			kept = append(kept, record)
		}
	}

	removed := len(records) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	return removed, c.save(kept)
}

// ReplaceAll swaps the collection contents for the given records in a
// single write. Records without an id get one, along with fresh
// timestamps. Used for seeding.
func (c *Collection[T, PT]) ReplaceAll(records []T) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.store.Now()
	for i := range records {
		pt := PT(&records[i])
		if pt.RecordID() == uuid.Nil {
			pt.SetRecordID(c.store.newID())
			pt.Stamp(now, now)
		}
	}

	if err := c.save(records); err != nil {
		return nil, err
	}

	return records, nil
}

// Clear wipes and reinitializes the collection. Supports test
// isolation.
func (c *Collection[T, PT]) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.path()); err != nil && !os.IsNotExist(err) {
		return err
	}

	return c.save([]T{})
}
