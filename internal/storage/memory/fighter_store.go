// Package memory provides in-memory stores for development and tests.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/JakeFAU/fighter-timeline/internal/fighter"
)

// FighterStore keeps fighter records in a map.
type FighterStore struct {
	mu      sync.RWMutex
	records map[int64]fighter.Record
}

// NewFighterStore constructs a FighterStore holding records.
func NewFighterStore(records ...fighter.Record) *FighterStore {
	s := &FighterStore{records: make(map[int64]fighter.Record, len(records))}
	for _, rec := range records {
		s.records[rec.ID] = rec
	}
	return s
}

// LoadFighterStore seeds a store from a JSON array of records.
func LoadFighterStore(path string) (*FighterStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var records []fighter.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return NewFighterStore(records...), nil
}

// Put inserts or replaces a record.
func (s *FighterStore) Put(rec fighter.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
}

// Get fetches a record by ID.
func (s *FighterStore) Get(_ context.Context, id int64) (fighter.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return fighter.Record{}, fighter.ErrNotFound
	}
	return rec, nil
}

// Len reports how many records are stored.
func (s *FighterStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
