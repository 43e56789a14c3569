// Package store provides persistence for named molecule documents.
//
// This package defines an interface for molecule library storage with
// implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI applications
//   - mongo: MongoDB-backed storage for server deployments
//
// # Architecture
//
// Records pair a molecule document with its rendered notation. The Store
// interface supports:
//   - Get/GetByName/List lookups
//   - Put with automatic ID assignment and timestamps
//   - Delete by ID
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// CLI
//	st, err := store.NewFileStore("")  // Uses ~/.config/moltext/library/
//
//	// Server
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI: "mongodb://localhost:27017",
//	})
//
// Manage records:
//
//	rec := &store.Record{Name: "benzene", Document: doc, Notation: "c1ccccc1"}
//	if err := st.Put(ctx, rec); err != nil {
//	    return err
//	}
//	rec, err := st.GetByName(ctx, "benzene")
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	moltexterrors "github.com/moltext/moltext/pkg/errors"
)

// Record is one stored molecule library entry.
type Record struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Document  []byte    `json:"document" bson:"document"`
	Notation  string    `json:"notation" bson:"notation"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for molecule library backends.
type Store interface {
	// Get retrieves a record by ID.
	// Returns an error with code ErrCodeMoleculeNotFound if absent.
	Get(ctx context.Context, id string) (*Record, error)

	// GetByName retrieves a record by its molecule name.
	// Returns an error with code ErrCodeMoleculeNotFound if absent.
	GetByName(ctx context.Context, name string) (*Record, error)

	// List returns all records ordered by name.
	List(ctx context.Context) ([]*Record, error)

	// Put stores a record. An empty ID is assigned a fresh UUID and
	// CreatedAt is set; UpdatedAt is always refreshed.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a record by ID. Deleting an absent ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// notFound builds the standard missing-record error.
func notFound(key string) error {
	return moltexterrors.New(moltexterrors.ErrCodeMoleculeNotFound, "molecule not found: %s", key)
}

// stamp fills in identity and timestamps before a write.
func stamp(rec *Record) {
	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
		rec.CreatedAt = now
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
}

// MemoryStore is an in-memory store for development and testing.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, notFound(id)
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) GetByName(ctx context.Context, name string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.Name == name {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, notFound(name)
}

func (s *MemoryStore) List(ctx context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		cp := *rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) Put(ctx context.Context, rec *Record) error {
	if err := moltexterrors.ValidateMoleculeName(rec.Name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stamp(rec)
	cp := *rec
	s.records[rec.ID] = &cp
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
