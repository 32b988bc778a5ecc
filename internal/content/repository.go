package content

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Repository defines persistence for one versioned content collection.
// Implementations keep every version ever written; "deletion" is only the
// isActive flag flipping to false.
type Repository interface {
	// GetActive returns the newest document with isActive=true, or ErrNotFound.
	GetActive(ctx context.Context) (Document, error)
	// GetByID returns a document by id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (Document, error)
	// Insert stores a new document, assigning id and timestamps.
	Insert(ctx context.Context, doc Document) (Document, error)
	// DeactivateAll unsets isActive on every document of the type.
	DeactivateAll(ctx context.Context) error
	// UpdateByID merges set into the document with the given id and bumps
	// updatedAt. Returns the updated document or ErrNotFound.
	UpdateByID(ctx context.Context, id string, set Document) (Document, error)
	// Count returns the total number of stored versions.
	Count(ctx context.Context) (int64, error)
}

// MemoryRepository is an in-memory Repository used by unit and handler tests.
// Documents are kept in insertion order so "newest active" is well defined
// even when two documents share a createdAt timestamp.
type MemoryRepository struct {
	mu   sync.RWMutex
	seq  int
	docs []Document
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) GetActive(ctx context.Context) (Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(r.docs) - 1; i >= 0; i-- {
		if active, _ := r.docs[i][FieldIsActive].(bool); active {
			return cloneDocument(r.docs[i]), nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.docs {
		if d[FieldID] == id {
			return cloneDocument(d), nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) Insert(ctx context.Context, doc Document) (Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	d := cloneDocument(doc)
	d[FieldID] = fmt.Sprintf("doc_%d", r.seq)
	now := time.Now().UTC()
	d[FieldCreatedAt] = now
	d[FieldUpdatedAt] = now
	r.docs = append(r.docs, d)
	return cloneDocument(d), nil
}

func (r *MemoryRepository) DeactivateAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		d[FieldIsActive] = false
	}
	return nil
}

func (r *MemoryRepository) UpdateByID(ctx context.Context, id string, set Document) (Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		if d[FieldID] == id {
			for k, v := range set {
				d[k] = v
			}
			d[FieldUpdatedAt] = time.Now().UTC()
			return cloneDocument(d), nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.docs)), nil
}

// cloneDocument shallow-copies a document so callers cannot mutate stored state.
func cloneDocument(d Document) Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
