package documents

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo, used when no database
// is configured (dev bootstrap fallback) and in handler tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	order  []string
	docs   map[string]Document
	fields map[string][]ExtractedField
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		docs:   make(map[string]Document),
		fields: make(map[string][]ExtractedField),
	}
}

// Insert stores a new document, preserving insertion order for List.
func (r *MemoryRepo) Insert(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.docs[doc.ID]; !exists {
		r.order = append(r.order, doc.ID)
	}
	r.docs[doc.ID] = doc
	return nil
}

// List returns all documents in insertion order.
func (r *MemoryRepo) List(ctx context.Context) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Document, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.docs[id])
	}
	return out, nil
}

// GetByID returns one document or ErrNotFound.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// FieldsByDocument returns the field rows for a document, possibly empty.
func (r *MemoryRepo) FieldsByDocument(ctx context.Context, id string) ([]ExtractedField, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fields := r.fields[id]
	out := make([]ExtractedField, len(fields))
	copy(out, fields)
	return out, nil
}

// SaveFields appends field rows for a document. No-op on empty input.
func (r *MemoryRepo) SaveFields(ctx context.Context, id string, fields []ExtractedField) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields[id] = append(r.fields[id], fields...)
	return nil
}

// UpdateStatus mutates status, type and confidence on an existing document.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, id, status string, documentType *string, confidence *float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return ErrNotFound
	}
	doc.Status = status
	doc.DocumentType = documentType
	doc.Confidence = confidence
	r.docs[id] = doc
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
