package gendocs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores generated documents in memory and is safe for concurrent
// use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]GeneratedDocument
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]GeneratedDocument)}
}

// Create stores the document.
func (r *MemoryRepo) Create(ctx context.Context, doc GeneratedDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[doc.ID] = doc
	return nil
}

// GetByID returns a document by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, documentID string) (GeneratedDocument, error) {
	if err := ctx.Err(); err != nil {
		return GeneratedDocument{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.byID[documentID]
	if !ok {
		return GeneratedDocument{}, ErrNotFound
	}
	return doc, nil
}

// Update persists the mutable fields, last write wins.
func (r *MemoryRepo) Update(ctx context.Context, doc GeneratedDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[doc.ID]; !ok {
		return ErrNotFound
	}
	r.byID[doc.ID] = doc
	return nil
}

// ListByCase lists a user's documents for one case, newest first.
func (r *MemoryRepo) ListByCase(ctx context.Context, userID, caseID string) ([]GeneratedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var out []GeneratedDocument
	for _, doc := range r.byID {
		if doc.UserID == userID && doc.CaseID == caseID {
			out = append(out, doc)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ListPending lists draft and reviewed documents, newest first.
func (r *MemoryRepo) ListPending(ctx context.Context, limit, offset int) ([]GeneratedDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	var out []GeneratedDocument
	for _, doc := range r.byID {
		if doc.Status.Editable() {
			out = append(out, doc)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []GeneratedDocument{}, nil
	}
	end := len(out)
	if offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
