package casedocs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores case documents in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]CaseDocument
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]CaseDocument)}
}

// Create stores the document.
func (r *MemoryRepo) Create(ctx context.Context, doc CaseDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[doc.ID] = doc
	return nil
}

// GetByID returns a document by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, documentID string) (CaseDocument, error) {
	if err := ctx.Err(); err != nil {
		return CaseDocument{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.byID[documentID]
	if !ok {
		return CaseDocument{}, ErrNotFound
	}
	if doc.UserID != userID {
		return CaseDocument{}, ErrForbidden
	}
	return doc, nil
}

// ListByCase lists a user's documents for one case, newest first.
func (r *MemoryRepo) ListByCase(ctx context.Context, userID, caseID string) ([]CaseDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var out []CaseDocument
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

// Delete removes a document row.
func (r *MemoryRepo) Delete(ctx context.Context, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[documentID]; !ok {
		return ErrNotFound
	}
	delete(r.byID, documentID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
