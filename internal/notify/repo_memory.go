package notify

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores notifications in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Notification
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Notification)}
}

// Create stores the notification.
func (r *MemoryRepo) Create(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[n.ID] = n
	return nil
}

// GetByID returns a notification by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, notificationID string) (Notification, error) {
	if err := ctx.Err(); err != nil {
		return Notification{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.byID[notificationID]
	if !ok {
		return Notification{}, ErrNotFound
	}
	return n, nil
}

// List returns notifications newest-first, optionally filtered by status.
func (r *MemoryRepo) List(ctx context.Context, status string, limit, offset int) ([]Notification, error) {
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
	var out []Notification
	for _, n := range r.byID {
		if status == "" {
			if n.Status != StatusArchived {
				out = append(out, n)
			}
		} else if n.Status == status {
			out = append(out, n)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return []Notification{}, nil
	}
	end := len(out)
	if offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// UpdateStatus sets the status of a notification.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, notificationID, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byID[notificationID]
	if !ok {
		return ErrNotFound
	}
	n.Status = status
	r.byID[notificationID] = n
	return nil
}

// Delete removes a notification.
func (r *MemoryRepo) Delete(ctx context.Context, notificationID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[notificationID]; !ok {
		return ErrNotFound
	}
	delete(r.byID, notificationID)
	return nil
}

// LatestForRelated returns the newest notification of a type for an entity.
func (r *MemoryRepo) LatestForRelated(ctx context.Context, relatedType, relatedID, notificationType string) (Notification, error) {
	if err := ctx.Err(); err != nil {
		return Notification{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		latest Notification
		found  bool
	)
	for _, n := range r.byID {
		if n.RelatedType != relatedType || n.RelatedID != relatedID || n.Type != notificationType {
			continue
		}
		if !found || n.CreatedAt.After(latest.CreatedAt) {
			latest = n
			found = true
		}
	}
	if !found {
		return Notification{}, ErrNotFound
	}
	return latest, nil
}

// PurgeExpired deletes rows whose expiry has passed.
func (r *MemoryRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var purged int64
	for id, n := range r.byID {
		if n.ExpiresAt != nil && !n.ExpiresAt.After(now) {
			delete(r.byID, id)
			purged++
		}
	}
	return purged, nil
}

var _ Repo = (*MemoryRepo)(nil)
