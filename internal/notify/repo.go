package notify

import (
	"context"
	"time"
)

// Repo defines persistence operations for notifications.
type Repo interface {
	Create(ctx context.Context, n Notification) error
	GetByID(ctx context.Context, notificationID string) (Notification, error)
	// List returns notifications newest-first. An empty status lists all
	// non-archived rows.
	List(ctx context.Context, status string, limit, offset int) ([]Notification, error)
	UpdateStatus(ctx context.Context, notificationID, status string) error
	Delete(ctx context.Context, notificationID string) error
	// LatestForRelated returns the newest notification of the given type for
	// a related entity. Used for duplicate suppression.
	LatestForRelated(ctx context.Context, relatedType, relatedID, notificationType string) (Notification, error)
	// PurgeExpired deletes rows whose expiry has passed.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
