package cases

import (
	"context"
	"time"
)

// Repo defines persistence operations for cases.
type Repo interface {
	Create(ctx context.Context, c Case) error
	GetByID(ctx context.Context, userID, caseID string) (Case, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Case, error)
	// ListDeadlinesDue returns cases whose deadline is set and falls on or
	// before the given instant. Used by the reminder sweep.
	ListDeadlinesDue(ctx context.Context, by time.Time) ([]Case, error)
}
