package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tradecase-backend/internal/cases"
	"tradecase-backend/internal/shared/telemetry"
)

const (
	reminderHorizon     = 7 * 24 * time.Hour
	reminderSuppression = 24 * time.Hour
)

// Sweeper scans cases with upcoming deadlines and records reminder
// notifications. It is a one-shot pass intended to run on a schedule.
type Sweeper struct {
	Cases cases.Repo
	Svc   *Service
	Now   func() time.Time
}

// Sweep records one reminder per case with a deadline within the horizon.
// A case that already has a reminder newer than 24 hours is skipped. Returns
// the number of reminders created.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	now := s.now()
	due, err := s.Cases.ListDeadlinesDue(ctx, now.Add(reminderHorizon))
	if err != nil {
		return 0, fmt.Errorf("list deadlines: %w", err)
	}

	created := 0
	for _, c := range due {
		if c.DeadlineDate == nil {
			continue
		}
		priority := deadlinePriority(now, *c.DeadlineDate)
		if priority == "" {
			continue
		}

		latest, err := s.Svc.Repo.LatestForRelated(ctx, "case", c.ID, TypeCaseUpdate)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return created, err
		}
		if err == nil && now.Sub(latest.CreatedAt) < reminderSuppression {
			continue
		}

		expires := c.DeadlineDate.Add(24 * time.Hour)
		_, err = s.Svc.Create(ctx, Notification{
			Type:        TypeCaseUpdate,
			Priority:    priority,
			Title:       "Case deadline approaching",
			Body:        fmt.Sprintf("%q has a deadline on %s.", c.Title, c.DeadlineDate.Format("2 January 2006")),
			RelatedType: "case",
			RelatedID:   c.ID,
			ExpiresAt:   &expires,
			CreatedAt:   now,
		})
		if err != nil {
			return created, err
		}
		created++
	}

	telemetry.Info("notify.sweep.done", map[string]any{
		"casesDue": len(due),
		"created":  created,
	})
	return created, nil
}

// deadlinePriority maps time-to-deadline onto a reminder priority. Overdue
// deadlines stay critical; anything past the horizon gets none.
func deadlinePriority(now, deadline time.Time) string {
	remaining := deadline.Sub(now)
	switch {
	case remaining <= 24*time.Hour:
		return PriorityCritical
	case remaining <= 3*24*time.Hour:
		return PriorityHigh
	case remaining <= reminderHorizon:
		return PriorityMedium
	default:
		return ""
	}
}

func (s *Sweeper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
