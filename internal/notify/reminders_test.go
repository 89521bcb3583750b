package notify

import (
	"context"
	"testing"
	"time"

	"tradecase-backend/internal/cases"
)

func sweepFixtures(t *testing.T) (*Sweeper, *MemoryRepo, *cases.MemoryRepo, time.Time) {
	t.Helper()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	caseRepo := cases.NewMemoryRepo()
	repo := NewMemoryRepo()
	sweeper := &Sweeper{
		Cases: caseRepo,
		Svc:   &Service{Repo: repo},
		Now:   func() time.Time { return now },
	}
	return sweeper, repo, caseRepo, now
}

func seedDeadlineCase(t *testing.T, repo *cases.MemoryRepo, id string, deadline time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), cases.Case{
		ID:           id,
		UserID:       "user-1",
		ClientName:   "Dana Smith",
		Title:        "Unpaid final invoice " + id,
		IssueType:    "payment_dispute",
		DeadlineDate: &deadline,
		CreatedAt:    deadline.Add(-30 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("seed case %s: %v", id, err)
	}
}

func TestSweepAssignsPriorityByProximity(t *testing.T) {
	sweeper, repo, caseRepo, now := sweepFixtures(t)
	ctx := context.Background()

	seedDeadlineCase(t, caseRepo, "case-overdue", now.Add(-12*time.Hour))
	seedDeadlineCase(t, caseRepo, "case-tomorrow", now.Add(20*time.Hour))
	seedDeadlineCase(t, caseRepo, "case-3d", now.Add(60*time.Hour))
	seedDeadlineCase(t, caseRepo, "case-6d", now.Add(6*24*time.Hour))
	seedDeadlineCase(t, caseRepo, "case-next-month", now.Add(30*24*time.Hour))

	created, err := sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if created != 4 {
		t.Fatalf("created = %d, want 4", created)
	}

	want := map[string]string{
		"case-overdue":  PriorityCritical,
		"case-tomorrow": PriorityCritical,
		"case-3d":       PriorityHigh,
		"case-6d":       PriorityMedium,
	}
	for caseID, priority := range want {
		n, err := repo.LatestForRelated(ctx, "case", caseID, TypeCaseUpdate)
		if err != nil {
			t.Fatalf("reminder for %s: %v", caseID, err)
		}
		if n.Priority != priority {
			t.Fatalf("priority for %s = %q, want %q", caseID, n.Priority, priority)
		}
		if n.ExpiresAt == nil {
			t.Fatalf("reminder for %s has no expiry", caseID)
		}
	}
	if _, err := repo.LatestForRelated(ctx, "case", "case-next-month", TypeCaseUpdate); err != ErrNotFound {
		t.Fatalf("expected no reminder beyond the horizon, got err %v", err)
	}
}

func TestSweepSuppressesRecentReminder(t *testing.T) {
	sweeper, repo, caseRepo, now := sweepFixtures(t)
	ctx := context.Background()

	seedDeadlineCase(t, caseRepo, "case-1", now.Add(48*time.Hour))

	created, err := sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("first Sweep: %v", err)
	}
	if created != 1 {
		t.Fatalf("first sweep created = %d, want 1", created)
	}

	// A second pass inside the suppression window creates nothing.
	created, err = sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("second Sweep: %v", err)
	}
	if created != 0 {
		t.Fatalf("second sweep created = %d, want 0", created)
	}

	// Once the last reminder is older than a day the sweep fires again.
	sweeper.Now = func() time.Time { return now.Add(25 * time.Hour) }
	created, err = sweeper.Sweep(ctx)
	if err != nil {
		t.Fatalf("third Sweep: %v", err)
	}
	if created != 1 {
		t.Fatalf("third sweep created = %d, want 1", created)
	}

	list, err := repo.List(ctx, "", 50, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("stored reminders = %d, want 2", len(list))
	}
}

func TestPurgeExpiredDropsStaleReminders(t *testing.T) {
	sweeper, repo, caseRepo, now := sweepFixtures(t)
	ctx := context.Background()

	seedDeadlineCase(t, caseRepo, "case-1", now.Add(12*time.Hour))
	if _, err := sweeper.Sweep(ctx); err != nil {
		t.Fatalf("Sweep: %v", err)
	}

	// Expiry is 24 hours after the deadline.
	purged, err := repo.PurgeExpired(ctx, now.Add(35*time.Hour))
	if err != nil {
		t.Fatalf("PurgeExpired before expiry: %v", err)
	}
	if purged != 0 {
		t.Fatalf("purged = %d, want 0", purged)
	}

	purged, err = repo.PurgeExpired(ctx, now.Add(37*time.Hour))
	if err != nil {
		t.Fatalf("PurgeExpired after expiry: %v", err)
	}
	if purged != 1 {
		t.Fatalf("purged = %d, want 1", purged)
	}
	if _, err := repo.LatestForRelated(ctx, "case", "case-1", TypeCaseUpdate); err != ErrNotFound {
		t.Fatalf("expected reminder gone after purge, got err %v", err)
	}
}
