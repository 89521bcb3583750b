package cases

import (
	"context"
	"testing"
	"time"
)

func TestCreateNormalizesInput(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	created, err := svc.Create(context.Background(), "user-1", CreateInput{
		ClientName:  "  Dana Smith  ",
		ClientEmail: " dana@example.com ",
		Title:       " Unpaid final invoice ",
		IssueType:   " Payment_Dispute ",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}
	if created.ClientName != "Dana Smith" || created.Title != "Unpaid final invoice" {
		t.Fatalf("fields not trimmed: %+v", created)
	}
	if created.ClientEmail != "dana@example.com" {
		t.Fatalf("email not trimmed: %q", created.ClientEmail)
	}
	if created.IssueType != "payment_dispute" {
		t.Fatalf("issue type = %q, want payment_dispute", created.IssueType)
	}

	other, err := svc.Create(context.Background(), "user-1", CreateInput{
		ClientName: "Dana Smith",
		Title:      "Mystery matter",
		IssueType:  "alien abduction",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if other.IssueType != "other" {
		t.Fatalf("unknown issue type = %q, want other", other.IssueType)
	}
}

func TestCreateRequiresNameAndTitle(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	cases := []CreateInput{
		{ClientName: "Dana", Title: "   "},
		{ClientName: "   ", Title: "Unpaid invoice"},
	}
	for _, in := range cases {
		if _, err := svc.Create(context.Background(), "user-1", in); err != ErrInvalidInput {
			t.Fatalf("Create(%+v) error = %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	created, err := svc.Create(context.Background(), "user-1", CreateInput{
		ClientName: "Dana Smith",
		Title:      "Unpaid final invoice",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(context.Background(), "user-1", created.ID); err != nil {
		t.Fatalf("Get as owner: %v", err)
	}
	if _, err := svc.Get(context.Background(), "user-2", created.ID); err != ErrForbidden {
		t.Fatalf("Get as stranger: err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Get(context.Background(), "user-1", "missing"); err != ErrNotFound {
		t.Fatalf("Get missing: err = %v, want ErrNotFound", err)
	}
}

func TestListDeadlinesDueOrdersSoonestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	deadlines := map[string]time.Time{
		"case-late":  now.Add(6 * 24 * time.Hour),
		"case-early": now.Add(24 * time.Hour),
		"case-far":   now.Add(30 * 24 * time.Hour),
	}
	for id, deadline := range deadlines {
		d := deadline
		err := repo.Create(context.Background(), Case{
			ID:           id,
			UserID:       "user-1",
			ClientName:   "Dana Smith",
			Title:        id,
			DeadlineDate: &d,
			CreatedAt:    now,
		})
		if err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}
	err := repo.Create(context.Background(), Case{
		ID: "case-open-ended", UserID: "user-1", ClientName: "Dana Smith", Title: "no deadline", CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed open-ended: %v", err)
	}

	due, err := repo.ListDeadlinesDue(context.Background(), now.Add(7*24*time.Hour))
	if err != nil {
		t.Fatalf("ListDeadlinesDue: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("due = %d cases, want 2", len(due))
	}
	if due[0].ID != "case-early" || due[1].ID != "case-late" {
		t.Fatalf("order = [%s %s], want soonest first", due[0].ID, due[1].ID)
	}
}
