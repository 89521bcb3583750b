package cases

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"tradecase-backend/internal/intake"
)

// CreateInput carries the fields needed to open a case.
type CreateInput struct {
	ClientName   string
	ClientEmail  string
	Title        string
	IssueType    string
	DeadlineDate *time.Time
}

// Service contains business logic for cases.
type Service struct {
	Repo Repo
}

// Create opens a case for the user.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Case, error) {
	if userID == "" || strings.TrimSpace(in.Title) == "" {
		return Case{}, ErrInvalidInput
	}
	clientName := strings.TrimSpace(in.ClientName)
	if clientName == "" {
		return Case{}, ErrInvalidInput
	}

	c := Case{
		ID:           uuid.NewString(),
		UserID:       userID,
		ClientName:   clientName,
		ClientEmail:  strings.TrimSpace(in.ClientEmail),
		Title:        strings.TrimSpace(in.Title),
		IssueType:    string(intake.NormalizeIssueType(in.IssueType)),
		DeadlineDate: in.DeadlineDate,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, c); err != nil {
		return Case{}, err
	}
	return c, nil
}

// Get returns a case by ID for a user.
func (s *Service) Get(ctx context.Context, userID, caseID string) (Case, error) {
	if userID == "" || caseID == "" {
		return Case{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, caseID)
}

// List returns cases for a user ordered newest-first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Case, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}
