package gendocs

import "context"

// Repo defines persistence operations for generated documents. Ownership is
// enforced in the service so that admin reviewers can reach every document.
type Repo interface {
	Create(ctx context.Context, doc GeneratedDocument) error
	GetByID(ctx context.Context, documentID string) (GeneratedDocument, error)
	// Update persists the mutable fields: content, status and the review /
	// delivery stamps. Last write wins.
	Update(ctx context.Context, doc GeneratedDocument) error
	ListByCase(ctx context.Context, userID, caseID string) ([]GeneratedDocument, error)
	// ListPending returns documents awaiting review or delivery (draft or
	// reviewed), newest first.
	ListPending(ctx context.Context, limit, offset int) ([]GeneratedDocument, error)
}
