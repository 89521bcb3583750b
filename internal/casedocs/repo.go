package casedocs

import "context"

// Repo defines persistence operations for case documents.
type Repo interface {
	Create(ctx context.Context, doc CaseDocument) error
	GetByID(ctx context.Context, userID, documentID string) (CaseDocument, error)
	ListByCase(ctx context.Context, userID, caseID string) ([]CaseDocument, error)
	// Delete removes the row. The blob is the service's responsibility.
	Delete(ctx context.Context, documentID string) error
}
