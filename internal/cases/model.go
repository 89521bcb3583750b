package cases

import "time"

// Case is a client matter. Generated documents and uploaded evidence hang
// off a case; the owner is the authenticated user who opened it.
type Case struct {
	ID           string
	UserID       string
	ClientName   string
	ClientEmail  string
	Title        string
	IssueType    string
	DeadlineDate *time.Time
	CreatedAt    time.Time
}
