package notify

import (
	"errors"
	"time"
)

// Notification types.
const (
	TypeDocumentReview     = "document_review"
	TypeNewApplication     = "new_application"
	TypeSubscriptionChange = "subscription_change"
	TypeCaseUpdate         = "case_update"
)

// Notification priorities.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Notification statuses.
const (
	StatusUnread   = "unread"
	StatusRead     = "read"
	StatusArchived = "archived"
)

// Notification is an in-app alert for the admin team. RelatedType/RelatedID
// point at the entity the alert concerns.
type Notification struct {
	ID          string
	Type        string
	Priority    string
	Title       string
	Body        string
	RelatedType string
	RelatedID   string
	Status      string
	ExpiresAt   *time.Time
	CreatedAt   time.Time
}

var (
	// ErrNotFound indicates an entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
