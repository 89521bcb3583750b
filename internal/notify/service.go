package notify

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"tradecase-backend/internal/shared/telemetry"
)

// Service contains business logic for in-app notifications.
type Service struct {
	Repo Repo
}

// Create records a notification. ID, status and creation time are filled in
// when absent.
func (s *Service) Create(ctx context.Context, n Notification) (Notification, error) {
	if strings.TrimSpace(n.Type) == "" || strings.TrimSpace(n.Title) == "" {
		return Notification{}, ErrInvalidInput
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Priority == "" {
		n.Priority = PriorityLow
	}
	if n.Status == "" {
		n.Status = StatusUnread
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return Notification{}, err
	}
	return n, nil
}

// DocumentReview records a review alert for a freshly generated document.
// Failures are logged, not propagated; a missing alert must not fail the
// generation pipeline.
func (s *Service) DocumentReview(ctx context.Context, documentID, caseID, clientName string) {
	title := "Document ready for review"
	body := "A generated document is awaiting review"
	if clientName != "" {
		body += " for " + clientName
	}
	body += "."

	_, err := s.Create(ctx, Notification{
		Type:        TypeDocumentReview,
		Priority:    PriorityHigh,
		Title:       title,
		Body:        body,
		RelatedType: "document",
		RelatedID:   documentID,
	})
	if err != nil {
		telemetry.Error("notify.document_review.failed", map[string]any{
			"documentId": documentID,
			"caseId":     caseID,
			"error":      err.Error(),
		})
	}
}

// List returns notifications newest-first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string, limit, offset int) ([]Notification, error) {
	if status != "" && status != StatusUnread && status != StatusRead && status != StatusArchived {
		return nil, ErrInvalidInput
	}
	return s.Repo.List(ctx, status, limit, offset)
}

// MarkRead marks a notification as read.
func (s *Service) MarkRead(ctx context.Context, notificationID string) error {
	if notificationID == "" {
		return ErrInvalidInput
	}
	return s.Repo.UpdateStatus(ctx, notificationID, StatusRead)
}

// Archive archives a notification.
func (s *Service) Archive(ctx context.Context, notificationID string) error {
	if notificationID == "" {
		return ErrInvalidInput
	}
	return s.Repo.UpdateStatus(ctx, notificationID, StatusArchived)
}

// Delete removes a notification.
func (s *Service) Delete(ctx context.Context, notificationID string) error {
	if notificationID == "" {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, notificationID)
}

// PurgeExpired deletes notifications whose expiry has passed.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.Repo.PurgeExpired(ctx, time.Now().UTC())
}
