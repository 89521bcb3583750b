package gendocs

import (
	"time"

	"tradecase-backend/internal/render"
	"tradecase-backend/internal/strategy"
)

// GeneratedDocument is a stored document produced by the strategy pipeline,
// carrying its review state alongside the blob references.
type GeneratedDocument struct {
	ID         string
	CaseID     string
	UserID     string
	Kind       render.DocumentKind
	Content    strategy.GeneratedContent
	PDFKey     string
	DocxKey    string
	Status     Status
	ReviewedBy *string
	ReviewedAt *time.Time
	SentTo     *string
	SentAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
