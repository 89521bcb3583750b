package casedocs

import (
	"errors"
	"time"
)

// CaseDocument is an uploaded evidence file attached to a case.
type CaseDocument struct {
	ID               string
	CaseID           string
	UserID           string
	FileName         string
	MimeType         string
	SizeBytes        int64
	StorageKey       string
	ExtractedTextKey *string
	CreatedAt        time.Time
}

var (
	// ErrNotFound indicates an entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden indicates access is not allowed.
	ErrForbidden = errors.New("forbidden")

	// ErrTooLarge indicates the upload exceeds the size limit.
	ErrTooLarge = errors.New("file too large")
)
