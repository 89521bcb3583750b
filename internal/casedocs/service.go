package casedocs

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"tradecase-backend/internal/cases"
	"tradecase-backend/internal/extract"
	"tradecase-backend/internal/shared/storage/object"
	"tradecase-backend/internal/shared/telemetry"
)

// MaxUploadBytes caps evidence uploads.
const MaxUploadBytes = 10 << 20

// Combined-text assembly limits; anything past these is truncated before it
// reaches the generation prompt.
const (
	maxCombinedChars = 24000
	maxPerFileChars  = 8000
)

// Service contains business logic for evidence uploads.
type Service struct {
	Repo  Repo
	Cases cases.Repo
	Store object.ObjectStore
}

// Upload stores an evidence file against a case the user owns. Text
// extraction is best-effort: unsupported or unreadable files are stored
// without a derived text copy.
func (s *Service) Upload(ctx context.Context, userID, caseID, fileName string, r io.Reader) (CaseDocument, error) {
	if userID == "" || caseID == "" || strings.TrimSpace(fileName) == "" {
		return CaseDocument{}, ErrInvalidInput
	}

	if _, err := s.Cases.GetByID(ctx, userID, caseID); err != nil {
		return CaseDocument{}, mapCaseError(err)
	}

	limited := io.LimitReader(r, MaxUploadBytes+1)
	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, limited)
	if err != nil {
		return CaseDocument{}, err
	}
	if size > MaxUploadBytes {
		if err := s.Store.Delete(ctx, storageKey); err != nil {
			telemetry.Error("casedocs.oversize.cleanup_failed", map[string]any{
				"storageKey": storageKey,
				"error":      err.Error(),
			})
		}
		return CaseDocument{}, ErrTooLarge
	}

	doc := CaseDocument{
		ID:         uuid.NewString(),
		CaseID:     caseID,
		UserID:     userID,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}

	if _, extractedKey, err := extract.Text(ctx, s.Store, storageKey, mimeType, fileName); err != nil {
		if !errors.Is(err, extract.ErrUnsupported) {
			telemetry.Error("casedocs.extract.failed", map[string]any{
				"storageKey": storageKey,
				"error":      err.Error(),
			})
		}
	} else {
		doc.ExtractedTextKey = &extractedKey
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		s.deleteBlobs(ctx, doc)
		return CaseDocument{}, err
	}
	return doc, nil
}

// List returns a user's evidence for one case.
func (s *Service) List(ctx context.Context, userID, caseID string) ([]CaseDocument, error) {
	if userID == "" || caseID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByCase(ctx, userID, caseID)
}

// Open streams a stored evidence file for its owner.
func (s *Service) Open(ctx context.Context, userID, documentID string) (io.ReadCloser, CaseDocument, error) {
	if userID == "" || documentID == "" {
		return nil, CaseDocument{}, ErrInvalidInput
	}
	doc, err := s.Repo.GetByID(ctx, userID, documentID)
	if err != nil {
		return nil, CaseDocument{}, err
	}
	reader, err := s.Store.Open(ctx, doc.StorageKey)
	if err != nil {
		return nil, CaseDocument{}, err
	}
	return reader, doc, nil
}

// Delete removes an evidence file, its derived text and its row. This is the
// only hard delete in the system and is owner-scoped.
func (s *Service) Delete(ctx context.Context, userID, documentID string) error {
	if userID == "" || documentID == "" {
		return ErrInvalidInput
	}
	doc, err := s.Repo.GetByID(ctx, userID, documentID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, doc.ID); err != nil {
		return err
	}
	s.deleteBlobs(ctx, doc)
	return nil
}

// CombinedText assembles the extracted text of a case's evidence for the
// generation prompt, truncated per file and overall.
func (s *Service) CombinedText(ctx context.Context, userID, caseID string) (string, error) {
	docs, err := s.Repo.ListByCase(ctx, userID, caseID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, doc := range docs {
		if doc.ExtractedTextKey == nil {
			continue
		}
		if b.Len() >= maxCombinedChars {
			break
		}
		reader, err := s.Store.Open(ctx, *doc.ExtractedTextKey)
		if err != nil {
			telemetry.Error("casedocs.combined_text.open_failed", map[string]any{
				"storageKey": *doc.ExtractedTextKey,
				"error":      err.Error(),
			})
			continue
		}
		raw, err := io.ReadAll(io.LimitReader(reader, maxPerFileChars))
		reader.Close()
		if err != nil {
			continue
		}
		text := strings.TrimSpace(string(raw))
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("--- " + doc.FileName + " ---\n")
		b.WriteString(text)
	}

	out := b.String()
	if len(out) > maxCombinedChars {
		out = out[:maxCombinedChars]
	}
	return out, nil
}

func (s *Service) deleteBlobs(ctx context.Context, doc CaseDocument) {
	keys := []string{doc.StorageKey}
	if doc.ExtractedTextKey != nil {
		keys = append(keys, *doc.ExtractedTextKey)
	}
	for _, key := range keys {
		if err := s.Store.Delete(ctx, key); err != nil {
			telemetry.Error("casedocs.blob.delete_failed", map[string]any{
				"storageKey": key,
				"error":      err.Error(),
			})
		}
	}
}

func mapCaseError(err error) error {
	switch {
	case errors.Is(err, cases.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, cases.ErrForbidden):
		return ErrForbidden
	default:
		return err
	}
}
