package casedocs

import (
	"context"
	"strings"
	"testing"
	"time"

	"tradecase-backend/internal/cases"
	localstore "tradecase-backend/internal/shared/storage/object/local"
)

func newEvidenceService(t *testing.T) (*Service, *cases.MemoryRepo) {
	t.Helper()
	caseRepo := cases.NewMemoryRepo()
	svc := &Service{
		Repo:  NewMemoryRepo(),
		Cases: caseRepo,
		Store: localstore.New(t.TempDir()),
	}
	return svc, caseRepo
}

func seedEvidenceCase(t *testing.T, repo *cases.MemoryRepo) cases.Case {
	t.Helper()
	c := cases.Case{
		ID:         "case-1",
		UserID:     "user-1",
		ClientName: "Dana Smith",
		Title:      "Unpaid final invoice",
		IssueType:  "payment_dispute",
		CreatedAt:  time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), c); err != nil {
		t.Fatalf("seed case: %v", err)
	}
	return c
}

func TestUploadExtractsPlainText(t *testing.T) {
	svc, caseRepo := newEvidenceService(t)
	c := seedEvidenceCase(t, caseRepo)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, c.UserID, c.ID, "quote.txt", strings.NewReader("Quoted $15,000 for the bathroom renovation."))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if doc.ExtractedTextKey == nil {
		t.Fatalf("expected extracted text key for a plain-text upload")
	}
	if doc.SizeBytes == 0 {
		t.Fatalf("expected recorded size")
	}

	combined, err := svc.CombinedText(ctx, c.UserID, c.ID)
	if err != nil {
		t.Fatalf("CombinedText: %v", err)
	}
	if !strings.Contains(combined, "quote.txt") {
		t.Fatalf("combined text missing file name header: %q", combined)
	}
	if !strings.Contains(combined, "bathroom renovation") {
		t.Fatalf("combined text missing extracted body: %q", combined)
	}
}

func TestUploadRejectsForeignCase(t *testing.T) {
	svc, caseRepo := newEvidenceService(t)
	c := seedEvidenceCase(t, caseRepo)

	_, err := svc.Upload(context.Background(), "user-2", c.ID, "quote.txt", strings.NewReader("x"))
	if err != ErrForbidden {
		t.Fatalf("Upload error = %v, want ErrForbidden", err)
	}
}

func TestDeleteRemovesRowAndBlobs(t *testing.T) {
	svc, caseRepo := newEvidenceService(t)
	c := seedEvidenceCase(t, caseRepo)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, c.UserID, c.ID, "quote.txt", strings.NewReader("Quoted $15,000."))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := svc.Delete(ctx, c.UserID, doc.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, _, err := svc.Open(ctx, c.UserID, doc.ID); err != ErrNotFound {
		t.Fatalf("Open after delete: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Store.Open(ctx, doc.StorageKey); err == nil {
		t.Fatalf("expected stored blob removed after delete")
	}
}

func TestCombinedTextSkipsFilesWithoutExtraction(t *testing.T) {
	svc, caseRepo := newEvidenceService(t)
	c := seedEvidenceCase(t, caseRepo)
	ctx := context.Background()

	// PNG magic bytes: stored fine, but nothing to extract.
	if _, err := svc.Upload(ctx, c.UserID, c.ID, "photo.png", strings.NewReader("\x89PNG\r\n\x1a\nrest")); err != nil {
		t.Fatalf("Upload png: %v", err)
	}
	if _, err := svc.Upload(ctx, c.UserID, c.ID, "notes.txt", strings.NewReader("Site notes from 12 March.")); err != nil {
		t.Fatalf("Upload txt: %v", err)
	}

	combined, err := svc.CombinedText(ctx, c.UserID, c.ID)
	if err != nil {
		t.Fatalf("CombinedText: %v", err)
	}
	if strings.Contains(combined, "photo.png") {
		t.Fatalf("combined text should skip the image: %q", combined)
	}
	if !strings.Contains(combined, "Site notes from 12 March.") {
		t.Fatalf("combined text missing notes: %q", combined)
	}
}
