package gendocs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"tradecase-backend/internal/cases"
	"tradecase-backend/internal/intake"
	"tradecase-backend/internal/notify"
	"tradecase-backend/internal/render"
	"tradecase-backend/internal/shared/auth"
	"tradecase-backend/internal/shared/storage/object"
	"tradecase-backend/internal/shared/telemetry"
	"tradecase-backend/internal/strategy"
)

const (
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// EvidenceReader supplies text extracted from a case's uploaded documents,
// embedded into the generation prompt.
type EvidenceReader interface {
	CombinedText(ctx context.Context, userID, caseID string) (string, error)
}

// Service runs the strategy-pack pipeline and the review workflow.
type Service struct {
	Repo          Repo
	Cases         cases.Repo
	Strategy      *strategy.Service
	Renderer      *render.Renderer
	Store         object.ObjectStore
	Mailer        notify.Mailer
	Notifications *notify.Service
	Evidence      EvidenceReader
}

// GenerateStrategy runs generate -> render -> persist for a case. The content
// step never fails; rendering or persistence failures propagate and leave no
// orphaned blobs behind.
func (s *Service) GenerateStrategy(ctx context.Context, userID, caseID, kindRaw string, in intake.CaseIntake) (GeneratedDocument, error) {
	if userID == "" || caseID == "" {
		return GeneratedDocument{}, ErrInvalidInput
	}
	if s.Repo == nil || s.Cases == nil || s.Strategy == nil || s.Renderer == nil || s.Store == nil {
		return GeneratedDocument{}, errors.New("missing dependencies")
	}

	kind, ok := render.NormalizeKind(kindRaw)
	if !ok {
		return GeneratedDocument{}, fmt.Errorf("%w: unknown document kind %q", ErrInvalidInput, kindRaw)
	}

	c, err := s.Cases.GetByID(ctx, userID, caseID)
	if err != nil {
		return GeneratedDocument{}, mapCaseError(err)
	}

	if strings.TrimSpace(in.ClientName) == "" {
		in.ClientName = c.ClientName
	}
	if strings.TrimSpace(in.CaseTitle) == "" {
		in.CaseTitle = c.Title
	}
	if strings.TrimSpace(string(in.IssueType)) == "" {
		in.IssueType = intake.NormalizeIssueType(c.IssueType)
	}
	if in.DeadlineDate == nil {
		in.DeadlineDate = c.DeadlineDate
	}
	if err := in.Validate(); err != nil {
		return GeneratedDocument{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if s.Evidence != nil {
		text, err := s.Evidence.CombinedText(ctx, userID, caseID)
		if err != nil {
			telemetry.Error("gendocs.evidence.unavailable", map[string]any{
				"caseId": caseID,
				"error":  err.Error(),
			})
		} else if text != "" {
			if in.SupportingText != "" {
				in.SupportingText += "\n\n"
			}
			in.SupportingText += text
		}
	}

	content := s.Strategy.Generate(ctx, in)

	out, err := s.Renderer.Render(content, kind)
	if err != nil {
		return GeneratedDocument{}, err
	}

	docID := uuid.NewString()
	pdfKey := blobKey(userID, caseID, docID, "pdf")
	docxKey := blobKey(userID, caseID, docID, "docx")

	if _, err := s.Store.SaveWithKey(ctx, pdfKey, mimePDF, bytes.NewReader(out.PDF)); err != nil {
		return GeneratedDocument{}, err
	}
	if _, err := s.Store.SaveWithKey(ctx, docxKey, mimeDocx, bytes.NewReader(out.Docx)); err != nil {
		s.cleanupBlobs(ctx, pdfKey)
		return GeneratedDocument{}, err
	}

	now := time.Now().UTC()
	doc := GeneratedDocument{
		ID:        docID,
		CaseID:    caseID,
		UserID:    userID,
		Kind:      kind,
		Content:   content,
		PDFKey:    pdfKey,
		DocxKey:   docxKey,
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		s.cleanupBlobs(ctx, pdfKey, docxKey)
		return GeneratedDocument{}, err
	}

	if s.Notifications != nil {
		s.Notifications.DocumentReview(ctx, docID, caseID, c.ClientName)
	}

	telemetry.Info("gendocs.pipeline.done", map[string]any{
		"documentId": docID,
		"caseId":     caseID,
		"kind":       string(kind),
		"fallback":   content.Fallback,
	})
	return doc, nil
}

// Get returns a document if the requester owns it or holds the admin role.
func (s *Service) Get(ctx context.Context, userID, role, documentID string) (GeneratedDocument, error) {
	if userID == "" || documentID == "" {
		return GeneratedDocument{}, ErrInvalidInput
	}
	doc, err := s.Repo.GetByID(ctx, documentID)
	if err != nil {
		return GeneratedDocument{}, err
	}
	if doc.UserID != userID && role != auth.RoleAdmin {
		telemetry.Error("gendocs.access.forbidden", map[string]any{
			"documentId": documentID,
			"userId":     userID,
		})
		return GeneratedDocument{}, ErrForbidden
	}
	return doc, nil
}

// Download opens the stored binary for a document in the requested format
// ("pdf" or "docx"; empty means pdf). Ownership rules match Get.
func (s *Service) Download(ctx context.Context, userID, role, documentID, format string) (io.ReadCloser, string, string, error) {
	doc, err := s.Get(ctx, userID, role, documentID)
	if err != nil {
		return nil, "", "", err
	}

	var (
		key         string
		contentType string
		ext         string
	)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "pdf":
		key, contentType, ext = doc.PDFKey, mimePDF, "pdf"
	case "docx":
		key, contentType, ext = doc.DocxKey, mimeDocx, "docx"
	default:
		return nil, "", "", fmt.Errorf("%w: unknown format %q", ErrInvalidInput, format)
	}
	if key == "" {
		return nil, "", "", ErrNotFound
	}

	reader, err := s.Store.Open(ctx, key)
	if err != nil {
		return nil, "", "", err
	}
	fileName := fmt.Sprintf("%s_%s.%s", string(doc.Kind), doc.ID[:8], ext)
	return reader, fileName, contentType, nil
}

// ListByCase lists a user's documents for one case.
func (s *Service) ListByCase(ctx context.Context, userID, caseID string) ([]GeneratedDocument, error) {
	if userID == "" || caseID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByCase(ctx, userID, caseID)
}

// ListPending lists documents awaiting review or delivery, newest first.
func (s *Service) ListPending(ctx context.Context, limit, offset int) ([]GeneratedDocument, error) {
	return s.Repo.ListPending(ctx, limit, offset)
}

// Edit replaces the document content wholesale and re-renders the stored
// binaries so downloads match. Allowed while the document is draft or
// reviewed; last write wins.
func (s *Service) Edit(ctx context.Context, documentID string, content strategy.GeneratedContent) (GeneratedDocument, error) {
	if documentID == "" {
		return GeneratedDocument{}, ErrInvalidInput
	}
	doc, err := s.Repo.GetByID(ctx, documentID)
	if err != nil {
		return GeneratedDocument{}, err
	}
	if !doc.Status.Editable() {
		return GeneratedDocument{}, fmt.Errorf("%w: cannot edit a %s document", ErrInvalidTransition, doc.Status)
	}
	if err := content.Validate(); err != nil {
		return GeneratedDocument{}, err
	}

	out, err := s.Renderer.Render(content, doc.Kind)
	if err != nil {
		return GeneratedDocument{}, err
	}
	if _, err := s.Store.SaveWithKey(ctx, doc.PDFKey, mimePDF, bytes.NewReader(out.PDF)); err != nil {
		return GeneratedDocument{}, err
	}
	if doc.DocxKey != "" {
		if _, err := s.Store.SaveWithKey(ctx, doc.DocxKey, mimeDocx, bytes.NewReader(out.Docx)); err != nil {
			return GeneratedDocument{}, err
		}
	}

	doc.Content = content
	doc.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, doc); err != nil {
		return GeneratedDocument{}, err
	}
	return doc, nil
}

// Review moves a draft document to reviewed, recording the reviewer.
func (s *Service) Review(ctx context.Context, reviewerID, documentID string) (GeneratedDocument, error) {
	if reviewerID == "" || documentID == "" {
		return GeneratedDocument{}, ErrInvalidInput
	}
	doc, err := s.Repo.GetByID(ctx, documentID)
	if err != nil {
		return GeneratedDocument{}, err
	}
	if !CanTransition(doc.Status, StatusReviewed) {
		return GeneratedDocument{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, doc.Status, StatusReviewed)
	}

	now := time.Now().UTC()
	doc.Status = StatusReviewed
	doc.ReviewedBy = &reviewerID
	doc.ReviewedAt = &now
	doc.UpdatedAt = now
	if err := s.Repo.Update(ctx, doc); err != nil {
		return GeneratedDocument{}, err
	}

	telemetry.Info("gendocs.reviewed", map[string]any{
		"documentId": documentID,
		"reviewedBy": reviewerID,
	})
	return doc, nil
}

// SendInput carries optional delivery overrides. Absent fields fall back to
// the case's client email and the standard composed subject and body.
type SendInput struct {
	Recipient string
	Subject   string
	Body      string
}

// Send emails the reviewed document to the client and marks it sent. The
// status only advances after the mailer reports success; a provider failure
// leaves the document reviewed.
func (s *Service) Send(ctx context.Context, documentID string, in SendInput) (GeneratedDocument, error) {
	if documentID == "" {
		return GeneratedDocument{}, ErrInvalidInput
	}
	if s.Mailer == nil {
		return GeneratedDocument{}, errors.New("missing dependencies")
	}

	doc, err := s.Repo.GetByID(ctx, documentID)
	if err != nil {
		return GeneratedDocument{}, err
	}
	if !CanTransition(doc.Status, StatusSent) {
		return GeneratedDocument{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, doc.Status, StatusSent)
	}

	c, err := s.Cases.GetByID(ctx, doc.UserID, doc.CaseID)
	if err != nil {
		return GeneratedDocument{}, mapCaseError(err)
	}

	recipient := strings.TrimSpace(in.Recipient)
	if recipient == "" {
		recipient = strings.TrimSpace(c.ClientEmail)
	}
	if recipient == "" {
		return GeneratedDocument{}, fmt.Errorf("%w: no recipient email on file", ErrInvalidInput)
	}

	msg, err := s.composeMessage(ctx, doc, c, recipient, in)
	if err != nil {
		return GeneratedDocument{}, err
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		telemetry.Error("gendocs.send.failed", map[string]any{
			"documentId": documentID,
			"error":      err.Error(),
		})
		return GeneratedDocument{}, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	now := time.Now().UTC()
	doc.Status = StatusSent
	doc.SentTo = &recipient
	doc.SentAt = &now
	doc.UpdatedAt = now
	if err := s.Repo.Update(ctx, doc); err != nil {
		// Delivered but not recorded; surface the error so the operator
		// retries the transition, not the send.
		telemetry.Error("gendocs.send.unrecorded", map[string]any{
			"documentId": documentID,
			"error":      err.Error(),
		})
		return GeneratedDocument{}, err
	}

	telemetry.Info("gendocs.sent", map[string]any{
		"documentId": documentID,
		"sentTo":     recipient,
	})
	return doc, nil
}

func (s *Service) composeMessage(ctx context.Context, doc GeneratedDocument, c cases.Case, recipient string, in SendInput) (notify.Message, error) {
	title := render.KindTitle(doc.Kind)

	pdfBytes, err := s.readBlob(ctx, doc.PDFKey)
	if err != nil {
		return notify.Message{}, err
	}
	attachments := []notify.Attachment{{
		FileName:    strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".pdf",
		ContentType: mimePDF,
		Data:        pdfBytes,
	}}
	if doc.DocxKey != "" {
		docxBytes, err := s.readBlob(ctx, doc.DocxKey)
		if err != nil {
			return notify.Message{}, err
		}
		attachments = append(attachments, notify.Attachment{
			FileName:    strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".docx",
			ContentType: mimeDocx,
			Data:        docxBytes,
		})
	}

	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		subject = "Your " + title + " is ready"
	}
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your %s for %q is attached. It has been reviewed by our team.</p><p>Reply to this email if anything looks off.</p>",
		htmlEscape(c.ClientName), htmlEscape(title), htmlEscape(c.Title),
	)
	if custom := strings.TrimSpace(in.Body); custom != "" {
		body = "<p>" + htmlEscape(custom) + "</p>"
	}
	return notify.Message{
		To:          recipient,
		ToName:      c.ClientName,
		Subject:     subject,
		HTMLBody:    body,
		Attachments: attachments,
	}, nil
}

func (s *Service) readBlob(ctx context.Context, key string) ([]byte, error) {
	reader, err := s.Store.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

func (s *Service) cleanupBlobs(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := s.Store.Delete(ctx, key); err != nil {
			telemetry.Error("gendocs.blob.cleanup_failed", map[string]any{
				"storageKey": key,
				"error":      err.Error(),
			})
		}
	}
}

func blobKey(userID, caseID, docID, ext string) string {
	return fmt.Sprintf("users/%s/cases/%s/generated/%s.%s", userID, caseID, docID, ext)
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

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}
