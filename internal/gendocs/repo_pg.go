package gendocs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"tradecase-backend/internal/render"
	"tradecase-backend/internal/strategy"
)

// PGRepo implements Repo using Postgres. Content is stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, case_id, user_id, kind, content, pdf_key, docx_key, status, reviewed_by, reviewed_at, sent_to, sent_at, created_at, updated_at`

// Create inserts a generated document.
func (r *PGRepo) Create(ctx context.Context, doc GeneratedDocument) error {
	payload, err := json.Marshal(doc.Content)
	if err != nil {
		return err
	}
	const query = `
INSERT INTO generated_documents (
    id, case_id, user_id, kind, content, pdf_key, docx_key, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.CaseID,
		doc.UserID,
		string(doc.Kind),
		payload,
		doc.PDFKey,
		doc.DocxKey,
		string(doc.Status),
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

// GetByID returns a generated document by ID.
func (r *PGRepo) GetByID(ctx context.Context, documentID string) (GeneratedDocument, error) {
	const query = `
SELECT ` + documentColumns + `
FROM generated_documents
WHERE id = $1
LIMIT 1`
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GeneratedDocument{}, ErrNotFound
		}
		return GeneratedDocument{}, err
	}
	return doc, nil
}

// Update persists content, status and the review / delivery stamps.
func (r *PGRepo) Update(ctx context.Context, doc GeneratedDocument) error {
	payload, err := json.Marshal(doc.Content)
	if err != nil {
		return err
	}
	const query = `
UPDATE generated_documents
SET content = $2, status = $3, reviewed_by = $4, reviewed_at = $5, sent_to = $6, sent_at = $7, updated_at = $8
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		payload,
		string(doc.Status),
		doc.ReviewedBy,
		doc.ReviewedAt,
		doc.SentTo,
		doc.SentAt,
		doc.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByCase lists a user's documents for one case, newest first.
func (r *PGRepo) ListByCase(ctx context.Context, userID, caseID string) ([]GeneratedDocument, error) {
	const query = `
SELECT ` + documentColumns + `
FROM generated_documents
WHERE user_id = $1 AND case_id = $2
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// ListPending lists draft and reviewed documents, newest first.
func (r *PGRepo) ListPending(ctx context.Context, limit, offset int) ([]GeneratedDocument, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + documentColumns + `
FROM generated_documents
WHERE status IN ('draft', 'reviewed')
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocuments(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (GeneratedDocument, error) {
	var (
		doc     GeneratedDocument
		kind    string
		status  string
		payload []byte
	)
	err := row.Scan(
		&doc.ID,
		&doc.CaseID,
		&doc.UserID,
		&kind,
		&payload,
		&doc.PDFKey,
		&doc.DocxKey,
		&status,
		&doc.ReviewedBy,
		&doc.ReviewedAt,
		&doc.SentTo,
		&doc.SentAt,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return GeneratedDocument{}, err
	}
	doc.Kind = render.DocumentKind(kind)
	doc.Status = Status(status)
	var content strategy.GeneratedContent
	if err := json.Unmarshal(payload, &content); err != nil {
		return GeneratedDocument{}, err
	}
	doc.Content = content
	return doc, nil
}

func scanDocuments(rows *sql.Rows) ([]GeneratedDocument, error) {
	var out []GeneratedDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
