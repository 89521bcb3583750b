package casedocs

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a case document.
func (r *PGRepo) Create(ctx context.Context, doc CaseDocument) error {
	const query = `
INSERT INTO case_documents (
    id, case_id, user_id, file_name, mime_type, size_bytes, storage_key, extracted_text_key, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.CaseID,
		doc.UserID,
		doc.FileName,
		doc.MimeType,
		doc.SizeBytes,
		doc.StorageKey,
		doc.ExtractedTextKey,
		doc.CreatedAt,
	)
	return err
}

// GetByID returns a case document by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (CaseDocument, error) {
	const query = `
SELECT id, case_id, user_id, file_name, mime_type, size_bytes, storage_key, extracted_text_key, created_at
FROM case_documents
WHERE id = $1
LIMIT 1`
	var doc CaseDocument
	err := r.DB.QueryRowContext(ctx, query, documentID).Scan(
		&doc.ID,
		&doc.CaseID,
		&doc.UserID,
		&doc.FileName,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.StorageKey,
		&doc.ExtractedTextKey,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CaseDocument{}, ErrNotFound
		}
		return CaseDocument{}, err
	}
	if doc.UserID != userID {
		return CaseDocument{}, ErrForbidden
	}
	return doc, nil
}

// ListByCase lists a user's documents for one case, newest first.
func (r *PGRepo) ListByCase(ctx context.Context, userID, caseID string) ([]CaseDocument, error) {
	const query = `
SELECT id, case_id, user_id, file_name, mime_type, size_bytes, storage_key, extracted_text_key, created_at
FROM case_documents
WHERE user_id = $1 AND case_id = $2
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CaseDocument
	for rows.Next() {
		var doc CaseDocument
		if err := rows.Scan(
			&doc.ID,
			&doc.CaseID,
			&doc.UserID,
			&doc.FileName,
			&doc.MimeType,
			&doc.SizeBytes,
			&doc.StorageKey,
			&doc.ExtractedTextKey,
			&doc.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Delete removes a case document row.
func (r *PGRepo) Delete(ctx context.Context, documentID string) error {
	const query = `DELETE FROM case_documents WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, documentID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
