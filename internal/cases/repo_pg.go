package cases

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a case.
func (r *PGRepo) Create(ctx context.Context, c Case) error {
	const query = `
INSERT INTO cases (
    id, user_id, client_name, client_email, title, issue_type, deadline_date, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.UserID,
		c.ClientName,
		c.ClientEmail,
		c.Title,
		c.IssueType,
		c.DeadlineDate,
		c.CreatedAt,
	)
	return err
}

// GetByID returns a case by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, caseID string) (Case, error) {
	const query = `
SELECT id, user_id, client_name, client_email, title, issue_type, deadline_date, created_at
FROM cases
WHERE id = $1
LIMIT 1`
	var c Case
	err := r.DB.QueryRowContext(ctx, query, caseID).Scan(
		&c.ID,
		&c.UserID,
		&c.ClientName,
		&c.ClientEmail,
		&c.Title,
		&c.IssueType,
		&c.DeadlineDate,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Case{}, ErrNotFound
		}
		return Case{}, err
	}
	if c.UserID != userID {
		return Case{}, ErrForbidden
	}
	return c, nil
}

// ListByUser lists cases ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Case, error) {
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
SELECT id, user_id, client_name, client_email, title, issue_type, deadline_date, created_at
FROM cases
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Case
	for rows.Next() {
		var c Case
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.ClientName,
			&c.ClientEmail,
			&c.Title,
			&c.IssueType,
			&c.DeadlineDate,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListDeadlinesDue returns cases with a deadline on or before the given
// instant, soonest deadline first.
func (r *PGRepo) ListDeadlinesDue(ctx context.Context, by time.Time) ([]Case, error) {
	const query = `
SELECT id, user_id, client_name, client_email, title, issue_type, deadline_date, created_at
FROM cases
WHERE deadline_date IS NOT NULL AND deadline_date <= $1
ORDER BY deadline_date ASC`

	rows, err := r.DB.QueryContext(ctx, query, by)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Case
	for rows.Next() {
		var c Case
		if err := rows.Scan(
			&c.ID,
			&c.UserID,
			&c.ClientName,
			&c.ClientEmail,
			&c.Title,
			&c.IssueType,
			&c.DeadlineDate,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
