package notify

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

const notificationColumns = `id, type, priority, title, body, related_type, related_id, status, expires_at, created_at`

// Create inserts a notification.
func (r *PGRepo) Create(ctx context.Context, n Notification) error {
	const query = `
INSERT INTO notifications (
    id, type, priority, title, body, related_type, related_id, status, expires_at, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.ExecContext(ctx, query,
		n.ID,
		n.Type,
		n.Priority,
		n.Title,
		n.Body,
		n.RelatedType,
		n.RelatedID,
		n.Status,
		n.ExpiresAt,
		n.CreatedAt,
	)
	return err
}

// GetByID returns a notification by ID.
func (r *PGRepo) GetByID(ctx context.Context, notificationID string) (Notification, error) {
	const query = `
SELECT ` + notificationColumns + `
FROM notifications
WHERE id = $1
LIMIT 1`
	n, err := scanNotification(r.DB.QueryRowContext(ctx, query, notificationID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Notification{}, ErrNotFound
		}
		return Notification{}, err
	}
	return n, nil
}

// List returns notifications newest-first, optionally filtered by status.
func (r *PGRepo) List(ctx context.Context, status string, limit, offset int) ([]Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var (
		rows *sql.Rows
		err  error
	)
	if status == "" {
		const query = `
SELECT ` + notificationColumns + `
FROM notifications
WHERE status <> 'archived'
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
		rows, err = r.DB.QueryContext(ctx, query, limit, offset)
	} else {
		const query = `
SELECT ` + notificationColumns + `
FROM notifications
WHERE status = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
		rows, err = r.DB.QueryContext(ctx, query, status, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// UpdateStatus sets the status of a notification.
func (r *PGRepo) UpdateStatus(ctx context.Context, notificationID, status string) error {
	const query = `UPDATE notifications SET status = $2 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, notificationID, status)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a notification.
func (r *PGRepo) Delete(ctx context.Context, notificationID string) error {
	const query = `DELETE FROM notifications WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, notificationID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// LatestForRelated returns the newest notification of a type for an entity.
func (r *PGRepo) LatestForRelated(ctx context.Context, relatedType, relatedID, notificationType string) (Notification, error) {
	const query = `
SELECT ` + notificationColumns + `
FROM notifications
WHERE related_type = $1 AND related_id = $2 AND type = $3
ORDER BY created_at DESC
LIMIT 1`
	n, err := scanNotification(r.DB.QueryRowContext(ctx, query, relatedType, relatedID, notificationType))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Notification{}, ErrNotFound
		}
		return Notification{}, err
	}
	return n, nil
}

// PurgeExpired deletes rows whose expiry has passed.
func (r *PGRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM notifications WHERE expires_at IS NOT NULL AND expires_at <= $1`
	res, err := r.DB.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotification(row rowScanner) (Notification, error) {
	var n Notification
	err := row.Scan(
		&n.ID,
		&n.Type,
		&n.Priority,
		&n.Title,
		&n.Body,
		&n.RelatedType,
		&n.RelatedID,
		&n.Status,
		&n.ExpiresAt,
		&n.CreatedAt,
	)
	if err != nil {
		return Notification{}, err
	}
	return n, nil
}

var _ Repo = (*PGRepo)(nil)
