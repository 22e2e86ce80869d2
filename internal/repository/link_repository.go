package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shrtr-be/internal/entities"
)

// LinkRepository defines the interface for link database operations
type LinkRepository interface {
	Create(ctx context.Context, shortCode, originalURL, ownerID string) (*entities.Link, error)
	FindByShortCode(ctx context.Context, shortCode string) (*entities.Link, error)
	FindByOwnerAndID(ctx context.Context, ownerID, id string) (*entities.Link, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Link, error)
	Delete(ctx context.Context, ownerID, id string) error
	RecordVisit(ctx context.Context, linkID string, date time.Time) error
	MetricsInRange(ctx context.Context, linkID string, from, to time.Time) ([]*entities.LinkMetric, error)
}

type linkRepository struct {
	db *sql.DB
}

// NewLinkRepository creates a new link repository
func NewLinkRepository(db *sql.DB) LinkRepository {
	return &linkRepository{db: db}
}

const linkColumns = `id, short_code, original_url, owner_id, redirect_counter, rate_limit_window_start, created_at, updated_at`

func scanLink(row *sql.Row) (*entities.Link, error) {
	var link entities.Link
	err := row.Scan(
		&link.ID,
		&link.ShortCode,
		&link.OriginalURL,
		&link.OwnerID,
		&link.RedirectCounter,
		&link.RateLimitWindowStart,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// Create inserts a new link. Returns ErrDuplicateShortCode when the short
// code is already taken, so the caller can retry with a fresh one.
func (r *linkRepository) Create(ctx context.Context, shortCode, originalURL, ownerID string) (*entities.Link, error) {
	query := `
		INSERT INTO links (short_code, original_url, owner_id)
		VALUES ($1, $2, $3)
		RETURNING ` + linkColumns

	link, err := scanLink(r.db.QueryRowContext(ctx, query, shortCode, originalURL, ownerID))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateShortCode
		}
		return nil, fmt.Errorf("failed to create link: %w", err)
	}

	return link, nil
}

// FindByShortCode finds a link by its short code
func (r *linkRepository) FindByShortCode(ctx context.Context, shortCode string) (*entities.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE short_code = $1`

	link, err := scanLink(r.db.QueryRowContext(ctx, query, shortCode))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find link: %w", err)
	}

	return link, nil
}

// FindByOwnerAndID finds a link by id, but only if it belongs to the given owner
func (r *linkRepository) FindByOwnerAndID(ctx context.Context, ownerID, id string) (*entities.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE id = $1 AND owner_id = $2`

	link, err := scanLink(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find link: %w", err)
	}

	return link, nil
}

// ListByOwner retrieves all links owned by a user, newest first
func (r *linkRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	defer rows.Close()

	var links []*entities.Link
	for rows.Next() {
		var link entities.Link
		err := rows.Scan(
			&link.ID,
			&link.ShortCode,
			&link.OriginalURL,
			&link.OwnerID,
			&link.RedirectCounter,
			&link.RateLimitWindowStart,
			&link.CreatedAt,
			&link.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, &link)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating links: %w", err)
	}

	return links, nil
}

// Delete removes a link and its metrics in one transaction (only if the
// owner matches). Returns ErrNotFound when nothing was deleted.
func (r *linkRepository) Delete(ctx context.Context, ownerID, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM link_metrics
		WHERE link_id IN (SELECT id FROM links WHERE id = $1 AND owner_id = $2)
	`, id, ownerID); err != nil {
		return fmt.Errorf("failed to delete link metrics: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM links WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// RecordVisit increments the visit count of a link for the given calendar
// date, creating the row on the first visit of the day. The upsert makes the
// find-or-create-and-increment atomic under concurrent redirects.
func (r *linkRepository) RecordVisit(ctx context.Context, linkID string, date time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO link_metrics (link_id, date, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (link_id, date)
		DO UPDATE SET count = link_metrics.count + 1, updated_at = NOW()
	`, linkID, date.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

// MetricsInRange retrieves the per-day visit counts of a link whose date
// falls in [from, to] inclusive, ordered by date ascending
func (r *linkRepository) MetricsInRange(ctx context.Context, linkID string, from, to time.Time) ([]*entities.LinkMetric, error) {
	query := `
		SELECT id, link_id, date, count, created_at, updated_at
		FROM link_metrics
		WHERE link_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, linkID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to get link metrics: %w", err)
	}
	defer rows.Close()

	var metrics []*entities.LinkMetric
	for rows.Next() {
		var metric entities.LinkMetric
		err := rows.Scan(
			&metric.ID,
			&metric.LinkID,
			&metric.Date,
			&metric.Count,
			&metric.CreatedAt,
			&metric.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link metric: %w", err)
		}
		metrics = append(metrics, &metric)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating link metrics: %w", err)
	}

	return metrics, nil
}
