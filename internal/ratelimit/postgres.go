package ratelimit

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Limiter decides whether a redirect on a link may proceed and records the
// admission. Implementations must serialize concurrent checks on the same
// link without blocking checks on other links.
type Limiter interface {
	CheckAndRecord(ctx context.Context, linkID string, policy Policy, now time.Time) (Decision, error)
}

type postgresLimiter struct {
	db *sql.DB
}

// NewPostgresLimiter creates a limiter backed by the links table. The
// check-and-increment runs in a single transaction holding a row lock on the
// link, so the state survives restarts and stays consistent under concurrent
// redirects.
func NewPostgresLimiter(db *sql.DB) Limiter {
	return &postgresLimiter{db: db}
}

func (l *postgresLimiter) CheckAndRecord(ctx context.Context, linkID string, policy Policy, now time.Time) (Decision, error) {
	if !policy.Enabled() {
		return Admit, nil
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return Reject, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the link row so concurrent redirects on the same link serialize on
	// this check-and-increment. Redirects on other links take other row locks.
	var state State
	err = tx.QueryRowContext(ctx, `
		SELECT redirect_counter, rate_limit_window_start
		FROM links
		WHERE id = $1
		FOR UPDATE
	`, linkID).Scan(&state.Counter, &state.WindowStart)
	if err == sql.ErrNoRows {
		return Reject, fmt.Errorf("link %s disappeared during rate check: %w", linkID, err)
	}
	if err != nil {
		return Reject, fmt.Errorf("failed to read rate-limit state: %w", err)
	}

	next, decision := Evaluate(state, policy, now)

	if decision == Admit {
		_, err = tx.ExecContext(ctx, `
			UPDATE links
			SET redirect_counter = $1, rate_limit_window_start = $2, updated_at = NOW()
			WHERE id = $3
		`, next.Counter, next.WindowStart, linkID)
		if err != nil {
			return Reject, fmt.Errorf("failed to persist rate-limit state: %w", err)
		}
	}

	// Commit also on reject to release the row lock
	if err := tx.Commit(); err != nil {
		return Reject, fmt.Errorf("failed to commit rate-limit state: %w", err)
	}

	return decision, nil
}
