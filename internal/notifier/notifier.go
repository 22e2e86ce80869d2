package notifier

import (
	"context"
	"time"

	"shrtr-be/internal/entities"
)

// RedirectEvent is the payload published once per successful redirect.
// Transient: never persisted, never retried, never deduplicated.
type RedirectEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	LinkID      string    `json:"link_id"`
	OriginalURL string    `json:"original_url"`
	ShortCode   string    `json:"short_code"`
	OwnerEmail  string    `json:"owner_email"`
	LatencyMs   int64     `json:"latency_ms"` // time from request receipt to event construction
}

// Notifier publishes entity lifecycle events on channels named
// "<entity>.<action>" (link.created, link.redirected, ...) carrying a JSON
// snapshot of the payload. Delivery is best-effort, at-most-once; a publish
// failure must never affect the operation that triggered it.
type Notifier interface {
	LinkCreated(ctx context.Context, link *entities.Link) error
	LinkDeleted(ctx context.Context, link *entities.Link) error
	LinkRedirected(ctx context.Context, event RedirectEvent) error
	UserRegistered(ctx context.Context, user *entities.User) error
}

type noopNotifier struct{}

// NewNoopNotifier creates a notifier that drops all events. Used when no
// Redis is configured so the rest of the service keeps working.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

func (noopNotifier) LinkCreated(context.Context, *entities.Link) error    { return nil }
func (noopNotifier) LinkDeleted(context.Context, *entities.Link) error    { return nil }
func (noopNotifier) LinkRedirected(context.Context, RedirectEvent) error  { return nil }
func (noopNotifier) UserRegistered(context.Context, *entities.User) error { return nil }
