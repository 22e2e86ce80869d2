package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"shrtr-be/internal/entities"
	"shrtr-be/internal/logger"
	"shrtr-be/internal/models"
	"shrtr-be/internal/notifier"
	"shrtr-be/internal/ratelimit"
	"shrtr-be/internal/repository"
)

// maxShortCodeAttempts bounds how often Create retries generation when the
// short code collides with an existing one
const maxShortCodeAttempts = 5

// LinkService defines the interface for link business logic
type LinkService interface {
	Create(ctx context.Context, userID string, req *models.CreateLinkRequest) (*models.LinkResponse, error)
	List(ctx context.Context, userID string) ([]*models.LinkResponse, error)
	Get(ctx context.Context, userID, id string) (*models.LinkResponse, error)
	Delete(ctx context.Context, userID, id string) error
	Metrics(ctx context.Context, userID, id string, from, to time.Time) ([]*models.LinkMetricResponse, error)
	Resolve(ctx context.Context, shortCode string, requestTime time.Time) (string, error)
}

type linkService struct {
	links      repository.LinkRepository
	users      repository.UserRepository
	limiter    ratelimit.Limiter
	events     notifier.Notifier
	baseURL    string
	codeLength int
}

// NewLinkService creates a new link service
func NewLinkService(links repository.LinkRepository, users repository.UserRepository,
	limiter ratelimit.Limiter, events notifier.Notifier, baseURL string, codeLength int) LinkService {
	return &linkService{
		links:      links,
		users:      users,
		limiter:    limiter,
		events:     events,
		baseURL:    baseURL,
		codeLength: codeLength,
	}
}

func (s *linkService) toResponse(link *entities.Link) *models.LinkResponse {
	return &models.LinkResponse{
		ID:          link.ID,
		ShortCode:   link.ShortCode,
		OriginalURL: link.OriginalURL,
		ShortURL:    fmt.Sprintf("%s/%s", s.baseURL, link.ShortCode),
		CreatedAt:   link.CreatedAt,
	}
}

// Create generates a short code and inserts the link, retrying with a fresh
// code when the insert hits the uniqueness constraint. Gives up with
// ErrShortCodeExhausted after maxShortCodeAttempts collisions.
func (s *linkService) Create(ctx context.Context, userID string, req *models.CreateLinkRequest) (*models.LinkResponse, error) {
	var link *entities.Link

	backoff := retry.WithMaxRetries(maxShortCodeAttempts-1, retry.NewConstant(time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		shortCode, err := generateShortCode(s.codeLength)
		if err != nil {
			return err
		}

		created, err := s.links.Create(ctx, shortCode, req.URL, userID)
		if errors.Is(err, repository.ErrDuplicateShortCode) {
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}

		link = created
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateShortCode) {
			return nil, ErrShortCodeExhausted
		}
		return nil, err
	}

	if err := s.events.LinkCreated(ctx, link); err != nil {
		logger.Warn().Err(err).Str("short_code", link.ShortCode).Msg("Failed to publish link.created event")
	}

	return s.toResponse(link), nil
}

// List retrieves all links owned by a user
func (s *linkService) List(ctx context.Context, userID string) ([]*models.LinkResponse, error) {
	links, err := s.links.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.LinkResponse, len(links))
	for i, link := range links {
		responses[i] = s.toResponse(link)
	}
	return responses, nil
}

// Get retrieves one link by id, enforcing ownership
func (s *linkService) Get(ctx context.Context, userID, id string) (*models.LinkResponse, error) {
	link, err := s.links.FindByOwnerAndID(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.toResponse(link), nil
}

// Delete removes a link and its metrics, enforcing ownership
func (s *linkService) Delete(ctx context.Context, userID, id string) error {
	link, err := s.links.FindByOwnerAndID(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := s.links.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.events.LinkDeleted(ctx, link); err != nil {
		logger.Warn().Err(err).Str("short_code", link.ShortCode).Msg("Failed to publish link.deleted event")
	}
	return nil
}

// Metrics retrieves the per-day visit counts of an owned link over [from, to] inclusive
func (s *linkService) Metrics(ctx context.Context, userID, id string, from, to time.Time) ([]*models.LinkMetricResponse, error) {
	link, err := s.links.FindByOwnerAndID(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	metrics, err := s.links.MetricsInRange(ctx, link.ID, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.LinkMetricResponse, len(metrics))
	for i, metric := range metrics {
		responses[i] = &models.LinkMetricResponse{
			Date:  metric.Date.Format("2006-01-02"),
			Count: metric.Count,
		}
	}
	return responses, nil
}

// Resolve looks up a short code, enforces the owner's rate limit, records the
// visit for today and publishes a redirect event, then returns the target URL.
// Rate limiting runs strictly before visit counting and notification, so a
// rejected request records no visit and emits no event. Visit counting and
// notification are best-effort: their failures are logged and never turn an
// otherwise successful redirect into a failure.
func (s *linkService) Resolve(ctx context.Context, shortCode string, requestTime time.Time) (string, error) {
	link, err := s.links.FindByShortCode(ctx, shortCode)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	owner, err := s.users.FindByID(ctx, link.OwnerID)
	if err != nil {
		return "", fmt.Errorf("failed to load link owner: %w", err)
	}

	policy := ratelimit.Policy{
		MaxRequests: owner.MaxRequests,
		WindowMs:    owner.MaxRequestsWindowMs,
	}
	decision, err := s.limiter.CheckAndRecord(ctx, link.ID, policy, requestTime)
	if err != nil {
		return "", fmt.Errorf("rate check failed: %w", err)
	}
	if decision == ratelimit.Reject {
		return "", ErrRateLimited
	}

	if err := s.links.RecordVisit(ctx, link.ID, requestTime); err != nil {
		logger.Warn().Err(err).Str("short_code", shortCode).Msg("Failed to record visit")
	}

	event := notifier.RedirectEvent{
		Timestamp:   time.Now(),
		LinkID:      link.ID,
		OriginalURL: link.OriginalURL,
		ShortCode:   link.ShortCode,
		OwnerEmail:  owner.Email,
		LatencyMs:   time.Since(requestTime).Milliseconds(),
	}
	if err := s.events.LinkRedirected(ctx, event); err != nil {
		logger.Warn().Err(err).Str("short_code", shortCode).Msg("Failed to publish link.redirected event")
	}

	return link.OriginalURL, nil
}
