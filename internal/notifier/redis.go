package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shrtr-be/internal/entities"
)

type redisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier creates a notifier that publishes events over Redis pub/sub
func NewRedisNotifier(redisURL string) (Notifier, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// If URL parsing fails, try as simple host:port
		opt = &redis.Options{
			Addr:     redisURL,
			Password: "",
			DB:       0,
		}
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisNotifier{client: client}, nil
}

func (n *redisNotifier) publish(ctx context.Context, channel string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := n.client.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", channel, err)
	}
	return nil
}

func (n *redisNotifier) LinkCreated(ctx context.Context, link *entities.Link) error {
	return n.publish(ctx, "link.created", link)
}

func (n *redisNotifier) LinkDeleted(ctx context.Context, link *entities.Link) error {
	return n.publish(ctx, "link.deleted", link)
}

func (n *redisNotifier) LinkRedirected(ctx context.Context, event RedirectEvent) error {
	return n.publish(ctx, "link.redirected", event)
}

func (n *redisNotifier) UserRegistered(ctx context.Context, user *entities.User) error {
	return n.publish(ctx, "user.registered", user)
}
