package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/allisson/orders/internal/errors"
	notificationDomain "github.com/allisson/orders/internal/notification/domain"
)

const (
	notificationKeyPrefix = "notification:"
	orderIndexKeyPrefix   = "notifications:order:"
)

// RedisNotificationRepository stores each notification as a JSON value and keeps a
// per-order set of notification ids. Both expire after ttl; a zero ttl keeps them forever.
type RedisNotificationRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisNotificationRepository creates a Redis-backed repository.
func NewRedisNotificationRepository(client redis.UniversalClient, ttl time.Duration) *RedisNotificationRepository {
	return &RedisNotificationRepository{client: client, ttl: ttl}
}

func notificationKey(id uuid.UUID) string {
	return notificationKeyPrefix + id.String()
}

func orderIndexKey(orderID string) string {
	return orderIndexKeyPrefix + orderID
}

// Save writes the notification and indexes it under its order in one pipeline.
func (r *RedisNotificationRepository) Save(
	ctx context.Context,
	notification *notificationDomain.Notification,
) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode notification")
	}

	indexKey := orderIndexKey(notification.OrderID)

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, notificationKey(notification.ID), payload, r.ttl)
	pipe.SAdd(ctx, indexKey, notification.ID.String())
	if r.ttl > 0 {
		pipe.Expire(ctx, indexKey, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.Wrap(err, "failed to save notification")
	}
	return nil
}

// FindByID loads a notification.
func (r *RedisNotificationRepository) FindByID(
	ctx context.Context,
	id uuid.UUID,
) (*notificationDomain.Notification, error) {
	payload, err := r.client.Get(ctx, notificationKey(id)).Bytes()
	if err != nil {
		if apperrors.Is(err, redis.Nil) {
			return nil, notificationDomain.ErrNotificationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get notification")
	}

	var notification notificationDomain.Notification
	if err := json.Unmarshal(payload, &notification); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode notification")
	}
	return &notification, nil
}

// FindByOrderID returns the notifications of an order, oldest first. Ids whose value
// already expired are skipped.
func (r *RedisNotificationRepository) FindByOrderID(
	ctx context.Context,
	orderID string,
) ([]*notificationDomain.Notification, error) {
	ids, err := r.client.SMembers(ctx, orderIndexKey(orderID)).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list notification ids")
	}
	if len(ids) == 0 {
		return []*notificationDomain.Notification{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, notificationKeyPrefix+id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load notifications")
	}

	result := make([]*notificationDomain.Notification, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var notification notificationDomain.Notification
		if err := json.Unmarshal([]byte(raw), &notification); err != nil {
			return nil, apperrors.Wrapf(err, "failed to decode notification %s", ids[i])
		}
		result = append(result, &notification)
	}

	sortByCreatedAt(result)
	return result, nil
}
