package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio/internal/models"
)

const (
	sessionKeyPrefix = "session:"
	flashKeySuffix   = ":flash"
	createdField     = "created_at"
)

// SessionRepository keeps each session as a Redis hash with a TTL. Flashes
// sit in a sibling list that shares the TTL.
type SessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

func sessionKey(id string) string { return sessionKeyPrefix + id }
func flashKey(id string) string   { return sessionKeyPrefix + id + flashKeySuffix }

func (r *SessionRepository) Create(ctx context.Context, id string, ttl time.Duration) error {
	key := sessionKey(id)
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, createdField, time.Now().UTC().Format(time.RFC3339Nano))
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

func (r *SessionRepository) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.rdb.Exists(ctx, sessionKey(id)).Result()
	return n == 1, err
}

func (r *SessionRepository) SetFlag(ctx context.Context, id, field string) error {
	return r.rdb.HSet(ctx, sessionKey(id), field, "1").Err()
}

// DeleteFlag removes field from the hash entirely.
func (r *SessionRepository) DeleteFlag(ctx context.Context, id, field string) error {
	return r.rdb.HDel(ctx, sessionKey(id), field).Err()
}

func (r *SessionRepository) HasFlag(ctx context.Context, id, field string) (bool, error) {
	return r.rdb.HExists(ctx, sessionKey(id), field).Result()
}

func (r *SessionRepository) PushFlash(ctx context.Context, id string, flash models.Flash, ttl time.Duration) error {
	payload, err := json.Marshal(flash)
	if err != nil {
		return err
	}
	key := flashKey(id)
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, payload)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

// PopFlashes drains the queue in insertion order.
func (r *SessionRepository) PopFlashes(ctx context.Context, id string) ([]models.Flash, error) {
	key := flashKey(id)
	var values *redis.StringSliceCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		values = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, err
	}

	raw := values.Val()
	flashes := make([]models.Flash, 0, len(raw))
	for _, item := range raw {
		var f models.Flash
		if err := json.Unmarshal([]byte(item), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, sessionKey(id), flashKey(id)).Err()
}
