package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oggyb/muzz-match/internal/config"
)

const likeCountTTL = time.Hour

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.Client.Close()
}

// KeyForLikeCount generates Redis key for a user's like count
func (c *RedisCache) KeyForLikeCount(userID uint64) string {
	return fmt.Sprintf("likes:count:%d", userID)
}

func (c *RedisCache) UpdateLikeCount(ctx context.Context, userID uint64, count int64) error {
	// Always refresh TTL when updating
	return c.Client.Set(ctx, c.KeyForLikeCount(userID), count, likeCountTTL).Err()
}

// GetLikeCount returns the cached count and whether it was present.
func (c *RedisCache) GetLikeCount(ctx context.Context, userID uint64) (int64, bool, error) {
	key := c.KeyForLikeCount(userID)
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil // cache miss
	} else if err != nil {
		return 0, false, fmt.Errorf("get like count: %w", err)
	}
	// refresh TTL on access
	_ = c.Client.Expire(ctx, key, likeCountTTL).Err()
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse like count: %w", err)
	}
	return n, true, nil
}

// InvalidateLikeCount drops the cached count so the next read recomputes it.
func (c *RedisCache) InvalidateLikeCount(ctx context.Context, userID uint64) error {
	return c.Client.Del(ctx, c.KeyForLikeCount(userID)).Err()
}

//
// Presence
//

func keyOnline(userID uint64) string   { return fmt.Sprintf("presence:online:%d", userID) }
func keyLastSeen(userID uint64) string { return fmt.Sprintf("presence:last_seen:%d", userID) }
func keyTyping(convID string) string   { return "typing:" + convID }

// IncrOnline registers one more live session for the user and returns the
// number of live sessions afterwards.
func (c *RedisCache) IncrOnline(ctx context.Context, userID uint64) (int64, error) {
	n, err := c.Client.Incr(ctx, keyOnline(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("incr online: %w", err)
	}
	return n, nil
}

// DecrOnline removes one live session. When the last one goes away the
// counter is deleted and last_seen is stamped.
func (c *RedisCache) DecrOnline(ctx context.Context, userID uint64, at time.Time) (int64, error) {
	n, err := c.Client.Decr(ctx, keyOnline(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("decr online: %w", err)
	}
	if n > 0 {
		return n, nil
	}
	_, err = c.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, keyOnline(userID))
		p.Set(ctx, keyLastSeen(userID), at.UnixMilli(), 0)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("mark offline: %w", err)
	}
	return 0, nil
}

// OnlineCount returns how many live sessions the user has.
func (c *RedisCache) OnlineCount(ctx context.Context, userID uint64) (int64, error) {
	n, err := c.Client.Get(ctx, keyOnline(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get online: %w", err)
	}
	return n, nil
}

// LastSeen returns the last time the user went offline, zero if unknown.
func (c *RedisCache) LastSeen(ctx context.Context, userID uint64) (time.Time, error) {
	ms, err := c.Client.Get(ctx, keyLastSeen(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get last seen: %w", err)
	}
	return time.UnixMilli(ms).UTC(), nil
}

//
// Typing
//

// SetTyping records the typing flag for a user in a conversation. The hash TTL
// is refreshed on every write so abandoned entries expire.
func (c *RedisCache) SetTyping(ctx context.Context, convID string, userID uint64, typing bool, ttl time.Duration) error {
	key := keyTyping(convID)
	val := "0"
	if typing {
		val = "1"
	}
	_, err := c.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key, strconv.FormatUint(userID, 10), val)
		p.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("set typing: %w", err)
	}
	return nil
}

// ClearTyping removes the user's entry and reports whether one existed.
func (c *RedisCache) ClearTyping(ctx context.Context, convID string, userID uint64) (bool, error) {
	n, err := c.Client.HDel(ctx, keyTyping(convID), strconv.FormatUint(userID, 10)).Result()
	if err != nil {
		return false, fmt.Errorf("clear typing: %w", err)
	}
	return n > 0, nil
}

// Typing returns the users currently flagged as typing in a conversation.
func (c *RedisCache) Typing(ctx context.Context, convID string) ([]uint64, error) {
	all, err := c.Client.HGetAll(ctx, keyTyping(convID)).Result()
	if err != nil {
		return nil, fmt.Errorf("get typing: %w", err)
	}
	users := make([]uint64, 0, len(all))
	for field, val := range all {
		if val != "1" {
			continue
		}
		id, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			continue
		}
		users = append(users, id)
	}
	return users, nil
}
