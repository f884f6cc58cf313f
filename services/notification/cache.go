package notification

import (
	"context"
	"errors"
	"strconv"
	"time"

	"stayfinder/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// UnreadCache holds per-user unread counts. Every write to a user's
// notifications bumps a version, and a fill only lands if the version it was
// read under is still current, so a count computed before a concurrent write
// never overwrites the result of that write.
type UnreadCache interface {
	// Lookup returns the cached count, or the current version when there is none.
	Lookup(ctx context.Context, userID string) (count int64, hit bool, version int64, err error)
	// Fill stores count unless the version moved since Lookup.
	Fill(ctx context.Context, userID string, count, version int64) error
	// Invalidate drops the count and bumps the version.
	Invalidate(ctx context.Context, userID string) error
	// Reset stores a known count and bumps the version.
	Reset(ctx context.Context, userID string, count int64) error
}

// errStaleFill reports a fill discarded because the version moved.
var errStaleFill = errors.New("unread count changed while it was being computed")

// RedisUnreadCache keeps the count under unread:<user> and its version under
// unread:<user>:v.
type RedisUnreadCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisUnreadCache(client *redis.Client) *RedisUnreadCache {
	return &RedisUnreadCache{client: client, ttl: utils.UnreadCacheTTL}
}

func unreadKey(userID string) string {
	return utils.UnreadCachePrefix + userID
}

func versionKey(userID string) string {
	return unreadKey(userID) + ":v"
}

// parseCounter reads a value returned by MGET. Missing keys come back as nil.
func parseCounter(v interface{}) (int64, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return n, err == nil
}

func (c *RedisUnreadCache) Lookup(ctx context.Context, userID string) (int64, bool, int64, error) {
	vals, err := c.client.MGet(ctx, unreadKey(userID), versionKey(userID)).Result()
	if err != nil {
		return 0, false, 0, err
	}
	version, _ := parseCounter(vals[1])
	if count, ok := parseCounter(vals[0]); ok {
		return count, true, version, nil
	}
	return 0, false, version, nil
}

func (c *RedisUnreadCache) Fill(ctx context.Context, userID string, count, version int64) error {
	key, vkey := unreadKey(userID), versionKey(userID)
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, count, c.ttl)
			return nil
		})
		return err
	}, vkey)
	if errors.Is(err, redis.TxFailedErr) {
		return errStaleFill
	}
	return err
}

func (c *RedisUnreadCache) Invalidate(ctx context.Context, userID string) error {
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		c.bump(ctx, p, userID)
		p.Del(ctx, unreadKey(userID))
		return nil
	})
	return err
}

func (c *RedisUnreadCache) Reset(ctx context.Context, userID string, count int64) error {
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		c.bump(ctx, p, userID)
		p.Set(ctx, unreadKey(userID), count, c.ttl)
		return nil
	})
	return err
}

// bump outlives the count so a fill never sees a version reset to zero.
func (c *RedisUnreadCache) bump(ctx context.Context, p redis.Pipeliner, userID string) {
	p.Incr(ctx, versionKey(userID))
	p.Expire(ctx, versionKey(userID), 24*time.Hour)
}

// lookupUnread reports whether the count was cached and, when it was not,
// whether a later fill may be attempted.
func (s *DefaultNotificationService) lookupUnread(ctx context.Context, userID string) (count int64, hit bool, version int64, fillable bool) {
	if s.cache == nil {
		return 0, false, 0, false
	}
	count, hit, version, err := s.cache.Lookup(ctx, userID)
	if err != nil {
		s.logger.Warn("unread cache read failed", zap.String("userID", userID), zap.Error(err))
		return 0, false, 0, false
	}
	return count, hit, version, true
}

func (s *DefaultNotificationService) fillUnread(ctx context.Context, userID string, count, version int64) {
	err := s.cache.Fill(ctx, userID, count, version)
	switch {
	case errors.Is(err, errStaleFill):
		s.logger.Debug("unread count changed during fill", zap.String("userID", userID))
	case err != nil:
		s.logger.Warn("unread cache write failed", zap.String("userID", userID), zap.Error(err))
	}
}

func (s *DefaultNotificationService) invalidateUnread(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("unread cache invalidation failed", zap.String("userID", userID), zap.Error(err))
	}
}

func (s *DefaultNotificationService) resetUnread(ctx context.Context, userID string, count int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Reset(ctx, userID, count); err != nil {
		s.logger.Warn("unread cache reset failed", zap.String("userID", userID), zap.Error(err))
	}
}
