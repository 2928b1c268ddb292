package session

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

const minSlidingTTL = time.Second

// jsonNull is how a nil value is stored; it reads back as a missing value
// for Exists, the same way an unset key does.
const jsonNull = "null"

// RedisConfig tunes key naming and expiration of Redis-backed sessions.
type RedisConfig struct {
	Prefix        string
	TTL           time.Duration
	JitterEnabled bool
	JitterRange   time.Duration
}

// Redis hands out Redis-backed sessions. Each session is one hash at
// "<prefix>:<sessionID>" whose fields are JSON-encoded values.
//
//	Performance: Set is 1 MULTI (HSET + PEXPIRE); Exists and Get are 1 HGET.
type Redis struct {
	redis  redis.UniversalClient
	config RedisConfig
}

// NewRedis creates a session factory backed by the given Redis client.
func NewRedis(client redis.UniversalClient, cfg RedisConfig) (*Redis, error) {
	if client == nil {
		return nil, errors.New("nil redis client")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "hs"
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("session TTL must be > 0")
	}
	if cfg.JitterRange < 0 || cfg.JitterRange > time.Duration((math.MaxInt64-1)/2) {
		return nil, errors.New("invalid session jitter range")
	}
	return &Redis{redis: client, config: cfg}, nil
}

// Session returns the Store for sessionID. No Redis command is issued until
// the store is used.
func (r *Redis) Session(sessionID string) *RedisSession {
	return &RedisSession{owner: r, id: sessionID, key: r.key(sessionID)}
}

// Destroy deletes every key of sessionID. Destroying a missing session is a no-op.
func (r *Redis) Destroy(ctx context.Context, sessionID string) error {
	if err := r.redis.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (r *Redis) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := r.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}

func (r *Redis) key(sessionID string) string {
	return r.config.Prefix + ":" + sessionID
}

func (r *Redis) nextTTL() (time.Duration, error) {
	ttl := r.config.TTL
	if r.config.JitterEnabled && r.config.JitterRange > 0 {
		jitter, err := randomJitter(r.config.JitterRange)
		if err != nil {
			return 0, err
		}
		ttl += jitter
	}
	if ttl < minSlidingTTL {
		ttl = minSlidingTTL
	}
	return ttl, nil
}

// RedisSession is the Store view of one Redis-backed session.
type RedisSession struct {
	owner *Redis
	id    string
	key   string
}

// ID returns the session ID.
func (s *RedisSession) ID() string {
	return s.id
}

// Set JSON-encodes value into the session and slides its expiration.
func (s *RedisSession) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	ttl, err := s.owner.nextTTL()
	if err != nil {
		return err
	}

	_, err = s.owner.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.key, key, data)
		pipe.PExpire(ctx, s.key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Exists reports whether key holds a non-nil value.
func (s *RedisSession) Exists(ctx context.Context, key string) (bool, error) {
	raw, err := s.owner.redis.HGet(ctx, s.key, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return raw != jsonNull, nil
}

// Get returns the decoded value for key. Values come back in their JSON form:
// numbers as float64, objects as map[string]any, arrays as []any.
func (s *RedisSession) Get(ctx context.Context, key string) (any, error) {
	raw, err := s.owner.redis.HGet(ctx, s.key, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return v, nil
}

// GetInto decodes the value for key into dst.
func (s *RedisSession) GetInto(ctx context.Context, key string, dst any) error {
	raw, err := s.owner.redis.HGet(ctx, s.key, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

// Delete removes key from the session.
func (s *RedisSession) Delete(ctx context.Context, key string) error {
	if err := s.owner.redis.HDel(ctx, s.key, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func randomJitter(jitterRange time.Duration) (time.Duration, error) {
	if jitterRange <= 0 {
		return 0, nil
	}

	max := jitterRange.Nanoseconds()
	if max > (math.MaxInt64-1)/2 {
		return 0, errors.New("jitter range too large")
	}
	span := max*2 + 1

	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return 0, err
	}

	return time.Duration(n.Int64() - max), nil
}
