package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisSessionTest(t *testing.T, cfg RedisConfig) (*Redis, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r, err := NewRedis(rdb, cfg)
	if err != nil {
		t.Fatalf("new redis: %v", err)
	}
	return r, mr, func() {
		rdb.Close()
		mr.Close()
	}
}

func TestRedisSessionSetExistsGet(t *testing.T) {
	r, mr, done := newRedisSessionTest(t, RedisConfig{Prefix: "hs", TTL: time.Hour})
	defer done()
	ctx := context.Background()
	s := r.Session("sid-1")

	ok, err := s.Exists(ctx, "user")
	if err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}
	if _, err := s.Get(ctx, "user"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	if err := s.Set(ctx, "user", map[string]any{"id": "u-1", "admin": true}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "visits", 3); err != nil {
		t.Fatalf("set: %v", err)
	}

	ok, err = s.Exists(ctx, "user")
	if err != nil || !ok {
		t.Fatalf("expected existing key, ok=%v err=%v", ok, err)
	}

	v, err := s.Get(ctx, "user")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	user, isMap := v.(map[string]any)
	if !isMap || user["id"] != "u-1" || user["admin"] != true {
		t.Fatalf("unexpected user value %#v", v)
	}

	visits, err := s.Get(ctx, "visits")
	if err != nil || visits != float64(3) {
		t.Fatalf("numbers decode as float64, got %#v err=%v", visits, err)
	}

	var n int
	if err := s.GetInto(ctx, "visits", &n); err != nil || n != 3 {
		t.Fatalf("GetInto: %d %v", n, err)
	}

	if !mr.Exists("hs:sid-1") {
		t.Fatalf("expected hash at hs:sid-1")
	}
}

func TestRedisSessionNilValueDoesNotExist(t *testing.T) {
	r, _, done := newRedisSessionTest(t, RedisConfig{TTL: time.Hour})
	defer done()
	ctx := context.Background()
	s := r.Session("sid-nil")

	if err := s.Set(ctx, "flash", nil); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, err := s.Exists(ctx, "flash")
	if err != nil || ok {
		t.Fatalf("nil value must not exist, ok=%v err=%v", ok, err)
	}
	v, err := s.Get(ctx, "flash")
	if err != nil || v != nil {
		t.Fatalf("expected nil value, got %#v err=%v", v, err)
	}
}

func TestRedisSessionSlidingTTL(t *testing.T) {
	r, mr, done := newRedisSessionTest(t, RedisConfig{Prefix: "hs", TTL: 30 * time.Minute})
	defer done()
	ctx := context.Background()
	s := r.Session("sid-ttl")

	if err := s.Set(ctx, "a", 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(20 * time.Minute)
	if err := s.Set(ctx, "b", 2); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("hs:sid-ttl"); ttl != 30*time.Minute {
		t.Fatalf("expected TTL reset to 30m, got %v", ttl)
	}

	mr.FastForward(31 * time.Minute)
	if ok, _ := s.Exists(ctx, "a"); ok {
		t.Fatalf("expected session to expire")
	}
}

func TestRedisSessionJitterStaysInRange(t *testing.T) {
	r, mr, done := newRedisSessionTest(t, RedisConfig{TTL: time.Hour, JitterEnabled: true, JitterRange: time.Minute})
	defer done()
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		s := r.Session("sid-j")
		if err := s.Set(ctx, "k", i); err != nil {
			t.Fatalf("set: %v", err)
		}
		ttl := mr.TTL("hs:sid-j")
		if ttl < 59*time.Minute || ttl > 61*time.Minute {
			t.Fatalf("ttl %v outside jitter range", ttl)
		}
	}
}

func TestRedisDestroyAndDelete(t *testing.T) {
	r, mr, done := newRedisSessionTest(t, RedisConfig{TTL: time.Hour})
	defer done()
	ctx := context.Background()
	s := r.Session("sid-d")

	_ = s.Set(ctx, "a", "x")
	_ = s.Set(ctx, "b", "y")
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, _ := s.Exists(ctx, "a"); ok {
		t.Fatalf("expected a removed")
	}
	if err := r.Destroy(ctx, "sid-d"); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if err := r.Destroy(ctx, "sid-d"); err != nil {
		t.Fatalf("second destroy: %v", err)
	}
	if mr.Exists("hs:sid-d") {
		t.Fatalf("expected session key removed")
	}
}

func TestRedisSessionEncodeAndUnavailableErrors(t *testing.T) {
	r, mr, done := newRedisSessionTest(t, RedisConfig{TTL: time.Hour})
	defer done()
	ctx := context.Background()
	s := r.Session("sid-e")

	if err := s.Set(ctx, "ch", make(chan int)); !errors.Is(err, ErrEncode) {
		t.Fatalf("expected ErrEncode, got %v", err)
	}

	mr.Close()
	if err := s.Set(ctx, "a", 1); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable on set, got %v", err)
	}
	if _, err := s.Get(ctx, "a"); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable on get, got %v", err)
	}
	if _, err := r.Ping(ctx); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable on ping, got %v", err)
	}
}

func TestNewRedisValidation(t *testing.T) {
	if _, err := NewRedis(nil, RedisConfig{TTL: time.Hour}); err == nil {
		t.Fatalf("expected error for nil client")
	}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer rdb.Close()
	if _, err := NewRedis(rdb, RedisConfig{}); err == nil {
		t.Fatalf("expected error for zero TTL")
	}
	if _, err := NewRedis(rdb, RedisConfig{TTL: time.Hour, JitterRange: -time.Second}); err == nil {
		t.Fatalf("expected error for negative jitter")
	}
}
