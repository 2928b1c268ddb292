package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
)

func TestMemorySetExistsGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	ok, err := s.Exists(ctx, "user")
	if err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}
	if _, err := s.Get(ctx, "user"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	if err := s.Set(ctx, "user", "u-1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, _ = s.Exists(ctx, "user")
	if !ok {
		t.Fatalf("expected key to exist")
	}
	v, err := s.Get(ctx, "user")
	if err != nil || v != "u-1" {
		t.Fatalf("get: %v %v", v, err)
	}

	if err := s.Set(ctx, "user", nil); err != nil {
		t.Fatalf("set nil: %v", err)
	}
	ok, _ = s.Exists(ctx, "user")
	if ok {
		t.Fatalf("nil value must not count as existing")
	}

	_ = s.Delete(ctx, "user")
	if _, err := s.Get(ctx, "user"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestGetString(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	_ = s.Set(ctx, "name", "ana")
	_ = s.Set(ctx, "count", 3)

	v, ok, err := GetString(ctx, s, "name")
	if err != nil || !ok || v != "ana" {
		t.Fatalf("unexpected %q %v %v", v, ok, err)
	}
	_, ok, err = GetString(ctx, s, "count")
	if err != nil || ok {
		t.Fatalf("non-string value must report ok=false")
	}
	if _, _, err := GetString(ctx, s, "missing"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestCookieRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!!"))
	store.Options = &sessions.Options{Path: "/", HttpOnly: true}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, err := LoadCookie(store, req, "helper")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !c.IsNew() {
		t.Fatalf("expected a new session")
	}
	if err := c.Set(ctx, "user", "u-7"); err != nil {
		t.Fatalf("set: %v", err)
	}
	rec := httptest.NewRecorder()
	if err := c.Save(req, rec); err != nil {
		t.Fatalf("save: %v", err)
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range rec.Result().Cookies() {
		next.AddCookie(ck)
	}
	loaded, err := LoadCookie(store, next, "helper")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	ok, _ := loaded.Exists(ctx, "user")
	if !ok {
		t.Fatalf("expected persisted key")
	}
	v, err := loaded.Get(ctx, "user")
	if err != nil || v != "u-7" {
		t.Fatalf("unexpected value %v err=%v", v, err)
	}
	if _, err := loaded.Get(ctx, "other"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestCookieSetRejectsUnencodableValue(t *testing.T) {
	ctx := context.Background()
	store := sessions.NewCookieStore([]byte("cookie-hash-key-0123456789abcdef"))
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	c, err := LoadCookie(store, req, "s")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	err = c.Set(ctx, "user", struct{ A int }{1})
	if !errors.Is(err, ErrEncode) {
		t.Fatalf("expected ErrEncode for unregistered type, got %v", err)
	}
	if ok, _ := c.Exists(ctx, "user"); ok {
		t.Fatalf("rejected value must not be stored")
	}

	if err := c.Set(ctx, "name", "alice"); err != nil {
		t.Fatalf("set: %v", err)
	}
	rec := httptest.NewRecorder()
	if err := c.Save(req, rec); err != nil {
		t.Fatalf("save after rejected set: %v", err)
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Fatalf("expected session cookie to be written")
	}
}

func TestStoreImplementations(t *testing.T) {
	var _ Store = (*Memory)(nil)
	var _ Store = (*RedisSession)(nil)
	var _ Store = (*Cookie)(nil)
}
