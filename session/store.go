package session

import (
	"context"
	"errors"
	"sync"
)

// ErrKeyNotFound is returned by Get for a key that was never set. Callers are
// expected to check Exists first.
var ErrKeyNotFound = errors.New("session key not found")

// ErrRedisUnavailable wraps every Redis transport failure.
var ErrRedisUnavailable = errors.New("redis unavailable")

// ErrEncode is returned when a value cannot be serialised by the backend.
var ErrEncode = errors.New("session value encoding failed")

// Store is one session's key/value view.
type Store interface {
	Set(ctx context.Context, key string, value any) error
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) (any, error)
}

// Memory is an in-process Store. The zero value is not usable; call NewMemory.
type Memory struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewMemory returns an empty in-memory session.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]any)}
}

func (m *Memory) Set(_ context.Context, key string, value any) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

// Exists reports whether key was set. A key set to nil does not exist.
func (m *Memory) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	v, ok := m.values[key]
	m.mu.RUnlock()
	return ok && v != nil, nil
}

func (m *Memory) Get(_ context.Context, key string) (any, error) {
	m.mu.RLock()
	v, ok := m.values[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

// GetString reads key from s and asserts it to a string. A missing key yields
// ErrKeyNotFound; a value of another type yields ok=false.
func GetString(ctx context.Context, s Store, key string) (value string, ok bool, err error) {
	v, err := s.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	value, ok = v.(string)
	return value, ok, nil
}
