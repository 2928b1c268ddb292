package goHelper

import "errors"

var (
	// ErrBuilderUsed is returned when Build is called twice on one Builder.
	ErrBuilderUsed = errors.New("builder already used")
	// ErrRedisRequired is returned when the redis session backend is
	// configured without a client.
	ErrRedisRequired = errors.New("redis session backend requires a redis client")
	// ErrSessionsDisabled is returned by session accessors when no backend is configured.
	ErrSessionsDisabled = errors.New("sessions are disabled")
	// ErrConfigLoad wraps failures reading the config file or environment.
	ErrConfigLoad = errors.New("config load failed")
)
