// Package middleware attaches a per-request [session.Store] to net/http and
// echo request pipelines.
//
// # Middleware
//
//   - [Session]: net/http middleware; the store is read back with [SessionFromContext].
//   - [EchoSession]: the same for echo, also exposed as c.Get([EchoContextKey]).
//
// # Resolvers
//
//   - [RedisResolver]: Redis hash sessions keyed by a signed JWT cookie (session.TokenManager).
//   - [MemoryResolver]: in-process session.Memory stores keyed the same way.
//   - [CookieResolver]: gorilla/sessions cookie sessions, saved before the response headers.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into session lookups. Storage,
// encoding and token verification all live in package session.
//
// # What this package must NOT do
//
//   - Read or write session values on behalf of handlers.
//   - Access Redis directly (session.Redis handles I/O).
//   - Reject requests for missing sessions; a new one is started instead.
package middleware
