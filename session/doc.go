// Package session provides explicit, request-scoped session accessors.
//
// Handlers receive a [Store] (usually through middleware.SessionFromContext)
// and call Set, Exists and Get on it instead of touching shared global state.
//
// # Backends
//
//   - [Memory]: a mutex-guarded map, for tests and single-process tools.
//   - [RedisSession]: one Redis hash per session ID with sliding expiration,
//     obtained from [Redis.Session].
//   - [Cookie]: an adapter over a gorilla/sessions session (client-side state).
//
// [TokenManager] signs session IDs into HS256 JWTs so a Redis-backed session
// can be located from a tamper-proof cookie.
//
// # Architecture boundaries
//
// This package never creates or destroys the host's session storage; it only
// reads and writes keys inside a session the host has located.
//
// # What this package must NOT do
//
//   - Import goHelper or middleware (no upward imports).
//   - Keep a process-wide default session.
package session
