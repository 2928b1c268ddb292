package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/MrEthical07/goHelper/session"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

// DefaultCookieName names the cookie carrying the session token or
// gorilla session.
const DefaultCookieName = "helper_session"

// EchoContextKey is the echo.Context key under which EchoSession stores the
// resolved session.Store.
const EchoContextKey = "session"

type sessionContextKey struct{}

// SessionFromContext returns the session attached by Session or EchoSession.
func SessionFromContext(ctx context.Context) (session.Store, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(session.Store)
	return s, ok
}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s session.Store) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// Resolver finds or creates the session for a request. It may set cookies
// on w; it must not write a body.
type Resolver interface {
	Resolve(w http.ResponseWriter, r *http.Request) (session.Store, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(w http.ResponseWriter, r *http.Request) (session.Store, error)

func (f ResolverFunc) Resolve(w http.ResponseWriter, r *http.Request) (session.Store, error) {
	return f(w, r)
}

// saver is implemented by stores whose state lives in the response (cookies).
type saver interface {
	Save(r *http.Request, w http.ResponseWriter) error
}

// Session resolves the request's session and attaches it to the request
// context. A resolver failure ends the request with 503.
func Session(resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if resolver == nil {
				http.Error(w, "session unavailable", http.StatusServiceUnavailable)
				return
			}

			s, err := resolver.Resolve(w, r)
			if err != nil {
				http.Error(w, "session unavailable", http.StatusServiceUnavailable)
				return
			}

			r = r.WithContext(WithSession(r.Context(), s))
			sv, ok := s.(saver)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			sw := &saveOnWrite{ResponseWriter: w, r: r, s: sv}
			next.ServeHTTP(sw, r)
			// Handlers that write nothing still get their cookie.
			sw.save()
		})
	}
}

// EchoSession is Session for echo. The store is reachable both through
// c.Get(EchoContextKey) and SessionFromContext(c.Request().Context()).
func EchoSession(resolver Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if resolver == nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session unavailable")
			}

			s, err := resolver.Resolve(c.Response().Writer, c.Request())
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session unavailable")
			}

			r := c.Request().WithContext(WithSession(c.Request().Context(), s))
			c.SetRequest(r)
			c.Set(EchoContextKey, s)
			if sv, ok := s.(saver); ok {
				c.Response().Before(func() {
					if err := sv.Save(r, c.Response().Writer); err != nil {
						slog.Error("session save failed", "path", r.URL.Path, "error", err)
					}
				})
			}
			return next(c)
		}
	}
}

/* ==== REDIS + SIGNED TOKEN ==== */

// RedisResolver keys Redis sessions by the ID carried in a signed cookie.
// A missing, expired or forged cookie starts a new session.
type RedisResolver struct {
	Sessions   *session.Redis
	Tokens     *session.TokenManager
	CookieName string
	Secure     bool
}

func (rr *RedisResolver) Resolve(w http.ResponseWriter, r *http.Request) (session.Store, error) {
	if rr.Sessions == nil || rr.Tokens == nil {
		return nil, errors.New("redis resolver is not configured")
	}

	sid, err := sessionID(w, r, rr.Tokens, rr.CookieName, rr.Secure)
	if err != nil {
		return nil, err
	}
	return rr.Sessions.Session(sid), nil
}

/* ==== IN-PROCESS ==== */

// MemoryResolver keeps one session.Memory per session ID, keyed the same way
// as RedisResolver. A session lives as long as the token that names it; expired
// entries are swept on later requests, and Forget drops one early.
type MemoryResolver struct {
	Tokens     *session.TokenManager
	CookieName string
	Secure     bool

	mu        sync.Mutex
	stores    map[string]memoryEntry
	nextSweep time.Time
}

type memoryEntry struct {
	store   *session.Memory
	expires time.Time
}

// memorySweepInterval bounds how often Resolve scans for expired sessions.
const memorySweepInterval = time.Minute

func (mr *MemoryResolver) Resolve(w http.ResponseWriter, r *http.Request) (session.Store, error) {
	if mr.Tokens == nil {
		return nil, errors.New("memory resolver is not configured")
	}

	sid, err := sessionID(w, r, mr.Tokens, mr.CookieName, mr.Secure)
	if err != nil {
		return nil, err
	}

	now := mr.Tokens.Now()

	mr.mu.Lock()
	defer mr.mu.Unlock()
	if mr.stores == nil {
		mr.stores = make(map[string]memoryEntry)
	}
	if !now.Before(mr.nextSweep) {
		mr.sweepLocked(now)
	}

	e, ok := mr.stores[sid]
	if !ok || !now.Before(e.expires) {
		e = memoryEntry{store: session.NewMemory(), expires: now.Add(mr.Tokens.TTL())}
		mr.stores[sid] = e
	}
	return e.store, nil
}

func (mr *MemoryResolver) sweepLocked(now time.Time) {
	for sid, e := range mr.stores {
		if !now.Before(e.expires) {
			delete(mr.stores, sid)
		}
	}
	interval := memorySweepInterval
	if ttl := mr.Tokens.TTL(); ttl < interval {
		interval = ttl
	}
	mr.nextSweep = now.Add(interval)
}

// Len returns the number of sessions held, expired ones included until the
// next sweep.
func (mr *MemoryResolver) Len() int {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	return len(mr.stores)
}

// Forget drops the session stored under sid.
func (mr *MemoryResolver) Forget(sid string) {
	mr.mu.Lock()
	delete(mr.stores, sid)
	mr.mu.Unlock()
}

// sessionID returns the ID carried by the request's signed cookie, or starts
// a new session and sets its cookie on w.
func sessionID(w http.ResponseWriter, r *http.Request, tokens *session.TokenManager, name string, secure bool) (string, error) {
	if name == "" {
		name = DefaultCookieName
	}
	if c, err := r.Cookie(name); err == nil {
		if sid, err := tokens.Parse(c.Value); err == nil {
			return sid, nil
		}
	}

	sid, err := session.NewID()
	if err != nil {
		return "", err
	}
	token, err := tokens.Issue(sid)
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(tokens.TTL() / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sid, nil
}

/* ==== GORILLA COOKIE ==== */

// CookieResolver loads cookie-backed sessions from a gorilla sessions.Store.
// An undecodable cookie is replaced by a fresh session.
type CookieResolver struct {
	Store sessions.Store
	Name  string
}

func (cr *CookieResolver) Resolve(_ http.ResponseWriter, r *http.Request) (session.Store, error) {
	if cr.Store == nil {
		return nil, errors.New("cookie resolver is not configured")
	}
	name := cr.Name
	if name == "" {
		name = DefaultCookieName
	}

	c, err := session.LoadCookie(cr.Store, r, name)
	if c == nil {
		return nil, err
	}
	return c, nil
}

// saveOnWrite persists cookie sessions right before the response headers go out.
type saveOnWrite struct {
	http.ResponseWriter
	r     *http.Request
	s     saver
	saved bool
}

func (w *saveOnWrite) save() {
	if w.saved {
		return
	}
	w.saved = true
	if err := w.s.Save(w.r, w.ResponseWriter); err != nil {
		slog.Error("session save failed", "path", w.r.URL.Path, "error", err)
	}
}

func (w *saveOnWrite) WriteHeader(code int) {
	w.save()
	w.ResponseWriter.WriteHeader(code)
}

func (w *saveOnWrite) Write(b []byte) (int, error) {
	w.save()
	return w.ResponseWriter.Write(b)
}

func (w *saveOnWrite) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
