package goHelper

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/MrEthical07/goHelper/aescrypt"
	"github.com/MrEthical07/goHelper/debug"
	"github.com/MrEthical07/goHelper/ident"
	"github.com/MrEthical07/goHelper/layout"
	"github.com/MrEthical07/goHelper/logfile"
	"github.com/MrEthical07/goHelper/middleware"
	"github.com/MrEthical07/goHelper/session"
	"github.com/MrEthical07/goHelper/validate"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
)

// Helper is the wired set of helpers built from one Config.
type Helper struct {
	config  Config
	clock   clockwork.Clock
	exit    func(int)
	metrics *Metrics

	validator  *validate.Validator
	logger     *logfile.Logger
	slog       *slog.Logger
	cipher     aescrypt.Service
	codes      *ident.Generator
	composer   *layout.Composer
	redirector *layout.Redirector
	resolver   middleware.Resolver
}

func (h *Helper) Config() Config {
	return h.config
}

/* ==== VALIDATION ==== */

// Validator returns the clock-bound validator; the stateless checks are
// plain functions in package validate.
func (h *Helper) Validator() *validate.Validator {
	return h.validator
}

/* ==== LOGGING / DEBUG ==== */

func (h *Helper) Logger() *logfile.Logger {
	return h.logger
}

// Slog returns a structured logger writing into the same file as Logger.
func (h *Helper) Slog() *slog.Logger {
	return h.slog
}

// Log appends message at level (unknown levels become INFO).
func (h *Helper) Log(message, level string) error {
	return h.logger.Log(message, level)
}

// Dump writes v between <pre> tags to w. With stop set the process exits
// through the configured exit function.
func (h *Helper) Dump(w io.Writer, v any, stop bool) error {
	h.metrics.Inc(MetricDump)
	return debug.NewDumper(w, h.exit).Dump(v, stop)
}

/* ==== IDENTIFIERS ==== */

func (h *Helper) Codes() *ident.Generator {
	return h.codes
}

// ID returns a random identifier, a v4 UUID when versioned is set.
func (h *Helper) ID(versioned bool) (string, error) {
	id, err := ident.ID(versioned)
	if err == nil {
		h.metrics.Inc(MetricIDGenerated)
	}
	return id, err
}

func (h *Helper) Hash(n int) (string, error) {
	s, err := ident.Hash(n)
	if err == nil {
		h.metrics.Inc(MetricHashGenerated)
	}
	return s, err
}

// Code renders segments joined by ident.DefaultSeparator.
func (h *Helper) Code(segments []ident.Segment) (string, error) {
	return h.CodeWithSeparator(segments, ident.DefaultSeparator)
}

func (h *Helper) CodeWithSeparator(segments []ident.Segment, sep string) (string, error) {
	code, err := h.codes.CodeWithSeparator(segments, sep)
	if err != nil {
		h.metrics.Inc(MetricCodeFailure)
		return "", err
	}
	h.metrics.Inc(MetricCodeGenerated)
	return code, nil
}

/* ==== ENCRYPTION ==== */

// Cipher returns the configured service (CBC, GCM or no-op).
func (h *Helper) Cipher() aescrypt.Service {
	return h.cipher
}

func (h *Helper) Encrypt(plaintext string) (string, error) {
	out, err := h.cipher.Encrypt(plaintext)
	if err != nil {
		h.metrics.Inc(MetricEncryptFailure)
		return "", err
	}
	h.metrics.Inc(MetricEncrypt)
	return out, nil
}

// EncryptInt encrypts the base-10 form of v.
func (h *Helper) EncryptInt(v int64) (string, error) {
	return h.Encrypt(strconv.FormatInt(v, 10))
}

func (h *Helper) Decrypt(ciphertext string) (string, error) {
	out, err := h.cipher.Decrypt(ciphertext)
	if err != nil {
		h.metrics.Inc(MetricDecryptFailure)
		return "", err
	}
	h.metrics.Inc(MetricDecrypt)
	return out, nil
}

/* ==== LAYOUT / REDIRECT ==== */

func (h *Helper) Layout() *layout.Composer {
	return h.composer
}

// Compose renders fragments from dir (the configured views dir when empty)
// with data as the template context.
func (h *Helper) Compose(w io.Writer, fragments []string, dir string, data any) error {
	start := time.Now()
	err := h.composer.Compose(w, fragments, dir, data)
	h.metrics.Observe(MetricLayoutLatency, time.Since(start))
	if err != nil {
		h.metrics.Inc(MetricLayoutFailure)
	}
	return err
}

func (h *Helper) Redirector() *layout.Redirector {
	return h.redirector
}

// Redirect replies 302 to <BaseURL>?a=<route>, or <BaseURL>/admin?a=<route>.
func (h *Helper) Redirect(w http.ResponseWriter, r *http.Request, route string, admin bool) {
	h.redirector.Redirect(w, r, route, admin)
}

func (h *Helper) RedirectEcho(c echo.Context, route string, admin bool) error {
	return h.redirector.RedirectEcho(c, route, admin)
}

/* ==== SESSIONS ==== */

// Sessions returns the resolver for the configured backend. Every store it
// yields counts its writes in Metrics.
func (h *Helper) Sessions() (middleware.Resolver, error) {
	if h.resolver == nil {
		return nil, ErrSessionsDisabled
	}
	return middleware.ResolverFunc(func(w http.ResponseWriter, r *http.Request) (session.Store, error) {
		s, err := h.resolver.Resolve(w, r)
		if err != nil {
			return nil, err
		}
		return &countingStore{Store: s, metrics: h.metrics}, nil
	}), nil
}

// SessionMiddleware is middleware.Session over Sessions. With sessions
// disabled every request gets 503.
func (h *Helper) SessionMiddleware() func(http.Handler) http.Handler {
	resolver, err := h.Sessions()
	if err != nil {
		return middleware.Session(nil)
	}
	return middleware.Session(resolver)
}

func (h *Helper) EchoSessionMiddleware() echo.MiddlewareFunc {
	resolver, err := h.Sessions()
	if err != nil {
		return middleware.EchoSession(nil)
	}
	return middleware.EchoSession(resolver)
}

/* ==== METRICS ==== */

func (h *Helper) Metrics() *Metrics {
	return h.metrics
}

// MetricsSnapshot lets Helper serve as an exporter source.
func (h *Helper) MetricsSnapshot() MetricsSnapshot {
	return h.metrics.Snapshot()
}

type countingStore struct {
	session.Store
	metrics *Metrics
}

func (c *countingStore) Set(ctx context.Context, key string, value any) error {
	if err := c.Store.Set(ctx, key, value); err != nil {
		c.metrics.Inc(MetricSessionWriteFailure)
		return err
	}
	c.metrics.Inc(MetricSessionWrite)
	return nil
}

// Save forwards to cookie-backed stores so middleware still persists them.
func (c *countingStore) Save(r *http.Request, w http.ResponseWriter) error {
	if s, ok := c.Store.(interface {
		Save(*http.Request, http.ResponseWriter) error
	}); ok {
		return s.Save(r, w)
	}
	return nil
}
