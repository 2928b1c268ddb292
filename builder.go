package goHelper

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/MrEthical07/goHelper/aescrypt"
	"github.com/MrEthical07/goHelper/ident"
	"github.com/MrEthical07/goHelper/layout"
	"github.com/MrEthical07/goHelper/logfile"
	"github.com/MrEthical07/goHelper/middleware"
	"github.com/MrEthical07/goHelper/session"
	"github.com/MrEthical07/goHelper/validate"
	"github.com/gorilla/sessions"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
)

// Builder assembles a Helper. A Builder is single-use.
type Builder struct {
	config      Config
	redis       redis.UniversalClient
	clock       clockwork.Clock
	exit        func(int)
	cookieStore sessions.Store

	built bool
}

// New returns a Builder holding DefaultConfig.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis sets the client used by the redis session backend. Without it,
// Session.RedisURL is dialled.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithClock replaces the wall clock for log timestamps, code dates, age
// checks and session tokens.
func (b *Builder) WithClock(clock clockwork.Clock) *Builder {
	b.clock = clock
	return b
}

// WithExit replaces os.Exit for Helper.Dump with stop set.
func (b *Builder) WithExit(exit func(int)) *Builder {
	b.exit = exit
	return b
}

// WithCookieStore replaces the gorilla CookieStore built from Session.Secret
// for the cookie backend.
func (b *Builder) WithCookieStore(store sessions.Store) *Builder {
	b.cookieStore = store
	return b
}

func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and wires every helper.
func (b *Builder) Build() (*Helper, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clock := b.clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	metrics := NewMetrics(cfg.Metrics)

	logger := logfile.New(cfg.Log.Path,
		logfile.WithClock(clock),
		logfile.WithObserver(func(l logfile.Level) { metrics.Inc(logMetric(l)) }),
	)
	level, _ := cfg.slogLevel()

	cipher, err := newCipher(cfg.Crypto)
	if err != nil {
		return nil, err
	}

	composer := layout.NewComposer(
		layout.WithDir(cfg.Views.Dir),
		layout.WithExtension(cfg.Views.Extension),
		layout.WithObserver(func(int) { metrics.Inc(MetricLayoutRender) }),
	)

	redirector := layout.NewRedirector(cfg.App.BaseURL, func(admin bool) {
		if admin {
			metrics.Inc(MetricRedirectAdmin)
			return
		}
		metrics.Inc(MetricRedirect)
	})

	resolver, err := b.newResolver(cfg.Session, clock)
	if err != nil {
		return nil, err
	}

	b.built = true

	return &Helper{
		config:     cfg,
		clock:      clock,
		exit:       b.exit,
		metrics:    metrics,
		validator:  validate.New(clock),
		logger:     logger,
		slog:       slog.New(logfile.NewHandler(logger, level)),
		cipher:     cipher,
		codes:      ident.NewGenerator(clock),
		composer:   composer,
		redirector: redirector,
		resolver:   resolver,
	}, nil
}

func newCipher(cfg CryptoConfig) (aescrypt.Service, error) {
	switch cfg.Mode {
	case CryptoModeGCM:
		return aescrypt.NewGCM([]byte(cfg.Key))
	case CryptoModeNone:
		return aescrypt.NoopService{}, nil
	default:
		return aescrypt.NewCBC([]byte(cfg.Key), []byte(cfg.IV))
	}
}

func (b *Builder) newResolver(cfg SessionConfig, clock clockwork.Clock) (middleware.Resolver, error) {
	if cfg.Backend == SessionBackendNone {
		return nil, nil
	}

	if cfg.Backend == SessionBackendCookie {
		store := b.cookieStore
		if store == nil {
			cs := sessions.NewCookieStore([]byte(cfg.Secret))
			cs.Options = &sessions.Options{
				Path:     "/",
				MaxAge:   int(cfg.TTL.Seconds()),
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			}
			store = cs
		}
		return &middleware.CookieResolver{Store: store, Name: cfg.CookieName}, nil
	}

	tokens, err := session.NewTokenManager(session.TokenConfig{
		Secret: []byte(cfg.Secret),
		TTL:    cfg.TTL,
		Issuer: cfg.Issuer,
		Leeway: cfg.Leeway,
	}, clock)
	if err != nil {
		return nil, err
	}

	if cfg.Backend == SessionBackendMemory {
		return &middleware.MemoryResolver{Tokens: tokens, CookieName: cfg.CookieName, Secure: cfg.Secure}, nil
	}

	client := b.redis
	if client == nil && cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRedisRequired, err)
		}
		client = redis.NewClient(opts)
	}
	if client == nil {
		return nil, ErrRedisRequired
	}
	store, err := session.NewRedis(client, session.RedisConfig{
		Prefix:        cfg.Prefix,
		TTL:           cfg.TTL,
		JitterEnabled: cfg.JitterEnabled,
		JitterRange:   cfg.JitterRange,
	})
	if err != nil {
		return nil, err
	}
	return &middleware.RedisResolver{Sessions: store, Tokens: tokens, CookieName: cfg.CookieName, Secure: cfg.Secure}, nil
}

func logMetric(l logfile.Level) MetricID {
	switch l {
	case logfile.LevelDebug:
		return MetricLogDebug
	case logfile.LevelWarning:
		return MetricLogWarning
	case logfile.LevelError:
		return MetricLogError
	default:
		return MetricLogInfo
	}
}
