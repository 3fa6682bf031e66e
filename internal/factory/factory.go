package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/folio/internal/dependencies/clock"
	"github.com/mcoot/folio/internal/dependencies/password"
	"github.com/mcoot/folio/internal/dependencies/random"
	"github.com/mcoot/folio/internal/services/auth"
	"github.com/mcoot/folio/internal/services/portfolio"
	"github.com/mcoot/folio/internal/services/profile"
	"github.com/mcoot/folio/internal/services/projects"
	"github.com/mcoot/folio/internal/services/uploads"
	"github.com/mcoot/folio/internal/storage"
	"github.com/mcoot/folio/internal/storage/memory"
	redisstorage "github.com/mcoot/folio/internal/storage/redis"
	"github.com/mcoot/folio/internal/storage/sqlstore"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeSQLite   = "sqlite"
	StorageTypePostgres = "postgres"
)

// Session store constants
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// DefaultSQLitePath is used when StorageType is sqlite and DatabaseURL is empty
const DefaultSQLitePath = "portfolio.db"

// App contains all wired application components
type App struct {
	// Storage
	Storage  storage.Storage
	Sessions storage.SessionStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Hasher password.Hasher

	// Services
	AuthService      *auth.Service
	ProfileService   *profile.Service
	ProjectsService  *projects.Service
	PortfolioService *portfolio.Service
	Uploads          *uploads.Gatekeeper

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the record store ("memory", "sqlite" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// DatabaseURL is the sqlite file path or postgres URL
	DatabaseURL string
	// SessionStore selects where sessions live ("memory" or "redis")
	// If empty, defaults to "memory"
	SessionStore string
	// RedisConfig holds Redis connection settings (required if SessionStore is "redis")
	RedisConfig *redisstorage.Config
	// UploadDir is where project images are written (required)
	UploadDir string
	// MaxUploadBytes caps image uploads. Zero uses uploads.DefaultMaxBytes
	MaxUploadBytes int64
	// BcryptCost overrides the bcrypt work factor. Zero uses bcrypt.DefaultCost
	BcryptCost int
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var closers []io.Closer
	fail := func(err error) (*App, error) {
		closeAll(closers)
		return nil, err
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Create record storage based on type
	var store storage.Storage
	var mem *memory.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		mem = memory.New()
		store = mem
	case StorageTypeSQLite, StorageTypePostgres:
		dsn := cfg.DatabaseURL
		if dsn == "" {
			if storageType == StorageTypePostgres {
				return nil, errors.New("DatabaseURL required when StorageType is postgres")
			}
			dsn = DefaultSQLitePath
		}
		sqlStore, err := sqlstore.Open(ctx, sqlstore.Config{Dialect: sqlstore.Dialect(storageType), DSN: dsn})
		if err != nil {
			return nil, err
		}
		store = sqlStore
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'sqlite' or 'postgres'", storageType)
	}
	closers = append(closers, store)

	// Create session storage
	var sessions storage.SessionStore
	sessionStore := cfg.SessionStore
	if sessionStore == "" {
		sessionStore = SessionStoreMemory
	}

	switch sessionStore {
	case SessionStoreMemory:
		if mem == nil {
			mem = memory.New()
		}
		sessions = mem
	case SessionStoreRedis:
		if cfg.RedisConfig == nil {
			return fail(errors.New("RedisConfig required when SessionStore is redis"))
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, clk)
		if err != nil {
			return fail(err)
		}
		sessions = redisStore
		closers = append(closers, redisStore)
	default:
		return fail(fmt.Errorf("invalid SessionStore %q: must be 'memory' or 'redis'", sessionStore))
	}

	gatekeeper, err := uploads.New(uploads.Config{Dir: cfg.UploadDir, MaxBytes: cfg.MaxUploadBytes}, rnd, logger)
	if err != nil {
		return fail(err)
	}

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	app := newWithDependencies(store, sessions, clk, rnd, password.New(cfg.BcryptCost), gatekeeper, authCfg, logger)
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	sessions storage.SessionStore,
	clk clock.Clock,
	rnd random.Random,
	hasher password.Hasher,
	gatekeeper *uploads.Gatekeeper,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	// Create services
	authService := auth.New(store, sessions, hasher, clk, rnd, authCfg, logger)
	profileService := profile.New(store, hasher, logger)
	projectsService := projects.New(store, clk, logger)
	portfolioService := portfolio.New(store, portfolio.NewPDFRenderer(clk), logger)

	return &App{
		Storage:          store,
		Sessions:         sessions,
		Clock:            clk,
		Random:           rnd,
		Hasher:           hasher,
		AuthService:      authService,
		ProfileService:   profileService,
		ProjectsService:  projectsService,
		PortfolioService: portfolioService,
		Uploads:          gatekeeper,
	}
}

// Close releases storage connections
func (a *App) Close() error {
	return closeAll(a.closers)
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
