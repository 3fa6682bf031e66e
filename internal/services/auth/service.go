package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/folio/internal/dependencies/clock"
	"github.com/mcoot/folio/internal/dependencies/password"
	"github.com/mcoot/folio/internal/dependencies/random"
	"github.com/mcoot/folio/internal/model"
	"github.com/mcoot/folio/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrMissingFields      = errors.New("username, email and password are required")
)

const tokenPrefix = "sess_"

// Service handles registration, login and session management
type Service struct {
	storage  storage.Storage
	sessions storage.SessionStore
	hasher   password.Hasher
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(
	store storage.Storage,
	sessions storage.SessionStore,
	hasher password.Hasher,
	clk clock.Clock,
	rnd random.Random,
	cfg Config,
	logger *slog.Logger,
) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         store,
		sessions:        sessions,
		hasher:          hasher,
		clock:           clk,
		random:          rnd,
		logger:          logger.With(slog.String("component", "auth-service")),
		sessionDuration: cfg.SessionDuration,
	}
}

// Register creates a new account. It fails with model.ErrAccountExists when
// either the username or the email is already taken, and writes nothing.
func (s *Service) Register(ctx context.Context, username, email, pw string) (*model.Account, error) {
	if username == "" || email == "" || pw == "" {
		return nil, ErrMissingFields
	}

	exists, err := s.storage.AccountExists(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrAccountExists
	}

	hash, err := s.hasher.Hash(pw)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Username:       username,
		Email:          email,
		PasswordHash:   hash,
		Certifications: []model.Certification{},
		CreatedAt:      s.clock.Now(),
	}
	// The store's unique constraint still guards a concurrent registration
	if err := s.storage.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account registered",
		slog.Int64("account_id", int64(account.ID)),
		slog.String("username", username),
	)
	return account, nil
}

// Login authenticates by email and password and creates a session.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, pw string) (*model.Session, error) {
	account, err := s.storage.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(account.PasswordHash, pw); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(ctx, account)
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	session, err := s.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if session.Expired(s.clock.Now()) {
		_ = s.sessions.DeleteSession(ctx, token)
		return nil, ErrInvalidSession
	}

	return session, nil
}

// GetAccount returns the account behind a session token. The account is
// reloaded on every call so profile edits are visible immediately.
func (s *Service) GetAccount(ctx context.Context, token string) (*model.Account, error) {
	session, err := s.ValidateSession(ctx, token)
	if err != nil {
		return nil, err
	}

	account, err := s.storage.GetAccount(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	return account, nil
}

// Logout removes a session. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, token)
}

func (s *Service) createSession(ctx context.Context, account *model.Account) (*model.Session, error) {
	now := s.clock.Now()
	session := &model.Session{
		Token:     tokenPrefix + s.random.Token(16),
		AccountID: account.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}
