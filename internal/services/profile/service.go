package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/folio/internal/dependencies/password"
	"github.com/mcoot/folio/internal/model"
	"github.com/mcoot/folio/internal/storage"
)

// ErrIdentityRequired is returned when a save would blank the username or email
var ErrIdentityRequired = errors.New("username and email are required")

// Update carries a full profile save. Every text field overwrites the stored
// value, including with "". Certifications replace the stored list wholesale.
type Update struct {
	Username    string
	Email       string
	Tagline     string
	Bio         string
	Course      string
	Faction     string
	AvatarURL   string
	Status      string
	Skills      string
	PublicEmail string
	LinkedIn    string
	GitHub      string

	Certifications []model.Certification

	// NewPassword replaces the password hash when non-empty
	NewPassword string
}

// Service reads and writes account profiles
type Service struct {
	storage storage.Storage
	hasher  password.Hasher
	logger  *slog.Logger
}

// New creates a new profile service
func New(store storage.Storage, hasher password.Hasher, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		hasher:  hasher,
		logger:  logger.With(slog.String("component", "profile-service")),
	}
}

// Get returns the account for the given ID
func (s *Service) Get(ctx context.Context, accountID model.AccountID) (*model.Account, error) {
	return s.storage.GetAccount(ctx, accountID)
}

// Update overwrites the account's profile in one store transaction.
// A username or email collision surfaces as model.ErrAccountExists with
// nothing written.
func (s *Service) Update(ctx context.Context, accountID model.AccountID, u Update) (*model.Account, error) {
	if u.Username == "" || u.Email == "" {
		return nil, ErrIdentityRequired
	}

	account, err := s.storage.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	account.Username = u.Username
	account.Email = u.Email
	account.Tagline = u.Tagline
	account.Bio = u.Bio
	account.Course = u.Course
	account.Faction = u.Faction
	account.AvatarURL = u.AvatarURL
	account.Status = u.Status
	account.Skills = u.Skills
	account.PublicEmail = u.PublicEmail
	account.LinkedIn = u.LinkedIn
	account.GitHub = u.GitHub

	account.Certifications = u.Certifications
	if account.Certifications == nil {
		account.Certifications = []model.Certification{}
	}

	if u.NewPassword != "" {
		hash, err := s.hasher.Hash(u.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		account.PasswordHash = hash
	}

	if err := s.storage.UpdateAccount(ctx, account); err != nil {
		s.logger.Warn("profile update failed",
			slog.Int64("account_id", int64(accountID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("profile updated",
		slog.Int64("account_id", int64(accountID)),
		slog.Int("certifications", len(account.Certifications)),
		slog.Bool("password_changed", u.NewPassword != ""),
	)
	return account, nil
}
