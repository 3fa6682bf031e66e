package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/folio/internal/dependencies/mocks"
	"github.com/mcoot/folio/internal/dependencies/password"
	"github.com/mcoot/folio/internal/model"
	"github.com/mcoot/folio/internal/storage/memory"
	"github.com/mcoot/folio/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.service = New(
		s.storage, s.storage, password.New(bcrypt.MinCost),
		s.clock, s.random, DefaultConfig(), testutil.NopLogger(),
	)
	s.ctx = context.Background()
}

func (s *ServiceSuite) register(username, email, pw string) *model.Account {
	account, err := s.service.Register(s.ctx, username, email, pw)
	s.Require().NoError(err)
	return account
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	account := s.register("alice", "alice@example.com", "password123")

	s.NotZero(account.ID)
	s.Equal("alice", account.Username)
	s.Equal(s.clock.Now(), account.CreatedAt)
	s.NotNil(account.Certifications)
}

func (s *ServiceSuite) TestRegisterNeverStoresPlaintext() {
	account := s.register("alice", "alice@example.com", "password123")

	stored, err := s.storage.GetAccount(s.ctx, account.ID)
	s.Require().NoError(err)
	s.NotEqual("password123", stored.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

func (s *ServiceSuite) TestRegisterDuplicateUsernameFails() {
	s.register("alice", "alice@example.com", "password123")

	_, err := s.service.Register(s.ctx, "alice", "other@example.com", "password123")
	s.ErrorIs(err, model.ErrAccountExists)

	_, err = s.storage.GetAccountByEmail(s.ctx, "other@example.com")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *ServiceSuite) TestRegisterDuplicateEmailFails() {
	s.register("alice", "alice@example.com", "password123")

	_, err := s.service.Register(s.ctx, "bob", "alice@example.com", "password123")
	s.ErrorIs(err, model.ErrAccountExists)

	_, err = s.storage.GetAccountByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrAccountNotFound)
}

func (s *ServiceSuite) TestRegisterRequiresAllFields() {
	_, err := s.service.Register(s.ctx, "", "alice@example.com", "password123")
	s.ErrorIs(err, ErrMissingFields)

	_, err = s.service.Register(s.ctx, "alice", "alice@example.com", "")
	s.ErrorIs(err, ErrMissingFields)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	account := s.register("alice", "alice@example.com", "password123")
	s.random.QueueToken("abc")

	session, err := s.service.Login(s.ctx, "alice@example.com", "password123")
	s.Require().NoError(err)

	s.Equal("sess_abc", session.Token)
	s.Equal(account.ID, session.AccountID)
	s.Equal(s.clock.Now().Add(24*time.Hour), session.ExpiresAt)
}

func (s *ServiceSuite) TestLoginWrongPasswordFails() {
	s.register("alice", "alice@example.com", "password123")

	_, err := s.service.Login(s.ctx, "alice@example.com", "wrongpassword")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownEmailFailsWithSameError() {
	_, err := s.service.Login(s.ctx, "nobody@example.com", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

// Session tests

func (s *ServiceSuite) TestValidateSessionSucceeds() {
	s.register("alice", "alice@example.com", "password123")
	session, _ := s.service.Login(s.ctx, "alice@example.com", "password123")

	validated, err := s.service.ValidateSession(s.ctx, session.Token)
	s.Require().NoError(err)
	s.Equal(session.AccountID, validated.AccountID)
}

func (s *ServiceSuite) TestValidateSessionInvalidToken() {
	_, err := s.service.ValidateSession(s.ctx, "invalid-token")
	s.ErrorIs(err, ErrInvalidSession)

	_, err = s.service.ValidateSession(s.ctx, "")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionExpired() {
	s.register("alice", "alice@example.com", "password123")
	session, _ := s.service.Login(s.ctx, "alice@example.com", "password123")

	s.clock.Advance(25 * time.Hour)

	_, err := s.service.ValidateSession(s.ctx, session.Token)
	s.ErrorIs(err, ErrInvalidSession)

	_, err = s.storage.GetSession(s.ctx, session.Token)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *ServiceSuite) TestCustomSessionDuration() {
	service := New(
		s.storage, s.storage, password.New(bcrypt.MinCost),
		s.clock, s.random, Config{SessionDuration: time.Hour}, testutil.NopLogger(),
	)
	_, err := service.Register(s.ctx, "alice", "alice@example.com", "password123")
	s.Require().NoError(err)
	session, err := service.Login(s.ctx, "alice@example.com", "password123")
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Hour)

	_, err = service.ValidateSession(s.ctx, session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestGetAccountReflectsLatestProfile() {
	account := s.register("alice", "alice@example.com", "password123")
	session, _ := s.service.Login(s.ctx, "alice@example.com", "password123")

	account.Username = "alicia"
	s.Require().NoError(s.storage.UpdateAccount(s.ctx, account))

	current, err := s.service.GetAccount(s.ctx, session.Token)
	s.Require().NoError(err)
	s.Equal("alicia", current.Username)
}

func (s *ServiceSuite) TestLogoutInvalidatesSession() {
	s.register("alice", "alice@example.com", "password123")
	session, _ := s.service.Login(s.ctx, "alice@example.com", "password123")

	s.Require().NoError(s.service.Logout(s.ctx, session.Token))

	_, err := s.service.ValidateSession(s.ctx, session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestLogoutUnknownTokenIsNoop() {
	s.NoError(s.service.Logout(s.ctx, "nope"))
	s.NoError(s.service.Logout(s.ctx, ""))
}
