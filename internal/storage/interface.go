package storage

import (
	"context"

	"github.com/mcoot/folio/internal/model"
)

// Storage defines the interface for account and project persistence
type Storage interface {
	// Account operations
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*model.Account, error)
	AccountExists(ctx context.Context, username, email string) (bool, error)
	// UpdateAccount overwrites every field of the account, certifications
	// included, in a single transaction.
	UpdateAccount(ctx context.Context, account *model.Account) error

	// Project operations
	CreateProject(ctx context.Context, project *model.Project) error
	GetProject(ctx context.Context, id model.ProjectID) (*model.Project, error)
	ListProjects(ctx context.Context, ownerID model.AccountID) ([]*model.Project, error)
	UpdateProject(ctx context.Context, project *model.Project) error
	DeleteProject(ctx context.Context, id model.ProjectID) error

	Close() error
}

// SessionStore persists authenticated sessions
type SessionStore interface {
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
}
