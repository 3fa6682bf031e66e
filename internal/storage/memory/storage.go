package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/mcoot/folio/internal/model"
	"github.com/mcoot/folio/internal/storage"
)

// Storage is an in-memory implementation of the storage interfaces.
// Records are copied in and out so callers never share state with the store.
type Storage struct {
	mu sync.RWMutex

	accounts      map[model.AccountID]*model.Account
	usernameIndex map[string]model.AccountID
	emailIndex    map[string]model.AccountID
	projects      map[model.ProjectID]*model.Project
	sessions      map[string]*model.Session

	nextAccountID model.AccountID
	nextProjectID model.ProjectID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		accounts:      make(map[model.AccountID]*model.Account),
		usernameIndex: make(map[string]model.AccountID),
		emailIndex:    make(map[string]model.AccountID),
		projects:      make(map[model.ProjectID]*model.Project),
		sessions:      make(map[string]*model.Session),
	}
}

// Ensure Storage implements the interfaces
var (
	_ storage.Storage      = (*Storage)(nil)
	_ storage.SessionStore = (*Storage)(nil)
)

// Close is a no-op for the in-memory store
func (s *Storage) Close() error {
	return nil
}

// Account operations

func (s *Storage) CreateAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.usernameIndex[account.Username]; ok {
		return model.ErrAccountExists
	}
	if _, ok := s.emailIndex[account.Email]; ok {
		return model.ErrAccountExists
	}

	s.nextAccountID++
	account.ID = s.nextAccountID

	s.accounts[account.ID] = copyAccount(account)
	s.usernameIndex[account.Username] = account.ID
	s.emailIndex[account.Email] = account.ID
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return copyAccount(account), nil
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return copyAccount(s.accounts[id]), nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return copyAccount(s.accounts[id]), nil
}

func (s *Storage) AccountExists(ctx context.Context, username, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, byUsername := s.usernameIndex[username]
	_, byEmail := s.emailIndex[email]
	return byUsername || byEmail, nil
}

func (s *Storage) UpdateAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.accounts[account.ID]
	if !ok {
		return model.ErrAccountNotFound
	}

	// Enforce the same unique constraints a relational store would
	if id, ok := s.usernameIndex[account.Username]; ok && id != account.ID {
		return model.ErrAccountExists
	}
	if id, ok := s.emailIndex[account.Email]; ok && id != account.ID {
		return model.ErrAccountExists
	}

	delete(s.usernameIndex, existing.Username)
	delete(s.emailIndex, existing.Email)

	updated := copyAccount(account)
	updated.CreatedAt = existing.CreatedAt
	s.accounts[account.ID] = updated
	s.usernameIndex[updated.Username] = updated.ID
	s.emailIndex[updated.Email] = updated.ID
	return nil
}

// Project operations

func (s *Storage) CreateProject(ctx context.Context, project *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[project.OwnerID]; !ok {
		return model.ErrAccountNotFound
	}

	s.nextProjectID++
	project.ID = s.nextProjectID

	p := *project
	s.projects[project.ID] = &p
	return nil
}

func (s *Storage) GetProject(ctx context.Context, id model.ProjectID) (*model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	project, ok := s.projects[id]
	if !ok {
		return nil, model.ErrProjectNotFound
	}
	p := *project
	return &p, nil
}

func (s *Storage) ListProjects(ctx context.Context, ownerID model.AccountID) ([]*model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := []*model.Project{}
	for _, project := range s.projects {
		if project.OwnerID == ownerID {
			p := *project
			projects = append(projects, &p)
		}
	}

	// IDs are allocated sequentially, so ID order is insertion order
	slices.SortFunc(projects, func(a, b *model.Project) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return projects, nil
}

func (s *Storage) UpdateProject(ctx context.Context, project *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.projects[project.ID]
	if !ok {
		return model.ErrProjectNotFound
	}

	p := *project
	p.OwnerID = existing.OwnerID
	p.CreatedAt = existing.CreatedAt
	s.projects[project.ID] = &p
	return nil
}

func (s *Storage) DeleteProject(ctx context.Context, id model.ProjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return model.ErrProjectNotFound
	}
	delete(s.projects, id)
	return nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := *session
	s.sessions[session.Token] = &sess
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	sess := *session
	return &sess, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func copyAccount(account *model.Account) *model.Account {
	a := *account
	a.Certifications = slices.Clone(account.Certifications)
	if a.Certifications == nil {
		a.Certifications = []model.Certification{}
	}
	return &a
}
