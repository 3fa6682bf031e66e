package portfolio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/folio/internal/model"
	"github.com/mcoot/folio/internal/storage"
)

// View is the public portfolio of one account
type View struct {
	Account  *model.Account
	Projects []*model.Project
}

// Document is a rendered portfolio export
type Document struct {
	Filename string
	Data     []byte
}

// Service loads public portfolios and exports them
type Service struct {
	storage  storage.Storage
	renderer Renderer
	logger   *slog.Logger
}

// New creates a new portfolio service
func New(store storage.Storage, renderer Renderer, logger *slog.Logger) *Service {
	return &Service{
		storage:  store,
		renderer: renderer,
		logger:   logger.With(slog.String("component", "portfolio-service")),
	}
}

// Filename returns the download name of an exported portfolio
func Filename(username string) string {
	return username + "_portfolio.pdf"
}

// Portfolio loads the account and its projects by username.
// Unknown usernames return model.ErrAccountNotFound.
func (s *Service) Portfolio(ctx context.Context, username string) (*View, error) {
	account, err := s.storage.GetAccountByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	projects, err := s.storage.ListProjects(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	return &View{Account: account, Projects: projects}, nil
}

// Export renders the portfolio of username as a PDF held in memory
func (s *Service) Export(ctx context.Context, username string) (*Document, error) {
	view, err := s.Portfolio(ctx, username)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, Title(view.Account), Assemble(view.Account, view.Projects)); err != nil {
		return nil, fmt.Errorf("render portfolio: %w", err)
	}

	s.logger.Info("portfolio exported",
		slog.String("username", username),
		slog.Int("projects", len(view.Projects)),
		slog.Int("bytes", buf.Len()),
	)
	return &Document{Filename: Filename(username), Data: buf.Bytes()}, nil
}
