package projects

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mcoot/folio/internal/dependencies/clock"
	"github.com/mcoot/folio/internal/model"
	"github.com/mcoot/folio/internal/storage"
)

// ErrTitleRequired is returned when a project is saved without a title
var ErrTitleRequired = errors.New("project title is required")

// Input holds the editable fields of a project
type Input struct {
	Title       string
	Description string
	// ImageFile is the stored upload name. Empty on update keeps the current image.
	ImageFile string
}

// Service manages an account's projects and enforces ownership
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new projects service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger.With(slog.String("component", "projects-service")),
	}
}

// List returns the owner's projects in creation order
func (s *Service) List(ctx context.Context, ownerID model.AccountID) ([]*model.Project, error) {
	return s.storage.ListProjects(ctx, ownerID)
}

// Create adds a project for the owner
func (s *Service) Create(ctx context.Context, ownerID model.AccountID, in Input) (*model.Project, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}

	project := &model.Project{
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		ImageFile:   in.ImageFile,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.storage.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		slog.Int64("project_id", int64(project.ID)),
		slog.Int64("owner_id", int64(ownerID)),
	)
	return project, nil
}

// Get returns a project the actor owns
func (s *Service) Get(ctx context.Context, actorID model.AccountID, projectID model.ProjectID) (*model.Project, error) {
	project, err := s.storage.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != actorID {
		return nil, model.ErrAccessDenied
	}
	return project, nil
}

// Update overwrites title and description of an owned project
func (s *Service) Update(ctx context.Context, actorID model.AccountID, projectID model.ProjectID, in Input) (*model.Project, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrTitleRequired
	}

	project, err := s.Get(ctx, actorID, projectID)
	if err != nil {
		return nil, err
	}

	project.Title = in.Title
	project.Description = in.Description
	if in.ImageFile != "" {
		project.ImageFile = in.ImageFile
	}

	if err := s.storage.UpdateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes an owned project immediately
func (s *Service) Delete(ctx context.Context, actorID model.AccountID, projectID model.ProjectID) error {
	if _, err := s.Get(ctx, actorID, projectID); err != nil {
		return err
	}
	if err := s.storage.DeleteProject(ctx, projectID); err != nil {
		return err
	}

	s.logger.Info("project deleted",
		slog.Int64("project_id", int64(projectID)),
		slog.Int64("owner_id", int64(actorID)),
	)
	return nil
}
