package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcoot/folio/internal/model"
	"github.com/mcoot/folio/internal/services/projects"
	"github.com/mcoot/folio/internal/services/uploads"
	"github.com/mcoot/folio/internal/web/middleware"
	"github.com/mcoot/folio/internal/web/templates/pages"
)

// multipartOverhead is the allowance for non-file form fields
const multipartOverhead = 1 << 20

// ProjectsHandler handles project listing, creation, editing and deletion
type ProjectsHandler struct {
	projects *projects.Service
	uploads  *uploads.Gatekeeper
	logger   *slog.Logger
}

// NewProjectsHandler creates a new ProjectsHandler
func NewProjectsHandler(projectsService *projects.Service, gatekeeper *uploads.Gatekeeper, logger *slog.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		projects: projectsService,
		uploads:  gatekeeper,
		logger:   logger,
	}
}

// List renders the account's projects and the create form
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	account := middleware.GetAccount(r.Context())

	list, err := h.projects.List(r.Context(), account.ID)
	if err != nil {
		h.logger.Error("list projects failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	render(w, r, http.StatusOK, pages.Projects(pages.ProjectsData{
		PageData: pageData(r, "Projects"),
		Projects: list,
	}))
}

// Create handles the new project form
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	account := middleware.GetAccount(r.Context())

	if !h.parseForm(w, r) {
		return
	}

	title := r.FormValue("title")
	if strings.TrimSpace(title) == "" {
		redirectWithFlash(w, r, "/projects", middleware.FlashDanger, "Title is required.")
		return
	}

	image, ok := h.acceptImage(w, r, "/projects")
	if !ok {
		return
	}

	_, err := h.projects.Create(r.Context(), account.ID, projects.Input{
		Title:       title,
		Description: r.FormValue("description"),
		ImageFile:   image,
	})
	if err != nil {
		h.logger.Error("create project failed", slog.String("error", err.Error()))
		h.discardImage(image)
		redirectWithFlash(w, r, "/projects", middleware.FlashDanger, "Could not add project.")
		return
	}

	redirectWithFlash(w, r, "/projects", middleware.FlashSuccess, "Project added.")
}

// EditPage renders the editor for an owned project
func (h *ProjectsHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	project, ok := h.ownedProject(w, r)
	if !ok {
		return
	}

	render(w, r, http.StatusOK, pages.EditProject(pages.EditProjectData{
		PageData: pageData(r, "Edit Project"),
		Project:  project,
	}))
}

// Edit saves changes to an owned project. Without a new image the
// existing one is kept.
func (h *ProjectsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	account := middleware.GetAccount(r.Context())

	// Ownership is settled before anything is written to disk
	project, ok := h.ownedProject(w, r)
	if !ok {
		return
	}
	editURL := fmt.Sprintf("/projects/edit/%d", project.ID)

	if !h.parseForm(w, r) {
		return
	}

	title := r.FormValue("title")
	if strings.TrimSpace(title) == "" {
		redirectWithFlash(w, r, editURL, middleware.FlashDanger, "Title is required.")
		return
	}

	image, ok := h.acceptImage(w, r, "/projects")
	if !ok {
		return
	}

	_, err := h.projects.Update(r.Context(), account.ID, project.ID, projects.Input{
		Title:       title,
		Description: r.FormValue("description"),
		ImageFile:   image,
	})
	if err != nil {
		h.discardImage(image)
		if errors.Is(err, projects.ErrTitleRequired) {
			redirectWithFlash(w, r, editURL, middleware.FlashDanger, "Title is required.")
			return
		}
		h.handleProjectError(w, r, err)
		return
	}

	redirectWithFlash(w, r, "/projects", middleware.FlashSuccess, "Project updated.")
}

// Delete removes an owned project immediately
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	account := middleware.GetAccount(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		NotFound(w, r)
		return
	}

	if err := h.projects.Delete(r.Context(), account.ID, model.ProjectID(id)); err != nil {
		h.handleProjectError(w, r, err)
		return
	}

	redirectWithFlash(w, r, "/projects", middleware.FlashInfo, "Project deleted.")
}

// ownedProject loads the project named in the path, answering 404 for
// unknown ids and redirecting with "Access denied." for foreign ones
func (h *ProjectsHandler) ownedProject(w http.ResponseWriter, r *http.Request) (*model.Project, bool) {
	account := middleware.GetAccount(r.Context())

	id, ok := pathID(r, "id")
	if !ok {
		NotFound(w, r)
		return nil, false
	}

	project, err := h.projects.Get(r.Context(), account.ID, model.ProjectID(id))
	if err != nil {
		h.handleProjectError(w, r, err)
		return nil, false
	}
	return project, true
}

func (h *ProjectsHandler) handleProjectError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrProjectNotFound):
		NotFound(w, r)
	case errors.Is(err, model.ErrAccessDenied):
		redirectWithFlash(w, r, "/projects", middleware.FlashDanger, "Access denied.")
	default:
		h.logger.Error("project operation failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// parseForm reads a multipart or urlencoded body bounded by the upload limit
func (h *ProjectsHandler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploads.MaxBytes()+multipartOverhead)

	err := r.ParseMultipartForm(multipartOverhead)
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		redirectWithFlash(w, r, "/projects", middleware.FlashDanger, "Image too large.")
		return false
	}
	redirectWithFlash(w, r, "/projects", middleware.FlashDanger, "Invalid form data.")
	return false
}

// acceptImage stores the optional "image" upload and returns its stored
// name, or "" when no file was sent
func (h *ProjectsHandler) acceptImage(w http.ResponseWriter, r *http.Request, failURL string) (string, bool) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", true
		}
		redirectWithFlash(w, r, failURL, middleware.FlashDanger, "Invalid form data.")
		return "", false
	}
	defer file.Close()

	if header.Filename == "" {
		return "", true
	}

	stored, err := h.uploads.Accept(header.Filename, file)
	switch {
	case err == nil:
		return stored, true
	case errors.Is(err, uploads.ErrUnsupportedType):
		redirectWithFlash(w, r, failURL, middleware.FlashDanger, "Unsupported image type. Allowed: png, jpg, jpeg, gif.")
	case errors.Is(err, uploads.ErrTooLarge):
		redirectWithFlash(w, r, failURL, middleware.FlashDanger, "Image too large.")
	default:
		h.logger.Error("store upload failed", slog.String("error", err.Error()))
		redirectWithFlash(w, r, failURL, middleware.FlashDanger, "Could not store image.")
	}
	return "", false
}

// discardImage removes an upload whose project record was never written
func (h *ProjectsHandler) discardImage(stored string) {
	if err := h.uploads.Discard(stored); err != nil {
		h.logger.Warn("discard upload failed", slog.String("stored", stored), slog.String("error", err.Error()))
	}
}
