package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/folio/internal/services/projects"
	"github.com/mcoot/folio/internal/web/middleware"
	"github.com/mcoot/folio/internal/web/templates/pages"
)

// DashboardHandler renders the signed-in landing page
type DashboardHandler struct {
	projects *projects.Service
	logger   *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(projectsService *projects.Service, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{projects: projectsService, logger: logger}
}

// View renders the dashboard with the account's projects
func (h *DashboardHandler) View(w http.ResponseWriter, r *http.Request) {
	account := middleware.GetAccount(r.Context())

	list, err := h.projects.List(r.Context(), account.ID)
	if err != nil {
		h.logger.Error("list projects failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	render(w, r, http.StatusOK, pages.Dashboard(pages.DashboardData{
		PageData: pageData(r, "Dashboard"),
		Projects: list,
	}))
}
