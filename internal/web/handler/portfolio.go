package handler

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/folio/internal/model"
	"github.com/mcoot/folio/internal/services/portfolio"
	"github.com/mcoot/folio/internal/web/middleware"
	"github.com/mcoot/folio/internal/web/templates/pages"
)

// PortfolioHandler serves public portfolio pages and their PDF export
type PortfolioHandler struct {
	portfolio *portfolio.Service
	logger    *slog.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *portfolio.Service, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolioService, logger: logger}
}

// View renders the public portfolio of the user in the path
func (h *PortfolioHandler) View(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	view, err := h.portfolio.Portfolio(r.Context(), username)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			redirectWithFlash(w, r, "/", middleware.FlashDanger, "User not found.")
			return
		}
		h.logger.Error("load portfolio failed", slog.String("username", username), slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	render(w, r, http.StatusOK, pages.Portfolio(pages.PortfolioData{
		PageData: pageData(r, view.Account.Username+"'s Portfolio"),
		Owner:    view.Account,
		Projects: view.Projects,
	}))
}

// Download streams the portfolio as a PDF attachment
func (h *PortfolioHandler) Download(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	doc, err := h.portfolio.Export(r.Context(), username)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			NotFound(w, r)
			return
		}
		h.logger.Error("export portfolio failed", slog.String("username", username), slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	WritePDF(w, doc)
}

// WritePDF writes an exported document as a download
func WritePDF(w http.ResponseWriter, doc *portfolio.Document) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Data)
}
