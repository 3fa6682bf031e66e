package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/folio/internal/api/response"
	"github.com/mcoot/folio/internal/services/portfolio"
)

// PortfolioHandler handles public portfolio endpoints
type PortfolioHandler struct {
	portfolio *portfolio.Service
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(portfolioService *portfolio.Service) *PortfolioHandler {
	return &PortfolioHandler{
		portfolio: portfolioService,
	}
}

// Get handles GET /api/v1/portfolios/{username}
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.portfolio.Portfolio(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PortfolioFromView(view))
}

// PDF handles GET /api/v1/portfolios/{username}/pdf
func (h *PortfolioHandler) PDF(w http.ResponseWriter, r *http.Request) {
	doc, err := h.portfolio.Export(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Attachment(w, "application/pdf", doc.Filename, doc.Data)
}
