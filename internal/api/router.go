package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/folio/internal/api/handler"
	"github.com/mcoot/folio/internal/api/middleware"
	"github.com/mcoot/folio/internal/api/response"
	rootmiddleware "github.com/mcoot/folio/internal/middleware"
	"github.com/mcoot/folio/internal/services/auth"
	"github.com/mcoot/folio/internal/services/portfolio"
)

// PathPrefix is where the JSON API is mounted
const PathPrefix = "/api/v1"

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	AuthService      *auth.Service
	PortfolioService *portfolio.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	accountHandler := handler.NewAccountHandler(cfg.AuthService)
	portfolioHandler := handler.NewPortfolioHandler(cfg.PortfolioService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := rootmiddleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix(PathPrefix).Subrouter()
	api.Use(rootmiddleware.RequestID())
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Public routes
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/accounts", accountHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/sessions", accountHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/portfolios/{username}", portfolioHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/portfolios/{username}/pdf", portfolioHandler.PDF).Methods(http.MethodGet)

	// Protected routes
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/sessions", accountHandler.Logout).Methods(http.MethodDelete)
	protected.HandleFunc("/me", accountHandler.GetMe).Methods(http.MethodGet)

	api.NotFoundHandler = http.HandlerFunc(handler.NotFound)
	r.NotFoundHandler = http.HandlerFunc(handler.NotFound)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
