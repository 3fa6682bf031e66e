package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	rootmiddleware "github.com/mcoot/folio/internal/middleware"
	"github.com/mcoot/folio/internal/services/auth"
	"github.com/mcoot/folio/internal/services/portfolio"
	"github.com/mcoot/folio/internal/services/profile"
	"github.com/mcoot/folio/internal/services/projects"
	"github.com/mcoot/folio/internal/services/uploads"
	"github.com/mcoot/folio/internal/web/handler"
	"github.com/mcoot/folio/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger           *slog.Logger
	AuthService      *auth.Service
	ProfileService   *profile.Service
	ProjectsService  *projects.Service
	PortfolioService *portfolio.Service
	Uploads          *uploads.Gatekeeper
	StaticDir        string // Path to static assets directory (optional)
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := rootmiddleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// Apply global middleware to all routes
	r.Use(rootmiddleware.RequestID())
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Create handlers
	homeHandler := handler.NewHomeHandler()
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	dashboardHandler := handler.NewDashboardHandler(cfg.ProjectsService, cfg.Logger)
	profileHandler := handler.NewProfileHandler(cfg.ProfileService)
	projectsHandler := handler.NewProjectsHandler(cfg.ProjectsService, cfg.Uploads, cfg.Logger)
	portfolioHandler := handler.NewPortfolioHandler(cfg.PortfolioService, cfg.Logger)

	// Uploaded images, registered before the general static prefix
	r.PathPrefix("/static/uploads/").Handler(
		http.StripPrefix("/static/uploads/", noDirListing(http.FileServer(http.Dir(cfg.Uploads.Dir())))),
	).Methods(http.MethodGet, http.MethodHead)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", noDirListing(http.FileServer(http.Dir(cfg.StaticDir))))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public routes (optional auth for showing the account in nav)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	public.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	public.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/portfolio/{username}", portfolioHandler.View).Methods(http.MethodGet)
	public.HandleFunc("/portfolio/{username}/download", portfolioHandler.Download).Methods(http.MethodGet)

	// Protected routes (require auth)
	protected := r.NewRoute().Subrouter()
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)
	protected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodGet, http.MethodPost)
	protected.HandleFunc("/dashboard", dashboardHandler.View).Methods(http.MethodGet)
	protected.HandleFunc("/profile", profileHandler.View).Methods(http.MethodGet)
	protected.HandleFunc("/profile", profileHandler.Update).Methods(http.MethodPost)
	protected.HandleFunc("/projects", projectsHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/projects", projectsHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/projects/edit/{id:[0-9]+}", projectsHandler.EditPage).Methods(http.MethodGet)
	protected.HandleFunc("/projects/edit/{id:[0-9]+}", projectsHandler.Edit).Methods(http.MethodPost)
	protected.HandleFunc("/projects/delete/{id:[0-9]+}", projectsHandler.Delete).Methods(http.MethodGet, http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(handler.NotFound)

	return r
}

// noDirListing answers 404 for directory paths instead of listing them
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
