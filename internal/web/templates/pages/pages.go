// Package pages holds one component per HTML page. Each component renders
// its body through html/template and is wrapped in layout.Page.
package pages

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/folio/internal/model"
	"github.com/mcoot/folio/internal/services/portfolio"
	"github.com/mcoot/folio/internal/web/templates/layout"
)

//go:embed html/*.html
var files embed.FS

var funcs = template.FuncMap{
	"certLine": portfolio.CertificationLine,
}

var tmpl = template.Must(template.New("pages").Funcs(funcs).ParseFS(files, "html/*.html"))

// page renders the named body template inside the site shell
func page(name string, pd layout.PageData, data any) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return tmpl.ExecuteTemplate(w, name, data)
	})
	return layout.Page(pd, body)
}

// HomeData is the data for the landing page
type HomeData struct {
	layout.PageData
}

// Home renders the landing page
func Home(data HomeData) templ.Component {
	return page("home", data.PageData, data)
}

// LoginData is the data for the login page
type LoginData struct {
	layout.PageData
	Email string
	Next  string
}

// Login renders the login form
func Login(data LoginData) templ.Component {
	return page("login", data.PageData, data)
}

// RegisterData is the data for the registration page
type RegisterData struct {
	layout.PageData
	Username string
	Email    string
}

// Register renders the registration form
func Register(data RegisterData) templ.Component {
	return page("register", data.PageData, data)
}

// DashboardData is the data for the dashboard page
type DashboardData struct {
	layout.PageData
	Projects []*model.Project
}

// Dashboard renders the signed-in landing page with the account's projects
func Dashboard(data DashboardData) templ.Component {
	return page("dashboard", data.PageData, data)
}

// ProfileData is the data for the profile editor
type ProfileData struct {
	layout.PageData
	Profile *model.Account
}

// Profile renders the profile editor including one row per certification
func Profile(data ProfileData) templ.Component {
	return page("profile", data.PageData, data)
}

// ProjectsData is the data for the project list and create form
type ProjectsData struct {
	layout.PageData
	Projects []*model.Project
}

// Projects renders the project list with the create form
func Projects(data ProjectsData) templ.Component {
	return page("projects", data.PageData, data)
}

// EditProjectData is the data for the project editor
type EditProjectData struct {
	layout.PageData
	Project *model.Project
}

// EditProject renders the project editor
func EditProject(data EditProjectData) templ.Component {
	return page("edit_project", data.PageData, data)
}

// PortfolioData is the data for a public portfolio page
type PortfolioData struct {
	layout.PageData
	Owner    *model.Account
	Projects []*model.Project
}

// Portfolio renders a user's public portfolio
func Portfolio(data PortfolioData) templ.Component {
	return page("portfolio", data.PageData, data)
}

// ErrorData is the data for a plain error page
type ErrorData struct {
	layout.PageData
	Status  int
	Message string
}

// Error renders an error page
func Error(data ErrorData) templ.Component {
	return page("error", data.PageData, data)
}
