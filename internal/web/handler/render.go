package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/mcoot/folio/internal/web/middleware"
	"github.com/mcoot/folio/internal/web/templates/layout"
	"github.com/mcoot/folio/internal/web/templates/pages"
)

// render writes a component with the given status. The page is buffered so a
// template failure still produces a clean 500.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// pageData collects the shared page values from the request context
func pageData(r *http.Request, title string) layout.PageData {
	return layout.PageData{
		Title:   title,
		Account: middleware.GetAccount(r.Context()),
		Flash:   middleware.GetFlash(r.Context()),
	}
}

// redirectWithFlash sets a flash message and redirects with 303
func redirectWithFlash(w http.ResponseWriter, r *http.Request, url, flashType, message string) {
	middleware.SetFlash(w, flashType, message)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// NotFound renders the 404 page
func NotFound(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusNotFound, pages.Error(pages.ErrorData{
		PageData: pageData(r, "Not Found"),
		Status:   http.StatusNotFound,
		Message:  "The page you were looking for does not exist.",
	}))
}

// safeNext returns next if it is a same-site path, otherwise fallback
func safeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}

// pathID parses a numeric route variable
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
