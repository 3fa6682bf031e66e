package web_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/folio/internal/factory"
	"github.com/mcoot/folio/internal/services/projects"
	"github.com/mcoot/folio/internal/storage"
	"github.com/mcoot/folio/internal/testutil"
	"github.com/mcoot/folio/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app, err := factory.NewTestApp(t.TempDir())
	require.NoError(t, err)

	return &webTestServer{
		t:       t,
		handler: newRouter(app, app.ProjectsService),
		app:     app,
		cookies: newCookieJar(),
	}
}

// useProjectsStore rebuilds the router so project records go through store
func (ts *webTestServer) useProjectsStore(store storage.Storage) {
	ts.handler = newRouter(ts.app, projects.New(store, ts.app.MockClock, testutil.NopLogger()))
}

func newRouter(app *factory.TestApp, projectsService *projects.Service) http.Handler {
	return web.NewRouter(web.RouterConfig{
		Logger:           testutil.NopLogger(),
		AuthService:      app.AuthService,
		ProfileService:   app.ProfileService,
		ProjectsService:  projectsService,
		PortfolioService: app.PortfolioService,
		Uploads:          app.Uploads,
		StaticDir:        "", // No static assets in tests
	})
}

// do sends a request through the router, carrying cookies like a browser
func (ts *webTestServer) do(req *http.Request) *httptest.ResponseRecorder {
	// Add cookies from jar
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	// Extract Set-Cookie headers into jar
	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// post makes a POST request with urlencoded form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(http.MethodPost, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return ts.do(req)
}

// upload describes a file part of a multipart request
type upload struct {
	field    string
	filename string
	content  []byte
}

// postMultipart makes a POST request with multipart form data and optional files
func (ts *webTestServer) postMultipart(path string, fields url.Values, files ...upload) *httptest.ResponseRecorder {
	ts.t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, values := range fields {
		for _, v := range values {
			require.NoError(ts.t, mw.WriteField(name, v))
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(ts.t, err)
		_, err = part.Write(f.content)
		require.NoError(ts.t, err)
	}
	require.NoError(ts.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return ts.do(req)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// hasSession returns true if the session cookie is set
func (j *cookieJar) hasSession() bool {
	_, ok := j.cookies["session"]
	return ok
}

// Helper functions for common test operations

// register submits the registration form
func (ts *webTestServer) register(username, email, password string) *httptest.ResponseRecorder {
	ts.t.Helper()
	return ts.post("/register", url.Values{
		"username": {username},
		"email":    {email},
		"password": {password},
	})
}

// login submits the login form
func (ts *webTestServer) login(email, password string) *httptest.ResponseRecorder {
	ts.t.Helper()
	return ts.post("/login", url.Values{"email": {email}, "password": {password}})
}

// signUp registers and logs in, leaving the session cookie in the jar
func (ts *webTestServer) signUp(username, email string) {
	ts.t.Helper()
	rr := ts.register(username, email, "secret123")
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after registration")
	ts.followRedirect(rr)

	rr = ts.login(email, "secret123")
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after login")
	require.True(ts.t, ts.cookies.hasSession(), "Expected session cookie to be set")
	ts.followRedirect(rr)
}

// logout clears the browser state and server session
func (ts *webTestServer) logout() {
	ts.t.Helper()
	rr := ts.post("/logout", nil)
	require.Equal(ts.t, http.StatusSeeOther, rr.Code)
	ts.cookies = newCookieJar()
}

// createProject adds a project without an image
func (ts *webTestServer) createProject(title, description string) {
	ts.t.Helper()
	rr := ts.postMultipart("/projects", url.Values{"title": {title}, "description": {description}})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after project creation")
	ts.followRedirect(rr)
}

// projectIDs returns the data-id of every project on the projects page
func (ts *webTestServer) projectIDs() []string {
	ts.t.Helper()
	rr := ts.get("/projects")
	require.Equal(ts.t, http.StatusOK, rr.Code)

	var ids []string
	parseHTML(rr.Body).Find("li.project").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("data-id")
		ids = append(ids, id)
	})
	return ids
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}

// assertFlash asserts that the flash banner shows the message
func assertFlash(t *testing.T, doc *goquery.Document, text string) {
	t.Helper()
	assertContainsText(t, doc, ".flash", text)
}
