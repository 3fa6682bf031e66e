package e2e_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/folio/internal/api"
	"github.com/mcoot/folio/internal/factory"
	"github.com/mcoot/folio/internal/testutil"
	"github.com/mcoot/folio/internal/web"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "folio-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/folio")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token"),
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// startTestServer runs the full application on a free port backed by a sqlite file
func startTestServer(t *testing.T) string {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	dataDir := t.TempDir()
	app, err := factory.New(t.Context(), factory.Config{
		StorageType: factory.StorageTypeSQLite,
		DatabaseURL: filepath.Join(dataDir, "portfolio.db"),
		UploadDir:   filepath.Join(dataDir, "uploads"),
		BcryptCost:  bcrypt.MinCost,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	logger := testutil.NopLogger()
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		AuthService:      app.AuthService,
		PortfolioService: app.PortfolioService,
	})
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:           logger,
		AuthService:      app.AuthService,
		ProfileService:   app.ProfileService,
		ProjectsService:  app.ProjectsService,
		PortfolioService: app.PortfolioService,
		Uploads:          app.Uploads,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: api.Mount(apiRouter, webRouter),
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	})

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")
	return serverURL
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// browser is a cookie-carrying client for the HTML side
func browser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

type portfolioResponse struct {
	Username       string `json:"username"`
	Tagline        string `json:"tagline"`
	Certifications []struct {
		Name   string `json:"name"`
		Issuer string `json:"issuer"`
	} `json:"certifications"`
	Projects []struct {
		Title string `json:"title"`
	} `json:"projects"`
}

func TestCLIAndWebEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	serverURL := startTestServer(t)
	cli := newCLIRunner(t, serverURL)

	out, err := cli.run("health")
	require.NoError(t, err, out)
	assert.Contains(t, out, `"ok"`)

	out, err = cli.run("register", "--user", "alice", "--email", "alice@example.com", "--pass", "secret123")
	require.NoError(t, err, out)

	out, err = cli.run("login", "--email", "alice@example.com", "--pass", "secret123")
	require.NoError(t, err, out)

	out, err = cli.run("me")
	require.NoError(t, err, out)
	assert.Contains(t, out, `"username": "alice"`)

	// Fill in the portfolio through the HTML forms
	b := browser(t)
	resp, err := b.PostForm(serverURL+"/login", url.Values{"email": {"alice@example.com"}, "password": {"secret123"}})
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Request.URL.Path)

	resp, err = b.PostForm(serverURL+"/profile", url.Values{
		"username":      {"alice"},
		"email":         {"alice@example.com"},
		"tagline":       {"Gopher"},
		"cert_name[]":   {"CKA"},
		"cert_issuer[]": {"CNCF"},
		"cert_date[]":   {"2024"},
	})
	require.NoError(t, err)
	_ = resp.Body.Close()

	resp, err = b.PostForm(serverURL+"/projects", url.Values{"title": {"Folio"}, "description": {"This app"}})
	require.NoError(t, err)
	_ = resp.Body.Close()

	// Read it back through the CLI
	out, err = cli.run("portfolio", "show", "alice")
	require.NoError(t, err, out)

	var p portfolioResponse
	require.NoError(t, json.Unmarshal([]byte(out), &p), out)
	assert.Equal(t, "Gopher", p.Tagline)
	require.Len(t, p.Certifications, 1)
	assert.Equal(t, "CNCF", p.Certifications[0].Issuer)
	require.Len(t, p.Projects, 1)
	assert.Equal(t, "Folio", p.Projects[0].Title)

	pdfPath := filepath.Join(t.TempDir(), "alice.pdf")
	out, err = cli.run("portfolio", "download", "alice", "-f", pdfPath)
	require.NoError(t, err, out)
	data, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))

	out, err = cli.run("logout")
	require.NoError(t, err, out)

	_, err = cli.run("me")
	assert.Error(t, err)
}
