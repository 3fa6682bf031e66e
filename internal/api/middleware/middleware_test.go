package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/folio/internal/api/apierr"
	"github.com/mcoot/folio/internal/api/middleware"
	"github.com/mcoot/folio/internal/factory"
	rootmiddleware "github.com/mcoot/folio/internal/middleware"
	"github.com/mcoot/folio/internal/testutil"
)

func TestRecoveryWritesJSONWithRequestID(t *testing.T) {
	h := rootmiddleware.RequestID()(middleware.Recovery(testutil.NopLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, apierr.CodeInternalError, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, rr.Header().Get(rootmiddleware.RequestIDHeader))
}

func TestAuthPutsAccountInContext(t *testing.T) {
	app, err := factory.NewTestApp(t.TempDir())
	require.NoError(t, err)
	ctx := t.Context()

	_, err = app.AuthService.Register(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)
	session, err := app.AuthService.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)

	var username, token string
	h := middleware.Auth(app.AuthService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username = middleware.MustGetAccount(r.Context()).Username
		token = middleware.GetToken(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "alice", username)
	assert.Equal(t, session.Token, token)
}

func TestAuthRejectsMissingAndUnknownTokens(t *testing.T) {
	app, err := factory.NewTestApp(t.TempDir())
	require.NoError(t, err)

	called := false
	h := middleware.Auth(app.AuthService)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	for _, header := range []string{"", "Bearer sess_unknown", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, header)
	}
	assert.False(t, called)
}

func TestMustGetAccountPanicsWithoutAuth(t *testing.T) {
	assert.Panics(t, func() {
		middleware.MustGetAccount(t.Context())
	})
}
