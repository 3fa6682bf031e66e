package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/folio/internal/model"
	"github.com/mcoot/folio/internal/services/auth"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{model.ErrAccountNotFound, http.StatusNotFound},
		{model.ErrAccountExists, http.StatusConflict},
		{model.ErrProjectNotFound, http.StatusNotFound},
		{model.ErrAccessDenied, http.StatusForbidden},
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{auth.ErrInvalidSession, http.StatusUnauthorized},
		{auth.ErrMissingFields, http.StatusBadRequest},
		{fmt.Errorf("load: %w", model.ErrAccountNotFound), http.StatusNotFound},
		{NewInvalidRequestError("bad"), http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, Status(tt.err))
		})
	}
}

func TestWriteErrorBody(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, model.ErrAccountExists)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, CodeAccountExists, resp.Error.Code)
}

func TestInternalErrorsHideCause(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("password=hunter2"))

	assert.NotContains(t, rr.Body.String(), "hunter2")
}
