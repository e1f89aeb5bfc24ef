package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/finledger/finledger/internal/errors"
)

func TestWriteAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not found", err: apperrors.NotFound("gone"), wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{name: "conflict", err: apperrors.Conflict("dupe"), wantStatus: http.StatusConflict, wantCode: "conflict"},
		{name: "validation", err: apperrors.Validation("bad"), wantStatus: http.StatusBadRequest, wantCode: "validation"},
		{
			name:       "unauthorized",
			err:        apperrors.Unauthorized("invalid credentials"),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "unauthorized",
		},
		{name: "plain error", err: errors.New("db exploded"), wantStatus: http.StatusInternalServerError, wantCode: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteAppError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
		})
	}
}

func TestWriteAppError_InternalMessageIsGeneric(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteAppError(rec, errors.New("dial tcp 10.0.0.1:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal","message":"internal error"}`, rec.Body.String())
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c","bogus":true}`))

	var dst struct {
		Email string `json:"email"`
	}
	ok := DecodeJSON(rec, req, &dst)

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_json")
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]int{"n": 1})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())
}
