package response_test

import (
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/favouritebooks/favouritebooks-server/internal/errors"
	"github.com/favouritebooks/favouritebooks-server/internal/http/response"
	"github.com/favouritebooks/favouritebooks-server/internal/store"
)

var testLogger = slog.New(slog.DiscardHandler)

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Success(rec, map[string]string{"title": "Dune"}, testLogger)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Empty(t, env.Error)
}

func TestErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.NotFound(rec, "book not found", testLogger)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "book not found", env.Error)
}

func TestRawSkipsEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Raw(rec, http.StatusOK, map[string]any{"liked": true, "likes_count": 3}, testLogger)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["liked"])
	assert.NotContains(t, body, "success")
}

func TestHandleErrorDomainError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.HandleError(rec, domainerrors.Forbidden("not yours"), testLogger)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "not yours", env.Error)
}

func TestHandleErrorValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := domainerrors.ValidationWithDetails("validation failed", map[string]string{"title": "is required"})
	response.HandleError(rec, err, testLogger)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Details)
}

func TestHandleErrorStoreError(t *testing.T) {
	rec := httptest.NewRecorder()
	response.HandleError(rec, store.ErrBookNotFound, testLogger)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleErrorUnknown(t *testing.T) {
	rec := httptest.NewRecorder()
	response.HandleError(rec, assert.AnError, testLogger)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "internal server error", env.Error)
}

func TestRedirectToLoginPreservesNext(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/addbook?draft=1", nil)

	response.RedirectToLogin(rec, req, "/login")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?next=%2Faddbook%3Fdraft%3D1", rec.Header().Get("Location"))
}

func TestSeeOther(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/addbook", nil)

	response.SeeOther(rec, req, "/book/dune")

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/book/dune", rec.Header().Get("Location"))
}
