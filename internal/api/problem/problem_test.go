package problem

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteDevIncludesDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/venues", nil)
	res := httptest.NewRecorder()

	Write(res, req, http.StatusBadRequest, TypeValidation, "Validation Error", errors.New("boom"), "development")

	require.Equal(t, "application/problem+json", res.Result().Header.Get("Content-Type"))

	var body ProblemDetails
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Equal(t, "boom", body.Detail)
	require.Equal(t, "/api/v1/venues", body.Instance)
	require.Equal(t, http.StatusBadRequest, body.Status)
}

func TestWriteProdSanitizesDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/venues", nil)
	res := httptest.NewRecorder()

	Write(res, req, http.StatusBadRequest, TypeValidation, "Validation Error", errors.New("boom"), "production")

	var body ProblemDetails
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Equal(t, http.StatusText(http.StatusBadRequest), body.Detail)
}

func TestWriteFieldErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "http://example.com/api/v1/venues", nil)
	res := httptest.NewRecorder()

	BadRequest(res, req, errors.New("invalid payload"), "development", WithErrors(map[string]any{"name": "required"}))

	var body ProblemDetails
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Equal(t, "required", body.Errors["name"])
}

func TestNotFoundHelper(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/venues/missing", nil)
	res := httptest.NewRecorder()

	NotFound(res, req, errors.New("venue not found"), "production")

	require.Equal(t, http.StatusNotFound, res.Code)

	var body ProblemDetails
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Equal(t, TypeNotFound, body.Type)
}
