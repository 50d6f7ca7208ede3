package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenAPIHandlerServesJSON(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "openapi.yaml")
	spec := "openapi: 3.0.3\ninfo:\n  title: CityNights API\n  version: 1.0.0\npaths: {}\n"
	require.NoError(t, os.WriteFile(specPath, []byte(spec), 0o600))
	t.Setenv("OPENAPI_SPEC_PATH", specPath)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/openapi.json", nil)
	res := httptest.NewRecorder()

	OpenAPIHandler()(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "application/json", res.Header().Get("Content-Type"))

	var doc map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&doc))
	require.Equal(t, "3.0.3", doc["openapi"])
}

func TestOpenAPIHandlerRejectsNonGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/openapi.json", nil)
	res := httptest.NewRecorder()

	OpenAPIHandler()(res, req)

	require.Equal(t, http.StatusMethodNotAllowed, res.Code)
}
