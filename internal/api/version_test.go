package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionHandler(t *testing.T) {
	handler := VersionHandler("1.2.3", "abc123", "2026-01-01T00:00:00Z")

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var body versionResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Equal(t, "1.2.3", body.Version)
	require.Equal(t, "abc123", body.GitCommit)
	require.NotEmpty(t, body.GoVersion)
}

func TestVersionHandlerDefaults(t *testing.T) {
	handler := VersionHandler("", "", "")

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	var body versionResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Equal(t, "dev", body.Version)
	require.Equal(t, "unknown", body.GitCommit)
}
