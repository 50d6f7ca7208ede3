package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()

	Healthz().ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var body healthResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Equal(t, "ok", body.Status)
}

func TestReadyzWithoutPool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	res := httptest.NewRecorder()

	Readyz(nil).ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var body healthResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	require.Equal(t, "ready", body.Status)
}
