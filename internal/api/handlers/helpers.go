package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/citynights/server/internal/api/problem"
	"github.com/citynights/server/internal/domain/ids"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func pathParam(r *http.Request, key string) string {
	if r == nil {
		return ""
	}
	return r.PathValue(key)
}

// decodeBody reads a JSON object from the request body. Rejects empty bodies
// and non-object payloads.
func decodeBody(r *http.Request) (map[string]any, error) {
	var payload map[string]any
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if payload == nil {
		return nil, errors.New("request body must be a JSON object")
	}
	return payload, nil
}

// ValidateAndExtractULID extracts and validates a ULID path parameter. On
// failure it writes a problem response and returns false.
func ValidateAndExtractULID(w http.ResponseWriter, r *http.Request, paramName, env string) (string, bool) {
	value := strings.ToUpper(strings.TrimSpace(pathParam(r, paramName)))
	if value == "" {
		problem.BadRequest(w, r, fmt.Errorf("%s: missing", paramName), env)
		return "", false
	}
	if err := ids.ValidateULID(value); err != nil {
		problem.BadRequest(w, r, fmt.Errorf("%s: %w", paramName, err), env)
		return "", false
	}
	return value, true
}
