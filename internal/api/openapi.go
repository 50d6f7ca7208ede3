package api

import (
	"net/http"
	"os"
	"sync"

	"sigs.k8s.io/yaml"
)

const defaultOpenAPIPath = "api/openapi.yaml"

var (
	openAPIJSON    []byte
	openAPIJSONErr error
	openAPIOnce    sync.Once
)

// OpenAPIHandler serves the API contract as JSON, converted once from the
// YAML source. OPENAPI_SPEC_PATH overrides the source location.
func OpenAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		openAPIOnce.Do(func() {
			path := os.Getenv("OPENAPI_SPEC_PATH")
			if path == "" {
				path = defaultOpenAPIPath
			}
			data, err := os.ReadFile(path)
			if err != nil {
				openAPIJSONErr = err
				return
			}
			openAPIJSON, openAPIJSONErr = yaml.YAMLToJSON(data)
		})

		if openAPIJSONErr != nil {
			http.Error(w, "openapi unavailable", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(openAPIJSON)
	}
}
