package middleware

import (
	"net/http"
)

const (
	// DefaultMaxBodySize is 1MB for public endpoints.
	DefaultMaxBodySize int64 = 1 << 20

	// EditorMaxBodySize is 5MB for authenticated write endpoints, which may
	// carry large facebook event batches and image lists.
	EditorMaxBodySize int64 = 5 << 20
)

// RequestSize caps incoming request bodies with http.MaxBytesReader. Bodies
// over the limit fail the read with 413 Payload Too Large.
func RequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

			next.ServeHTTP(w, r)
		})
	}
}

func PublicRequestSize() func(http.Handler) http.Handler {
	return RequestSize(DefaultMaxBodySize)
}

func EditorRequestSize() func(http.Handler) http.Handler {
	return RequestSize(EditorMaxBodySize)
}
