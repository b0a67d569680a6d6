package middleware

import (
	"net/http"

	"github.com/phrazzld/tutor-api/internal/api/shared"
)

// CORS sets the cross-origin headers on every response and answers
// preflight OPTIONS requests with 204 No Content.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shared.SetCORSHeaders(w.Header())

		if r.Method == http.MethodOptions {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
