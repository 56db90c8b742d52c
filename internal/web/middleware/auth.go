package middleware

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// BearerAuth returns middleware that checks the Authorization header for
// "Bearer <token>". An empty token disables the check and every request
// passes through.
func BearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				reject(w, r, "Missing authorization header", "AUTH001")
				return
			}

			given, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				reject(w, r, "Invalid authorization header format. Expected: Bearer <token>", "AUTH002")
				return
			}

			if subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
				reject(w, r, "Invalid authentication token", "AUTH003")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func reject(w http.ResponseWriter, r *http.Request, msg, code string) {
	slog.Warn("auth: request rejected",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"code", code,
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"error":%q,"code":%q}`, msg, code)
}
