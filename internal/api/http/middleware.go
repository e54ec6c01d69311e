package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fleettrack-backend/internal/domain"
	"fleettrack-backend/internal/logger"
	"fleettrack-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// claimsFrom pulls the authenticated claims placed by AuthMiddleware.
func claimsFrom(r *http.Request) (*security.UserClaims, bool) {
	claims, ok := r.Context().Value(claimsContextKey).(*security.UserClaims)
	return claims, ok
}

// AuthMiddleware validates the bearer token and stores its claims on the
// request context.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				writeError(w, fmt.Errorf("%w: missing bearer token", domain.ErrUnauthorized))
				return
			}

			claims, err := tokens.ValidateToken(token)
			if err != nil {
				writeError(w, fmt.Errorf("%w: invalid or expired token", domain.ErrUnauthorized))
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware rejects non-admin callers. Must run after
// AuthMiddleware.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(r)
		if !ok {
			writeError(w, fmt.Errorf("%w: missing bearer token", domain.ErrUnauthorized))
			return
		}
		if !claims.IsAdmin {
			writeError(w, fmt.Errorf("%w: admin access required", domain.ErrForbidden))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware records one line per request with method, path,
// status and latency.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
