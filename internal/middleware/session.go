package middleware

import (
	"net/http"
	"slices"

	"e-shopping/internal/domain"

	"go.uber.org/zap"
)

const (
	// LoginPath is where anonymous callers are sent
	LoginPath = "/auth/login"
	// HomePath is where callers with the wrong role are sent
	HomePath = "/"
)

// SessionReader exposes the session state gates decide on
type SessionReader interface {
	IsLoggedIn() bool
	Role() (domain.Role, bool)
}

// RequireLogin rejects requests with 401 while nobody is logged in
func RequireLogin(session SessionReader, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !session.IsLoggedIn() {
				logger.Debug("Anonymous access to protected route", zap.String("path", r.URL.Path))
				RespondWithErrorDetails(w, http.StatusUnauthorized, "login required", map[string]any{
					"redirect": LoginPath,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects requests with 403 unless the session role is one of
// allowed. It is meant to run after RequireLogin.
func RequireRole(session SessionReader, logger *zap.Logger, allowed ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := session.Role()
			if !ok {
				RespondWithErrorDetails(w, http.StatusUnauthorized, "login required", map[string]any{
					"redirect": LoginPath,
				})
				return
			}

			if !slices.Contains(allowed, role) {
				logger.Warn("User role not authorized",
					zap.String("role", string(role)),
					zap.String("path", r.URL.Path),
				)
				RespondWithErrorDetails(w, http.StatusForbidden, "insufficient permissions", map[string]any{
					"redirect": HomePath,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
