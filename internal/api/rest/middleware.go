package rest

import (
	"context"
	"net/http"

	"carrental-backend/internal/logger"
	"carrental-backend/internal/security"
)

const sessionCookieName = "token"

type contextKey string

const sessionContextKey contextKey = "session"

// sessionFromContext returns the claims stored by the auth middleware.
func sessionFromContext(ctx context.Context) (*security.SessionClaims, bool) {
	claims, ok := ctx.Value(sessionContextKey).(*security.SessionClaims)
	return claims, ok
}

// authRequired validates the session cookie and stores the claims in the
// request context.
func (s *Server) authRequired(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := s.tokens.ValidateToken(cookie.Value)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// adminRequired implies authRequired.
func (s *Server) adminRequired(next http.HandlerFunc) http.HandlerFunc {
	return s.authRequired(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := sessionFromContext(r.Context())
		if claims == nil || !claims.IsAdmin {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r)
	})
}

// setupGuard blocks guarded routes until the first-run setup has completed.
// The flag is read per request so finishing setup takes effect immediately.
func (s *Server) setupGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		configured, err := s.settings.IsConfigured(r.Context())
		if err != nil {
			logger.ErrorContext(r.Context(), "Failed to check setup state", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if !configured {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"error":         "Application is not configured yet",
				"setupRequired": true,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.tokens.SessionExpiry().Seconds()),
		HttpOnly: true,
		Secure:   s.production,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.production,
		SameSite: http.SameSiteLaxMode,
	})
}
