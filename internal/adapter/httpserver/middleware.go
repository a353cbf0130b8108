package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/platform/logger"
	"github.com/Maron09/Product-Store/internal/platform/metrics"
	"github.com/Maron09/Product-Store/internal/repository"
	"github.com/Maron09/Product-Store/internal/token"
)

type contextKey string

const (
	userIDCtxKey   = contextKey("user_id")
	userRoleCtxKey = contextKey("user_role")
)

func userIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDCtxKey).(string)
	return id
}

func userRoleFromContext(ctx context.Context) entity.Role {
	role, _ := ctx.Value(userRoleCtxKey).(entity.Role)
	return role
}

// JWTAuth validates the bearer access token and stores the caller's
// identity in the request context.
func JWTAuth(tokens *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, response{Success: false, Message: "authorization header missing"})
				return
			}

			claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "), token.TypeAccess)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, response{Success: false, Message: "access token is invalid or expired"})
				return
			}

			ctx := context.WithValue(r.Context(), userIDCtxKey, claims.UserID)
			ctx = context.WithValue(ctx, userRoleCtxKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route group to one account role.
func RequireRole(role entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userRoleFromContext(r.Context()) != role {
				writeJSON(w, http.StatusForbidden, response{Success: false, Message: "insufficient permissions"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates a route group to staff accounts. Admin flags live
// on the account record, not in the token, so this hits the store.
func RequireAdmin(users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := users.GetByID(r.Context(), userIDFromContext(r.Context()))
			if err != nil {
				writeJSON(w, http.StatusForbidden, response{Success: false, Message: "insufficient permissions"})
				return
			}
			if !user.IsAdmin && !user.IsStaff && !user.IsSuperuser {
				writeJSON(w, http.StatusForbidden, response{Success: false, Message: "insufficient permissions"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// routePattern labels metrics with the matched chi pattern so that
// parameterized routes collapse into one series per route.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if pattern := rc.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

// RequestLogger logs each request and feeds the latency and error
// counters.
func RequestLogger(log logger.Logger, m *metrics.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			route := r.Method + " " + routePattern(r)
			m.HTTPRequestLatency.WithLabelValues(route).Observe(elapsed.Seconds())
			if rec.status >= 400 {
				m.HTTPErrorsTotal.WithLabelValues(route, http.StatusText(rec.status)).Inc()
				log.Warnf("%s -> %d (%s)", route, rec.status, elapsed)
				return
			}
			log.Infof("%s -> %d (%s)", route, rec.status, elapsed)
		})
	}
}
