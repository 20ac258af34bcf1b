package httputil

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cafestock/cafestock-backend/pkg/errors"
	"github.com/cafestock/cafestock-backend/pkg/logger"
	"github.com/cafestock/cafestock-backend/pkg/messaging"
	"github.com/cafestock/cafestock-backend/pkg/permissions"
)

type contextKey string

const (
	RequestIDKey   contextKey = "request_id"
	UserIDKey      contextKey = "user_id"
	PermissionsKey contextKey = "permissions"
)

// Headers set by the API gateway after authentication
const (
	HeaderRequestID   = "X-Request-ID"
	HeaderUserID      = "X-User-ID"
	HeaderPermissions = "X-User-Permissions"
)

// RequestID middleware adds a request ID to each request.
// The ID doubles as the correlation ID of events published while serving it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		ctx = messaging.WithCorrelationID(ctx, requestID)
		w.Header().Set(HeaderRequestID, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logger middleware logs HTTP requests
func Logger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap response writer to capture status code
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			log.Info().
				Str("request_id", GetRequestID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", wrapped.statusCode).
				Dur("duration", time.Since(start)).
				Str("user_id", GetUserID(r.Context())).
				Str("remote_addr", r.RemoteAddr).
				Msg("HTTP request")
		})
	}
}

// Recoverer middleware recovers from panics
func Recoverer(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error().
						Interface("panic", err).
						Str("path", r.URL.Path).
						Msg("panic recovered")

					Error(w, errors.Internal("an unexpected error occurred"))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Identity extracts the caller identity forwarded by the API gateway
// and adds it to the request context.
//
// Headers expected:
//   - X-User-ID: caller ID, used for logging and audit
//   - X-User-Permissions: comma-separated granted permissions
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithIdentity(r.Context(),
			r.Header.Get(HeaderUserID),
			permissions.Parse(r.Header.Get(HeaderPermissions)),
		)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePermission rejects requests whose caller lacks any of perms with 403
func RequirePermission(perms ...string) func(http.Handler) http.Handler {
	return requirePermissions(perms, permissions.HasAllPermissions)
}

// RequireAnyPermission rejects requests whose caller holds none of perms with 403
func RequireAnyPermission(perms ...string) func(http.Handler) http.Handler {
	return requirePermissions(perms, permissions.HasAnyPermission)
}

func requirePermissions(perms []string, allowed func(granted, required []string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allowed(GetPermissions(r.Context()), perms) {
				ErrorLocalized(w, r, errors.Forbidden("missing permission "+strings.Join(perms, ", ")))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetUserID retrieves the user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetPermissions retrieves the granted permissions from context
func GetPermissions(ctx context.Context) []string {
	if perms, ok := ctx.Value(PermissionsKey).([]string); ok {
		return perms
	}
	return nil
}

// WithIdentity adds caller information to the context
func WithIdentity(ctx context.Context, userID string, perms []string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	ctx = context.WithValue(ctx, PermissionsKey, perms)
	return ctx
}
