package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/example/appointment-admin/internal/application"
	"github.com/example/appointment-admin/internal/logging"
)

// ActorValidator resolves an API token into the acting identity.
type ActorValidator interface {
	ValidateToken(ctx context.Context, token string) (Actor, error)
}

// RequireActor rejects requests that do not carry a valid API token and
// stores the resolved actor on the request context for downstream handlers.
func RequireActor(validator ActorValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractTokenFromRequest(r)
			if token == "" {
				responder.writeError(r.Context(), w, http.StatusUnauthorized, errMissingAPIToken)
				return
			}

			actor, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, application.ErrUnauthorized):
					responder.writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Message: statusMessage(http.StatusUnauthorized)})
				default:
					responder.writeJSON(r.Context(), w, http.StatusInternalServerError, errorResponse{Message: statusMessage(http.StatusInternalServerError)})
				}
				return
			}

			ctx := ContextWithActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger assigns every request a sequential id and a scoped logger,
// stored on the context so handlers and services log under the same request.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	var counter atomic.Uint64

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := counter.Add(1)
			logger := base.With(
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
			)

			ctx := logging.ContextWithLogger(r.Context(), logger)
			start := time.Now()
			logger.InfoContext(ctx, "request started")
			next.ServeHTTP(w, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "duration", time.Since(start))
		})
	}
}

// StaticTokenValidator accepts a single pre-shared API token.
type StaticTokenValidator struct {
	token string
	actor Actor
}

func NewStaticTokenValidator(token string, actor Actor) *StaticTokenValidator {
	return &StaticTokenValidator{token: token, actor: actor}
}

func (v *StaticTokenValidator) ValidateToken(_ context.Context, token string) (Actor, error) {
	if v.token == "" || subtle.ConstantTimeCompare([]byte(v.token), []byte(token)) != 1 {
		return Actor{}, application.ErrUnauthorized
	}
	return v.actor, nil
}

func extractTokenFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := strings.TrimSpace(r.Header.Get("Authorization")); header != "" {
		const prefix = "Bearer "
		if strings.HasPrefix(header, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(header, prefix))
		}
	}
	if cookie, err := r.Cookie("api_token"); err == nil {
		return cookie.Value
	}
	return ""
}
