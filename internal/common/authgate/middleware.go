package authgate

import (
	"context"
	"errors"
	"net/http"
	"strings"

	authservice "github.com/twitclone/backend/internal/auth/service"
	commonerrors "github.com/twitclone/backend/internal/common/errors"
	commonhttp "github.com/twitclone/backend/internal/common/http"
	"github.com/twitclone/backend/internal/common/logger"
)

// Verifier resolves a bearer token string to its subject username.
type Verifier interface {
	Verify(tokenString string) (string, error)
}

type contextKey string

const subjectKey contextKey = "auth_subject"

// Middleware guards protected routes. A missing or expired token yields
// auth/token_required; a tampered or structurally invalid one yields
// auth/invalid_token. On success the verified username is bound into the
// request context.
func Middleware(verifier Verifier, log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				log.Warnf("auth failed path=%s: missing bearer token", r.URL.Path)
				commonhttp.WriteDomainError(w, commonerrors.ErrTokenRequired)
				return
			}

			subject, err := verifier.Verify(token)
			if err != nil {
				if errors.Is(err, authservice.ErrTokenExpired) {
					log.Warnf("auth failed path=%s: token expired", r.URL.Path)
					commonhttp.WriteDomainError(w, commonerrors.ErrTokenRequired)
					return
				}
				log.Warnf("auth failed path=%s: %v", r.URL.Path, err)
				commonhttp.WriteDomainError(w, commonerrors.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Subject returns the authenticated username bound by the middleware.
func Subject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok && subject != ""
}

func bearerToken(r *http.Request) (string, bool) {
	raw := r.Header.Get("Authorization")
	if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}
