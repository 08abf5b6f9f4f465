package identity

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/hfchoice/storefront/internal/platform/httpx"
	"github.com/hfchoice/storefront/internal/shared"
)

// Middleware rejects requests without a verifiable bearer credential and
// stores the caller identity in the request context. It runs before any
// business logic on every /api route.
type Middleware struct {
	Verifier Verifier
	Logger   *slog.Logger
}

// Authenticate is the chi middleware entry point.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "no token provided")
			return
		}
		id, err := m.Verifier.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			if m.Logger != nil {
				m.Logger.Warn("token verification failed", slog.String("path", r.URL.Path))
			}
			httpx.RespondError(w, err)
			return
		}
		ctx := shared.ContextWithIdentity(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
