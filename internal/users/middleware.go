package users

import (
	"log/slog"
	"net/http"

	"github.com/hfchoice/storefront/internal/platform/httpx"
	"github.com/hfchoice/storefront/internal/shared"
)

// Middleware gates HTTP routes on the caller's store role.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// RequireAdmin rejects requests whose resolved role is not Admin. It runs
// after the bearer middleware, so an absent identity is a server-side
// wiring bug rather than a client error.
func (m Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := shared.IdentityFromContext(r.Context())
		if !ok {
			httpx.RespondError(w, shared.ErrUnauthorized)
			return
		}
		user, err := m.Service.Resolve(r.Context(), id)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Error("resolve caller role", slog.Any("error", err))
			}
			httpx.RespondError(w, err)
			return
		}
		if user.Role != RoleAdmin {
			httpx.RespondError(w, shared.ErrPermissionDenied)
			return
		}
		next.ServeHTTP(w, r)
	})
}
