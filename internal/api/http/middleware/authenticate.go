package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tbessonov/securetodo-server/internal/logger"
	"github.com/tbessonov/securetodo-server/internal/model"
)

// Authenticate resolves basic-auth credentials against the authorization
// authority and injects the authenticated session into the request context.
type Authenticate struct {
	authority      model.AccessContextFactory
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(authority model.AccessContextFactory, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authority: authority, contextManager: contextManager, logger: logger}
}

// Handle authenticates the request. The basic-auth username is the user's
// email, which is also the external id of the user's authority resource. All
// authentication failures answer 401 without revealing whether the user
// exists.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			unauthorized(w)
			return
		}

		email := strings.ToLower(strings.TrimSpace(username))

		ac, err := m.authority.NewContext(r.Context())
		if err != nil {
			m.logger.Error("failed to open authority session", "error", err.Error())
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		err = ac.Authenticate(r.Context(), model.ResourceByExternalID(email), model.Credentials{Password: password})
		if err != nil {
			if errors.Is(err, model.ErrAuthenticationFailed) {
				unauthorized(w)
				return
			}
			m.logger.Error("authority authentication errored", "error", err.Error())
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		ctx := m.contextManager.SetAccessContext(r.Context(), ac)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="secure-todo"`)
	http.Error(w, "authentication required", http.StatusUnauthorized)
}
