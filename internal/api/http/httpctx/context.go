// Package httpctx moves the authenticated authority session through request
// contexts.
package httpctx

import (
	"context"

	"github.com/tbessonov/securetodo-server/internal/model"
)

type accessContextKey struct{}

// Manager implements model.ContextManager for HTTP request contexts.
type Manager struct{}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetAccessContext returns a context carrying the session.
func (m *Manager) SetAccessContext(ctx context.Context, ac model.AccessContext) context.Context {
	return context.WithValue(ctx, accessContextKey{}, ac)
}

// GetAccessContext returns the session stored in the context, if any.
func (m *Manager) GetAccessContext(ctx context.Context) (model.AccessContext, bool) {
	ac, ok := ctx.Value(accessContextKey{}).(model.AccessContext)
	return ac, ok
}
