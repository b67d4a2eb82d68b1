package model

import "context"

// ContextManager moves the authenticated authority session in and out of a
// request context.
type ContextManager interface {
	SetAccessContext(ctx context.Context, ac AccessContext) context.Context
	GetAccessContext(ctx context.Context) (AccessContext, bool)
}
