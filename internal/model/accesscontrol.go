package model

import "context"

// Resource references a secured resource in the authorization authority by
// its stable external id.
type Resource struct {
	ExternalID string
}

// ResourceByExternalID creates a Resource reference from an external id.
func ResourceByExternalID(externalID string) Resource {
	return Resource{ExternalID: externalID}
}

// Credentials carries secret material used to authenticate a resource or to
// secure a newly created one.
type Credentials struct {
	Password string
}

// Permission names an action on a secured resource. WithGrantOption marks the
// variant that allows the holder to re-grant the permission to others.
type Permission struct {
	Name            string
	WithGrantOption bool
}

// NewPermission creates a plain permission.
func NewPermission(name string) Permission {
	return Permission{Name: name}
}

// NewPermissionWithGrantOption creates a permission carrying the grant option.
func NewPermissionWithGrantOption(name string) Permission {
	return Permission{Name: name, WithGrantOption: true}
}

// AccessContext is a single session against the authorization authority,
// bound to at most one authenticated resource. How permission inheritance or
// grant-option propagation is computed is entirely the authority's concern.
type AccessContext interface {
	// Authenticate binds the session to the resource. Failures never reveal
	// whether the resource exists: they all surface ErrAuthenticationFailed.
	Authenticate(ctx context.Context, resource Resource, credentials Credentials) error

	// CreateResource registers a secured resource of the given class in the
	// given domain. Credentials may be nil for resources that are never
	// authenticated directly. Returns ErrDuplicateExternalID when the
	// external id is already taken.
	CreateResource(ctx context.Context, resourceClass, domain, externalID string, credentials *Credentials) (Resource, error)

	// DeleteResource removes a secured resource and its grants.
	DeleteResource(ctx context.Context, resource Resource) error

	// GrantResourcePermissions grants the permissions on target to grantee.
	// The authority enforces that the session holds each permission with the
	// grant option.
	GrantResourcePermissions(ctx context.Context, grantee, target Resource, permissions ...Permission) error

	// AssertResourcePermissions verifies that subject holds all the
	// permissions on target, directly or through inherited grants. A missing
	// permission surfaces as *NotAuthorizedError.
	AssertResourcePermissions(ctx context.Context, subject, target Resource, permissions ...Permission) error

	// ResourcesByPermission returns every resource of the class on which
	// subject holds the permission.
	ResourcesByPermission(ctx context.Context, subject Resource, resourceClass string, permission Permission) ([]Resource, error)

	// SessionResource returns the resource this session is authenticated as.
	SessionResource() Resource
}

// AccessContextFactory opens fresh, unauthenticated authority sessions.
type AccessContextFactory interface {
	NewContext(ctx context.Context) (AccessContext, error)
}
