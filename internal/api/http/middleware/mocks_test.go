package middleware

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tbessonov/securetodo-server/internal/model"
)

// MockAccessContextFactory mocks the AccessContextFactory interface
type MockAccessContextFactory struct {
	mock.Mock
}

func (m *MockAccessContextFactory) NewContext(ctx context.Context) (model.AccessContext, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.AccessContext), args.Error(1)
}

// MockAccessContext mocks the AccessContext interface. Variadic permissions
// are matched as a single slice argument.
type MockAccessContext struct {
	mock.Mock
}

func (m *MockAccessContext) Authenticate(ctx context.Context, resource model.Resource, credentials model.Credentials) error {
	args := m.Called(ctx, resource, credentials)
	return args.Error(0)
}

func (m *MockAccessContext) CreateResource(ctx context.Context, resourceClass, domain, externalID string, credentials *model.Credentials) (model.Resource, error) {
	args := m.Called(ctx, resourceClass, domain, externalID, credentials)
	return args.Get(0).(model.Resource), args.Error(1)
}

func (m *MockAccessContext) DeleteResource(ctx context.Context, resource model.Resource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

func (m *MockAccessContext) GrantResourcePermissions(ctx context.Context, grantee, target model.Resource, permissions ...model.Permission) error {
	args := m.Called(ctx, grantee, target, permissions)
	return args.Error(0)
}

func (m *MockAccessContext) AssertResourcePermissions(ctx context.Context, subject, target model.Resource, permissions ...model.Permission) error {
	args := m.Called(ctx, subject, target, permissions)
	return args.Error(0)
}

func (m *MockAccessContext) ResourcesByPermission(ctx context.Context, subject model.Resource, resourceClass string, permission model.Permission) ([]model.Resource, error) {
	args := m.Called(ctx, subject, resourceClass, permission)
	return args.Get(0).([]model.Resource), args.Error(1)
}

func (m *MockAccessContext) SessionResource() model.Resource {
	args := m.Called()
	return args.Get(0).(model.Resource)
}
