package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tbessonov/securetodo-server/internal/model"
)

// MockUserStore mocks the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Insert(ctx context.Context, user model.TodoUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (model.TodoUser, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.TodoUser), args.Error(1)
}

// MockItemStore mocks the ItemStore interface
type MockItemStore struct {
	mock.Mock
}

func (m *MockItemStore) Insert(ctx context.Context, params model.CreateItemParams) (int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemStore) Update(ctx context.Context, item model.TodoItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemStore) GetByID(ctx context.Context, id int64) (model.TodoItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.TodoItem), args.Error(1)
}

func (m *MockItemStore) GetByIDs(ctx context.Context, ids []int64) ([]model.TodoItem, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]model.TodoItem), args.Error(1)
}

// MockAccessContextFactory mocks the AccessContextFactory interface
type MockAccessContextFactory struct {
	mock.Mock
}

func (m *MockAccessContextFactory) NewContext(ctx context.Context) (model.AccessContext, error) {
	args := m.Called(ctx)
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
