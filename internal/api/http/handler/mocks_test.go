package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tbessonov/securetodo-server/internal/model"
)

// MockUserService mocks the UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, candidate model.TodoUser) (model.TodoUser, error) {
	args := m.Called(ctx, candidate)
	return args.Get(0).(model.TodoUser), args.Error(1)
}

// MockItemService mocks the ItemService interface
type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) CreateItem(ctx context.Context, ac model.AccessContext, params model.CreateItemParams) (model.TodoItem, error) {
	args := m.Called(ctx, ac, params)
	return args.Get(0).(model.TodoItem), args.Error(1)
}

func (m *MockItemService) FindByAuthenticatedUser(ctx context.Context, ac model.AccessContext) ([]model.TodoItem, error) {
	args := m.Called(ctx, ac)
	return args.Get(0).([]model.TodoItem), args.Error(1)
}

func (m *MockItemService) UpdateItem(ctx context.Context, ac model.AccessContext, itemID int64, patch model.TodoItemPatch) (model.TodoItem, error) {
	args := m.Called(ctx, ac, itemID, patch)
	return args.Get(0).(model.TodoItem), args.Error(1)
}

func (m *MockItemService) ShareItem(ctx context.Context, ac model.AccessContext, itemID int64, email string) error {
	args := m.Called(ctx, ac, itemID, email)
	return args.Error(0)
}

// stubAccessContext is an inert authority session for handler tests; the
// handlers only move it through to the service.
type stubAccessContext struct{}

func (stubAccessContext) Authenticate(ctx context.Context, resource model.Resource, credentials model.Credentials) error {
	return nil
}

func (stubAccessContext) CreateResource(ctx context.Context, resourceClass, domain, externalID string, credentials *model.Credentials) (model.Resource, error) {
	return model.Resource{}, nil
}

func (stubAccessContext) DeleteResource(ctx context.Context, resource model.Resource) error {
	return nil
}

func (stubAccessContext) GrantResourcePermissions(ctx context.Context, grantee, target model.Resource, permissions ...model.Permission) error {
	return nil
}

func (stubAccessContext) AssertResourcePermissions(ctx context.Context, subject, target model.Resource, permissions ...model.Permission) error {
	return nil
}

func (stubAccessContext) ResourcesByPermission(ctx context.Context, subject model.Resource, resourceClass string, permission model.Permission) ([]model.Resource, error) {
	return nil, nil
}

func (stubAccessContext) SessionResource() model.Resource {
	return model.Resource{}
}
