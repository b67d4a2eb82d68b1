package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tbessonov/securetodo-server/internal/logger"
	"github.com/tbessonov/securetodo-server/internal/model"
	"github.com/tbessonov/securetodo-server/internal/security"
)

// User coordinates user enrollment across the domain store and the
// authorization authority.
type User struct {
	userStore model.UserStore
	authority model.AccessContextFactory
	roles     security.Roles
	logger    *logger.Logger
}

// NewUser creates a new User service.
func NewUser(
	userStore model.UserStore,
	authority model.AccessContextFactory,
	roles security.Roles,
	logger *logger.Logger,
) *User {
	return &User{
		userStore: userStore,
		authority: authority,
		roles:     roles,
		logger:    logger,
	}
}

// CreateUser enrolls a new user. The user's resource is created in the
// authority first; it is the authoritative source of email uniqueness, so on
// any later failure the resource is deleted again before the failure
// propagates. The returned user carries no password material.
func (s *User) CreateUser(ctx context.Context, candidate model.TodoUser) (model.TodoUser, error) {
	if err := validateUserForCreation(candidate); err != nil {
		return model.TodoUser{}, err
	}

	newUser := model.TodoUser{
		Email:    strings.ToLower(candidate.Email),
		Password: candidate.Password,
	}

	s.logger.Debug("User service: enrolling user",
		"email", newUser.Email)

	ac, err := s.authority.NewContext(ctx)
	if err != nil {
		return model.TodoUser{}, fmt.Errorf("failed to open authority session: %w", err)
	}

	userResource, err := s.createUserResource(ctx, ac, newUser)
	if err != nil {
		return model.TodoUser{}, err
	}

	if err := s.finishEnrollment(ctx, userResource, newUser); err != nil {
		// Roll back the resource creation; leaving the resource behind would
		// permanently block re-registration with this email. A failed
		// rollback is logged, the enrollment failure is what propagates.
		if delErr := ac.DeleteResource(ctx, userResource); delErr != nil {
			s.logger.Error("User service: failed to roll back user resource",
				"email", newUser.Email,
				"error", delErr.Error())
		}
		s.logger.Error("User service: enrollment failed",
			"email", newUser.Email,
			"error", err.Error())
		return model.TodoUser{}, err
	}

	s.logger.Info("User service: user enrolled",
		"email", newUser.Email)

	return model.TodoUser{Email: newUser.Email}, nil
}

func (s *User) createUserResource(ctx context.Context, ac model.AccessContext, user model.TodoUser) (model.Resource, error) {
	resource, err := ac.CreateResource(ctx,
		security.ResourceClassUser,
		security.Domain,
		user.Email,
		&model.Credentials{Password: user.Password})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateExternalID) {
			return model.Resource{}, model.NewInvalidInput("a todo user with email %s already exists", user.Email)
		}
		return model.Resource{}, fmt.Errorf("failed to create user resource: %w", err)
	}

	return resource, nil
}

func (s *User) finishEnrollment(ctx context.Context, userResource model.Resource, user model.TodoUser) error {
	if err := s.assignUserRoles(ctx, userResource); err != nil {
		return err
	}

	// The password lives only in the authority; the domain store keeps the
	// normalized email.
	if err := s.userStore.Insert(ctx, model.TodoUser{Email: user.Email}); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// assignUserRoles grants the new user INHERIT on the todo-creator role so the
// user acquires its capabilities transitively. The grant runs in a separate
// session authenticated as the role helper principal.
func (s *User) assignUserRoles(ctx context.Context, userResource model.Resource) error {
	roleCtx, err := s.authority.NewContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to open role helper session: %w", err)
	}

	if err := roleCtx.Authenticate(ctx, s.roles.RoleHelper, s.roles.RoleHelperCredentials); err != nil {
		return fmt.Errorf("failed to authenticate role helper: %w", err)
	}

	if err := roleCtx.GrantResourcePermissions(ctx, userResource, s.roles.TodoCreator, security.PermInherit); err != nil {
		return fmt.Errorf("failed to grant creator role: %w", err)
	}

	return nil
}

func validateUserForCreation(user model.TodoUser) error {
	if err := validateEmail(user.Email); err != nil {
		return err
	}
	if user.Password == "" {
		return model.NewInvalidInput("password is required")
	}

	return nil
}
