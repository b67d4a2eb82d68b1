// Package security holds the fixed security model the service shares with the
// authorization authority: the application domain, the resource classes, the
// permission set, and the bootstrap role resources.
package security

import "github.com/tbessonov/securetodo-server/internal/model"

// Application domain and resource classes registered in the authority.
const (
	Domain = "secure-todo"

	ResourceClassUser = "user"
	ResourceClassTodo = "todo"
)

// Permissions defined on todo resources. INHERIT propagates a role's
// capabilities to the grantee.
var (
	PermInherit            = model.NewPermission("INHERIT")
	PermView               = model.NewPermission("VIEW")
	PermGrantView          = model.NewPermissionWithGrantOption("VIEW")
	PermEdit               = model.NewPermission("EDIT")
	PermMarkCompleted      = model.NewPermission("MARK-COMPLETED")
	PermGrantMarkCompleted = model.NewPermissionWithGrantOption("MARK-COMPLETED")
)

// Roles carries the fixed role resources and the helper credentials used to
// assign them. Loaded from configuration at startup and injected into the
// services.
type Roles struct {
	// TodoCreator is the role resource granting the capability to create
	// todo items. New users receive INHERIT on it.
	TodoCreator model.Resource

	// RoleHelper is the system principal authorized to grant the todo-creator
	// role, and its credentials.
	RoleHelper            model.Resource
	RoleHelperCredentials model.Credentials
}
