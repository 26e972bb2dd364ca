package permission

import (
	vo "helpdesk/internal/domain/permission/value_objects"
)

// PermissionEnforcer answers whether a role may perform an action on a resource.
type PermissionEnforcer interface {
	Enforce(role string, resource vo.Resource, action vo.Action) (bool, error)
	AddPolicy(role string, resource vo.Resource, action vo.Action) error
	RemovePolicy(role string, resource vo.Resource, action vo.Action) error
	GetPermissionsForRole(role string) ([][]string, error)
	LoadPolicy() error
}
