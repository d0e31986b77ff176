// Package policy maps staff roles to the record actions they may perform.
// The same table gates client affordances and the mutating API routes.
package policy

import "recordshop/internal/model"

// Action is something a staff member can do to inventory records.
type Action string

const (
	ActionView   Action = "view"
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var grants = map[model.Role]map[Action]bool{
	model.RoleClerk:   {ActionView: true, ActionAdd: true},
	model.RoleManager: {ActionView: true, ActionAdd: true, ActionUpdate: true},
	model.RoleAdmin:   {ActionView: true, ActionAdd: true, ActionUpdate: true, ActionDelete: true},
}

// Allowed reports whether role may perform action. Unknown roles get nothing.
func Allowed(role model.Role, action Action) bool {
	return grants[role][action]
}

// CanView reports whether role may read records.
func CanView(role model.Role) bool { return Allowed(role, ActionView) }

// CanAdd reports whether role may create records.
func CanAdd(role model.Role) bool { return Allowed(role, ActionAdd) }

// CanUpdate reports whether role may edit records.
func CanUpdate(role model.Role) bool { return Allowed(role, ActionUpdate) }

// CanDelete reports whether role may remove records.
func CanDelete(role model.Role) bool { return Allowed(role, ActionDelete) }

// KnownRole reports whether role is one of the staff tiers.
func KnownRole(role model.Role) bool {
	_, ok := grants[role]
	return ok
}

// AssignmentTitle is the job title shown next to the signed-in user.
func AssignmentTitle(role model.Role) string {
	switch role {
	case model.RoleClerk:
		return "Salesperson"
	case model.RoleManager:
		return "Store Manager"
	case model.RoleAdmin:
		return "System Admin"
	default:
		return "Unknown"
	}
}
