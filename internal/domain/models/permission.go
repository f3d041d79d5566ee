// internal/domain/models/permission.go
package models

// Action is the verb half of a permission grant.
type Action string

// Module names the resource kind a permission applies to.
type Module string

const (
	ActionCreate Action = "CREATE"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

const (
	ModuleUsers    Module = "USERS"
	ModuleTeams    Module = "TEAMS"
	ModuleRequests Module = "REQUESTS"
)

// Permission grants one action on one module.
//
// The action is serialised as "name" because that is what the web
// client and older backend releases exchange.
type Permission struct {
	Action Action `bson:"name" json:"name"`
	Module Module `bson:"module" json:"module"`
}

// AllPermissions returns every CREATE/UPDATE/DELETE grant for every module.
// Used when bootstrapping the first administrator.
func AllPermissions() []Permission {
	modules := []Module{ModuleUsers, ModuleTeams, ModuleRequests}
	actions := []Action{ActionCreate, ActionUpdate, ActionDelete}
	out := make([]Permission, 0, len(modules)*len(actions))
	for _, m := range modules {
		for _, a := range actions {
			out = append(out, Permission{Action: a, Module: m})
		}
	}
	return out
}

// Valid reports whether both halves name a known action and module.
func (p Permission) Valid() bool {
	switch p.Action {
	case ActionCreate, ActionUpdate, ActionDelete:
	default:
		return false
	}
	switch p.Module {
	case ModuleUsers, ModuleTeams, ModuleRequests:
		return true
	}
	return false
}
