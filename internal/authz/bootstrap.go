package authz

import (
	"fmt"

	"github.com/panaderia-next/internal/constants"
)

// RoleSeed is one built-in role definition.
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds defines the bakery's role matrix. The owner can do
// everything, bakers run kitchen and catalog operations, drivers see
// and update only the delivery surface.
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleOwner,
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
		{
			Role: constants.RoleBaker,
			Policies: []Policy{
				{Object: "/admin/dashboard", Action: "GET"},
				{Object: "/admin/orders", Action: "GET"},
				{Object: "/admin/orders/:id", Action: "GET"},
				{Object: "/admin/orders/:id/status", Action: "PATCH"},
				{Object: "/admin/orders/:id/cancel", Action: "POST"},
				{Object: "/admin/orders/:id/notes", Action: "*"},
				{Object: "/admin/deliveries/*", Action: "*"},
				{Object: "/admin/deliveries", Action: "GET"},
				{Object: "/admin/menu-items", Action: "*"},
				{Object: "/admin/menu-items/:id", Action: "*"},
				{Object: "/admin/inventory", Action: "*"},
				{Object: "/admin/inventory/:id", Action: "*"},
				{Object: "/admin/inventory/:id/adjust", Action: "POST"},
				{Object: "/admin/issues", Action: "GET"},
				{Object: "/admin/issues/:id", Action: "*"},
			},
		},
		{
			Role: constants.RoleDriver,
			Policies: []Policy{
				{Object: "/admin/deliveries", Action: "GET"},
				{Object: "/admin/deliveries/:id/start", Action: "POST"},
				{Object: "/admin/deliveries/:id/delivered", Action: "POST"},
				{Object: "/admin/deliveries/:id/failed", Action: "POST"},
				{Object: "/admin/deliveries/:id/notes", Action: "PATCH"},
				{Object: "/admin/orders/:id", Action: "GET"},
			},
		},
	}
}

// BootstrapBuiltinRoles seeds the role matrix. Existing rules are
// left untouched, so owner customizations survive restarts.
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor); err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
