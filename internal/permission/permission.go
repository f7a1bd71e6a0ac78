// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package permission maps user roles to fixed capability sets.
// Evaluation is pure and stateless: capabilities are derived fresh on every
// check and never cached beyond the current User object.
package permission

import "github.com/codehub-dev/codehub-go/internal/model"

// Capability names accepted by HasPermission.
const (
	CanAccessAdmin     = "canAccessAdmin"
	CanEditExercises   = "canEditExercises"
	CanDeleteExercises = "canDeleteExercises"
	CanManageUsers     = "canManageUsers"
	CanViewAnalytics   = "canViewAnalytics"
)

// CapabilitySet is the set of boolean permissions derived from a user's
// role and active status.
type CapabilitySet struct {
	CanAccessAdmin     bool `json:"canAccessAdmin"`
	CanEditExercises   bool `json:"canEditExercises"`
	CanDeleteExercises bool `json:"canDeleteExercises"`
	CanManageUsers     bool `json:"canManageUsers"`
	CanViewAnalytics   bool `json:"canViewAnalytics"`
}

// roleTable is the fixed role capability table. Privilege is strictly
// non-decreasing: user < editor < admin.
var roleTable = map[string]CapabilitySet{
	model.RoleUser: {},
	model.RoleEditor: {
		CanAccessAdmin:   true,
		CanEditExercises: true,
		CanViewAnalytics: true,
	},
	model.RoleAdmin: {
		CanAccessAdmin:     true,
		CanEditExercises:   true,
		CanDeleteExercises: true,
		CanManageUsers:     true,
		CanViewAnalytics:   true,
	},
}

// Evaluate returns the capability set for a user. A nil or inactive user has
// zero capabilities regardless of role, as does an unknown role.
func Evaluate(user *model.User) CapabilitySet {
	if user == nil || !user.IsActive {
		return CapabilitySet{}
	}
	return roleTable[user.Role]
}

// HasPermission reports whether the given role grants the named capability.
// Unknown roles and unknown capability names are both false.
func HasPermission(role, capability string) bool {
	caps, ok := roleTable[role]
	if !ok {
		return false
	}

	switch capability {
	case CanAccessAdmin:
		return caps.CanAccessAdmin
	case CanEditExercises:
		return caps.CanEditExercises
	case CanDeleteExercises:
		return caps.CanDeleteExercises
	case CanManageUsers:
		return caps.CanManageUsers
	case CanViewAnalytics:
		return caps.CanViewAnalytics
	default:
		return false
	}
}
