package permission

import (
	"testing"

	"github.com/codehub-dev/codehub-go/internal/model"
)

func TestEvaluateInactiveAdminHasNothing(t *testing.T) {
	user := &model.User{ID: "u1", Role: model.RoleAdmin, IsActive: false}

	caps := Evaluate(user)
	if caps != (CapabilitySet{}) {
		t.Errorf("inactive admin should have zero capabilities, got %+v", caps)
	}
}

func TestEvaluateNilUser(t *testing.T) {
	if caps := Evaluate(nil); caps != (CapabilitySet{}) {
		t.Errorf("nil user should have zero capabilities, got %+v", caps)
	}
}

func TestEvaluateRoles(t *testing.T) {
	tests := []struct {
		role     string
		expected CapabilitySet
	}{
		{model.RoleUser, CapabilitySet{}},
		{model.RoleEditor, CapabilitySet{
			CanAccessAdmin:   true,
			CanEditExercises: true,
			CanViewAnalytics: true,
		}},
		{model.RoleAdmin, CapabilitySet{
			CanAccessAdmin:     true,
			CanEditExercises:   true,
			CanDeleteExercises: true,
			CanManageUsers:     true,
			CanViewAnalytics:   true,
		}},
		{"superuser", CapabilitySet{}},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			caps := Evaluate(&model.User{Role: tt.role, IsActive: true})
			if caps != tt.expected {
				t.Errorf("Evaluate(%s) = %+v, want %+v", tt.role, caps, tt.expected)
			}
		})
	}
}

func TestPrivilegeIsNonDecreasing(t *testing.T) {
	// Every capability granted to a lower role must be granted to all
	// higher roles.
	order := []string{model.RoleUser, model.RoleEditor, model.RoleAdmin}
	capabilities := []string{
		CanAccessAdmin, CanEditExercises, CanDeleteExercises,
		CanManageUsers, CanViewAnalytics,
	}

	for i := 0; i < len(order)-1; i++ {
		for _, c := range capabilities {
			if HasPermission(order[i], c) && !HasPermission(order[i+1], c) {
				t.Errorf("role %s grants %s but higher role %s does not", order[i], c, order[i+1])
			}
		}
	}
}

func TestHasPermissionUnknowns(t *testing.T) {
	if HasPermission("ghost", CanAccessAdmin) {
		t.Error("unknown role should grant nothing")
	}
	if HasPermission(model.RoleAdmin, "canDoAnything") {
		t.Error("unknown capability should be false")
	}
}
