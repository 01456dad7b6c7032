package authz

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Mwangea/RentalApartmentsBackend/models"
)

func TestCan(t *testing.T) {
	admin := Actor{ID: "a1", Role: models.RoleAdmin}
	landlord := Actor{ID: "l1", Role: models.RoleLandlord}
	tenant := Actor{ID: "t1", Role: models.RoleTenant}

	tests := []struct {
		name     string
		actor    Actor
		resource Resource
		action   Action
		want     bool
	}{
		{"admin deletes property", admin, ResourceProperty, ActionDelete, true},
		{"admin records analytics", admin, ResourceAnalytics, ActionCreate, true},
		{"landlord creates property", landlord, ResourceProperty, ActionCreate, true},
		{"landlord creates lease", landlord, ResourceLease, ActionCreate, true},
		{"landlord cannot view analytics", landlord, ResourceAnalytics, ActionView, false},
		{"landlord sends rent reminder", landlord, ResourceNotification, ActionCreate, true},
		{"tenant cannot send rent reminder", tenant, ResourceNotification, ActionCreate, false},
		{"landlord cannot delete maintenance", landlord, ResourceMaintenance, ActionDelete, false},
		{"tenant initiates payment", tenant, ResourcePayment, ActionCreate, true},
		{"tenant creates maintenance request", tenant, ResourceMaintenance, ActionCreate, true},
		{"tenant cannot create property", tenant, ResourceProperty, ActionCreate, false},
		{"tenant cannot create lease", tenant, ResourceLease, ActionCreate, false},
		{"unknown role denied", Actor{Role: "Visitor"}, ResourceProperty, ActionView, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Can(tt.actor, tt.resource, tt.action))
		})
	}
}

func TestOwns(t *testing.T) {
	admin := Actor{ID: "a1", Role: models.RoleAdmin}
	landlord := Actor{ID: "l1", Role: models.RoleLandlord}

	require.True(t, Owns(admin, "someone-else"))
	require.True(t, Owns(landlord, "l1"))
	require.False(t, Owns(landlord, "l2"))
}
