// Package authz centralizes role and ownership checks so handlers don't
// scatter role string comparisons across every endpoint.
package authz

import "github.com/Mwangea/RentalApartmentsBackend/models"

type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Resource string

const (
	ResourceProperty     Resource = "property"
	ResourceLease        Resource = "lease"
	ResourcePayment      Resource = "payment"
	ResourceMaintenance  Resource = "maintenance"
	ResourceNotification Resource = "notification"
	ResourceAnalytics    Resource = "analytics"
	ResourceUser         Resource = "user"
)

// Actor is the authenticated caller.
type Actor struct {
	ID   string
	Role string
}

func ActorFromUser(user models.User) Actor {
	return Actor{ID: user.ID, Role: user.Role}
}

// capabilities maps role -> resource -> permitted actions. Ownership
// restrictions (a landlord may only touch their own property) are layered on
// top with Owns.
var capabilities = map[string]map[Resource][]Action{
	models.RoleAdmin: {
		ResourceProperty:     {ActionView, ActionCreate, ActionUpdate, ActionDelete},
		ResourceLease:        {ActionView, ActionCreate, ActionUpdate},
		ResourcePayment:      {ActionView, ActionCreate},
		ResourceMaintenance:  {ActionView, ActionUpdate, ActionDelete},
		ResourceNotification: {ActionView, ActionCreate, ActionUpdate},
		ResourceAnalytics:    {ActionView, ActionCreate},
		ResourceUser:         {ActionView, ActionUpdate},
	},
	models.RoleLandlord: {
		ResourceProperty:     {ActionView, ActionCreate, ActionUpdate, ActionDelete},
		ResourceLease:        {ActionView, ActionCreate},
		ResourcePayment:      {ActionView, ActionCreate},
		ResourceMaintenance:  {ActionView, ActionUpdate},
		ResourceNotification: {ActionView, ActionCreate, ActionUpdate},
	},
	models.RoleTenant: {
		ResourceProperty:     {ActionView, ActionUpdate},
		ResourceLease:        {ActionView},
		ResourcePayment:      {ActionView, ActionCreate},
		ResourceMaintenance:  {ActionView, ActionCreate},
		ResourceNotification: {ActionView, ActionUpdate},
	},
}

// Can reports whether the actor's role permits the action on the resource.
func Can(actor Actor, resource Resource, action Action) bool {
	resources, ok := capabilities[actor.Role]
	if !ok {
		return false
	}
	for _, allowed := range resources[resource] {
		if allowed == action {
			return true
		}
	}
	return false
}

// Owns reports whether the actor may act on a resource owned by ownerID.
// Admins pass unconditionally.
func Owns(actor Actor, ownerID string) bool {
	return actor.Role == models.RoleAdmin || actor.ID == ownerID
}
