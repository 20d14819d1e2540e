package kernel

import (
	"fmt"

	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

// Role represents the permission class of an acting user as supplied by the
// external identity collaborator. The role decides which mutations an actor
// may perform and whether the courier visibility filter applies to their reads.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleAdmin has full access to all orders and stock operations.
	RoleAdmin

	// RoleManager manages orders and stock but cannot act as a courier.
	RoleManager

	// RoleCourier sees only orders assigned to them for today or tomorrow
	// and may only advance the delivery sub-status of those orders.
	RoleCourier
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RoleAdmin:   "admin",
		RoleManager: "manager",
		RoleCourier: "courier",
	}
}

// RoleFromString parses a role name supplied by the identity collaborator.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// String returns the lowercase role name. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the Role value is one of the defined roles.
func (r Role) Validate() error {
	switch r {
	case RoleAdmin, RoleManager, RoleCourier:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
}

// ErrActorIsNotConstructed is returned when an Actor instance was not created
// through the NewActor constructor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError(
	"actor must be created via NewActor constructor")

// Actor is the verified identity performing an operation, resolved per request
// from a bearer credential by the external identity collaborator. Passing the
// actor explicitly through every core operation keeps permission checks
// testable in isolation; the core never reads ambient user state.
type Actor struct { //nolint:recvcheck //using for validation
	id    UUID
	role  Role
	guard guard.ConstructorGuard
}

// NewActor creates a validated Actor from a verified identity.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:    id,
		role:  role,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Actor was created through NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's unique identifier.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the actor's permission class.
func (a Actor) Role() Role {
	return a.role
}

// IsCourier reports whether the actor acts under the courier role.
func (a Actor) IsCourier() bool {
	return a.role == RoleCourier
}
