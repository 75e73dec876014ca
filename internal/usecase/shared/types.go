package shared

import (
	"rentmart/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated principal, passed explicitly to every command
// and query so the workflow can be exercised without any HTTP context.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}

func (a Actor) IsVendor() bool {
	return a.Role == user.RoleVendor
}
