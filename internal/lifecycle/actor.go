package lifecycle

import (
	"github.com/bridge-yp/erp-backend/pkg/enums"
	"github.com/google/uuid"
)

// ActorContext carries the already-authenticated identity invoking an action,
// plus its resolved relation to the order. Authentication and relation lookup
// happen upstream; the engine never touches session state.
type ActorContext struct {
	UserID          uuid.UUID
	Role            enums.ActorRole
	IsCreator       bool
	IsAssignedAdmin bool
}

// OrderView is the minimal order snapshot the engine validates against.
type OrderView struct {
	ID     uuid.UUID
	Status enums.OrderStatus
	Kind   enums.OrderKind
}
