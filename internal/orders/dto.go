package orders

import (
	"github.com/google/uuid"

	"github.com/bridge-yp/erp-backend/internal/lifecycle"
	"github.com/bridge-yp/erp-backend/pkg/db/models"
	"github.com/bridge-yp/erp-backend/pkg/enums"
	"github.com/bridge-yp/erp-backend/pkg/pagination"
)

// Actor is the authenticated identity performing an order operation, as
// resolved by the gateway. Relation to a specific order is derived per call.
type Actor struct {
	UserID uuid.UUID
	Role   enums.ActorRole
}

// CreateInput carries the fields needed to open a new order.
type CreateInput struct {
	Kind        enums.OrderKind
	Title       string
	Origin      string
	Destination string
	Notes       *string
	Creator     Actor
}

// TransitionInput names the order, the requested action, and the actor.
type TransitionInput struct {
	OrderID uuid.UUID
	Action  enums.OrderAction
	Payload *lifecycle.Payload
	Actor   Actor
}

// TransitionResult returns the updated order and the audit entry appended to
// its transcript.
type TransitionResult struct {
	Order   *models.Order       `json:"order"`
	Message *models.ChatMessage `json:"message"`
}

// AssignInput sets or clears the admin responsible for an order.
type AssignInput struct {
	OrderID uuid.UUID
	AdminID *uuid.UUID
	Actor   Actor
}

// ListParams filters and paginates order listings.
type ListParams struct {
	Status         *enums.OrderStatus
	Kind           *enums.OrderKind
	CreatorID      *uuid.UUID
	AssignedAdmin  *uuid.UUID
	IncludeDeleted bool
	Pagination     pagination.Params
}

// OrderCursor is the keyset position for order listings.
type OrderCursor = pagination.Cursor

// OrderList wraps a page of orders and the cursor for the next page.
type OrderList struct {
	Items  []models.Order `json:"items"`
	Cursor string         `json:"cursor"`
}

type listOrdersParams struct {
	Status         *enums.OrderStatus
	Kind           *enums.OrderKind
	CreatorID      *uuid.UUID
	AssignedAdmin  *uuid.UUID
	IncludeDeleted bool
	Limit          int
	Cursor         *pagination.Cursor
}
