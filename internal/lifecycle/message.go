package lifecycle

import (
	"time"

	"github.com/bridge-yp/erp-backend/pkg/enums"
	"github.com/google/uuid"
)

// SystemMessageRecord is the immutable audit entry describing one accepted
// transition. It is appended to the order's chat transcript by the caller;
// the per-chat sequence number is assigned at append time, not here.
type SystemMessageRecord struct {
	Kind       enums.ChatMessageKind `json:"kind"`
	FromStatus enums.OrderStatus     `json:"from_status"`
	ToStatus   enums.OrderStatus     `json:"to_status"`
	Action     enums.OrderAction     `json:"action"`
	ActorID    uuid.UUID             `json:"actor_id"`
	ActorRole  enums.ActorRole       `json:"actor_role"`
	AtISO      string                `json:"at_iso"`
	Payload    *Payload              `json:"payload,omitempty"`
}

func buildSystemMessage(order OrderView, toStatus enums.OrderStatus, action enums.OrderAction, actor ActorContext, payload *Payload, now time.Time) SystemMessageRecord {
	return SystemMessageRecord{
		Kind:       enums.ChatMessageKindStatusChange,
		FromStatus: order.Status,
		ToStatus:   toStatus,
		Action:     action,
		ActorID:    actor.UserID,
		ActorRole:  actor.Role,
		AtISO:      now.UTC().Format(time.RFC3339),
		Payload:    payload,
	}
}
