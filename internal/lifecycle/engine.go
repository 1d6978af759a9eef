// Package lifecycle implements the shipment status state machine: one explicit
// transition table, a role/ownership guard, and payload validation, combined by
// Execute into a pure decision. The engine performs no I/O; callers persist the
// accepted status and append the audit record under their own transaction, with
// a compare-and-swap on the status the engine validated against.
package lifecycle

import (
	"time"

	"github.com/bridge-yp/erp-backend/pkg/enums"
)

// Execute validates the requested action against the order snapshot and actor
// context. It is a pure function of its inputs: calling it twice with the same
// arguments yields the same result, and a rejected result implies no state
// change anywhere.
func Execute(order OrderView, action enums.OrderAction, actor ActorContext, payload *Payload, now time.Time) Result {
	if reason, ok := Authorize(action, actor); !ok {
		if reason == DenyActionUnknown {
			return rejected(Rejection{
				Kind:       RejectActionUnknown,
				Reason:     reason,
				FromStatus: order.Status,
				Action:     action,
			})
		}
		return rejected(Rejection{
			Kind:       RejectForbidden,
			Reason:     reason,
			FromStatus: order.Status,
			Action:     action,
		})
	}

	toStatus, ok := Lookup(order.Status, action)
	if !ok {
		return rejected(Rejection{
			Kind:       RejectInvalidTransition,
			FromStatus: order.Status,
			Action:     action,
		})
	}
	if action == enums.OrderActionArchive && order.Kind != enums.OrderKindRequest {
		return rejected(Rejection{
			Kind:       RejectInvalidTransition,
			FromStatus: order.Status,
			Action:     action,
		})
	}

	clean := payload.sanitized()
	if details := validatePayload(action, clean); details != nil {
		return rejected(Rejection{
			Kind:       RejectInvalidPayload,
			FromStatus: order.Status,
			Action:     action,
			Details:    details,
		})
	}

	return Result{Accepted: &Accepted{
		ToStatus:      toStatus,
		SystemMessage: buildSystemMessage(order, toStatus, action, actor, clean, now),
	}}
}
