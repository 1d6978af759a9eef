package lifecycle

import "github.com/bridge-yp/erp-backend/pkg/enums"

// DenyReason is the typed cause of an authorization rejection.
type DenyReason string

const (
	DenyInsufficientRole DenyReason = "InsufficientRole"
	DenyNotOwner         DenyReason = "NotOwner"
	DenyActionUnknown    DenyReason = "ActionUnknown"
)

// roleActions maps each non-super role to the actions it may request. The
// SUPER_ADMIN role bypasses this table entirely.
var roleActions = map[enums.ActorRole]map[enums.OrderAction]struct{}{
	enums.ActorRoleUser: {
		enums.OrderActionCancel:  {},
		enums.OrderActionArchive: {},
	},
	enums.ActorRoleAdmin: {
		enums.OrderActionReceiveAccept:   {},
		enums.OrderActionReconcileStart:  {},
		enums.OrderActionReconcileFinish: {},
		enums.OrderActionPackFinish:      {},
		enums.OrderActionShip:            {},
		enums.OrderActionOutForDelivery:  {},
		enums.OrderActionDeliver:         {},
		enums.OrderActionCancel:          {},
		enums.OrderActionDelete:          {},
		enums.OrderActionArchive:         {},
	},
}

// ownershipHolds is the per-action ownership predicate: pipeline steps belong to
// the assigned admin, CANCEL and ARCHIVE extend to the order's creator.
func ownershipHolds(action enums.OrderAction, actor ActorContext) bool {
	switch action {
	case enums.OrderActionCancel, enums.OrderActionArchive:
		return actor.IsCreator || actor.IsAssignedAdmin
	default:
		return actor.IsAssignedAdmin
	}
}

// Authorize decides whether the actor may request the action, before any
// structural validation. Returns ok=true on admit, otherwise a typed reason.
func Authorize(action enums.OrderAction, actor ActorContext) (DenyReason, bool) {
	if !action.IsValid() {
		return DenyActionUnknown, false
	}
	if actor.Role == enums.ActorRoleSuperAdmin {
		return "", true
	}

	allowed, ok := roleActions[actor.Role]
	if !ok {
		return DenyInsufficientRole, false
	}
	if _, ok := allowed[action]; !ok {
		return DenyInsufficientRole, false
	}
	if !ownershipHolds(action, actor) {
		return DenyNotOwner, false
	}
	return "", true
}
