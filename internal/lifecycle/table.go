package lifecycle

import "github.com/bridge-yp/erp-backend/pkg/enums"

type transitionKey struct {
	From   enums.OrderStatus
	Action enums.OrderAction
}

// happyPath is the fixed forward sequence. Side exits (CANCEL, DELETE, ARCHIVE)
// are derived in buildTransitions so the exclusion rules live in one place.
var happyPath = map[transitionKey]enums.OrderStatus{
	{enums.OrderStatusNew, enums.OrderActionReceiveAccept}:         enums.OrderStatusReceive,
	{enums.OrderStatusReceive, enums.OrderActionReconcileStart}:    enums.OrderStatusReconcile,
	{enums.OrderStatusReconcile, enums.OrderActionReconcileFinish}: enums.OrderStatusPack,
	{enums.OrderStatusPack, enums.OrderActionPackFinish}:           enums.OrderStatusMerge,
	{enums.OrderStatusMerge, enums.OrderActionShip}:                enums.OrderStatusInTransit,
	{enums.OrderStatusInTransit, enums.OrderActionOutForDelivery}:  enums.OrderStatusOnDelivery,
	{enums.OrderStatusOnDelivery, enums.OrderActionDeliver}:        enums.OrderStatusDelivered,
}

var transitions = buildTransitions()

func buildTransitions() map[transitionKey]enums.OrderStatus {
	table := make(map[transitionKey]enums.OrderStatus, len(happyPath)+2*len(enums.AllOrderStatuses()))
	for key, to := range happyPath {
		table[key] = to
	}
	for _, status := range enums.AllOrderStatuses() {
		if status.IsTerminal() {
			continue
		}
		table[transitionKey{status, enums.OrderActionCancel}] = enums.OrderStatusCancelled
		table[transitionKey{status, enums.OrderActionDelete}] = enums.OrderStatusDeleted
	}
	// ARCHIVE applies only to request-kind orders still in NEW; the kind check
	// happens in Execute because the table is keyed on status alone.
	table[transitionKey{enums.OrderStatusNew, enums.OrderActionArchive}] = enums.OrderStatusArchived
	return table
}

// Lookup answers whether (from, action) names a defined transition and, if so,
// the resulting status. Pure and total: unknown inputs simply report false.
func Lookup(from enums.OrderStatus, action enums.OrderAction) (enums.OrderStatus, bool) {
	to, ok := transitions[transitionKey{from, action}]
	return to, ok
}
