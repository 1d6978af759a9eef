package enums

import "fmt"

// OrderAction names an operation an actor can request against an order.
type OrderAction string

const (
	OrderActionReceiveAccept   OrderAction = "RECEIVE_ACCEPT"
	OrderActionReconcileStart  OrderAction = "RECONCILE_START"
	OrderActionReconcileFinish OrderAction = "RECONCILE_FINISH"
	OrderActionPackFinish      OrderAction = "PACK_FINISH"
	OrderActionShip            OrderAction = "SHIP"
	OrderActionOutForDelivery  OrderAction = "OUT_FOR_DELIVERY"
	OrderActionDeliver         OrderAction = "DELIVER"
	OrderActionCancel          OrderAction = "CANCEL"
	OrderActionDelete          OrderAction = "DELETE"
	OrderActionArchive         OrderAction = "ARCHIVE"
)

var validOrderActions = []OrderAction{
	OrderActionReceiveAccept,
	OrderActionReconcileStart,
	OrderActionReconcileFinish,
	OrderActionPackFinish,
	OrderActionShip,
	OrderActionOutForDelivery,
	OrderActionDeliver,
	OrderActionCancel,
	OrderActionDelete,
	OrderActionArchive,
}

// String implements fmt.Stringer.
func (a OrderAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known OrderAction.
func (a OrderAction) IsValid() bool {
	for _, candidate := range validOrderActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// AllOrderActions returns every known action value.
func AllOrderActions() []OrderAction {
	out := make([]OrderAction, len(validOrderActions))
	copy(out, validOrderActions)
	return out
}

// ParseOrderAction converts raw input into an OrderAction.
func ParseOrderAction(value string) (OrderAction, error) {
	for _, candidate := range validOrderActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order action %q", value)
}
