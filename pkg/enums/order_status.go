package enums

import "fmt"

// OrderStatus tracks the lifecycle of an order through the shipment pipeline.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "NEW"
	OrderStatusReceive    OrderStatus = "RECEIVE"
	OrderStatusReconcile  OrderStatus = "RECONCILE"
	OrderStatusPack       OrderStatus = "PACK"
	OrderStatusMerge      OrderStatus = "MERGE"
	OrderStatusInTransit  OrderStatus = "IN_TRANSIT"
	OrderStatusOnDelivery OrderStatus = "ON_DELIVERY"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusDeleted    OrderStatus = "DELETED"
	OrderStatusArchived   OrderStatus = "ARCHIVED"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusReceive,
	OrderStatusReconcile,
	OrderStatusPack,
	OrderStatusMerge,
	OrderStatusInTransit,
	OrderStatusOnDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusDeleted,
	OrderStatusArchived,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusDelivered, OrderStatusCancelled, OrderStatusDeleted, OrderStatusArchived:
		return true
	default:
		return false
	}
}

// AllOrderStatuses returns every known status value.
func AllOrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(validOrderStatuses))
	copy(out, validOrderStatuses)
	return out
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
