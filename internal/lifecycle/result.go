package lifecycle

import "github.com/bridge-yp/erp-backend/pkg/enums"

// RejectionKind classifies why a requested transition was refused.
type RejectionKind string

const (
	RejectForbidden         RejectionKind = "Forbidden"
	RejectInvalidTransition RejectionKind = "InvalidTransition"
	RejectInvalidPayload    RejectionKind = "InvalidPayload"
	RejectActionUnknown     RejectionKind = "ActionUnknown"
)

// Rejection reports a refused transition. No state change is implied.
type Rejection struct {
	Kind       RejectionKind     `json:"kind"`
	Reason     DenyReason        `json:"reason,omitempty"`
	FromStatus enums.OrderStatus `json:"from_status,omitempty"`
	Action     enums.OrderAction `json:"action,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
}

// Accepted carries the computed next status and the audit record the caller
// must persist together with it.
type Accepted struct {
	ToStatus      enums.OrderStatus   `json:"to_status"`
	SystemMessage SystemMessageRecord `json:"system_message"`
}

// Result is the total outcome of Execute: exactly one of Accepted or Rejected
// is set.
type Result struct {
	Accepted *Accepted  `json:"accepted,omitempty"`
	Rejected *Rejection `json:"rejected,omitempty"`
}

// OK reports whether the transition was accepted.
func (r Result) OK() bool {
	return r.Accepted != nil
}

func rejected(rej Rejection) Result {
	return Result{Rejected: &rej}
}
