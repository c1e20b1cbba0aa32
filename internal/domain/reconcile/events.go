package reconcile

import "github.com/shopspring/decimal"

// Snapshot is the reconciler's view of a leave-request row at one point in
// time. The change feed delivers a before/after pair of these for every
// write; the recovery sweep synthesizes an after-snapshot from current state.
//
// RequestedDays is a pointer so an absent or non-numeric cost is
// distinguishable from zero.
type Snapshot struct {
	ID            string           `json:"id"`
	UserID        string           `json:"user_id"`
	Section       string           `json:"section"`
	LeaveType     string           `json:"leave_type"`
	RequestedDays *decimal.Decimal `json:"requested_days"`
	ApprovalState string           `json:"approval_state"`
	Processed     bool             `json:"processed"`
}

const (
	StatePending  = "pending"
	StateApproved = "approved"
	StateRejected = "rejected"
)

type balanceEffect int

const (
	effectNone balanceEffect = iota
	effectVacation
	effectAdministrative
)

// effectFor maps a leave type to its balance effect. The app predates its
// own translation layer, so both Spanish and English labels occur in stored
// requests.
func effectFor(leaveType string) balanceEffect {
	switch leaveType {
	case "Vacaciones", "Vacation":
		return effectVacation
	case "Administrativo", "Permiso Médico", "Administrative", "Medical Leave":
		return effectAdministrative
	default:
		return effectNone
	}
}
