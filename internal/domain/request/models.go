package request

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatePending  = "pending"
	StateApproved = "approved"
	StateRejected = "rejected"
)

const (
	TypeVacation         = "Vacaciones"
	TypeVacationEN       = "Vacation"
	TypeAdministrative   = "Administrativo"
	TypeMedical          = "Permiso Médico"
	TypeAdministrativeEN = "Administrative"
	TypeMedicalEN        = "Medical Leave"
)

type LeaveRequest struct {
	ID            string           `json:"id"`
	UserID        string           `json:"userId"`
	Section       string           `json:"section"`
	LeaveType     string           `json:"leaveType"`
	PeriodStart   time.Time        `json:"periodStart"`
	PeriodEnd     time.Time        `json:"periodEnd"`
	IsHourly      bool             `json:"isHourly"`
	RequestedHrs  *decimal.Decimal `json:"requestedHours,omitempty"`
	RequestedDays decimal.Decimal  `json:"requestedDays"`
	ApprovalState string           `json:"approvalState"`
	DecidedBy     string           `json:"decidedBy,omitempty"`
	DecidedAt     *time.Time       `json:"decidedAt,omitempty"`
	Processed     bool             `json:"processed"`
	ProcessedAt   *time.Time       `json:"processedAt,omitempty"`
	Reason        string           `json:"reason,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

type NewRequest struct {
	LeaveType   string           `json:"leaveType"`
	PeriodStart time.Time        `json:"periodStart"`
	PeriodEnd   time.Time        `json:"periodEnd"`
	IsHourly    bool             `json:"isHourly"`
	Hours       *decimal.Decimal `json:"hours"`
	Reason      string           `json:"reason"`
}
