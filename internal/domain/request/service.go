package request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leavedesk/internal/domain/employee"
)

var (
	ErrForbidden   = errors.New("forbidden")
	ErrUnknownType = errors.New("unknown leave type")
)

var knownTypes = map[string]bool{
	TypeVacation:         true,
	TypeVacationEN:       true,
	TypeAdministrative:   true,
	TypeAdministrativeEN: true,
	TypeMedical:          true,
	TypeMedicalEN:        true,
	"Otro":               true,
	"Other":              true,
}

type Service struct {
	Store        *Store
	Employees    *employee.Store
	WorkdayHours float64
}

func NewService(store *Store, employees *employee.Store, workdayHours float64) *Service {
	return &Service{Store: store, Employees: employees, WorkdayHours: workdayHours}
}

// Submit validates the payload, computes the day cost once, stamps the
// requester's section and creates the request in pending state.
func (s *Service) Submit(ctx context.Context, userID string, payload NewRequest) (*LeaveRequest, error) {
	if !knownTypes[payload.LeaveType] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, payload.LeaveType)
	}

	emp, err := s.Employees.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cost, err := Cost(payload, s.WorkdayHours)
	if err != nil {
		return nil, err
	}

	lr := LeaveRequest{
		UserID:        userID,
		Section:       emp.Section,
		LeaveType:     payload.LeaveType,
		PeriodStart:   payload.PeriodStart,
		PeriodEnd:     payload.PeriodEnd,
		IsHourly:      payload.IsHourly,
		RequestedHrs:  payload.Hours,
		RequestedDays: cost,
		ApprovalState: StatePending,
		Reason:        payload.Reason,
	}

	id, err := s.Store.Create(ctx, lr)
	if err != nil {
		return nil, err
	}
	return s.Store.ByID(ctx, id)
}

func (s *Service) Get(ctx context.Context, id, callerID string, callerIsAdmin bool) (*LeaveRequest, error) {
	lr, err := s.Store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lr.UserID != callerID && !callerIsAdmin {
		return nil, ErrForbidden
	}
	return lr, nil
}

func (s *Service) Cancel(ctx context.Context, id, callerID string) error {
	return s.Store.Cancel(ctx, id, callerID)
}

// Decide is the administrative transition. Section admins decide for their
// own section only; master accounts decide anywhere.
func (s *Service) Decide(ctx context.Context, id string, approve bool, decider *employee.Employee) (*LeaveRequest, error) {
	lr, err := s.Store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !decider.IsMaster && lr.Section != decider.Section {
		return nil, ErrForbidden
	}

	state := StateRejected
	if approve {
		state = StateApproved
	}
	if err := s.Store.Decide(ctx, id, state, decider.ID, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.Store.ByID(ctx, id)
}
