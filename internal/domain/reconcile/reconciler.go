package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"leavedesk/internal/domain/employee"
	"leavedesk/internal/platform/metrics"
)

// Store is the I/O surface the reconciler needs. Balance writes must be
// atomic single statements and MarkProcessed must be conditional on the flag
// still being unset, so concurrent deliveries cannot double-apply.
type Store interface {
	Employee(ctx context.Context, userID string) (*employee.Employee, error)
	Processed(ctx context.Context, requestID string) (bool, error)
	AddVacationUsed(ctx context.Context, userID string, days decimal.Decimal) error
	DebitAdministrative(ctx context.Context, userID string, days decimal.Decimal) error
	MarkProcessed(ctx context.Context, requestID string, at time.Time) (bool, error)
	ApprovedUnprocessed(ctx context.Context, limit int) ([]Snapshot, error)
}

// Reconciler applies the one-time balance consequence of an approval. It is
// stateless; every invocation is a pure function of the before/after pair
// plus the store calls at the edges.
type Reconciler struct {
	Store   Store
	Metrics *metrics.Collector
}

func New(store Store, collector *metrics.Collector) *Reconciler {
	return &Reconciler{Store: store, Metrics: collector}
}

// HandleChange reacts to one write on a leave-request row. It is a no-op
// unless this exact write is the transition into approved and the request has
// not been processed yet. Creates and deletes (a nil snapshot on either side)
// never qualify.
func (r *Reconciler) HandleChange(ctx context.Context, before, after *Snapshot) error {
	if before == nil || after == nil {
		return nil
	}
	if before.ApprovalState == StateApproved || after.ApprovalState != StateApproved {
		r.Metrics.Skipped()
		return nil
	}
	if after.Processed {
		r.Metrics.Skipped()
		return nil
	}
	return r.apply(ctx, after)
}

// Recover reconciles requests that are approved but unprocessed, i.e.
// approvals whose change notification was lost while the listener was down.
// Eligibility is re-derived from current state; the claim inside apply keeps
// this path exactly as idempotent as the event path.
func (r *Reconciler) Recover(ctx context.Context, limit int) (int, error) {
	pending, err := r.Store.ApprovedUnprocessed(ctx, limit)
	if err != nil {
		return 0, err
	}

	done := 0
	for i := range pending {
		if err := r.apply(ctx, &pending[i]); err != nil {
			// Terminal data errors are logged inside apply; keep sweeping.
			if errors.Is(err, ErrMissingData) || errors.Is(err, ErrUserNotFound) {
				continue
			}
			return done, err
		}
		done++
	}
	return done, nil
}

func (r *Reconciler) apply(ctx context.Context, after *Snapshot) error {
	// The event snapshot can be stale on redelivery; the durable flag is
	// the idempotency source of truth.
	done, err := r.Store.Processed(ctx, after.ID)
	if err != nil {
		return fmt.Errorf("read processed state for request %s: %w", after.ID, err)
	}
	if done {
		r.Metrics.Skipped()
		return nil
	}

	if missing := missingFields(after); len(missing) > 0 {
		r.Metrics.MissingData()
		slog.Error("reconcile aborted, request data incomplete",
			"requestId", after.ID, "missing", strings.Join(missing, ","))
		return fmt.Errorf("%w: request %s missing %s", ErrMissingData, after.ID, strings.Join(missing, ", "))
	}

	emp, err := r.Store.Employee(ctx, after.UserID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			r.Metrics.UserNotFound()
			slog.Error("reconcile aborted, employee missing",
				"requestId", after.ID, "userId", after.UserID)
			return fmt.Errorf("%w: request %s user %s", ErrUserNotFound, after.ID, after.UserID)
		}
		return fmt.Errorf("load employee for request %s: %w", after.ID, err)
	}

	cost := *after.RequestedDays

	switch effectFor(after.LeaveType) {
	case effectVacation:
		if err := r.Store.AddVacationUsed(ctx, emp.ID, cost); err != nil {
			r.Metrics.BalanceWriteErr()
			return fmt.Errorf("%w: request %s: %v", ErrBalanceWrite, after.ID, err)
		}
		slog.Info("vacation balance debited",
			"requestId", after.ID, "userId", emp.ID, "days", cost.String())
	case effectAdministrative:
		if err := r.Store.DebitAdministrative(ctx, emp.ID, cost); err != nil {
			r.Metrics.BalanceWriteErr()
			return fmt.Errorf("%w: request %s: %v", ErrBalanceWrite, after.ID, err)
		}
		slog.Info("administrative balance debited",
			"requestId", after.ID, "userId", emp.ID, "days", cost.String())
	default:
		slog.Info("leave type has no balance effect",
			"requestId", after.ID, "leaveType", after.LeaveType)
	}

	// Balance first, then the flag. Nothing may run between these two
	// store calls: the gap is the one window where a crash leaves a debit
	// without its marker.
	claimed, err := r.Store.MarkProcessed(ctx, after.ID, time.Now().UTC())
	if err != nil {
		r.Metrics.FlagWriteErr()
		slog.Error("processed flag write failed after balance write, manual audit needed",
			"requestId", after.ID, "userId", emp.ID)
		return fmt.Errorf("%w: request %s: %v", ErrProcessedFlagWrite, after.ID, err)
	}
	if !claimed {
		// A concurrent invocation won the claim after our balance write
		// already landed. The debit may exist twice; flag it for audit.
		r.Metrics.Duplicate()
		slog.Error("request claimed by concurrent invocation after balance write, manual audit needed",
			"requestId", after.ID, "userId", emp.ID)
		return nil
	}

	r.Metrics.Reconciled()
	return nil
}

func missingFields(s *Snapshot) []string {
	var missing []string
	if s.UserID == "" {
		missing = append(missing, "userId")
	}
	if s.LeaveType == "" {
		missing = append(missing, "leaveType")
	}
	if s.RequestedDays == nil || s.RequestedDays.IsNegative() {
		missing = append(missing, "requestedDays")
	}
	return missing
}
