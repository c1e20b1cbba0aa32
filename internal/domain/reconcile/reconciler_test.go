package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leavedesk/internal/domain/employee"
	"leavedesk/internal/platform/metrics"
)

type fakeStore struct {
	employees map[string]*employee.Employee
	processed map[string]bool

	balanceErr error
	flagErr    error
	lookupErr  error

	balanceWrites int
	sweep         []Snapshot
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees: map[string]*employee.Employee{},
		processed: map[string]bool{},
	}
}

func (f *fakeStore) Employee(_ context.Context, userID string) (*employee.Employee, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	emp, ok := f.employees[userID]
	if !ok {
		return nil, employee.ErrNotFound
	}
	return emp, nil
}

func (f *fakeStore) Processed(_ context.Context, requestID string) (bool, error) {
	return f.processed[requestID], nil
}

func (f *fakeStore) AddVacationUsed(_ context.Context, userID string, days decimal.Decimal) error {
	if f.balanceErr != nil {
		return f.balanceErr
	}
	f.balanceWrites++
	emp := f.employees[userID]
	emp.VacationUsedDays = emp.VacationUsedDays.Add(days)
	return nil
}

func (f *fakeStore) DebitAdministrative(_ context.Context, userID string, days decimal.Decimal) error {
	if f.balanceErr != nil {
		return f.balanceErr
	}
	f.balanceWrites++
	emp := f.employees[userID]
	emp.AdministrativeDays = decimal.Max(emp.AdministrativeDays.Sub(days), decimal.Zero)
	return nil
}

func (f *fakeStore) MarkProcessed(_ context.Context, requestID string, _ time.Time) (bool, error) {
	if f.flagErr != nil {
		return false, f.flagErr
	}
	if f.processed[requestID] {
		return false, nil
	}
	f.processed[requestID] = true
	return true, nil
}

func (f *fakeStore) ApprovedUnprocessed(_ context.Context, limit int) ([]Snapshot, error) {
	var out []Snapshot
	for _, snap := range f.sweep {
		if len(out) == limit {
			break
		}
		if !f.processed[snap.ID] {
			out = append(out, snap)
		}
	}
	return out, nil
}

func days(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

func approvalPair(id, userID, leaveType string, cost *decimal.Decimal) (*Snapshot, *Snapshot) {
	before := &Snapshot{ID: id, UserID: userID, LeaveType: leaveType, RequestedDays: cost, ApprovalState: StatePending}
	after := &Snapshot{ID: id, UserID: userID, LeaveType: leaveType, RequestedDays: cost, ApprovalState: StateApproved}
	return before, after
}

func TestNoOpOnIrrelevantWrites(t *testing.T) {
	store := newFakeStore()
	store.employees["u1"] = &employee.Employee{ID: "u1", VacationUsedDays: decimal.NewFromInt(5)}
	rec := New(store, metrics.New())
	ctx := context.Background()

	before, after := approvalPair("r1", "u1", "Vacaciones", days(3))

	// Not a transition into approved.
	require.NoError(t, rec.HandleChange(ctx, before, before))

	// Already approved before the write.
	require.NoError(t, rec.HandleChange(ctx, after, after))

	// Create and delete events.
	require.NoError(t, rec.HandleChange(ctx, nil, after))
	require.NoError(t, rec.HandleChange(ctx, before, nil))

	assert.Equal(t, 0, store.balanceWrites)
	assert.False(t, store.processed["r1"])
	assert.True(t, store.employees["u1"].VacationUsedDays.Equal(decimal.NewFromInt(5)))
}

func TestDuplicateDeliverySameBalance(t *testing.T) {
	store := newFakeStore()
	store.employees["u1"] = &employee.Employee{ID: "u1", VacationUsedDays: decimal.NewFromInt(2)}
	rec := New(store, metrics.New())
	ctx := context.Background()

	before, after := approvalPair("r1", "u1", "Vacaciones", days(3))

	require.NoError(t, rec.HandleChange(ctx, before, after))
	require.NoError(t, rec.HandleChange(ctx, before, after))

	assert.Equal(t, 1, store.balanceWrites)
	assert.True(t, store.employees["u1"].VacationUsedDays.Equal(decimal.NewFromInt(5)),
		"duplicate delivery must not debit twice, got %s", store.employees["u1"].VacationUsedDays)
}

func TestVacationDebit(t *testing.T) {
	store := newFakeStore()
	store.employees["u1"] = &employee.Employee{ID: "u1", VacationUsedDays: decimal.NewFromInt(5)}
	rec := New(store, metrics.New())

	before, after := approvalPair("r1", "u1", "Vacaciones", days(4))
	require.NoError(t, rec.HandleChange(context.Background(), before, after))

	assert.True(t, store.employees["u1"].VacationUsedDays.Equal(decimal.NewFromInt(9)))
	assert.True(t, store.processed["r1"])
}

func TestAdministrativeDebitFloorsAtZero(t *testing.T) {
	store := newFakeStore()
	store.employees["u1"] = &employee.Employee{ID: "u1", AdministrativeDays: decimal.NewFromInt(3)}
	rec := New(store, metrics.New())

	before, after := approvalPair("r1", "u1", "Administrativo", days(5))
	require.NoError(t, rec.HandleChange(context.Background(), before, after))

	assert.True(t, store.employees["u1"].AdministrativeDays.IsZero(),
		"expected floor at zero, got %s", store.employees["u1"].AdministrativeDays)
	assert.True(t, store.processed["r1"])
}

func TestUnknownTypeStillMarksProcessed(t *testing.T) {
	store := newFakeStore()
	store.employees["u1"] = &employee.Employee{
		ID:                 "u1",
		VacationUsedDays:   decimal.NewFromInt(1),
		AdministrativeDays: decimal.NewFromInt(2),
	}
	rec := New(store, metrics.New())

	before, after := approvalPair("r1", "u1", "Otro", days(2))
	require.NoError(t, rec.HandleChange(context.Background(), before, after))

	assert.Equal(t, 0, store.balanceWrites)
	assert.True(t, store.processed["r1"])
	assert.True(t, store.employees["u1"].VacationUsedDays.Equal(decimal.NewFromInt(1)))
	assert.True(t, store.employees["u1"].AdministrativeDays.Equal(decimal.NewFromInt(2)))
}

func TestMissingUserIDAborts(t *testing.T) {
	store := newFakeStore()
	rec := New(store, metrics.New())

	before, after := approvalPair("r1", "", "Vacaciones", days(3))
	err := rec.HandleChange(context.Background(), before, after)

	require.ErrorIs(t, err, ErrMissingData)
	assert.False(t, store.processed["r1"], "request must stay reconcilable after a data error")
}

func TestMissingCostAborts(t *testing.T) {
	store := newFakeStore()
	store.employees["u1"] = &employee.Employee{ID: "u1"}
	rec := New(store, metrics.New())

	before, after := approvalPair("r1", "u1", "Vacaciones", nil)
	err := rec.HandleChange(context.Background(), before, after)

	require.ErrorIs(t, err, ErrMissingData)
	assert.False(t, store.processed["r1"])
	assert.Equal(t, 0, store.balanceWrites)
}

func TestUserNotFoundAborts(t *testing.T) {
	store := newFakeStore()
	rec := New(store, metrics.New())

	before, after := approvalPair("r1", "ghost", "Vacaciones", days(3))
	err := rec.HandleChange(context.Background(), before, after)

	require.ErrorIs(t, err, ErrUserNotFound)
	assert.False(t, store.processed["r1"])
}

func TestBalanceWriteFailureLeavesUnprocessed(t *testing.T) {
	store := newFakeStore()
	store.employees["u1"] = &employee.Employee{ID: "u1"}
	store.balanceErr = errors.New("connection reset")
	rec := New(store, metrics.New())

	before, after := approvalPair("r1", "u1", "Vacaciones", days(3))
	err := rec.HandleChange(context.Background(), before, after)

	require.ErrorIs(t, err, ErrBalanceWrite)
	assert.False(t, store.processed["r1"], "processed must stay false when the balance write fails")
}

func TestFlagWriteFailureSurfaces(t *testing.T) {
	store := newFakeStore()
	store.employees["u1"] = &employee.Employee{ID: "u1", VacationUsedDays: decimal.Zero}
	store.flagErr = errors.New("connection reset")
	rec := New(store, metrics.New())

	before, after := approvalPair("r1", "u1", "Vacaciones", days(3))
	err := rec.HandleChange(context.Background(), before, after)

	require.ErrorIs(t, err, ErrProcessedFlagWrite)
	// The debit landed; the error is the audit signal.
	assert.True(t, store.employees["u1"].VacationUsedDays.Equal(decimal.NewFromInt(3)))
}

func TestApprovalScenarioVacation(t *testing.T) {
	store := newFakeStore()
	store.employees["u1"] = &employee.Employee{ID: "u1", VacationUsedDays: decimal.NewFromInt(2)}
	rec := New(store, metrics.New())

	before, after := approvalPair("req-1", "u1", "Vacaciones", days(3))
	require.NoError(t, rec.HandleChange(context.Background(), before, after))

	assert.True(t, store.employees["u1"].VacationUsedDays.Equal(decimal.NewFromInt(5)))
	assert.True(t, store.processed["req-1"])
}

func TestApprovalScenarioMedicalFloor(t *testing.T) {
	store := newFakeStore()
	store.employees["u2"] = &employee.Employee{ID: "u2", AdministrativeDays: decimal.NewFromInt(4)}
	rec := New(store, metrics.New())

	before, after := approvalPair("req-2", "u2", "Permiso Médico", days(10))
	require.NoError(t, rec.HandleChange(context.Background(), before, after))

	assert.True(t, store.employees["u2"].AdministrativeDays.IsZero(),
		"expected 0, got %s", store.employees["u2"].AdministrativeDays)
	assert.True(t, store.processed["req-2"])
}

func TestRecoverReconcilesMissedApprovals(t *testing.T) {
	store := newFakeStore()
	store.employees["u1"] = &employee.Employee{ID: "u1", VacationUsedDays: decimal.Zero}
	store.sweep = []Snapshot{
		{ID: "r1", UserID: "u1", LeaveType: "Vacaciones", RequestedDays: days(2), ApprovalState: StateApproved},
		{ID: "r2", UserID: "missing-user", LeaveType: "Vacaciones", RequestedDays: days(1), ApprovalState: StateApproved},
		{ID: "r3", UserID: "u1", LeaveType: "Vacaciones", RequestedDays: days(3), ApprovalState: StateApproved},
	}
	rec := New(store, metrics.New())

	done, err := rec.Recover(context.Background(), 10)
	require.NoError(t, err)

	// r2 is terminal for this sweep but must not stop r3.
	assert.Equal(t, 2, done)
	assert.True(t, store.employees["u1"].VacationUsedDays.Equal(decimal.NewFromInt(5)))
	assert.True(t, store.processed["r1"])
	assert.False(t, store.processed["r2"])
	assert.True(t, store.processed["r3"])

	// A second sweep finds nothing new to do for r1/r3.
	done, err = rec.Recover(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 0, done)
	assert.True(t, store.employees["u1"].VacationUsedDays.Equal(decimal.NewFromInt(5)))
}

func TestFractionalHourlyCost(t *testing.T) {
	store := newFakeStore()
	store.employees["u1"] = &employee.Employee{ID: "u1", VacationUsedDays: decimal.NewFromInt(1)}
	rec := New(store, metrics.New())

	half := decimal.NewFromFloat(0.5)
	before, after := approvalPair("r1", "u1", "Vacation", &half)
	require.NoError(t, rec.HandleChange(context.Background(), before, after))

	assert.True(t, store.employees["u1"].VacationUsedDays.Equal(decimal.NewFromFloat(1.5)))
}
