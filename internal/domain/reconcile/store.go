package reconcile

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"leavedesk/internal/domain/employee"
)

// PgStore backs the reconciler with the shared pool. Balance writes delegate
// to the employee store's atomic statements; the claim is a conditional
// single-row update.
type PgStore struct {
	DB        *pgxpool.Pool
	Employees *employee.Store
}

func NewPgStore(pool *pgxpool.Pool, employees *employee.Store) *PgStore {
	return &PgStore{DB: pool, Employees: employees}
}

func (s *PgStore) Employee(ctx context.Context, userID string) (*employee.Employee, error) {
	return s.Employees.ByID(ctx, userID)
}

func (s *PgStore) AddVacationUsed(ctx context.Context, userID string, days decimal.Decimal) error {
	return s.Employees.AddVacationUsed(ctx, userID, days)
}

func (s *PgStore) DebitAdministrative(ctx context.Context, userID string, days decimal.Decimal) error {
	return s.Employees.DebitAdministrative(ctx, userID, days)
}

// Processed reads the durable idempotency flag. A deleted request reports
// true so redelivered events for it become no-ops.
func (s *PgStore) Processed(ctx context.Context, requestID string) (bool, error) {
	var processed bool
	err := s.DB.QueryRow(ctx, `
    SELECT processed FROM leave_requests WHERE id = $1
  `, requestID).Scan(&processed)
	if errors.Is(err, pgx.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return processed, nil
}

// MarkProcessed sets the idempotency flag only if it is still unset. A false
// return with no error means another invocation claimed the request first.
func (s *PgStore) MarkProcessed(ctx context.Context, requestID string, at time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET processed = true, processed_at = $2, updated_at = $2
    WHERE id = $1 AND processed = false
  `, requestID, at)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PgStore) ApprovedUnprocessed(ctx context.Context, limit int) ([]Snapshot, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, user_id, section, leave_type, requested_days, approval_state, processed
    FROM leave_requests
    WHERE approval_state = $1 AND processed = false
    ORDER BY updated_at
    LIMIT $2
  `, StateApproved, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.UserID, &snap.Section, &snap.LeaveType,
			&snap.RequestedDays, &snap.ApprovalState, &snap.Processed); err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}
