package request

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("leave request not found")
	ErrInvalidState = errors.New("leave request is not pending")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const requestColumns = `
    id, user_id, section, leave_type, period_start, period_end, is_hourly,
    requested_hours, requested_days, approval_state, COALESCE(decided_by::text, ''),
    decided_at, processed, processed_at, reason, created_at, updated_at`

func scanRequest(row pgx.Row) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.UserID, &lr.Section, &lr.LeaveType, &lr.PeriodStart,
		&lr.PeriodEnd, &lr.IsHourly, &lr.RequestedHrs, &lr.RequestedDays,
		&lr.ApprovalState, &lr.DecidedBy, &lr.DecidedAt, &lr.Processed,
		&lr.ProcessedAt, &lr.Reason, &lr.CreatedAt, &lr.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (s *Store) Create(ctx context.Context, lr LeaveRequest) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (user_id, section, leave_type, period_start, period_end,
                                is_hourly, requested_hours, requested_days, approval_state, reason)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id
  `, lr.UserID, lr.Section, lr.LeaveType, lr.PeriodStart, lr.PeriodEnd,
		lr.IsHourly, lr.RequestedHrs, lr.RequestedDays, StatePending, lr.Reason).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ByID(ctx context.Context, id string) (*LeaveRequest, error) {
	return scanRequest(s.DB.QueryRow(ctx, `
    SELECT`+requestColumns+`
    FROM leave_requests
    WHERE id = $1
  `, id))
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error) {
	return s.list(ctx, `
    SELECT`+requestColumns+`
    FROM leave_requests
    WHERE user_id = $1
    ORDER BY created_at DESC
  `, userID)
}

func (s *Store) ListBySection(ctx context.Context, section string) ([]LeaveRequest, error) {
	return s.list(ctx, `
    SELECT`+requestColumns+`
    FROM leave_requests
    WHERE section = $1
    ORDER BY created_at DESC
  `, section)
}

func (s *Store) list(ctx context.Context, query string, args ...any) ([]LeaveRequest, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaveRequest
	for rows.Next() {
		lr, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *lr)
	}
	return out, rows.Err()
}

// Cancel removes a request that has not been decided yet. Processed or
// decided requests are immutable.
func (s *Store) Cancel(ctx context.Context, id, userID string) error {
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM leave_requests
    WHERE id = $1 AND user_id = $2 AND approval_state = $3
  `, id, userID, StatePending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidState
	}
	return nil
}

// Decide transitions a pending request to approved or rejected. The
// conditional WHERE keeps a second decision from overwriting the first; the
// processed flag is never touched here, that belongs to the reconciler.
func (s *Store) Decide(ctx context.Context, id, state, deciderID string, at time.Time) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE leave_requests
    SET approval_state = $2, decided_by = $3, decided_at = $4, updated_at = $4
    WHERE id = $1 AND approval_state = $5
  `, id, state, deciderID, at, StatePending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidState
	}
	return nil
}
