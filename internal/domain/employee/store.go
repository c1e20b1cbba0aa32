package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"leavedesk/internal/auth"
)

var (
	ErrNotFound      = errors.New("employee not found")
	ErrNoFields      = errors.New("no fields to update")
	ErrDuplicateUser = errors.New("username or email already in use")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const employeeColumns = `
    id, name, username, email, country, image_url, section, section_boss,
    is_admin, is_master, vacation_days, vacation_used_days,
    administrative_days, time_return_hours, created_at`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var e Employee
	err := row.Scan(
		&e.ID, &e.Name, &e.Username, &e.Email, &e.Country, &e.ImageURL,
		&e.Section, &e.SectionBoss, &e.IsAdmin, &e.IsMaster,
		&e.VacationDays, &e.VacationUsedDays, &e.AdministrativeDays,
		&e.TimeReturnHours, &e.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) ByID(ctx context.Context, id string) (*Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id))
}

func (s *Store) ByUsername(ctx context.Context, username string) (*Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE username = $1
  `, username))
}

func (s *Store) PasswordHashByUsername(ctx context.Context, username string) (string, string, error) {
	var id, hash string
	err := s.DB.QueryRow(ctx, `
    SELECT id, password_hash
    FROM employees
    WHERE username = $1
  `, username).Scan(&id, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", ErrNotFound
	}
	if err != nil {
		return "", "", err
	}
	return id, hash, nil
}

func (s *Store) BossBySection(ctx context.Context, section string) (*Employee, error) {
	return scanEmployee(s.DB.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE section = $1 AND is_admin = true
    ORDER BY created_at
    LIMIT 1
  `, section))
}

func (s *Store) Create(ctx context.Context, payload NewEmployee) (string, error) {
	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		return "", err
	}

	var exists bool
	if err := s.DB.QueryRow(ctx, `
    SELECT EXISTS (SELECT 1 FROM employees WHERE username = $1 OR email = $2)
  `, payload.Username, payload.Email).Scan(&exists); err != nil {
		return "", err
	}
	if exists {
		return "", ErrDuplicateUser
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO employees (name, username, email, country, image_url, section, section_boss,
                           is_admin, password_hash, vacation_days, administrative_days, time_return_hours)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    RETURNING id
  `, payload.Name, payload.Username, payload.Email, payload.Country, payload.ImageURL,
		payload.Section, payload.SectionBoss, payload.IsAdmin, hash,
		payload.VacationDays, payload.AdministrativeDays, payload.TimeReturnHours).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// UpdateProfile writes only the fields present in the payload. Balance
// columns are not reachable from here.
func (s *Store) UpdateProfile(ctx context.Context, id string, payload ProfileUpdate) error {
	sets := []string{}
	args := []any{id}

	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if payload.Name != nil {
		addSet("name", *payload.Name)
	}
	if payload.Email != nil {
		addSet("email", *payload.Email)
	}
	if payload.Country != nil {
		addSet("country", *payload.Country)
	}
	if payload.ImageURL != nil {
		addSet("image_url", *payload.ImageURL)
	}
	if payload.Section != nil {
		addSet("section", *payload.Section)
	}
	if payload.SectionBoss != nil {
		addSet("section_boss", *payload.SectionBoss)
	}
	if payload.IsAdmin != nil {
		addSet("is_admin", *payload.IsAdmin)
	}
	if payload.VacationDays != nil {
		addSet("vacation_days", *payload.VacationDays)
	}

	if len(sets) == 0 {
		return ErrNoFields
	}

	tag, err := s.DB.Exec(ctx,
		"UPDATE employees SET "+strings.Join(sets, ", ")+" WHERE id = $1", args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddVacationUsed increments vacation_used_days in a single statement so two
// concurrent approvals for the same employee both land.
func (s *Store) AddVacationUsed(ctx context.Context, id string, days decimal.Decimal) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET vacation_used_days = vacation_used_days + $2
    WHERE id = $1
  `, id, days)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DebitAdministrative decrements administrative_days, floored at zero, in a
// single statement.
func (s *Store) DebitAdministrative(ctx context.Context, id string, days decimal.Decimal) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET administrative_days = GREATEST(administrative_days - $2, 0)
    WHERE id = $1
  `, id, days)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
