package reports

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

type SectionUsageRow struct {
	EmployeeID         string          `json:"employeeId"`
	Name               string          `json:"name"`
	VacationDays       decimal.Decimal `json:"vacationsInDays"`
	VacationUsedDays   decimal.Decimal `json:"vacationUsedInDays"`
	AdministrativeDays decimal.Decimal `json:"administrativeDays"`
	ApprovedRequests   int             `json:"approvedRequests"`
	PendingRequests    int             `json:"pendingRequests"`
}

type Service struct {
	DB *pgxpool.Pool
}

func NewService(pool *pgxpool.Pool) *Service {
	return &Service{DB: pool}
}

func (s *Service) SectionUsage(ctx context.Context, section string) ([]SectionUsageRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, e.name, e.vacation_days, e.vacation_used_days, e.administrative_days,
           COUNT(r.id) FILTER (WHERE r.approval_state = 'approved'),
           COUNT(r.id) FILTER (WHERE r.approval_state = 'pending')
    FROM employees e
    LEFT JOIN leave_requests r ON r.user_id = e.id
    WHERE e.section = $1
    GROUP BY e.id, e.name, e.vacation_days, e.vacation_used_days, e.administrative_days
    ORDER BY e.name
  `, section)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SectionUsageRow
	for rows.Next() {
		var row SectionUsageRow
		if err := rows.Scan(&row.EmployeeID, &row.Name, &row.VacationDays,
			&row.VacationUsedDays, &row.AdministrativeDays,
			&row.ApprovedRequests, &row.PendingRequests); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// SectionUsagePDF renders the usage summary as a PDF for section admins.
func (s *Service) SectionUsagePDF(ctx context.Context, section string) ([]byte, error) {
	usage, err := s.SectionUsage(ctx, section)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Leave Balance Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Section: %s", section))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", time.Now().UTC().Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(55, 7, "Employee", "1", 0, "L", false, 0, "")
	pdf.CellFormat(28, 7, "Vacation", "1", 0, "R", false, 0, "")
	pdf.CellFormat(28, 7, "Used", "1", 0, "R", false, 0, "")
	pdf.CellFormat(28, 7, "Admin days", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Approved", "1", 0, "R", false, 0, "")
	pdf.CellFormat(25, 7, "Pending", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range usage {
		pdf.CellFormat(55, 7, row.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(28, 7, row.VacationDays.StringFixed(1), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 7, row.VacationUsedDays.StringFixed(1), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 7, row.AdministrativeDays.StringFixed(1), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", row.ApprovedRequests), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", row.PendingRequests), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
