package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Username           string          `json:"username"`
	Email              string          `json:"email"`
	Country            string          `json:"country,omitempty"`
	ImageURL           string          `json:"imageUrl,omitempty"`
	Section            string          `json:"section"`
	SectionBoss        string          `json:"sectionBoss,omitempty"`
	IsAdmin            bool            `json:"isAdmin"`
	IsMaster           bool            `json:"isMaster"`
	VacationDays       decimal.Decimal `json:"vacationsInDays"`
	VacationUsedDays   decimal.Decimal `json:"vacationUsedInDays"`
	AdministrativeDays decimal.Decimal `json:"administrativeDays"`
	TimeReturnHours    decimal.Decimal `json:"timeReturnsInHours"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// ProfileUpdate carries the optional non-balance fields an administrator may
// change. Balance fields are deliberately absent: only the reconciler writes
// those, through its own atomic statements.
type ProfileUpdate struct {
	Name         *string          `json:"name"`
	Email        *string          `json:"email"`
	Country      *string          `json:"country"`
	ImageURL     *string          `json:"imageUrl"`
	Section      *string          `json:"section"`
	SectionBoss  *string          `json:"sectionBoss"`
	IsAdmin      *bool            `json:"isAdmin"`
	VacationDays *decimal.Decimal `json:"vacationsInDays"`
}

type NewEmployee struct {
	Name               string          `json:"name"`
	Username           string          `json:"username"`
	Email              string          `json:"email"`
	Country            string          `json:"country"`
	ImageURL           string          `json:"imageUrl"`
	Section            string          `json:"section"`
	SectionBoss        string          `json:"sectionBoss"`
	IsAdmin            bool            `json:"isAdmin"`
	Password           string          `json:"password"`
	VacationDays       decimal.Decimal `json:"vacationsInDays"`
	AdministrativeDays decimal.Decimal `json:"administrativeDays"`
	TimeReturnHours    decimal.Decimal `json:"timeReturnsInHours"`
}
