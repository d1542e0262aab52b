package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementType distinguishes the informative same-day snapshot from the
// binding monthly statement.
type SettlementType string

const (
	SettlementTypeDaily   SettlementType = "daily"
	SettlementTypeMonthly SettlementType = "monthly"
)

// SettlementStatus is the operational acknowledgement state. Paid is terminal
// for a record; a recompute for the same period produces a fresh pending
// record rather than resurrecting a paid one.
type SettlementStatus string

const (
	SettlementStatusPending SettlementStatus = "pending"
	SettlementStatusPaid    SettlementStatus = "paid"
)

// DailyBreakdown is one audit line of a monthly settlement: the day's stored
// performance figures together with the commission split re-derived at fold
// time. AppliedRate records which rate was actually used, which can differ
// from the rate stored on the original daily record if the professional's
// commission changed mid-month.
type DailyBreakdown struct {
	Date                 time.Time       `json:"date"`
	AttendedAppointments int             `json:"attended_appointments"`
	NoShowAppointments   int             `json:"no_show_appointments"`
	BasePriceTotal       decimal.Decimal `json:"base_price_total"`
	DiscountAmount       decimal.Decimal `json:"discount_amount"`
	TotalFacturado       decimal.Decimal `json:"total_facturado"`
	AppliedRate          decimal.Decimal `json:"applied_rate"`
	ProfessionalEarnings decimal.Decimal `json:"professional_earnings"`
	TenseCommission      decimal.Decimal `json:"tense_commission"`
	CashCollected        decimal.Decimal `json:"cash_collected"`
	TransferCollected    decimal.Decimal `json:"transfer_collected"`
}

// Settlement is the engine's output record: one professional, one period,
// reconciled performance and collection figures plus the commission split.
// It is immutable once created; re-running a period replaces the record for
// that key, and marking paid is the only permitted status transition.
type Settlement struct {
	ID             uuid.UUID        `json:"id"`
	ProfessionalID string           `json:"professional_id"`
	Type           SettlementType   `json:"type"`
	Date           time.Time        `json:"date,omitempty"`
	Month          int              `json:"month,omitempty"`
	Year           int              `json:"year,omitempty"`
	Status         SettlementStatus `json:"status"`
	Version        int64            `json:"version"`

	AttendedAppointments int             `json:"attended_appointments"`
	NoShowAppointments   int             `json:"no_show_appointments"`
	BasePriceTotal       decimal.Decimal `json:"base_price_total"`
	DiscountAmount       decimal.Decimal `json:"discount_amount"`
	TotalFacturado       decimal.Decimal `json:"total_facturado"`

	ProfessionalPercentage decimal.Decimal `json:"professional_percentage"`
	ProfessionalEarnings   decimal.Decimal `json:"professional_earnings"`
	TenseCommission        decimal.Decimal `json:"tense_commission"`
	TenseCommissionNet     decimal.Decimal `json:"tense_commission_net"`

	CashCollected     decimal.Decimal `json:"cash_collected"`
	TransferCollected decimal.Decimal `json:"transfer_collected"`

	// AmountToSettle is signed: positive means the professional owes the
	// clinic. Informative only on daily settlements.
	AmountToSettle decimal.Decimal `json:"amount_to_settle"`

	// Days holds the per-day audit trail on monthly settlements.
	Days []DailyBreakdown `json:"days,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// DailyPeriodKey formats the period key of a daily settlement.
func DailyPeriodKey(date time.Time) string {
	return date.Format(time.DateOnly)
}

// MonthlyPeriodKey formats the period key of a monthly settlement.
func MonthlyPeriodKey(month, year int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// PeriodKey returns the settlement's period portion of its natural key.
func (s *Settlement) PeriodKey() string {
	if s.Type == SettlementTypeMonthly {
		return MonthlyPeriodKey(s.Month, s.Year)
	}
	return DailyPeriodKey(s.Date)
}

// Key returns the full natural key (professionalId, type, period) that upserts
// replace by.
func (s *Settlement) Key() string {
	return fmt.Sprintf("%s/%s/%s", s.ProfessionalID, s.Type, s.PeriodKey())
}

// Deficit reports whether the clinic subsidized this period: discounts were
// large enough that the professional's earnings exceeded the billed total.
func (s *Settlement) Deficit() bool {
	return s.TenseCommission.IsNegative()
}
