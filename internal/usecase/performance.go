package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"clinic-settlements/internal/domain"
)

// PerformanceSummary is the revenue view of one professional's day, keyed by
// appointment date.
type PerformanceSummary struct {
	AttendedAppointments int
	NoShowAppointments   int
	BasePriceTotal       decimal.Decimal
	DiscountAmount       decimal.Decimal
	TotalFacturado       decimal.Decimal
}

// AggregatePerformance classifies the professional's appointments on the
// target day and accumulates revenue. Cancelled appointments are excluded
// entirely; no-shows are counted but earn nothing; future-state appointments
// (scheduled, pending deposit, confirmed) contribute nothing on settlement
// day. A final price above the base price is a data-integrity failure, not
// something to clamp.
func AggregatePerformance(professionalID string, day time.Time, appointments []domain.Appointment) (PerformanceSummary, error) {
	summary := PerformanceSummary{
		BasePriceTotal: decimal.Zero,
		DiscountAmount: decimal.Zero,
		TotalFacturado: decimal.Zero,
	}

	for _, appt := range appointments {
		if appt.ProfessionalID != professionalID || !sameDay(appt.Date, day) {
			continue
		}
		switch {
		case appt.Status == domain.AppointmentStatusCancelled:
			continue
		case appt.Status == domain.AppointmentStatusNoShow:
			summary.NoShowAppointments++
		case appt.EarnsRevenue():
			if appt.FinalPrice.GreaterThan(appt.BasePrice) {
				return PerformanceSummary{}, &domain.DataIntegrityError{
					ProfessionalID: professionalID,
					AppointmentID:  appt.ID,
					Reason:         "final price exceeds base price",
				}
			}
			summary.AttendedAppointments++
			summary.BasePriceTotal = summary.BasePriceTotal.Add(appt.BasePrice)
			summary.TotalFacturado = summary.TotalFacturado.Add(appt.FinalPrice)
		}
	}

	summary.DiscountAmount = summary.BasePriceTotal.Sub(summary.TotalFacturado)
	return summary, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
