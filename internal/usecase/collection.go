package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"clinic-settlements/internal/domain"
)

// CollectionSummary is the cash-movement view of one professional's day,
// keyed by payment date.
type CollectionSummary struct {
	CashCollected     decimal.Decimal
	TransferCollected decimal.Decimal
}

// AggregateCollections walks the full payment stream across all of the
// professional's appointments and buckets by payment date. This is the only
// place payment-date bucketing happens: the appointment's own date is
// deliberately irrelevant here, so a deposit taken today for next week's
// appointment lands on today's settlement.
func AggregateCollections(professionalID string, day time.Time, appointments []domain.Appointment) (CollectionSummary, error) {
	summary := CollectionSummary{
		CashCollected:     decimal.Zero,
		TransferCollected: decimal.Zero,
	}

	for _, appt := range appointments {
		for _, payment := range appt.Payments {
			if payment.ReceivingProfessionalID != professionalID {
				continue
			}
			collectedOn, ok := payment.CollectedOn()
			if !ok {
				return CollectionSummary{}, &domain.DataIntegrityError{
					ProfessionalID: professionalID,
					AppointmentID:  appt.ID,
					PaymentID:      payment.ID,
					Reason:         "payment has no resolvable date",
				}
			}
			if !sameDay(collectedOn, day) {
				continue
			}
			switch payment.Method {
			case domain.PaymentMethodCash:
				summary.CashCollected = summary.CashCollected.Add(payment.Amount)
			case domain.PaymentMethodTransfer:
				summary.TransferCollected = summary.TransferCollected.Add(payment.Amount)
			default:
				return CollectionSummary{}, &domain.DataIntegrityError{
					ProfessionalID: professionalID,
					AppointmentID:  appt.ID,
					PaymentID:      payment.ID,
					Reason:         "unknown payment method " + string(payment.Method),
				}
			}
		}
	}

	return summary, nil
}
