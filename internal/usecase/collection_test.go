package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-settlements/internal/domain"
	"clinic-settlements/internal/usecase"
)

func TestAggregateCollections_PaymentDateBucketing(t *testing.T) {
	appointmentDay := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	paymentDay := appointmentDay.AddDate(0, 0, 7)

	// A balance collected a week after the appointment was rendered.
	appointments := []domain.Appointment{
		{
			ID:             "A1",
			ProfessionalID: "P1",
			Date:           appointmentDay,
			Status:         domain.AppointmentStatusAttended,
			BasePrice:      dec("10000"),
			FinalPrice:     dec("10000"),
			Payments: []domain.Payment{
				{ID: "PAY1", Amount: dec("4000"), Method: domain.PaymentMethodCash, ReceivingProfessionalID: "P1", PaymentDate: &paymentDay},
			},
		},
	}

	onPaymentDay, err := usecase.AggregateCollections("P1", paymentDay, appointments)
	require.NoError(t, err)
	assert.True(t, onPaymentDay.CashCollected.Equal(dec("4000")), "cash on payment day %s", onPaymentDay.CashCollected)

	onAppointmentDay, err := usecase.AggregateCollections("P1", appointmentDay, appointments)
	require.NoError(t, err)
	assert.True(t, onAppointmentDay.CashCollected.IsZero(), "appointment day must not see the payment")
	assert.True(t, onAppointmentDay.TransferCollected.IsZero())
}

func TestAggregateCollections(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	otherDay := day.AddDate(0, 0, 3)

	tests := []struct {
		name         string
		appointments []domain.Appointment
		wantCash     string
		wantTransfer string
		wantErr      bool
		wantPayment  string
	}{
		{
			name: "sums by method on the target day only",
			appointments: []domain.Appointment{
				{ID: "A1", ProfessionalID: "P1", Date: day, Payments: []domain.Payment{
					{ID: "PAY1", Amount: dec("3000"), Method: domain.PaymentMethodCash, ReceivingProfessionalID: "P1", PaymentDate: &day},
					{ID: "PAY2", Amount: dec("2500"), Method: domain.PaymentMethodTransfer, ReceivingProfessionalID: "P1", PaymentDate: &day},
					{ID: "PAY3", Amount: dec("9999"), Method: domain.PaymentMethodCash, ReceivingProfessionalID: "P1", PaymentDate: &otherDay},
				}},
			},
			wantCash:     "3000",
			wantTransfer: "2500",
		},
		{
			name: "falls back to creation timestamp when payment date is absent",
			appointments: []domain.Appointment{
				{ID: "A1", ProfessionalID: "P1", Date: day, Payments: []domain.Payment{
					{ID: "PAY1", Amount: dec("1500"), Method: domain.PaymentMethodTransfer, ReceivingProfessionalID: "P1", CreatedAt: day},
				}},
			},
			wantCash:     "0",
			wantTransfer: "1500",
		},
		{
			name: "payments received by another professional are skipped",
			appointments: []domain.Appointment{
				{ID: "A1", ProfessionalID: "P1", Date: day, Payments: []domain.Payment{
					{ID: "PAY1", Amount: dec("3000"), Method: domain.PaymentMethodCash, ReceivingProfessionalID: "P2", PaymentDate: &day},
				}},
			},
			wantCash:     "0",
			wantTransfer: "0",
		},
		{
			name: "payment with no resolvable date fails the run",
			appointments: []domain.Appointment{
				{ID: "A1", ProfessionalID: "P1", Date: day, Payments: []domain.Payment{
					{ID: "PAY1", Amount: dec("3000"), Method: domain.PaymentMethodCash, ReceivingProfessionalID: "P1"},
				}},
			},
			wantErr:     true,
			wantPayment: "PAY1",
		},
		{
			name: "unknown payment method fails the run",
			appointments: []domain.Appointment{
				{ID: "A1", ProfessionalID: "P1", Date: day, Payments: []domain.Payment{
					{ID: "PAY1", Amount: dec("3000"), Method: "cheque", ReceivingProfessionalID: "P1", PaymentDate: &day},
				}},
			},
			wantErr:     true,
			wantPayment: "PAY1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := usecase.AggregateCollections("P1", day, tt.appointments)

			if tt.wantErr {
				require.Error(t, err)
				var integrityErr *domain.DataIntegrityError
				require.ErrorAs(t, err, &integrityErr)
				assert.Equal(t, tt.wantPayment, integrityErr.PaymentID)
				return
			}

			require.NoError(t, err)
			assert.True(t, got.CashCollected.Equal(dec(tt.wantCash)), "cash %s", got.CashCollected)
			assert.True(t, got.TransferCollected.Equal(dec(tt.wantTransfer)), "transfer %s", got.TransferCollected)
		})
	}
}
