package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-settlements/internal/domain"
	"clinic-settlements/internal/usecase"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestAggregatePerformance(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		appointments []domain.Appointment
		wantAttended int
		wantNoShows  int
		wantBase     string
		wantDiscount string
		wantBilled   string
		wantErr      bool
	}{
		{
			name: "attended with and without discount, no-show ignored for revenue",
			appointments: []domain.Appointment{
				{ID: "A1", ProfessionalID: "P1", Date: day, Status: domain.AppointmentStatusAttended, BasePrice: dec("10000"), FinalPrice: dec("8000")},
				{ID: "A2", ProfessionalID: "P1", Date: day, Status: domain.AppointmentStatusAttended, BasePrice: dec("12000"), FinalPrice: dec("12000")},
				{ID: "A3", ProfessionalID: "P1", Date: day, Status: domain.AppointmentStatusNoShow, BasePrice: dec("9000"), FinalPrice: dec("9000")},
			},
			wantAttended: 2,
			wantNoShows:  1,
			wantBase:     "22000",
			wantDiscount: "2000",
			wantBilled:   "20000",
		},
		{
			name: "cancelled excluded entirely",
			appointments: []domain.Appointment{
				{ID: "A1", ProfessionalID: "P1", Date: day, Status: domain.AppointmentStatusCancelled, BasePrice: dec("5000"), FinalPrice: dec("5000")},
			},
			wantBase:     "0",
			wantDiscount: "0",
			wantBilled:   "0",
		},
		{
			name: "closed counts as attended",
			appointments: []domain.Appointment{
				{ID: "A1", ProfessionalID: "P1", Date: day, Status: domain.AppointmentStatusClosed, BasePrice: dec("7000"), FinalPrice: dec("7000")},
			},
			wantAttended: 1,
			wantBase:     "7000",
			wantDiscount: "0",
			wantBilled:   "7000",
		},
		{
			name: "future-state appointments contribute nothing",
			appointments: []domain.Appointment{
				{ID: "A1", ProfessionalID: "P1", Date: day, Status: domain.AppointmentStatusScheduled, BasePrice: dec("5000"), FinalPrice: dec("5000")},
				{ID: "A2", ProfessionalID: "P1", Date: day, Status: domain.AppointmentStatusPendingDeposit, BasePrice: dec("5000"), FinalPrice: dec("5000")},
				{ID: "A3", ProfessionalID: "P1", Date: day, Status: domain.AppointmentStatusConfirmed, BasePrice: dec("5000"), FinalPrice: dec("5000")},
			},
			wantBase:     "0",
			wantDiscount: "0",
			wantBilled:   "0",
		},
		{
			name: "other days and other professionals ignored",
			appointments: []domain.Appointment{
				{ID: "A1", ProfessionalID: "P1", Date: day.AddDate(0, 0, -1), Status: domain.AppointmentStatusAttended, BasePrice: dec("5000"), FinalPrice: dec("5000")},
				{ID: "A2", ProfessionalID: "P2", Date: day, Status: domain.AppointmentStatusAttended, BasePrice: dec("5000"), FinalPrice: dec("5000")},
			},
			wantBase:     "0",
			wantDiscount: "0",
			wantBilled:   "0",
		},
		{
			name: "final price above base price is a data integrity failure",
			appointments: []domain.Appointment{
				{ID: "A1", ProfessionalID: "P1", Date: day, Status: domain.AppointmentStatusAttended, BasePrice: dec("5000"), FinalPrice: dec("6000")},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := usecase.AggregatePerformance("P1", day, tt.appointments)

			if tt.wantErr {
				require.Error(t, err)
				var integrityErr *domain.DataIntegrityError
				require.ErrorAs(t, err, &integrityErr)
				assert.Equal(t, "P1", integrityErr.ProfessionalID)
				assert.Equal(t, "A1", integrityErr.AppointmentID)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantAttended, got.AttendedAppointments)
			assert.Equal(t, tt.wantNoShows, got.NoShowAppointments)
			assert.True(t, got.BasePriceTotal.Equal(dec(tt.wantBase)), "base price total %s", got.BasePriceTotal)
			assert.True(t, got.DiscountAmount.Equal(dec(tt.wantDiscount)), "discount %s", got.DiscountAmount)
			assert.True(t, got.TotalFacturado.Equal(dec(tt.wantBilled)), "facturado %s", got.TotalFacturado)

			// Conservation: base - discount == facturado.
			assert.True(t, got.BasePriceTotal.Sub(got.DiscountAmount).Equal(got.TotalFacturado))
		})
	}
}
