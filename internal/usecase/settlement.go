package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"clinic-settlements/internal/domain"
)

// SettlementUseCase orchestrates the reconciliation of the performance ledger
// (revenue by appointment date) and the collection ledger (cash by payment
// date) into settlement records. It is a batch computation: each run is a
// pure function of the input snapshot to one output record, so runs for
// different professionals or different days are safe to execute in parallel.
type SettlementUseCase struct {
	appointments  AppointmentRepository
	professionals ProfessionalRepository
	settlements   SettlementRepository
	guard         *runGuard
	log           *zap.Logger
}

// NewSettlementUseCase creates a new instance of the usecase.
func NewSettlementUseCase(
	appointments AppointmentRepository,
	professionals ProfessionalRepository,
	settlements SettlementRepository,
	log *zap.Logger,
) *SettlementUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &SettlementUseCase{
		appointments:  appointments,
		professionals: professionals,
		settlements:   settlements,
		guard:         newRunGuard(),
		log:           log,
	}
}

// DailyRunRequest identifies one (professional, date) daily settlement run.
// Rate is explicit so callers can replay historical periods without mutating
// shared professional configuration.
type DailyRunRequest struct {
	ProfessionalID string
	Date           time.Time
	Rate           decimal.Decimal
}

// MonthlyRunRequest identifies one (professional, month, year) monthly fold.
type MonthlyRunRequest struct {
	ProfessionalID string
	Month          int
	Year           int
	Rate           decimal.Decimal
}

// CurrentRate resolves the professional's configured commission rate for
// callers that settle at today's terms.
func (uc *SettlementUseCase) CurrentRate(ctx context.Context, professionalID string) (decimal.Decimal, error) {
	professional, err := uc.professionals.Get(ctx, professionalID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("could not load professional %s: %w", professionalID, err)
	}
	return professional.CommissionRate, nil
}

// RunDaily computes and persists the informative same-day settlement for one
// professional. Re-invocation for the same key overwrites the prior record,
// so it is safe to re-run after late status corrections.
func (uc *SettlementUseCase) RunDaily(ctx context.Context, req DailyRunRequest) (*domain.Settlement, error) {
	if !validRate(req.Rate) {
		return nil, domain.ErrInvalidRate
	}

	key := fmt.Sprintf("%s/%s/%s", req.ProfessionalID, domain.SettlementTypeDaily, domain.DailyPeriodKey(req.Date))
	if err := uc.guard.acquire(key); err != nil {
		return nil, err
	}
	defer uc.guard.release(key)

	// The full stream, not just same-day appointments: collections on the
	// target day can belong to appointments from any other day.
	appointments, err := uc.appointments.ListByProfessional(ctx, req.ProfessionalID, time.Time{}, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("could not list appointments for %s: %w", req.ProfessionalID, err)
	}

	performance, err := AggregatePerformance(req.ProfessionalID, req.Date, appointments)
	if err != nil {
		return nil, err
	}
	collection, err := AggregateCollections(req.ProfessionalID, req.Date, appointments)
	if err != nil {
		return nil, err
	}
	split := SplitCommission(performance.BasePriceTotal, performance.TotalFacturado, req.Rate)

	settlement := &domain.Settlement{
		ID:             uuid.New(),
		ProfessionalID: req.ProfessionalID,
		Type:           domain.SettlementTypeDaily,
		Date:           req.Date,
		Status:         domain.SettlementStatusPending,

		AttendedAppointments: performance.AttendedAppointments,
		NoShowAppointments:   performance.NoShowAppointments,
		BasePriceTotal:       performance.BasePriceTotal,
		DiscountAmount:       performance.DiscountAmount,
		TotalFacturado:       performance.TotalFacturado,

		ProfessionalPercentage: req.Rate,
		ProfessionalEarnings:   split.ProfessionalEarnings,
		TenseCommission:        split.TenseCommission,
		TenseCommissionNet:     split.TenseCommissionNet,

		CashCollected:     collection.CashCollected,
		TransferCollected: collection.TransferCollected,

		// Informative on daily settlements: a preview of the running
		// commission, not a collectible balance.
		AmountToSettle: split.TenseCommission,

		CreatedAt: time.Now().UTC(),
	}

	if err := uc.settlements.Upsert(ctx, settlement); err != nil {
		return nil, fmt.Errorf("could not persist daily settlement %s: %w", key, err)
	}

	uc.log.Info("daily settlement computed",
		zap.String("professional_id", req.ProfessionalID),
		zap.String("date", domain.DailyPeriodKey(req.Date)),
		zap.Int("attended", performance.AttendedAppointments),
		zap.Int("no_shows", performance.NoShowAppointments),
		zap.String("total_facturado", performance.TotalFacturado.String()),
		zap.String("amount_to_settle", settlement.AmountToSettle.String()),
	)
	return settlement, nil
}

// RunMonthly folds a complete month of daily settlements into the binding
// monthly statement. Each day's commission split is re-derived from that
// day's base total using the rate supplied here, not the rate stored on the
// older daily record; the per-day breakdown records the applied rate so the
// divergence under mid-month rate changes stays auditable.
func (uc *SettlementUseCase) RunMonthly(ctx context.Context, req MonthlyRunRequest) (*domain.Settlement, error) {
	if !validRate(req.Rate) {
		return nil, domain.ErrInvalidRate
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, fmt.Errorf("invalid month %d", req.Month)
	}

	key := fmt.Sprintf("%s/%s/%s", req.ProfessionalID, domain.SettlementTypeMonthly, domain.MonthlyPeriodKey(req.Month, req.Year))
	if err := uc.guard.acquire(key); err != nil {
		return nil, err
	}
	defer uc.guard.release(key)

	dailies, err := uc.settlements.ListDaily(ctx, req.ProfessionalID, req.Month, req.Year)
	if err != nil {
		return nil, fmt.Errorf("could not list daily settlements for %s: %w", key, err)
	}

	byDate := make(map[string]*domain.Settlement, len(dailies))
	for i := range dailies {
		byDate[domain.DailyPeriodKey(dailies[i].Date)] = &dailies[i]
	}

	firstOfMonth := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	totalDays := daysInMonth(req.Month, req.Year)

	var missing []string
	for dayNumber := 1; dayNumber <= totalDays; dayNumber++ {
		date := domain.DailyPeriodKey(firstOfMonth.AddDate(0, 0, dayNumber-1))
		if _, ok := byDate[date]; !ok {
			missing = append(missing, date)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.IncompletePeriodError{
			ProfessionalID: req.ProfessionalID,
			Month:          req.Month,
			Year:           req.Year,
			MissingDates:   missing,
		}
	}

	monthly := &domain.Settlement{
		ID:             uuid.New(),
		ProfessionalID: req.ProfessionalID,
		Type:           domain.SettlementTypeMonthly,
		Month:          req.Month,
		Year:           req.Year,
		Status:         domain.SettlementStatusPending,

		BasePriceTotal: decimal.Zero,
		DiscountAmount: decimal.Zero,
		TotalFacturado: decimal.Zero,

		ProfessionalPercentage: req.Rate,
		ProfessionalEarnings:   decimal.Zero,
		TenseCommission:        decimal.Zero,

		CashCollected:     decimal.Zero,
		TransferCollected: decimal.Zero,

		Days:      make([]domain.DailyBreakdown, 0, totalDays),
		CreatedAt: time.Now().UTC(),
	}

	for dayNumber := 1; dayNumber <= totalDays; dayNumber++ {
		date := firstOfMonth.AddDate(0, 0, dayNumber-1)
		daily := byDate[domain.DailyPeriodKey(date)]
		split := SplitCommission(daily.BasePriceTotal, daily.TotalFacturado, req.Rate)

		monthly.AttendedAppointments += daily.AttendedAppointments
		monthly.NoShowAppointments += daily.NoShowAppointments
		monthly.BasePriceTotal = monthly.BasePriceTotal.Add(daily.BasePriceTotal)
		monthly.DiscountAmount = monthly.DiscountAmount.Add(daily.DiscountAmount)
		monthly.TotalFacturado = monthly.TotalFacturado.Add(daily.TotalFacturado)
		monthly.ProfessionalEarnings = monthly.ProfessionalEarnings.Add(split.ProfessionalEarnings)
		monthly.TenseCommission = monthly.TenseCommission.Add(split.TenseCommission)
		monthly.CashCollected = monthly.CashCollected.Add(daily.CashCollected)
		monthly.TransferCollected = monthly.TransferCollected.Add(daily.TransferCollected)

		monthly.Days = append(monthly.Days, domain.DailyBreakdown{
			Date:                 date,
			AttendedAppointments: daily.AttendedAppointments,
			NoShowAppointments:   daily.NoShowAppointments,
			BasePriceTotal:       daily.BasePriceTotal,
			DiscountAmount:       daily.DiscountAmount,
			TotalFacturado:       daily.TotalFacturado,
			AppliedRate:          req.Rate,
			ProfessionalEarnings: split.ProfessionalEarnings,
			TenseCommission:      split.TenseCommission,
			CashCollected:        daily.CashCollected,
			TransferCollected:    daily.TransferCollected,
		})
	}

	monthly.TenseCommissionNet = monthly.TenseCommission
	monthly.AmountToSettle = monthly.TenseCommission

	if err := uc.settlements.Upsert(ctx, monthly); err != nil {
		return nil, fmt.Errorf("could not persist monthly settlement %s: %w", key, err)
	}

	uc.log.Info("monthly settlement computed",
		zap.String("professional_id", req.ProfessionalID),
		zap.String("period", domain.MonthlyPeriodKey(req.Month, req.Year)),
		zap.Int("attended", monthly.AttendedAppointments),
		zap.String("total_facturado", monthly.TotalFacturado.String()),
		zap.String("amount_to_settle", monthly.AmountToSettle.String()),
		zap.Bool("deficit", monthly.Deficit()),
	)
	return monthly, nil
}

// CloseMonth runs the daily settlement for every calendar day of the month in
// order and then folds them into the monthly statement. The sequential pass
// is the sequencing barrier the monthly precondition requires; independent
// professionals can still close their months concurrently.
func (uc *SettlementUseCase) CloseMonth(ctx context.Context, req MonthlyRunRequest) (*domain.Settlement, error) {
	if !validRate(req.Rate) {
		return nil, domain.ErrInvalidRate
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, fmt.Errorf("invalid month %d", req.Month)
	}

	firstOfMonth := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	for dayNumber := 1; dayNumber <= daysInMonth(req.Month, req.Year); dayNumber++ {
		_, err := uc.RunDaily(ctx, DailyRunRequest{
			ProfessionalID: req.ProfessionalID,
			Date:           firstOfMonth.AddDate(0, 0, dayNumber-1),
			Rate:           req.Rate,
		})
		if err != nil {
			return nil, err
		}
	}
	return uc.RunMonthly(ctx, req)
}

// GetSettlement fetches one settlement by its natural key.
func (uc *SettlementUseCase) GetSettlement(ctx context.Context, professionalID string, settlementType domain.SettlementType, periodKey string) (*domain.Settlement, error) {
	return uc.settlements.Get(ctx, professionalID, settlementType, periodKey)
}

// MarkSettlementPaid records the operational acknowledgement that a pending
// settlement was settled. It is a status transition, never a recompute.
func (uc *SettlementUseCase) MarkSettlementPaid(ctx context.Context, settlementID uuid.UUID) error {
	return uc.settlements.MarkPaid(ctx, settlementID)
}

func daysInMonth(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
