package gateway

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"clinic-settlements/internal/domain"
)

// settlementModel is the engine-owned settlement row. The natural key
// (professional, type, period) carries a unique index so an upsert can only
// ever replace, never duplicate. Settlement rows are derived data and can be
// rebuilt from the appointment snapshot at any time.
type settlementModel struct {
	ID             string     `gorm:"primaryKey;size:36"`
	ProfessionalID string     `gorm:"size:64;not null;uniqueIndex:idx_settlement_key,priority:1"`
	Type           string     `gorm:"size:8;not null;uniqueIndex:idx_settlement_key,priority:2"`
	PeriodKey      string     `gorm:"size:10;not null;uniqueIndex:idx_settlement_key,priority:3"`
	Date           *time.Time `gorm:"type:date"`
	Month          int
	Year           int
	Status         string     `gorm:"size:8;not null"`
	Version        int64      `gorm:"not null;default:1"`

	AttendedAppointments int
	NoShowAppointments   int
	BasePriceTotal       decimal.Decimal `gorm:"type:decimal(20,4)"`
	DiscountAmount       decimal.Decimal `gorm:"type:decimal(20,4)"`
	TotalFacturado       decimal.Decimal `gorm:"type:decimal(20,4)"`

	ProfessionalPercentage decimal.Decimal `gorm:"type:decimal(7,4)"`
	ProfessionalEarnings   decimal.Decimal `gorm:"type:decimal(20,4)"`
	TenseCommission        decimal.Decimal `gorm:"type:decimal(20,4)"`
	TenseCommissionNet     decimal.Decimal `gorm:"type:decimal(20,4)"`

	CashCollected     decimal.Decimal `gorm:"type:decimal(20,4)"`
	TransferCollected decimal.Decimal `gorm:"type:decimal(20,4)"`

	AmountToSettle decimal.Decimal `gorm:"type:decimal(20,4)"`

	Days []dailyBreakdownModel `gorm:"foreignKey:SettlementID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
}

func (settlementModel) TableName() string { return "settlements" }

// dailyBreakdownModel is one audit line of a monthly settlement.
type dailyBreakdownModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	SettlementID string    `gorm:"size:36;not null;index"`
	Date         time.Time `gorm:"type:date;not null"`

	AttendedAppointments int
	NoShowAppointments   int
	BasePriceTotal       decimal.Decimal `gorm:"type:decimal(20,4)"`
	DiscountAmount       decimal.Decimal `gorm:"type:decimal(20,4)"`
	TotalFacturado       decimal.Decimal `gorm:"type:decimal(20,4)"`
	AppliedRate          decimal.Decimal `gorm:"type:decimal(7,4)"`
	ProfessionalEarnings decimal.Decimal `gorm:"type:decimal(20,4)"`
	TenseCommission      decimal.Decimal `gorm:"type:decimal(20,4)"`
	CashCollected        decimal.Decimal `gorm:"type:decimal(20,4)"`
	TransferCollected    decimal.Decimal `gorm:"type:decimal(20,4)"`
}

func (dailyBreakdownModel) TableName() string { return "settlement_days" }

// appointmentModel and paymentModel mirror the scheduling system's records.
// The engine only reads them.
type appointmentModel struct {
	ID             string          `gorm:"primaryKey;size:64"`
	ProfessionalID string          `gorm:"size:64;not null;index"`
	ClientID       string          `gorm:"size:64"`
	ServiceID      string          `gorm:"size:64"`
	Date           time.Time       `gorm:"not null;index"`
	Status         string          `gorm:"size:16;not null"`
	BasePrice      decimal.Decimal `gorm:"type:decimal(20,4)"`
	FinalPrice     decimal.Decimal `gorm:"type:decimal(20,4)"`

	Payments []paymentModel `gorm:"foreignKey:AppointmentID"`
}

func (appointmentModel) TableName() string { return "appointments" }

type paymentModel struct {
	ID                      string          `gorm:"primaryKey;size:64"`
	AppointmentID           string          `gorm:"size:64;not null;index"`
	Amount                  decimal.Decimal `gorm:"type:decimal(20,4)"`
	Method                  string          `gorm:"size:16;not null"`
	ReceivingProfessionalID string          `gorm:"size:64;not null;index"`
	PaymentDate             *time.Time
	CreatedAt               time.Time
	Notes                   string
}

func (paymentModel) TableName() string { return "payments" }

type professionalModel struct {
	ID             string          `gorm:"primaryKey;size:64"`
	Name           string          `gorm:"size:255"`
	Specialty      string          `gorm:"size:255"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(7,4)"`
}

func (professionalModel) TableName() string { return "professionals" }

func (m *settlementModel) ToDomain() (*domain.Settlement, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	s := &domain.Settlement{
		ID:             id,
		ProfessionalID: m.ProfessionalID,
		Type:           domain.SettlementType(m.Type),
		Month:          m.Month,
		Year:           m.Year,
		Status:         domain.SettlementStatus(m.Status),
		Version:        m.Version,

		AttendedAppointments: m.AttendedAppointments,
		NoShowAppointments:   m.NoShowAppointments,
		BasePriceTotal:       m.BasePriceTotal,
		DiscountAmount:       m.DiscountAmount,
		TotalFacturado:       m.TotalFacturado,

		ProfessionalPercentage: m.ProfessionalPercentage,
		ProfessionalEarnings:   m.ProfessionalEarnings,
		TenseCommission:        m.TenseCommission,
		TenseCommissionNet:     m.TenseCommissionNet,

		CashCollected:     m.CashCollected,
		TransferCollected: m.TransferCollected,

		AmountToSettle: m.AmountToSettle,
		CreatedAt:      m.CreatedAt,
	}
	if m.Date != nil {
		s.Date = *m.Date
	}
	for _, day := range m.Days {
		s.Days = append(s.Days, domain.DailyBreakdown{
			Date:                 day.Date,
			AttendedAppointments: day.AttendedAppointments,
			NoShowAppointments:   day.NoShowAppointments,
			BasePriceTotal:       day.BasePriceTotal,
			DiscountAmount:       day.DiscountAmount,
			TotalFacturado:       day.TotalFacturado,
			AppliedRate:          day.AppliedRate,
			ProfessionalEarnings: day.ProfessionalEarnings,
			TenseCommission:      day.TenseCommission,
			CashCollected:        day.CashCollected,
			TransferCollected:    day.TransferCollected,
		})
	}
	return s, nil
}

func fromDomainSettlement(s *domain.Settlement) *settlementModel {
	m := &settlementModel{
		ID:             s.ID.String(),
		ProfessionalID: s.ProfessionalID,
		Type:           string(s.Type),
		PeriodKey:      s.PeriodKey(),
		Month:          s.Month,
		Year:           s.Year,
		Status:         string(s.Status),
		Version:        s.Version,

		AttendedAppointments: s.AttendedAppointments,
		NoShowAppointments:   s.NoShowAppointments,
		BasePriceTotal:       s.BasePriceTotal,
		DiscountAmount:       s.DiscountAmount,
		TotalFacturado:       s.TotalFacturado,

		ProfessionalPercentage: s.ProfessionalPercentage,
		ProfessionalEarnings:   s.ProfessionalEarnings,
		TenseCommission:        s.TenseCommission,
		TenseCommissionNet:     s.TenseCommissionNet,

		CashCollected:     s.CashCollected,
		TransferCollected: s.TransferCollected,

		AmountToSettle: s.AmountToSettle,
		CreatedAt:      s.CreatedAt,
	}
	if s.Type == domain.SettlementTypeDaily {
		date := s.Date
		m.Date = &date
	}
	for _, day := range s.Days {
		m.Days = append(m.Days, dailyBreakdownModel{
			SettlementID:         m.ID,
			Date:                 day.Date,
			AttendedAppointments: day.AttendedAppointments,
			NoShowAppointments:   day.NoShowAppointments,
			BasePriceTotal:       day.BasePriceTotal,
			DiscountAmount:       day.DiscountAmount,
			TotalFacturado:       day.TotalFacturado,
			AppliedRate:          day.AppliedRate,
			ProfessionalEarnings: day.ProfessionalEarnings,
			TenseCommission:      day.TenseCommission,
			CashCollected:        day.CashCollected,
			TransferCollected:    day.TransferCollected,
		})
	}
	return m
}

func (m *appointmentModel) ToDomain() domain.Appointment {
	appt := domain.Appointment{
		ID:             m.ID,
		ProfessionalID: m.ProfessionalID,
		ClientID:       m.ClientID,
		ServiceID:      m.ServiceID,
		Date:           m.Date,
		Status:         domain.AppointmentStatus(m.Status),
		BasePrice:      m.BasePrice,
		FinalPrice:     m.FinalPrice,
	}
	for _, p := range m.Payments {
		appt.Payments = append(appt.Payments, domain.Payment{
			ID:                      p.ID,
			Amount:                  p.Amount,
			Method:                  domain.PaymentMethod(p.Method),
			ReceivingProfessionalID: p.ReceivingProfessionalID,
			PaymentDate:             p.PaymentDate,
			CreatedAt:               p.CreatedAt,
			Notes:                   p.Notes,
		})
	}
	return appt
}

func (m *professionalModel) ToDomain() *domain.Professional {
	return &domain.Professional{
		ID:             m.ID,
		Name:           m.Name,
		Specialty:      m.Specialty,
		CommissionRate: m.CommissionRate,
	}
}
