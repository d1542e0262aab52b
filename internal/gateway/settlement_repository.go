package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinic-settlements/internal/domain"
)

// GormSettlementRepository implements the SettlementRepository interface on
// the sqlite store.
type GormSettlementRepository struct {
	db *gorm.DB
}

// NewGormSettlementRepository creates a new repository instance.
func NewGormSettlementRepository(db *gorm.DB) *GormSettlementRepository {
	return &GormSettlementRepository{db: db}
}

// Upsert replaces the settlement for its natural key, or creates it. The
// replace runs in one transaction and is guarded by the prior row's version:
// if another recompute slipped in between read and replace, the write is
// rejected rather than interleaved. A successful replace always yields a
// fresh row, so a previously paid record never resurfaces.
func (r *GormSettlementRepository) Upsert(ctx context.Context, settlement *domain.Settlement) error {
	model := fromDomainSettlement(settlement)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing settlementModel
		err := tx.Where("professional_id = ? AND type = ? AND period_key = ?",
			model.ProfessionalID, model.Type, model.PeriodKey).
			First(&existing).Error
		switch {
		case err == nil:
			model.Version = existing.Version + 1
			res := tx.Where("id = ? AND version = ?", existing.ID, existing.Version).
				Delete(&settlementModel{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &domain.ConcurrentRecomputeError{Key: settlement.Key()}
			}
			if err := tx.Where("settlement_id = ?", existing.ID).
				Delete(&dailyBreakdownModel{}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			model.Version = 1
		default:
			return err
		}
		return tx.Create(model).Error
	})
	if err != nil {
		return err
	}
	settlement.Version = model.Version
	return nil
}

// Get fetches one settlement by its natural key.
func (r *GormSettlementRepository) Get(ctx context.Context, professionalID string, settlementType domain.SettlementType, periodKey string) (*domain.Settlement, error) {
	var model settlementModel
	err := r.db.WithContext(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB { return db.Order("date") }).
		Where("professional_id = ? AND type = ? AND period_key = ?",
			professionalID, string(settlementType), periodKey).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSettlementNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// ListDaily returns the professional's daily settlements for a month,
// ordered by date.
func (r *GormSettlementRepository) ListDaily(ctx context.Context, professionalID string, month, year int) ([]domain.Settlement, error) {
	var models []settlementModel
	prefix := domain.MonthlyPeriodKey(month, year)
	err := r.db.WithContext(ctx).
		Where("professional_id = ? AND type = ? AND period_key LIKE ?",
			professionalID, string(domain.SettlementTypeDaily), prefix+"-%").
		Order("period_key").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	settlements := make([]domain.Settlement, 0, len(models))
	for i := range models {
		s, err := models[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("corrupt settlement row %s: %w", models[i].ID, err)
		}
		settlements = append(settlements, *s)
	}
	return settlements, nil
}

// MarkPaid transitions a pending settlement to paid. Paid is terminal: a
// second call, or a call against a record that no longer exists, fails.
func (r *GormSettlementRepository) MarkPaid(ctx context.Context, settlementID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&settlementModel{}).
		Where("id = ? AND status = ?", settlementID.String(), string(domain.SettlementStatusPending)).
		Update("status", string(domain.SettlementStatusPaid))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&settlementModel{}).
			Where("id = ?", settlementID.String()).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.ErrSettlementNotFound
		}
		return domain.ErrSettlementNotPending
	}
	return nil
}
