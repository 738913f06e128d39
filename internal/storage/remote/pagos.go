package remote

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/crmap/backend/internal/models"
)

type PagoRepository struct {
	db *gorm.DB
}

func NewPagoRepository(db *gorm.DB) *PagoRepository {
	return &PagoRepository{db: db}
}

func (r *PagoRepository) GetAll(ctx context.Context) ([]models.Pago, error) {
	var pagos []models.Pago
	err := r.db.WithContext(ctx).Preload("Presupuesto").Order("fecha DESC").Find(&pagos).Error
	return pagos, err
}

func (r *PagoRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Pago, error) {
	var pago models.Pago
	err := r.db.WithContext(ctx).Preload("Presupuesto").First(&pago, "id = ?", id).Error
	if err != nil {
		return models.Pago{}, wrapNotFound(err, "pago %s", id)
	}

	return pago, nil
}

func (r *PagoRepository) GetByPresupuesto(ctx context.Context, presupuestoID uuid.UUID) ([]models.Pago, error) {
	var pagos []models.Pago
	err := r.db.WithContext(ctx).Where("presupuesto_id = ?", presupuestoID).Order("fecha DESC").Find(&pagos).Error
	return pagos, err
}

func (r *PagoRepository) GetTotalByPresupuesto(ctx context.Context, presupuestoID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Pago{}).
		Where("presupuesto_id = ?", presupuestoID).
		Select("SUM(monto)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}

	return total.Decimal, nil
}

// GetByFecha returns payments whose date falls within [desde, hasta],
// both bounds inclusive.
func (r *PagoRepository) GetByFecha(ctx context.Context, desde, hasta time.Time) ([]models.Pago, error) {
	var pagos []models.Pago
	err := r.db.WithContext(ctx).Where("fecha >= ? AND fecha <= ?", desde, hasta).Order("fecha DESC").Find(&pagos).Error
	return pagos, err
}

func (r *PagoRepository) Create(ctx context.Context, pago models.Pago) (models.Pago, error) {
	if pago.Fecha.IsZero() {
		pago.Fecha = r.db.NowFunc()
	}

	err := r.db.WithContext(ctx).Create(&pago).Error
	return pago, err
}

func (r *PagoRepository) Update(ctx context.Context, id uuid.UUID, update models.PagoUpdate) (models.Pago, error) {
	pago, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Pago{}, err
	}

	update.Apply(&pago)
	err = r.db.WithContext(ctx).Save(&pago).Error
	return pago, err
}

func (r *PagoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Pago{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return wrapNotFound(gorm.ErrRecordNotFound, "pago %s", id)
	}

	return nil
}
