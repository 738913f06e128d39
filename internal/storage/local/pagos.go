package local

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crmap/backend/internal/localstore"
	"github.com/crmap/backend/internal/models"
	"github.com/crmap/backend/internal/rules"
)

type PagoRepository struct {
	store *localstore.Store
	col   *localstore.Collection[models.Pago, *models.Pago]
}

func NewPagoRepository(store *localstore.Store) (*PagoRepository, error) {
	col := localstore.NewCollection[models.Pago, *models.Pago](store, "pagos")
	if err := col.Init(); err != nil {
		return nil, err
	}

	return &PagoRepository{store: store, col: col}, nil
}

func (r *PagoRepository) GetAll(_ context.Context) ([]models.Pago, error) {
	return r.col.GetAll()
}

func (r *PagoRepository) GetByID(_ context.Context, id uuid.UUID) (models.Pago, error) {
	pago, ok, err := r.col.FindByID(id)
	if err != nil {
		return models.Pago{}, err
	}
	if !ok {
		return models.Pago{}, fmt.Errorf("pago %s: %w", id, models.ErrNotFound)
	}

	return pago, nil
}

func (r *PagoRepository) GetByPresupuesto(_ context.Context, presupuestoID uuid.UUID) ([]models.Pago, error) {
	return r.col.Find(func(p models.Pago) bool { return p.PresupuestoID == presupuestoID })
}

func (r *PagoRepository) GetTotalByPresupuesto(ctx context.Context, presupuestoID uuid.UUID) (decimal.Decimal, error) {
	pagos, err := r.GetByPresupuesto(ctx, presupuestoID)
	if err != nil {
		return decimal.Zero, err
	}

	return rules.TotalPagado(pagos), nil
}

// GetByFecha returns payments whose date falls within [desde, hasta],
// both bounds inclusive.
func (r *PagoRepository) GetByFecha(_ context.Context, desde, hasta time.Time) ([]models.Pago, error) {
	return r.col.Find(func(p models.Pago) bool {
		return !p.Fecha.Before(desde) && !p.Fecha.After(hasta)
	})
}

func (r *PagoRepository) Create(_ context.Context, pago models.Pago) (models.Pago, error) {
	if pago.Fecha.IsZero() {
		pago.Fecha = r.store.Now()
	}

	return r.col.Create(pago)
}

func (r *PagoRepository) Update(_ context.Context, id uuid.UUID, update models.PagoUpdate) (models.Pago, error) {
	return r.col.Update(id, func(p *models.Pago) { update.Apply(p) })
}

func (r *PagoRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.col.Delete(id)
}
