package local

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/crmap/backend/internal/localstore"
	"github.com/crmap/backend/internal/models"
	"github.com/crmap/backend/internal/rules"
)

type PresupuestoRepository struct {
	// mu serializes logical multi-step operations (item write plus
	// totals recompute, cascade delete) so two of them cannot
	// interleave on the same budget.
	mu    sync.Mutex
	store *localstore.Store
	col   *localstore.Collection[models.Presupuesto, *models.Presupuesto]
	items *localstore.Collection[models.PresupuestoItem, *models.PresupuestoItem]
}

func NewPresupuestoRepository(store *localstore.Store) (*PresupuestoRepository, error) {
	col := localstore.NewCollection[models.Presupuesto, *models.Presupuesto](store, "presupuestos")
	if err := col.Init(); err != nil {
		return nil, err
	}

	items := localstore.NewCollection[models.PresupuestoItem, *models.PresupuestoItem](store, "presupuesto_items")
	if err := items.Init(); err != nil {
		return nil, err
	}

	return &PresupuestoRepository{store: store, col: col, items: items}, nil
}

func (r *PresupuestoRepository) GetAll(_ context.Context) ([]models.Presupuesto, error) {
	return r.col.GetAll()
}

func (r *PresupuestoRepository) GetByID(_ context.Context, id uuid.UUID) (models.Presupuesto, error) {
	presupuesto, ok, err := r.col.FindByID(id)
	if err != nil {
		return models.Presupuesto{}, err
	}
	if !ok {
		return models.Presupuesto{}, fmt.Errorf("presupuesto %s: %w", id, models.ErrNotFound)
	}

	return presupuesto, nil
}

func (r *PresupuestoRepository) GetByNumero(_ context.Context, numero string) (models.Presupuesto, error) {
	presupuesto, ok, err := r.col.FindOne(func(p models.Presupuesto) bool { return p.Numero == numero })
	if err != nil {
		return models.Presupuesto{}, err
	}
	if !ok {
		return models.Presupuesto{}, fmt.Errorf("presupuesto %q: %w", numero, models.ErrNotFound)
	}

	return presupuesto, nil
}

func (r *PresupuestoRepository) GetByCliente(_ context.Context, clienteID uuid.UUID) ([]models.Presupuesto, error) {
	return r.col.Find(func(p models.Presupuesto) bool { return p.ClienteID == clienteID })
}

// Create persists a new budget. A missing number is generated as
// P-<year>-NNNN, counting the existing budgets of the current year.
// The count is not protected against concurrent creation.
func (r *PresupuestoRepository) Create(_ context.Context, presupuesto models.Presupuesto) (models.Presupuesto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if presupuesto.Numero == "" {
		numero, err := r.siguienteNumero()
		if err != nil {
			return models.Presupuesto{}, err
		}
		presupuesto.Numero = numero
	}

	if presupuesto.Fecha.IsZero() {
		presupuesto.Fecha = r.store.Now()
	}
	if presupuesto.Estado == "" {
		presupuesto.Estado = models.EstadoBorrador
	}

	return r.col.Create(presupuesto)
}

func (r *PresupuestoRepository) siguienteNumero() (string, error) {
	year := r.store.Now().Year()
	prefijo := fmt.Sprintf("P-%d", year)

	existentes, err := r.col.Find(func(p models.Presupuesto) bool {
		return strings.HasPrefix(p.Numero, prefijo)
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%04d", prefijo, len(existentes)+1), nil
}

func (r *PresupuestoRepository) Update(ctx context.Context, id uuid.UUID, update models.PresupuestoUpdate) (models.Presupuesto, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	presupuesto, err := r.col.Update(id, func(p *models.Presupuesto) { update.Apply(p) })
	if err != nil {
		return models.Presupuesto{}, err
	}

	// A discount change invalidates the stored totals.
	if update.Descuento != nil {
		return r.recalcularTotales(id)
	}

	return presupuesto, nil
}

func (r *PresupuestoRepository) UpdateEstado(_ context.Context, id uuid.UUID, estado models.Estado) (models.Presupuesto, error) {
	return r.col.Update(id, func(p *models.Presupuesto) { p.Estado = estado })
}

// Delete removes a budget and its line items. The two collection
// writes are not atomic, items go first so a crash in between cannot
// leave items pointing at a live budget.
func (r *PresupuestoRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.items.DeleteWhere(func(item models.PresupuestoItem) bool {
		return item.PresupuestoID == id
	}); err != nil {
		return err
	}

	return r.col.Delete(id)
}

func (r *PresupuestoRepository) GetItems(_ context.Context, presupuestoID uuid.UUID) ([]models.PresupuestoItem, error) {
	return r.items.Find(func(item models.PresupuestoItem) bool {
		return item.PresupuestoID == presupuestoID
	})
}

func (r *PresupuestoRepository) AddItem(_ context.Context, presupuestoID uuid.UUID, item models.PresupuestoItem) (models.PresupuestoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok, err := r.col.FindByID(presupuestoID); err != nil {
		return models.PresupuestoItem{}, err
	} else if !ok {
		return models.PresupuestoItem{}, fmt.Errorf("presupuesto %s: %w", presupuestoID, models.ErrNotFound)
	}

	item.PresupuestoID = presupuestoID
	if item.Cantidad == 0 {
		item.Cantidad = 1
	}
	item.Subtotal = rules.SubtotalItem(item)

	creado, err := r.items.Create(item)
	if err != nil {
		return models.PresupuestoItem{}, err
	}

	if _, err := r.recalcularTotales(presupuestoID); err != nil {
		return models.PresupuestoItem{}, err
	}

	return creado, nil
}

func (r *PresupuestoRepository) UpdateItem(_ context.Context, itemID uuid.UUID, update models.PresupuestoItemUpdate) (models.PresupuestoItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, err := r.items.Update(itemID, func(item *models.PresupuestoItem) {
		update.Apply(item)
		item.Subtotal = rules.SubtotalItem(*item)
	})
	if err != nil {
		return models.PresupuestoItem{}, err
	}

	if _, err := r.recalcularTotales(item.PresupuestoID); err != nil {
		return models.PresupuestoItem{}, err
	}

	return item, nil
}

func (r *PresupuestoRepository) DeleteItem(_ context.Context, itemID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok, err := r.items.FindByID(itemID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("item %s: %w", itemID, models.ErrNotFound)
	}

	if err := r.items.Delete(itemID); err != nil {
		return err
	}

	_, err = r.recalcularTotales(item.PresupuestoID)
	return err
}

// recalcularTotales refetches the budget's items and persists a fresh
// subtotal and total. Callers must hold r.mu.
func (r *PresupuestoRepository) recalcularTotales(presupuestoID uuid.UUID) (models.Presupuesto, error) {
	items, err := r.items.Find(func(item models.PresupuestoItem) bool {
		return item.PresupuestoID == presupuestoID
	})
	if err != nil {
		return models.Presupuesto{}, err
	}

	return r.col.Update(presupuestoID, func(p *models.Presupuesto) {
		p.Subtotal, p.Total = rules.CalcularTotales(items, p.Descuento)
	})
}
