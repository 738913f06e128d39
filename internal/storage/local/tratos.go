package local

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/crmap/backend/internal/localstore"
	"github.com/crmap/backend/internal/models"
)

type TratoRepository struct {
	mu        sync.Mutex
	store     *localstore.Store
	col       *localstore.Collection[models.Trato, *models.Trato]
	historial *localstore.Collection[models.TratoHistorial, *models.TratoHistorial]
}

func NewTratoRepository(store *localstore.Store) (*TratoRepository, error) {
	col := localstore.NewCollection[models.Trato, *models.Trato](store, "tratos")
	if err := col.Init(); err != nil {
		return nil, err
	}

	historial := localstore.NewCollection[models.TratoHistorial, *models.TratoHistorial](store, "trato_historial")
	if err := historial.Init(); err != nil {
		return nil, err
	}

	return &TratoRepository{store: store, col: col, historial: historial}, nil
}

func (r *TratoRepository) GetAll(_ context.Context) ([]models.Trato, error) {
	return r.col.GetAll()
}

func (r *TratoRepository) GetByID(_ context.Context, id uuid.UUID) (models.Trato, error) {
	trato, ok, err := r.col.FindByID(id)
	if err != nil {
		return models.Trato{}, err
	}
	if !ok {
		return models.Trato{}, fmt.Errorf("trato %s: %w", id, models.ErrNotFound)
	}

	return trato, nil
}

func (r *TratoRepository) GetByEtapa(_ context.Context, etapa models.Etapa) ([]models.Trato, error) {
	return r.col.Find(func(t models.Trato) bool { return t.EtapaActual == etapa })
}

func (r *TratoRepository) GetByCliente(_ context.Context, clienteID uuid.UUID) ([]models.Trato, error) {
	return r.col.Find(func(t models.Trato) bool {
		return t.ClienteID != nil && *t.ClienteID == clienteID
	})
}

func (r *TratoRepository) GetByPresupuesto(_ context.Context, presupuestoID uuid.UUID) ([]models.Trato, error) {
	return r.col.Find(func(t models.Trato) bool {
		return t.PresupuestoID != nil && *t.PresupuestoID == presupuestoID
	})
}

func (r *TratoRepository) Create(_ context.Context, trato models.Trato) (models.Trato, error) {
	if trato.FechaIngreso.IsZero() {
		trato.FechaIngreso = r.store.Now()
	}
	if trato.EtapaActual == "" {
		trato.EtapaActual = models.EtapaContacto
	}

	return r.col.Create(trato)
}

func (r *TratoRepository) Update(_ context.Context, id uuid.UUID, update models.TratoUpdate) (models.Trato, error) {
	return r.col.Update(id, func(t *models.Trato) { update.Apply(t) })
}

// UpdateEtapa moves a deal to a new stage and appends a history entry
// recording the transition.
func (r *TratoRepository) UpdateEtapa(_ context.Context, id uuid.UUID, etapa models.Etapa, usuario string) (models.Trato, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trato, ok, err := r.col.FindByID(id)
	if err != nil {
		return models.Trato{}, err
	}
	if !ok {
		return models.Trato{}, fmt.Errorf("trato %s: %w", id, models.ErrNotFound)
	}

	if usuario == "" {
		usuario = "Sistema"
	}

	entrada := models.TratoHistorial{
		TratoID:     id,
		Etapa:       etapa,
		Descripcion: fmt.Sprintf("Cambio de etapa: %s → %s", trato.EtapaActual, etapa),
		Usuario:     usuario,
		Fecha:       r.store.Now(),
	}
	if _, err := r.historial.Create(entrada); err != nil {
		return models.Trato{}, err
	}

	return r.col.Update(id, func(t *models.Trato) { t.EtapaActual = etapa })
}

func (r *TratoRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.historial.DeleteWhere(func(h models.TratoHistorial) bool {
		return h.TratoID == id
	}); err != nil {
		return err
	}

	return r.col.Delete(id)
}

// GetHistorial returns a deal's history, most recent first.
func (r *TratoRepository) GetHistorial(_ context.Context, tratoID uuid.UUID) ([]models.TratoHistorial, error) {
	entradas, err := r.historial.Find(func(h models.TratoHistorial) bool {
		return h.TratoID == tratoID
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entradas, func(i, j int) bool {
		return entradas[i].Fecha.After(entradas[j].Fecha)
	})

	return entradas, nil
}

func (r *TratoRepository) AddHistorial(_ context.Context, tratoID uuid.UUID, entrada models.TratoHistorial) (models.TratoHistorial, error) {
	entrada.TratoID = tratoID
	if entrada.Fecha.IsZero() {
		entrada.Fecha = r.store.Now()
	}
	if entrada.Usuario == "" {
		entrada.Usuario = "Sistema"
	}

	return r.historial.Create(entrada)
}
