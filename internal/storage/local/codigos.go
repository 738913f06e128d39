package local

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/crmap/backend/internal/localstore"
	"github.com/crmap/backend/internal/models"
)

type CodigoRepository struct {
	col *localstore.Collection[models.CodigoServicio, *models.CodigoServicio]
}

// NewCodigoRepository opens the codigos_servicio collection and seeds
// the standard legal service catalog when it is empty.
func NewCodigoRepository(store *localstore.Store) (*CodigoRepository, error) {
	col := localstore.NewCollection[models.CodigoServicio, *models.CodigoServicio](store, "codigos_servicio")
	if err := col.Init(); err != nil {
		return nil, err
	}

	r := &CodigoRepository{col: col}
	if err := r.seed(); err != nil {
		return nil, fmt.Errorf("seeding codigos: %w", err)
	}

	return r, nil
}

func (r *CodigoRepository) seed() error {
	existentes, err := r.col.GetAll()
	if err != nil {
		return err
	}
	if len(existentes) > 0 {
		return nil
	}

	_, err = r.col.ReplaceAll(codigosIniciales())

	return err
}

func (r *CodigoRepository) GetAll(_ context.Context) ([]models.CodigoServicio, error) {
	return r.col.GetAll()
}

func (r *CodigoRepository) GetByID(_ context.Context, id uuid.UUID) (models.CodigoServicio, error) {
	codigo, ok, err := r.col.FindByID(id)
	if err != nil {
		return models.CodigoServicio{}, err
	}
	if !ok {
		return models.CodigoServicio{}, fmt.Errorf("código %s: %w", id, models.ErrNotFound)
	}

	return codigo, nil
}

func (r *CodigoRepository) GetByCodigo(_ context.Context, codigo string) (models.CodigoServicio, error) {
	encontrado, ok, err := r.col.FindOne(func(c models.CodigoServicio) bool { return c.Codigo == codigo })
	if err != nil {
		return models.CodigoServicio{}, err
	}
	if !ok {
		return models.CodigoServicio{}, fmt.Errorf("código %q: %w", codigo, models.ErrNotFound)
	}

	return encontrado, nil
}

func (r *CodigoRepository) GetActivos(_ context.Context) ([]models.CodigoServicio, error) {
	return r.col.Find(func(c models.CodigoServicio) bool { return c.Activo })
}

func (r *CodigoRepository) Search(_ context.Context, query string) ([]models.CodigoServicio, error) {
	return r.col.Find(func(c models.CodigoServicio) bool {
		return contiene(c.Codigo, query) || contiene(c.Descripcion, query)
	})
}

func (r *CodigoRepository) Create(_ context.Context, codigo models.CodigoServicio) (models.CodigoServicio, error) {
	return r.col.Create(codigo)
}

func (r *CodigoRepository) Update(_ context.Context, id uuid.UUID, update models.CodigoServicioUpdate) (models.CodigoServicio, error) {
	return r.col.Update(id, func(c *models.CodigoServicio) { update.Apply(c) })
}

func (r *CodigoRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.col.Delete(id)
}
