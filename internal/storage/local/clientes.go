package local

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/crmap/backend/internal/localstore"
	"github.com/crmap/backend/internal/models"
)

type ClienteRepository struct {
	col *localstore.Collection[models.Cliente, *models.Cliente]
}

// NewClienteRepository opens the clientes collection and seeds the
// sample clients when it is empty.
func NewClienteRepository(store *localstore.Store) (*ClienteRepository, error) {
	col := localstore.NewCollection[models.Cliente, *models.Cliente](store, "clientes")
	if err := col.Init(); err != nil {
		return nil, err
	}

	r := &ClienteRepository{col: col}
	if err := r.seed(); err != nil {
		return nil, fmt.Errorf("seeding clientes: %w", err)
	}

	return r, nil
}

func (r *ClienteRepository) seed() error {
	existentes, err := r.col.GetAll()
	if err != nil {
		return err
	}
	if len(existentes) > 0 {
		return nil
	}

	_, err = r.col.ReplaceAll(clientesIniciales())

	return err
}

func (r *ClienteRepository) GetAll(_ context.Context) ([]models.Cliente, error) {
	return r.col.GetAll()
}

func (r *ClienteRepository) GetByID(_ context.Context, id uuid.UUID) (models.Cliente, error) {
	cliente, ok, err := r.col.FindByID(id)
	if err != nil {
		return models.Cliente{}, err
	}
	if !ok {
		return models.Cliente{}, fmt.Errorf("cliente %s: %w", id, models.ErrNotFound)
	}

	return cliente, nil
}

func (r *ClienteRepository) GetByRUT(_ context.Context, rut string) (models.Cliente, error) {
	cliente, ok, err := r.col.FindOne(func(c models.Cliente) bool { return c.RUT == rut })
	if err != nil {
		return models.Cliente{}, err
	}
	if !ok {
		return models.Cliente{}, fmt.Errorf("cliente con RUT %q: %w", rut, models.ErrNotFound)
	}

	return cliente, nil
}

func (r *ClienteRepository) GetActivos(_ context.Context) ([]models.Cliente, error) {
	return r.col.Find(func(c models.Cliente) bool { return c.Activo })
}

func (r *ClienteRepository) Search(_ context.Context, query string) ([]models.Cliente, error) {
	return r.col.Find(func(c models.Cliente) bool {
		return contiene(c.Nombre, query) ||
			strings.Contains(c.RUT, query) ||
			contiene(c.Email, query)
	})
}

func (r *ClienteRepository) Create(_ context.Context, cliente models.Cliente) (models.Cliente, error) {
	return r.col.Create(cliente)
}

func (r *ClienteRepository) Update(_ context.Context, id uuid.UUID, update models.ClienteUpdate) (models.Cliente, error) {
	return r.col.Update(id, func(c *models.Cliente) { update.Apply(c) })
}

func (r *ClienteRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.col.Delete(id)
}
