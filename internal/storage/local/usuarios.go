package local

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/crmap/backend/internal/localstore"
	"github.com/crmap/backend/internal/models"
)

type UsuarioRepository struct {
	col *localstore.Collection[models.Usuario, *models.Usuario]
}

// NewUsuarioRepository opens the usuarios collection and seeds the
// default administrator and assistant when it is empty.
func NewUsuarioRepository(store *localstore.Store) (*UsuarioRepository, error) {
	col := localstore.NewCollection[models.Usuario, *models.Usuario](store, "usuarios")
	if err := col.Init(); err != nil {
		return nil, err
	}

	r := &UsuarioRepository{col: col}
	if err := r.seed(); err != nil {
		return nil, fmt.Errorf("seeding usuarios: %w", err)
	}

	return r, nil
}

func (r *UsuarioRepository) seed() error {
	existentes, err := r.col.GetAll()
	if err != nil {
		return err
	}
	if len(existentes) > 0 {
		return nil
	}

	_, err = r.col.ReplaceAll(usuariosIniciales())

	return err
}

func (r *UsuarioRepository) GetAll(_ context.Context) ([]models.Usuario, error) {
	return r.col.GetAll()
}

func (r *UsuarioRepository) GetByID(_ context.Context, id uuid.UUID) (models.Usuario, error) {
	usuario, ok, err := r.col.FindByID(id)
	if err != nil {
		return models.Usuario{}, err
	}
	if !ok {
		return models.Usuario{}, fmt.Errorf("usuario %s: %w", id, models.ErrNotFound)
	}

	return usuario, nil
}

func (r *UsuarioRepository) GetByAuthID(_ context.Context, authID string) (models.Usuario, error) {
	usuario, ok, err := r.col.FindOne(func(u models.Usuario) bool { return u.AuthID == authID })
	if err != nil {
		return models.Usuario{}, err
	}
	if !ok {
		return models.Usuario{}, fmt.Errorf("usuario con auth_id %q: %w", authID, models.ErrNotFound)
	}

	return usuario, nil
}

func (r *UsuarioRepository) GetByEmail(_ context.Context, email string) (models.Usuario, error) {
	usuario, ok, err := r.col.FindOne(func(u models.Usuario) bool { return u.Email == email })
	if err != nil {
		return models.Usuario{}, err
	}
	if !ok {
		return models.Usuario{}, fmt.Errorf("usuario con email %q: %w", email, models.ErrNotFound)
	}

	return usuario, nil
}

func (r *UsuarioRepository) Create(_ context.Context, usuario models.Usuario) (models.Usuario, error) {
	return r.col.Create(usuario)
}

func (r *UsuarioRepository) Update(_ context.Context, id uuid.UUID, update models.UsuarioUpdate) (models.Usuario, error) {
	return r.col.Update(id, func(u *models.Usuario) { update.Apply(u) })
}

func (r *UsuarioRepository) UpdatePermisos(_ context.Context, id uuid.UUID, permisos models.Permisos) (models.Usuario, error) {
	return r.col.Update(id, func(u *models.Usuario) { u.Permisos = permisos })
}

func (r *UsuarioRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.col.Delete(id)
}
