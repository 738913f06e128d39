package remote

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crmap/backend/internal/models"
)

type UsuarioRepository struct {
	db *gorm.DB
}

func NewUsuarioRepository(db *gorm.DB) *UsuarioRepository {
	return &UsuarioRepository{db: db}
}

func (r *UsuarioRepository) GetAll(ctx context.Context) ([]models.Usuario, error) {
	var usuarios []models.Usuario
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&usuarios).Error
	return usuarios, err
}

func (r *UsuarioRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.WithContext(ctx).First(&usuario, "id = ?", id).Error
	if err != nil {
		return models.Usuario{}, wrapNotFound(err, "usuario %s", id)
	}

	return usuario, nil
}

func (r *UsuarioRepository) GetByAuthID(ctx context.Context, authID string) (models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.WithContext(ctx).First(&usuario, "auth_id = ?", authID).Error
	if err != nil {
		return models.Usuario{}, wrapNotFound(err, "usuario con auth id %q", authID)
	}

	return usuario, nil
}

func (r *UsuarioRepository) GetByEmail(ctx context.Context, email string) (models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.WithContext(ctx).First(&usuario, "email = ?", email).Error
	if err != nil {
		return models.Usuario{}, wrapNotFound(err, "usuario con email %q", email)
	}

	return usuario, nil
}

func (r *UsuarioRepository) Create(ctx context.Context, usuario models.Usuario) (models.Usuario, error) {
	err := r.db.WithContext(ctx).Create(&usuario).Error
	return usuario, err
}

func (r *UsuarioRepository) Update(ctx context.Context, id uuid.UUID, update models.UsuarioUpdate) (models.Usuario, error) {
	usuario, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Usuario{}, err
	}

	update.Apply(&usuario)
	err = r.db.WithContext(ctx).Save(&usuario).Error
	return usuario, err
}

func (r *UsuarioRepository) UpdatePermisos(ctx context.Context, id uuid.UUID, permisos models.Permisos) (models.Usuario, error) {
	usuario, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Usuario{}, err
	}

	usuario.Permisos = permisos
	err = r.db.WithContext(ctx).Save(&usuario).Error
	return usuario, err
}

func (r *UsuarioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Usuario{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return wrapNotFound(gorm.ErrRecordNotFound, "usuario %s", id)
	}

	return nil
}
