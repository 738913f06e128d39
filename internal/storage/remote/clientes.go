package remote

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crmap/backend/internal/models"
)

type ClienteRepository struct {
	db *gorm.DB
}

func NewClienteRepository(db *gorm.DB) *ClienteRepository {
	return &ClienteRepository{db: db}
}

func (r *ClienteRepository) GetAll(ctx context.Context) ([]models.Cliente, error) {
	var clientes []models.Cliente
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&clientes).Error
	return clientes, err
}

func (r *ClienteRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Cliente, error) {
	var cliente models.Cliente
	err := r.db.WithContext(ctx).First(&cliente, "id = ?", id).Error
	if err != nil {
		return models.Cliente{}, wrapNotFound(err, "cliente %s", id)
	}

	return cliente, nil
}

func (r *ClienteRepository) GetByRUT(ctx context.Context, rut string) (models.Cliente, error) {
	var cliente models.Cliente
	err := r.db.WithContext(ctx).First(&cliente, "rut = ?", rut).Error
	if err != nil {
		return models.Cliente{}, wrapNotFound(err, "cliente con RUT %q", rut)
	}

	return cliente, nil
}

func (r *ClienteRepository) GetActivos(ctx context.Context) ([]models.Cliente, error) {
	var clientes []models.Cliente
	err := r.db.WithContext(ctx).Where("activo = ?", true).Order("nombre").Find(&clientes).Error
	return clientes, err
}

func (r *ClienteRepository) Search(ctx context.Context, query string) ([]models.Cliente, error) {
	var clientes []models.Cliente
	patron := "%" + strings.ToLower(query) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(nombre) LIKE ? OR LOWER(email) LIKE ? OR rut LIKE ?", patron, patron, "%"+query+"%").
		Order("nombre").
		Find(&clientes).Error
	return clientes, err
}

func (r *ClienteRepository) Create(ctx context.Context, cliente models.Cliente) (models.Cliente, error) {
	err := r.db.WithContext(ctx).Create(&cliente).Error
	return cliente, err
}

func (r *ClienteRepository) Update(ctx context.Context, id uuid.UUID, update models.ClienteUpdate) (models.Cliente, error) {
	cliente, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Cliente{}, err
	}

	update.Apply(&cliente)
	err = r.db.WithContext(ctx).Save(&cliente).Error
	return cliente, err
}

func (r *ClienteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Cliente{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return wrapNotFound(gorm.ErrRecordNotFound, "cliente %s", id)
	}

	return nil
}
