package remote

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crmap/backend/internal/models"
)

type CodigoRepository struct {
	db *gorm.DB
}

func NewCodigoRepository(db *gorm.DB) *CodigoRepository {
	return &CodigoRepository{db: db}
}

func (r *CodigoRepository) GetAll(ctx context.Context) ([]models.CodigoServicio, error) {
	var codigos []models.CodigoServicio
	err := r.db.WithContext(ctx).Order("codigo").Find(&codigos).Error
	return codigos, err
}

func (r *CodigoRepository) GetByID(ctx context.Context, id uuid.UUID) (models.CodigoServicio, error) {
	var codigo models.CodigoServicio
	err := r.db.WithContext(ctx).First(&codigo, "id = ?", id).Error
	if err != nil {
		return models.CodigoServicio{}, wrapNotFound(err, "codigo de servicio %s", id)
	}

	return codigo, nil
}

func (r *CodigoRepository) GetByCodigo(ctx context.Context, codigo string) (models.CodigoServicio, error) {
	var servicio models.CodigoServicio
	err := r.db.WithContext(ctx).First(&servicio, "codigo = ?", codigo).Error
	if err != nil {
		return models.CodigoServicio{}, wrapNotFound(err, "codigo de servicio %q", codigo)
	}

	return servicio, nil
}

func (r *CodigoRepository) GetActivos(ctx context.Context) ([]models.CodigoServicio, error) {
	var codigos []models.CodigoServicio
	err := r.db.WithContext(ctx).Where("activo = ?", true).Order("codigo").Find(&codigos).Error
	return codigos, err
}

func (r *CodigoRepository) Search(ctx context.Context, query string) ([]models.CodigoServicio, error) {
	var codigos []models.CodigoServicio
	patron := "%" + strings.ToLower(query) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(codigo) LIKE ? OR LOWER(descripcion) LIKE ?", patron, patron).
		Order("codigo").
		Find(&codigos).Error
	return codigos, err
}

func (r *CodigoRepository) Create(ctx context.Context, codigo models.CodigoServicio) (models.CodigoServicio, error) {
	err := r.db.WithContext(ctx).Create(&codigo).Error
	return codigo, err
}

func (r *CodigoRepository) Update(ctx context.Context, id uuid.UUID, update models.CodigoServicioUpdate) (models.CodigoServicio, error) {
	codigo, err := r.GetByID(ctx, id)
	if err != nil {
		return models.CodigoServicio{}, err
	}

	update.Apply(&codigo)
	err = r.db.WithContext(ctx).Save(&codigo).Error
	return codigo, err
}

func (r *CodigoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.CodigoServicio{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return wrapNotFound(gorm.ErrRecordNotFound, "codigo de servicio %s", id)
	}

	return nil
}
