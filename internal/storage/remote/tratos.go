package remote

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crmap/backend/internal/models"
)

type TratoRepository struct {
	db *gorm.DB
}

func NewTratoRepository(db *gorm.DB) *TratoRepository {
	return &TratoRepository{db: db}
}

func (r *TratoRepository) GetAll(ctx context.Context) ([]models.Trato, error) {
	var tratos []models.Trato
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&tratos).Error
	return tratos, err
}

func (r *TratoRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Trato, error) {
	var trato models.Trato
	err := r.db.WithContext(ctx).First(&trato, "id = ?", id).Error
	if err != nil {
		return models.Trato{}, wrapNotFound(err, "trato %s", id)
	}

	return trato, nil
}

func (r *TratoRepository) GetByCliente(ctx context.Context, clienteID uuid.UUID) ([]models.Trato, error) {
	var tratos []models.Trato
	err := r.db.WithContext(ctx).Where("cliente_id = ?", clienteID).Order("created_at DESC").Find(&tratos).Error
	return tratos, err
}

func (r *TratoRepository) GetByEtapa(ctx context.Context, etapa models.Etapa) ([]models.Trato, error) {
	var tratos []models.Trato
	err := r.db.WithContext(ctx).Where("etapa_actual = ?", etapa).Order("created_at DESC").Find(&tratos).Error
	return tratos, err
}

func (r *TratoRepository) GetByPresupuesto(ctx context.Context, presupuestoID uuid.UUID) ([]models.Trato, error) {
	var tratos []models.Trato
	err := r.db.WithContext(ctx).Where("presupuesto_id = ?", presupuestoID).Find(&tratos).Error
	return tratos, err
}

func (r *TratoRepository) Create(ctx context.Context, trato models.Trato) (models.Trato, error) {
	if trato.FechaIngreso.IsZero() {
		trato.FechaIngreso = r.db.NowFunc()
	}
	if trato.EtapaActual == "" {
		trato.EtapaActual = models.EtapaContacto
	}

	err := r.db.WithContext(ctx).Create(&trato).Error
	return trato, err
}

func (r *TratoRepository) Update(ctx context.Context, id uuid.UUID, update models.TratoUpdate) (models.Trato, error) {
	trato, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Trato{}, err
	}

	update.Apply(&trato)
	err = r.db.WithContext(ctx).Save(&trato).Error
	return trato, err
}

// UpdateEtapa moves a deal to a new stage and appends a history entry
// recording the transition, both inside one transaction.
func (r *TratoRepository) UpdateEtapa(ctx context.Context, id uuid.UUID, etapa models.Etapa, usuario string) (models.Trato, error) {
	var trato models.Trato
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&trato, "id = ?", id).Error; err != nil {
			return wrapNotFound(err, "trato %s", id)
		}

		if usuario == "" {
			usuario = "Sistema"
		}

		entrada := models.TratoHistorial{
			TratoID:     id,
			Etapa:       etapa,
			Descripcion: fmt.Sprintf("Cambio de etapa: %s → %s", trato.EtapaActual, etapa),
			Usuario:     usuario,
			Fecha:       tx.NowFunc(),
		}
		if err := tx.Create(&entrada).Error; err != nil {
			return err
		}

		trato.EtapaActual = etapa
		return tx.Save(&trato).Error
	})

	return trato, err
}

func (r *TratoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.TratoHistorial{}, "trato_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Trato{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return wrapNotFound(gorm.ErrRecordNotFound, "trato %s", id)
		}

		return nil
	})
}

// GetHistorial returns a deal's history, most recent first.
func (r *TratoRepository) GetHistorial(ctx context.Context, tratoID uuid.UUID) ([]models.TratoHistorial, error) {
	var entradas []models.TratoHistorial
	err := r.db.WithContext(ctx).Where("trato_id = ?", tratoID).Order("fecha DESC").Find(&entradas).Error
	return entradas, err
}

func (r *TratoRepository) AddHistorial(ctx context.Context, tratoID uuid.UUID, entrada models.TratoHistorial) (models.TratoHistorial, error) {
	entrada.TratoID = tratoID
	if entrada.Fecha.IsZero() {
		entrada.Fecha = r.db.NowFunc()
	}
	if entrada.Usuario == "" {
		entrada.Usuario = "Sistema"
	}

	err := r.db.WithContext(ctx).Create(&entrada).Error
	return entrada, err
}
