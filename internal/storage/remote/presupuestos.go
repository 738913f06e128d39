package remote

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crmap/backend/internal/models"
	"github.com/crmap/backend/internal/rules"
)

type PresupuestoRepository struct {
	db *gorm.DB
}

func NewPresupuestoRepository(db *gorm.DB) *PresupuestoRepository {
	return &PresupuestoRepository{db: db}
}

func (r *PresupuestoRepository) GetAll(ctx context.Context) ([]models.Presupuesto, error) {
	var presupuestos []models.Presupuesto
	err := r.db.WithContext(ctx).Preload("Cliente").Order("created_at DESC").Find(&presupuestos).Error
	return presupuestos, err
}

func (r *PresupuestoRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Presupuesto, error) {
	var presupuesto models.Presupuesto
	err := r.db.WithContext(ctx).Preload("Cliente").First(&presupuesto, "id = ?", id).Error
	if err != nil {
		return models.Presupuesto{}, wrapNotFound(err, "presupuesto %s", id)
	}

	return presupuesto, nil
}

func (r *PresupuestoRepository) GetByNumero(ctx context.Context, numero string) (models.Presupuesto, error) {
	var presupuesto models.Presupuesto
	err := r.db.WithContext(ctx).Preload("Cliente").First(&presupuesto, "numero = ?", numero).Error
	if err != nil {
		return models.Presupuesto{}, wrapNotFound(err, "presupuesto %q", numero)
	}

	return presupuesto, nil
}

func (r *PresupuestoRepository) GetByCliente(ctx context.Context, clienteID uuid.UUID) ([]models.Presupuesto, error) {
	var presupuestos []models.Presupuesto
	err := r.db.WithContext(ctx).Where("cliente_id = ?", clienteID).Order("created_at DESC").Find(&presupuestos).Error
	return presupuestos, err
}

// Create persists a new budget. A missing number is generated as
// P-<year>-NNNN inside the same transaction that counts the existing
// budgets of the year, so concurrent creations cannot observe the
// same count.
func (r *PresupuestoRepository) Create(ctx context.Context, presupuesto models.Presupuesto) (models.Presupuesto, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if presupuesto.Numero == "" {
			numero, err := siguienteNumero(tx)
			if err != nil {
				return err
			}
			presupuesto.Numero = numero
		}

		if presupuesto.Fecha.IsZero() {
			presupuesto.Fecha = tx.NowFunc()
		}
		if presupuesto.Estado == "" {
			presupuesto.Estado = models.EstadoBorrador
		}

		return tx.Create(&presupuesto).Error
	})

	return presupuesto, err
}

func siguienteNumero(tx *gorm.DB) (string, error) {
	prefijo := fmt.Sprintf("P-%d", tx.NowFunc().Year())

	var existentes int64
	err := tx.Model(&models.Presupuesto{}).Where("numero LIKE ?", prefijo+"-%").Count(&existentes).Error
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%04d", prefijo, existentes+1), nil
}

func (r *PresupuestoRepository) Update(ctx context.Context, id uuid.UUID, update models.PresupuestoUpdate) (models.Presupuesto, error) {
	var presupuesto models.Presupuesto
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&presupuesto, "id = ?", id).Error; err != nil {
			return wrapNotFound(err, "presupuesto %s", id)
		}

		update.Apply(&presupuesto)
		if err := tx.Save(&presupuesto).Error; err != nil {
			return err
		}

		// A discount change invalidates the stored totals.
		if update.Descuento != nil {
			return recalcularTotales(tx, &presupuesto)
		}

		return nil
	})

	return presupuesto, err
}

func (r *PresupuestoRepository) UpdateEstado(ctx context.Context, id uuid.UUID, estado models.Estado) (models.Presupuesto, error) {
	presupuesto, err := r.GetByID(ctx, id)
	if err != nil {
		return models.Presupuesto{}, err
	}

	presupuesto.Estado = estado
	err = r.db.WithContext(ctx).Save(&presupuesto).Error
	return presupuesto, err
}

// Delete removes a budget and its line items in one transaction.
func (r *PresupuestoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PresupuestoItem{}, "presupuesto_id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Presupuesto{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return wrapNotFound(gorm.ErrRecordNotFound, "presupuesto %s", id)
		}

		return nil
	})
}

func (r *PresupuestoRepository) GetItems(ctx context.Context, presupuestoID uuid.UUID) ([]models.PresupuestoItem, error) {
	var items []models.PresupuestoItem
	err := r.db.WithContext(ctx).Preload("Codigo").Where("presupuesto_id = ?", presupuestoID).Order("created_at").Find(&items).Error
	return items, err
}

func (r *PresupuestoRepository) AddItem(ctx context.Context, presupuestoID uuid.UUID, item models.PresupuestoItem) (models.PresupuestoItem, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var presupuesto models.Presupuesto
		if err := tx.First(&presupuesto, "id = ?", presupuestoID).Error; err != nil {
			return wrapNotFound(err, "presupuesto %s", presupuestoID)
		}

		item.PresupuestoID = presupuestoID
		if item.Cantidad == 0 {
			item.Cantidad = 1
		}
		item.Subtotal = rules.SubtotalItem(item)

		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		return recalcularTotales(tx, &presupuesto)
	})

	return item, err
}

func (r *PresupuestoRepository) UpdateItem(ctx context.Context, itemID uuid.UUID, update models.PresupuestoItemUpdate) (models.PresupuestoItem, error) {
	var item models.PresupuestoItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			return wrapNotFound(err, "item %s", itemID)
		}

		update.Apply(&item)
		item.Subtotal = rules.SubtotalItem(item)
		if err := tx.Save(&item).Error; err != nil {
			return err
		}

		var presupuesto models.Presupuesto
		if err := tx.First(&presupuesto, "id = ?", item.PresupuestoID).Error; err != nil {
			return err
		}

		return recalcularTotales(tx, &presupuesto)
	})

	return item, err
}

func (r *PresupuestoRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.PresupuestoItem
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			return wrapNotFound(err, "item %s", itemID)
		}

		if err := tx.Delete(&item).Error; err != nil {
			return err
		}

		var presupuesto models.Presupuesto
		if err := tx.First(&presupuesto, "id = ?", item.PresupuestoID).Error; err != nil {
			return err
		}

		return recalcularTotales(tx, &presupuesto)
	})
}

// recalcularTotales refetches the budget's items and persists a fresh
// subtotal and total. Runs inside the caller's transaction.
func recalcularTotales(tx *gorm.DB, presupuesto *models.Presupuesto) error {
	var items []models.PresupuestoItem
	err := tx.Where("presupuesto_id = ?", presupuesto.ID).Find(&items).Error
	if err != nil {
		return err
	}

	presupuesto.Subtotal, presupuesto.Total = rules.CalcularTotales(items, presupuesto.Descuento)
	return tx.Save(presupuesto).Error
}
