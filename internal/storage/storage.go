// Package storage declares the repository contracts for every entity
// and the factory that selects one of the two interchangeable
// backends: the durable local key-space store and the remote
// relational database.
//
// This contract surface is the only interface the HTTP layer and the
// business services are allowed to depend on. Implementations never
// swallow errors, they either return a result or an error, and missing
// ids surface as models.ErrNotFound.
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crmap/backend/internal/models"
)

type UsuarioRepository interface {
	GetAll(ctx context.Context) ([]models.Usuario, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Usuario, error)
	GetByAuthID(ctx context.Context, authID string) (models.Usuario, error)
	GetByEmail(ctx context.Context, email string) (models.Usuario, error)
	Create(ctx context.Context, usuario models.Usuario) (models.Usuario, error)
	Update(ctx context.Context, id uuid.UUID, update models.UsuarioUpdate) (models.Usuario, error)
	UpdatePermisos(ctx context.Context, id uuid.UUID, permisos models.Permisos) (models.Usuario, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ClienteRepository interface {
	GetAll(ctx context.Context) ([]models.Cliente, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Cliente, error)
	GetByRUT(ctx context.Context, rut string) (models.Cliente, error)
	GetActivos(ctx context.Context) ([]models.Cliente, error)
	Search(ctx context.Context, query string) ([]models.Cliente, error)
	Create(ctx context.Context, cliente models.Cliente) (models.Cliente, error)
	Update(ctx context.Context, id uuid.UUID, update models.ClienteUpdate) (models.Cliente, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CodigoRepository interface {
	GetAll(ctx context.Context) ([]models.CodigoServicio, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.CodigoServicio, error)
	GetByCodigo(ctx context.Context, codigo string) (models.CodigoServicio, error)
	GetActivos(ctx context.Context) ([]models.CodigoServicio, error)
	Search(ctx context.Context, query string) ([]models.CodigoServicio, error)
	Create(ctx context.Context, codigo models.CodigoServicio) (models.CodigoServicio, error)
	Update(ctx context.Context, id uuid.UUID, update models.CodigoServicioUpdate) (models.CodigoServicio, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PresupuestoRepository owns budgets and their line items. Item
// mutations recompute the budget's subtotal and total, which makes the
// repository the single place where totals are authoritative.
type PresupuestoRepository interface {
	GetAll(ctx context.Context) ([]models.Presupuesto, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Presupuesto, error)
	GetByNumero(ctx context.Context, numero string) (models.Presupuesto, error)
	GetByCliente(ctx context.Context, clienteID uuid.UUID) ([]models.Presupuesto, error)
	Create(ctx context.Context, presupuesto models.Presupuesto) (models.Presupuesto, error)
	Update(ctx context.Context, id uuid.UUID, update models.PresupuestoUpdate) (models.Presupuesto, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado models.Estado) (models.Presupuesto, error)
	Delete(ctx context.Context, id uuid.UUID) error

	GetItems(ctx context.Context, presupuestoID uuid.UUID) ([]models.PresupuestoItem, error)
	AddItem(ctx context.Context, presupuestoID uuid.UUID, item models.PresupuestoItem) (models.PresupuestoItem, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, update models.PresupuestoItemUpdate) (models.PresupuestoItem, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
}

// TratoRepository owns deals and their append-only stage history.
type TratoRepository interface {
	GetAll(ctx context.Context) ([]models.Trato, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Trato, error)
	GetByCliente(ctx context.Context, clienteID uuid.UUID) ([]models.Trato, error)
	GetByEtapa(ctx context.Context, etapa models.Etapa) ([]models.Trato, error)
	GetByPresupuesto(ctx context.Context, presupuestoID uuid.UUID) ([]models.Trato, error)
	Create(ctx context.Context, trato models.Trato) (models.Trato, error)
	Update(ctx context.Context, id uuid.UUID, update models.TratoUpdate) (models.Trato, error)
	UpdateEtapa(ctx context.Context, id uuid.UUID, etapa models.Etapa, usuario string) (models.Trato, error)
	Delete(ctx context.Context, id uuid.UUID) error

	GetHistorial(ctx context.Context, tratoID uuid.UUID) ([]models.TratoHistorial, error)
	AddHistorial(ctx context.Context, tratoID uuid.UUID, entrada models.TratoHistorial) (models.TratoHistorial, error)
}

type PagoRepository interface {
	GetAll(ctx context.Context) ([]models.Pago, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Pago, error)
	GetByPresupuesto(ctx context.Context, presupuestoID uuid.UUID) ([]models.Pago, error)
	GetTotalByPresupuesto(ctx context.Context, presupuestoID uuid.UUID) (decimal.Decimal, error)
	GetByFecha(ctx context.Context, desde, hasta time.Time) ([]models.Pago, error)
	Create(ctx context.Context, pago models.Pago) (models.Pago, error)
	Update(ctx context.Context, id uuid.UUID, update models.PagoUpdate) (models.Pago, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
