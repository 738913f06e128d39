package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Estado is the lifecycle status of a Presupuesto.
type Estado string

const (
	EstadoBorrador  Estado = "borrador"
	EstadoEnviado   Estado = "enviado"
	EstadoAprobado  Estado = "aprobado"
	EstadoRechazado Estado = "rechazado"
)

// Estados lists all valid statuses.
var Estados = []Estado{EstadoBorrador, EstadoEnviado, EstadoAprobado, EstadoRechazado}

func (e Estado) Valido() bool {
	return slices.Contains(Estados, e)
}

// Presupuesto is a priced proposal document (quote) with line items,
// a percentage discount and an approval status.
//
// Subtotal and Total are derived from the items and the discount. They
// are recomputed by the repositories on every item or discount change,
// callers must never write them directly.
type Presupuesto struct {
	DefaultModel
	Numero    string            `json:"numero" gorm:"uniqueIndex"`
	ClienteID uuid.UUID         `json:"cliente_id"`
	Cliente   *Cliente          `json:"cliente,omitempty" gorm:"foreignKey:ClienteID"`
	UsuarioID *uuid.UUID        `json:"usuario_id,omitempty"`
	Fecha     time.Time         `json:"fecha"`
	Estado    Estado            `json:"estado"`
	Descuento decimal.Decimal   `json:"descuento" gorm:"type:DECIMAL(20,8)"`
	Subtotal  decimal.Decimal   `json:"subtotal" gorm:"type:DECIMAL(20,8)"`
	Total     decimal.Decimal   `json:"total" gorm:"type:DECIMAL(20,8)"`
	Notas     string            `json:"notas,omitempty"`
	Items     []PresupuestoItem `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (Presupuesto) TableName() string { return "presupuestos" }

// PresupuestoItem is one line of a Presupuesto. PrecioUnitario is a
// snapshot of the service price at the time the line was added.
type PresupuestoItem struct {
	DefaultModel
	PresupuestoID  uuid.UUID       `json:"presupuesto_id" gorm:"index"`
	CodigoID       uuid.UUID       `json:"codigo_id"`
	Codigo         *CodigoServicio `json:"codigo,omitempty" gorm:"foreignKey:CodigoID"`
	Cantidad       int64           `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" gorm:"type:DECIMAL(20,8)"`
	Subtotal       decimal.Decimal `json:"subtotal" gorm:"type:DECIMAL(20,8)"`
}

func (PresupuestoItem) TableName() string { return "presupuesto_items" }

type PresupuestoUpdate struct {
	ClienteID *uuid.UUID       `json:"cliente_id"`
	Fecha     *time.Time       `json:"fecha"`
	Estado    *Estado          `json:"estado"`
	Descuento *decimal.Decimal `json:"descuento"`
	Notas     *string          `json:"notas"`
}

func (u PresupuestoUpdate) Apply(p *Presupuesto) {
	if u.ClienteID != nil {
		p.ClienteID = *u.ClienteID
	}
	if u.Fecha != nil {
		p.Fecha = *u.Fecha
	}
	if u.Estado != nil {
		p.Estado = *u.Estado
	}
	if u.Descuento != nil {
		p.Descuento = *u.Descuento
	}
	if u.Notas != nil {
		p.Notas = *u.Notas
	}
}

type PresupuestoItemUpdate struct {
	CodigoID       *uuid.UUID       `json:"codigo_id"`
	Cantidad       *int64           `json:"cantidad"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
}

func (u PresupuestoItemUpdate) Apply(item *PresupuestoItem) {
	if u.CodigoID != nil {
		item.CodigoID = *u.CodigoID
	}
	if u.Cantidad != nil {
		item.Cantidad = *u.Cantidad
	}
	if u.PrecioUnitario != nil {
		item.PrecioUnitario = *u.PrecioUnitario
	}
}
