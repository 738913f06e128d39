package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pago is a payment applied against an approved Presupuesto. Several
// payments may apply to the same budget.
type Pago struct {
	DefaultModel
	PresupuestoID   uuid.UUID       `json:"presupuesto_id" gorm:"index"`
	Presupuesto     *Presupuesto    `json:"presupuesto,omitempty" gorm:"foreignKey:PresupuestoID"`
	QuienTransfiere string          `json:"quien_transfiere"`
	Monto           decimal.Decimal `json:"monto" gorm:"type:DECIMAL(20,8)"`
	Fecha           time.Time       `json:"fecha"`
	Observaciones   string          `json:"observaciones,omitempty"`
}

func (Pago) TableName() string { return "pagos" }

type PagoUpdate struct {
	QuienTransfiere *string          `json:"quien_transfiere"`
	Monto           *decimal.Decimal `json:"monto"`
	Fecha           *time.Time       `json:"fecha"`
	Observaciones   *string          `json:"observaciones"`
}

func (u PagoUpdate) Apply(pago *Pago) {
	if u.QuienTransfiere != nil {
		pago.QuienTransfiere = *u.QuienTransfiere
	}
	if u.Monto != nil {
		pago.Monto = *u.Monto
	}
	if u.Fecha != nil {
		pago.Fecha = *u.Fecha
	}
	if u.Observaciones != nil {
		pago.Observaciones = *u.Observaciones
	}
}
