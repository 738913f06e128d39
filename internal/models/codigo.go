package models

import "github.com/shopspring/decimal"

// CodigoServicio is a catalog entry mapping a billing code to a
// description and unit price in CLP.
type CodigoServicio struct {
	DefaultModel
	Codigo      string          `json:"codigo" gorm:"uniqueIndex"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio" gorm:"type:DECIMAL(20,8)"`
	Activo      bool            `json:"activo"`
}

func (CodigoServicio) TableName() string { return "codigos_servicio" }

type CodigoServicioUpdate struct {
	Codigo      *string          `json:"codigo"`
	Descripcion *string          `json:"descripcion"`
	Precio      *decimal.Decimal `json:"precio"`
	Activo      *bool            `json:"activo"`
}

func (u CodigoServicioUpdate) Apply(codigo *CodigoServicio) {
	if u.Codigo != nil {
		codigo.Codigo = *u.Codigo
	}
	if u.Descripcion != nil {
		codigo.Descripcion = *u.Descripcion
	}
	if u.Precio != nil {
		codigo.Precio = *u.Precio
	}
	if u.Activo != nil {
		codigo.Activo = *u.Activo
	}
}
