package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// Etapa is one discrete position in the deal pipeline. The pipeline is
// ordered for display, but any stage is reachable from any other.
type Etapa string

const (
	EtapaContacto      Etapa = "contacto"
	EtapaPropuesta     Etapa = "propuesta"
	EtapaEnProceso     Etapa = "en_proceso"
	EtapaDocumentacion Etapa = "documentacion"
	EtapaRevision      Etapa = "revision"
	EtapaCerrado       Etapa = "cerrado"
)

// Etapas lists the pipeline stages in display order.
var Etapas = []Etapa{EtapaContacto, EtapaPropuesta, EtapaEnProceso, EtapaDocumentacion, EtapaRevision, EtapaCerrado}

func (e Etapa) Valida() bool {
	return slices.Contains(Etapas, e)
}

// PlataformaPresupuesto is the sentinel intake platform for deals
// created automatically when a budget is approved.
const PlataformaPresupuesto = "Presupuesto"

// Trato is a pipeline record tracking a prospective or active
// engagement through stages.
type Trato struct {
	DefaultModel
	Titulo            string           `json:"titulo"`
	ClienteID         *uuid.UUID       `json:"cliente_id,omitempty"`
	Cliente           *Cliente         `json:"cliente,omitempty" gorm:"foreignKey:ClienteID"`
	PresupuestoID     *uuid.UUID       `json:"presupuesto_id,omitempty"`
	Presupuesto       *Presupuesto     `json:"presupuesto,omitempty" gorm:"foreignKey:PresupuestoID"`
	UsuarioID         *uuid.UUID       `json:"usuario_id,omitempty"`
	NombreCompleto    string           `json:"nombre_completo"`
	PlataformaIngreso string           `json:"plataforma_ingreso,omitempty"`
	FechaIngreso      time.Time        `json:"fecha_ingreso"`
	EtapaActual       Etapa            `json:"etapa_actual"`
	FechaVencimiento  *time.Time       `json:"fecha_vencimiento,omitempty"`
	MotivoConsulta    string           `json:"motivo_consulta,omitempty"`
	Historial         []TratoHistorial `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (Trato) TableName() string { return "tratos" }

// TratoHistorial is one append-only stage-change entry for a Trato.
type TratoHistorial struct {
	DefaultModel
	TratoID     uuid.UUID `json:"trato_id" gorm:"index"`
	Etapa       Etapa     `json:"etapa"`
	Descripcion string    `json:"descripcion"`
	Usuario     string    `json:"usuario"`
	Fecha       time.Time `json:"fecha"`
}

func (TratoHistorial) TableName() string { return "trato_historial" }

type TratoUpdate struct {
	Titulo            *string    `json:"titulo"`
	ClienteID         *uuid.UUID `json:"cliente_id"`
	PresupuestoID     *uuid.UUID `json:"presupuesto_id"`
	NombreCompleto    *string    `json:"nombre_completo"`
	PlataformaIngreso *string    `json:"plataforma_ingreso"`
	FechaIngreso      *time.Time `json:"fecha_ingreso"`
	FechaVencimiento  *time.Time `json:"fecha_vencimiento"`
	MotivoConsulta    *string    `json:"motivo_consulta"`
}

func (u TratoUpdate) Apply(trato *Trato) {
	if u.Titulo != nil {
		trato.Titulo = *u.Titulo
	}
	if u.ClienteID != nil {
		trato.ClienteID = u.ClienteID
	}
	if u.PresupuestoID != nil {
		trato.PresupuestoID = u.PresupuestoID
	}
	if u.NombreCompleto != nil {
		trato.NombreCompleto = *u.NombreCompleto
	}
	if u.PlataformaIngreso != nil {
		trato.PlataformaIngreso = *u.PlataformaIngreso
	}
	if u.FechaIngreso != nil {
		trato.FechaIngreso = *u.FechaIngreso
	}
	if u.FechaVencimiento != nil {
		trato.FechaVencimiento = u.FechaVencimiento
	}
	if u.MotivoConsulta != nil {
		trato.MotivoConsulta = *u.MotivoConsulta
	}
}
