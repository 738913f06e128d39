package models

import "github.com/google/uuid"

// Cliente represents a client of the practice. The RUT is unique and is
// stored in its formatted form, e.g. "12.345.678-5".
type Cliente struct {
	DefaultModel
	Nombre    string     `json:"nombre"`
	RUT       string     `json:"rut" gorm:"uniqueIndex"`
	Email     string     `json:"email,omitempty"`
	Telefono  string     `json:"telefono,omitempty"`
	Activo    bool       `json:"activo"`
	UsuarioID *uuid.UUID `json:"usuario_id,omitempty"`
}

func (Cliente) TableName() string { return "clientes" }

type ClienteUpdate struct {
	Nombre    *string    `json:"nombre"`
	RUT       *string    `json:"rut"`
	Email     *string    `json:"email"`
	Telefono  *string    `json:"telefono"`
	Activo    *bool      `json:"activo"`
	UsuarioID *uuid.UUID `json:"usuario_id"`
}

func (u ClienteUpdate) Apply(cliente *Cliente) {
	if u.Nombre != nil {
		cliente.Nombre = *u.Nombre
	}
	if u.RUT != nil {
		cliente.RUT = *u.RUT
	}
	if u.Email != nil {
		cliente.Email = *u.Email
	}
	if u.Telefono != nil {
		cliente.Telefono = *u.Telefono
	}
	if u.Activo != nil {
		cliente.Activo = *u.Activo
	}
	if u.UsuarioID != nil {
		cliente.UsuarioID = u.UsuarioID
	}
}
