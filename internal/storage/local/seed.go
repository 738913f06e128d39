package local

import (
	"github.com/shopspring/decimal"

	"github.com/crmap/backend/internal/models"
)

// Seed rows inserted on first use so that the application is usable
// with zero configuration.

func permisosCompletos() models.Permisos {
	permisos := models.Permisos{}
	for _, modulo := range models.Modulos {
		permisos[modulo] = models.Permiso{Ver: true, Crear: true, Editar: true, Eliminar: true}
	}

	return permisos
}

func usuariosIniciales() []models.Usuario {
	return []models.Usuario{
		{
			AuthID:   "admin-auth-id",
			Nombre:   "Administrador",
			Email:    "admin@crmap.cl",
			Rol:      "Administrador",
			Activo:   true,
			Permisos: permisosCompletos(),
		},
		{
			AuthID: "user-auth-id",
			Nombre: "Asistente Legal",
			Email:  "asistente@crmap.cl",
			Rol:    "Asistente Legal",
			Activo: true,
			Permisos: models.Permisos{
				models.ModuloUsuarios:       {},
				models.ModuloClientes:       {Ver: true, Crear: true},
				models.ModuloPresupuestador: {Ver: true, Crear: true},
				models.ModuloPipeline:       {Ver: true, Crear: true, Editar: true},
				models.ModuloPagos:          {Ver: true, Crear: true},
			},
		},
	}
}

func clientesIniciales() []models.Cliente {
	return []models.Cliente{
		{Nombre: "Juan Pérez García", RUT: "12.345.678-5", Email: "juan.perez@email.com", Telefono: "+56912345678", Activo: true},
		{Nombre: "María González López", RUT: "98.765.432-5", Email: "maria.gonzalez@email.com", Telefono: "+56987654321", Activo: true},
		{Nombre: "Empresa ABC Ltda.", RUT: "76.543.210-3", Email: "contacto@empresaabc.cl", Telefono: "+56922334455", Activo: true},
	}
}

func codigosIniciales() []models.CodigoServicio {
	servicios := []struct {
		codigo      string
		descripcion string
		precio      int64
	}{
		{"EST-001", "Estudio de títulos de propiedad", 150000},
		{"ESC-001", "Redacción de escritura de compraventa", 250000},
		{"ESC-002", "Redacción de escritura de hipoteca", 200000},
		{"INS-001", "Inscripción en Conservador de Bienes Raíces", 80000},
		{"ASE-001", "Asesoría legal en compra de propiedad", 180000},
		{"ASE-002", "Asesoría legal en venta de propiedad", 180000},
		{"CON-001", "Redacción de contrato de arriendo", 120000},
		{"CON-002", "Redacción de promesa de compraventa", 150000},
		{"REP-001", "Representación en negociación inmobiliaria", 300000},
		{"TRA-001", "Trámite de alzamiento de hipoteca", 100000},
	}

	codigos := make([]models.CodigoServicio, 0, len(servicios))
	for _, s := range servicios {
		codigos = append(codigos, models.CodigoServicio{
			Codigo:      s.codigo,
			Descripcion: s.descripcion,
			Precio:      decimal.NewFromInt(s.precio),
			Activo:      true,
		})
	}

	return codigos
}
