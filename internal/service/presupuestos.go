// Package service implements the business flows that span more than
// one repository. Repositories stay backend-agnostic; the flows here
// work identically on both of them.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/crmap/backend/internal/models"
	"github.com/crmap/backend/internal/storage"
)

// PresupuestoService wraps budget writes with the side effects the
// plain repository does not know about, today that is opening a
// pipeline deal when a budget gets approved.
type PresupuestoService struct {
	presupuestos storage.PresupuestoRepository
	tratos       storage.TratoRepository
	clientes     storage.ClienteRepository
	now          func() time.Time
}

func NewPresupuestoService(presupuestos storage.PresupuestoRepository, tratos storage.TratoRepository, clientes storage.ClienteRepository) *PresupuestoService {
	return &PresupuestoService{
		presupuestos: presupuestos,
		tratos:       tratos,
		clientes:     clientes,
		now:          func() time.Time { return time.Now().In(time.UTC) },
	}
}

func (s *PresupuestoService) Crear(ctx context.Context, presupuesto models.Presupuesto) (models.Presupuesto, error) {
	creado, err := s.presupuestos.Create(ctx, presupuesto)
	if err != nil {
		return models.Presupuesto{}, err
	}

	if creado.Estado == models.EstadoAprobado {
		if err := s.asegurarTrato(ctx, creado); err != nil {
			return models.Presupuesto{}, err
		}
	}

	return creado, nil
}

func (s *PresupuestoService) Actualizar(ctx context.Context, id uuid.UUID, update models.PresupuestoUpdate) (models.Presupuesto, error) {
	actualizado, err := s.presupuestos.Update(ctx, id, update)
	if err != nil {
		return models.Presupuesto{}, err
	}

	if update.Estado != nil && *update.Estado == models.EstadoAprobado {
		if err := s.asegurarTrato(ctx, actualizado); err != nil {
			return models.Presupuesto{}, err
		}
	}

	return actualizado, nil
}

func (s *PresupuestoService) ActualizarEstado(ctx context.Context, id uuid.UUID, estado models.Estado) (models.Presupuesto, error) {
	actualizado, err := s.presupuestos.UpdateEstado(ctx, id, estado)
	if err != nil {
		return models.Presupuesto{}, err
	}

	if estado == models.EstadoAprobado {
		if err := s.asegurarTrato(ctx, actualizado); err != nil {
			return models.Presupuesto{}, err
		}
	}

	return actualizado, nil
}

// asegurarTrato opens a deal for an approved budget. Re-approving the
// same budget is a no-op: at most one deal per budget is ever created.
func (s *PresupuestoService) asegurarTrato(ctx context.Context, presupuesto models.Presupuesto) error {
	existentes, err := s.tratos.GetByPresupuesto(ctx, presupuesto.ID)
	if err != nil {
		return err
	}
	if len(existentes) > 0 {
		return nil
	}

	nombre := ""
	cliente, err := s.clientes.GetByID(ctx, presupuesto.ClienteID)
	if err == nil {
		nombre = cliente.Nombre
	}

	presupuestoID := presupuesto.ID
	trato := models.Trato{
		Titulo:            "Presupuesto " + presupuesto.Numero,
		ClienteID:         &presupuesto.ClienteID,
		PresupuestoID:     &presupuestoID,
		UsuarioID:         presupuesto.UsuarioID,
		NombreCompleto:    nombre,
		PlataformaIngreso: models.PlataformaPresupuesto,
		FechaIngreso:      s.now(),
		EtapaActual:       models.EtapaEnProceso,
	}

	creado, err := s.tratos.Create(ctx, trato)
	if err != nil {
		return err
	}

	log.Info().
		Str("presupuesto", presupuesto.Numero).
		Str("trato", creado.ID.String()).
		Msg("presupuesto aprobado, trato creado")

	return nil
}
