package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/crmap/backend/internal/localstore"
	"github.com/crmap/backend/internal/models"
	"github.com/crmap/backend/internal/service"
	"github.com/crmap/backend/internal/storage/local"
)

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	servicio *service.PresupuestoService
	tratos   *local.TratoRepository
	cliente  models.Cliente
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()

	store, err := localstore.Open(s.T().TempDir())
	s.Require().NoError(err)

	presupuestos, err := local.NewPresupuestoRepository(store)
	s.Require().NoError(err)
	s.tratos, err = local.NewTratoRepository(store)
	s.Require().NoError(err)
	clientes, err := local.NewClienteRepository(store)
	s.Require().NoError(err)

	lista, err := clientes.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Require().NotEmpty(lista)
	s.cliente = lista[0]

	s.servicio = service.NewPresupuestoService(presupuestos, s.tratos, clientes)
}

func (s *ServiceSuite) tratosDe(presupuesto models.Presupuesto) []models.Trato {
	tratos, err := s.tratos.GetByPresupuesto(s.ctx, presupuesto.ID)
	s.Require().NoError(err)

	return tratos
}

func (s *ServiceSuite) TestAprobarCreaTrato() {
	presupuesto, err := s.servicio.Crear(s.ctx, models.Presupuesto{ClienteID: s.cliente.ID})
	s.Require().NoError(err)
	s.Empty(s.tratosDe(presupuesto), "a draft must not open a deal")

	presupuesto, err = s.servicio.ActualizarEstado(s.ctx, presupuesto.ID, models.EstadoAprobado)
	s.Require().NoError(err)

	tratos := s.tratosDe(presupuesto)
	s.Require().Len(tratos, 1)
	s.Equal("Presupuesto "+presupuesto.Numero, tratos[0].Titulo)
	s.Equal(s.cliente.Nombre, tratos[0].NombreCompleto)
	s.Equal(models.EtapaEnProceso, tratos[0].EtapaActual)
	s.Equal(models.PlataformaPresupuesto, tratos[0].PlataformaIngreso)
	s.Require().NotNil(tratos[0].ClienteID)
	s.Equal(s.cliente.ID, *tratos[0].ClienteID)
}

func (s *ServiceSuite) TestReaprobarNoDuplicaTrato() {
	presupuesto, err := s.servicio.Crear(s.ctx, models.Presupuesto{ClienteID: s.cliente.ID})
	s.Require().NoError(err)

	for i := 0; i < 3; i++ {
		_, err = s.servicio.ActualizarEstado(s.ctx, presupuesto.ID, models.EstadoAprobado)
		s.Require().NoError(err)
	}

	s.Len(s.tratosDe(presupuesto), 1)
}

func (s *ServiceSuite) TestCrearAprobadoCreaTrato() {
	presupuesto, err := s.servicio.Crear(s.ctx, models.Presupuesto{
		ClienteID: s.cliente.ID,
		Estado:    models.EstadoAprobado,
	})
	s.Require().NoError(err)

	s.Len(s.tratosDe(presupuesto), 1)
}

func (s *ServiceSuite) TestActualizarConEstadoAprobadoCreaTrato() {
	presupuesto, err := s.servicio.Crear(s.ctx, models.Presupuesto{ClienteID: s.cliente.ID})
	s.Require().NoError(err)

	estado := models.EstadoAprobado
	presupuesto, err = s.servicio.Actualizar(s.ctx, presupuesto.ID, models.PresupuestoUpdate{Estado: &estado})
	s.Require().NoError(err)

	s.Len(s.tratosDe(presupuesto), 1)
}

func (s *ServiceSuite) TestRechazarNoCreaTrato() {
	presupuesto, err := s.servicio.Crear(s.ctx, models.Presupuesto{ClienteID: s.cliente.ID})
	s.Require().NoError(err)

	presupuesto, err = s.servicio.ActualizarEstado(s.ctx, presupuesto.ID, models.EstadoRechazado)
	s.Require().NoError(err)

	s.Empty(s.tratosDe(presupuesto))
}
