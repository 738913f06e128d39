package remote_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/crmap/backend/internal/models"
	"github.com/crmap/backend/internal/storage/remote"
	"github.com/crmap/backend/test"
)

type RemoteSuite struct {
	suite.Suite
	ctx context.Context
	db  *gorm.DB

	usuarios     *remote.UsuarioRepository
	clientes     *remote.ClienteRepository
	codigos      *remote.CodigoRepository
	presupuestos *remote.PresupuestoRepository
	tratos       *remote.TratoRepository
	pagos        *remote.PagoRepository
}

func TestRemoteSuite(t *testing.T) {
	suite.Run(t, new(RemoteSuite))
}

func (s *RemoteSuite) SetupTest() {
	s.ctx = context.Background()

	db, err := remote.Open(sqlite.Open(test.TmpFile(s.T()) + "?_pragma=foreign_keys(1)"))
	s.Require().NoError(err)
	s.db = db

	s.usuarios = remote.NewUsuarioRepository(db)
	s.clientes = remote.NewClienteRepository(db)
	s.codigos = remote.NewCodigoRepository(db)
	s.presupuestos = remote.NewPresupuestoRepository(db)
	s.tratos = remote.NewTratoRepository(db)
	s.pagos = remote.NewPagoRepository(db)
}

func (s *RemoteSuite) crearCliente() models.Cliente {
	cliente, err := s.clientes.Create(s.ctx, models.Cliente{
		Nombre: "Juan Pérez García",
		RUT:    "12.345.678-5",
		Email:  "juan.perez@email.com",
		Activo: true,
	})
	s.Require().NoError(err)

	return cliente
}

func (s *RemoteSuite) crearCodigo() models.CodigoServicio {
	codigo, err := s.codigos.Create(s.ctx, models.CodigoServicio{
		Codigo:      "EST-001",
		Descripcion: "Estudio de títulos de propiedad",
		Precio:      decimal.NewFromInt(150000),
		Activo:      true,
	})
	s.Require().NoError(err)

	return codigo
}

func (s *RemoteSuite) crearPresupuesto(numero string) models.Presupuesto {
	presupuesto, err := s.presupuestos.Create(s.ctx, models.Presupuesto{
		Numero:    numero,
		ClienteID: s.crearCliente().ID,
	})
	s.Require().NoError(err)

	return presupuesto
}

func (s *RemoteSuite) TestUsuarioRoundTrip() {
	creado, err := s.usuarios.Create(s.ctx, models.Usuario{
		AuthID: "auth-1",
		Nombre: "Ana",
		Email:  "ana@crmap.cl",
		Rol:    "Administrador",
		Activo: true,
		Permisos: models.Permisos{
			models.ModuloClientes: {Ver: true, Crear: true},
		},
	})
	s.Require().NoError(err)

	leido, err := s.usuarios.GetByAuthID(s.ctx, "auth-1")
	s.Require().NoError(err)
	s.Equal(creado.ID, leido.ID)
	s.True(leido.Permisos[models.ModuloClientes].Crear)

	_, err = s.usuarios.GetByEmail(s.ctx, "nadie@crmap.cl")
	s.True(errors.Is(err, models.ErrNotFound))
}

func (s *RemoteSuite) TestClienteSearch() {
	s.crearCliente()
	_, err := s.clientes.Create(s.ctx, models.Cliente{
		Nombre: "Empresa ABC Ltda.",
		RUT:    "76.543.210-3",
		Activo: false,
	})
	s.Require().NoError(err)

	resultados, err := s.clientes.Search(s.ctx, "empresa")
	s.Require().NoError(err)
	s.Require().Len(resultados, 1)
	s.Equal("Empresa ABC Ltda.", resultados[0].Nombre)

	activos, err := s.clientes.GetActivos(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(activos, 1)
	s.Equal("Juan Pérez García", activos[0].Nombre)
}

func (s *RemoteSuite) TestClienteDeleteUnknownIsNotFound() {
	cliente := s.crearCliente()

	s.Require().NoError(s.clientes.Delete(s.ctx, cliente.ID))
	s.True(errors.Is(s.clientes.Delete(s.ctx, cliente.ID), models.ErrNotFound))
}

func (s *RemoteSuite) TestPresupuestoAutoNumeracion() {
	cliente := s.crearCliente()

	year := s.db.NowFunc().Year()
	for i := 0; i < 3; i++ {
		presupuesto, err := s.presupuestos.Create(s.ctx, models.Presupuesto{ClienteID: cliente.ID})
		s.Require().NoError(err)
		s.Equal(fmt.Sprintf("P-%d-%04d", year, i+1), presupuesto.Numero)
	}

	// An explicit number is kept as is.
	presupuesto, err := s.presupuestos.Create(s.ctx, models.Presupuesto{
		ClienteID: cliente.ID,
		Numero:    "COTIZACION-7",
	})
	s.Require().NoError(err)
	s.Equal("COTIZACION-7", presupuesto.Numero)
}

func (s *RemoteSuite) TestPresupuestoItemsRecalculanTotales() {
	presupuesto := s.crearPresupuesto("")
	codigo := s.crearCodigo()

	item, err := s.presupuestos.AddItem(s.ctx, presupuesto.ID, models.PresupuestoItem{
		CodigoID:       codigo.ID,
		Cantidad:       2,
		PrecioUnitario: decimal.NewFromInt(100000),
	})
	s.Require().NoError(err)
	s.True(item.Subtotal.Equal(decimal.NewFromInt(200000)))

	_, err = s.presupuestos.AddItem(s.ctx, presupuesto.ID, models.PresupuestoItem{
		CodigoID:       codigo.ID,
		Cantidad:       1,
		PrecioUnitario: decimal.NewFromInt(50000),
	})
	s.Require().NoError(err)

	guardado, err := s.presupuestos.GetByID(s.ctx, presupuesto.ID)
	s.Require().NoError(err)
	s.True(guardado.Subtotal.Equal(decimal.NewFromInt(250000)), "subtotal is %s", guardado.Subtotal)

	descuento := decimal.NewFromInt(10)
	guardado, err = s.presupuestos.Update(s.ctx, presupuesto.ID, models.PresupuestoUpdate{Descuento: &descuento})
	s.Require().NoError(err)
	s.True(guardado.Total.Equal(decimal.NewFromInt(225000)), "total is %s", guardado.Total)

	s.Require().NoError(s.presupuestos.DeleteItem(s.ctx, item.ID))

	guardado, err = s.presupuestos.GetByID(s.ctx, presupuesto.ID)
	s.Require().NoError(err)
	s.True(guardado.Subtotal.Equal(decimal.NewFromInt(50000)))
	s.True(guardado.Total.Equal(decimal.NewFromInt(45000)))
}

func (s *RemoteSuite) TestDeletePresupuestoEliminaItems() {
	presupuesto := s.crearPresupuesto("")
	codigo := s.crearCodigo()

	_, err := s.presupuestos.AddItem(s.ctx, presupuesto.ID, models.PresupuestoItem{
		CodigoID:       codigo.ID,
		Cantidad:       1,
		PrecioUnitario: decimal.NewFromInt(80000),
	})
	s.Require().NoError(err)

	s.Require().NoError(s.presupuestos.Delete(s.ctx, presupuesto.ID))

	items, err := s.presupuestos.GetItems(s.ctx, presupuesto.ID)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *RemoteSuite) TestTratoUpdateEtapaRegistraHistorial() {
	trato, err := s.tratos.Create(s.ctx, models.Trato{Titulo: "Compra parcela"})
	s.Require().NoError(err)
	s.Equal(models.EtapaContacto, trato.EtapaActual)

	trato, err = s.tratos.UpdateEtapa(s.ctx, trato.ID, models.EtapaPropuesta, "Ana")
	s.Require().NoError(err)
	s.Equal(models.EtapaPropuesta, trato.EtapaActual)

	historial, err := s.tratos.GetHistorial(s.ctx, trato.ID)
	s.Require().NoError(err)
	s.Require().Len(historial, 1)
	s.Equal("Ana", historial[0].Usuario)
	s.Equal(models.EtapaPropuesta, historial[0].Etapa)

	s.Require().NoError(s.tratos.Delete(s.ctx, trato.ID))

	historial, err = s.tratos.GetHistorial(s.ctx, trato.ID)
	s.Require().NoError(err)
	s.Empty(historial)
}

func (s *RemoteSuite) TestPagoTotales() {
	presupuesto := s.crearPresupuesto("")

	total, err := s.pagos.GetTotalByPresupuesto(s.ctx, presupuesto.ID)
	s.Require().NoError(err)
	s.True(total.IsZero())

	for _, monto := range []int64{100000, 50000} {
		_, err := s.pagos.Create(s.ctx, models.Pago{
			PresupuestoID: presupuesto.ID,
			Monto:         decimal.NewFromInt(monto),
		})
		s.Require().NoError(err)
	}

	total, err = s.pagos.GetTotalByPresupuesto(s.ctx, presupuesto.ID)
	s.Require().NoError(err)
	s.True(total.Equal(decimal.NewFromInt(150000)), "total is %s", total)
}
