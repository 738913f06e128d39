package local_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/crmap/backend/internal/localstore"
	"github.com/crmap/backend/internal/models"
	"github.com/crmap/backend/internal/rut"
	"github.com/crmap/backend/internal/storage/local"
)

type LocalSuite struct {
	suite.Suite
	ctx   context.Context
	ahora time.Time
	store *localstore.Store

	usuarios     *local.UsuarioRepository
	clientes     *local.ClienteRepository
	codigos      *local.CodigoRepository
	presupuestos *local.PresupuestoRepository
	tratos       *local.TratoRepository
	pagos        *local.PagoRepository
}

func TestLocalSuite(t *testing.T) {
	suite.Run(t, new(LocalSuite))
}

func (s *LocalSuite) SetupTest() {
	s.ctx = context.Background()
	s.ahora = time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

	store, err := localstore.Open(s.T().TempDir(), localstore.WithClock(func() time.Time { return s.ahora }))
	s.Require().NoError(err)
	s.store = store

	s.usuarios, err = local.NewUsuarioRepository(store)
	s.Require().NoError(err)
	s.clientes, err = local.NewClienteRepository(store)
	s.Require().NoError(err)
	s.codigos, err = local.NewCodigoRepository(store)
	s.Require().NoError(err)
	s.presupuestos, err = local.NewPresupuestoRepository(store)
	s.Require().NoError(err)
	s.tratos, err = local.NewTratoRepository(store)
	s.Require().NoError(err)
	s.pagos, err = local.NewPagoRepository(store)
	s.Require().NoError(err)
}

func (s *LocalSuite) TestSeeds() {
	usuarios, err := s.usuarios.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Len(usuarios, 2)

	clientes, err := s.clientes.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Len(clientes, 3)

	codigos, err := s.codigos.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Len(codigos, 10)

	// Seeding runs once, a second repository over the same store must
	// not duplicate the rows.
	otra, err := local.NewClienteRepository(s.store)
	s.Require().NoError(err)
	clientes, err = otra.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Len(clientes, 3)
}

func (s *LocalSuite) TestSeedRUTsSonValidos() {
	clientes, err := s.clientes.GetAll(s.ctx)
	s.Require().NoError(err)

	for _, cliente := range clientes {
		s.True(rut.Validar(cliente.RUT), "RUT %q of %s fails the checksum", cliente.RUT, cliente.Nombre)
	}
}

func (s *LocalSuite) TestGetByRUT() {
	cliente, err := s.clientes.GetByRUT(s.ctx, "12.345.678-5")
	s.Require().NoError(err)
	s.Equal("Juan Pérez García", cliente.Nombre)

	_, err = s.clientes.GetByRUT(s.ctx, "11.111.111-1")
	s.True(errors.Is(err, models.ErrNotFound))
}

func (s *LocalSuite) TestSearchIgnoraAcentos() {
	resultados, err := s.clientes.Search(s.ctx, "perez")
	s.Require().NoError(err)
	s.Require().Len(resultados, 1)
	s.Equal("Juan Pérez García", resultados[0].Nombre)

	resultados, err = s.clientes.Search(s.ctx, "GONZÁLEZ")
	s.Require().NoError(err)
	s.Require().Len(resultados, 1)
	s.Equal("María González López", resultados[0].Nombre)
}

func (s *LocalSuite) TestUsuarioGetByAuthID() {
	usuario, err := s.usuarios.GetByAuthID(s.ctx, "admin-auth-id")
	s.Require().NoError(err)
	s.Equal("Administrador", usuario.Rol)

	_, err = s.usuarios.GetByAuthID(s.ctx, "desconocido")
	s.True(errors.Is(err, models.ErrNotFound))
}

func (s *LocalSuite) crearPresupuesto(numero string) models.Presupuesto {
	clientes, err := s.clientes.GetAll(s.ctx)
	s.Require().NoError(err)

	presupuesto, err := s.presupuestos.Create(s.ctx, models.Presupuesto{
		Numero:    numero,
		ClienteID: clientes[0].ID,
	})
	s.Require().NoError(err)

	return presupuesto
}

func (s *LocalSuite) TestPresupuestoAutoNumeracion() {
	primero := s.crearPresupuesto("")
	segundo := s.crearPresupuesto("")
	tercero := s.crearPresupuesto("")

	s.Equal("P-2024-0001", primero.Numero)
	s.Equal("P-2024-0002", segundo.Numero)
	s.Equal("P-2024-0003", tercero.Numero)

	// The sequence restarts with the year.
	s.ahora = time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	cuarto := s.crearPresupuesto("")
	s.Equal("P-2025-0001", cuarto.Numero)
}

func (s *LocalSuite) TestPresupuestoNumeroExplicitoSeRespeta() {
	presupuesto := s.crearPresupuesto("COTIZACION-7")
	s.Equal("COTIZACION-7", presupuesto.Numero)
}

func (s *LocalSuite) TestPresupuestoDefaults() {
	presupuesto := s.crearPresupuesto("")

	s.Equal(models.EstadoBorrador, presupuesto.Estado)
	s.Equal(s.ahora, presupuesto.Fecha)
	s.True(presupuesto.Subtotal.IsZero())
	s.True(presupuesto.Total.IsZero())
}

func (s *LocalSuite) agregarItem(presupuesto models.Presupuesto, cantidad, precio int64) models.PresupuestoItem {
	codigos, err := s.codigos.GetAll(s.ctx)
	s.Require().NoError(err)

	item, err := s.presupuestos.AddItem(s.ctx, presupuesto.ID, models.PresupuestoItem{
		CodigoID:       codigos[0].ID,
		Cantidad:       cantidad,
		PrecioUnitario: decimal.NewFromInt(precio),
	})
	s.Require().NoError(err)

	return item
}

func (s *LocalSuite) TestItemsRecalculanTotales() {
	presupuesto := s.crearPresupuesto("")

	item := s.agregarItem(presupuesto, 2, 100000)
	s.True(item.Subtotal.Equal(decimal.NewFromInt(200000)), "item subtotal is %s", item.Subtotal)

	s.agregarItem(presupuesto, 1, 50000)

	guardado, err := s.presupuestos.GetByID(s.ctx, presupuesto.ID)
	s.Require().NoError(err)
	s.True(guardado.Subtotal.Equal(decimal.NewFromInt(250000)), "subtotal is %s", guardado.Subtotal)
	s.True(guardado.Total.Equal(decimal.NewFromInt(250000)))

	// Updating the quantity reflows the line and the totals.
	cantidad := int64(3)
	actualizado, err := s.presupuestos.UpdateItem(s.ctx, item.ID, models.PresupuestoItemUpdate{Cantidad: &cantidad})
	s.Require().NoError(err)
	s.True(actualizado.Subtotal.Equal(decimal.NewFromInt(300000)))

	guardado, err = s.presupuestos.GetByID(s.ctx, presupuesto.ID)
	s.Require().NoError(err)
	s.True(guardado.Subtotal.Equal(decimal.NewFromInt(350000)))

	// And removing it does too.
	s.Require().NoError(s.presupuestos.DeleteItem(s.ctx, item.ID))

	guardado, err = s.presupuestos.GetByID(s.ctx, presupuesto.ID)
	s.Require().NoError(err)
	s.True(guardado.Subtotal.Equal(decimal.NewFromInt(50000)))
}

func (s *LocalSuite) TestDescuentoRecalculaTotal() {
	presupuesto := s.crearPresupuesto("")
	s.agregarItem(presupuesto, 2, 100000)
	s.agregarItem(presupuesto, 1, 50000)

	descuento := decimal.NewFromInt(10)
	actualizado, err := s.presupuestos.Update(s.ctx, presupuesto.ID, models.PresupuestoUpdate{Descuento: &descuento})
	s.Require().NoError(err)

	s.True(actualizado.Subtotal.Equal(decimal.NewFromInt(250000)))
	s.True(actualizado.Total.Equal(decimal.NewFromInt(225000)), "total is %s", actualizado.Total)
}

func (s *LocalSuite) TestDeletePresupuestoEliminaItems() {
	presupuesto := s.crearPresupuesto("")
	s.agregarItem(presupuesto, 1, 100000)
	s.agregarItem(presupuesto, 2, 50000)

	s.Require().NoError(s.presupuestos.Delete(s.ctx, presupuesto.ID))

	_, err := s.presupuestos.GetByID(s.ctx, presupuesto.ID)
	s.True(errors.Is(err, models.ErrNotFound))

	items, err := s.presupuestos.GetItems(s.ctx, presupuesto.ID)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *LocalSuite) TestTratoUpdateEtapaRegistraHistorial() {
	trato, err := s.tratos.Create(s.ctx, models.Trato{Titulo: "Compra parcela"})
	s.Require().NoError(err)
	s.Equal(models.EtapaContacto, trato.EtapaActual)

	trato, err = s.tratos.UpdateEtapa(s.ctx, trato.ID, models.EtapaPropuesta, "Ana")
	s.Require().NoError(err)
	s.Equal(models.EtapaPropuesta, trato.EtapaActual)

	s.ahora = s.ahora.Add(time.Hour)
	trato, err = s.tratos.UpdateEtapa(s.ctx, trato.ID, models.EtapaCerrado, "")
	s.Require().NoError(err)
	s.Equal(models.EtapaCerrado, trato.EtapaActual)

	historial, err := s.tratos.GetHistorial(s.ctx, trato.ID)
	s.Require().NoError(err)
	s.Require().Len(historial, 2)

	// Most recent first.
	s.Equal(models.EtapaCerrado, historial[0].Etapa)
	s.Equal("Sistema", historial[0].Usuario)
	s.Equal(fmt.Sprintf("Cambio de etapa: %s → %s", models.EtapaPropuesta, models.EtapaCerrado), historial[0].Descripcion)
	s.Equal("Ana", historial[1].Usuario)
}

func (s *LocalSuite) TestDeleteTratoEliminaHistorial() {
	trato, err := s.tratos.Create(s.ctx, models.Trato{Titulo: "Arriendo oficina"})
	s.Require().NoError(err)

	_, err = s.tratos.UpdateEtapa(s.ctx, trato.ID, models.EtapaRevision, "")
	s.Require().NoError(err)

	s.Require().NoError(s.tratos.Delete(s.ctx, trato.ID))

	historial, err := s.tratos.GetHistorial(s.ctx, trato.ID)
	s.Require().NoError(err)
	s.Empty(historial)
}

func (s *LocalSuite) TestPagosPorPresupuesto() {
	presupuesto := s.crearPresupuesto("")
	otro := s.crearPresupuesto("")

	for _, monto := range []int64{100000, 50000} {
		_, err := s.pagos.Create(s.ctx, models.Pago{
			PresupuestoID: presupuesto.ID,
			Monto:         decimal.NewFromInt(monto),
		})
		s.Require().NoError(err)
	}
	_, err := s.pagos.Create(s.ctx, models.Pago{
		PresupuestoID: otro.ID,
		Monto:         decimal.NewFromInt(999),
	})
	s.Require().NoError(err)

	pagos, err := s.pagos.GetByPresupuesto(s.ctx, presupuesto.ID)
	s.Require().NoError(err)
	s.Len(pagos, 2)

	total, err := s.pagos.GetTotalByPresupuesto(s.ctx, presupuesto.ID)
	s.Require().NoError(err)
	s.True(total.Equal(decimal.NewFromInt(150000)), "total is %s", total)
}

func (s *LocalSuite) TestPagosPorFecha() {
	presupuesto := s.crearPresupuesto("")

	fechas := []time.Time{
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, fecha := range fechas {
		_, err := s.pagos.Create(s.ctx, models.Pago{
			PresupuestoID: presupuesto.ID,
			Monto:         decimal.NewFromInt(1000),
			Fecha:         fecha,
		})
		s.Require().NoError(err)
	}

	pagos, err := s.pagos.GetByFecha(s.ctx,
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC))
	s.Require().NoError(err)
	s.Len(pagos, 2)
}
