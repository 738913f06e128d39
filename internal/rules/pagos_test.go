package rules_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/crmap/backend/internal/models"
	"github.com/crmap/backend/internal/rules"
)

func TestTotalPagado(t *testing.T) {
	pagos := []models.Pago{
		{Monto: decimal.NewFromInt(100000)},
		{Monto: decimal.NewFromInt(50000)},
	}

	assert.True(t, rules.TotalPagado(pagos).Equal(decimal.NewFromInt(150000)))
	assert.True(t, rules.TotalPagado(nil).IsZero())
}

func TestEstadoDePago(t *testing.T) {
	total := decimal.NewFromInt(300000)

	tests := []struct {
		nombre string
		pagado int64
		estado rules.EstadoPago
	}{
		{"sin pagos", 0, rules.EstadoPagoPendiente},
		{"pago parcial", 150000, rules.EstadoPagoParcial},
		{"pago exacto", 300000, rules.EstadoPagoPagado},
		{"sobrepago", 350000, rules.EstadoPagoPagado},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			assert.Equal(t, tt.estado, rules.EstadoDePago(total, decimal.NewFromInt(tt.pagado)))
		})
	}
}

func TestSaldoNoSeRecorta(t *testing.T) {
	saldo := rules.Saldo(decimal.NewFromInt(300000), decimal.NewFromInt(350000))

	assert.True(t, saldo.Equal(decimal.NewFromInt(-50000)), "saldo is %s", saldo)
}

func TestEstadoDePagoPresupuestoCero(t *testing.T) {
	// A zero-total budget counts as paid even without payments.
	assert.Equal(t, rules.EstadoPagoPagado, rules.EstadoDePago(decimal.Zero, decimal.Zero))
}
