package rules_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/crmap/backend/internal/models"
	"github.com/crmap/backend/internal/rules"
)

func item(cantidad int64, precio int64) models.PresupuestoItem {
	return models.PresupuestoItem{
		Cantidad:       cantidad,
		PrecioUnitario: decimal.NewFromInt(precio),
	}
}

func TestCalcularTotales(t *testing.T) {
	items := []models.PresupuestoItem{
		item(2, 100000),
		item(1, 50000),
	}

	subtotal, total := rules.CalcularTotales(items, decimal.NewFromInt(10))

	assert.True(t, subtotal.Equal(decimal.NewFromInt(250000)), "subtotal is %s", subtotal)
	assert.True(t, total.Equal(decimal.NewFromInt(225000)), "total is %s", total)
}

func TestCalcularTotalesSinDescuento(t *testing.T) {
	subtotal, total := rules.CalcularTotales([]models.PresupuestoItem{item(3, 75000)}, decimal.Zero)

	assert.True(t, subtotal.Equal(total))
	assert.True(t, subtotal.Equal(decimal.NewFromInt(225000)))
}

func TestCalcularTotalesSinItems(t *testing.T) {
	subtotal, total := rules.CalcularTotales(nil, decimal.NewFromInt(50))

	assert.True(t, subtotal.IsZero())
	assert.True(t, total.IsZero())
}

func TestCalcularTotalesDescuentoCompleto(t *testing.T) {
	_, total := rules.CalcularTotales([]models.PresupuestoItem{item(1, 99990)}, decimal.NewFromInt(100))

	assert.True(t, total.IsZero(), "total is %s", total)
}

func TestSubtotalItem(t *testing.T) {
	assert.True(t, rules.SubtotalItem(item(4, 12500)).Equal(decimal.NewFromInt(50000)))
}

func TestDescuentoValido(t *testing.T) {
	tests := []struct {
		descuento int64
		valido    bool
	}{
		{0, true},
		{50, true},
		{100, true},
		{-1, false},
		{101, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valido, rules.DescuentoValido(decimal.NewFromInt(tt.descuento)), "descuento %d", tt.descuento)
	}
}
