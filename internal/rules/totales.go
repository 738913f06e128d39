// Package rules holds the pure business rules of the CRM: budget
// totals, payment reconciliation and due-date flags. The repositories
// and the HTTP layer both call into this package so that displayed and
// stored values never diverge.
package rules

import (
	"github.com/shopspring/decimal"

	"github.com/crmap/backend/internal/models"
)

var cien = decimal.NewFromInt(100)

// CalcularTotales computes the subtotal and total for a set of budget
// line items and a percentage discount.
//
//	subtotal = Σ cantidad × precio unitario
//	total    = subtotal − subtotal × descuento / 100
func CalcularTotales(items []models.PresupuestoItem, descuento decimal.Decimal) (subtotal, total decimal.Decimal) {
	for _, item := range items {
		subtotal = subtotal.Add(decimal.NewFromInt(item.Cantidad).Mul(item.PrecioUnitario))
	}

	total = subtotal.Sub(subtotal.Mul(descuento).Div(cien))

	return subtotal, total
}

// SubtotalItem computes the line subtotal for a single item.
func SubtotalItem(item models.PresupuestoItem) decimal.Decimal {
	return decimal.NewFromInt(item.Cantidad).Mul(item.PrecioUnitario)
}

// DescuentoValido reports whether a discount percentage is in [0, 100].
func DescuentoValido(descuento decimal.Decimal) bool {
	return !descuento.IsNegative() && descuento.LessThanOrEqual(cien)
}
