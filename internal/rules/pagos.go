package rules

import (
	"github.com/shopspring/decimal"

	"github.com/crmap/backend/internal/models"
)

// EstadoPago is the derived payment status of a budget. It is never
// stored, callers compute it from the budget total and its payments.
type EstadoPago string

const (
	EstadoPagoPendiente EstadoPago = "pendiente"
	EstadoPagoParcial   EstadoPago = "parcial"
	EstadoPagoPagado    EstadoPago = "pagado"
)

// TotalPagado sums the amounts of all payments.
func TotalPagado(pagos []models.Pago) decimal.Decimal {
	var total decimal.Decimal
	for _, pago := range pagos {
		total = total.Add(pago.Monto)
	}

	return total
}

// Saldo is the outstanding balance of a budget. It goes negative on
// overpayment and is intentionally not clamped.
func Saldo(total, pagado decimal.Decimal) decimal.Decimal {
	return total.Sub(pagado)
}

// EstadoDePago derives the payment status from the budget total and
// the amount already paid. A balance of zero or less counts as fully
// paid, overpayment included.
func EstadoDePago(total, pagado decimal.Decimal) EstadoPago {
	if total.Sub(pagado).LessThanOrEqual(decimal.Zero) {
		return EstadoPagoPagado
	}
	if pagado.IsPositive() {
		return EstadoPagoParcial
	}

	return EstadoPagoPendiente
}
