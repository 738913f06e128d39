package rules

import "time"

// fechaSola truncates a timestamp to its calendar day in UTC.
func fechaSola(t time.Time) time.Time {
	y, m, d := t.In(time.UTC).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Vencido reports whether a due date lies before today. Both values
// are compared at calendar-day granularity.
func Vencido(fecha, hoy time.Time) bool {
	return fechaSola(fecha).Before(fechaSola(hoy))
}

// PorVencer reports whether a due date falls within the next three
// days, today included. Used only for display flags, it never blocks a
// stage transition.
func PorVencer(fecha, hoy time.Time) bool {
	dias := int(fechaSola(fecha).Sub(fechaSola(hoy)).Hours() / 24)
	return dias >= 0 && dias <= 3
}
