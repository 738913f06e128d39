package rules

import (
	"errors"
	"fmt"
)

// ErrValidacion is the parent of all validation failures so that
// callers can map the whole family with a single errors.Is check.
var ErrValidacion = errors.New("la validación falló")

var (
	ErrRUTInvalido       = fmt.Errorf("%w: el RUT no es válido", ErrValidacion)
	ErrRUTDuplicado      = fmt.Errorf("%w: ya existe un cliente con ese RUT", ErrValidacion)
	ErrCodigoDuplicado   = fmt.Errorf("%w: ya existe un código de servicio con ese código", ErrValidacion)
	ErrMontoInvalido     = fmt.Errorf("%w: el monto debe ser mayor que cero", ErrValidacion)
	ErrDescuentoInvalido = fmt.Errorf("%w: el descuento debe estar entre 0 y 100", ErrValidacion)
	ErrEstadoInvalido    = fmt.Errorf("%w: el estado no es válido", ErrValidacion)
	ErrEtapaInvalida     = fmt.Errorf("%w: la etapa no es válida", ErrValidacion)
	ErrCampoRequerido    = fmt.Errorf("%w: falta un campo requerido", ErrValidacion)
)
