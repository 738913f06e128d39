// Package rut validates and formats Chilean national tax identifiers
// (RUT), which carry a modulo-11 check digit.
package rut

import "strings"

// Limpiar strips separators from a RUT and uppercases it, leaving only
// digits and the check character.
func Limpiar(rut string) string {
	var b strings.Builder
	for _, r := range rut {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'k' || r == 'K':
			b.WriteByte('K')
		}
	}

	return b.String()
}

// Validar reports whether the RUT's check character matches its body.
//
// The body is walked right to left, each digit multiplied by the
// repeating weight sequence 2,3,4,5,6,7,2,3,... The expected check
// value is 11 - (sum mod 11), mapping 11 to "0" and 10 to "K".
func Validar(rut string) bool {
	limpio := Limpiar(rut)
	if len(limpio) < 2 {
		return false
	}

	cuerpo := limpio[:len(limpio)-1]
	dv := limpio[len(limpio)-1:]

	esperado, ok := digitoVerificador(cuerpo)
	if !ok {
		return false
	}

	return dv == esperado
}

// Formatear normalizes a RUT into its canonical form with thousands
// separators in the body and a hyphen before the check character,
// e.g. "123456785" becomes "12.345.678-5".
func Formatear(rut string) string {
	limpio := Limpiar(rut)
	if len(limpio) < 2 {
		return limpio
	}

	cuerpo := limpio[:len(limpio)-1]
	dv := limpio[len(limpio)-1:]

	var b strings.Builder
	for i, r := range cuerpo {
		resto := len(cuerpo) - i
		if i > 0 && resto%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	return b.String() + "-" + dv
}

func digitoVerificador(cuerpo string) (string, bool) {
	suma := 0
	multiplo := 2
	for i := len(cuerpo) - 1; i >= 0; i-- {
		c := cuerpo[i]
		if c < '0' || c > '9' {
			return "", false
		}

		suma += int(c-'0') * multiplo
		if multiplo < 7 {
			multiplo++
		} else {
			multiplo = 2
		}
	}

	switch esperado := 11 - (suma % 11); esperado {
	case 11:
		return "0", true
	case 10:
		return "K", true
	default:
		return string(rune('0' + esperado)), true
	}
}
