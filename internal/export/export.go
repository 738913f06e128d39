// Package export renders entity lists as spreadsheet-friendly CSV.
// The files use ';' as the separator and start with a UTF-8 BOM so
// that Excel detects the encoding, which matters for the accented
// Spanish headers.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// Column binds a header title to the function extracting its value.
type Column[T any] struct {
	Titulo string
	Valor  func(T) string
}

// CSV writes the rows with one record per element, headers first.
func CSV[T any](w io.Writer, filas []T, columnas []Column[T]) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	encabezados := make([]string, len(columnas))
	for i, col := range columnas {
		encabezados[i] = col.Titulo
	}
	if err := cw.Write(encabezados); err != nil {
		return err
	}

	registro := make([]string, len(columnas))
	for _, fila := range filas {
		for i, col := range columnas {
			registro[i] = col.Valor(fila)
		}
		if err := cw.Write(registro); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// Filename builds the date-stamped download name for an export.
func Filename(base string, hoy time.Time) string {
	return fmt.Sprintf("%s_%s.csv", base, hoy.Format("2006-01-02"))
}
