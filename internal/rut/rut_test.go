package rut_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crmap/backend/internal/rut"
)

func TestValidar(t *testing.T) {
	tests := []struct {
		rut    string
		valido bool
	}{
		{"12.345.678-5", true},
		{"12345678-5", true},
		{"123456785", true},
		{"12345678-9", false},
		{"98.765.432-5", true},
		{"98.765.432-1", false},
		{"76.543.210-3", true},
		{"76.543.210-K", false},
		// check digit K
		{"15.000.005-K", true},
		{"15000005k", true},
		// check digit 0
		{"15.000.013-0", true},
		{"", false},
		{"5", false},
		{"-", false},
		{"no es un rut", false},
	}

	for _, tt := range tests {
		t.Run(tt.rut, func(t *testing.T) {
			assert.Equal(t, tt.valido, rut.Validar(tt.rut))
		})
	}
}

func TestLimpiar(t *testing.T) {
	tests := []struct {
		entrada string
		salida  string
	}{
		{"12.345.678-5", "123456785"},
		{"12345678-k", "12345678K"},
		{" 12 345 678 5 ", "123456785"},
		{"abc", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.salida, rut.Limpiar(tt.entrada))
	}
}

func TestFormatear(t *testing.T) {
	tests := []struct {
		entrada string
		salida  string
	}{
		{"123456785", "12.345.678-5"},
		{"12345678-5", "12.345.678-5"},
		{"12.345.678-5", "12.345.678-5"},
		{"15000005k", "15.000.005-K"},
		// shorter bodies keep their grouping from the right
		{"1234567-4", "1.234.567-4"},
		{"12", "1-2"},
		{"5", "5"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.salida, rut.Formatear(tt.entrada))
	}
}
