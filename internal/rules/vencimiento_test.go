package rules_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/crmap/backend/internal/rules"
)

var hoy = time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC)

func TestVencido(t *testing.T) {
	tests := []struct {
		nombre  string
		fecha   time.Time
		vencido bool
	}{
		{"ayer", hoy.AddDate(0, 0, -1), true},
		{"hace un mes", hoy.AddDate(0, -1, 0), true},
		{"hoy", hoy, false},
		{"hoy a medianoche", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), false},
		{"mañana", hoy.AddDate(0, 0, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			assert.Equal(t, tt.vencido, rules.Vencido(tt.fecha, hoy))
		})
	}
}

func TestPorVencer(t *testing.T) {
	tests := []struct {
		nombre    string
		fecha     time.Time
		porVencer bool
	}{
		{"hoy", hoy, true},
		{"en tres días", hoy.AddDate(0, 0, 3), true},
		{"en cuatro días", hoy.AddDate(0, 0, 4), false},
		{"ayer", hoy.AddDate(0, 0, -1), false},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			assert.Equal(t, tt.porVencer, rules.PorVencer(tt.fecha, hoy))
		})
	}
}
