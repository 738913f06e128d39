package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/crmap/backend/internal/export"
	"github.com/crmap/backend/internal/models"
	"github.com/crmap/backend/internal/rules"
)

type PagoResponse struct {
	Data models.Pago `json:"data"`
}

type PagoListResponse struct {
	Data []models.Pago `json:"data"`
}

// PagoResumen reconciles a budget against its payments.
type PagoResumen struct {
	PresupuestoID uuid.UUID        `json:"presupuesto_id"`
	Total         decimal.Decimal  `json:"total"`
	TotalPagado   decimal.Decimal  `json:"total_pagado"`
	Saldo         decimal.Decimal  `json:"saldo"`
	Estado        rules.EstadoPago `json:"estado"`
}

type PagoResumenResponse struct {
	Data PagoResumen `json:"data"`
}

type PagoQueryFilter struct {
	PresupuestoID string `form:"presupuesto_id"` // By budget
	Desde         string `form:"desde"`          // From date, YYYY-MM-DD inclusive
	Hasta         string `form:"hasta"`          // To date, YYYY-MM-DD inclusive
}

// RegisterPagoRoutes registers the routes for payments with the
// RouterGroup that is passed.
func (co Controller) RegisterPagoRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", optionsGetPost)
		r.GET("", co.GetPagos)
		r.POST("", co.CreatePago)
		r.GET("/export", co.ExportPagos)
		r.GET("/resumen/:presupuestoId", co.GetPagoResumen)
	}

	{
		r.OPTIONS("/:pagoId", optionsGetPatchDelete)
		r.GET("/:pagoId", co.GetPago)
		r.PATCH("/:pagoId", co.UpdatePago)
		r.DELETE("/:pagoId", co.DeletePago)
	}
}

func (co Controller) GetPagos(c *gin.Context) {
	var filter PagoQueryFilter
	if err := c.Bind(&filter); err != nil {
		return
	}

	ctx := c.Request.Context()

	var pagos []models.Pago
	var err error
	switch {
	case filter.PresupuestoID != "":
		var presupuestoID uuid.UUID
		presupuestoID, err = uuid.Parse(filter.PresupuestoID)
		if err != nil {
			badRequest(c, "el presupuesto_id especificado no es un UUID válido")
			return
		}
		pagos, err = co.pagos.GetByPresupuesto(ctx, presupuestoID)

	case filter.Desde != "" || filter.Hasta != "":
		desde, hasta, ok := rangoFechas(c, filter.Desde, filter.Hasta)
		if !ok {
			return
		}
		pagos, err = co.pagos.GetByFecha(ctx, desde, hasta)

	default:
		pagos, err = co.pagos.GetAll(ctx)
	}
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, PagoListResponse{Data: pagos})
}

// rangoFechas parses the inclusive date range filter. A missing bound
// is left open.
func rangoFechas(c *gin.Context, desde, hasta string) (time.Time, time.Time, bool) {
	inicio := time.Time{}
	fin := time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

	var err error
	if desde != "" {
		inicio, err = time.Parse("2006-01-02", desde)
		if err != nil {
			badRequest(c, "la fecha 'desde' debe tener formato YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
	}
	if hasta != "" {
		fin, err = time.Parse("2006-01-02", hasta)
		if err != nil {
			badRequest(c, "la fecha 'hasta' debe tener formato YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		// Include the whole closing day.
		fin = fin.Add(24*time.Hour - time.Nanosecond)
	}

	return inicio, fin, true
}

func (co Controller) GetPago(c *gin.Context) {
	id, ok := parseID(c, "pagoId")
	if !ok {
		return
	}

	pago, err := co.pagos.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, PagoResponse{Data: pago})
}

func (co Controller) CreatePago(c *gin.Context) {
	var pago models.Pago
	if !bind(c, &pago) {
		return
	}

	if pago.PresupuestoID == uuid.Nil {
		handleError(c, rules.ErrCampoRequerido)
		return
	}
	if !pago.Monto.IsPositive() {
		handleError(c, rules.ErrMontoInvalido)
		return
	}

	// The payment must point at an existing budget.
	if _, err := co.presupuestos.GetByID(c.Request.Context(), pago.PresupuestoID); err != nil {
		handleError(c, err)
		return
	}

	creado, err := co.pagos.Create(c.Request.Context(), pago)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, PagoResponse{Data: creado})
}

func (co Controller) UpdatePago(c *gin.Context) {
	id, ok := parseID(c, "pagoId")
	if !ok {
		return
	}

	var update models.PagoUpdate
	if !bind(c, &update) {
		return
	}

	if update.Monto != nil && !update.Monto.IsPositive() {
		handleError(c, rules.ErrMontoInvalido)
		return
	}

	pago, err := co.pagos.Update(c.Request.Context(), id, update)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, PagoResponse{Data: pago})
}

func (co Controller) DeletePago(c *gin.Context) {
	id, ok := parseID(c, "pagoId")
	if !ok {
		return
	}

	if err := co.pagos.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetPagoResumen reconciles one budget: how much has been paid, what
// remains, and the resulting payment status.
func (co Controller) GetPagoResumen(c *gin.Context) {
	presupuestoID, ok := parseID(c, "presupuestoId")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	presupuesto, err := co.presupuestos.GetByID(ctx, presupuestoID)
	if err != nil {
		handleError(c, err)
		return
	}

	pagado, err := co.pagos.GetTotalByPresupuesto(ctx, presupuestoID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, PagoResumenResponse{Data: PagoResumen{
		PresupuestoID: presupuestoID,
		Total:         presupuesto.Total,
		TotalPagado:   pagado,
		Saldo:         presupuesto.Total.Sub(pagado),
		Estado:        rules.EstadoDePago(presupuesto.Total, pagado),
	}})
}

// ExportPagos streams all payments as a CSV download, with each row
// reconciled against its budget.
func (co Controller) ExportPagos(c *gin.Context) {
	ctx := c.Request.Context()

	pagos, err := co.pagos.GetAll(ctx)
	if err != nil {
		handleError(c, err)
		return
	}

	type fila struct {
		pago   models.Pago
		numero string
		total  decimal.Decimal
		pagado decimal.Decimal
	}

	totales := make(map[uuid.UUID]fila)
	filas := make([]fila, 0, len(pagos))
	for _, pago := range pagos {
		resumen, ok := totales[pago.PresupuestoID]
		if !ok {
			presupuesto, err := co.presupuestos.GetByID(ctx, pago.PresupuestoID)
			if err != nil {
				handleError(c, err)
				return
			}
			pagado, err := co.pagos.GetTotalByPresupuesto(ctx, pago.PresupuestoID)
			if err != nil {
				handleError(c, err)
				return
			}
			resumen = fila{numero: presupuesto.Numero, total: presupuesto.Total, pagado: pagado}
			totales[pago.PresupuestoID] = resumen
		}
		resumen.pago = pago
		filas = append(filas, resumen)
	}

	columnas := []export.Column[fila]{
		{Titulo: "Presupuesto", Valor: func(f fila) string { return f.numero }},
		{Titulo: "Fecha", Valor: func(f fila) string { return f.pago.Fecha.Format("2006-01-02") }},
		{Titulo: "Quien transfiere", Valor: func(f fila) string { return f.pago.QuienTransfiere }},
		{Titulo: "Monto", Valor: func(f fila) string { return f.pago.Monto.String() }},
		{Titulo: "Total presupuesto", Valor: func(f fila) string { return f.total.String() }},
		{Titulo: "Pagado", Valor: func(f fila) string { return f.pagado.String() }},
		{Titulo: "Saldo", Valor: func(f fila) string { return f.total.Sub(f.pagado).String() }},
		{Titulo: "Estado", Valor: func(f fila) string { return string(rules.EstadoDePago(f.total, f.pagado)) }},
		{Titulo: "Observaciones", Valor: func(f fila) string { return f.pago.Observaciones }},
	}

	nombre := export.Filename("pagos", time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")

	if err := export.CSV(c.Writer, filas, columnas); err != nil {
		handleError(c, err)
	}
}
