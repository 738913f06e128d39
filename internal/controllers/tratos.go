package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/crmap/backend/internal/models"
	"github.com/crmap/backend/internal/rules"
)

// TratoConVencimiento decorates a deal with its due-date standing so
// the pipeline board can highlight it without re-deriving dates.
type TratoConVencimiento struct {
	models.Trato
	Vencido   bool `json:"vencido"`
	PorVencer bool `json:"por_vencer"`
}

type TratoResponse struct {
	Data TratoConVencimiento `json:"data"`
}

type TratoListResponse struct {
	Data []TratoConVencimiento `json:"data"`
}

type TratoHistorialResponse struct {
	Data models.TratoHistorial `json:"data"`
}

type TratoHistorialListResponse struct {
	Data []models.TratoHistorial `json:"data"`
}

type TratoQueryFilter struct {
	Etapa     string `form:"etapa"`      // By pipeline stage
	ClienteID string `form:"cliente_id"` // By owning client
}

type EtapaRequest struct {
	Etapa   models.Etapa `json:"etapa"`
	Usuario string       `json:"usuario"`
}

func conVencimiento(trato models.Trato, hoy time.Time) TratoConVencimiento {
	decorado := TratoConVencimiento{Trato: trato}
	if trato.FechaVencimiento != nil && trato.EtapaActual != models.EtapaCerrado {
		decorado.Vencido = rules.Vencido(*trato.FechaVencimiento, hoy)
		decorado.PorVencer = rules.PorVencer(*trato.FechaVencimiento, hoy)
	}

	return decorado
}

// RegisterTratoRoutes registers the routes for deals and their stage
// history with the RouterGroup that is passed.
func (co Controller) RegisterTratoRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", optionsGetPost)
		r.GET("", co.GetTratos)
		r.POST("", co.CreateTrato)
	}

	{
		r.OPTIONS("/:tratoId", optionsGetPatchDelete)
		r.GET("/:tratoId", co.GetTrato)
		r.PATCH("/:tratoId", co.UpdateTrato)
		r.PATCH("/:tratoId/etapa", co.UpdateTratoEtapa)
		r.DELETE("/:tratoId", co.DeleteTrato)
	}

	{
		r.OPTIONS("/:tratoId/historial", optionsGetPost)
		r.GET("/:tratoId/historial", co.GetTratoHistorial)
		r.POST("/:tratoId/historial", co.CreateTratoHistorial)
	}
}

func (co Controller) GetTratos(c *gin.Context) {
	var filter TratoQueryFilter
	if err := c.Bind(&filter); err != nil {
		return
	}

	ctx := c.Request.Context()

	var tratos []models.Trato
	var err error
	switch {
	case filter.Etapa != "":
		etapa := models.Etapa(filter.Etapa)
		if !etapa.Valida() {
			handleError(c, rules.ErrEtapaInvalida)
			return
		}
		tratos, err = co.tratos.GetByEtapa(ctx, etapa)

	case filter.ClienteID != "":
		var clienteID uuid.UUID
		clienteID, err = uuid.Parse(filter.ClienteID)
		if err != nil {
			badRequest(c, "el cliente_id especificado no es un UUID válido")
			return
		}
		tratos, err = co.tratos.GetByCliente(ctx, clienteID)

	default:
		tratos, err = co.tratos.GetAll(ctx)
	}
	if err != nil {
		handleError(c, err)
		return
	}

	hoy := time.Now()
	decorados := make([]TratoConVencimiento, 0, len(tratos))
	for _, trato := range tratos {
		decorados = append(decorados, conVencimiento(trato, hoy))
	}

	c.JSON(http.StatusOK, TratoListResponse{Data: decorados})
}

func (co Controller) GetTrato(c *gin.Context) {
	id, ok := parseID(c, "tratoId")
	if !ok {
		return
	}

	trato, err := co.tratos.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, TratoResponse{Data: conVencimiento(trato, time.Now())})
}

func (co Controller) CreateTrato(c *gin.Context) {
	var trato models.Trato
	if !bind(c, &trato) {
		return
	}

	if err := requerido(trato.Titulo, "titulo"); err != nil {
		handleError(c, err)
		return
	}
	if trato.EtapaActual != "" && !trato.EtapaActual.Valida() {
		handleError(c, rules.ErrEtapaInvalida)
		return
	}

	creado, err := co.tratos.Create(c.Request.Context(), trato)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TratoResponse{Data: conVencimiento(creado, time.Now())})
}

func (co Controller) UpdateTrato(c *gin.Context) {
	id, ok := parseID(c, "tratoId")
	if !ok {
		return
	}

	var update models.TratoUpdate
	if !bind(c, &update) {
		return
	}

	trato, err := co.tratos.Update(c.Request.Context(), id, update)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, TratoResponse{Data: conVencimiento(trato, time.Now())})
}

// UpdateTratoEtapa moves a deal through the pipeline and records the
// transition in its history.
func (co Controller) UpdateTratoEtapa(c *gin.Context) {
	id, ok := parseID(c, "tratoId")
	if !ok {
		return
	}

	var req EtapaRequest
	if !bind(c, &req) {
		return
	}

	if !req.Etapa.Valida() {
		handleError(c, rules.ErrEtapaInvalida)
		return
	}

	trato, err := co.tratos.UpdateEtapa(c.Request.Context(), id, req.Etapa, req.Usuario)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, TratoResponse{Data: conVencimiento(trato, time.Now())})
}

func (co Controller) DeleteTrato(c *gin.Context) {
	id, ok := parseID(c, "tratoId")
	if !ok {
		return
	}

	if err := co.tratos.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (co Controller) GetTratoHistorial(c *gin.Context) {
	id, ok := parseID(c, "tratoId")
	if !ok {
		return
	}

	historial, err := co.tratos.GetHistorial(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, TratoHistorialListResponse{Data: historial})
}

func (co Controller) CreateTratoHistorial(c *gin.Context) {
	id, ok := parseID(c, "tratoId")
	if !ok {
		return
	}

	var entrada models.TratoHistorial
	if !bind(c, &entrada) {
		return
	}

	if entrada.Etapa != "" && !entrada.Etapa.Valida() {
		handleError(c, rules.ErrEtapaInvalida)
		return
	}

	creada, err := co.tratos.AddHistorial(c.Request.Context(), id, entrada)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TratoHistorialResponse{Data: creada})
}
