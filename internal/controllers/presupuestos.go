package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/crmap/backend/internal/models"
	"github.com/crmap/backend/internal/rules"
)

type PresupuestoResponse struct {
	Data models.Presupuesto `json:"data"`
}

type PresupuestoListResponse struct {
	Data []models.Presupuesto `json:"data"`
}

type PresupuestoItemResponse struct {
	Data models.PresupuestoItem `json:"data"`
}

type PresupuestoItemListResponse struct {
	Data []models.PresupuestoItem `json:"data"`
}

type PresupuestoQueryFilter struct {
	ClienteID string `form:"cliente_id"` // By owning client
	Numero    string `form:"numero"`     // By exact budget number
}

type EstadoRequest struct {
	Estado models.Estado `json:"estado"`
}

// RegisterPresupuestoRoutes registers the routes for budgets and their
// line items with the RouterGroup that is passed.
func (co Controller) RegisterPresupuestoRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", optionsGetPost)
		r.GET("", co.GetPresupuestos)
		r.POST("", co.CreatePresupuesto)
	}

	{
		r.OPTIONS("/:presupuestoId", optionsGetPatchDelete)
		r.GET("/:presupuestoId", co.GetPresupuesto)
		r.PATCH("/:presupuestoId", co.UpdatePresupuesto)
		r.PATCH("/:presupuestoId/estado", co.UpdatePresupuestoEstado)
		r.DELETE("/:presupuestoId", co.DeletePresupuesto)
	}

	{
		r.OPTIONS("/:presupuestoId/items", optionsGetPost)
		r.GET("/:presupuestoId/items", co.GetPresupuestoItems)
		r.POST("/:presupuestoId/items", co.CreatePresupuestoItem)
		r.PATCH("/:presupuestoId/items/:itemId", co.UpdatePresupuestoItem)
		r.DELETE("/:presupuestoId/items/:itemId", co.DeletePresupuestoItem)
	}
}

func (co Controller) GetPresupuestos(c *gin.Context) {
	var filter PresupuestoQueryFilter
	if err := c.Bind(&filter); err != nil {
		return
	}

	ctx := c.Request.Context()

	switch {
	case filter.Numero != "":
		presupuesto, err := co.presupuestos.GetByNumero(ctx, filter.Numero)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, PresupuestoListResponse{Data: []models.Presupuesto{presupuesto}})

	case filter.ClienteID != "":
		clienteID, err := uuid.Parse(filter.ClienteID)
		if err != nil {
			badRequest(c, "el cliente_id especificado no es un UUID válido")
			return
		}
		presupuestos, err := co.presupuestos.GetByCliente(ctx, clienteID)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, PresupuestoListResponse{Data: presupuestos})

	default:
		presupuestos, err := co.presupuestos.GetAll(ctx)
		if err != nil {
			handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, PresupuestoListResponse{Data: presupuestos})
	}
}

func (co Controller) GetPresupuesto(c *gin.Context) {
	id, ok := parseID(c, "presupuestoId")
	if !ok {
		return
	}

	presupuesto, err := co.presupuestos.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, PresupuestoResponse{Data: presupuesto})
}

func (co Controller) CreatePresupuesto(c *gin.Context) {
	var presupuesto models.Presupuesto
	if !bind(c, &presupuesto) {
		return
	}

	if presupuesto.ClienteID == uuid.Nil {
		handleError(c, rules.ErrCampoRequerido)
		return
	}
	if presupuesto.Estado != "" && !presupuesto.Estado.Valido() {
		handleError(c, rules.ErrEstadoInvalido)
		return
	}
	if !rules.DescuentoValido(presupuesto.Descuento) {
		handleError(c, rules.ErrDescuentoInvalido)
		return
	}

	creado, err := co.servicio.Crear(c.Request.Context(), presupuesto)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, PresupuestoResponse{Data: creado})
}

func (co Controller) UpdatePresupuesto(c *gin.Context) {
	id, ok := parseID(c, "presupuestoId")
	if !ok {
		return
	}

	var update models.PresupuestoUpdate
	if !bind(c, &update) {
		return
	}

	if update.Estado != nil && !update.Estado.Valido() {
		handleError(c, rules.ErrEstadoInvalido)
		return
	}
	if update.Descuento != nil && !rules.DescuentoValido(*update.Descuento) {
		handleError(c, rules.ErrDescuentoInvalido)
		return
	}

	presupuesto, err := co.servicio.Actualizar(c.Request.Context(), id, update)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, PresupuestoResponse{Data: presupuesto})
}

// UpdatePresupuestoEstado changes only the status. Approving a budget
// opens a pipeline deal for it.
func (co Controller) UpdatePresupuestoEstado(c *gin.Context) {
	id, ok := parseID(c, "presupuestoId")
	if !ok {
		return
	}

	var req EstadoRequest
	if !bind(c, &req) {
		return
	}

	if !req.Estado.Valido() {
		handleError(c, rules.ErrEstadoInvalido)
		return
	}

	presupuesto, err := co.servicio.ActualizarEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, PresupuestoResponse{Data: presupuesto})
}

func (co Controller) DeletePresupuesto(c *gin.Context) {
	id, ok := parseID(c, "presupuestoId")
	if !ok {
		return
	}

	if err := co.presupuestos.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (co Controller) GetPresupuestoItems(c *gin.Context) {
	id, ok := parseID(c, "presupuestoId")
	if !ok {
		return
	}

	items, err := co.presupuestos.GetItems(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, PresupuestoItemListResponse{Data: items})
}

func (co Controller) CreatePresupuestoItem(c *gin.Context) {
	id, ok := parseID(c, "presupuestoId")
	if !ok {
		return
	}

	var item models.PresupuestoItem
	if !bind(c, &item) {
		return
	}

	if item.CodigoID == uuid.Nil {
		handleError(c, rules.ErrCampoRequerido)
		return
	}
	if item.Cantidad < 0 {
		handleError(c, rules.ErrMontoInvalido)
		return
	}

	creado, err := co.presupuestos.AddItem(c.Request.Context(), id, item)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, PresupuestoItemResponse{Data: creado})
}

func (co Controller) UpdatePresupuestoItem(c *gin.Context) {
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}

	var update models.PresupuestoItemUpdate
	if !bind(c, &update) {
		return
	}

	if update.Cantidad != nil && *update.Cantidad < 0 {
		handleError(c, rules.ErrMontoInvalido)
		return
	}

	item, err := co.presupuestos.UpdateItem(c.Request.Context(), itemID, update)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, PresupuestoItemResponse{Data: item})
}

func (co Controller) DeletePresupuestoItem(c *gin.Context) {
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}

	if err := co.presupuestos.DeleteItem(c.Request.Context(), itemID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
