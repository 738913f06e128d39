package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/crmap/backend/internal/export"
	"github.com/crmap/backend/internal/models"
	"github.com/crmap/backend/internal/rules"
	"github.com/crmap/backend/internal/rut"
)

type ClienteResponse struct {
	Data models.Cliente `json:"data"`
}

type ClienteListResponse struct {
	Data []models.Cliente `json:"data"`
}

type ClienteQueryFilter struct {
	Search string `form:"search"` // By string in name, RUT or email
	Activo bool   `form:"activo"` // Only active clients
}

// RegisterClienteRoutes registers the routes for clients with the
// RouterGroup that is passed.
func (co Controller) RegisterClienteRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", optionsGetPost)
		r.GET("", co.GetClientes)
		r.POST("", co.CreateCliente)
		r.GET("/export", co.ExportClientes)
	}

	{
		r.OPTIONS("/:clienteId", optionsGetPatchDelete)
		r.GET("/:clienteId", co.GetCliente)
		r.PATCH("/:clienteId", co.UpdateCliente)
		r.DELETE("/:clienteId", co.DeleteCliente)
	}
}

func (co Controller) GetClientes(c *gin.Context) {
	var filter ClienteQueryFilter
	if err := c.Bind(&filter); err != nil {
		return
	}

	ctx := c.Request.Context()

	var clientes []models.Cliente
	var err error
	switch {
	case filter.Search != "":
		clientes, err = co.clientes.Search(ctx, filter.Search)
	case filter.Activo:
		clientes, err = co.clientes.GetActivos(ctx)
	default:
		clientes, err = co.clientes.GetAll(ctx)
	}
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ClienteListResponse{Data: clientes})
}

func (co Controller) GetCliente(c *gin.Context) {
	id, ok := parseID(c, "clienteId")
	if !ok {
		return
	}

	cliente, err := co.clientes.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ClienteResponse{Data: cliente})
}

func (co Controller) CreateCliente(c *gin.Context) {
	var cliente models.Cliente
	if !bind(c, &cliente) {
		return
	}

	if err := validarCliente(cliente); err != nil {
		handleError(c, err)
		return
	}
	if !rut.Validar(cliente.RUT) {
		handleError(c, rules.ErrRUTInvalido)
		return
	}
	cliente.RUT = rut.Formatear(cliente.RUT)

	// The unique index would also reject the duplicate, but checking
	// first gives the client a 400 instead of a 500.
	if _, err := co.clientes.GetByRUT(c.Request.Context(), cliente.RUT); err == nil {
		handleError(c, rules.ErrRUTDuplicado)
		return
	} else if !errors.Is(err, models.ErrNotFound) {
		handleError(c, err)
		return
	}

	creado, err := co.clientes.Create(c.Request.Context(), cliente)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ClienteResponse{Data: creado})
}

func (co Controller) UpdateCliente(c *gin.Context) {
	id, ok := parseID(c, "clienteId")
	if !ok {
		return
	}

	var update models.ClienteUpdate
	if !bind(c, &update) {
		return
	}

	if update.RUT != nil {
		if !rut.Validar(*update.RUT) {
			handleError(c, rules.ErrRUTInvalido)
			return
		}
		formateado := rut.Formatear(*update.RUT)
		update.RUT = &formateado

		if existente, err := co.clientes.GetByRUT(c.Request.Context(), formateado); err == nil && existente.ID != id {
			handleError(c, rules.ErrRUTDuplicado)
			return
		} else if err != nil && !errors.Is(err, models.ErrNotFound) {
			handleError(c, err)
			return
		}
	}

	cliente, err := co.clientes.Update(c.Request.Context(), id, update)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ClienteResponse{Data: cliente})
}

func (co Controller) DeleteCliente(c *gin.Context) {
	id, ok := parseID(c, "clienteId")
	if !ok {
		return
	}

	if err := co.clientes.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ExportClientes streams the full client list as a CSV download.
func (co Controller) ExportClientes(c *gin.Context) {
	clientes, err := co.clientes.GetAll(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	columnas := []export.Column[models.Cliente]{
		{Titulo: "Nombre", Valor: func(cl models.Cliente) string { return cl.Nombre }},
		{Titulo: "RUT", Valor: func(cl models.Cliente) string { return cl.RUT }},
		{Titulo: "Email", Valor: func(cl models.Cliente) string { return cl.Email }},
		{Titulo: "Teléfono", Valor: func(cl models.Cliente) string { return cl.Telefono }},
		{Titulo: "Activo", Valor: func(cl models.Cliente) string {
			if cl.Activo {
				return "Sí"
			}
			return "No"
		}},
		{Titulo: "Creado", Valor: func(cl models.Cliente) string { return cl.CreatedAt.Format("2006-01-02") }},
	}

	nombre := export.Filename("clientes", time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+nombre+`"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")

	if err := export.CSV(c.Writer, clientes, columnas); err != nil {
		handleError(c, err)
	}
}
