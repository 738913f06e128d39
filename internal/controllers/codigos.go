package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/crmap/backend/internal/models"
	"github.com/crmap/backend/internal/rules"
)

type CodigoResponse struct {
	Data models.CodigoServicio `json:"data"`
}

type CodigoListResponse struct {
	Data []models.CodigoServicio `json:"data"`
}

type CodigoQueryFilter struct {
	Search string `form:"search"` // By string in code or description
	Activo bool   `form:"activo"` // Only active service codes
}

// RegisterCodigoRoutes registers the routes for service codes with the
// RouterGroup that is passed.
func (co Controller) RegisterCodigoRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", optionsGetPost)
		r.GET("", co.GetCodigos)
		r.POST("", co.CreateCodigo)
	}

	{
		r.OPTIONS("/:codigoId", optionsGetPatchDelete)
		r.GET("/:codigoId", co.GetCodigo)
		r.PATCH("/:codigoId", co.UpdateCodigo)
		r.DELETE("/:codigoId", co.DeleteCodigo)
	}
}

func (co Controller) GetCodigos(c *gin.Context) {
	var filter CodigoQueryFilter
	if err := c.Bind(&filter); err != nil {
		return
	}

	ctx := c.Request.Context()

	var codigos []models.CodigoServicio
	var err error
	switch {
	case filter.Search != "":
		codigos, err = co.codigos.Search(ctx, filter.Search)
	case filter.Activo:
		codigos, err = co.codigos.GetActivos(ctx)
	default:
		codigos, err = co.codigos.GetAll(ctx)
	}
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, CodigoListResponse{Data: codigos})
}

func (co Controller) GetCodigo(c *gin.Context) {
	id, ok := parseID(c, "codigoId")
	if !ok {
		return
	}

	codigo, err := co.codigos.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, CodigoResponse{Data: codigo})
}

func (co Controller) CreateCodigo(c *gin.Context) {
	var codigo models.CodigoServicio
	if !bind(c, &codigo) {
		return
	}

	if err := validarCodigo(codigo); err != nil {
		handleError(c, err)
		return
	}

	// Codes are case-insensitive identifiers, stored uppercase.
	codigo.Codigo = strings.ToUpper(strings.TrimSpace(codigo.Codigo))

	if _, err := co.codigos.GetByCodigo(c.Request.Context(), codigo.Codigo); err == nil {
		handleError(c, rules.ErrCodigoDuplicado)
		return
	} else if !errors.Is(err, models.ErrNotFound) {
		handleError(c, err)
		return
	}

	creado, err := co.codigos.Create(c.Request.Context(), codigo)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CodigoResponse{Data: creado})
}

func (co Controller) UpdateCodigo(c *gin.Context) {
	id, ok := parseID(c, "codigoId")
	if !ok {
		return
	}

	var update models.CodigoServicioUpdate
	if !bind(c, &update) {
		return
	}

	if update.Codigo != nil {
		normalizado := strings.ToUpper(strings.TrimSpace(*update.Codigo))
		update.Codigo = &normalizado

		if existente, err := co.codigos.GetByCodigo(c.Request.Context(), normalizado); err == nil && existente.ID != id {
			handleError(c, rules.ErrCodigoDuplicado)
			return
		} else if err != nil && !errors.Is(err, models.ErrNotFound) {
			handleError(c, err)
			return
		}
	}

	codigo, err := co.codigos.Update(c.Request.Context(), id, update)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, CodigoResponse{Data: codigo})
}

func (co Controller) DeleteCodigo(c *gin.Context) {
	id, ok := parseID(c, "codigoId")
	if !ok {
		return
	}

	if err := co.codigos.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
