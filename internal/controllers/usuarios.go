package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crmap/backend/internal/models"
)

type UsuarioResponse struct {
	Data models.Usuario `json:"data"`
}

type UsuarioListResponse struct {
	Data []models.Usuario `json:"data"`
}

// RegisterUsuarioRoutes registers the routes for users with the
// RouterGroup that is passed.
func (co Controller) RegisterUsuarioRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", optionsGetPost)
		r.GET("", co.GetUsuarios)
		r.POST("", co.CreateUsuario)
	}

	{
		r.OPTIONS("/:usuarioId", optionsGetPatchDelete)
		r.GET("/:usuarioId", co.GetUsuario)
		r.PATCH("/:usuarioId", co.UpdateUsuario)
		r.PATCH("/:usuarioId/permisos", co.UpdateUsuarioPermisos)
		r.DELETE("/:usuarioId", co.DeleteUsuario)
	}
}

func (co Controller) GetUsuarios(c *gin.Context) {
	usuarios, err := co.usuarios.GetAll(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UsuarioListResponse{Data: usuarios})
}

func (co Controller) GetUsuario(c *gin.Context) {
	id, ok := parseID(c, "usuarioId")
	if !ok {
		return
	}

	usuario, err := co.usuarios.GetByID(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UsuarioResponse{Data: usuario})
}

func (co Controller) CreateUsuario(c *gin.Context) {
	var usuario models.Usuario
	if !bind(c, &usuario) {
		return
	}

	if err := validarUsuario(usuario); err != nil {
		handleError(c, err)
		return
	}

	creado, err := co.usuarios.Create(c.Request.Context(), usuario)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UsuarioResponse{Data: creado})
}

func (co Controller) UpdateUsuario(c *gin.Context) {
	id, ok := parseID(c, "usuarioId")
	if !ok {
		return
	}

	var update models.UsuarioUpdate
	if !bind(c, &update) {
		return
	}

	usuario, err := co.usuarios.Update(c.Request.Context(), id, update)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UsuarioResponse{Data: usuario})
}

func (co Controller) UpdateUsuarioPermisos(c *gin.Context) {
	id, ok := parseID(c, "usuarioId")
	if !ok {
		return
	}

	var permisos models.Permisos
	if !bind(c, &permisos) {
		return
	}

	usuario, err := co.usuarios.UpdatePermisos(c.Request.Context(), id, permisos)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UsuarioResponse{Data: usuario})
}

func (co Controller) DeleteUsuario(c *gin.Context) {
	id, ok := parseID(c, "usuarioId")
	if !ok {
		return
	}

	if err := co.usuarios.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
