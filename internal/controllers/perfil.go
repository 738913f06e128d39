package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crmap/backend/internal/identity"
)

type PerfilResponse struct {
	Data identity.Identity `json:"data"`
}

// RegisterPerfilRoutes registers the route answering who the caller is.
func (co Controller) RegisterPerfilRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", optionsGet)
	r.GET("", co.GetPerfil)
}

// GetPerfil returns the identity resolved from the X-Auth-Id header,
// permissions included. Anonymous requests get 401.
func (co Controller) GetPerfil(c *gin.Context) {
	perfil, ok := identity.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, HTTPError{Error: "no hay un usuario autenticado"})
		return
	}

	c.JSON(http.StatusOK, PerfilResponse{Data: perfil})
}
