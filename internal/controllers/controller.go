// Package controllers implements the HTTP handlers. Handlers parse
// and validate input, call the repositories or services, and answer
// with a {"data": ...} or {"error": ...} envelope.
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/crmap/backend/internal/models"
	"github.com/crmap/backend/internal/rules"
	"github.com/crmap/backend/internal/service"
	"github.com/crmap/backend/internal/storage"
)

// Controller bundles the repositories and services the handlers use.
// All repositories come from the same factory, so they share a
// backend.
type Controller struct {
	factory *storage.Factory

	usuarios     storage.UsuarioRepository
	clientes     storage.ClienteRepository
	codigos      storage.CodigoRepository
	presupuestos storage.PresupuestoRepository
	tratos       storage.TratoRepository
	pagos        storage.PagoRepository

	servicio *service.PresupuestoService
}

func NewController(f *storage.Factory) (Controller, error) {
	usuarios, err := f.Usuarios()
	if err != nil {
		return Controller{}, err
	}
	clientes, err := f.Clientes()
	if err != nil {
		return Controller{}, err
	}
	codigos, err := f.Codigos()
	if err != nil {
		return Controller{}, err
	}
	presupuestos, err := f.Presupuestos()
	if err != nil {
		return Controller{}, err
	}
	tratos, err := f.Tratos()
	if err != nil {
		return Controller{}, err
	}
	pagos, err := f.Pagos()
	if err != nil {
		return Controller{}, err
	}

	return Controller{
		factory:      f,
		usuarios:     usuarios,
		clientes:     clientes,
		codigos:      codigos,
		presupuestos: presupuestos,
		tratos:       tratos,
		pagos:        pagos,
		servicio:     service.NewPresupuestoService(presupuestos, tratos, clientes),
	}, nil
}

// HTTPError is the error body for all non-2xx responses.
type HTTPError struct {
	Error string `json:"error"`
}

// handleError answers with the status matching the error class.
// Internal errors are logged and answered with a generic message so
// that implementation details never leak to the client.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, HTTPError{Error: err.Error()})
	case errors.Is(err, rules.ErrValidacion):
		c.JSON(http.StatusBadRequest, HTTPError{Error: err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, HTTPError{
			Error: "se produjo un error en el servidor, intente nuevamente",
		})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, HTTPError{Error: msg})
}

// parseID parses the named path parameter as a UUID, answering 400
// itself when the value is malformed.
func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		badRequest(c, "el id especificado no es un UUID válido")
		return uuid.Nil, false
	}

	return id, true
}

// bind decodes the request body, answering 400 itself on garbage.
func bind(c *gin.Context, target any) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		badRequest(c, "el cuerpo de la petición no es JSON válido")
		return false
	}

	return true
}
