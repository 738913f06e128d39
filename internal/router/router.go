// Package router builds the gin engine: middleware pipeline, CORS,
// and the versioned API routes.
package router

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/crmap/backend/internal/controllers"
	"github.com/crmap/backend/internal/identity"
	"github.com/crmap/backend/internal/storage"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Config sets up the router and its middlewares.
func Config() (*gin.Engine, error) {
	r := gin.New()

	// Don't process X-Forwarded-For as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, controllers.HTTPError{
			Error: "este método HTTP no está permitido para el endpoint llamado",
		})
	})
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("CORS Allowed Origins", allowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-Auth-Id"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don't trust any proxy. We do not process any client IPs,
	// therefore we don't need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Info().Str("version", version).Msg("Router")

	return r, nil
}

// AttachRoutes attaches the API routes to the router group that is
// passed in. Separating this from Config allows tests to mount the
// API wherever they need it.
func AttachRoutes(co controllers.Controller, usuarios storage.UsuarioRepository, group *gin.RouterGroup) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.Use(identity.Middleware(usuarios))

	// API v1 setup
	v1 := group.Group("/v1")
	{
		v1.GET("", GetV1)
		v1.DELETE("", co.DeleteAll)
		v1.OPTIONS("", OptionsV1)
	}

	co.RegisterPerfilRoutes(v1.Group("/perfil"))
	co.RegisterUsuarioRoutes(v1.Group("/usuarios"))
	co.RegisterClienteRoutes(v1.Group("/clientes"))
	co.RegisterCodigoRoutes(v1.Group("/codigos"))
	co.RegisterPresupuestoRoutes(v1.Group("/presupuestos"))
	co.RegisterTratoRoutes(v1.Group("/tratos"))
	co.RegisterPagoRoutes(v1.Group("/pagos"))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Version string `json:"version"` // Endpoint returning the version of the backend
	V1      string `json:"v1"`      // List endpoint for all v1 endpoints
}

// GetRoot returns the link list for the API root.
func GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Version: "/version",
			V1:      "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"`
}

type VersionObject struct {
	Version string `json:"version"` // the running version of the backend
}

// GetVersion returns the API version object.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

func OptionsRoot(c *gin.Context) {
	c.Header("allow", "OPTIONS, GET")
	c.Status(http.StatusNoContent)
}

func OptionsVersion(c *gin.Context) {
	c.Header("allow", "OPTIONS, GET")
	c.Status(http.StatusNoContent)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Perfil       string `json:"perfil"`       // URL of the profile endpoint
	Usuarios     string `json:"usuarios"`     // URL of the user list endpoint
	Clientes     string `json:"clientes"`     // URL of the client list endpoint
	Codigos      string `json:"codigos"`      // URL of the service code list endpoint
	Presupuestos string `json:"presupuestos"` // URL of the budget list endpoint
	Tratos       string `json:"tratos"`       // URL of the deal list endpoint
	Pagos        string `json:"pagos"`        // URL of the payment list endpoint
}

// GetV1 returns the link list for v1.
func GetV1(c *gin.Context) {
	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Perfil:       "/v1/perfil",
			Usuarios:     "/v1/usuarios",
			Clientes:     "/v1/clientes",
			Codigos:      "/v1/codigos",
			Presupuestos: "/v1/presupuestos",
			Tratos:       "/v1/tratos",
			Pagos:        "/v1/pagos",
		},
	})
}

func OptionsV1(c *gin.Context) {
	c.Header("allow", "OPTIONS, GET, DELETE")
	c.Status(http.StatusNoContent)
}
