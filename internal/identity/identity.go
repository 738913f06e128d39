// Package identity resolves the acting user for a request. Permission
// data rides along for the frontend to shape its UI; the backend does
// not enforce it.
package identity

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/crmap/backend/internal/models"
	"github.com/crmap/backend/internal/storage"
)

type contextKey struct{}

// Identity describes who is acting and what the UI should let them see.
type Identity struct {
	ID       string          `json:"id"`
	Nombre   string          `json:"nombre"`
	Rol      string          `json:"rol"`
	Permisos models.Permisos `json:"permisos"`
}

// HasPermission reports whether the identity may see a module at all.
func (i Identity) HasPermission(modulo string) bool {
	permiso, ok := i.Permisos[modulo]
	return ok && permiso.Ver
}

func FromUsuario(usuario models.Usuario) Identity {
	return Identity{
		ID:       usuario.ID.String(),
		Nombre:   usuario.Nombre,
		Rol:      usuario.Rol,
		Permisos: usuario.Permisos,
	}
}

// Middleware resolves the X-Auth-Id header against the user repository
// and stores the resulting identity on the request context. Requests
// without the header, or with an unknown id, pass through anonymously.
func Middleware(usuarios storage.UsuarioRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authID := c.GetHeader("X-Auth-Id")
		if authID == "" {
			c.Next()
			return
		}

		usuario, err := usuarios.GetByAuthID(c.Request.Context(), authID)
		if err != nil {
			c.Next()
			return
		}

		ctx := context.WithValue(c.Request.Context(), contextKey{}, FromUsuario(usuario))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// FromContext returns the identity resolved by Middleware, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
