package models

// Modules that carry a permission entry in the permission matrix.
const (
	ModuloUsuarios       = "usuarios"
	ModuloClientes       = "clientes"
	ModuloPresupuestador = "presupuestador"
	ModuloPipeline       = "pipeline"
	ModuloPagos          = "pagos"
)

// Modulos lists all modules with permission entries.
var Modulos = []string{ModuloUsuarios, ModuloClientes, ModuloPresupuestador, ModuloPipeline, ModuloPagos}

// Permiso holds the four flags a user has for one module.
type Permiso struct {
	Ver      bool `json:"ver"`
	Crear    bool `json:"crear"`
	Editar   bool `json:"editar"`
	Eliminar bool `json:"eliminar"`
}

// Permisos maps a module name to its permission flags.
type Permisos map[string]Permiso

// Usuario represents a system user. The permission matrix is advisory,
// it is read by clients to gate their UI and is not enforced on writes.
type Usuario struct {
	DefaultModel
	AuthID   string   `json:"auth_id" gorm:"index"`
	Nombre   string   `json:"nombre"`
	Email    string   `json:"email" gorm:"uniqueIndex"`
	Rol      string   `json:"rol"`
	Activo   bool     `json:"activo"`
	Permisos Permisos `json:"permisos" gorm:"serializer:json"`
}

func (Usuario) TableName() string { return "usuarios" }

// UsuarioUpdate carries a partial update. Nil fields are left untouched.
type UsuarioUpdate struct {
	AuthID   *string   `json:"auth_id"`
	Nombre   *string   `json:"nombre"`
	Email    *string   `json:"email"`
	Rol      *string   `json:"rol"`
	Activo   *bool     `json:"activo"`
	Permisos *Permisos `json:"permisos"`
}

func (u UsuarioUpdate) Apply(usuario *Usuario) {
	if u.AuthID != nil {
		usuario.AuthID = *u.AuthID
	}
	if u.Nombre != nil {
		usuario.Nombre = *u.Nombre
	}
	if u.Email != nil {
		usuario.Email = *u.Email
	}
	if u.Rol != nil {
		usuario.Rol = *u.Rol
	}
	if u.Activo != nil {
		usuario.Activo = *u.Activo
	}
	if u.Permisos != nil {
		usuario.Permisos = *u.Permisos
	}
}
