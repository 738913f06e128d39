package storage

import (
	"os"
	"sync"

	"gorm.io/gorm"

	"github.com/crmap/backend/internal/config"
	"github.com/crmap/backend/internal/localstore"
	"github.com/crmap/backend/internal/storage/local"
	"github.com/crmap/backend/internal/storage/remote"
)

// Factory hands out one repository per entity, all bound to the same
// backend. The backend is resolved once, when the factory is built,
// and every repository is constructed at most once.
type Factory struct {
	mu  sync.Mutex
	cfg config.Config

	store *localstore.Store
	db    *gorm.DB

	usuarios     UsuarioRepository
	clientes     ClienteRepository
	codigos      CodigoRepository
	presupuestos PresupuestoRepository
	tratos       TratoRepository
	pagos        PagoRepository
}

// NewFactory resolves the configured backend and returns a factory
// bound to it.
func NewFactory(cfg config.Config) (*Factory, error) {
	f := &Factory{cfg: cfg}
	if err := f.connect(); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *Factory) connect() error {
	if f.cfg.UseLocalStore {
		store, err := localstore.Open(f.cfg.DataDir)
		if err != nil {
			return err
		}
		f.store = store
		return nil
	}

	db, err := remote.Connect(f.cfg)
	if err != nil {
		return err
	}
	f.db = db
	return nil
}

// Local reports whether the factory is backed by the local store.
func (f *Factory) Local() bool {
	return f.store != nil
}

func (f *Factory) Usuarios() (UsuarioRepository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.usuarios == nil {
		if f.store != nil {
			repo, err := local.NewUsuarioRepository(f.store)
			if err != nil {
				return nil, err
			}
			f.usuarios = repo
		} else {
			f.usuarios = remote.NewUsuarioRepository(f.db)
		}
	}

	return f.usuarios, nil
}

func (f *Factory) Clientes() (ClienteRepository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.clientes == nil {
		if f.store != nil {
			repo, err := local.NewClienteRepository(f.store)
			if err != nil {
				return nil, err
			}
			f.clientes = repo
		} else {
			f.clientes = remote.NewClienteRepository(f.db)
		}
	}

	return f.clientes, nil
}

func (f *Factory) Codigos() (CodigoRepository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.codigos == nil {
		if f.store != nil {
			repo, err := local.NewCodigoRepository(f.store)
			if err != nil {
				return nil, err
			}
			f.codigos = repo
		} else {
			f.codigos = remote.NewCodigoRepository(f.db)
		}
	}

	return f.codigos, nil
}

func (f *Factory) Presupuestos() (PresupuestoRepository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.presupuestos == nil {
		if f.store != nil {
			repo, err := local.NewPresupuestoRepository(f.store)
			if err != nil {
				return nil, err
			}
			f.presupuestos = repo
		} else {
			f.presupuestos = remote.NewPresupuestoRepository(f.db)
		}
	}

	return f.presupuestos, nil
}

func (f *Factory) Tratos() (TratoRepository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.tratos == nil {
		if f.store != nil {
			repo, err := local.NewTratoRepository(f.store)
			if err != nil {
				return nil, err
			}
			f.tratos = repo
		} else {
			f.tratos = remote.NewTratoRepository(f.db)
		}
	}

	return f.tratos, nil
}

func (f *Factory) Pagos() (PagoRepository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pagos == nil {
		if f.store != nil {
			repo, err := local.NewPagoRepository(f.store)
			if err != nil {
				return nil, err
			}
			f.pagos = repo
		} else {
			f.pagos = remote.NewPagoRepository(f.db)
		}
	}

	return f.pagos, nil
}

// ClearAll wipes every collection or table. Already constructed
// repositories stay valid and see empty data afterwards; the local
// seed rows do not come back.
func (f *Factory) ClearAll() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.store != nil {
		if err := os.RemoveAll(f.cfg.DataDir); err != nil {
			return err
		}
		return os.MkdirAll(f.cfg.DataDir, 0o755)
	}

	// Children before parents, the schema has no ON DELETE cascades
	// for bulk truncation.
	for _, table := range []string{
		"presupuesto_items",
		"trato_historial",
		"pagos",
		"tratos",
		"presupuestos",
		"codigos_servicio",
		"clientes",
		"usuarios",
	} {
		if err := f.db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}

	return nil
}

// Both backends satisfy every repository contract.
var (
	_ UsuarioRepository     = (*local.UsuarioRepository)(nil)
	_ ClienteRepository     = (*local.ClienteRepository)(nil)
	_ CodigoRepository      = (*local.CodigoRepository)(nil)
	_ PresupuestoRepository = (*local.PresupuestoRepository)(nil)
	_ TratoRepository       = (*local.TratoRepository)(nil)
	_ PagoRepository        = (*local.PagoRepository)(nil)

	_ UsuarioRepository     = (*remote.UsuarioRepository)(nil)
	_ ClienteRepository     = (*remote.ClienteRepository)(nil)
	_ CodigoRepository      = (*remote.CodigoRepository)(nil)
	_ PresupuestoRepository = (*remote.PresupuestoRepository)(nil)
	_ TratoRepository       = (*remote.TratoRepository)(nil)
	_ PagoRepository        = (*remote.PagoRepository)(nil)
)
