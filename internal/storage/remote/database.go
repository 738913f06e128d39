// Package remote implements the repository contracts on top of the
// remote relational database through gorm. Production deployments
// point it at PostgreSQL; tests open an in-process sqlite database
// with the same schema.
package remote

import (
	"errors"
	"fmt"
	"time"

	gorm_zerolog "github.com/wei840222/gorm-zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/crmap/backend/internal/config"
	"github.com/crmap/backend/internal/models"
)

// Open connects through the given dialector and migrates the schema.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: gorm_zerolog.New(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		models.Usuario{},
		models.Cliente{},
		models.CodigoServicio{},
		models.Presupuesto{},
		models.PresupuestoItem{},
		models.Trato{},
		models.TratoHistorial{},
		models.Pago{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Connect opens the PostgreSQL database described by the configuration.
func Connect(cfg config.Config) (*gorm.DB, error) {
	return Open(postgres.Open(cfg.DSN()))
}

func wrapNotFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf(format+": %w", append(args, models.ErrNotFound)...)
	}
	return err
}
