package infra

import (
	"fmt"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs AutoMigrate
// to create / update all tables.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations applies the GORM schema for every persisted model.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Usuario{},
		&model.Proveedor{},
		&model.Producto{},
		&model.Cliente{},
		&model.Caja{},
		&model.MovimientoCaja{},
		&model.Venta{},
		&model.VentaDetalle{},
		&model.Movimiento{},
		&model.CuentaPorCobrar{},
		&model.PagoCuenta{},
	)
}
