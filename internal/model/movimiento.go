package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
	MovimientoAjuste  = "ajuste"
)

// Movimiento is an immutable inventory ledger entry. Each one carries a
// before/after snapshot of the product's stock: StockNuevo of a product's
// latest movement IS its current stock, and replaying the history end to end
// reproduces it.
type Movimiento struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Secuencia totally orders the ledger. Fecha alone cannot: two entries of
	// one sale committed back to back can share a timestamp.
	Secuencia     int64           `gorm:"not null;autoIncrement;uniqueIndex"`
	ProductoID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_movimientos_producto_fecha"`
	Tipo          string          `gorm:"type:varchar(10);not null;index"`
	Cantidad      decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	StockAnterior decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	StockNuevo    decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	ProveedorID   *uuid.UUID      `gorm:"type:uuid"`
	CostoUnitario *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Observaciones *string
	Usuario       string    `gorm:"not null"`
	Fecha         time.Time `gorm:"autoCreateTime;index:idx_movimientos_producto_fecha"`

	Producto  *Producto  `gorm:"foreignKey:ProductoID"`
	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (Movimiento) TableName() string { return "movimientos" }
