package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is catalog data only. It deliberately carries NO stock counter:
// current stock is derived from the movimientos ledger (latest StockNuevo).
type Producto struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo       string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"index;not null"`
	Descripcion  *string
	Categoria    string          `gorm:"not null"`
	PrecioCompra decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioVenta  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// VentaFraccionada permits non-integral quantities (cable por metro,
	// tornillos por kilo). When false, every cantidad must be a whole number.
	VentaFraccionada bool            `gorm:"not null;default:false"`
	StockMinimo      decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	UnidadMedida     string          `gorm:"not null;default:'unidad'"`
	ProveedorID      *uuid.UUID      `gorm:"type:uuid;index"`
	Activo           bool            `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (Producto) TableName() string { return "productos" }
