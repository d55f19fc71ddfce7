package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	VentaCompletada = "completada"
	VentaCredito    = "credito"
	VentaCancelada  = "cancelada"
)

// Venta is the sale header. NumeroVenta is derived from the row's own ID plus
// the sale date, so it never collides under concurrent inserts.
type Venta struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	NumeroVenta string     `gorm:"uniqueIndex;not null"`
	ClienteID   *uuid.UUID `gorm:"type:uuid;index"`
	CajaID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	MetodoPago  string     `gorm:"type:varchar(20);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descuento   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado      string          `gorm:"type:varchar(20);not null;index"`
	Observaciones *string
	FechaVenta    time.Time `gorm:"not null;index"`

	Detalles []VentaDetalle `gorm:"foreignKey:VentaID"`
	Cliente  *Cliente       `gorm:"foreignKey:ClienteID"`
}

func (Venta) TableName() string { return "ventas" }

type VentaDetalle struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (VentaDetalle) TableName() string { return "venta_detalles" }
