package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CajaAbierta = "abierta"
	CajaCerrada = "cerrada"
)

const (
	MovimientoIngreso = "ingreso"
	MovimientoEgreso  = "egreso"
)

// Caja is one till session. At most one row may be in estado "abierta" at any
// time; the service layer serializes every mutation of the open session.
type Caja struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BalanceApertura decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FechaApertura   time.Time       `gorm:"not null"`
	FechaCierre     *time.Time
	// TotalCalculado is frozen at close time:
	// balance_apertura + Σingresos − Σegresos.
	TotalCalculado *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Estado         string           `gorm:"type:varchar(20);not null;index"`

	Movimientos []MovimientoCaja `gorm:"foreignKey:CajaID"`
}

func (Caja) TableName() string { return "cajas" }

// MovimientoCaja is an immutable till ledger entry. Monto is always positive;
// the direction lives in Tipo.
type MovimientoCaja struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CajaID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo     string          `gorm:"type:varchar(10);not null"`
	Monto    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Concepto string          `gorm:"not null"`
	Usuario  string          `gorm:"not null"`
	// Referencia links the entry back to its origin (numero de venta, cuenta ID).
	Referencia *string
	Fecha      time.Time `gorm:"autoCreateTime;index"`
}

func (MovimientoCaja) TableName() string { return "movimientos_caja" }
