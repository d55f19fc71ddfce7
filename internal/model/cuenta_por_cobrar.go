package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CuentaPendiente = "pendiente"
	CuentaVencida   = "vencida"
	CuentaPagada    = "pagada"
)

// CuentaPorCobrar is an open customer debt. Saldo only ever decreases, one
// pago at a time, until it reaches zero and the account flips to pagada.
type CuentaPorCobrar struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	VentaID          *uuid.UUID      `gorm:"type:uuid;index"`
	Monto            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Saldo            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FechaVencimiento *time.Time
	Estado           string `gorm:"type:varchar(20);not null;index"`
	Observaciones    *string
	FechaCreacion    time.Time `gorm:"autoCreateTime"`

	Pagos   []PagoCuenta `gorm:"foreignKey:CuentaID"`
	Cliente *Cliente     `gorm:"foreignKey:ClienteID"`
}

func (CuentaPorCobrar) TableName() string { return "cuentas_por_cobrar" }

type PagoCuenta struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CuentaID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Monto         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago    string          `gorm:"type:varchar(20);not null"`
	Observaciones *string
	FechaPago     time.Time `gorm:"autoCreateTime"`
}

func (PagoCuenta) TableName() string { return "pagos_cuenta" }
