package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cliente carries two denormalized aggregates kept in step with the ledgers:
// SaldoPendiente mirrors the sum of saldos of the customer's open cuentas por
// cobrar, TotalCompras accumulates money actually collected from them. Both
// columns are written exclusively through ClienteRepository.AjustarSaldoPendienteTx
// and AjustarTotalComprasTx, inside the same transaction as the ledger entry
// that justifies the delta.
type Cliente struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre         string    `gorm:"index;not null"`
	Documento      *string   `gorm:"uniqueIndex"`
	Telefono       *string
	Email          *string
	Direccion      *string
	SaldoPendiente decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalCompras   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Activo         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Cliente) TableName() string { return "clientes" }
