package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	BalanceApertura decimal.Decimal `json:"balance_apertura" validate:"min=0"`
}

type MovimientoCajaRequest struct {
	Tipo       string          `json:"tipo"       validate:"required,oneof=ingreso egreso"`
	Monto      decimal.Decimal `json:"monto"      validate:"required"`
	Concepto   string          `json:"concepto"   validate:"required,min=3"`
	Referencia *string         `json:"referencia"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CajaResponse struct {
	ID              string           `json:"id"`
	BalanceApertura decimal.Decimal  `json:"balance_apertura"`
	TotalCalculado  *decimal.Decimal `json:"total_calculado,omitempty"`
	Estado          string           `json:"estado"`
	FechaApertura   string           `json:"fecha_apertura"`
	FechaCierre     *string          `json:"fecha_cierre,omitempty"`
}

type CierreCajaResponse struct {
	ID              string          `json:"id"`
	BalanceApertura decimal.Decimal `json:"balance_apertura"`
	TotalIngresos   decimal.Decimal `json:"total_ingresos"`
	TotalEgresos    decimal.Decimal `json:"total_egresos"`
	TotalCalculado  decimal.Decimal `json:"total_calculado"`
	Estado          string          `json:"estado"`
	FechaCierre     string          `json:"fecha_cierre"`
}

type MovimientoCajaResponse struct {
	ID         string          `json:"id"`
	Tipo       string          `json:"tipo"`
	Monto      decimal.Decimal `json:"monto"`
	Concepto   string          `json:"concepto"`
	Usuario    string          `json:"usuario"`
	Referencia *string         `json:"referencia,omitempty"`
	Fecha      string          `json:"fecha"`
}
