package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCuentaRequest struct {
	ClienteID        string          `json:"cliente_id" validate:"required,uuid"`
	Monto            decimal.Decimal `json:"monto"      validate:"required"`
	FechaVencimiento *string         `json:"fecha_vencimiento" validate:"omitempty,datetime=2006-01-02"`
	Observaciones    *string         `json:"observaciones"`
}

type PagoCuentaRequest struct {
	Monto         decimal.Decimal `json:"monto"       validate:"required"`
	MetodoPago    string          `json:"metodo_pago" validate:"required,oneof=efectivo tarjeta transferencia"`
	Observaciones *string         `json:"observaciones"`
}

type CuentaFilter struct {
	ClienteID string `form:"cliente_id"`
	Estado    string `form:"estado"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PagoCuentaResponse struct {
	ID         string          `json:"id"`
	Monto      decimal.Decimal `json:"monto"`
	MetodoPago string          `json:"metodo_pago"`
	FechaPago  string          `json:"fecha_pago"`
}

type CuentaResponse struct {
	ID               string               `json:"id"`
	ClienteID        string               `json:"cliente_id"`
	VentaID          *string              `json:"venta_id,omitempty"`
	Monto            decimal.Decimal      `json:"monto"`
	Saldo            decimal.Decimal      `json:"saldo"`
	Estado           string               `json:"estado"`
	FechaVencimiento *string              `json:"fecha_vencimiento,omitempty"`
	Pagos            []PagoCuentaResponse `json:"pagos,omitempty"`
	FechaCreacion    string               `json:"fecha_creacion"`
}

type CuentaListResponse struct {
	Data  []CuentaResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

type BarridoVencidasResponse struct {
	CuentasVencidas int64 `json:"cuentas_vencidas"`
}
