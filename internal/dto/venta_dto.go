package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoID string          `json:"producto_id" validate:"required,uuid"`
	Cantidad   decimal.Decimal `json:"cantidad"    validate:"required"`
}

// CreditoRequest marks a sale as settled on credit. Its presence in
// ProcesarVentaRequest is the settlement discriminator: nil means contado.
type CreditoRequest struct {
	PagoInicial      decimal.Decimal `json:"pago_inicial"      validate:"min=0"`
	FechaVencimiento *string         `json:"fecha_vencimiento" validate:"omitempty,datetime=2006-01-02"`
}

type ProcesarVentaRequest struct {
	ClienteID     *string            `json:"cliente_id" validate:"omitempty,uuid"`
	MetodoPago    string             `json:"metodo_pago" validate:"required,oneof=efectivo tarjeta transferencia"`
	Subtotal      decimal.Decimal    `json:"subtotal"  validate:"required"`
	Descuento     decimal.Decimal    `json:"descuento" validate:"min=0"`
	Total         decimal.Decimal    `json:"total"     validate:"required"`
	Items         []ItemVentaRequest `json:"items"     validate:"required,min=1,dive"`
	Credito       *CreditoRequest    `json:"credito"`
	Observaciones *string            `json:"observaciones"`
}

type VentaFilter struct {
	Estado string `form:"estado"`
	Fecha  string `form:"fecha"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID          string                 `json:"id"`
	NumeroVenta string                 `json:"numero_venta"`
	ClienteID   *string                `json:"cliente_id,omitempty"`
	MetodoPago  string                 `json:"metodo_pago"`
	Subtotal    decimal.Decimal        `json:"subtotal"`
	Descuento   decimal.Decimal        `json:"descuento"`
	Total       decimal.Decimal        `json:"total"`
	Estado      string                 `json:"estado"`
	Detalles    []DetalleVentaResponse `json:"detalles"`
	// CuentaID is set when the sale created a cuenta por cobrar.
	CuentaID   *string `json:"cuenta_id,omitempty"`
	FechaVenta string  `json:"fecha_venta"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
