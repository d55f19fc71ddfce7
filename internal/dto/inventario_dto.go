package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// MovimientoInventarioRequest registers a manual entrada or ajuste.
// Salidas are created exclusively by the sale orchestrator.
type MovimientoInventarioRequest struct {
	ProductoID    string          `json:"producto_id" validate:"required,uuid"`
	Tipo          string          `json:"tipo"        validate:"required,oneof=entrada ajuste"`
	Cantidad      decimal.Decimal `json:"cantidad"    validate:"required"`
	ProveedorID   *string         `json:"proveedor_id" validate:"omitempty,uuid"`
	CostoUnitario *decimal.Decimal `json:"costo_unitario"`
	Observaciones *string         `json:"observaciones"`
}

type MovimientoFilter struct {
	ProductoID string `form:"producto_id"`
	Tipo       string `form:"tipo"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type StockResponse struct {
	ProductoID string          `json:"producto_id"`
	Stock      decimal.Decimal `json:"stock"`
}

type MovimientoResponse struct {
	ID            string          `json:"id"`
	ProductoID    string          `json:"producto_id"`
	Producto      string          `json:"producto,omitempty"`
	Tipo          string          `json:"tipo"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	StockAnterior decimal.Decimal `json:"stock_anterior"`
	StockNuevo    decimal.Decimal `json:"stock_nuevo"`
	Usuario       string          `json:"usuario"`
	Fecha         string          `json:"fecha"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
