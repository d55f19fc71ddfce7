package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	Codigo           string          `json:"codigo"       validate:"required"`
	Nombre           string          `json:"nombre"       validate:"required,min=2"`
	Descripcion      *string         `json:"descripcion"`
	Categoria        string          `json:"categoria"    validate:"required"`
	PrecioCompra     decimal.Decimal `json:"precio_compra" validate:"min=0"`
	PrecioVenta      decimal.Decimal `json:"precio_venta"  validate:"required"`
	VentaFraccionada bool            `json:"venta_fraccionada"`
	StockMinimo      decimal.Decimal `json:"stock_minimo" validate:"min=0"`
	UnidadMedida     string          `json:"unidad_medida"`
	ProveedorID      *string         `json:"proveedor_id" validate:"omitempty,uuid"`
}

type ActualizarProductoRequest struct {
	Nombre           *string          `json:"nombre" validate:"omitempty,min=2"`
	Descripcion      *string          `json:"descripcion"`
	Categoria        *string          `json:"categoria"`
	PrecioCompra     *decimal.Decimal `json:"precio_compra"`
	PrecioVenta      *decimal.Decimal `json:"precio_venta"`
	VentaFraccionada *bool            `json:"venta_fraccionada"`
	StockMinimo      *decimal.Decimal `json:"stock_minimo"`
}

type ProductoResponse struct {
	ID               string          `json:"id"`
	Codigo           string          `json:"codigo"`
	Nombre           string          `json:"nombre"`
	Descripcion      *string         `json:"descripcion,omitempty"`
	Categoria        string          `json:"categoria"`
	PrecioCompra     decimal.Decimal `json:"precio_compra"`
	PrecioVenta      decimal.Decimal `json:"precio_venta"`
	VentaFraccionada bool            `json:"venta_fraccionada"`
	StockMinimo      decimal.Decimal `json:"stock_minimo"`
	// Stock is derived from the movimientos ledger, never stored on productos.
	Stock        decimal.Decimal `json:"stock"`
	UnidadMedida string          `json:"unidad_medida"`
	Activo       bool            `json:"activo"`
}

// ConsultaPrecioResponse is served by the unauthenticated price-check endpoint.
type ConsultaPrecioResponse struct {
	Nombre      string          `json:"nombre"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	Stock       decimal.Decimal `json:"stock"`
	Categoria   string          `json:"categoria"`
}
