package dto

import "github.com/shopspring/decimal"

type CrearClienteRequest struct {
	Nombre    string  `json:"nombre" validate:"required,min=2"`
	Documento *string `json:"documento"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Direccion *string `json:"direccion"`
}

type ActualizarClienteRequest struct {
	Nombre    *string `json:"nombre" validate:"omitempty,min=2"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Direccion *string `json:"direccion"`
}

type ClienteResponse struct {
	ID             string          `json:"id"`
	Nombre         string          `json:"nombre"`
	Documento      *string         `json:"documento,omitempty"`
	Telefono       *string         `json:"telefono,omitempty"`
	Email          *string         `json:"email,omitempty"`
	Direccion      *string         `json:"direccion,omitempty"`
	SaldoPendiente decimal.Decimal `json:"saldo_pendiente"`
	TotalCompras   decimal.Decimal `json:"total_compras"`
	Activo         bool            `json:"activo"`
}
