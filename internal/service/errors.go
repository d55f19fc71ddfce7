package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Domain errors surfaced by the ledger services. Handlers map these to HTTP
// statuses with errors.Is; anything else is treated as a storage failure.
var (
	// ErrCajaNoAbierta: money cannot move without an open till.
	ErrCajaNoAbierta = errors.New("no hay una caja abierta")
	// ErrCajaYaAbierta: at most one till session may be open.
	ErrCajaYaAbierta = errors.New("ya existe una caja abierta")
	// ErrMontoInvalido: amounts on ledger entries must be positive.
	ErrMontoInvalido = errors.New("el monto debe ser mayor a cero")
	// ErrCantidadInvalida: quantity violates the product's fractional-sale flag
	// or is not positive where it must be.
	ErrCantidadInvalida = errors.New("cantidad invalida para el producto")
	// ErrStockInsuficiente: an outflow would drive stock below zero.
	ErrStockInsuficiente = errors.New("stock insuficiente")
	// ErrTotalNoCoincide: total != subtotal - descuento, or the line items do
	// not add up to the declared subtotal.
	ErrTotalNoCoincide = errors.New("el total no coincide con los importes declarados")
	// ErrClienteRequerido: a credit sale needs a customer to owe the balance.
	ErrClienteRequerido = errors.New("una venta a credito requiere cliente")
	// ErrCuentaNoEncontrada: unknown cuenta por cobrar.
	ErrCuentaNoEncontrada = errors.New("cuenta por cobrar no encontrada")
	// ErrCuentaYaPagada: paid accounts accept no further payments.
	ErrCuentaYaPagada = errors.New("la cuenta ya esta pagada")
	// ErrPagoExcedeSaldo: a payment may never exceed the remaining balance.
	ErrPagoExcedeSaldo = errors.New("el pago excede el saldo de la cuenta")
	// ErrNoEncontrado: a referenced resource does not exist.
	ErrNoEncontrado = errors.New("no encontrado")
	// ErrSolicitudInvalida: the caller's input is rejected by the domain
	// (malformed ids, bad dates, inactive products, duplicate codes).
	ErrSolicitudInvalida = errors.New("solicitud invalida")
)

// notFound normalizes gorm's record-not-found into ErrNoEncontrado so the
// HTTP edge maps it to 404; any other storage error passes through untouched
// and surfaces as an internal failure.
func notFound(err error, recurso string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", recurso, ErrNoEncontrado)
	}
	return err
}
