package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/dto"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/model"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Liquidacion is how a sale's total is covered, resolved ONCE from the request
// before any ledger is touched. Components downstream switch on the concrete
// type instead of re-checking a credit flag.
type Liquidacion interface{ liquidacion() }

// LiquidacionContado: the full total is collected at the counter.
type LiquidacionContado struct {
	Total decimal.Decimal
}

// LiquidacionCredito: part (or none) of the total is collected now; the rest
// becomes a cuenta por cobrar.
type LiquidacionCredito struct {
	Deuda       decimal.Decimal
	PagoInicial decimal.Decimal
	Vencimiento *time.Time
}

func (LiquidacionContado) liquidacion() {}
func (LiquidacionCredito) liquidacion() {}

// VentaService is the sale orchestrator: the only place where the sale record,
// the inventory ledger, the till ledger and the receivables ledger are written
// together. The whole sequence runs under the till lock and inside a single
// transaction — either every ledger records the sale or none does.
type VentaService interface {
	ProcesarVenta(ctx context.Context, usuario string, req dto.ProcesarVentaRequest) (*dto.VentaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	inventario   InventarioService
	caja         CajaService
	cajaRepo     repository.CajaRepository
	cuentaRepo   repository.CuentaRepository
	clienteRepo  repository.ClienteRepository
	productoRepo repository.ProductoRepository
}

func NewVentaService(
	repo repository.VentaRepository,
	inventario InventarioService,
	caja CajaService,
	cajaRepo repository.CajaRepository,
	cuentaRepo repository.CuentaRepository,
	clienteRepo repository.ClienteRepository,
	productoRepo repository.ProductoRepository,
) VentaService {
	return &ventaService{
		repo:         repo,
		inventario:   inventario,
		caja:         caja,
		cajaRepo:     cajaRepo,
		cuentaRepo:   cuentaRepo,
		clienteRepo:  clienteRepo,
		productoRepo: productoRepo,
	}
}

// resolverLiquidacion normalizes the request into a settlement variant. A
// "credit" request whose initial payment already covers the total is a cash
// sale in disguise and is resolved as such.
func resolverLiquidacion(req dto.ProcesarVentaRequest) (Liquidacion, error) {
	if req.Credito == nil {
		return LiquidacionContado{Total: req.Total}, nil
	}
	if req.Credito.PagoInicial.IsNegative() {
		return nil, ErrMontoInvalido
	}
	deuda := req.Total.Sub(req.Credito.PagoInicial)
	if !deuda.IsPositive() {
		return LiquidacionContado{Total: req.Total}, nil
	}
	var vencimiento *time.Time
	if req.Credito.FechaVencimiento != nil {
		t, err := time.Parse("2006-01-02", *req.Credito.FechaVencimiento)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha_vencimiento mal formada", ErrSolicitudInvalida)
		}
		vencimiento = &t
	}
	return LiquidacionCredito{
		Deuda:       deuda,
		PagoInicial: req.Credito.PagoInicial,
		Vencimiento: vencimiento,
	}, nil
}

// numeroVenta derives the human-readable sale number from the row's own UUID
// plus the sale date. Deriving from identity (instead of counting today's
// sales) keeps numbers collision-free under concurrent inserts.
func numeroVenta(id uuid.UUID, fecha time.Time) string {
	return fmt.Sprintf("V-%s-%s", fecha.Format("20060102"), strings.ToUpper(hex.EncodeToString(id[:4])))
}

// ── ProcesarVenta ─────────────────────────────────────────────────────────────
//  1. Validate totals and resolve the settlement variant.
//  2. Under the till lock, inside ONE transaction:
//     a. resolve products, verify stock for every line (no partial sales),
//     b. persist venta + detalles,
//     c. append one inventory outflow per line,
//     d. settle: till income (contado) or cuenta por cobrar + optional
//     initial-payment income (credito),
//     e. keep the customer's denormalized totals in step.
//  3. Any failure rolls the whole sequence back.

func (s *ventaService) ProcesarVenta(ctx context.Context, usuario string, req dto.ProcesarVentaRequest) (*dto.VentaResponse, error) {
	if req.Subtotal.IsNegative() || req.Descuento.IsNegative() || req.Total.IsNegative() {
		return nil, ErrTotalNoCoincide
	}
	if !req.Total.Equal(req.Subtotal.Sub(req.Descuento)) {
		return nil, ErrTotalNoCoincide
	}

	liquidacion, err := resolverLiquidacion(req)
	if err != nil {
		return nil, err
	}

	var clienteID *uuid.UUID
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("%w: cliente_id mal formado", ErrSolicitudInvalida)
		}
		clienteID = &cid
	}
	if _, esCredito := liquidacion.(LiquidacionCredito); esCredito && clienteID == nil {
		return nil, ErrClienteRequerido
	}

	type lineaResuelta struct {
		producto *model.Producto
		cantidad decimal.Decimal
		precio   decimal.Decimal
		subtotal decimal.Decimal
	}

	var venta model.Venta
	var cuentaID *string

	err = s.caja.ConCajaAbierta(ctx, func(caja *model.Caja) error {
		return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			if clienteID != nil {
				if _, err := s.clienteRepo.FindByIDTx(tx, *clienteID); err != nil {
					return notFound(err, "cliente")
				}
			}

			// Resolve every line and verify stock BEFORE writing anything —
			// a sale either charges all its lines or none of them.
			lineas := make([]lineaResuelta, 0, len(req.Items))
			comprometido := make(map[uuid.UUID]decimal.Decimal)
			subtotal := decimal.Zero
			for _, item := range req.Items {
				pid, err := uuid.Parse(item.ProductoID)
				if err != nil {
					return fmt.Errorf("%w: producto_id mal formado", ErrSolicitudInvalida)
				}
				p, err := s.productoRepo.FindByIDTx(tx, pid)
				if err != nil {
					return notFound(err, "producto")
				}
				if !p.Activo {
					return fmt.Errorf("%w: producto %s esta inactivo y no puede venderse", ErrSolicitudInvalida, p.Nombre)
				}
				if !item.Cantidad.IsPositive() || (!p.VentaFraccionada && !item.Cantidad.IsInteger()) {
					return ErrCantidadInvalida
				}

				stock, err := s.inventario.StockActualTx(tx, pid)
				if err != nil {
					return err
				}
				disponible := stock.Sub(comprometido[pid])
				if item.Cantidad.GreaterThan(disponible) {
					return ErrStockInsuficiente
				}
				comprometido[pid] = comprometido[pid].Add(item.Cantidad)

				lineSubtotal := item.Cantidad.Mul(p.PrecioVenta)
				subtotal = subtotal.Add(lineSubtotal)
				lineas = append(lineas, lineaResuelta{
					producto: p,
					cantidad: item.Cantidad,
					precio:   p.PrecioVenta,
					subtotal: lineSubtotal,
				})
			}
			if !subtotal.Equal(req.Subtotal) {
				return ErrTotalNoCoincide
			}

			ahora := time.Now()
			ventaID := uuid.New()
			numero := numeroVenta(ventaID, ahora)

			estado := model.VentaCompletada
			if _, esCredito := liquidacion.(LiquidacionCredito); esCredito {
				estado = model.VentaCredito
			}

			venta = model.Venta{
				ID:            ventaID,
				NumeroVenta:   numero,
				ClienteID:     clienteID,
				CajaID:        caja.ID,
				MetodoPago:    req.MetodoPago,
				Subtotal:      req.Subtotal,
				Descuento:     req.Descuento,
				Total:         req.Total,
				Estado:        estado,
				Observaciones: req.Observaciones,
				FechaVenta:    ahora,
			}
			for _, l := range lineas {
				venta.Detalles = append(venta.Detalles, model.VentaDetalle{
					ProductoID:     l.producto.ID,
					Cantidad:       l.cantidad,
					PrecioUnitario: l.precio,
					Subtotal:       l.subtotal,
				})
			}
			if err := s.repo.CreateTx(tx, &venta); err != nil {
				return err
			}

			for _, l := range lineas {
				motivo := "Venta " + numero
				if _, err := s.inventario.RegistrarSalidaTx(tx, l.producto, l.cantidad, usuario, motivo); err != nil {
					return fmt.Errorf("error descontando stock de %s: %w", l.producto.Nombre, err)
				}
			}

			switch liq := liquidacion.(type) {
			case LiquidacionContado:
				if liq.Total.IsPositive() {
					ref := numero
					mov := &model.MovimientoCaja{
						CajaID:     caja.ID,
						Tipo:       model.MovimientoIngreso,
						Monto:      liq.Total,
						Concepto:   fmt.Sprintf("Venta %s (%s)", numero, req.MetodoPago),
						Usuario:    usuario,
						Referencia: &ref,
					}
					if err := s.cajaRepo.CreateMovimientoTx(tx, mov); err != nil {
						return err
					}
				}
				if clienteID != nil && liq.Total.IsPositive() {
					if err := s.clienteRepo.AjustarTotalComprasTx(tx, *clienteID, liq.Total); err != nil {
						return err
					}
				}

			case LiquidacionCredito:
				cuenta := &model.CuentaPorCobrar{
					ClienteID:        *clienteID,
					VentaID:          &venta.ID,
					Monto:            liq.Deuda,
					Saldo:            liq.Deuda,
					FechaVencimiento: liq.Vencimiento,
					Estado:           model.CuentaPendiente,
				}
				if err := s.cuentaRepo.CreateTx(tx, cuenta); err != nil {
					return err
				}
				if err := s.clienteRepo.AjustarSaldoPendienteTx(tx, *clienteID, liq.Deuda); err != nil {
					return err
				}
				cid := cuenta.ID.String()
				cuentaID = &cid

				// The initial payment goes straight to the till: the account
				// did not exist yet, so it is not a pago_cuenta.
				if liq.PagoInicial.IsPositive() {
					ref := numero
					mov := &model.MovimientoCaja{
						CajaID:     caja.ID,
						Tipo:       model.MovimientoIngreso,
						Monto:      liq.PagoInicial,
						Concepto:   "Pago inicial venta " + numero,
						Usuario:    usuario,
						Referencia: &ref,
					}
					if err := s.cajaRepo.CreateMovimientoTx(tx, mov); err != nil {
						return err
					}
					if err := s.clienteRepo.AjustarTotalComprasTx(tx, *clienteID, liq.PagoInicial); err != nil {
						return err
					}
				}
			}

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	resp := ventaToResponse(&venta)
	resp.CuentaID = cuentaID
	return resp, nil
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "venta")
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for _, v := range ventas {
		items = append(items, *ventaToResponse(&v))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	detalles := make([]dto.DetalleVentaResponse, 0, len(v.Detalles))
	for _, d := range v.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		detalles = append(detalles, dto.DetalleVentaResponse{
			ProductoID:     d.ProductoID.String(),
			Producto:       nombre,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}
	resp := &dto.VentaResponse{
		ID:          v.ID.String(),
		NumeroVenta: v.NumeroVenta,
		MetodoPago:  v.MetodoPago,
		Subtotal:    v.Subtotal,
		Descuento:   v.Descuento,
		Total:       v.Total,
		Estado:      v.Estado,
		Detalles:    detalles,
		FechaVenta:  v.FechaVenta.Format(time.RFC3339),
	}
	if v.ClienteID != nil {
		c := v.ClienteID.String()
		resp.ClienteID = &c
	}
	return resp
}
