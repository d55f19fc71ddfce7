package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/dto"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/model"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CuentaService is the accounts-receivable ledger. The saldo of an account is
// only ever derived (monto − Σpagos) and only ever mutated here; the customer's
// denormalized saldo_pendiente / total_compras move in the same transaction as
// every receivable mutation.
type CuentaService interface {
	Crear(ctx context.Context, req dto.CrearCuentaRequest) (*dto.CuentaResponse, error)
	// RegistrarPago applies a payment, records the matching till income and —
	// when the account reaches saldo 0 — transitions the originating sale to
	// completada. All of it commits or none of it does.
	RegistrarPago(ctx context.Context, usuario string, cuentaID uuid.UUID, req dto.PagoCuentaRequest) (*dto.CuentaResponse, error)
	// MarcarVencidas bulk-transitions pendiente accounts past due to vencida.
	// Idempotent: a second run over the same data changes nothing.
	MarcarVencidas(ctx context.Context, hoy time.Time) (int64, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CuentaResponse, error)
	Listar(ctx context.Context, filter dto.CuentaFilter) (*dto.CuentaListResponse, error)
}

type cuentaService struct {
	repo        repository.CuentaRepository
	clienteRepo repository.ClienteRepository
	ventaRepo   repository.VentaRepository
	cajaRepo    repository.CajaRepository
	caja        CajaService
}

func NewCuentaService(
	repo repository.CuentaRepository,
	clienteRepo repository.ClienteRepository,
	ventaRepo repository.VentaRepository,
	cajaRepo repository.CajaRepository,
	caja CajaService,
) CuentaService {
	return &cuentaService{
		repo:        repo,
		clienteRepo: clienteRepo,
		ventaRepo:   ventaRepo,
		cajaRepo:    cajaRepo,
		caja:        caja,
	}
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func (s *cuentaService) Crear(ctx context.Context, req dto.CrearCuentaRequest) (*dto.CuentaResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("%w: cliente_id mal formado", ErrSolicitudInvalida)
	}
	if !req.Monto.IsPositive() {
		return nil, ErrMontoInvalido
	}
	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		return nil, notFound(err, "cliente")
	}

	var vencimiento *time.Time
	if req.FechaVencimiento != nil {
		t, err := time.Parse("2006-01-02", *req.FechaVencimiento)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha_vencimiento mal formada", ErrSolicitudInvalida)
		}
		vencimiento = &t
	}

	cuenta := &model.CuentaPorCobrar{
		ClienteID:        clienteID,
		Monto:            req.Monto,
		Saldo:            req.Monto,
		FechaVencimiento: vencimiento,
		Estado:           model.CuentaPendiente,
		Observaciones:    req.Observaciones,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, cuenta); err != nil {
			return err
		}
		return s.clienteRepo.AjustarSaldoPendienteTx(tx, clienteID, req.Monto)
	})
	if txErr != nil {
		return nil, txErr
	}
	return cuentaToResponse(cuenta), nil
}

// ── RegistrarPago ─────────────────────────────────────────────────────────────

func (s *cuentaService) RegistrarPago(ctx context.Context, usuario string, cuentaID uuid.UUID, req dto.PagoCuentaRequest) (*dto.CuentaResponse, error) {
	var cuenta *model.CuentaPorCobrar

	err := s.caja.ConCajaAbierta(ctx, func(caja *model.Caja) error {
		return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			c, err := s.repo.FindByIDTx(tx, cuentaID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCuentaNoEncontrada
				}
				return err
			}
			if c.Estado == model.CuentaPagada {
				return ErrCuentaYaPagada
			}
			if !req.Monto.IsPositive() {
				return ErrMontoInvalido
			}
			if req.Monto.GreaterThan(c.Saldo) {
				return ErrPagoExcedeSaldo
			}

			pago := &model.PagoCuenta{
				CuentaID:      c.ID,
				Monto:         req.Monto,
				MetodoPago:    req.MetodoPago,
				Observaciones: req.Observaciones,
			}
			if err := s.repo.CreatePagoTx(tx, pago); err != nil {
				return err
			}

			c.Saldo = c.Saldo.Sub(req.Monto)
			if !c.Saldo.IsPositive() {
				c.Estado = model.CuentaPagada
			}
			if err := s.repo.UpdateTx(tx, c); err != nil {
				return err
			}

			if err := s.clienteRepo.AjustarSaldoPendienteTx(tx, c.ClienteID, req.Monto.Neg()); err != nil {
				return err
			}
			if err := s.clienteRepo.AjustarTotalComprasTx(tx, c.ClienteID, req.Monto); err != nil {
				return err
			}

			// Every collected payment lands in the till. Being inside the same
			// transaction, a failure here rolls the payment back instead of
			// swallowing it.
			ref := c.ID.String()
			mov := &model.MovimientoCaja{
				CajaID:     caja.ID,
				Tipo:       model.MovimientoIngreso,
				Monto:      req.Monto,
				Concepto:   "Cobro cuenta por cobrar",
				Usuario:    usuario,
				Referencia: &ref,
			}
			if err := s.cajaRepo.CreateMovimientoTx(tx, mov); err != nil {
				return err
			}

			if c.Estado == model.CuentaPagada && c.VentaID != nil {
				if err := s.ventaRepo.UpdateEstadoTx(tx, *c.VentaID, model.VentaCompletada); err != nil {
					return err
				}
			}

			c.Pagos = append(c.Pagos, *pago)
			cuenta = c
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return cuentaToResponse(cuenta), nil
}

// ── MarcarVencidas ────────────────────────────────────────────────────────────

func (s *cuentaService) MarcarVencidas(ctx context.Context, hoy time.Time) (int64, error) {
	return s.repo.MarcarVencidas(ctx, hoy)
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func (s *cuentaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CuentaResponse, error) {
	cuenta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCuentaNoEncontrada
		}
		return nil, err
	}
	return cuentaToResponse(cuenta), nil
}

func (s *cuentaService) Listar(ctx context.Context, filter dto.CuentaFilter) (*dto.CuentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	cuentas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CuentaResponse, 0, len(cuentas))
	for _, c := range cuentas {
		items = append(items, *cuentaToResponse(&c))
	}
	return &dto.CuentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func cuentaToResponse(c *model.CuentaPorCobrar) *dto.CuentaResponse {
	resp := &dto.CuentaResponse{
		ID:            c.ID.String(),
		ClienteID:     c.ClienteID.String(),
		Monto:         c.Monto,
		Saldo:         c.Saldo,
		Estado:        c.Estado,
		FechaCreacion: c.FechaCreacion.Format(time.RFC3339),
	}
	if c.VentaID != nil {
		v := c.VentaID.String()
		resp.VentaID = &v
	}
	if c.FechaVencimiento != nil {
		f := c.FechaVencimiento.Format("2006-01-02")
		resp.FechaVencimiento = &f
	}
	for _, p := range c.Pagos {
		resp.Pagos = append(resp.Pagos, dto.PagoCuentaResponse{
			ID:         p.ID.String(),
			Monto:      p.Monto,
			MetodoPago: p.MetodoPago,
			FechaPago:  p.FechaPago.Format(time.RFC3339),
		})
	}
	return resp
}
