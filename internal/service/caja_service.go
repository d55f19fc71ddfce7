package service

import (
	"context"
	"sync"
	"time"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/dto"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/model"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CajaService owns the singleton "caja abierta". Every operation that moves
// money — manual movements, sales, receivable payments — goes through this
// service's mutex, which is what serializes concurrent register activity for
// the single active till.
type CajaService interface {
	Abrir(ctx context.Context, req dto.AbrirCajaRequest) (*dto.CajaResponse, error)
	// Activa returns the open till, or (nil, nil) when none is open.
	Activa(ctx context.Context) (*dto.CajaResponse, error)
	RegistrarMovimiento(ctx context.Context, usuario string, req dto.MovimientoCajaRequest) error
	Cerrar(ctx context.Context) (*dto.CierreCajaResponse, error)
	ListarMovimientos(ctx context.Context, cajaID uuid.UUID) ([]dto.MovimientoCajaResponse, error)

	// ConCajaAbierta runs fn while holding the till lock, with the currently
	// open session. It is the entry point used by VentaService and
	// CuentaService so that their multi-table sequences cannot interleave
	// with each other or with manual movements.
	ConCajaAbierta(ctx context.Context, fn func(caja *model.Caja) error) error
}

type cajaService struct {
	repo repository.CajaRepository
	mu   sync.Mutex
}

func NewCajaService(repo repository.CajaRepository) CajaService {
	return &cajaService{repo: repo}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, req dto.AbrirCajaRequest) (*dto.CajaResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.FindAbierta(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCajaYaAbierta
	}
	if req.BalanceApertura.IsNegative() {
		return nil, ErrMontoInvalido
	}

	caja := &model.Caja{
		BalanceApertura: req.BalanceApertura,
		FechaApertura:   time.Now(),
		Estado:          model.CajaAbierta,
	}
	if err := s.repo.CreateCaja(ctx, caja); err != nil {
		return nil, err
	}
	return cajaToResponse(caja), nil
}

// ── Activa ────────────────────────────────────────────────────────────────────

func (s *cajaService) Activa(ctx context.Context) (*dto.CajaResponse, error) {
	caja, err := s.repo.FindAbierta(ctx)
	if err != nil {
		return nil, err
	}
	if caja == nil {
		return nil, nil
	}
	return cajaToResponse(caja), nil
}

// ── RegistrarMovimiento ───────────────────────────────────────────────────────
// The only legal way money enters or leaves the till ledger. Movements are
// immutable — no Update/Delete exists on the repository.

func (s *cajaService) RegistrarMovimiento(ctx context.Context, usuario string, req dto.MovimientoCajaRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	caja, err := s.repo.FindAbierta(ctx)
	if err != nil {
		return err
	}
	if caja == nil {
		return ErrCajaNoAbierta
	}
	if !req.Monto.IsPositive() {
		return ErrMontoInvalido
	}

	mov := &model.MovimientoCaja{
		CajaID:     caja.ID,
		Tipo:       req.Tipo,
		Monto:      req.Monto,
		Concepto:   req.Concepto,
		Usuario:    usuario,
		Referencia: req.Referencia,
	}
	return s.repo.CreateMovimiento(ctx, mov)
}

// ── Cerrar ────────────────────────────────────────────────────────────────────
// Snapshots total_calculado = balance_apertura + Σingresos − Σegresos and
// closes the session. Closing is terminal; resuming requires a new Abrir.

func (s *cajaService) Cerrar(ctx context.Context) (*dto.CierreCajaResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caja, err := s.repo.FindAbierta(ctx)
	if err != nil {
		return nil, err
	}
	if caja == nil {
		return nil, ErrCajaNoAbierta
	}

	ingresos, egresos, err := s.repo.SumMovimientos(ctx, caja.ID)
	if err != nil {
		return nil, err
	}
	total := caja.BalanceApertura.Add(ingresos).Sub(egresos)
	ahora := time.Now()

	caja.Estado = model.CajaCerrada
	caja.FechaCierre = &ahora
	caja.TotalCalculado = &total

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.UpdateCajaTx(tx, caja)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &dto.CierreCajaResponse{
		ID:              caja.ID.String(),
		BalanceApertura: caja.BalanceApertura,
		TotalIngresos:   ingresos,
		TotalEgresos:    egresos,
		TotalCalculado:  total,
		Estado:          caja.Estado,
		FechaCierre:     ahora.Format(time.RFC3339),
	}, nil
}

// ── ConCajaAbierta ────────────────────────────────────────────────────────────

func (s *cajaService) ConCajaAbierta(ctx context.Context, fn func(caja *model.Caja) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	caja, err := s.repo.FindAbierta(ctx)
	if err != nil {
		return err
	}
	if caja == nil {
		return ErrCajaNoAbierta
	}
	return fn(caja)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *cajaService) ListarMovimientos(ctx context.Context, cajaID uuid.UUID) ([]dto.MovimientoCajaResponse, error) {
	movs, err := s.repo.ListMovimientos(ctx, cajaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoCajaResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovimientoCajaResponse{
			ID:         m.ID.String(),
			Tipo:       m.Tipo,
			Monto:      m.Monto,
			Concepto:   m.Concepto,
			Usuario:    m.Usuario,
			Referencia: m.Referencia,
			Fecha:      m.Fecha.Format(time.RFC3339),
		})
	}
	return out, nil
}

func cajaToResponse(c *model.Caja) *dto.CajaResponse {
	resp := &dto.CajaResponse{
		ID:              c.ID.String(),
		BalanceApertura: c.BalanceApertura,
		TotalCalculado:  c.TotalCalculado,
		Estado:          c.Estado,
		FechaApertura:   c.FechaApertura.Format(time.RFC3339),
	}
	if c.FechaCierre != nil {
		t := c.FechaCierre.Format(time.RFC3339)
		resp.FechaCierre = &t
	}
	return resp
}
