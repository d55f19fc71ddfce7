package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/dto"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/model"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventarioService keeps the append-only stock ledger. The current stock of a
// product is the stock_nuevo of its latest movement; replaying the full
// history must always reproduce the same value.
type InventarioService interface {
	StockActual(ctx context.Context, productoID uuid.UUID) (decimal.Decimal, error)
	// StockActualTx reads the current stock inside an open transaction, for
	// pre-flight checks before a multi-line sale writes anything.
	StockActualTx(tx *gorm.DB, productoID uuid.UUID) (decimal.Decimal, error)
	// RegistrarMovimiento handles manual entradas and ajustes from the API.
	RegistrarMovimiento(ctx context.Context, usuario string, req dto.MovimientoInventarioRequest) (*dto.MovimientoResponse, error)
	// RegistrarSalidaTx appends an outflow inside an already-open sale
	// transaction. Fails with ErrStockInsuficiente without writing anything.
	RegistrarSalidaTx(tx *gorm.DB, producto *model.Producto, cantidad decimal.Decimal, usuario, motivo string) (*model.Movimiento, error)
	ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
}

type inventarioService struct {
	repo         repository.MovimientoRepository
	productoRepo repository.ProductoRepository
}

func NewInventarioService(repo repository.MovimientoRepository, productoRepo repository.ProductoRepository) InventarioService {
	return &inventarioService{repo: repo, productoRepo: productoRepo}
}

// ── StockActual ───────────────────────────────────────────────────────────────

func (s *inventarioService) StockActual(ctx context.Context, productoID uuid.UUID) (decimal.Decimal, error) {
	ultimo, err := s.repo.Ultimo(ctx, productoID)
	if err != nil {
		return decimal.Zero, err
	}
	if ultimo == nil {
		return decimal.Zero, nil
	}
	return ultimo.StockNuevo, nil
}

func (s *inventarioService) StockActualTx(tx *gorm.DB, productoID uuid.UUID) (decimal.Decimal, error) {
	ultimo, err := s.repo.UltimoTx(tx, productoID)
	if err != nil {
		return decimal.Zero, err
	}
	if ultimo == nil {
		return decimal.Zero, nil
	}
	return ultimo.StockNuevo, nil
}

// ── RegistrarMovimiento ───────────────────────────────────────────────────────

func (s *inventarioService) RegistrarMovimiento(ctx context.Context, usuario string, req dto.MovimientoInventarioRequest) (*dto.MovimientoResponse, error) {
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, fmt.Errorf("%w: producto_id mal formado", ErrSolicitudInvalida)
	}
	producto, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		return nil, notFound(err, "producto")
	}

	var proveedorID *uuid.UUID
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("%w: proveedor_id mal formado", ErrSolicitudInvalida)
		}
		proveedorID = &pid
	}

	var mov *model.Movimiento
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		m, err := s.aplicarTx(tx, producto, req.Tipo, req.Cantidad, usuario)
		if err != nil {
			return err
		}
		m.ProveedorID = proveedorID
		m.CostoUnitario = req.CostoUnitario
		m.Observaciones = req.Observaciones
		if err := s.repo.CreateTx(tx, m); err != nil {
			return err
		}
		mov = m
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return movimientoToResponse(mov, producto.Nombre), nil
}

// ── RegistrarSalidaTx ─────────────────────────────────────────────────────────

func (s *inventarioService) RegistrarSalidaTx(tx *gorm.DB, producto *model.Producto, cantidad decimal.Decimal, usuario, motivo string) (*model.Movimiento, error) {
	m, err := s.aplicarTx(tx, producto, model.MovimientoSalida, cantidad, usuario)
	if err != nil {
		return nil, err
	}
	m.Observaciones = &motivo
	if err := s.repo.CreateTx(tx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// aplicarTx reads the product's latest snapshot, validates the quantity
// against the fractional-sale flag, computes the new snapshot and returns the
// (not yet persisted) movement. Snapshot arithmetic:
//
//	entrada: nuevo = anterior + cantidad   (cantidad > 0)
//	salida:  nuevo = anterior − cantidad   (cantidad > 0, nuevo >= 0)
//	ajuste:  nuevo = anterior + cantidad   (cantidad signed, nuevo >= 0)
func (s *inventarioService) aplicarTx(tx *gorm.DB, producto *model.Producto, tipo string, cantidad decimal.Decimal, usuario string) (*model.Movimiento, error) {
	if !producto.VentaFraccionada && !cantidad.IsInteger() {
		return nil, ErrCantidadInvalida
	}
	if tipo != model.MovimientoAjuste && !cantidad.IsPositive() {
		return nil, ErrCantidadInvalida
	}
	if tipo == model.MovimientoAjuste && cantidad.IsZero() {
		return nil, ErrCantidadInvalida
	}

	ultimo, err := s.repo.UltimoTx(tx, producto.ID)
	if err != nil {
		return nil, err
	}
	anterior := decimal.Zero
	if ultimo != nil {
		anterior = ultimo.StockNuevo
	}

	var nuevo decimal.Decimal
	switch tipo {
	case model.MovimientoEntrada, model.MovimientoAjuste:
		nuevo = anterior.Add(cantidad)
	case model.MovimientoSalida:
		nuevo = anterior.Sub(cantidad)
	default:
		return nil, fmt.Errorf("%w: tipo de movimiento desconocido %q", ErrSolicitudInvalida, tipo)
	}
	if nuevo.IsNegative() {
		return nil, ErrStockInsuficiente
	}

	return &model.Movimiento{
		ProductoID:    producto.ID,
		Tipo:          tipo,
		Cantidad:      cantidad,
		StockAnterior: anterior,
		StockNuevo:    nuevo,
		Usuario:       usuario,
	}, nil
}

// ── ListarMovimientos ─────────────────────────────────────────────────────────

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	movs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		nombre := ""
		if m.Producto != nil {
			nombre = m.Producto.Nombre
		}
		items = append(items, *movimientoToResponse(&m, nombre))
	}
	return &dto.MovimientoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func movimientoToResponse(m *model.Movimiento, producto string) *dto.MovimientoResponse {
	return &dto.MovimientoResponse{
		ID:            m.ID.String(),
		ProductoID:    m.ProductoID.String(),
		Producto:      producto,
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		StockAnterior: m.StockAnterior,
		StockNuevo:    m.StockNuevo,
		Usuario:       m.Usuario,
		Fecha:         m.Fecha.Format(time.RFC3339),
	}
}
