package service_test

// In-memory repository implementations shared by the service tests. They hold
// everything in maps and slices, return copies on reads, and hand back a nil
// *gorm.DB so the transaction helper runs callbacks directly.

import (
	"context"
	"time"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/dto"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/model"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── CajaRepository ───────────────────────────────────────────────────────────

type fakeCajaRepo struct {
	cajas       map[uuid.UUID]*model.Caja
	movimientos []model.MovimientoCaja
}

var _ repository.CajaRepository = (*fakeCajaRepo)(nil)

func newFakeCajaRepo() *fakeCajaRepo {
	return &fakeCajaRepo{cajas: make(map[uuid.UUID]*model.Caja)}
}

func (r *fakeCajaRepo) DB() *gorm.DB { return nil }

func (r *fakeCajaRepo) CreateCaja(_ context.Context, c *model.Caja) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	copia := *c
	r.cajas[c.ID] = &copia
	return nil
}

func (r *fakeCajaRepo) FindAbierta(_ context.Context) (*model.Caja, error) {
	for _, c := range r.cajas {
		if c.Estado == model.CajaAbierta {
			copia := *c
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *fakeCajaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caja, error) {
	c, ok := r.cajas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *c
	return &copia, nil
}

func (r *fakeCajaRepo) UpdateCajaTx(_ *gorm.DB, c *model.Caja) error {
	copia := *c
	r.cajas[c.ID] = &copia
	return nil
}

func (r *fakeCajaRepo) CreateMovimiento(_ context.Context, m *model.MovimientoCaja) error {
	return r.CreateMovimientoTx(nil, m)
}

func (r *fakeCajaRepo) CreateMovimientoTx(_ *gorm.DB, m *model.MovimientoCaja) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Fecha.IsZero() {
		m.Fecha = time.Now()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *fakeCajaRepo) ListMovimientos(_ context.Context, cajaID uuid.UUID) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	for _, m := range r.movimientos {
		if m.CajaID == cajaID {
			movs = append(movs, m)
		}
	}
	return movs, nil
}

func (r *fakeCajaRepo) SumMovimientos(_ context.Context, cajaID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	ingresos, egresos := decimal.Zero, decimal.Zero
	for _, m := range r.movimientos {
		if m.CajaID != cajaID {
			continue
		}
		switch m.Tipo {
		case model.MovimientoIngreso:
			ingresos = ingresos.Add(m.Monto)
		case model.MovimientoEgreso:
			egresos = egresos.Add(m.Monto)
		}
	}
	return ingresos, egresos, nil
}

// ── MovimientoRepository ─────────────────────────────────────────────────────

type fakeMovimientoRepo struct {
	movimientos []model.Movimiento
}

var _ repository.MovimientoRepository = (*fakeMovimientoRepo)(nil)

func newFakeMovimientoRepo() *fakeMovimientoRepo { return &fakeMovimientoRepo{} }

func (r *fakeMovimientoRepo) DB() *gorm.DB { return nil }

func (r *fakeMovimientoRepo) Create(_ context.Context, m *model.Movimiento) error {
	return r.CreateTx(nil, m)
}

func (r *fakeMovimientoRepo) CreateTx(_ *gorm.DB, m *model.Movimiento) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Fecha.IsZero() {
		m.Fecha = time.Now()
	}
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *fakeMovimientoRepo) Ultimo(_ context.Context, productoID uuid.UUID) (*model.Movimiento, error) {
	return r.UltimoTx(nil, productoID)
}

func (r *fakeMovimientoRepo) UltimoTx(_ *gorm.DB, productoID uuid.UUID) (*model.Movimiento, error) {
	// slice order is insertion order, so the last match is the latest entry
	for i := len(r.movimientos) - 1; i >= 0; i-- {
		if r.movimientos[i].ProductoID == productoID {
			copia := r.movimientos[i]
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *fakeMovimientoRepo) Historial(_ context.Context, productoID uuid.UUID) ([]model.Movimiento, error) {
	var movs []model.Movimiento
	for _, m := range r.movimientos {
		if m.ProductoID == productoID {
			movs = append(movs, m)
		}
	}
	return movs, nil
}

func (r *fakeMovimientoRepo) List(_ context.Context, filter dto.MovimientoFilter) ([]model.Movimiento, int64, error) {
	var movs []model.Movimiento
	for _, m := range r.movimientos {
		if filter.ProductoID != "" && m.ProductoID.String() != filter.ProductoID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		movs = append(movs, m)
	}
	return movs, int64(len(movs)), nil
}

// ── VentaRepository ──────────────────────────────────────────────────────────

type fakeVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
}

var _ repository.VentaRepository = (*fakeVentaRepo)(nil)

func newFakeVentaRepo() *fakeVentaRepo {
	return &fakeVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *fakeVentaRepo) DB() *gorm.DB { return nil }

func (r *fakeVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	copia := *v
	r.ventas[v.ID] = &copia
	return nil
}

func (r *fakeVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *v
	return &copia, nil
}

func (r *fakeVentaRepo) FindByNumero(_ context.Context, numero string) (*model.Venta, error) {
	for _, v := range r.ventas {
		if v.NumeroVenta == numero {
			copia := *v
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVentaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Estado = estado
	return nil
}

func (r *fakeVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	for _, v := range r.ventas {
		if filter.Estado != "" && filter.Estado != "all" && v.Estado != filter.Estado {
			continue
		}
		ventas = append(ventas, *v)
	}
	return ventas, int64(len(ventas)), nil
}

// ── CuentaRepository ─────────────────────────────────────────────────────────

type fakeCuentaRepo struct {
	cuentas map[uuid.UUID]*model.CuentaPorCobrar
	pagos   []model.PagoCuenta
}

var _ repository.CuentaRepository = (*fakeCuentaRepo)(nil)

func newFakeCuentaRepo() *fakeCuentaRepo {
	return &fakeCuentaRepo{cuentas: make(map[uuid.UUID]*model.CuentaPorCobrar)}
}

func (r *fakeCuentaRepo) DB() *gorm.DB { return nil }

func (r *fakeCuentaRepo) CreateTx(_ *gorm.DB, c *model.CuentaPorCobrar) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.FechaCreacion.IsZero() {
		c.FechaCreacion = time.Now()
	}
	copia := *c
	r.cuentas[c.ID] = &copia
	return nil
}

func (r *fakeCuentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CuentaPorCobrar, error) {
	return r.FindByIDTx(nil, id)
}

func (r *fakeCuentaRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.CuentaPorCobrar, error) {
	c, ok := r.cuentas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *c
	copia.Pagos = nil
	for _, p := range r.pagos {
		if p.CuentaID == id {
			copia.Pagos = append(copia.Pagos, p)
		}
	}
	return &copia, nil
}

func (r *fakeCuentaRepo) UpdateTx(_ *gorm.DB, c *model.CuentaPorCobrar) error {
	copia := *c
	copia.Pagos = nil
	r.cuentas[c.ID] = &copia
	return nil
}

func (r *fakeCuentaRepo) CreatePagoTx(_ *gorm.DB, p *model.PagoCuenta) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.FechaPago.IsZero() {
		p.FechaPago = time.Now()
	}
	r.pagos = append(r.pagos, *p)
	return nil
}

func (r *fakeCuentaRepo) MarcarVencidas(_ context.Context, hoy time.Time) (int64, error) {
	var n int64
	for _, c := range r.cuentas {
		if c.Estado == model.CuentaPendiente && c.FechaVencimiento != nil && c.FechaVencimiento.Before(hoy) {
			c.Estado = model.CuentaVencida
			n++
		}
	}
	return n, nil
}

func (r *fakeCuentaRepo) List(_ context.Context, filter dto.CuentaFilter) ([]model.CuentaPorCobrar, int64, error) {
	var cuentas []model.CuentaPorCobrar
	for _, c := range r.cuentas {
		if filter.ClienteID != "" && c.ClienteID.String() != filter.ClienteID {
			continue
		}
		if filter.Estado != "" && c.Estado != filter.Estado {
			continue
		}
		cuentas = append(cuentas, *c)
	}
	return cuentas, int64(len(cuentas)), nil
}

// ── ClienteRepository ────────────────────────────────────────────────────────

type fakeClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

var _ repository.ClienteRepository = (*fakeClienteRepo)(nil)

func newFakeClienteRepo() *fakeClienteRepo {
	return &fakeClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *fakeClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	copia := *c
	r.clientes[c.ID] = &copia
	return nil
}

func (r *fakeClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	return r.FindByIDTx(nil, id)
}

func (r *fakeClienteRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *c
	return &copia, nil
}

func (r *fakeClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	copia := *c
	r.clientes[c.ID] = &copia
	return nil
}

func (r *fakeClienteRepo) List(_ context.Context, incluirInactivos bool) ([]model.Cliente, error) {
	var clientes []model.Cliente
	for _, c := range r.clientes {
		if !incluirInactivos && !c.Activo {
			continue
		}
		clientes = append(clientes, *c)
	}
	return clientes, nil
}

func (r *fakeClienteRepo) AjustarSaldoPendienteTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.SaldoPendiente = c.SaldoPendiente.Add(delta)
	return nil
}

func (r *fakeClienteRepo) AjustarTotalComprasTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	c, ok := r.clientes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.TotalCompras = c.TotalCompras.Add(delta)
	return nil
}

// ── ProductoRepository ───────────────────────────────────────────────────────

type fakeProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

var _ repository.ProductoRepository = (*fakeProductoRepo)(nil)

func newFakeProductoRepo() *fakeProductoRepo {
	return &fakeProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *fakeProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	copia := *p
	r.productos[p.ID] = &copia
	return nil
}

func (r *fakeProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	return r.FindByIDTx(nil, id)
}

func (r *fakeProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *fakeProductoRepo) FindByCodigo(_ context.Context, codigo string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.Codigo == codigo {
			copia := *p
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductoRepo) Update(_ context.Context, p *model.Producto) error {
	copia := *p
	r.productos[p.ID] = &copia
	return nil
}

func (r *fakeProductoRepo) SetActivo(_ context.Context, id uuid.UUID, activo bool) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = activo
	return nil
}

func (r *fakeProductoRepo) List(_ context.Context, incluirInactivos bool) ([]model.Producto, error) {
	var productos []model.Producto
	for _, p := range r.productos {
		if !incluirInactivos && !p.Activo {
			continue
		}
		productos = append(productos, *p)
	}
	return productos, nil
}

// ── ProveedorRepository ──────────────────────────────────────────────────────

type fakeProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

var _ repository.ProveedorRepository = (*fakeProveedorRepo)(nil)

func newFakeProveedorRepo() *fakeProveedorRepo {
	return &fakeProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (r *fakeProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	copia := *p
	r.proveedores[p.ID] = &copia
	return nil
}

func (r *fakeProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *fakeProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	copia := *p
	r.proveedores[p.ID] = &copia
	return nil
}

func (r *fakeProveedorRepo) List(_ context.Context, incluirInactivos bool) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		if !incluirInactivos && !p.Activo {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}
