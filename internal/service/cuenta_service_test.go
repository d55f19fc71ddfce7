package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/dto"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/model"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cuentaFixture struct {
	cuentaRepo  *fakeCuentaRepo
	clienteRepo *fakeClienteRepo
	ventaRepo   *fakeVentaRepo
	cajaRepo    *fakeCajaRepo
	cajaSvc     service.CajaService
	svc         service.CuentaService
	cliente     *model.Cliente
}

func newCuentaFixture(t *testing.T) *cuentaFixture {
	t.Helper()
	f := &cuentaFixture{
		cuentaRepo:  newFakeCuentaRepo(),
		clienteRepo: newFakeClienteRepo(),
		ventaRepo:   newFakeVentaRepo(),
		cajaRepo:    newFakeCajaRepo(),
	}
	f.cajaSvc = service.NewCajaService(f.cajaRepo)
	f.svc = service.NewCuentaService(f.cuentaRepo, f.clienteRepo, f.ventaRepo, f.cajaRepo, f.cajaSvc)

	f.cliente = &model.Cliente{Nombre: "Juan Perez", Activo: true}
	require.NoError(t, f.clienteRepo.Create(context.Background(), f.cliente))
	return f
}

func (f *cuentaFixture) abrirCaja(t *testing.T) {
	t.Helper()
	_, err := f.cajaSvc.Abrir(context.Background(), dto.AbrirCajaRequest{BalanceApertura: dec("100")})
	require.NoError(t, err)
}

func (f *cuentaFixture) crearCuenta(t *testing.T, monto string) *dto.CuentaResponse {
	t.Helper()
	resp, err := f.svc.Crear(context.Background(), dto.CrearCuentaRequest{
		ClienteID: f.cliente.ID.String(),
		Monto:     dec(monto),
	})
	require.NoError(t, err)
	return resp
}

func TestCrearCuentaActualizaSaldoCliente(t *testing.T) {
	f := newCuentaFixture(t)

	resp := f.crearCuenta(t, "200.00")
	assert.Equal(t, model.CuentaPendiente, resp.Estado)
	assert.True(t, dec("200.00").Equal(resp.Saldo))

	cliente, err := f.clienteRepo.FindByID(context.Background(), f.cliente.ID)
	require.NoError(t, err)
	assert.True(t, dec("200.00").Equal(cliente.SaldoPendiente))
}

func TestCrearCuentaMontoInvalido(t *testing.T) {
	f := newCuentaFixture(t)
	_, err := f.svc.Crear(context.Background(), dto.CrearCuentaRequest{
		ClienteID: f.cliente.ID.String(),
		Monto:     dec("0"),
	})
	assert.ErrorIs(t, err, service.ErrMontoInvalido)
}

func TestPagoSinCajaAbierta(t *testing.T) {
	f := newCuentaFixture(t)
	cuenta := f.crearCuenta(t, "100")

	_, err := f.svc.RegistrarPago(context.Background(), "cajero1", uuid.MustParse(cuenta.ID), dto.PagoCuentaRequest{
		Monto: dec("50"), MetodoPago: "efectivo",
	})
	assert.ErrorIs(t, err, service.ErrCajaNoAbierta)
}

func TestPagoParcial(t *testing.T) {
	f := newCuentaFixture(t)
	cuenta := f.crearCuenta(t, "300.00")
	f.abrirCaja(t)

	resp, err := f.svc.RegistrarPago(context.Background(), "cajero1", uuid.MustParse(cuenta.ID), dto.PagoCuentaRequest{
		Monto: dec("120.00"), MetodoPago: "efectivo",
	})
	require.NoError(t, err)
	assert.Equal(t, model.CuentaPendiente, resp.Estado)
	assert.True(t, dec("180.00").Equal(resp.Saldo))
	require.Len(t, resp.Pagos, 1)

	// Denormalized customer aggregates move with the payment
	cliente, err := f.clienteRepo.FindByID(context.Background(), f.cliente.ID)
	require.NoError(t, err)
	assert.True(t, dec("180.00").Equal(cliente.SaldoPendiente))
	assert.True(t, dec("120.00").Equal(cliente.TotalCompras))

	// And the till received the money
	require.Len(t, f.cajaRepo.movimientos, 1)
	mov := f.cajaRepo.movimientos[0]
	assert.Equal(t, model.MovimientoIngreso, mov.Tipo)
	assert.True(t, dec("120.00").Equal(mov.Monto))
	assert.Equal(t, "cajero1", mov.Usuario)
	require.NotNil(t, mov.Referencia)
	assert.Equal(t, cuenta.ID, *mov.Referencia)
}

func TestPagoTotalCompletaVenta(t *testing.T) {
	f := newCuentaFixture(t)
	f.abrirCaja(t)

	// Credit sale backs this account
	venta := &model.Venta{ID: uuid.New(), NumeroVenta: "V-20260830-AB12CD34", Estado: model.VentaCredito, FechaVenta: time.Now()}
	require.NoError(t, f.ventaRepo.CreateTx(nil, venta))

	cuentaModelo := &model.CuentaPorCobrar{
		ClienteID: f.cliente.ID,
		VentaID:   &venta.ID,
		Monto:     dec("90.00"),
		Saldo:     dec("90.00"),
		Estado:    model.CuentaPendiente,
	}
	require.NoError(t, f.cuentaRepo.CreateTx(nil, cuentaModelo))
	require.NoError(t, f.clienteRepo.AjustarSaldoPendienteTx(nil, f.cliente.ID, dec("90.00")))

	resp, err := f.svc.RegistrarPago(context.Background(), "cajero1", cuentaModelo.ID, dto.PagoCuentaRequest{
		Monto: dec("90.00"), MetodoPago: "transferencia",
	})
	require.NoError(t, err)
	assert.Equal(t, model.CuentaPagada, resp.Estado)
	assert.True(t, resp.Saldo.IsZero())

	ventaLeida, err := f.ventaRepo.FindByID(context.Background(), venta.ID)
	require.NoError(t, err)
	assert.Equal(t, model.VentaCompletada, ventaLeida.Estado)

	cliente, err := f.clienteRepo.FindByID(context.Background(), f.cliente.ID)
	require.NoError(t, err)
	assert.True(t, cliente.SaldoPendiente.IsZero())
}

func TestPagoExcedeSaldo(t *testing.T) {
	f := newCuentaFixture(t)
	cuenta := f.crearCuenta(t, "50.00")
	f.abrirCaja(t)

	_, err := f.svc.RegistrarPago(context.Background(), "cajero1", uuid.MustParse(cuenta.ID), dto.PagoCuentaRequest{
		Monto: dec("50.01"), MetodoPago: "efectivo",
	})
	assert.ErrorIs(t, err, service.ErrPagoExcedeSaldo)

	// Nothing changed anywhere
	releida, err := f.svc.Obtener(context.Background(), uuid.MustParse(cuenta.ID))
	require.NoError(t, err)
	assert.True(t, dec("50.00").Equal(releida.Saldo))
	assert.Empty(t, releida.Pagos)
	assert.Empty(t, f.cajaRepo.movimientos)
}

func TestPagoCuentaYaPagada(t *testing.T) {
	f := newCuentaFixture(t)
	cuenta := f.crearCuenta(t, "10.00")
	f.abrirCaja(t)

	_, err := f.svc.RegistrarPago(context.Background(), "cajero1", uuid.MustParse(cuenta.ID), dto.PagoCuentaRequest{
		Monto: dec("10.00"), MetodoPago: "efectivo",
	})
	require.NoError(t, err)

	_, err = f.svc.RegistrarPago(context.Background(), "cajero1", uuid.MustParse(cuenta.ID), dto.PagoCuentaRequest{
		Monto: dec("1.00"), MetodoPago: "efectivo",
	})
	assert.ErrorIs(t, err, service.ErrCuentaYaPagada)
}

func TestPagoCuentaInexistente(t *testing.T) {
	f := newCuentaFixture(t)
	f.abrirCaja(t)

	_, err := f.svc.RegistrarPago(context.Background(), "cajero1", uuid.New(), dto.PagoCuentaRequest{
		Monto: dec("5"), MetodoPago: "efectivo",
	})
	assert.ErrorIs(t, err, service.ErrCuentaNoEncontrada)
}

func TestBarridoVencidasIdempotente(t *testing.T) {
	f := newCuentaFixture(t)

	ayer := time.Now().Add(-24 * time.Hour)
	manana := time.Now().Add(24 * time.Hour)

	vencida := &model.CuentaPorCobrar{
		ClienteID: f.cliente.ID, Monto: dec("10"), Saldo: dec("10"),
		FechaVencimiento: &ayer, Estado: model.CuentaPendiente,
	}
	vigente := &model.CuentaPorCobrar{
		ClienteID: f.cliente.ID, Monto: dec("20"), Saldo: dec("20"),
		FechaVencimiento: &manana, Estado: model.CuentaPendiente,
	}
	sinVencimiento := &model.CuentaPorCobrar{
		ClienteID: f.cliente.ID, Monto: dec("30"), Saldo: dec("30"),
		Estado: model.CuentaPendiente,
	}
	for _, c := range []*model.CuentaPorCobrar{vencida, vigente, sinVencimiento} {
		require.NoError(t, f.cuentaRepo.CreateTx(nil, c))
	}

	n, err := f.svc.MarcarVencidas(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Second sweep over the same data is a no-op
	n, err = f.svc.MarcarVencidas(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	releida, err := f.cuentaRepo.FindByID(context.Background(), vencida.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CuentaVencida, releida.Estado)
}
