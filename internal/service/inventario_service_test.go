package service_test

import (
	"context"
	"testing"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/dto"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/model"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func crearProducto(t *testing.T, repo *fakeProductoRepo, codigo string, fraccionado bool) *model.Producto {
	t.Helper()
	p := &model.Producto{
		Codigo:           codigo,
		Nombre:           "Producto " + codigo,
		Categoria:        "general",
		PrecioCompra:     dec("7.00"),
		PrecioVenta:      dec("10.00"),
		VentaFraccionada: fraccionado,
		UnidadMedida:     "unidad",
		Activo:           true,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestEntradaRegistraSnapshots(t *testing.T) {
	movRepo := newFakeMovimientoRepo()
	prodRepo := newFakeProductoRepo()
	svc := service.NewInventarioService(movRepo, prodRepo)
	p := crearProducto(t, prodRepo, "TOR-001", false)

	resp, err := svc.RegistrarMovimiento(context.Background(), "admin", dto.MovimientoInventarioRequest{
		ProductoID: p.ID.String(), Tipo: model.MovimientoEntrada, Cantidad: dec("50"),
	})
	require.NoError(t, err)
	assert.True(t, dec("0").Equal(resp.StockAnterior))
	assert.True(t, dec("50").Equal(resp.StockNuevo))

	resp, err = svc.RegistrarMovimiento(context.Background(), "admin", dto.MovimientoInventarioRequest{
		ProductoID: p.ID.String(), Tipo: model.MovimientoEntrada, Cantidad: dec("25"),
	})
	require.NoError(t, err)
	assert.True(t, dec("50").Equal(resp.StockAnterior))
	assert.True(t, dec("75").Equal(resp.StockNuevo))

	stock, err := svc.StockActual(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, dec("75").Equal(stock))
}

func TestAjusteNegativo(t *testing.T) {
	movRepo := newFakeMovimientoRepo()
	prodRepo := newFakeProductoRepo()
	svc := service.NewInventarioService(movRepo, prodRepo)
	p := crearProducto(t, prodRepo, "CLA-002", false)

	_, err := svc.RegistrarMovimiento(context.Background(), "admin", dto.MovimientoInventarioRequest{
		ProductoID: p.ID.String(), Tipo: model.MovimientoEntrada, Cantidad: dec("10"),
	})
	require.NoError(t, err)

	resp, err := svc.RegistrarMovimiento(context.Background(), "admin", dto.MovimientoInventarioRequest{
		ProductoID: p.ID.String(), Tipo: model.MovimientoAjuste, Cantidad: dec("-3"),
	})
	require.NoError(t, err)
	assert.True(t, dec("7").Equal(resp.StockNuevo))

	// An adjustment below zero is rejected and leaves no entry behind
	_, err = svc.RegistrarMovimiento(context.Background(), "admin", dto.MovimientoInventarioRequest{
		ProductoID: p.ID.String(), Tipo: model.MovimientoAjuste, Cantidad: dec("-8"),
	})
	assert.ErrorIs(t, err, service.ErrStockInsuficiente)
	assert.Len(t, movRepo.movimientos, 2)
}

func TestAjusteCeroInvalido(t *testing.T) {
	movRepo := newFakeMovimientoRepo()
	prodRepo := newFakeProductoRepo()
	svc := service.NewInventarioService(movRepo, prodRepo)
	p := crearProducto(t, prodRepo, "ADJ-000", false)

	_, err := svc.RegistrarMovimiento(context.Background(), "admin", dto.MovimientoInventarioRequest{
		ProductoID: p.ID.String(), Tipo: model.MovimientoAjuste, Cantidad: dec("0"),
	})
	assert.ErrorIs(t, err, service.ErrCantidadInvalida)
}

func TestSalidaInsuficiente(t *testing.T) {
	movRepo := newFakeMovimientoRepo()
	prodRepo := newFakeProductoRepo()
	svc := service.NewInventarioService(movRepo, prodRepo)
	p := crearProducto(t, prodRepo, "MAR-003", false)

	_, err := svc.RegistrarSalidaTx(nil, p, dec("1"), "cajero1", "Venta V-X")
	assert.ErrorIs(t, err, service.ErrStockInsuficiente)
	assert.Empty(t, movRepo.movimientos)
}

func TestCantidadFraccionada(t *testing.T) {
	movRepo := newFakeMovimientoRepo()
	prodRepo := newFakeProductoRepo()
	svc := service.NewInventarioService(movRepo, prodRepo)

	entero := crearProducto(t, prodRepo, "CAJ-004", false)
	fraccionado := crearProducto(t, prodRepo, "CAB-005", true)

	// Non-fractional product rejects decimal quantities
	_, err := svc.RegistrarMovimiento(context.Background(), "admin", dto.MovimientoInventarioRequest{
		ProductoID: entero.ID.String(), Tipo: model.MovimientoEntrada, Cantidad: dec("2.5"),
	})
	assert.ErrorIs(t, err, service.ErrCantidadInvalida)

	// Fractional product accepts them
	resp, err := svc.RegistrarMovimiento(context.Background(), "admin", dto.MovimientoInventarioRequest{
		ProductoID: fraccionado.ID.String(), Tipo: model.MovimientoEntrada, Cantidad: dec("2.5"),
	})
	require.NoError(t, err)
	assert.True(t, dec("2.5").Equal(resp.StockNuevo))
}

// Replaying the full history must reproduce the final stock: every entry's
// stock_anterior must match the previous entry's stock_nuevo.
func TestLedgerReplay(t *testing.T) {
	movRepo := newFakeMovimientoRepo()
	prodRepo := newFakeProductoRepo()
	svc := service.NewInventarioService(movRepo, prodRepo)
	p := crearProducto(t, prodRepo, "REP-006", false)

	pasos := []struct {
		tipo     string
		cantidad string
	}{
		{model.MovimientoEntrada, "100"},
		{model.MovimientoAjuste, "-5"},
		{model.MovimientoEntrada, "20"},
		{model.MovimientoAjuste, "3"},
	}
	for _, paso := range pasos {
		_, err := svc.RegistrarMovimiento(context.Background(), "admin", dto.MovimientoInventarioRequest{
			ProductoID: p.ID.String(), Tipo: paso.tipo, Cantidad: dec(paso.cantidad),
		})
		require.NoError(t, err)
	}
	_, err := svc.RegistrarSalidaTx(nil, p, dec("30"), "cajero1", "Venta V-REP")
	require.NoError(t, err)

	historial, err := movRepo.Historial(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, historial, 5)

	replay := decimal.Zero
	for i, m := range historial {
		assert.True(t, replay.Equal(m.StockAnterior), "entrada %d: anterior %s, replay %s", i, m.StockAnterior, replay)
		replay = m.StockNuevo
	}

	stock, err := svc.StockActual(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, replay.Equal(stock))
	assert.True(t, dec("88").Equal(stock))
}
