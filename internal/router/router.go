package router

import (
	"time"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/config"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/handler"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/middleware"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/repository"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services groups the wired service layer so main can hand pieces of it to the
// background workers.
type Services struct {
	Auth       service.AuthService
	Caja       service.CajaService
	Inventario service.InventarioService
	Venta      service.VentaService
	Cuenta     service.CuentaService
	Cliente    service.ClienteService
	Producto   service.ProductoService
	Proveedor  service.ProveedorService
}

// NewServices wires repositories into the service layer.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func NewServices(cfg *config.Config, db *gorm.DB) *Services {
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	movimientoRepo := repository.NewMovimientoRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	cuentaRepo := repository.NewCuentaRepository(db)

	cajaSvc := service.NewCajaService(cajaRepo)
	inventarioSvc := service.NewInventarioService(movimientoRepo, productoRepo)
	cuentaSvc := service.NewCuentaService(cuentaRepo, clienteRepo, ventaRepo, cajaRepo, cajaSvc)
	ventaSvc := service.NewVentaService(ventaRepo, inventarioSvc, cajaSvc, cajaRepo, cuentaRepo, clienteRepo, productoRepo)

	return &Services{
		Auth:       service.NewAuthService(usuarioRepo, cfg),
		Caja:       cajaSvc,
		Inventario: inventarioSvc,
		Venta:      ventaSvc,
		Cuenta:     cuentaSvc,
		Cliente:    service.NewClienteService(clienteRepo),
		Producto:   service.NewProductoService(productoRepo, inventarioSvc),
		Proveedor:  service.NewProveedorService(proveedorRepo),
	}
}

// New builds the Gin engine with all routes and middleware.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, svcs *Services) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	authH := handler.NewAuthHandler(svcs.Auth)
	cajaH := handler.NewCajaHandler(svcs.Caja)
	ventasH := handler.NewVentaHandler(svcs.Venta)
	cuentasH := handler.NewCuentaHandler(svcs.Cuenta)
	inventarioH := handler.NewInventarioHandler(svcs.Inventario)
	clientesH := handler.NewClienteHandler(svcs.Cliente)
	productosH := handler.NewProductoHandler(svcs.Producto)
	proveedoresH := handler.NewProveedorHandler(svcs.Proveedor)
	consultaH := handler.NewConsultaPreciosHandler(svcs.Producto, rdb)

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required
	r.GET("/v1/precio/:codigo", consultaH.GetPrecioPorCodigo)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole("cajero", "administrador")
	admin := middleware.RequireRole("administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		caja := v1.Group("/caja", todos)
		{
			caja.POST("/abrir", cajaH.Abrir)
			caja.POST("/cerrar", cajaH.Cerrar)
			caja.POST("/movimientos", cajaH.RegistrarMovimiento)
			caja.GET("/activa", cajaH.Activa)
			caja.GET("/:id/movimientos", cajaH.ListarMovimientos)
		}

		v1.POST("/ventas", todos, ventasH.Procesar)
		v1.GET("/ventas", todos, ventasH.Listar)
		v1.GET("/ventas/:id", todos, ventasH.Obtener)

		cuentas := v1.Group("/cuentas", todos)
		{
			cuentas.POST("", cuentasH.Crear)
			cuentas.GET("", cuentasH.Listar)
			cuentas.GET("/:id", cuentasH.Obtener)
			cuentas.POST("/:id/pagos", cuentasH.RegistrarPago)
		}
		v1.POST("/cuentas/barrido-vencidas", admin, cuentasH.BarridoVencidas)

		inv := v1.Group("/inventario", todos)
		{
			inv.POST("/movimientos", inventarioH.RegistrarMovimiento)
			inv.GET("/movimientos", inventarioH.ListarMovimientos)
			inv.GET("/stock/:id", inventarioH.Stock)
		}

		v1.GET("/productos", todos, productosH.Listar)
		v1.GET("/productos/:id", todos, productosH.Obtener)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		clientes := v1.Group("/clientes", todos)
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.Obtener)
			clientes.PUT("/:id", clientesH.Actualizar)
		}

		prov := v1.Group("/proveedores", admin)
		{
			prov.POST("", proveedoresH.Crear)
			prov.GET("", proveedoresH.Listar)
			prov.GET("/:id", proveedoresH.Obtener)
			prov.PUT("/:id", proveedoresH.Actualizar)
		}

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
		}
	}

	return r
}
