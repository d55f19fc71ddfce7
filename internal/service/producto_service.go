package service

import (
	"context"
	"fmt"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/dto"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/model"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/repository"

	"github.com/google/uuid"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error)
	ConsultarPrecio(ctx context.Context, codigo string) (*dto.ConsultaPrecioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.ProductoResponse, error)
}

type productoService struct {
	repo       repository.ProductoRepository
	inventario InventarioService
}

func NewProductoService(repo repository.ProductoRepository, inventario InventarioService) ProductoService {
	return &productoService{repo: repo, inventario: inventario}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if existente, err := s.repo.FindByCodigo(ctx, req.Codigo); err == nil && existente != nil {
		return nil, fmt.Errorf("%w: ya existe un producto con codigo %s", ErrSolicitudInvalida, req.Codigo)
	}

	var proveedorID *uuid.UUID
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("%w: proveedor_id mal formado", ErrSolicitudInvalida)
		}
		proveedorID = &pid
	}

	unidad := req.UnidadMedida
	if unidad == "" {
		unidad = "unidad"
	}

	producto := &model.Producto{
		Codigo:           req.Codigo,
		Nombre:           req.Nombre,
		Descripcion:      req.Descripcion,
		Categoria:        req.Categoria,
		PrecioCompra:     req.PrecioCompra,
		PrecioVenta:      req.PrecioVenta,
		VentaFraccionada: req.VentaFraccionada,
		StockMinimo:      req.StockMinimo,
		UnidadMedida:     unidad,
		ProveedorID:      proveedorID,
		Activo:           true,
	}
	if err := s.repo.Create(ctx, producto); err != nil {
		return nil, err
	}
	return s.conStock(ctx, producto)
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "producto")
	}
	return s.conStock(ctx, producto)
}

func (s *productoService) ObtenerPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil {
		return nil, notFound(err, "producto")
	}
	return s.conStock(ctx, producto)
}

func (s *productoService) ConsultarPrecio(ctx context.Context, codigo string) (*dto.ConsultaPrecioResponse, error) {
	producto, err := s.repo.FindByCodigo(ctx, codigo)
	if err != nil || !producto.Activo {
		return nil, fmt.Errorf("producto %w", ErrNoEncontrado)
	}
	stock, err := s.inventario.StockActual(ctx, producto.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ConsultaPrecioResponse{
		Nombre:      producto.Nombre,
		PrecioVenta: producto.PrecioVenta,
		Stock:       stock,
		Categoria:   producto.Categoria,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "producto")
	}
	if req.Nombre != nil {
		producto.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		producto.Descripcion = req.Descripcion
	}
	if req.Categoria != nil {
		producto.Categoria = *req.Categoria
	}
	if req.PrecioCompra != nil {
		producto.PrecioCompra = *req.PrecioCompra
	}
	if req.PrecioVenta != nil {
		producto.PrecioVenta = *req.PrecioVenta
	}
	if req.VentaFraccionada != nil {
		producto.VentaFraccionada = *req.VentaFraccionada
	}
	if req.StockMinimo != nil {
		producto.StockMinimo = *req.StockMinimo
	}
	if err := s.repo.Update(ctx, producto); err != nil {
		return nil, err
	}
	return s.conStock(ctx, producto)
}

func (s *productoService) CambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return s.repo.SetActivo(ctx, id, activo)
}

func (s *productoService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		r, err := s.conStock(ctx, &productos[i])
		if err != nil {
			return nil, err
		}
		resp = append(resp, *r)
	}
	return resp, nil
}

// conStock assembles the response with the ledger-derived stock attached.
func (s *productoService) conStock(ctx context.Context, p *model.Producto) (*dto.ProductoResponse, error) {
	stock, err := s.inventario.StockActual(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &dto.ProductoResponse{
		ID:               p.ID.String(),
		Codigo:           p.Codigo,
		Nombre:           p.Nombre,
		Descripcion:      p.Descripcion,
		Categoria:        p.Categoria,
		PrecioCompra:     p.PrecioCompra,
		PrecioVenta:      p.PrecioVenta,
		VentaFraccionada: p.VentaFraccionada,
		StockMinimo:      p.StockMinimo,
		Stock:            stock,
		UnidadMedida:     p.UnidadMedida,
		Activo:           p.Activo,
	}, nil
}
