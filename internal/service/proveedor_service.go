package service

import (
	"context"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/dto"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/model"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/repository"

	"github.com/google/uuid"
)

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.ProveedorResponse, error)
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	proveedor := &model.Proveedor{
		Nombre:   req.Nombre,
		Contacto: req.Contacto,
		Telefono: req.Telefono,
		Email:    req.Email,
		Activo:   true,
	}
	if err := s.repo.Create(ctx, proveedor); err != nil {
		return nil, err
	}
	return proveedorToResponse(proveedor), nil
}

func (s *proveedorService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	proveedor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "proveedor")
	}
	return proveedorToResponse(proveedor), nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProveedorRequest) (*dto.ProveedorResponse, error) {
	proveedor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "proveedor")
	}
	if req.Nombre != nil {
		proveedor.Nombre = *req.Nombre
	}
	if req.Contacto != nil {
		proveedor.Contacto = req.Contacto
	}
	if req.Telefono != nil {
		proveedor.Telefono = req.Telefono
	}
	if req.Email != nil {
		proveedor.Email = req.Email
	}
	if req.Activo != nil {
		proveedor.Activo = *req.Activo
	}
	if err := s.repo.Update(ctx, proveedor); err != nil {
		return nil, err
	}
	return proveedorToResponse(proveedor), nil
}

func (s *proveedorService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProveedorResponse, len(proveedores))
	for i := range proveedores {
		resp[i] = *proveedorToResponse(&proveedores[i])
	}
	return resp, nil
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:       p.ID.String(),
		Nombre:   p.Nombre,
		Contacto: p.Contacto,
		Telefono: p.Telefono,
		Email:    p.Email,
		Activo:   p.Activo,
	}
}
