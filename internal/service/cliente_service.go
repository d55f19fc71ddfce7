package service

import (
	"context"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/dto"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/model"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.ClienteResponse, error)
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	cliente := &model.Cliente{
		Nombre:    req.Nombre,
		Documento: req.Documento,
		Telefono:  req.Telefono,
		Email:     req.Email,
		Direccion: req.Direccion,
		Activo:    true,
	}
	if err := s.repo.Create(ctx, cliente); err != nil {
		return nil, err
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "cliente")
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "cliente")
	}
	if req.Nombre != nil {
		cliente.Nombre = *req.Nombre
	}
	if req.Telefono != nil {
		cliente.Telefono = req.Telefono
	}
	if req.Email != nil {
		cliente.Email = req.Email
	}
	if req.Direccion != nil {
		cliente.Direccion = req.Direccion
	}
	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClienteResponse, len(clientes))
	for i := range clientes {
		resp[i] = *clienteToResponse(&clientes[i])
	}
	return resp, nil
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:             c.ID.String(),
		Nombre:         c.Nombre,
		Documento:      c.Documento,
		Telefono:       c.Telefono,
		Email:          c.Email,
		Direccion:      c.Direccion,
		SaldoPendiente: c.SaldoPendiente,
		TotalCompras:   c.TotalCompras,
		Activo:         c.Activo,
	}
}
