package handler

import (
	"net/http"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/apierror"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/dto"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/middleware"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

func (h *CajaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CajaHandler) Activa(c *gin.Context) {
	resp, err := h.svc.Activa(c.Request.Context())
	if err != nil {
		respondInternalError(c, err)
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, apierror.New("No hay caja abierta"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CajaHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.MovimientoCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	if err := h.svc.RegistrarMovimiento(c.Request.Context(), claims.Username, req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CajaHandler) Cerrar(c *gin.Context) {
	resp, err := h.svc.Cerrar(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CajaHandler) ListarMovimientos(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	movs, err := h.svc.ListarMovimientos(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": movs})
}
