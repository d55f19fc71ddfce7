package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/apierror"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/dto"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/middleware"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CuentaHandler struct{ svc service.CuentaService }

func NewCuentaHandler(svc service.CuentaService) *CuentaHandler { return &CuentaHandler{svc: svc} }

func (h *CuentaHandler) Crear(c *gin.Context) {
	var req dto.CrearCuentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CuentaHandler) RegistrarPago(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.PagoCuentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.RegistrarPago(c.Request.Context(), claims.Username, id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BarridoVencidas runs the overdue sweep on demand. The scheduled worker runs
// the same operation in the background.
func (h *CuentaHandler) BarridoVencidas(c *gin.Context) {
	n, err := h.svc.MarcarVencidas(c.Request.Context(), time.Now())
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BarridoVencidasResponse{CuentasVencidas: n})
}

func (h *CuentaHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CuentaHandler) Listar(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter := dto.CuentaFilter{
		ClienteID: c.Query("cliente_id"),
		Estado:    c.Query("estado"),
		Page:      page,
		Limit:     limit,
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
