package handler

import (
	"net/http"
	"strconv"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/apierror"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/dto"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/middleware"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventarioHandler struct{ svc service.InventarioService }

func NewInventarioHandler(svc service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// RegistrarMovimiento accepts manual entradas and ajustes. Salidas only happen
// through the sale flow.
func (h *InventarioHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.MovimientoInventarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), claims.Username, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InventarioHandler) Stock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	stock, err := h.svc.StockActual(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StockResponse{ProductoID: id.String(), Stock: stock})
}

func (h *InventarioHandler) ListarMovimientos(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	filter := dto.MovimientoFilter{
		ProductoID: c.Query("producto_id"),
		Tipo:       c.Query("tipo"),
		Page:       page,
		Limit:      limit,
	}
	resp, err := h.svc.ListarMovimientos(c.Request.Context(), filter)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
