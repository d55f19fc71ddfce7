package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/apierror"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/dto"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const precioCacheTTL = 15 * time.Minute

// ConsultaPreciosHandler serves the public price check endpoint. No
// authentication, no side effects.
type ConsultaPreciosHandler struct {
	svc service.ProductoService
	rdb *redis.Client
}

func NewConsultaPreciosHandler(svc service.ProductoService, rdb *redis.Client) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{svc: svc, rdb: rdb}
}

func (h *ConsultaPreciosHandler) GetPrecioPorCodigo(c *gin.Context) {
	codigo := c.Param("codigo")
	ctx := c.Request.Context()
	cacheKey := "precio:" + codigo

	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ConsultaPrecioResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	resp, err := h.svc.ConsultarPrecio(ctx, codigo)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}

	// Populate cache — best effort, ignore errors. Stale stock here is
	// acceptable: the TTL is short and sales always check the ledger.
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, precioCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
