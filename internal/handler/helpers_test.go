package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func respuestaPara(t *testing.T, err error) (int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/v1/ventas", nil)
	respondServiceError(c, err)
	return w.Code, w.Body.String()
}

func TestRespondServiceErrorMapeaSentinelas(t *testing.T) {
	casos := []struct {
		err    error
		status int
	}{
		{service.ErrCajaNoAbierta, http.StatusConflict},
		{service.ErrCajaYaAbierta, http.StatusConflict},
		{service.ErrCuentaYaPagada, http.StatusConflict},
		{service.ErrCuentaNoEncontrada, http.StatusNotFound},
		{service.ErrNoEncontrado, http.StatusNotFound},
		{service.ErrMontoInvalido, http.StatusBadRequest},
		{service.ErrCantidadInvalida, http.StatusBadRequest},
		{service.ErrStockInsuficiente, http.StatusBadRequest},
		{service.ErrTotalNoCoincide, http.StatusBadRequest},
		{service.ErrClienteRequerido, http.StatusBadRequest},
		{service.ErrPagoExcedeSaldo, http.StatusBadRequest},
		{service.ErrSolicitudInvalida, http.StatusBadRequest},
	}
	for _, tc := range casos {
		status, body := respuestaPara(t, tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Contains(t, body, tc.err.Error())
	}
}

func TestRespondServiceErrorEnvueltoConservaStatus(t *testing.T) {
	err := errors.New("venta " + service.ErrNoEncontrado.Error())
	status, _ := respuestaPara(t, errors.Join(service.ErrNoEncontrado, err))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRespondServiceErrorOcultaFallasDeAlmacenamiento(t *testing.T) {
	status, body := respuestaPara(t, errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotContains(t, body, "SQLSTATE")
	assert.NotContains(t, body, "deadlock")
	assert.Contains(t, body, "error interno del servidor")

	status, body = respuestaPara(t, gorm.ErrInvalidTransaction)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body, "error interno del servidor")
}
