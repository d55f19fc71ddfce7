package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/apierror"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/middleware"
	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondServiceError translates domain sentinels to HTTP status codes.
// Anything outside the sentinel set is a storage or programming failure:
// it is logged and answered with a generic 500 so internals never reach
// the client.
func respondServiceError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrCuentaNoEncontrada),
		errors.Is(err, service.ErrNoEncontrado):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrCajaYaAbierta),
		errors.Is(err, service.ErrCajaNoAbierta),
		errors.Is(err, service.ErrCuentaYaPagada):
		status = http.StatusConflict
	case errors.Is(err, service.ErrMontoInvalido),
		errors.Is(err, service.ErrCantidadInvalida),
		errors.Is(err, service.ErrStockInsuficiente),
		errors.Is(err, service.ErrTotalNoCoincide),
		errors.Is(err, service.ErrClienteRequerido),
		errors.Is(err, service.ErrPagoExcedeSaldo),
		errors.Is(err, service.ErrSolicitudInvalida):
		status = http.StatusBadRequest
	default:
		respondInternalError(c, err)
		return
	}
	c.JSON(status, apierror.New(err.Error()))
}

// respondInternalError answers 500 with a fixed message. The real error goes
// to the log together with the request id so it can be traced.
func respondInternalError(c *gin.Context, err error) {
	log.Error().
		Err(err).
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("path", c.Request.URL.Path).
		Msg("error interno")
	c.JSON(http.StatusInternalServerError, apierror.New("error interno del servidor"))
}
