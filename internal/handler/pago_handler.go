package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"festivales/internal/model"
	"festivales/internal/repository"
	"festivales/internal/service"
)

// PagoHandler serves payments and the audit trail.
type PagoHandler struct {
	pagos     service.PagoService
	historial service.HistorialService
}

func NewPagoHandler(pagos service.PagoService, historial service.HistorialService) *PagoHandler {
	return &PagoHandler{pagos: pagos, historial: historial}
}

type PagoRequest struct {
	IDDetalle      string           `json:"id_detalle" validate:"required,objectid"`
	IDUsuarioPago  string           `json:"id_usuario_pago" validate:"required,objectid"`
	Moneda         model.Moneda     `json:"moneda" validate:"omitempty,oneof=PEN USD"`
	MetodoPago     string           `json:"metodo_pago" validate:"required"`
	TransactionID  string           `json:"transaction_id"`
	FechaPago      time.Time        `json:"fecha_pago"`
	ComprobanteURL string           `json:"comprobante_url" validate:"omitempty,url"`
	Estado         model.PagoEstado `json:"estado"`
}

type UpdatePagoRequest struct {
	Moneda         *model.Moneda     `json:"moneda" validate:"omitempty,oneof=PEN USD"`
	MetodoPago     *string           `json:"metodo_pago"`
	TransactionID  *string           `json:"transaction_id"`
	FechaPago      *time.Time        `json:"fecha_pago"`
	ComprobanteURL *string           `json:"comprobante_url"`
	Estado         *model.PagoEstado `json:"estado"`
}

// CreatePago godoc
// @Summary Register payment
// @Tags pagos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PagoRequest true "Payment"
// @Success 201 {object} model.Pago
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /pagos [post]
func (h *PagoHandler) CreatePago(c echo.Context) error {
	var req PagoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.pagos.Create(c.Request().Context(), &model.Pago{
		IDDetalle:      req.IDDetalle,
		IDUsuarioPago:  req.IDUsuarioPago,
		Moneda:         req.Moneda,
		MetodoPago:     req.MetodoPago,
		TransactionID:  req.TransactionID,
		FechaPago:      req.FechaPago,
		ComprobanteURL: req.ComprobanteURL,
		Estado:         req.Estado,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListPagos godoc
// @Summary List payments
// @Tags pagos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Pago
// @Router /pagos [get]
func (h *PagoHandler) ListPagos(c echo.Context) error {
	return h.listPagos(c, repository.PagoFilter{})
}

// ListPagosByUsuario godoc
// @Summary List payments made by a user
// @Tags pagos
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {array} model.Pago
// @Failure 400 {object} errors.ErrorResponse
// @Router /pagos/usuario/{id} [get]
func (h *PagoHandler) ListPagosByUsuario(c echo.Context) error {
	return h.listPagos(c, repository.PagoFilter{IDUsuario: c.Param("id")})
}

// ListPagosByDetalle godoc
// @Summary List payments of a line item
// @Tags pagos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Line item ID"
// @Success 200 {array} model.Pago
// @Failure 400 {object} errors.ErrorResponse
// @Router /pagos/detalle/{id} [get]
func (h *PagoHandler) ListPagosByDetalle(c echo.Context) error {
	return h.listPagos(c, repository.PagoFilter{IDDetalle: c.Param("id")})
}

func (h *PagoHandler) listPagos(c echo.Context, f repository.PagoFilter) error {
	pagos, err := h.pagos.List(c.Request().Context(), f)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, pagos)
}

// EstadisticasPagos godoc
// @Summary Payment statistics
// @Tags pagos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.PagoStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /pagos/estadisticas [get]
func (h *PagoHandler) EstadisticasPagos(c echo.Context) error {
	stats, err := h.pagos.Stats(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GetPago godoc
// @Summary Get payment by id
// @Tags pagos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} model.Pago
// @Failure 404 {object} errors.ErrorResponse
// @Router /pagos/{id} [get]
func (h *PagoHandler) GetPago(c echo.Context) error {
	pago, err := h.pagos.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, pago)
}

// UpdatePago godoc
// @Summary Update payment
// @Tags pagos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param request body UpdatePagoRequest true "Fields to change"
// @Success 200 {object} model.Pago
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /pagos/{id} [patch]
func (h *PagoHandler) UpdatePago(c echo.Context) error {
	var req UpdatePagoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	pago, err := h.pagos.Update(c.Request().Context(), c.Param("id"), service.PagoPatch{
		Moneda:         req.Moneda,
		MetodoPago:     req.MetodoPago,
		TransactionID:  req.TransactionID,
		FechaPago:      req.FechaPago,
		ComprobanteURL: req.ComprobanteURL,
		Estado:         req.Estado,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, pago)
}

// CambiarEstadoPago godoc
// @Summary Change payment state
// @Tags pagos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param request body EstadoRequest true "New state"
// @Success 200 {object} model.Pago
// @Failure 400 {object} errors.ErrorResponse
// @Router /pagos/{id}/estado [patch]
func (h *PagoHandler) CambiarEstadoPago(c echo.Context) error {
	estado, err := bindEstado(c)
	if err != nil {
		return err
	}
	pago, err := h.pagos.CambiarEstado(c.Request().Context(), c.Param("id"), estado)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, pago)
}

// DeletePago godoc
// @Summary Delete payment
// @Tags pagos
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /pagos/{id} [delete]
func (h *PagoHandler) DeletePago(c echo.Context) error {
	if err := h.pagos.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(err)
	}
	return noContent(c)
}

// HistorialByUsuario godoc
// @Summary Audit entries recorded for an actor
// @Tags historial
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {array} model.Historial
// @Failure 400 {object} errors.ErrorResponse
// @Router /historial/usuario/{id} [get]
func (h *PagoHandler) HistorialByUsuario(c echo.Context) error {
	entries, err := h.historial.ListByUsuario(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, entries)
}

// HistorialByDetalle godoc
// @Summary Audit entries of a line item
// @Tags historial
// @Produce json
// @Security BearerAuth
// @Param id path string true "Line item ID"
// @Success 200 {array} model.Historial
// @Failure 400 {object} errors.ErrorResponse
// @Router /historial/detalle/{id} [get]
func (h *PagoHandler) HistorialByDetalle(c echo.Context) error {
	entries, err := h.historial.ListByDetalle(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, entries)
}
