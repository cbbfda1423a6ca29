package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"festivales/internal/model"
	"festivales/internal/repository"
	"festivales/internal/service"
)

// InscripcionHandler serves registrations and their line items.
type InscripcionHandler struct {
	inscripciones service.InscripcionService
	detalles      service.DetalleService
}

func NewInscripcionHandler(inscripciones service.InscripcionService, detalles service.DetalleService) *InscripcionHandler {
	return &InscripcionHandler{inscripciones: inscripciones, detalles: detalles}
}

type InscripcionRequest struct {
	IDUsuario        string                  `json:"id_usuario" validate:"required,objectid"`
	FechaInscripcion time.Time               `json:"fecha_inscripcion"`
	Total            decimal.Decimal         `json:"total"`
	Moneda           model.Moneda            `json:"moneda" validate:"omitempty,oneof=PEN USD"`
	Estado           model.InscripcionEstado `json:"estado"`
}

type UpdateInscripcionRequest struct {
	FechaInscripcion *time.Time               `json:"fecha_inscripcion"`
	Total            *decimal.Decimal         `json:"total"`
	Moneda           *model.Moneda            `json:"moneda" validate:"omitempty,oneof=PEN USD"`
	Estado           *model.InscripcionEstado `json:"estado"`
}

// DetalleRequest creates a line item. At least one of id_taller and
// id_bloque is required; seats are taken from the bloque when both are set.
type DetalleRequest struct {
	IDInscripcion     string              `json:"id_inscripcion" validate:"required"`
	IDTaller          *string             `json:"id_taller"`
	IDBloque          *string             `json:"id_bloque"`
	Cantidad          int                 `json:"cantidad" validate:"omitempty,min=1"`
	PrecioUnitario    decimal.Decimal     `json:"precio_unitario"`
	PrecioTotal       decimal.Decimal     `json:"precio_total"`
	IdentificadorPago string              `json:"identificador_pago"`
	Observaciones     string              `json:"observaciones"`
	Estado            model.DetalleEstado `json:"estado"`
}

type UpdateDetalleRequest struct {
	PrecioUnitario    *decimal.Decimal     `json:"precio_unitario"`
	PrecioTotal       *decimal.Decimal     `json:"precio_total"`
	IdentificadorPago *string              `json:"identificador_pago"`
	Observaciones     *string              `json:"observaciones"`
	Estado            *model.DetalleEstado `json:"estado"`
}

// CreateInscripcion godoc
// @Summary Create registration
// @Tags inscripciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body InscripcionRequest true "Registration"
// @Success 201 {object} model.Inscripcion
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /inscripciones [post]
func (h *InscripcionHandler) CreateInscripcion(c echo.Context) error {
	var req InscripcionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.inscripciones.Create(c.Request().Context(), &model.Inscripcion{
		IDUsuario:        req.IDUsuario,
		FechaInscripcion: req.FechaInscripcion,
		Total:            req.Total,
		Moneda:           req.Moneda,
		Estado:           req.Estado,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListInscripciones godoc
// @Summary List registrations
// @Tags inscripciones
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Inscripcion
// @Router /inscripciones [get]
func (h *InscripcionHandler) ListInscripciones(c echo.Context) error {
	return h.listInscripciones(c, repository.InscripcionFilter{})
}

// ListInscripcionesByUsuario godoc
// @Summary List registrations of a user
// @Tags inscripciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {array} model.Inscripcion
// @Failure 400 {object} errors.ErrorResponse
// @Router /inscripciones/usuario/{id} [get]
func (h *InscripcionHandler) ListInscripcionesByUsuario(c echo.Context) error {
	return h.listInscripciones(c, repository.InscripcionFilter{IDUsuario: c.Param("id")})
}

func (h *InscripcionHandler) listInscripciones(c echo.Context, f repository.InscripcionFilter) error {
	inscripciones, err := h.inscripciones.List(c.Request().Context(), f)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, inscripciones)
}

// ListInscripcionesByEstado godoc
// @Summary List registrations in a state
// @Tags inscripciones
// @Produce json
// @Security BearerAuth
// @Param estado path string true "pendiente, pagado, cancelado or completado"
// @Success 200 {array} model.Inscripcion
// @Failure 400 {object} errors.ErrorResponse
// @Router /inscripciones/estado/{estado} [get]
func (h *InscripcionHandler) ListInscripcionesByEstado(c echo.Context) error {
	inscripciones, err := h.inscripciones.ListByEstado(c.Request().Context(), c.Param("estado"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, inscripciones)
}

// EstadisticasInscripciones godoc
// @Summary Registration statistics
// @Tags inscripciones
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.InscripcionStats
// @Failure 403 {object} errors.ErrorResponse
// @Router /inscripciones/estadisticas [get]
func (h *InscripcionHandler) EstadisticasInscripciones(c echo.Context) error {
	stats, err := h.inscripciones.Stats(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GetInscripcion godoc
// @Summary Get registration by id
// @Tags inscripciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Success 200 {object} model.Inscripcion
// @Failure 404 {object} errors.ErrorResponse
// @Router /inscripciones/{id} [get]
func (h *InscripcionHandler) GetInscripcion(c echo.Context) error {
	inscripcion, err := h.inscripciones.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, inscripcion)
}

// UpdateInscripcion godoc
// @Summary Update registration
// @Tags inscripciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Param request body UpdateInscripcionRequest true "Fields to change"
// @Success 200 {object} model.Inscripcion
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /inscripciones/{id} [patch]
func (h *InscripcionHandler) UpdateInscripcion(c echo.Context) error {
	var req UpdateInscripcionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	inscripcion, err := h.inscripciones.Update(c.Request().Context(), c.Param("id"), service.InscripcionPatch{
		FechaInscripcion: req.FechaInscripcion,
		Total:            req.Total,
		Moneda:           req.Moneda,
		Estado:           req.Estado,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, inscripcion)
}

// CambiarEstadoInscripcion godoc
// @Summary Change registration state
// @Tags inscripciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Param request body EstadoRequest true "New state"
// @Success 200 {object} model.Inscripcion
// @Failure 400 {object} errors.ErrorResponse
// @Router /inscripciones/{id}/estado [patch]
func (h *InscripcionHandler) CambiarEstadoInscripcion(c echo.Context) error {
	estado, err := bindEstado(c)
	if err != nil {
		return err
	}
	inscripcion, err := h.inscripciones.CambiarEstado(c.Request().Context(), c.Param("id"), estado)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, inscripcion)
}

// DeleteInscripcion godoc
// @Summary Delete registration
// @Description Line items of the registration are kept.
// @Tags inscripciones
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /inscripciones/{id} [delete]
func (h *InscripcionHandler) DeleteInscripcion(c echo.Context) error {
	if err := h.inscripciones.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(err)
	}
	return noContent(c)
}

// CreateDetalle godoc
// @Summary Create line item
// @Description Reserves cantidad seats on the bloque, or on the taller when no bloque is given.
// @Tags detalles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DetalleRequest true "Line item"
// @Success 201 {object} model.DetalleInscripcion
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /detalles [post]
func (h *InscripcionHandler) CreateDetalle(c echo.Context) error {
	var req DetalleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.detalles.Create(c.Request().Context(), &model.DetalleInscripcion{
		IDInscripcion:     req.IDInscripcion,
		IDTaller:          req.IDTaller,
		IDBloque:          req.IDBloque,
		Cantidad:          req.Cantidad,
		PrecioUnitario:    req.PrecioUnitario,
		PrecioTotal:       req.PrecioTotal,
		IdentificadorPago: req.IdentificadorPago,
		Observaciones:     req.Observaciones,
		Estado:            req.Estado,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListDetalles godoc
// @Summary List line items
// @Tags detalles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.DetalleInscripcion
// @Router /detalles [get]
func (h *InscripcionHandler) ListDetalles(c echo.Context) error {
	return h.listDetalles(c, repository.DetalleFilter{})
}

// ListDetallesByInscripcion godoc
// @Summary List line items of a registration
// @Tags detalles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Success 200 {array} model.DetalleInscripcion
// @Failure 400 {object} errors.ErrorResponse
// @Router /detalles/inscripcion/{id} [get]
func (h *InscripcionHandler) ListDetallesByInscripcion(c echo.Context) error {
	return h.listDetalles(c, repository.DetalleFilter{IDInscripcion: c.Param("id")})
}

// ListDetallesByTaller godoc
// @Summary List line items of a workshop
// @Tags detalles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workshop ID"
// @Success 200 {array} model.DetalleInscripcion
// @Failure 400 {object} errors.ErrorResponse
// @Router /detalles/taller/{id} [get]
func (h *InscripcionHandler) ListDetallesByTaller(c echo.Context) error {
	return h.listDetalles(c, repository.DetalleFilter{IDTaller: c.Param("id")})
}

// ListDetallesByBloque godoc
// @Summary List line items of a block
// @Tags detalles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Block ID"
// @Success 200 {array} model.DetalleInscripcion
// @Failure 400 {object} errors.ErrorResponse
// @Router /detalles/bloque/{id} [get]
func (h *InscripcionHandler) ListDetallesByBloque(c echo.Context) error {
	return h.listDetalles(c, repository.DetalleFilter{IDBloque: c.Param("id")})
}

func (h *InscripcionHandler) listDetalles(c echo.Context, f repository.DetalleFilter) error {
	detalles, err := h.detalles.List(c.Request().Context(), f)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, detalles)
}

// EstadisticasTaller godoc
// @Summary Line item statistics of a workshop
// @Tags detalles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workshop ID"
// @Success 200 {object} model.DetalleStats
// @Failure 400 {object} errors.ErrorResponse
// @Router /detalles/estadisticas/taller/{id} [get]
func (h *InscripcionHandler) EstadisticasTaller(c echo.Context) error {
	stats, err := h.detalles.StatsByTaller(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GetDetalle godoc
// @Summary Get line item by id
// @Tags detalles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Line item ID"
// @Success 200 {object} model.DetalleInscripcion
// @Failure 404 {object} errors.ErrorResponse
// @Router /detalles/{id} [get]
func (h *InscripcionHandler) GetDetalle(c echo.Context) error {
	detalle, err := h.detalles.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, detalle)
}

// UpdateDetalle godoc
// @Summary Update line item
// @Description References and cantidad cannot change.
// @Tags detalles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Line item ID"
// @Param request body UpdateDetalleRequest true "Fields to change"
// @Success 200 {object} model.DetalleInscripcion
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /detalles/{id} [patch]
func (h *InscripcionHandler) UpdateDetalle(c echo.Context) error {
	var req UpdateDetalleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	detalle, err := h.detalles.Update(c.Request().Context(), c.Param("id"), service.DetallePatch{
		PrecioUnitario:    req.PrecioUnitario,
		PrecioTotal:       req.PrecioTotal,
		IdentificadorPago: req.IdentificadorPago,
		Observaciones:     req.Observaciones,
		Estado:            req.Estado,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, detalle)
}

// CambiarEstadoDetalle godoc
// @Summary Change line item state
// @Description Cancelling releases the seats, leaving cancelado reserves them again.
// @Tags detalles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Line item ID"
// @Param request body EstadoRequest true "New state"
// @Success 200 {object} model.DetalleInscripcion
// @Failure 400 {object} errors.ErrorResponse
// @Router /detalles/{id}/estado [patch]
func (h *InscripcionHandler) CambiarEstadoDetalle(c echo.Context) error {
	estado, err := bindEstado(c)
	if err != nil {
		return err
	}
	detalle, err := h.detalles.CambiarEstado(c.Request().Context(), c.Param("id"), estado)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, detalle)
}

// DeleteDetalle godoc
// @Summary Delete line item
// @Description Seats held by the line item are released.
// @Tags detalles
// @Security BearerAuth
// @Param id path string true "Line item ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /detalles/{id} [delete]
func (h *InscripcionHandler) DeleteDetalle(c echo.Context) error {
	if err := h.detalles.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(err)
	}
	return noContent(c)
}
