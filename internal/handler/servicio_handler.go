package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"festivales/internal/model"
	"festivales/internal/repository"
	"festivales/internal/service"
)

// ServicioHandler serves catalog services and festivals.
type ServicioHandler struct {
	servicios  service.ServicioService
	festivales service.FestivalService
}

func NewServicioHandler(servicios service.ServicioService, festivales service.FestivalService) *ServicioHandler {
	return &ServicioHandler{servicios: servicios, festivales: festivales}
}

type ServicioRequest struct {
	Titulo         string       `json:"titulo" validate:"required"`
	Descripcion    string       `json:"descripcion"`
	IDSubcategoria string       `json:"id_subcategoria" validate:"required,objectid"`
	Estado         model.Estado `json:"estado" validate:"omitempty,oneof=activo inactivo"`
	ImagenURL      string       `json:"imagen_url" validate:"omitempty,url"`
}

type UpdateServicioRequest struct {
	Titulo         *string       `json:"titulo"`
	Descripcion    *string       `json:"descripcion"`
	IDSubcategoria *string       `json:"id_subcategoria" validate:"omitempty,objectid"`
	Estado         *model.Estado `json:"estado" validate:"omitempty,oneof=activo inactivo"`
	ImagenURL      *string       `json:"imagen_url"`
}

type FestivalRequest struct {
	Titulo      string       `json:"titulo" validate:"required"`
	Descripcion string       `json:"descripcion"`
	FechaEvento time.Time    `json:"fecha_evento" validate:"required"`
	Lugar       string       `json:"lugar" validate:"required"`
	Organizador string       `json:"organizador" validate:"required"`
	Tipo        string       `json:"tipo" validate:"required"`
	IDCategoria string       `json:"id_categoria" validate:"required,objectid"`
	Estado      model.Estado `json:"estado" validate:"omitempty,oneof=activo inactivo"`
	ImagenURL   string       `json:"imagen_url" validate:"omitempty,url"`
}

type UpdateFestivalRequest struct {
	Titulo      *string       `json:"titulo"`
	Descripcion *string       `json:"descripcion"`
	FechaEvento *time.Time    `json:"fecha_evento"`
	Lugar       *string       `json:"lugar"`
	Organizador *string       `json:"organizador"`
	Tipo        *string       `json:"tipo"`
	IDCategoria *string       `json:"id_categoria" validate:"omitempty,objectid"`
	Estado      *model.Estado `json:"estado" validate:"omitempty,oneof=activo inactivo"`
	ImagenURL   *string       `json:"imagen_url"`
}

// CreateServicio godoc
// @Summary Create service
// @Tags servicios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ServicioRequest true "Service"
// @Success 201 {object} model.Servicio
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /servicios [post]
func (h *ServicioHandler) CreateServicio(c echo.Context) error {
	var req ServicioRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.servicios.Create(c.Request().Context(), &model.Servicio{
		Titulo:         req.Titulo,
		Descripcion:    req.Descripcion,
		IDSubcategoria: req.IDSubcategoria,
		Estado:         req.Estado,
		ImagenURL:      req.ImagenURL,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListServicios godoc
// @Summary List services
// @Tags servicios
// @Produce json
// @Param id_categoria query string false "Category ID"
// @Param id_subcategoria query string false "Subcategory ID"
// @Param estado query string false "activo or inactivo"
// @Success 200 {array} model.Servicio
// @Failure 400 {object} errors.ErrorResponse
// @Router /servicios [get]
func (h *ServicioHandler) ListServicios(c echo.Context) error {
	return h.listServicios(c, repository.ServicioFilter{
		IDCategoria:    c.QueryParam("id_categoria"),
		IDSubcategoria: c.QueryParam("id_subcategoria"),
		Estado:         queryEstado(c),
	})
}

// ListServiciosBySubcategoria godoc
// @Summary List services of a subcategory
// @Tags servicios
// @Produce json
// @Param id path string true "Subcategory ID"
// @Success 200 {array} model.Servicio
// @Router /servicios/subcategoria/{id} [get]
func (h *ServicioHandler) ListServiciosBySubcategoria(c echo.Context) error {
	return h.listServicios(c, repository.ServicioFilter{IDSubcategoria: c.Param("id")})
}

// ListServiciosByCategoria godoc
// @Summary List services of a category
// @Tags servicios
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {array} model.Servicio
// @Router /servicios/categoria/{id} [get]
func (h *ServicioHandler) ListServiciosByCategoria(c echo.Context) error {
	return h.listServicios(c, repository.ServicioFilter{IDCategoria: c.Param("id")})
}

func (h *ServicioHandler) listServicios(c echo.Context, f repository.ServicioFilter) error {
	servicios, err := h.servicios.List(c.Request().Context(), f)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, servicios)
}

// GetServicio godoc
// @Summary Get service by id
// @Tags servicios
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} model.Servicio
// @Failure 404 {object} errors.ErrorResponse
// @Router /servicios/{id} [get]
func (h *ServicioHandler) GetServicio(c echo.Context) error {
	servicio, err := h.servicios.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, servicio)
}

// UpdateServicio godoc
// @Summary Update service
// @Tags servicios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Param request body UpdateServicioRequest true "Fields to change"
// @Success 200 {object} model.Servicio
// @Failure 404 {object} errors.ErrorResponse
// @Router /servicios/{id} [patch]
func (h *ServicioHandler) UpdateServicio(c echo.Context) error {
	var req UpdateServicioRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	servicio, err := h.servicios.Update(c.Request().Context(), c.Param("id"), service.ServicioPatch{
		Titulo:         req.Titulo,
		Descripcion:    req.Descripcion,
		IDSubcategoria: req.IDSubcategoria,
		Estado:         req.Estado,
		ImagenURL:      req.ImagenURL,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, servicio)
}

// CambiarEstadoServicio godoc
// @Summary Change service state
// @Tags servicios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Param request body EstadoRequest true "New state"
// @Success 200 {object} model.Servicio
// @Failure 400 {object} errors.ErrorResponse
// @Router /servicios/{id}/estado [patch]
func (h *ServicioHandler) CambiarEstadoServicio(c echo.Context) error {
	estado, err := bindEstado(c)
	if err != nil {
		return err
	}
	servicio, err := h.servicios.CambiarEstado(c.Request().Context(), c.Param("id"), estado)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, servicio)
}

// DeleteServicio godoc
// @Summary Delete service
// @Tags servicios
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /servicios/{id} [delete]
func (h *ServicioHandler) DeleteServicio(c echo.Context) error {
	if err := h.servicios.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(err)
	}
	return noContent(c)
}

// CreateFestival godoc
// @Summary Create festival
// @Tags festivales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body FestivalRequest true "Festival"
// @Success 201 {object} model.Festival
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /festivales [post]
func (h *ServicioHandler) CreateFestival(c echo.Context) error {
	var req FestivalRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.festivales.Create(c.Request().Context(), &model.Festival{
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		FechaEvento: req.FechaEvento,
		Lugar:       req.Lugar,
		Organizador: req.Organizador,
		Tipo:        req.Tipo,
		IDCategoria: req.IDCategoria,
		Estado:      req.Estado,
		ImagenURL:   req.ImagenURL,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListFestivales godoc
// @Summary List festivals
// @Tags festivales
// @Produce json
// @Success 200 {array} model.Festival
// @Router /festivales [get]
func (h *ServicioHandler) ListFestivales(c echo.Context) error {
	return h.listFestivales(c, repository.FestivalFilter{})
}

// ListFestivalesByCategoria godoc
// @Summary List festivals of a category
// @Tags festivales
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {array} model.Festival
// @Failure 400 {object} errors.ErrorResponse
// @Router /festivales/categoria/{id} [get]
func (h *ServicioHandler) ListFestivalesByCategoria(c echo.Context) error {
	return h.listFestivales(c, repository.FestivalFilter{IDCategoria: c.Param("id")})
}

func (h *ServicioHandler) listFestivales(c echo.Context, f repository.FestivalFilter) error {
	festivales, err := h.festivales.List(c.Request().Context(), f)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, festivales)
}

// ListFestivalesProximos godoc
// @Summary List upcoming festivals
// @Tags festivales
// @Produce json
// @Success 200 {array} model.Festival
// @Router /festivales/proximos [get]
func (h *ServicioHandler) ListFestivalesProximos(c echo.Context) error {
	festivales, err := h.festivales.ListProximos(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, festivales)
}

// ListFestivalesByTipo godoc
// @Summary List active festivals whose tipo contains the given text
// @Tags festivales
// @Produce json
// @Param tipo path string true "Type, matched case-insensitively"
// @Success 200 {array} model.Festival
// @Router /festivales/tipo/{tipo} [get]
func (h *ServicioHandler) ListFestivalesByTipo(c echo.Context) error {
	festivales, err := h.festivales.ListByTipo(c.Request().Context(), c.Param("tipo"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, festivales)
}

// GetFestival godoc
// @Summary Get festival by id
// @Tags festivales
// @Produce json
// @Param id path string true "Festival ID"
// @Success 200 {object} model.Festival
// @Failure 404 {object} errors.ErrorResponse
// @Router /festivales/{id} [get]
func (h *ServicioHandler) GetFestival(c echo.Context) error {
	festival, err := h.festivales.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, festival)
}

// UpdateFestival godoc
// @Summary Update festival
// @Tags festivales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Festival ID"
// @Param request body UpdateFestivalRequest true "Fields to change"
// @Success 200 {object} model.Festival
// @Failure 404 {object} errors.ErrorResponse
// @Router /festivales/{id} [patch]
func (h *ServicioHandler) UpdateFestival(c echo.Context) error {
	var req UpdateFestivalRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	festival, err := h.festivales.Update(c.Request().Context(), c.Param("id"), service.FestivalPatch{
		Titulo:      req.Titulo,
		Descripcion: req.Descripcion,
		FechaEvento: req.FechaEvento,
		Lugar:       req.Lugar,
		Organizador: req.Organizador,
		Tipo:        req.Tipo,
		IDCategoria: req.IDCategoria,
		Estado:      req.Estado,
		ImagenURL:   req.ImagenURL,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, festival)
}

// CambiarEstadoFestival godoc
// @Summary Change festival state
// @Tags festivales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Festival ID"
// @Param request body EstadoRequest true "New state"
// @Success 200 {object} model.Festival
// @Failure 400 {object} errors.ErrorResponse
// @Router /festivales/{id}/estado [patch]
func (h *ServicioHandler) CambiarEstadoFestival(c echo.Context) error {
	estado, err := bindEstado(c)
	if err != nil {
		return err
	}
	festival, err := h.festivales.CambiarEstado(c.Request().Context(), c.Param("id"), estado)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, festival)
}

// DeleteFestival godoc
// @Summary Delete festival
// @Tags festivales
// @Security BearerAuth
// @Param id path string true "Festival ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /festivales/{id} [delete]
func (h *ServicioHandler) DeleteFestival(c echo.Context) error {
	if err := h.festivales.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(err)
	}
	return noContent(c)
}
