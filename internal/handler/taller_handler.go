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

// TallerHandler serves workshops, their blocks and their seats.
type TallerHandler struct {
	talleres service.TallerService
	bloques  service.BloqueService
}

func NewTallerHandler(talleres service.TallerService, bloques service.BloqueService) *TallerHandler {
	return &TallerHandler{talleres: talleres, bloques: bloques}
}

type TallerRequest struct {
	Nombre         string          `json:"nombre" validate:"required"`
	Descripcion    string          `json:"descripcion"`
	FechaInicio    time.Time       `json:"fecha_inicio" validate:"required"`
	FechaFin       time.Time       `json:"fecha_fin" validate:"required"`
	Horario        string          `json:"horario" validate:"required"`
	Modalidad      model.Modalidad `json:"modalidad" validate:"required,oneof=presencial virtual hibrido"`
	Duracion       int             `json:"duracion" validate:"required,min=1"`
	Precio         decimal.Decimal `json:"precio"`
	CupoTotal      int             `json:"cupo_total" validate:"required,min=1"`
	IDSubcategoria string          `json:"id_subcategoria" validate:"required,objectid"`
	Estado         model.Estado    `json:"estado" validate:"omitempty,oneof=activo inactivo"`
	ImagenURL      string          `json:"imagen_url" validate:"omitempty,url"`
}

type UpdateTallerRequest struct {
	Nombre         *string          `json:"nombre"`
	Descripcion    *string          `json:"descripcion"`
	FechaInicio    *time.Time       `json:"fecha_inicio"`
	FechaFin       *time.Time       `json:"fecha_fin"`
	Horario        *string          `json:"horario"`
	Modalidad      *model.Modalidad `json:"modalidad" validate:"omitempty,oneof=presencial virtual hibrido"`
	Duracion       *int             `json:"duracion" validate:"omitempty,min=1"`
	Precio         *decimal.Decimal `json:"precio"`
	CupoTotal      *int             `json:"cupo_total" validate:"omitempty,min=1"`
	IDSubcategoria *string          `json:"id_subcategoria" validate:"omitempty,objectid"`
	Estado         *model.Estado    `json:"estado" validate:"omitempty,oneof=activo inactivo"`
	ImagenURL      *string          `json:"imagen_url"`
}

// ReservarCupoRequest reserves seats.
type ReservarCupoRequest struct {
	CuposReservados int `json:"cupos_reservados" validate:"required,min=1"`
}

// LiberarCupoRequest returns seats.
type LiberarCupoRequest struct {
	Cupos int `json:"cupos" validate:"required,min=1"`
}

type BloqueRequest struct {
	Nombre      string       `json:"nombre" validate:"required"`
	Descripcion string       `json:"descripcion"`
	FechaInicio time.Time    `json:"fecha_inicio" validate:"required"`
	FechaFin    time.Time    `json:"fecha_fin" validate:"required"`
	Horario     string       `json:"horario" validate:"required"`
	IDTaller    string       `json:"id_taller" validate:"required,objectid"`
	CupoTotal   int          `json:"cupo_total" validate:"required,min=1"`
	Estado      model.Estado `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

type UpdateBloqueRequest struct {
	Nombre      *string       `json:"nombre"`
	Descripcion *string       `json:"descripcion"`
	FechaInicio *time.Time    `json:"fecha_inicio"`
	FechaFin    *time.Time    `json:"fecha_fin"`
	Horario     *string       `json:"horario"`
	IDTaller    *string       `json:"id_taller" validate:"omitempty,objectid"`
	CupoTotal   *int          `json:"cupo_total" validate:"omitempty,min=1"`
	Estado      *model.Estado `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// CreateTaller godoc
// @Summary Create workshop
// @Description Available seats start equal to cupo_total.
// @Tags talleres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TallerRequest true "Workshop"
// @Success 201 {object} model.Taller
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /talleres [post]
func (h *TallerHandler) CreateTaller(c echo.Context) error {
	var req TallerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.talleres.Create(c.Request().Context(), &model.Taller{
		Nombre:         req.Nombre,
		Descripcion:    req.Descripcion,
		FechaInicio:    req.FechaInicio,
		FechaFin:       req.FechaFin,
		Horario:        req.Horario,
		Modalidad:      req.Modalidad,
		Duracion:       req.Duracion,
		Precio:         req.Precio,
		CupoTotal:      req.CupoTotal,
		IDSubcategoria: req.IDSubcategoria,
		Estado:         req.Estado,
		ImagenURL:      req.ImagenURL,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListTalleres godoc
// @Summary List workshops
// @Tags talleres
// @Produce json
// @Param id_categoria query string false "Category ID"
// @Param id_subcategoria query string false "Subcategory ID"
// @Param estado query string false "activo or inactivo"
// @Param fecha_desde query string false "Starts on or after"
// @Param fecha_hasta query string false "Starts on or before"
// @Success 200 {array} model.Taller
// @Failure 400 {object} errors.ErrorResponse
// @Router /talleres [get]
func (h *TallerHandler) ListTalleres(c echo.Context) error {
	desde, err := queryDate(c, "fecha_desde")
	if err != nil {
		return err
	}
	hasta, err := queryDate(c, "fecha_hasta")
	if err != nil {
		return err
	}
	return h.listTalleres(c, repository.TallerFilter{
		IDCategoria:    c.QueryParam("id_categoria"),
		IDSubcategoria: c.QueryParam("id_subcategoria"),
		Estado:         queryEstado(c),
		InicioDesde:    desde,
		InicioHasta:    hasta,
	})
}

// ListTalleresBySubcategoria godoc
// @Summary List workshops of a subcategory
// @Tags talleres
// @Produce json
// @Param id path string true "Subcategory ID"
// @Success 200 {array} model.Taller
// @Failure 400 {object} errors.ErrorResponse
// @Router /talleres/subcategoria/{id} [get]
func (h *TallerHandler) ListTalleresBySubcategoria(c echo.Context) error {
	return h.listTalleres(c, repository.TallerFilter{IDSubcategoria: c.Param("id")})
}

func (h *TallerHandler) listTalleres(c echo.Context, f repository.TallerFilter) error {
	talleres, err := h.talleres.List(c.Request().Context(), f)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, talleres)
}

// ListTalleresActivos godoc
// @Summary List active upcoming workshops
// @Tags talleres
// @Produce json
// @Success 200 {array} model.Taller
// @Router /talleres/activos [get]
func (h *TallerHandler) ListTalleresActivos(c echo.Context) error {
	talleres, err := h.talleres.ListActivos(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, talleres)
}

// ListTalleresProximos godoc
// @Summary List workshops starting within a week that still have seats
// @Tags talleres
// @Produce json
// @Success 200 {array} model.Taller
// @Router /talleres/proximos [get]
func (h *TallerHandler) ListTalleresProximos(c echo.Context) error {
	talleres, err := h.talleres.ListProximos(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, talleres)
}

// GetTaller godoc
// @Summary Get workshop by id
// @Tags talleres
// @Produce json
// @Param id path string true "Workshop ID"
// @Success 200 {object} model.Taller
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /talleres/{id} [get]
func (h *TallerHandler) GetTaller(c echo.Context) error {
	taller, err := h.talleres.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, taller)
}

// UpdateTaller godoc
// @Summary Update workshop
// @Description A new cupo_total keeps the seats already taken.
// @Tags talleres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workshop ID"
// @Param request body UpdateTallerRequest true "Fields to change"
// @Success 200 {object} model.Taller
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /talleres/{id} [patch]
func (h *TallerHandler) UpdateTaller(c echo.Context) error {
	var req UpdateTallerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	taller, err := h.talleres.Update(c.Request().Context(), c.Param("id"), service.TallerPatch{
		Nombre:         req.Nombre,
		Descripcion:    req.Descripcion,
		FechaInicio:    req.FechaInicio,
		FechaFin:       req.FechaFin,
		Horario:        req.Horario,
		Modalidad:      req.Modalidad,
		Duracion:       req.Duracion,
		Precio:         req.Precio,
		CupoTotal:      req.CupoTotal,
		IDSubcategoria: req.IDSubcategoria,
		Estado:         req.Estado,
		ImagenURL:      req.ImagenURL,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, taller)
}

// CambiarEstadoTaller godoc
// @Summary Change workshop state
// @Tags talleres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workshop ID"
// @Param request body EstadoRequest true "New state"
// @Success 200 {object} model.Taller
// @Failure 400 {object} errors.ErrorResponse
// @Router /talleres/{id}/estado [patch]
func (h *TallerHandler) CambiarEstadoTaller(c echo.Context) error {
	estado, err := bindEstado(c)
	if err != nil {
		return err
	}
	taller, err := h.talleres.CambiarEstado(c.Request().Context(), c.Param("id"), estado)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, taller)
}

// ReservarCupoTaller godoc
// @Summary Reserve workshop seats
// @Tags talleres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workshop ID"
// @Param request body ReservarCupoRequest true "Seats"
// @Success 200 {object} model.Taller
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /talleres/{id}/cupo [patch]
func (h *TallerHandler) ReservarCupoTaller(c echo.Context) error {
	var req ReservarCupoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	taller, err := h.talleres.ReservarCupo(c.Request().Context(), c.Param("id"), req.CuposReservados)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, taller)
}

// LiberarCupoTaller godoc
// @Summary Release workshop seats
// @Tags talleres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workshop ID"
// @Param request body LiberarCupoRequest true "Seats"
// @Success 200 {object} model.Taller
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /talleres/{id}/cupo/liberar [post]
func (h *TallerHandler) LiberarCupoTaller(c echo.Context) error {
	var req LiberarCupoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	taller, err := h.talleres.LiberarCupo(c.Request().Context(), c.Param("id"), req.Cupos)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, taller)
}

// DeleteTaller godoc
// @Summary Delete workshop
// @Tags talleres
// @Security BearerAuth
// @Param id path string true "Workshop ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /talleres/{id} [delete]
func (h *TallerHandler) DeleteTaller(c echo.Context) error {
	if err := h.talleres.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(err)
	}
	return noContent(c)
}

// CreateBloque godoc
// @Summary Create block
// @Tags bloques
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BloqueRequest true "Block"
// @Success 201 {object} model.Bloque
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bloques [post]
func (h *TallerHandler) CreateBloque(c echo.Context) error {
	var req BloqueRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.bloques.Create(c.Request().Context(), &model.Bloque{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		FechaInicio: req.FechaInicio,
		FechaFin:    req.FechaFin,
		Horario:     req.Horario,
		IDTaller:    req.IDTaller,
		CupoTotal:   req.CupoTotal,
		Estado:      req.Estado,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListBloques godoc
// @Summary List blocks
// @Tags bloques
// @Produce json
// @Success 200 {array} model.Bloque
// @Router /bloques [get]
func (h *TallerHandler) ListBloques(c echo.Context) error {
	return h.listBloques(c, "")
}

// ListBloquesByTaller godoc
// @Summary List blocks of a workshop
// @Tags bloques
// @Produce json
// @Param idTaller path string true "Workshop ID"
// @Success 200 {array} model.Bloque
// @Failure 400 {object} errors.ErrorResponse
// @Router /bloques/taller/{idTaller} [get]
func (h *TallerHandler) ListBloquesByTaller(c echo.Context) error {
	return h.listBloques(c, c.Param("idTaller"))
}

func (h *TallerHandler) listBloques(c echo.Context, idTaller string) error {
	bloques, err := h.bloques.List(c.Request().Context(), idTaller)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, bloques)
}

// GetBloque godoc
// @Summary Get block by id
// @Tags bloques
// @Produce json
// @Param id path string true "Block ID"
// @Success 200 {object} model.Bloque
// @Failure 404 {object} errors.ErrorResponse
// @Router /bloques/{id} [get]
func (h *TallerHandler) GetBloque(c echo.Context) error {
	bloque, err := h.bloques.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, bloque)
}

// UpdateBloque godoc
// @Summary Update block
// @Tags bloques
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Block ID"
// @Param request body UpdateBloqueRequest true "Fields to change"
// @Success 200 {object} model.Bloque
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bloques/{id} [patch]
func (h *TallerHandler) UpdateBloque(c echo.Context) error {
	var req UpdateBloqueRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	bloque, err := h.bloques.Update(c.Request().Context(), c.Param("id"), service.BloquePatch{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		FechaInicio: req.FechaInicio,
		FechaFin:    req.FechaFin,
		Horario:     req.Horario,
		IDTaller:    req.IDTaller,
		CupoTotal:   req.CupoTotal,
		Estado:      req.Estado,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, bloque)
}

// CambiarEstadoBloque godoc
// @Summary Change block state
// @Tags bloques
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Block ID"
// @Param request body EstadoRequest true "New state"
// @Success 200 {object} model.Bloque
// @Failure 400 {object} errors.ErrorResponse
// @Router /bloques/{id}/estado [patch]
func (h *TallerHandler) CambiarEstadoBloque(c echo.Context) error {
	estado, err := bindEstado(c)
	if err != nil {
		return err
	}
	bloque, err := h.bloques.CambiarEstado(c.Request().Context(), c.Param("id"), estado)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, bloque)
}

// ReservarCupoBloque godoc
// @Summary Reserve block seats
// @Tags bloques
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Block ID"
// @Param request body ReservarCupoRequest true "Seats"
// @Success 200 {object} model.Bloque
// @Failure 400 {object} errors.ErrorResponse
// @Router /bloques/{id}/cupo [patch]
func (h *TallerHandler) ReservarCupoBloque(c echo.Context) error {
	var req ReservarCupoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	bloque, err := h.bloques.ReservarCupo(c.Request().Context(), c.Param("id"), req.CuposReservados)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, bloque)
}

// LiberarCupoBloque godoc
// @Summary Release block seats
// @Tags bloques
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Block ID"
// @Param request body LiberarCupoRequest true "Seats"
// @Success 200 {object} model.Bloque
// @Failure 400 {object} errors.ErrorResponse
// @Router /bloques/{id}/cupo/liberar [post]
func (h *TallerHandler) LiberarCupoBloque(c echo.Context) error {
	var req LiberarCupoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	bloque, err := h.bloques.LiberarCupo(c.Request().Context(), c.Param("id"), req.Cupos)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, bloque)
}

// DeleteBloque godoc
// @Summary Delete block
// @Tags bloques
// @Security BearerAuth
// @Param id path string true "Block ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /bloques/{id} [delete]
func (h *TallerHandler) DeleteBloque(c echo.Context) error {
	if err := h.bloques.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(err)
	}
	return noContent(c)
}
