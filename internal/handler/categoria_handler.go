package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"festivales/internal/model"
	"festivales/internal/repository"
	"festivales/internal/service"
)

// CategoriaHandler serves categories and subcategories.
type CategoriaHandler struct {
	categorias    service.CategoriaService
	subcategorias service.SubcategoriaService
}

func NewCategoriaHandler(categorias service.CategoriaService, subcategorias service.SubcategoriaService) *CategoriaHandler {
	return &CategoriaHandler{categorias: categorias, subcategorias: subcategorias}
}

type CategoriaRequest struct {
	Nombre      string       `json:"nombre" validate:"required"`
	Tipo        string       `json:"tipo" validate:"required"`
	Descripcion string       `json:"descripcion"`
	Estado      model.Estado `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

type UpdateCategoriaRequest struct {
	Nombre      *string       `json:"nombre"`
	Tipo        *string       `json:"tipo"`
	Descripcion *string       `json:"descripcion"`
	Estado      *model.Estado `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

type SubcategoriaRequest struct {
	Nombre      string       `json:"nombre" validate:"required"`
	Descripcion string       `json:"descripcion"`
	IDCategoria string       `json:"id_categoria" validate:"required,objectid"`
	Estado      model.Estado `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

type UpdateSubcategoriaRequest struct {
	Nombre      *string       `json:"nombre"`
	Descripcion *string       `json:"descripcion"`
	IDCategoria *string       `json:"id_categoria" validate:"omitempty,objectid"`
	Estado      *model.Estado `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// CreateCategoria godoc
// @Summary Create category
// @Tags categorias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CategoriaRequest true "Category"
// @Success 201 {object} model.Categoria
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /categorias [post]
func (h *CategoriaHandler) CreateCategoria(c echo.Context) error {
	var req CategoriaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.categorias.Create(c.Request().Context(), &model.Categoria{
		Nombre:      req.Nombre,
		Tipo:        req.Tipo,
		Descripcion: req.Descripcion,
		Estado:      req.Estado,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListCategorias godoc
// @Summary List categories
// @Tags categorias
// @Produce json
// @Param estado query string false "activo or inactivo"
// @Param fecha_desde query string false "Created on or after"
// @Param fecha_hasta query string false "Created on or before"
// @Success 200 {array} model.Categoria
// @Failure 400 {object} errors.ErrorResponse
// @Router /categorias [get]
func (h *CategoriaHandler) ListCategorias(c echo.Context) error {
	desde, err := queryDate(c, "fecha_desde")
	if err != nil {
		return err
	}
	hasta, err := queryDate(c, "fecha_hasta")
	if err != nil {
		return err
	}
	categorias, err := h.categorias.List(c.Request().Context(), repository.CategoriaFilter{
		Estado: queryEstado(c),
		Desde:  desde,
		Hasta:  hasta,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, categorias)
}

// ListCategoriasByTipo godoc
// @Summary List categories of a type
// @Tags categorias
// @Produce json
// @Param tipo path string true "Type"
// @Success 200 {array} model.Categoria
// @Router /categorias/tipo/{tipo} [get]
func (h *CategoriaHandler) ListCategoriasByTipo(c echo.Context) error {
	categorias, err := h.categorias.List(c.Request().Context(), repository.CategoriaFilter{Tipo: c.Param("tipo")})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, categorias)
}

// GetCategoria godoc
// @Summary Get category by id
// @Tags categorias
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} model.Categoria
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categorias/{id} [get]
func (h *CategoriaHandler) GetCategoria(c echo.Context) error {
	categoria, err := h.categorias.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, categoria)
}

// UpdateCategoria godoc
// @Summary Update category
// @Tags categorias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param request body UpdateCategoriaRequest true "Fields to change"
// @Success 200 {object} model.Categoria
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /categorias/{id} [put]
func (h *CategoriaHandler) UpdateCategoria(c echo.Context) error {
	var req UpdateCategoriaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	categoria, err := h.categorias.Update(c.Request().Context(), c.Param("id"), service.CategoriaPatch{
		Nombre:      req.Nombre,
		Tipo:        req.Tipo,
		Descripcion: req.Descripcion,
		Estado:      req.Estado,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, categoria)
}

// ActivarCategoria godoc
// @Summary Activate category
// @Tags categorias
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} model.Categoria
// @Router /categorias/{id}/activar [put]
func (h *CategoriaHandler) ActivarCategoria(c echo.Context) error {
	return h.setEstado(c, model.EstadoActivo)
}

// DesactivarCategoria godoc
// @Summary Deactivate category
// @Tags categorias
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 200 {object} model.Categoria
// @Router /categorias/{id}/desactivar [put]
func (h *CategoriaHandler) DesactivarCategoria(c echo.Context) error {
	return h.setEstado(c, model.EstadoInactivo)
}

func (h *CategoriaHandler) setEstado(c echo.Context, estado model.Estado) error {
	categoria, err := h.categorias.CambiarEstado(c.Request().Context(), c.Param("id"), string(estado))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, categoria)
}

// DeleteCategoria godoc
// @Summary Delete category
// @Tags categorias
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /categorias/{id} [delete]
func (h *CategoriaHandler) DeleteCategoria(c echo.Context) error {
	if err := h.categorias.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(err)
	}
	return noContent(c)
}

// CreateSubcategoria godoc
// @Summary Create subcategory
// @Tags subcategorias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubcategoriaRequest true "Subcategory"
// @Success 201 {object} model.Subcategoria
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /subcategorias [post]
func (h *CategoriaHandler) CreateSubcategoria(c echo.Context) error {
	var req SubcategoriaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.subcategorias.Create(c.Request().Context(), &model.Subcategoria{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		IDCategoria: req.IDCategoria,
		Estado:      req.Estado,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListSubcategorias godoc
// @Summary List subcategories
// @Tags subcategorias
// @Produce json
// @Success 200 {array} model.Subcategoria
// @Router /subcategorias [get]
func (h *CategoriaHandler) ListSubcategorias(c echo.Context) error {
	return h.listSubcategorias(c, "")
}

// ListSubcategoriasByCategoria godoc
// @Summary List subcategories of a category
// @Tags subcategorias
// @Produce json
// @Param idCategoria path string true "Category ID"
// @Success 200 {array} model.Subcategoria
// @Failure 400 {object} errors.ErrorResponse
// @Router /subcategorias/categoria/{idCategoria} [get]
func (h *CategoriaHandler) ListSubcategoriasByCategoria(c echo.Context) error {
	return h.listSubcategorias(c, c.Param("idCategoria"))
}

func (h *CategoriaHandler) listSubcategorias(c echo.Context, idCategoria string) error {
	subcategorias, err := h.subcategorias.List(c.Request().Context(), idCategoria)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, subcategorias)
}

// GetSubcategoria godoc
// @Summary Get subcategory by id
// @Tags subcategorias
// @Produce json
// @Param id path string true "Subcategory ID"
// @Success 200 {object} model.Subcategoria
// @Failure 404 {object} errors.ErrorResponse
// @Router /subcategorias/{id} [get]
func (h *CategoriaHandler) GetSubcategoria(c echo.Context) error {
	sub, err := h.subcategorias.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, sub)
}

// UpdateSubcategoria godoc
// @Summary Update subcategory
// @Tags subcategorias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subcategory ID"
// @Param request body UpdateSubcategoriaRequest true "Fields to change"
// @Success 200 {object} model.Subcategoria
// @Failure 404 {object} errors.ErrorResponse
// @Router /subcategorias/{id} [patch]
func (h *CategoriaHandler) UpdateSubcategoria(c echo.Context) error {
	var req UpdateSubcategoriaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	sub, err := h.subcategorias.Update(c.Request().Context(), c.Param("id"), service.SubcategoriaPatch{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		IDCategoria: req.IDCategoria,
		Estado:      req.Estado,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, sub)
}

// CambiarEstadoSubcategoria godoc
// @Summary Change subcategory state
// @Tags subcategorias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subcategory ID"
// @Param request body EstadoRequest true "New state"
// @Success 200 {object} model.Subcategoria
// @Failure 400 {object} errors.ErrorResponse
// @Router /subcategorias/{id}/estado [patch]
func (h *CategoriaHandler) CambiarEstadoSubcategoria(c echo.Context) error {
	estado, err := bindEstado(c)
	if err != nil {
		return err
	}
	sub, err := h.subcategorias.CambiarEstado(c.Request().Context(), c.Param("id"), estado)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, sub)
}

// DeleteSubcategoria godoc
// @Summary Delete subcategory
// @Tags subcategorias
// @Security BearerAuth
// @Param id path string true "Subcategory ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /subcategorias/{id} [delete]
func (h *CategoriaHandler) DeleteSubcategoria(c echo.Context) error {
	if err := h.subcategorias.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(err)
	}
	return noContent(c)
}
