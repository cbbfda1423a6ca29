package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"festivales/internal/model"
	"festivales/internal/service"
)

// UsuarioHandler serves user administration.
type UsuarioHandler struct {
	svc service.UsuarioService
}

func NewUsuarioHandler(svc service.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{svc: svc}
}

type CreateUsuarioRequest struct {
	RegisterRequest
	IDRol  string       `json:"id_rol" validate:"required,objectid"`
	Estado model.Estado `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

type UpdateUsuarioRequest struct {
	Nombre    *string       `json:"nombre"`
	Apellido  *string       `json:"apellido"`
	DNI       *string       `json:"dni"`
	Email     *string       `json:"email" validate:"omitempty,email"`
	Telefono  *string       `json:"telefono"`
	Direccion *string       `json:"direccion"`
	Password  *string       `json:"password" validate:"omitempty,min=6"`
	Estado    *model.Estado `json:"estado" validate:"omitempty,oneof=activo inactivo"`
	IDRol     *string       `json:"id_rol" validate:"omitempty,objectid"`
}

// CreateUsuario godoc
// @Summary Create user
// @Tags usuarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUsuarioRequest true "User"
// @Success 201 {object} model.Usuario
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /usuarios [post]
func (h *UsuarioHandler) CreateUsuario(c echo.Context) error {
	var req CreateUsuarioRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	u := req.usuario()
	u.IDRol = req.IDRol
	u.Estado = req.Estado

	created, err := h.svc.Create(c.Request().Context(), u, req.Password)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListUsuarios godoc
// @Summary List users
// @Tags usuarios
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Usuario
// @Router /usuarios [get]
func (h *UsuarioHandler) ListUsuarios(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// GetUsuario godoc
// @Summary Get user by id
// @Tags usuarios
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} model.Usuario
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /usuarios/{id} [get]
func (h *UsuarioHandler) GetUsuario(c echo.Context) error {
	user, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUsuario godoc
// @Summary Update user
// @Description Only the supplied fields change. The password is hashed again only when sent.
// @Tags usuarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UpdateUsuarioRequest true "Fields to change"
// @Success 200 {object} model.Usuario
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /usuarios/{id} [put]
func (h *UsuarioHandler) UpdateUsuario(c echo.Context) error {
	var req UpdateUsuarioRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	user, err := h.svc.Update(c.Request().Context(), c.Param("id"), service.UsuarioPatch{
		Nombre:     req.Nombre,
		Apellido:   req.Apellido,
		DNI:        req.DNI,
		Email:      req.Email,
		Telefono:   req.Telefono,
		Direccion:  req.Direccion,
		Contrasena: req.Password,
		Estado:     req.Estado,
		IDRol:      req.IDRol,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUsuario godoc
// @Summary Delete user
// @Tags usuarios
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /usuarios/{id} [delete]
func (h *UsuarioHandler) DeleteUsuario(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(err)
	}
	return noContent(c)
}

// RolHandler serves role administration.
type RolHandler struct {
	svc service.RolService
}

func NewRolHandler(svc service.RolService) *RolHandler {
	return &RolHandler{svc: svc}
}

type RolRequest struct {
	Nombre      string   `json:"nombre" validate:"required"`
	Descripcion string   `json:"descripcion"`
	Permisos    []string `json:"permisos"`
	Estado      *bool    `json:"estado"`
}

type UpdateRolRequest struct {
	Nombre      *string   `json:"nombre"`
	Descripcion *string   `json:"descripcion"`
	Permisos    *[]string `json:"permisos"`
	Estado      *bool     `json:"estado"`
}

// CreateRol godoc
// @Summary Create role
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RolRequest true "Role"
// @Success 201 {object} model.Rol
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /roles [post]
func (h *RolHandler) CreateRol(c echo.Context) error {
	var req RolRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	rol := &model.Rol{Nombre: req.Nombre, Descripcion: req.Descripcion, Permisos: req.Permisos, Estado: true}
	if req.Estado != nil {
		rol.Estado = *req.Estado
	}
	created, err := h.svc.Create(c.Request().Context(), rol)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// ListRoles godoc
// @Summary List roles
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Rol
// @Router /roles [get]
func (h *RolHandler) ListRoles(c echo.Context) error {
	roles, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, roles)
}

// GetRol godoc
// @Summary Get role by id
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Role ID"
// @Success 200 {object} model.Rol
// @Failure 404 {object} errors.ErrorResponse
// @Router /roles/{id} [get]
func (h *RolHandler) GetRol(c echo.Context) error {
	rol, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, rol)
}

// UpdateRol godoc
// @Summary Update role
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Role ID"
// @Param request body UpdateRolRequest true "Fields to change"
// @Success 200 {object} model.Rol
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /roles/{id} [put]
func (h *RolHandler) UpdateRol(c echo.Context) error {
	var req UpdateRolRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	rol, err := h.svc.Update(c.Request().Context(), c.Param("id"), service.RolPatch{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Permisos:    req.Permisos,
		Estado:      req.Estado,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, rol)
}

// DeleteRol godoc
// @Summary Delete role
// @Tags roles
// @Security BearerAuth
// @Param id path string true "Role ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /roles/{id} [delete]
func (h *RolHandler) DeleteRol(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(err)
	}
	return noContent(c)
}
