package service

import (
	"context"
	"strings"

	apperrors "festivales/internal/errors"
	"festivales/internal/model"
	"festivales/internal/repository"
)

// CategoriaPatch carries the fields of a partial category update.
type CategoriaPatch struct {
	Nombre      *string
	Tipo        *string
	Descripcion *string
	Estado      *model.Estado
}

// CategoriaService handles the top level of the catalog.
type CategoriaService interface {
	Create(ctx context.Context, categoria *model.Categoria) (*model.Categoria, error)
	Get(ctx context.Context, id string) (*model.Categoria, error)
	List(ctx context.Context, f repository.CategoriaFilter) ([]model.Categoria, error)
	Update(ctx context.Context, id string, patch CategoriaPatch) (*model.Categoria, error)
	CambiarEstado(ctx context.Context, id, estado string) (*model.Categoria, error)
	Delete(ctx context.Context, id string) error
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

// NewCategoriaService creates a new category service.
func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func (s *categoriaService) ensureNombreFree(ctx context.Context, nombre, selfID string) error {
	c, err := s.repo.FindByNombre(ctx, nombre)
	switch {
	case err == nil && c.ID != selfID:
		return apperrors.Conflict("categoria %s already exists", nombre)
	case err != nil && !repository.IsNotFound(err):
		return lookupErr(err, "categoria", nombre)
	}
	return nil
}

func (s *categoriaService) Create(ctx context.Context, categoria *model.Categoria) (*model.Categoria, error) {
	categoria.Nombre = strings.TrimSpace(categoria.Nombre)
	if categoria.Nombre == "" {
		return nil, apperrors.Validation("nombre is required")
	}
	if strings.TrimSpace(categoria.Tipo) == "" {
		return nil, apperrors.Validation("tipo is required")
	}
	if categoria.Estado == "" {
		categoria.Estado = model.EstadoActivo
	}
	if _, err := parseEstado(string(categoria.Estado)); err != nil {
		return nil, err
	}
	if err := s.ensureNombreFree(ctx, categoria.Nombre, ""); err != nil {
		return nil, err
	}
	categoria.ID = ""
	if err := s.repo.Create(ctx, categoria); err != nil {
		return nil, writeErr(err, "categoria")
	}
	return categoria, nil
}

func (s *categoriaService) Get(ctx context.Context, id string) (*model.Categoria, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "categoria", id)
	}
	return c, nil
}

func (s *categoriaService) List(ctx context.Context, f repository.CategoriaFilter) ([]model.Categoria, error) {
	if f.Estado != "" {
		if _, err := parseEstado(string(f.Estado)); err != nil {
			return nil, err
		}
	}
	if f.Desde != nil && f.Hasta != nil && f.Hasta.Before(*f.Desde) {
		return nil, apperrors.Validation("fecha_hasta must not be before fecha_desde")
	}
	return s.repo.List(ctx, f)
}

func (s *categoriaService) Update(ctx context.Context, id string, patch CategoriaPatch) (*model.Categoria, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Nombre != nil {
		nombre := strings.TrimSpace(*patch.Nombre)
		if nombre == "" {
			return nil, apperrors.Validation("nombre must not be empty")
		}
		if err := s.ensureNombreFree(ctx, nombre, c.ID); err != nil {
			return nil, err
		}
		c.Nombre = nombre
	}
	if patch.Tipo != nil {
		if strings.TrimSpace(*patch.Tipo) == "" {
			return nil, apperrors.Validation("tipo must not be empty")
		}
		c.Tipo = *patch.Tipo
	}
	if patch.Descripcion != nil {
		c.Descripcion = *patch.Descripcion
	}
	if patch.Estado != nil {
		if _, err := parseEstado(string(*patch.Estado)); err != nil {
			return nil, err
		}
		c.Estado = *patch.Estado
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, writeErr(err, "categoria")
	}
	return c, nil
}

func (s *categoriaService) CambiarEstado(ctx context.Context, id, estado string) (*model.Categoria, error) {
	e, err := parseEstado(estado)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, id, CategoriaPatch{Estado: &e})
}

// Delete removes the category. Subcategories and festivals that point to it
// are kept.
func (s *categoriaService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	return deleteErr(deleted, err, "categoria", id)
}

// SubcategoriaPatch carries the fields of a partial subcategory update.
type SubcategoriaPatch struct {
	Nombre      *string
	Descripcion *string
	IDCategoria *string
	Estado      *model.Estado
}

// SubcategoriaService handles the second level of the catalog.
type SubcategoriaService interface {
	Create(ctx context.Context, subcategoria *model.Subcategoria) (*model.Subcategoria, error)
	Get(ctx context.Context, id string) (*model.Subcategoria, error)
	List(ctx context.Context, idCategoria string) ([]model.Subcategoria, error)
	Update(ctx context.Context, id string, patch SubcategoriaPatch) (*model.Subcategoria, error)
	CambiarEstado(ctx context.Context, id, estado string) (*model.Subcategoria, error)
	Delete(ctx context.Context, id string) error
}

type subcategoriaService struct {
	repo       repository.SubcategoriaRepository
	categorias repository.CategoriaRepository
}

// NewSubcategoriaService creates a new subcategory service.
func NewSubcategoriaService(repo repository.SubcategoriaRepository, categorias repository.CategoriaRepository) SubcategoriaService {
	return &subcategoriaService{repo: repo, categorias: categorias}
}

func (s *subcategoriaService) checkCategoria(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if _, err := s.categorias.FindByID(ctx, id); err != nil {
		return lookupErr(err, "categoria", id)
	}
	return nil
}

func (s *subcategoriaService) Create(ctx context.Context, sub *model.Subcategoria) (*model.Subcategoria, error) {
	if strings.TrimSpace(sub.Nombre) == "" {
		return nil, apperrors.Validation("nombre is required")
	}
	if sub.Estado == "" {
		sub.Estado = model.EstadoActivo
	}
	if _, err := parseEstado(string(sub.Estado)); err != nil {
		return nil, err
	}
	if err := s.checkCategoria(ctx, sub.IDCategoria); err != nil {
		return nil, err
	}
	sub.ID = ""
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, writeErr(err, "subcategoria")
	}
	return s.Get(ctx, sub.ID)
}

func (s *subcategoriaService) Get(ctx context.Context, id string) (*model.Subcategoria, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "subcategoria", id)
	}
	return sub, nil
}

func (s *subcategoriaService) List(ctx context.Context, idCategoria string) ([]model.Subcategoria, error) {
	if idCategoria != "" {
		if err := checkID(idCategoria); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, idCategoria)
}

func (s *subcategoriaService) Update(ctx context.Context, id string, patch SubcategoriaPatch) (*model.Subcategoria, error) {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IDCategoria != nil {
		if err := s.checkCategoria(ctx, *patch.IDCategoria); err != nil {
			return nil, err
		}
		sub.IDCategoria = *patch.IDCategoria
	}
	if patch.Nombre != nil {
		if strings.TrimSpace(*patch.Nombre) == "" {
			return nil, apperrors.Validation("nombre must not be empty")
		}
		sub.Nombre = *patch.Nombre
	}
	if patch.Descripcion != nil {
		sub.Descripcion = *patch.Descripcion
	}
	if patch.Estado != nil {
		if _, err := parseEstado(string(*patch.Estado)); err != nil {
			return nil, err
		}
		sub.Estado = *patch.Estado
	}
	sub.Categoria = nil
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, writeErr(err, "subcategoria")
	}
	return s.Get(ctx, id)
}

func (s *subcategoriaService) CambiarEstado(ctx context.Context, id, estado string) (*model.Subcategoria, error) {
	e, err := parseEstado(estado)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, id, SubcategoriaPatch{Estado: &e})
}

func (s *subcategoriaService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	return deleteErr(deleted, err, "subcategoria", id)
}
