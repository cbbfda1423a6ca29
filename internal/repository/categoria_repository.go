package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"festivales/internal/model"
)

// CategoriaFilter narrows category listings by state and creation date.
type CategoriaFilter struct {
	Estado model.Estado
	Tipo   string
	Desde  *time.Time
	Hasta  *time.Time
}

// CategoriaRepository defines category persistence operations.
type CategoriaRepository interface {
	Create(ctx context.Context, categoria *model.Categoria) error
	Update(ctx context.Context, categoria *model.Categoria) error
	FindByID(ctx context.Context, id string) (*model.Categoria, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Categoria, error)
	List(ctx context.Context, f CategoriaFilter) ([]model.Categoria, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type categoriaRepository struct {
	db *gorm.DB
}

// NewCategoriaRepository creates a new category repository.
func NewCategoriaRepository(db *gorm.DB) CategoriaRepository {
	return &categoriaRepository{db: db}
}

func (r *categoriaRepository) Create(ctx context.Context, categoria *model.Categoria) error {
	return r.db.WithContext(ctx).Create(categoria).Error
}

func (r *categoriaRepository) Update(ctx context.Context, categoria *model.Categoria) error {
	return r.db.WithContext(ctx).Save(categoria).Error
}

func (r *categoriaRepository) FindByID(ctx context.Context, id string) (*model.Categoria, error) {
	var categoria model.Categoria
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&categoria).Error; err != nil {
		return nil, err
	}
	return &categoria, nil
}

func (r *categoriaRepository) FindByNombre(ctx context.Context, nombre string) (*model.Categoria, error) {
	var categoria model.Categoria
	if err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&categoria).Error; err != nil {
		return nil, err
	}
	return &categoria, nil
}

func (r *categoriaRepository) List(ctx context.Context, f CategoriaFilter) ([]model.Categoria, error) {
	q := r.db.WithContext(ctx)
	if f.Estado != "" {
		q = q.Where("estado = ?", f.Estado)
	}
	if f.Tipo != "" {
		q = q.Where("tipo = ?", f.Tipo)
	}
	if f.Desde != nil {
		q = q.Where("created_at >= ?", *f.Desde)
	}
	if f.Hasta != nil {
		q = q.Where("created_at <= ?", *f.Hasta)
	}
	var categorias []model.Categoria
	if err := q.Order("created_at DESC").Find(&categorias).Error; err != nil {
		return nil, err
	}
	return categorias, nil
}

func (r *categoriaRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Categoria{})
	return res.RowsAffected > 0, res.Error
}

// SubcategoriaRepository defines subcategory persistence operations.
type SubcategoriaRepository interface {
	Create(ctx context.Context, subcategoria *model.Subcategoria) error
	Update(ctx context.Context, subcategoria *model.Subcategoria) error
	FindByID(ctx context.Context, id string) (*model.Subcategoria, error)
	List(ctx context.Context, idCategoria string) ([]model.Subcategoria, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type subcategoriaRepository struct {
	db *gorm.DB
}

// NewSubcategoriaRepository creates a new subcategory repository.
func NewSubcategoriaRepository(db *gorm.DB) SubcategoriaRepository {
	return &subcategoriaRepository{db: db}
}

func (r *subcategoriaRepository) Create(ctx context.Context, subcategoria *model.Subcategoria) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(subcategoria).Error
}

func (r *subcategoriaRepository) Update(ctx context.Context, subcategoria *model.Subcategoria) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(subcategoria).Error
}

func (r *subcategoriaRepository) FindByID(ctx context.Context, id string) (*model.Subcategoria, error) {
	var subcategoria model.Subcategoria
	if err := r.db.WithContext(ctx).Preload("Categoria").Where("id = ?", id).First(&subcategoria).Error; err != nil {
		return nil, err
	}
	return &subcategoria, nil
}

func (r *subcategoriaRepository) List(ctx context.Context, idCategoria string) ([]model.Subcategoria, error) {
	q := r.db.WithContext(ctx).Preload("Categoria")
	if idCategoria != "" {
		q = q.Where("id_categoria = ?", idCategoria)
	}
	var subcategorias []model.Subcategoria
	if err := q.Order("nombre ASC").Find(&subcategorias).Error; err != nil {
		return nil, err
	}
	return subcategorias, nil
}

func (r *subcategoriaRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Subcategoria{})
	return res.RowsAffected > 0, res.Error
}
