package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"festivales/internal/model"
)

// ServicioFilter narrows service listings. Zero values are ignored.
type ServicioFilter struct {
	IDCategoria    string
	IDSubcategoria string
	Estado         model.Estado
}

// ServicioRepository defines service persistence operations.
type ServicioRepository interface {
	Create(ctx context.Context, servicio *model.Servicio) error
	Update(ctx context.Context, servicio *model.Servicio) error
	FindByID(ctx context.Context, id string) (*model.Servicio, error)
	List(ctx context.Context, f ServicioFilter) ([]model.Servicio, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type servicioRepository struct {
	db *gorm.DB
}

// NewServicioRepository creates a new service repository.
func NewServicioRepository(db *gorm.DB) ServicioRepository {
	return &servicioRepository{db: db}
}

func (r *servicioRepository) Create(ctx context.Context, servicio *model.Servicio) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(servicio).Error
}

func (r *servicioRepository) Update(ctx context.Context, servicio *model.Servicio) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(servicio).Error
}

func (r *servicioRepository) FindByID(ctx context.Context, id string) (*model.Servicio, error) {
	var servicio model.Servicio
	if err := r.db.WithContext(ctx).Preload("Subcategoria.Categoria").Where("id = ?", id).First(&servicio).Error; err != nil {
		return nil, err
	}
	return &servicio, nil
}

func (r *servicioRepository) List(ctx context.Context, f ServicioFilter) ([]model.Servicio, error) {
	q := r.db.WithContext(ctx).Model(&model.Servicio{}).Preload("Subcategoria.Categoria")
	if f.IDSubcategoria != "" {
		q = q.Where("servicios.id_subcategoria = ?", f.IDSubcategoria)
	}
	if f.IDCategoria != "" {
		q = q.Joins("JOIN subcategorias ON subcategorias.id = servicios.id_subcategoria").
			Where("subcategorias.id_categoria = ?", f.IDCategoria)
	}
	if f.Estado != "" {
		q = q.Where("servicios.estado = ?", f.Estado)
	}
	var servicios []model.Servicio
	if err := q.Order("servicios.created_at DESC").Find(&servicios).Error; err != nil {
		return nil, err
	}
	return servicios, nil
}

func (r *servicioRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Servicio{})
	return res.RowsAffected > 0, res.Error
}

// FestivalFilter narrows festival listings. Zero values are ignored.
type FestivalFilter struct {
	IDCategoria string
	Estado      model.Estado
	// TipoContiene matches tipo case-insensitively as a substring.
	TipoContiene string
	EventoDesde  *time.Time
}

// FestivalRepository defines festival persistence operations.
type FestivalRepository interface {
	Create(ctx context.Context, festival *model.Festival) error
	Update(ctx context.Context, festival *model.Festival) error
	FindByID(ctx context.Context, id string) (*model.Festival, error)
	List(ctx context.Context, f FestivalFilter) ([]model.Festival, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type festivalRepository struct {
	db *gorm.DB
}

// NewFestivalRepository creates a new festival repository.
func NewFestivalRepository(db *gorm.DB) FestivalRepository {
	return &festivalRepository{db: db}
}

func (r *festivalRepository) Create(ctx context.Context, festival *model.Festival) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(festival).Error
}

func (r *festivalRepository) Update(ctx context.Context, festival *model.Festival) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(festival).Error
}

func (r *festivalRepository) FindByID(ctx context.Context, id string) (*model.Festival, error) {
	var festival model.Festival
	if err := r.db.WithContext(ctx).Preload("Categoria").Where("id = ?", id).First(&festival).Error; err != nil {
		return nil, err
	}
	return &festival, nil
}

func (r *festivalRepository) List(ctx context.Context, f FestivalFilter) ([]model.Festival, error) {
	q := r.db.WithContext(ctx).Preload("Categoria")
	if f.IDCategoria != "" {
		q = q.Where("id_categoria = ?", f.IDCategoria)
	}
	if f.Estado != "" {
		q = q.Where("estado = ?", f.Estado)
	}
	if f.TipoContiene != "" {
		q = q.Where("LOWER(tipo) LIKE ?", "%"+escapeLike(f.TipoContiene)+"%")
	}
	if f.EventoDesde != nil {
		q = q.Where("fecha_evento >= ?", *f.EventoDesde)
	}
	var festivales []model.Festival
	if err := q.Order("fecha_evento ASC").Find(&festivales).Error; err != nil {
		return nil, err
	}
	return festivales, nil
}

func (r *festivalRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Festival{})
	return res.RowsAffected > 0, res.Error
}
