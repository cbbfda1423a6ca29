package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"festivales/internal/model"
)

// InscripcionFilter narrows registration listings. Zero values are ignored.
type InscripcionFilter struct {
	IDUsuario string
	Estado    model.InscripcionEstado
}

// InscripcionRepository defines registration persistence operations.
type InscripcionRepository interface {
	Create(ctx context.Context, inscripcion *model.Inscripcion) error
	Update(ctx context.Context, inscripcion *model.Inscripcion) error
	FindByID(ctx context.Context, id string) (*model.Inscripcion, error)
	List(ctx context.Context, f InscripcionFilter) ([]model.Inscripcion, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
	CountByEstado(ctx context.Context) ([]model.EstadoCount, error)
	SumTotal(ctx context.Context, estado model.InscripcionEstado) (decimal.Decimal, error)
}

type inscripcionRepository struct {
	db *gorm.DB
}

// NewInscripcionRepository creates a new registration repository.
func NewInscripcionRepository(db *gorm.DB) InscripcionRepository {
	return &inscripcionRepository{db: db}
}

func (r *inscripcionRepository) Create(ctx context.Context, inscripcion *model.Inscripcion) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(inscripcion).Error
}

func (r *inscripcionRepository) Update(ctx context.Context, inscripcion *model.Inscripcion) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(inscripcion).Error
}

func (r *inscripcionRepository) FindByID(ctx context.Context, id string) (*model.Inscripcion, error) {
	var inscripcion model.Inscripcion
	if err := r.db.WithContext(ctx).Preload("Usuario").Where("id = ?", id).First(&inscripcion).Error; err != nil {
		return nil, err
	}
	return &inscripcion, nil
}

func (r *inscripcionRepository) List(ctx context.Context, f InscripcionFilter) ([]model.Inscripcion, error) {
	q := r.db.WithContext(ctx).Preload("Usuario")
	if f.IDUsuario != "" {
		q = q.Where("id_usuario = ?", f.IDUsuario)
	}
	if f.Estado != "" {
		q = q.Where("estado = ?", f.Estado)
	}
	var inscripciones []model.Inscripcion
	if err := q.Order("fecha_inscripcion DESC").Find(&inscripciones).Error; err != nil {
		return nil, err
	}
	return inscripciones, nil
}

// Delete removes only the registration. Line items and payments are left in place.
func (r *inscripcionRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Inscripcion{})
	return res.RowsAffected > 0, res.Error
}

func (r *inscripcionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Inscripcion{}).Count(&n).Error
	return n, err
}

func (r *inscripcionRepository) CountByEstado(ctx context.Context) ([]model.EstadoCount, error) {
	var out []model.EstadoCount
	err := r.db.WithContext(ctx).Model(&model.Inscripcion{}).
		Select("estado, COUNT(*) AS cantidad").
		Group("estado").
		Order("estado").
		Scan(&out).Error
	return out, err
}

func (r *inscripcionRepository) SumTotal(ctx context.Context, estado model.InscripcionEstado) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Model(&model.Inscripcion{}).
		Select("COALESCE(SUM(total), 0)").
		Where("estado = ?", estado).
		Row().Scan(&sum)
	return sum, err
}
