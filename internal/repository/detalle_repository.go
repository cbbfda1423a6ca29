package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"festivales/internal/model"
)

// DetalleFilter narrows line item listings. Zero values are ignored.
type DetalleFilter struct {
	IDInscripcion string
	IDTaller      string
	IDBloque      string
}

// DetalleRepository defines registration line item persistence operations.
type DetalleRepository interface {
	Create(ctx context.Context, detalle *model.DetalleInscripcion) error
	Update(ctx context.Context, detalle *model.DetalleInscripcion) error
	FindByID(ctx context.Context, id string) (*model.DetalleInscripcion, error)
	List(ctx context.Context, f DetalleFilter) ([]model.DetalleInscripcion, error)
	// Delete removes the item only while it is still in estado.
	Delete(ctx context.Context, id string, estado model.DetalleEstado) (bool, error)
	// UpdateEstado moves the item from one state to another. It reports false
	// when the stored state was no longer from.
	UpdateEstado(ctx context.Context, id string, from, to model.DetalleEstado) (bool, error)
	StatsByTaller(ctx context.Context, idTaller string) ([]model.DetalleEstadoStat, error)
}

type detalleRepository struct {
	db *gorm.DB
}

// NewDetalleRepository creates a new line item repository.
func NewDetalleRepository(db *gorm.DB) DetalleRepository {
	return &detalleRepository{db: db}
}

func (r *detalleRepository) Create(ctx context.Context, detalle *model.DetalleInscripcion) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(detalle).Error
}

func (r *detalleRepository) Update(ctx context.Context, detalle *model.DetalleInscripcion) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(detalle).Error
}

func (r *detalleRepository) populated(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Inscripcion").
		Preload("Taller").
		Preload("Bloque")
}

func (r *detalleRepository) FindByID(ctx context.Context, id string) (*model.DetalleInscripcion, error) {
	var detalle model.DetalleInscripcion
	if err := r.populated(ctx).Where("id = ?", id).First(&detalle).Error; err != nil {
		return nil, err
	}
	return &detalle, nil
}

func (r *detalleRepository) List(ctx context.Context, f DetalleFilter) ([]model.DetalleInscripcion, error) {
	q := r.populated(ctx)
	if f.IDInscripcion != "" {
		q = q.Where("id_inscripcion = ?", f.IDInscripcion)
	}
	if f.IDTaller != "" {
		q = q.Where("id_taller = ?", f.IDTaller)
	}
	if f.IDBloque != "" {
		q = q.Where("id_bloque = ?", f.IDBloque)
	}
	var detalles []model.DetalleInscripcion
	if err := q.Order("created_at DESC").Find(&detalles).Error; err != nil {
		return nil, err
	}
	return detalles, nil
}

func (r *detalleRepository) Delete(ctx context.Context, id string, estado model.DetalleEstado) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND estado = ?", id, estado).Delete(&model.DetalleInscripcion{})
	return res.RowsAffected > 0, res.Error
}

func (r *detalleRepository) UpdateEstado(ctx context.Context, id string, from, to model.DetalleEstado) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.DetalleInscripcion{}).
		Where("id = ? AND estado = ?", id, from).
		Updates(map[string]interface{}{"estado": to, "updated_at": time.Now()})
	return res.RowsAffected > 0, res.Error
}

func (r *detalleRepository) StatsByTaller(ctx context.Context, idTaller string) ([]model.DetalleEstadoStat, error) {
	var out []model.DetalleEstadoStat
	err := r.db.WithContext(ctx).Model(&model.DetalleInscripcion{}).
		Select("estado, COUNT(*) AS registros, COALESCE(SUM(cantidad), 0) AS cantidad, COALESCE(SUM(precio_total), 0) AS total").
		Where("id_taller = ?", idTaller).
		Group("estado").
		Order("estado").
		Scan(&out).Error
	return out, err
}
