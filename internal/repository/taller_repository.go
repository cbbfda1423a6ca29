package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"festivales/internal/model"
)

// TallerFilter narrows workshop listings. Zero values are ignored.
type TallerFilter struct {
	IDCategoria    string
	IDSubcategoria string
	Estado         model.Estado
	// InicioDesde and InicioHasta bound fecha_inicio.
	InicioDesde *time.Time
	InicioHasta *time.Time
	ConCupo     bool
}

// TallerRepository defines workshop persistence operations.
type TallerRepository interface {
	CapacityLedger
	Create(ctx context.Context, taller *model.Taller) error
	Update(ctx context.Context, taller *model.Taller) error
	FindByID(ctx context.Context, id string) (*model.Taller, error)
	FindByIDForUpdate(ctx context.Context, id string) (*model.Taller, error)
	List(ctx context.Context, f TallerFilter) ([]model.Taller, error)
	Delete(ctx context.Context, id string) (bool, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo TallerRepository) error) error
}

type tallerRepository struct {
	*capacityLedger
	db *gorm.DB
}

// NewTallerRepository creates a new workshop repository.
func NewTallerRepository(db *gorm.DB) TallerRepository {
	return &tallerRepository{
		capacityLedger: newCapacityLedger(db, model.Taller{}.TableName()),
		db:             db,
	}
}

func (r *tallerRepository) Create(ctx context.Context, taller *model.Taller) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(taller).Error
}

func (r *tallerRepository) Update(ctx context.Context, taller *model.Taller) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(taller).Error
}

// FindByID loads a workshop with its subcategory and category.
func (r *tallerRepository) FindByID(ctx context.Context, id string) (*model.Taller, error) {
	var taller model.Taller
	if err := r.db.WithContext(ctx).
		Preload("Subcategoria.Categoria").
		Where("id = ?", id).First(&taller).Error; err != nil {
		return nil, err
	}
	return &taller, nil
}

// FindByIDForUpdate reads the row under a write lock. Only meaningful inside WithTransaction.
func (r *tallerRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.Taller, error) {
	var taller model.Taller
	if err := lockForUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&taller).Error; err != nil {
		return nil, err
	}
	return &taller, nil
}

func (r *tallerRepository) List(ctx context.Context, f TallerFilter) ([]model.Taller, error) {
	q := r.db.WithContext(ctx).Model(&model.Taller{}).Preload("Subcategoria.Categoria")
	if f.IDSubcategoria != "" {
		q = q.Where("talleres.id_subcategoria = ?", f.IDSubcategoria)
	}
	if f.IDCategoria != "" {
		q = q.Joins("JOIN subcategorias ON subcategorias.id = talleres.id_subcategoria").
			Where("subcategorias.id_categoria = ?", f.IDCategoria)
	}
	if f.Estado != "" {
		q = q.Where("talleres.estado = ?", f.Estado)
	}
	if f.InicioDesde != nil {
		q = q.Where("talleres.fecha_inicio >= ?", *f.InicioDesde)
	}
	if f.InicioHasta != nil {
		q = q.Where("talleres.fecha_inicio <= ?", *f.InicioHasta)
	}
	if f.ConCupo {
		q = q.Where("talleres.cupo_disponible > 0")
	}

	var talleres []model.Taller
	if err := q.Order("talleres.fecha_inicio ASC").Find(&talleres).Error; err != nil {
		return nil, err
	}
	return talleres, nil
}

// Delete removes the workshop and reports whether a row existed.
func (r *tallerRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Taller{})
	return res.RowsAffected > 0, res.Error
}

// WithTransaction executes a function within a database transaction.
func (r *tallerRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo TallerRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &tallerRepository{
			capacityLedger: newCapacityLedger(tx, model.Taller{}.TableName()),
			db:             tx,
		})
	})
}
