package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"festivales/internal/model"
)

// BloqueRepository defines time block persistence operations.
type BloqueRepository interface {
	CapacityLedger
	Create(ctx context.Context, bloque *model.Bloque) error
	Update(ctx context.Context, bloque *model.Bloque) error
	FindByID(ctx context.Context, id string) (*model.Bloque, error)
	FindByIDForUpdate(ctx context.Context, id string) (*model.Bloque, error)
	List(ctx context.Context, idTaller string) ([]model.Bloque, error)
	Delete(ctx context.Context, id string) (bool, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo BloqueRepository) error) error
}

type bloqueRepository struct {
	*capacityLedger
	db *gorm.DB
}

// NewBloqueRepository creates a new block repository.
func NewBloqueRepository(db *gorm.DB) BloqueRepository {
	return &bloqueRepository{
		capacityLedger: newCapacityLedger(db, model.Bloque{}.TableName()),
		db:             db,
	}
}

func (r *bloqueRepository) Create(ctx context.Context, bloque *model.Bloque) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(bloque).Error
}

func (r *bloqueRepository) Update(ctx context.Context, bloque *model.Bloque) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(bloque).Error
}

func (r *bloqueRepository) FindByID(ctx context.Context, id string) (*model.Bloque, error) {
	var bloque model.Bloque
	if err := r.db.WithContext(ctx).Preload("Taller").Where("id = ?", id).First(&bloque).Error; err != nil {
		return nil, err
	}
	return &bloque, nil
}

func (r *bloqueRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.Bloque, error) {
	var bloque model.Bloque
	if err := lockForUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&bloque).Error; err != nil {
		return nil, err
	}
	return &bloque, nil
}

// List returns every block, or the blocks of one workshop when idTaller is set.
func (r *bloqueRepository) List(ctx context.Context, idTaller string) ([]model.Bloque, error) {
	q := r.db.WithContext(ctx).Preload("Taller")
	if idTaller != "" {
		q = q.Where("id_taller = ?", idTaller)
	}
	var bloques []model.Bloque
	if err := q.Order("fecha_inicio ASC").Find(&bloques).Error; err != nil {
		return nil, err
	}
	return bloques, nil
}

func (r *bloqueRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Bloque{})
	return res.RowsAffected > 0, res.Error
}

func (r *bloqueRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo BloqueRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &bloqueRepository{
			capacityLedger: newCapacityLedger(tx, model.Bloque{}.TableName()),
			db:             tx,
		})
	})
}
