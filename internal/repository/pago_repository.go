package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"festivales/internal/model"
)

// PagoFilter narrows payment listings. Zero values are ignored.
type PagoFilter struct {
	IDUsuario string
	IDDetalle string
}

// PagoRepository defines payment persistence operations.
type PagoRepository interface {
	Create(ctx context.Context, pago *model.Pago) error
	Update(ctx context.Context, pago *model.Pago) error
	FindByID(ctx context.Context, id string) (*model.Pago, error)
	List(ctx context.Context, f PagoFilter) ([]model.Pago, error)
	Delete(ctx context.Context, id string) (bool, error)
	StatsByEstado(ctx context.Context) ([]model.PagoEstadoStat, error)
}

type pagoRepository struct {
	db *gorm.DB
}

// NewPagoRepository creates a new payment repository.
func NewPagoRepository(db *gorm.DB) PagoRepository {
	return &pagoRepository{db: db}
}

func (r *pagoRepository) Create(ctx context.Context, pago *model.Pago) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(pago).Error
}

func (r *pagoRepository) Update(ctx context.Context, pago *model.Pago) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(pago).Error
}

func (r *pagoRepository) FindByID(ctx context.Context, id string) (*model.Pago, error) {
	var pago model.Pago
	if err := r.db.WithContext(ctx).
		Preload("Detalle").
		Preload("UsuarioPago").
		Where("id = ?", id).First(&pago).Error; err != nil {
		return nil, err
	}
	return &pago, nil
}

func (r *pagoRepository) List(ctx context.Context, f PagoFilter) ([]model.Pago, error) {
	q := r.db.WithContext(ctx).Preload("Detalle").Preload("UsuarioPago")
	if f.IDUsuario != "" {
		q = q.Where("id_usuario_pago = ?", f.IDUsuario)
	}
	if f.IDDetalle != "" {
		q = q.Where("id_detalle = ?", f.IDDetalle)
	}
	var pagos []model.Pago
	if err := q.Order("fecha_pago DESC").Find(&pagos).Error; err != nil {
		return nil, err
	}
	return pagos, nil
}

func (r *pagoRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Pago{})
	return res.RowsAffected > 0, res.Error
}

// StatsByEstado counts payments per state and sums the precio_total of their
// line items. Payments whose line item is gone count with a zero amount.
func (r *pagoRepository) StatsByEstado(ctx context.Context) ([]model.PagoEstadoStat, error) {
	var out []model.PagoEstadoStat
	err := r.db.WithContext(ctx).Table("pagos AS p").
		Select("p.estado AS estado, COUNT(*) AS cantidad, COALESCE(SUM(d.precio_total), 0) AS monto").
		Joins("LEFT JOIN detalle_inscripciones AS d ON d.id = p.id_detalle").
		Group("p.estado").
		Order("p.estado").
		Scan(&out).Error
	return out, err
}

// HistorialRepository persists audit entries.
type HistorialRepository interface {
	CreateBatch(ctx context.Context, entries []model.Historial) error
	ListByUsuario(ctx context.Context, idUsuario string) ([]model.Historial, error)
	ListByDetalle(ctx context.Context, idDetalle string) ([]model.Historial, error)
}

type historialRepository struct {
	db *gorm.DB
}

// NewHistorialRepository creates a new audit repository.
func NewHistorialRepository(db *gorm.DB) HistorialRepository {
	return &historialRepository{db: db}
}

// CreateBatch creates multiple audit entries in a single statement.
func (r *historialRepository) CreateBatch(ctx context.Context, entries []model.Historial) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(entries, 100).Error
}

func (r *historialRepository) ListByUsuario(ctx context.Context, idUsuario string) ([]model.Historial, error) {
	var out []model.Historial
	err := r.db.WithContext(ctx).Where("id_usuario = ?", idUsuario).Order("fecha_accion DESC").Find(&out).Error
	return out, err
}

func (r *historialRepository) ListByDetalle(ctx context.Context, idDetalle string) ([]model.Historial, error) {
	var out []model.Historial
	err := r.db.WithContext(ctx).Where("id_detalle = ?", idDetalle).Order("fecha_accion DESC").Find(&out).Error
	return out, err
}
