package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "festivales/internal/errors"
)

// CapacityLedger applies seat arithmetic on a bookable table. Every change
// is a single statement so concurrent requests are serialized by the store.
type CapacityLedger interface {
	// Reserve decrements cupo_disponible by n only if enough seats remain.
	// It returns gorm.ErrRecordNotFound for a missing row and
	// apperrors.ErrInsufficientCapacity when the row has fewer than n seats.
	Reserve(ctx context.Context, id string, n int) error
	// Release increments cupo_disponible by n, capped at cupo_total.
	Release(ctx context.Context, id string, n int) error
}

type capacityLedger struct {
	db    *gorm.DB
	table string
}

func newCapacityLedger(db *gorm.DB, table string) *capacityLedger {
	return &capacityLedger{db: db, table: table}
}

func (l *capacityLedger) Reserve(ctx context.Context, id string, n int) error {
	res := l.db.WithContext(ctx).Table(l.table).
		Where("id = ? AND cupo_disponible >= ?", id, n).
		Updates(map[string]interface{}{
			"cupo_disponible": gorm.Expr("cupo_disponible - ?", n),
			"updated_at":      time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}
	exists, err := l.exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return gorm.ErrRecordNotFound
	}
	return apperrors.ErrInsufficientCapacity
}

func (l *capacityLedger) Release(ctx context.Context, id string, n int) error {
	res := l.db.WithContext(ctx).Table(l.table).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"cupo_disponible": gorm.Expr("LEAST(cupo_total, cupo_disponible + ?)", n),
			"updated_at":      time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}
	// MySQL reports zero affected rows when nothing changed.
	exists, err := l.exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (l *capacityLedger) exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := l.db.WithContext(ctx).Table(l.table).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
