package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	apperrors "festivales/internal/errors"
	"festivales/internal/metrics"
	"festivales/internal/model"
	"festivales/internal/repository"
)

// Recurso names a bookable table.
type Recurso string

const (
	RecursoTaller Recurso = "taller"
	RecursoBloque Recurso = "bloque"
)

// CapacityService reserves and releases seats on talleres and bloques.
type CapacityService interface {
	Reserve(ctx context.Context, recurso Recurso, id string, n int) error
	Release(ctx context.Context, recurso Recurso, id string, n int) error
}

type capacityService struct {
	ledgers map[Recurso]repository.CapacityLedger
	logger  *zap.Logger
}

// NewCapacityService creates the seat ledger over the two bookable tables.
func NewCapacityService(talleres, bloques repository.CapacityLedger, logger *zap.Logger) CapacityService {
	return &capacityService{
		ledgers: map[Recurso]repository.CapacityLedger{
			RecursoTaller: talleres,
			RecursoBloque: bloques,
		},
		logger: logger,
	}
}

func (s *capacityService) ledger(recurso Recurso, id string, n int) (repository.CapacityLedger, error) {
	l, ok := s.ledgers[recurso]
	if !ok {
		return nil, fmt.Errorf("unknown resource %q", recurso)
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := model.ValidateSeats(n); err != nil {
		return nil, err
	}
	return l, nil
}

// Reserve takes n seats or fails without touching the row.
func (s *capacityService) Reserve(ctx context.Context, recurso Recurso, id string, n int) error {
	l, err := s.ledger(recurso, id, n)
	if err != nil {
		return err
	}
	err = l.Reserve(ctx, id, n)
	s.observe(recurso, "reserve", id, n, err)
	switch {
	case err == nil:
		return nil
	case repository.IsNotFound(err):
		return apperrors.NotFound(string(recurso), id)
	case errors.Is(err, apperrors.ErrInsufficientCapacity):
		return fmt.Errorf("%s %s: %w", recurso, id, err)
	default:
		return fmt.Errorf("reserve seats: %w", err)
	}
}

// Release returns n seats, never above the total.
func (s *capacityService) Release(ctx context.Context, recurso Recurso, id string, n int) error {
	l, err := s.ledger(recurso, id, n)
	if err != nil {
		return err
	}
	err = l.Release(ctx, id, n)
	s.observe(recurso, "release", id, n, err)
	switch {
	case err == nil:
		return nil
	case repository.IsNotFound(err):
		return apperrors.NotFound(string(recurso), id)
	default:
		return fmt.Errorf("release seats: %w", err)
	}
}

func (s *capacityService) observe(recurso Recurso, op, id string, n int, err error) {
	result := "ok"
	switch {
	case err == nil:
	case repository.IsNotFound(err):
		result = "not_found"
	case errors.Is(err, apperrors.ErrInsufficientCapacity):
		result = "insufficient"
		s.logger.Debug("seat reservation refused",
			zap.String("resource", string(recurso)), zap.String("id", id), zap.Int("seats", n))
	default:
		result = "error"
		s.logger.Warn("seat ledger failure",
			zap.String("resource", string(recurso)), zap.String("op", op), zap.String("id", id), zap.Error(err))
	}
	metrics.LedgerOps.WithLabelValues(string(recurso), op, result).Inc()
}
