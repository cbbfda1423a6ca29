package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "festivales/internal/errors"
	"festivales/internal/model"
	"festivales/internal/repository"
)

// DetallePatch carries the mutable fields of a line item. References and
// cantidad are fixed at creation.
type DetallePatch struct {
	PrecioUnitario    *decimal.Decimal
	PrecioTotal       *decimal.Decimal
	IdentificadorPago *string
	Observaciones     *string
	Estado            *model.DetalleEstado
}

// DetalleService handles registration line items. Every line item that is
// not cancelled holds cantidad seats on its bloque, or on its taller when no
// bloque is set.
type DetalleService interface {
	Create(ctx context.Context, detalle *model.DetalleInscripcion) (*model.DetalleInscripcion, error)
	Get(ctx context.Context, id string) (*model.DetalleInscripcion, error)
	List(ctx context.Context, f repository.DetalleFilter) ([]model.DetalleInscripcion, error)
	Update(ctx context.Context, id string, patch DetallePatch) (*model.DetalleInscripcion, error)
	CambiarEstado(ctx context.Context, id, estado string) (*model.DetalleInscripcion, error)
	Delete(ctx context.Context, id string) error
	StatsByTaller(ctx context.Context, idTaller string) (*model.DetalleStats, error)
}

type detalleService struct {
	repo          repository.DetalleRepository
	inscripciones repository.InscripcionRepository
	capacity      CapacityService
	recorder      Recorder
	logger        *zap.Logger
}

// NewDetalleService creates a new line item service.
func NewDetalleService(
	repo repository.DetalleRepository,
	inscripciones repository.InscripcionRepository,
	capacity CapacityService,
	recorder Recorder,
	logger *zap.Logger,
) DetalleService {
	return &detalleService{
		repo:          repo,
		inscripciones: inscripciones,
		capacity:      capacity,
		recorder:      recorder,
		logger:        logger,
	}
}

func parseDetalleEstado(s string) (model.DetalleEstado, error) {
	e := model.DetalleEstado(s)
	if !e.Valid() {
		return "", fmt.Errorf("%w: %q is not a line item state", apperrors.ErrInvalidState, s)
	}
	return e, nil
}

// blankToNil turns an empty reference into an absent one.
func blankToNil(p *string) *string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil
	}
	return p
}

// seatHolder returns the resource whose seats the line item holds.
func seatHolder(d *model.DetalleInscripcion) (Recurso, string) {
	if d.IDBloque != nil {
		return RecursoBloque, *d.IDBloque
	}
	return RecursoTaller, *d.IDTaller
}

func validatePrecios(d *model.DetalleInscripcion) error {
	if d.PrecioUnitario.IsNegative() {
		return apperrors.Validation("precio_unitario must not be negative")
	}
	if d.PrecioTotal.IsNegative() {
		return apperrors.Validation("precio_total must not be negative")
	}
	return nil
}

// Create reserves the seats and stores the line item. When the insert fails
// the seats are given back.
func (s *detalleService) Create(ctx context.Context, detalle *model.DetalleInscripcion) (*model.DetalleInscripcion, error) {
	detalle.IDTaller = blankToNil(detalle.IDTaller)
	detalle.IDBloque = blankToNil(detalle.IDBloque)
	if detalle.IDTaller == nil && detalle.IDBloque == nil {
		return nil, apperrors.ErrInvalidReference
	}
	if err := checkID(detalle.IDInscripcion); err != nil {
		return nil, err
	}
	for _, ref := range []*string{detalle.IDTaller, detalle.IDBloque} {
		if ref == nil {
			continue
		}
		if err := checkID(*ref); err != nil {
			return nil, err
		}
	}
	if detalle.Cantidad == 0 {
		detalle.Cantidad = 1
	}
	if detalle.Cantidad < 1 {
		return nil, apperrors.Validation("cantidad must be at least 1")
	}
	if err := validatePrecios(detalle); err != nil {
		return nil, err
	}
	if detalle.Estado == "" {
		detalle.Estado = model.DetallePendiente
	}
	if _, err := parseDetalleEstado(string(detalle.Estado)); err != nil {
		return nil, err
	}
	if _, err := s.inscripciones.FindByID(ctx, detalle.IDInscripcion); err != nil {
		return nil, lookupErr(err, "inscripcion", detalle.IDInscripcion)
	}

	recurso, recursoID := seatHolder(detalle)
	holds := detalle.Estado.HoldsSeats()
	if holds {
		if err := s.capacity.Reserve(ctx, recurso, recursoID, detalle.Cantidad); err != nil {
			return nil, err
		}
	}

	detalle.ID = ""
	if err := s.repo.Create(ctx, detalle); err != nil {
		if holds {
			s.giveBack(ctx, recurso, recursoID, detalle.Cantidad)
		}
		return nil, writeErr(err, "detalle")
	}

	id := detalle.ID
	s.recorder.Record(ctx, model.AccionDetalleCreado, &id,
		fmt.Sprintf("%d seat(s) on %s %s", detalle.Cantidad, recurso, recursoID))
	return s.Get(ctx, id)
}

// giveBack releases seats as compensation and only logs a failure.
func (s *detalleService) giveBack(ctx context.Context, recurso Recurso, id string, n int) {
	if err := s.capacity.Release(ctx, recurso, id, n); err != nil {
		s.logger.Error("failed to release seats",
			zap.String("resource", string(recurso)), zap.String("id", id), zap.Int("seats", n), zap.Error(err))
	}
}

func (s *detalleService) Get(ctx context.Context, id string) (*model.DetalleInscripcion, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "detalle", id)
	}
	return d, nil
}

func (s *detalleService) List(ctx context.Context, f repository.DetalleFilter) ([]model.DetalleInscripcion, error) {
	for _, id := range []string{f.IDInscripcion, f.IDTaller, f.IDBloque} {
		if id == "" {
			continue
		}
		if err := checkID(id); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, f)
}

// apply copies the set fields onto d and reports whether any was set.
// Estado is handled separately since it moves seats.
func (p DetallePatch) apply(d *model.DetalleInscripcion) bool {
	changed := false
	if p.PrecioUnitario != nil {
		d.PrecioUnitario = *p.PrecioUnitario
		changed = true
	}
	if p.PrecioTotal != nil {
		d.PrecioTotal = *p.PrecioTotal
		changed = true
	}
	if p.IdentificadorPago != nil {
		d.IdentificadorPago = *p.IdentificadorPago
		changed = true
	}
	if p.Observaciones != nil {
		d.Observaciones = *p.Observaciones
		changed = true
	}
	return changed
}

// Update validates the whole patch before the state transition runs, so a
// rejected patch leaves the line item and its seats untouched.
func (s *detalleService) Update(ctx context.Context, id string, patch DetallePatch) (*model.DetalleInscripcion, error) {
	if patch.Estado != nil {
		if _, err := parseDetalleEstado(string(*patch.Estado)); err != nil {
			return nil, err
		}
	}
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	candidate := *d
	changed := patch.apply(&candidate)
	if err := validatePrecios(&candidate); err != nil {
		return nil, err
	}

	if patch.Estado != nil {
		if d, err = s.CambiarEstado(ctx, id, string(*patch.Estado)); err != nil {
			return nil, err
		}
	}
	if !changed {
		return d, nil
	}

	patch.apply(d)
	d.Inscripcion, d.Taller, d.Bloque = nil, nil, nil
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, writeErr(err, "detalle")
	}
	return s.Get(ctx, id)
}

// CambiarEstado moves the line item to estado. Cancelling releases its seats
// and leaving cancelado reserves them again; a reservation that fails leaves
// the state unchanged.
func (s *detalleService) CambiarEstado(ctx context.Context, id, estado string) (*model.DetalleInscripcion, error) {
	to, err := parseDetalleEstado(estado)
	if err != nil {
		return nil, err
	}
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	from := d.Estado
	if from == to {
		return d, nil
	}
	recurso, recursoID := seatHolder(d)

	switch {
	case from.HoldsSeats() && !to.HoldsSeats():
		if err := s.transition(ctx, id, from, to); err != nil {
			return nil, err
		}
		s.giveBack(ctx, recurso, recursoID, d.Cantidad)
	case !from.HoldsSeats() && to.HoldsSeats():
		if err := s.capacity.Reserve(ctx, recurso, recursoID, d.Cantidad); err != nil {
			return nil, err
		}
		if err := s.transition(ctx, id, from, to); err != nil {
			s.giveBack(ctx, recurso, recursoID, d.Cantidad)
			return nil, err
		}
	default:
		if err := s.transition(ctx, id, from, to); err != nil {
			return nil, err
		}
	}

	s.recorder.Record(ctx, model.AccionDetalleEstado, &id, fmt.Sprintf("%s -> %s", from, to))
	return s.Get(ctx, id)
}

func (s *detalleService) transition(ctx context.Context, id string, from, to model.DetalleEstado) error {
	ok, err := s.repo.UpdateEstado(ctx, id, from, to)
	if err != nil {
		return fmt.Errorf("update detalle estado: %w", err)
	}
	if !ok {
		return apperrors.Conflict("detalle %s changed state concurrently", id)
	}
	return nil
}

// Delete removes the line item and returns its seats if it still held them.
func (s *detalleService) Delete(ctx context.Context, id string) error {
	d, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id, d.Estado)
	if err != nil {
		return fmt.Errorf("delete detalle: %w", err)
	}
	if !deleted {
		return apperrors.Conflict("detalle %s changed state concurrently", id)
	}
	if d.Estado.HoldsSeats() {
		recurso, recursoID := seatHolder(d)
		s.giveBack(ctx, recurso, recursoID, d.Cantidad)
	}
	s.recorder.Record(ctx, model.AccionDetalleEliminado, &id, fmt.Sprintf("estado %s", d.Estado))
	return nil
}

// StatsByTaller groups the line items of a workshop by state and adds a
// grand total.
func (s *detalleService) StatsByTaller(ctx context.Context, idTaller string) (*model.DetalleStats, error) {
	if err := checkID(idTaller); err != nil {
		return nil, err
	}
	rows, err := s.repo.StatsByTaller(ctx, idTaller)
	if err != nil {
		return nil, fmt.Errorf("detalle stats: %w", err)
	}
	stats := &model.DetalleStats{
		IDTaller:   idTaller,
		PorEstado:  rows,
		TotalMonto: decimal.Zero,
	}
	if stats.PorEstado == nil {
		stats.PorEstado = []model.DetalleEstadoStat{}
	}
	for _, r := range rows {
		stats.TotalRegistros += r.Registros
		stats.TotalCantidad += r.Cantidad
		stats.TotalMonto = stats.TotalMonto.Add(r.Total)
	}
	return stats, nil
}
