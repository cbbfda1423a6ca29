package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "festivales/internal/errors"
	"festivales/internal/model"
	"festivales/internal/repository"
)

// PagoPatch carries the fields of a partial payment update.
type PagoPatch struct {
	Moneda         *model.Moneda
	MetodoPago     *string
	TransactionID  *string
	FechaPago      *time.Time
	ComprobanteURL *string
	Estado         *model.PagoEstado
}

// PagoService handles payments against line items.
type PagoService interface {
	Create(ctx context.Context, pago *model.Pago) (*model.Pago, error)
	Get(ctx context.Context, id string) (*model.Pago, error)
	List(ctx context.Context, f repository.PagoFilter) ([]model.Pago, error)
	Update(ctx context.Context, id string, patch PagoPatch) (*model.Pago, error)
	CambiarEstado(ctx context.Context, id, estado string) (*model.Pago, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*model.PagoStats, error)
}

type pagoService struct {
	repo     repository.PagoRepository
	detalles repository.DetalleRepository
	usuarios repository.UsuarioRepository
	recorder Recorder
}

// NewPagoService creates a new payment service.
func NewPagoService(
	repo repository.PagoRepository,
	detalles repository.DetalleRepository,
	usuarios repository.UsuarioRepository,
	recorder Recorder,
) PagoService {
	return &pagoService{repo: repo, detalles: detalles, usuarios: usuarios, recorder: recorder}
}

func parsePagoEstado(s string) (model.PagoEstado, error) {
	e := model.PagoEstado(s)
	if !e.Valid() {
		return "", fmt.Errorf("%w: %q is not a payment state", apperrors.ErrInvalidState, s)
	}
	return e, nil
}

func validatePago(p *model.Pago) error {
	if strings.TrimSpace(p.MetodoPago) == "" {
		return apperrors.Validation("metodo_pago is required")
	}
	if !p.Moneda.Valid() {
		return apperrors.Validation("moneda must be PEN or USD")
	}
	_, err := parsePagoEstado(string(p.Estado))
	return err
}

func (s *pagoService) Create(ctx context.Context, pago *model.Pago) (*model.Pago, error) {
	if err := checkID(pago.IDDetalle); err != nil {
		return nil, err
	}
	if err := checkID(pago.IDUsuarioPago); err != nil {
		return nil, err
	}
	if pago.Moneda == "" {
		pago.Moneda = model.MonedaPEN
	}
	if pago.Estado == "" {
		pago.Estado = model.PagoPendiente
	}
	if pago.FechaPago.IsZero() {
		pago.FechaPago = time.Now()
	}
	if err := validatePago(pago); err != nil {
		return nil, err
	}
	if _, err := s.detalles.FindByID(ctx, pago.IDDetalle); err != nil {
		return nil, lookupErr(err, "detalle", pago.IDDetalle)
	}
	if _, err := s.usuarios.FindByID(ctx, pago.IDUsuarioPago); err != nil {
		return nil, lookupErr(err, "usuario", pago.IDUsuarioPago)
	}
	pago.ID = ""
	if err := s.repo.Create(ctx, pago); err != nil {
		return nil, writeErr(err, "pago")
	}
	idDetalle := pago.IDDetalle
	s.recorder.Record(ctx, model.AccionPagoRegistrado, &idDetalle,
		fmt.Sprintf("pago %s via %s", pago.ID, pago.MetodoPago))
	return s.Get(ctx, pago.ID)
}

func (s *pagoService) Get(ctx context.Context, id string) (*model.Pago, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "pago", id)
	}
	return p, nil
}

func (s *pagoService) List(ctx context.Context, f repository.PagoFilter) ([]model.Pago, error) {
	for _, id := range []string{f.IDUsuario, f.IDDetalle} {
		if id == "" {
			continue
		}
		if err := checkID(id); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, f)
}

func (s *pagoService) Update(ctx context.Context, id string, patch PagoPatch) (*model.Pago, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	from := p.Estado
	if patch.Moneda != nil {
		p.Moneda = *patch.Moneda
	}
	if patch.MetodoPago != nil {
		p.MetodoPago = *patch.MetodoPago
	}
	if patch.TransactionID != nil {
		p.TransactionID = *patch.TransactionID
	}
	if patch.FechaPago != nil {
		p.FechaPago = *patch.FechaPago
	}
	if patch.ComprobanteURL != nil {
		p.ComprobanteURL = *patch.ComprobanteURL
	}
	if patch.Estado != nil {
		p.Estado = *patch.Estado
	}
	if err := validatePago(p); err != nil {
		return nil, err
	}
	p.Detalle, p.UsuarioPago = nil, nil
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, writeErr(err, "pago")
	}
	if p.Estado != from {
		idDetalle := p.IDDetalle
		s.recorder.Record(ctx, model.AccionPagoEstado, &idDetalle,
			fmt.Sprintf("pago %s: %s -> %s", p.ID, from, p.Estado))
	}
	return s.Get(ctx, id)
}

func (s *pagoService) CambiarEstado(ctx context.Context, id, estado string) (*model.Pago, error) {
	e, err := parsePagoEstado(estado)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, id, PagoPatch{Estado: &e})
}

func (s *pagoService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	return deleteErr(deleted, err, "pago", id)
}

// Stats counts payments per state with the amount of their line items.
func (s *pagoService) Stats(ctx context.Context) (*model.PagoStats, error) {
	rows, err := s.repo.StatsByEstado(ctx)
	if err != nil {
		return nil, fmt.Errorf("pago stats: %w", err)
	}
	stats := &model.PagoStats{PorEstado: rows, MontoTotal: decimal.Zero}
	if stats.PorEstado == nil {
		stats.PorEstado = []model.PagoEstadoStat{}
	}
	for _, r := range rows {
		stats.Total += r.Cantidad
		stats.MontoTotal = stats.MontoTotal.Add(r.Monto)
	}
	return stats, nil
}
