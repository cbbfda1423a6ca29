package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	apperrors "festivales/internal/errors"
	"festivales/internal/model"
	"festivales/internal/repository"
)

// InscripcionPatch carries the fields of a partial registration update.
type InscripcionPatch struct {
	FechaInscripcion *time.Time
	Total            *decimal.Decimal
	Moneda           *model.Moneda
	Estado           *model.InscripcionEstado
}

// InscripcionService handles registrations and their statistics.
type InscripcionService interface {
	Create(ctx context.Context, inscripcion *model.Inscripcion) (*model.Inscripcion, error)
	Get(ctx context.Context, id string) (*model.Inscripcion, error)
	List(ctx context.Context, f repository.InscripcionFilter) ([]model.Inscripcion, error)
	ListByEstado(ctx context.Context, estado string) ([]model.Inscripcion, error)
	Update(ctx context.Context, id string, patch InscripcionPatch) (*model.Inscripcion, error)
	CambiarEstado(ctx context.Context, id, estado string) (*model.Inscripcion, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*model.InscripcionStats, error)
}

type inscripcionService struct {
	repo     repository.InscripcionRepository
	usuarios repository.UsuarioRepository
}

// NewInscripcionService creates a new registration service.
func NewInscripcionService(repo repository.InscripcionRepository, usuarios repository.UsuarioRepository) InscripcionService {
	return &inscripcionService{repo: repo, usuarios: usuarios}
}

func parseInscripcionEstado(s string) (model.InscripcionEstado, error) {
	e := model.InscripcionEstado(s)
	if !e.Valid() {
		return "", fmt.Errorf("%w: %q is not a registration state", apperrors.ErrInvalidState, s)
	}
	return e, nil
}

func validateInscripcion(i *model.Inscripcion) error {
	if i.Total.IsNegative() {
		return apperrors.Validation("total must not be negative")
	}
	if !i.Moneda.Valid() {
		return apperrors.Validation("moneda must be PEN or USD")
	}
	_, err := parseInscripcionEstado(string(i.Estado))
	return err
}

func (s *inscripcionService) Create(ctx context.Context, inscripcion *model.Inscripcion) (*model.Inscripcion, error) {
	if err := checkID(inscripcion.IDUsuario); err != nil {
		return nil, err
	}
	if inscripcion.Moneda == "" {
		inscripcion.Moneda = model.MonedaPEN
	}
	if inscripcion.Estado == "" {
		inscripcion.Estado = model.InscripcionPendiente
	}
	if inscripcion.FechaInscripcion.IsZero() {
		inscripcion.FechaInscripcion = time.Now()
	}
	if err := validateInscripcion(inscripcion); err != nil {
		return nil, err
	}
	if _, err := s.usuarios.FindByID(ctx, inscripcion.IDUsuario); err != nil {
		return nil, lookupErr(err, "usuario", inscripcion.IDUsuario)
	}
	inscripcion.ID = ""
	if err := s.repo.Create(ctx, inscripcion); err != nil {
		return nil, writeErr(err, "inscripcion")
	}
	return s.Get(ctx, inscripcion.ID)
}

func (s *inscripcionService) Get(ctx context.Context, id string) (*model.Inscripcion, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "inscripcion", id)
	}
	return i, nil
}

func (s *inscripcionService) List(ctx context.Context, f repository.InscripcionFilter) ([]model.Inscripcion, error) {
	if f.IDUsuario != "" {
		if err := checkID(f.IDUsuario); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, f)
}

func (s *inscripcionService) ListByEstado(ctx context.Context, estado string) ([]model.Inscripcion, error) {
	e, err := parseInscripcionEstado(estado)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, repository.InscripcionFilter{Estado: e})
}

func (s *inscripcionService) Update(ctx context.Context, id string, patch InscripcionPatch) (*model.Inscripcion, error) {
	i, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.FechaInscripcion != nil {
		i.FechaInscripcion = *patch.FechaInscripcion
	}
	if patch.Total != nil {
		i.Total = *patch.Total
	}
	if patch.Moneda != nil {
		i.Moneda = *patch.Moneda
	}
	if patch.Estado != nil {
		i.Estado = *patch.Estado
	}
	if err := validateInscripcion(i); err != nil {
		return nil, err
	}
	i.Usuario = nil
	if err := s.repo.Update(ctx, i); err != nil {
		return nil, writeErr(err, "inscripcion")
	}
	return s.Get(ctx, id)
}

func (s *inscripcionService) CambiarEstado(ctx context.Context, id, estado string) (*model.Inscripcion, error) {
	e, err := parseInscripcionEstado(estado)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, id, InscripcionPatch{Estado: &e})
}

// Delete removes the registration only. Its line items and payments stay.
func (s *inscripcionService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	return deleteErr(deleted, err, "inscripcion", id)
}

// Stats runs the three aggregate queries concurrently.
func (s *inscripcionService) Stats(ctx context.Context) (*model.InscripcionStats, error) {
	var stats model.InscripcionStats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repo.Count(ctx)
		stats.Total = n
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.CountByEstado(ctx)
		stats.PorEstado = rows
		return err
	})
	g.Go(func() error {
		sum, err := s.repo.SumTotal(ctx, model.InscripcionPagado)
		stats.IngresosTotales = sum
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("inscripcion stats: %w", err)
	}
	if stats.PorEstado == nil {
		stats.PorEstado = []model.EstadoCount{}
	}
	return &stats, nil
}
