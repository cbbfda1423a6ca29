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

const proximosWindow = 7 * 24 * time.Hour

// TallerPatch carries the fields of a partial workshop update. Nil fields are
// left untouched.
type TallerPatch struct {
	Nombre         *string
	Descripcion    *string
	FechaInicio    *time.Time
	FechaFin       *time.Time
	Horario        *string
	Modalidad      *model.Modalidad
	Duracion       *int
	Precio         *decimal.Decimal
	CupoTotal      *int
	IDSubcategoria *string
	Estado         *model.Estado
	ImagenURL      *string
}

// TallerService handles workshop operations and their seat ledger.
type TallerService interface {
	Create(ctx context.Context, taller *model.Taller) (*model.Taller, error)
	Get(ctx context.Context, id string) (*model.Taller, error)
	List(ctx context.Context, f repository.TallerFilter) ([]model.Taller, error)
	ListActivos(ctx context.Context) ([]model.Taller, error)
	ListProximos(ctx context.Context) ([]model.Taller, error)
	Update(ctx context.Context, id string, patch TallerPatch) (*model.Taller, error)
	CambiarEstado(ctx context.Context, id, estado string) (*model.Taller, error)
	ReservarCupo(ctx context.Context, id string, n int) (*model.Taller, error)
	LiberarCupo(ctx context.Context, id string, n int) (*model.Taller, error)
	Delete(ctx context.Context, id string) error
}

type tallerService struct {
	repo          repository.TallerRepository
	subcategorias repository.SubcategoriaRepository
	capacity      CapacityService
	now           func() time.Time
}

// NewTallerService creates a new workshop service.
func NewTallerService(repo repository.TallerRepository, subcategorias repository.SubcategoriaRepository, capacity CapacityService) TallerService {
	return &tallerService{
		repo:          repo,
		subcategorias: subcategorias,
		capacity:      capacity,
		now:           time.Now,
	}
}

func validateTaller(t *model.Taller) error {
	if strings.TrimSpace(t.Nombre) == "" {
		return apperrors.Validation("nombre is required")
	}
	if strings.TrimSpace(t.Horario) == "" {
		return apperrors.Validation("horario is required")
	}
	if err := model.ValidateSchedule(t.FechaInicio, t.FechaFin); err != nil {
		return err
	}
	if !t.Modalidad.Valid() {
		return apperrors.Validation("modalidad must be presencial, virtual or hibrido")
	}
	if t.Duracion < 1 {
		return apperrors.Validation("duracion must be at least 1")
	}
	if t.Precio.IsNegative() {
		return apperrors.Validation("precio must not be negative")
	}
	if !t.Estado.Valid() {
		return fmt.Errorf("%w: %q is not activo or inactivo", apperrors.ErrInvalidState, t.Estado)
	}
	return model.ValidateCupoTotal(t.CupoTotal)
}

func (s *tallerService) checkSubcategoria(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if _, err := s.subcategorias.FindByID(ctx, id); err != nil {
		return lookupErr(err, "subcategoria", id)
	}
	return nil
}

// Create stores a workshop with every seat available.
func (s *tallerService) Create(ctx context.Context, taller *model.Taller) (*model.Taller, error) {
	if taller.Estado == "" {
		taller.Estado = model.EstadoActivo
	}
	if err := validateTaller(taller); err != nil {
		return nil, err
	}
	if err := s.checkSubcategoria(ctx, taller.IDSubcategoria); err != nil {
		return nil, err
	}
	taller.ID = ""
	taller.CupoDisponible = taller.CupoTotal
	if err := s.repo.Create(ctx, taller); err != nil {
		return nil, writeErr(err, "taller")
	}
	return s.Get(ctx, taller.ID)
}

func (s *tallerService) Get(ctx context.Context, id string) (*model.Taller, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "taller", id)
	}
	return t, nil
}

func (s *tallerService) List(ctx context.Context, f repository.TallerFilter) ([]model.Taller, error) {
	for _, id := range []string{f.IDCategoria, f.IDSubcategoria} {
		if id == "" {
			continue
		}
		if err := checkID(id); err != nil {
			return nil, err
		}
	}
	if f.Estado != "" && !f.Estado.Valid() {
		return nil, fmt.Errorf("%w: %q is not activo or inactivo", apperrors.ErrInvalidState, f.Estado)
	}
	return s.repo.List(ctx, f)
}

// ListActivos returns active workshops that have not started yet.
func (s *tallerService) ListActivos(ctx context.Context) ([]model.Taller, error) {
	now := s.now()
	return s.repo.List(ctx, repository.TallerFilter{
		Estado:      model.EstadoActivo,
		InicioDesde: &now,
	})
}

// ListProximos returns active workshops starting within a week that still
// have seats.
func (s *tallerService) ListProximos(ctx context.Context) ([]model.Taller, error) {
	now := s.now()
	until := now.Add(proximosWindow)
	return s.repo.List(ctx, repository.TallerFilter{
		Estado:      model.EstadoActivo,
		InicioDesde: &now,
		InicioHasta: &until,
		ConCupo:     true,
	})
}

// Update applies patch under a row lock. A new cupo_total keeps the number
// of seats already taken.
func (s *tallerService) Update(ctx context.Context, id string, patch TallerPatch) (*model.Taller, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if patch.IDSubcategoria != nil {
		if err := s.checkSubcategoria(ctx, *patch.IDSubcategoria); err != nil {
			return nil, err
		}
	}

	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.TallerRepository) error {
		t, err := tx.FindByIDForUpdate(ctx, id)
		if err != nil {
			return lookupErr(err, "taller", id)
		}
		patch.apply(t)
		if err := validateTaller(t); err != nil {
			return err
		}
		if err := tx.Update(ctx, t); err != nil {
			return writeErr(err, "taller")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (p TallerPatch) apply(t *model.Taller) {
	if p.Nombre != nil {
		t.Nombre = *p.Nombre
	}
	if p.Descripcion != nil {
		t.Descripcion = *p.Descripcion
	}
	if p.FechaInicio != nil {
		t.FechaInicio = *p.FechaInicio
	}
	if p.FechaFin != nil {
		t.FechaFin = *p.FechaFin
	}
	if p.Horario != nil {
		t.Horario = *p.Horario
	}
	if p.Modalidad != nil {
		t.Modalidad = *p.Modalidad
	}
	if p.Duracion != nil {
		t.Duracion = *p.Duracion
	}
	if p.Precio != nil {
		t.Precio = *p.Precio
	}
	if p.IDSubcategoria != nil {
		t.IDSubcategoria = *p.IDSubcategoria
	}
	if p.Estado != nil {
		t.Estado = *p.Estado
	}
	if p.ImagenURL != nil {
		t.ImagenURL = *p.ImagenURL
	}
	if p.CupoTotal != nil {
		t.CupoDisponible = model.ResizeAvailable(t.CupoDisponible, t.CupoTotal, *p.CupoTotal)
		t.CupoTotal = *p.CupoTotal
	}
}

func (s *tallerService) CambiarEstado(ctx context.Context, id, estado string) (*model.Taller, error) {
	e, err := parseEstado(estado)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, id, TallerPatch{Estado: &e})
}

func (s *tallerService) ReservarCupo(ctx context.Context, id string, n int) (*model.Taller, error) {
	if err := s.capacity.Reserve(ctx, RecursoTaller, id, n); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *tallerService) LiberarCupo(ctx context.Context, id string, n int) (*model.Taller, error) {
	if err := s.capacity.Release(ctx, RecursoTaller, id, n); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the workshop. Its bloques and line items are kept.
func (s *tallerService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	return deleteErr(deleted, err, "taller", id)
}
