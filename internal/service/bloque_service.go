package service

import (
	"context"
	"strings"
	"time"

	apperrors "festivales/internal/errors"
	"festivales/internal/model"
	"festivales/internal/repository"
)

// BloquePatch carries the fields of a partial block update.
type BloquePatch struct {
	Nombre      *string
	Descripcion *string
	FechaInicio *time.Time
	FechaFin    *time.Time
	Horario     *string
	IDTaller    *string
	CupoTotal   *int
	Estado      *model.Estado
}

// BloqueService handles workshop time blocks and their seats.
type BloqueService interface {
	Create(ctx context.Context, bloque *model.Bloque) (*model.Bloque, error)
	Get(ctx context.Context, id string) (*model.Bloque, error)
	List(ctx context.Context, idTaller string) ([]model.Bloque, error)
	Update(ctx context.Context, id string, patch BloquePatch) (*model.Bloque, error)
	CambiarEstado(ctx context.Context, id, estado string) (*model.Bloque, error)
	ReservarCupo(ctx context.Context, id string, n int) (*model.Bloque, error)
	LiberarCupo(ctx context.Context, id string, n int) (*model.Bloque, error)
	Delete(ctx context.Context, id string) error
}

type bloqueService struct {
	repo     repository.BloqueRepository
	talleres repository.TallerRepository
	capacity CapacityService
}

// NewBloqueService creates a new block service.
func NewBloqueService(repo repository.BloqueRepository, talleres repository.TallerRepository, capacity CapacityService) BloqueService {
	return &bloqueService{repo: repo, talleres: talleres, capacity: capacity}
}

func validateBloque(b *model.Bloque) error {
	if strings.TrimSpace(b.Nombre) == "" {
		return apperrors.Validation("nombre is required")
	}
	if strings.TrimSpace(b.Horario) == "" {
		return apperrors.Validation("horario is required")
	}
	if err := model.ValidateSchedule(b.FechaInicio, b.FechaFin); err != nil {
		return err
	}
	if _, err := parseEstado(string(b.Estado)); err != nil {
		return err
	}
	return model.ValidateCupoTotal(b.CupoTotal)
}

func (s *bloqueService) checkTaller(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if _, err := s.talleres.FindByID(ctx, id); err != nil {
		return lookupErr(err, "taller", id)
	}
	return nil
}

func (s *bloqueService) Create(ctx context.Context, bloque *model.Bloque) (*model.Bloque, error) {
	if bloque.Estado == "" {
		bloque.Estado = model.EstadoActivo
	}
	if err := validateBloque(bloque); err != nil {
		return nil, err
	}
	if err := s.checkTaller(ctx, bloque.IDTaller); err != nil {
		return nil, err
	}
	bloque.ID = ""
	bloque.CupoDisponible = bloque.CupoTotal
	if err := s.repo.Create(ctx, bloque); err != nil {
		return nil, writeErr(err, "bloque")
	}
	return s.Get(ctx, bloque.ID)
}

func (s *bloqueService) Get(ctx context.Context, id string) (*model.Bloque, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "bloque", id)
	}
	return b, nil
}

// List returns every block, or the blocks of one workshop when idTaller is set.
func (s *bloqueService) List(ctx context.Context, idTaller string) ([]model.Bloque, error) {
	if idTaller != "" {
		if err := checkID(idTaller); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, idTaller)
}

func (s *bloqueService) Update(ctx context.Context, id string, patch BloquePatch) (*model.Bloque, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if patch.IDTaller != nil {
		if err := s.checkTaller(ctx, *patch.IDTaller); err != nil {
			return nil, err
		}
	}

	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.BloqueRepository) error {
		b, err := tx.FindByIDForUpdate(ctx, id)
		if err != nil {
			return lookupErr(err, "bloque", id)
		}
		patch.apply(b)
		if err := validateBloque(b); err != nil {
			return err
		}
		if err := tx.Update(ctx, b); err != nil {
			return writeErr(err, "bloque")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (p BloquePatch) apply(b *model.Bloque) {
	if p.Nombre != nil {
		b.Nombre = *p.Nombre
	}
	if p.Descripcion != nil {
		b.Descripcion = *p.Descripcion
	}
	if p.FechaInicio != nil {
		b.FechaInicio = *p.FechaInicio
	}
	if p.FechaFin != nil {
		b.FechaFin = *p.FechaFin
	}
	if p.Horario != nil {
		b.Horario = *p.Horario
	}
	if p.IDTaller != nil {
		b.IDTaller = *p.IDTaller
	}
	if p.Estado != nil {
		b.Estado = *p.Estado
	}
	if p.CupoTotal != nil {
		b.CupoDisponible = model.ResizeAvailable(b.CupoDisponible, b.CupoTotal, *p.CupoTotal)
		b.CupoTotal = *p.CupoTotal
	}
}

func (s *bloqueService) CambiarEstado(ctx context.Context, id, estado string) (*model.Bloque, error) {
	e, err := parseEstado(estado)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, id, BloquePatch{Estado: &e})
}

func (s *bloqueService) ReservarCupo(ctx context.Context, id string, n int) (*model.Bloque, error) {
	if err := s.capacity.Reserve(ctx, RecursoBloque, id, n); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *bloqueService) LiberarCupo(ctx context.Context, id string, n int) (*model.Bloque, error) {
	if err := s.capacity.Release(ctx, RecursoBloque, id, n); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *bloqueService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	return deleteErr(deleted, err, "bloque", id)
}
