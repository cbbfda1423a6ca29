package service

import (
	"context"
	"strings"
	"time"

	apperrors "festivales/internal/errors"
	"festivales/internal/model"
	"festivales/internal/repository"
)

// ServicioPatch carries the fields of a partial service update.
type ServicioPatch struct {
	Titulo         *string
	Descripcion    *string
	IDSubcategoria *string
	Estado         *model.Estado
	ImagenURL      *string
}

// ServicioService handles catalog services.
type ServicioService interface {
	Create(ctx context.Context, servicio *model.Servicio) (*model.Servicio, error)
	Get(ctx context.Context, id string) (*model.Servicio, error)
	List(ctx context.Context, f repository.ServicioFilter) ([]model.Servicio, error)
	Update(ctx context.Context, id string, patch ServicioPatch) (*model.Servicio, error)
	CambiarEstado(ctx context.Context, id, estado string) (*model.Servicio, error)
	Delete(ctx context.Context, id string) error
}

type servicioService struct {
	repo          repository.ServicioRepository
	subcategorias repository.SubcategoriaRepository
}

// NewServicioService creates a new catalog service service.
func NewServicioService(repo repository.ServicioRepository, subcategorias repository.SubcategoriaRepository) ServicioService {
	return &servicioService{repo: repo, subcategorias: subcategorias}
}

func (s *servicioService) checkSubcategoria(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if _, err := s.subcategorias.FindByID(ctx, id); err != nil {
		return lookupErr(err, "subcategoria", id)
	}
	return nil
}

func (s *servicioService) Create(ctx context.Context, servicio *model.Servicio) (*model.Servicio, error) {
	if strings.TrimSpace(servicio.Titulo) == "" {
		return nil, apperrors.Validation("titulo is required")
	}
	if servicio.Estado == "" {
		servicio.Estado = model.EstadoActivo
	}
	if _, err := parseEstado(string(servicio.Estado)); err != nil {
		return nil, err
	}
	if err := s.checkSubcategoria(ctx, servicio.IDSubcategoria); err != nil {
		return nil, err
	}
	servicio.ID = ""
	if err := s.repo.Create(ctx, servicio); err != nil {
		return nil, writeErr(err, "servicio")
	}
	return s.Get(ctx, servicio.ID)
}

func (s *servicioService) Get(ctx context.Context, id string) (*model.Servicio, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	sv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "servicio", id)
	}
	return sv, nil
}

func (s *servicioService) List(ctx context.Context, f repository.ServicioFilter) ([]model.Servicio, error) {
	for _, id := range []string{f.IDCategoria, f.IDSubcategoria} {
		if id == "" {
			continue
		}
		if err := checkID(id); err != nil {
			return nil, err
		}
	}
	if f.Estado != "" {
		if _, err := parseEstado(string(f.Estado)); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, f)
}

func (s *servicioService) Update(ctx context.Context, id string, patch ServicioPatch) (*model.Servicio, error) {
	sv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IDSubcategoria != nil {
		if err := s.checkSubcategoria(ctx, *patch.IDSubcategoria); err != nil {
			return nil, err
		}
		sv.IDSubcategoria = *patch.IDSubcategoria
	}
	if patch.Titulo != nil {
		if strings.TrimSpace(*patch.Titulo) == "" {
			return nil, apperrors.Validation("titulo must not be empty")
		}
		sv.Titulo = *patch.Titulo
	}
	if patch.Descripcion != nil {
		sv.Descripcion = *patch.Descripcion
	}
	if patch.ImagenURL != nil {
		sv.ImagenURL = *patch.ImagenURL
	}
	if patch.Estado != nil {
		if _, err := parseEstado(string(*patch.Estado)); err != nil {
			return nil, err
		}
		sv.Estado = *patch.Estado
	}
	sv.Subcategoria = nil
	if err := s.repo.Update(ctx, sv); err != nil {
		return nil, writeErr(err, "servicio")
	}
	return s.Get(ctx, id)
}

func (s *servicioService) CambiarEstado(ctx context.Context, id, estado string) (*model.Servicio, error) {
	e, err := parseEstado(estado)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, id, ServicioPatch{Estado: &e})
}

func (s *servicioService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	return deleteErr(deleted, err, "servicio", id)
}

// FestivalPatch carries the fields of a partial festival update.
type FestivalPatch struct {
	Titulo      *string
	Descripcion *string
	FechaEvento *time.Time
	Lugar       *string
	Organizador *string
	Tipo        *string
	IDCategoria *string
	Estado      *model.Estado
	ImagenURL   *string
}

// FestivalService handles festivals and award ceremonies.
type FestivalService interface {
	Create(ctx context.Context, festival *model.Festival) (*model.Festival, error)
	Get(ctx context.Context, id string) (*model.Festival, error)
	List(ctx context.Context, f repository.FestivalFilter) ([]model.Festival, error)
	ListProximos(ctx context.Context) ([]model.Festival, error)
	ListByTipo(ctx context.Context, tipo string) ([]model.Festival, error)
	Update(ctx context.Context, id string, patch FestivalPatch) (*model.Festival, error)
	CambiarEstado(ctx context.Context, id, estado string) (*model.Festival, error)
	Delete(ctx context.Context, id string) error
}

type festivalService struct {
	repo       repository.FestivalRepository
	categorias repository.CategoriaRepository
	now        func() time.Time
}

// NewFestivalService creates a new festival service.
func NewFestivalService(repo repository.FestivalRepository, categorias repository.CategoriaRepository) FestivalService {
	return &festivalService{repo: repo, categorias: categorias, now: time.Now}
}

func (s *festivalService) checkCategoria(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if _, err := s.categorias.FindByID(ctx, id); err != nil {
		return lookupErr(err, "categoria", id)
	}
	return nil
}

func validateFestival(f *model.Festival) error {
	switch {
	case strings.TrimSpace(f.Titulo) == "":
		return apperrors.Validation("titulo is required")
	case f.FechaEvento.IsZero():
		return apperrors.Validation("fecha_evento is required")
	case strings.TrimSpace(f.Lugar) == "":
		return apperrors.Validation("lugar is required")
	case strings.TrimSpace(f.Organizador) == "":
		return apperrors.Validation("organizador is required")
	case strings.TrimSpace(f.Tipo) == "":
		return apperrors.Validation("tipo is required")
	}
	_, err := parseEstado(string(f.Estado))
	return err
}

func (s *festivalService) Create(ctx context.Context, festival *model.Festival) (*model.Festival, error) {
	if festival.Estado == "" {
		festival.Estado = model.EstadoActivo
	}
	if err := validateFestival(festival); err != nil {
		return nil, err
	}
	if err := s.checkCategoria(ctx, festival.IDCategoria); err != nil {
		return nil, err
	}
	festival.ID = ""
	if err := s.repo.Create(ctx, festival); err != nil {
		return nil, writeErr(err, "festival")
	}
	return s.Get(ctx, festival.ID)
}

func (s *festivalService) Get(ctx context.Context, id string) (*model.Festival, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "festival", id)
	}
	return f, nil
}

func (s *festivalService) List(ctx context.Context, f repository.FestivalFilter) ([]model.Festival, error) {
	if f.IDCategoria != "" {
		if err := checkID(f.IDCategoria); err != nil {
			return nil, err
		}
	}
	return s.repo.List(ctx, f)
}

// ListProximos returns active festivals that have not happened yet.
func (s *festivalService) ListProximos(ctx context.Context) ([]model.Festival, error) {
	now := s.now()
	return s.repo.List(ctx, repository.FestivalFilter{Estado: model.EstadoActivo, EventoDesde: &now})
}

// ListByTipo matches tipo as a case-insensitive substring among active festivals.
func (s *festivalService) ListByTipo(ctx context.Context, tipo string) ([]model.Festival, error) {
	tipo = strings.TrimSpace(tipo)
	if tipo == "" {
		return nil, apperrors.Validation("tipo is required")
	}
	return s.repo.List(ctx, repository.FestivalFilter{Estado: model.EstadoActivo, TipoContiene: tipo})
}

func (s *festivalService) Update(ctx context.Context, id string, patch FestivalPatch) (*model.Festival, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IDCategoria != nil {
		if err := s.checkCategoria(ctx, *patch.IDCategoria); err != nil {
			return nil, err
		}
		f.IDCategoria = *patch.IDCategoria
	}
	if patch.Titulo != nil {
		f.Titulo = *patch.Titulo
	}
	if patch.Descripcion != nil {
		f.Descripcion = *patch.Descripcion
	}
	if patch.FechaEvento != nil {
		f.FechaEvento = *patch.FechaEvento
	}
	if patch.Lugar != nil {
		f.Lugar = *patch.Lugar
	}
	if patch.Organizador != nil {
		f.Organizador = *patch.Organizador
	}
	if patch.Tipo != nil {
		f.Tipo = *patch.Tipo
	}
	if patch.Estado != nil {
		f.Estado = *patch.Estado
	}
	if patch.ImagenURL != nil {
		f.ImagenURL = *patch.ImagenURL
	}
	if err := validateFestival(f); err != nil {
		return nil, err
	}
	f.Categoria = nil
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, writeErr(err, "festival")
	}
	return s.Get(ctx, id)
}

func (s *festivalService) CambiarEstado(ctx context.Context, id, estado string) (*model.Festival, error) {
	e, err := parseEstado(estado)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, id, FestivalPatch{Estado: &e})
}

func (s *festivalService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	return deleteErr(deleted, err, "festival", id)
}
