package service

import (
	"context"
	"strings"
	"time"

	"festivales/internal/cache"
	apperrors "festivales/internal/errors"
	"festivales/internal/model"
	"festivales/internal/repository"
)

const rolCacheTTL = 10 * time.Minute

// RolPatch carries the fields of a partial role update.
type RolPatch struct {
	Nombre      *string
	Descripcion *string
	Permisos    *[]string
	Estado      *bool
}

// RolService handles roles. Lookups by name go through the cache.
type RolService interface {
	Create(ctx context.Context, rol *model.Rol) (*model.Rol, error)
	Get(ctx context.Context, id string) (*model.Rol, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Rol, error)
	List(ctx context.Context) ([]model.Rol, error)
	Update(ctx context.Context, id string, patch RolPatch) (*model.Rol, error)
	Delete(ctx context.Context, id string) error
}

type rolService struct {
	repo  repository.RolRepository
	cache *cache.Client
}

// NewRolService creates a new role service. cache may be nil.
func NewRolService(repo repository.RolRepository, cache *cache.Client) RolService {
	return &rolService{repo: repo, cache: cache}
}

func rolCacheKey(nombre string) string {
	return "rol:nombre:" + nombre
}

func (s *rolService) Create(ctx context.Context, rol *model.Rol) (*model.Rol, error) {
	rol.Nombre = strings.TrimSpace(rol.Nombre)
	if rol.Nombre == "" {
		return nil, apperrors.Validation("nombre is required")
	}
	if rol.Permisos == nil {
		rol.Permisos = []string{}
	}
	_, err := s.repo.FindByNombre(ctx, rol.Nombre)
	switch {
	case err == nil:
		return nil, apperrors.Conflict("rol %s already exists", rol.Nombre)
	case !repository.IsNotFound(err):
		return nil, lookupErr(err, "rol", rol.Nombre)
	}
	rol.ID = ""
	if err := s.repo.Create(ctx, rol); err != nil {
		return nil, writeErr(err, "rol")
	}
	return rol, nil
}

func (s *rolService) Get(ctx context.Context, id string) (*model.Rol, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	rol, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "rol", id)
	}
	return rol, nil
}

func (s *rolService) FindByNombre(ctx context.Context, nombre string) (*model.Rol, error) {
	var cached model.Rol
	if cache.GetJSON(ctx, s.cache, rolCacheKey(nombre), &cached) {
		return &cached, nil
	}
	rol, err := s.repo.FindByNombre(ctx, nombre)
	if err != nil {
		return nil, lookupErr(err, "rol", nombre)
	}
	_ = cache.SetJSON(ctx, s.cache, rolCacheKey(nombre), rol, rolCacheTTL)
	return rol, nil
}

func (s *rolService) List(ctx context.Context) ([]model.Rol, error) {
	return s.repo.List(ctx)
}

func (s *rolService) Update(ctx context.Context, id string, patch RolPatch) (*model.Rol, error) {
	rol, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	oldNombre := rol.Nombre
	if patch.Nombre != nil {
		nombre := strings.TrimSpace(*patch.Nombre)
		if nombre == "" {
			return nil, apperrors.Validation("nombre must not be empty")
		}
		if nombre != oldNombre {
			if _, err := s.repo.FindByNombre(ctx, nombre); err == nil {
				return nil, apperrors.Conflict("rol %s already exists", nombre)
			}
		}
		rol.Nombre = nombre
	}
	if patch.Descripcion != nil {
		rol.Descripcion = *patch.Descripcion
	}
	if patch.Permisos != nil {
		rol.Permisos = *patch.Permisos
	}
	if patch.Estado != nil {
		rol.Estado = *patch.Estado
	}
	if err := s.repo.Update(ctx, rol); err != nil {
		return nil, writeErr(err, "rol")
	}
	_ = s.cache.Delete(ctx, rolCacheKey(oldNombre), rolCacheKey(rol.Nombre))
	return rol, nil
}

func (s *rolService) Delete(ctx context.Context, id string) error {
	rol, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err := deleteErr(deleted, err, "rol", id); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, rolCacheKey(rol.Nombre))
	return nil
}
