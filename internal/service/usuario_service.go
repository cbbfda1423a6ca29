package service

import (
	"context"
	"strings"

	apperrors "festivales/internal/errors"
	"festivales/internal/model"
	"festivales/internal/repository"
)

// UsuarioPatch carries the fields of a partial user update. Contrasena is
// the new plaintext password.
type UsuarioPatch struct {
	Nombre     *string
	Apellido   *string
	DNI        *string
	Email      *string
	Telefono   *string
	Direccion  *string
	Contrasena *string
	Estado     *model.Estado
	IDRol      *string
}

// UsuarioService handles user administration.
type UsuarioService interface {
	Create(ctx context.Context, usuario *model.Usuario, password string) (*model.Usuario, error)
	Get(ctx context.Context, id string) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	Update(ctx context.Context, id string, patch UsuarioPatch) (*model.Usuario, error)
	Delete(ctx context.Context, id string) error
}

type usuarioService struct {
	repo        repository.UsuarioRepository
	roles       repository.RolRepository
	credentials credentialStore
}

// NewUsuarioService creates a new user service hashing with bcryptCost.
func NewUsuarioService(repo repository.UsuarioRepository, roles repository.RolRepository, bcryptCost int) UsuarioService {
	return &usuarioService{
		repo:        repo,
		roles:       roles,
		credentials: newCredentialStore(repo, bcryptCost),
	}
}

func (s *usuarioService) checkRol(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if _, err := s.roles.FindByID(ctx, id); err != nil {
		return lookupErr(err, "rol", id)
	}
	return nil
}

func (s *usuarioService) Create(ctx context.Context, usuario *model.Usuario, password string) (*model.Usuario, error) {
	if err := s.checkRol(ctx, usuario.IDRol); err != nil {
		return nil, err
	}
	if err := s.credentials.create(ctx, usuario, password); err != nil {
		return nil, err
	}
	return s.Get(ctx, usuario.ID)
}

func (s *usuarioService) Get(ctx context.Context, id string) (*model.Usuario, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "usuario", id)
	}
	return u, nil
}

func (s *usuarioService) List(ctx context.Context) ([]model.Usuario, error) {
	return s.repo.List(ctx)
}

// Update applies patch. The stored hash only changes when a new password is
// supplied.
func (s *usuarioService) Update(ctx context.Context, id string, patch UsuarioPatch) (*model.Usuario, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var email, dni string
	if patch.Email != nil {
		email = normalizeEmail(*patch.Email)
		if email == "" {
			return nil, apperrors.Validation("email must not be empty")
		}
	}
	if patch.DNI != nil {
		dni = strings.TrimSpace(*patch.DNI)
		if dni == "" {
			return nil, apperrors.Validation("dni must not be empty")
		}
	}
	if err := s.credentials.ensureUnique(ctx, email, dni, u.ID); err != nil {
		return nil, err
	}
	if patch.IDRol != nil {
		if err := s.checkRol(ctx, *patch.IDRol); err != nil {
			return nil, err
		}
		u.IDRol = *patch.IDRol
	}
	if patch.Estado != nil {
		if _, err := parseEstado(string(*patch.Estado)); err != nil {
			return nil, err
		}
		u.Estado = *patch.Estado
	}
	if patch.Contrasena != nil {
		if *patch.Contrasena == "" {
			return nil, apperrors.Validation("contrasena must not be empty")
		}
		hashed, err := s.credentials.hash(*patch.Contrasena)
		if err != nil {
			return nil, err
		}
		u.Contrasena = hashed
	}
	if email != "" {
		u.Email = email
	}
	if dni != "" {
		u.DNI = dni
	}
	if patch.Nombre != nil {
		u.Nombre = *patch.Nombre
	}
	if patch.Apellido != nil {
		u.Apellido = *patch.Apellido
	}
	if patch.Telefono != nil {
		u.Telefono = *patch.Telefono
	}
	if patch.Direccion != nil {
		u.Direccion = *patch.Direccion
	}

	u.Rol = nil
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, writeErr(err, "usuario")
	}
	return s.Get(ctx, id)
}

// Delete soft deletes the user.
func (s *usuarioService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	deleted, err := s.repo.SoftDelete(ctx, id)
	return deleteErr(deleted, err, "usuario", id)
}
