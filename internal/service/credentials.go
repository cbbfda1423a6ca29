package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "festivales/internal/errors"
	"festivales/internal/model"
	"festivales/internal/repository"
)

const (
	// DefaultBcryptCost is the hashing cost used when none is configured.
	DefaultBcryptCost = 12
	// MinBcryptCost is the lowest accepted hashing cost.
	MinBcryptCost = 10
)

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// credentialStore owns password hashing and the email/dni uniqueness rules.
// It is shared by the auth and user services.
type credentialStore struct {
	usuarios repository.UsuarioRepository
	cost     int
}

func newCredentialStore(usuarios repository.UsuarioRepository, cost int) credentialStore {
	if cost < MinBcryptCost {
		cost = MinBcryptCost
	}
	return credentialStore{usuarios: usuarios, cost: cost}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (c credentialStore) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// ensureUnique rejects an email or dni already held by another live user.
// selfID is ignored so a user can keep their own values on update.
func (c credentialStore) ensureUnique(ctx context.Context, email, dni, selfID string) error {
	if email != "" {
		u, err := c.usuarios.FindByEmail(ctx, email)
		switch {
		case err == nil && u.ID != selfID:
			return apperrors.Conflict("email %s is already registered", email)
		case err != nil && !repository.IsNotFound(err):
			return fmt.Errorf("check email: %w", err)
		}
	}
	if dni != "" {
		u, err := c.usuarios.FindByDNI(ctx, dni)
		switch {
		case err == nil && u.ID != selfID:
			return apperrors.Conflict("dni %s is already registered", dni)
		case err != nil && !repository.IsNotFound(err):
			return fmt.Errorf("check dni: %w", err)
		}
	}
	return nil
}

// create validates, hashes and stores a new user.
func (c credentialStore) create(ctx context.Context, u *model.Usuario, password string) error {
	u.Email = normalizeEmail(u.Email)
	u.DNI = strings.TrimSpace(u.DNI)
	switch {
	case strings.TrimSpace(u.Nombre) == "":
		return apperrors.Validation("nombre is required")
	case strings.TrimSpace(u.Apellido) == "":
		return apperrors.Validation("apellido is required")
	case u.Email == "":
		return apperrors.Validation("email is required")
	case u.DNI == "":
		return apperrors.Validation("dni is required")
	case password == "":
		return apperrors.Validation("contrasena is required")
	}
	if u.Estado == "" {
		u.Estado = model.EstadoActivo
	}
	if _, err := parseEstado(string(u.Estado)); err != nil {
		return err
	}
	if err := c.ensureUnique(ctx, u.Email, u.DNI, ""); err != nil {
		return err
	}
	hashed, err := c.hash(password)
	if err != nil {
		return err
	}
	u.ID = ""
	u.Contrasena = hashed
	u.FechaRegistro = time.Now()
	u.Rol = nil
	if err := c.usuarios.Create(ctx, u); err != nil {
		return writeErr(err, "usuario")
	}
	return nil
}

// verify returns the user when the password matches. An unknown email and a
// wrong password produce the same error and cost the same hash comparison.
func (c credentialStore) verify(ctx context.Context, email, password string) (*model.Usuario, error) {
	u, err := c.usuarios.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !repository.IsNotFound(err) {
			return nil, fmt.Errorf("find usuario: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(c.dummy(), []byte(password))
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Contrasena), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if u.Estado != model.EstadoActivo {
		return nil, apperrors.ErrInvalidCredentials
	}
	return u, nil
}

func (c credentialStore) dummy() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("festivales-dummy"), c.cost)
	})
	return dummyHash
}
