//go:build integration

package repository_test

import (
	"fmt"
	"sync"
	"time"

	"festivales/internal/model"
	"festivales/internal/repository"
)

func (s *MySQLSuite) newUsuario(email, dni string) *model.Usuario {
	return &model.Usuario{
		Nombre:        "Ana",
		Apellido:      "Quispe",
		DNI:           dni,
		Email:         email,
		Contrasena:    "hash",
		Estado:        model.EstadoActivo,
		FechaRegistro: time.Now().UTC(),
		IDRol:         model.NewID(),
	}
}

func (s *MySQLSuite) TestConcurrentRegistrationsKeepEmailUnique() {
	const callers = 10
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		created    int
		duplicates int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.usuarios.Create(s.ctx, s.newUsuario("race@example.com", fmt.Sprintf("7%07d", i)))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case repository.IsDuplicate(err):
				duplicates++
			default:
				s.T().Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	s.Equal(1, created)
	s.Equal(callers-1, duplicates)
}

func (s *MySQLSuite) TestDuplicateDNIIsRejected() {
	s.Require().NoError(s.usuarios.Create(s.ctx, s.newUsuario("first@example.com", "55555555")))

	err := s.usuarios.Create(s.ctx, s.newUsuario("second@example.com", "55555555"))
	s.True(repository.IsDuplicate(err), "got %v", err)
}

func (s *MySQLSuite) TestSoftDeleteFreesEmailAndDNI() {
	u := s.newUsuario("gone@example.com", "66666666")
	s.Require().NoError(s.usuarios.Create(s.ctx, u))

	deleted, err := s.usuarios.SoftDelete(s.ctx, u.ID)
	s.Require().NoError(err)
	s.True(deleted)

	again := s.newUsuario("gone@example.com", "66666666")
	s.NoError(s.usuarios.Create(s.ctx, again))

	found, err := s.usuarios.FindByEmail(s.ctx, "gone@example.com")
	s.Require().NoError(err)
	s.Equal(again.ID, found.ID)
}
