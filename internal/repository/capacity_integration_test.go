//go:build integration

package repository_test

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "festivales/internal/errors"
	"festivales/internal/model"
)

func (s *MySQLSuite) newTaller(cupo int) *model.Taller {
	now := time.Now().UTC()
	t := &model.Taller{
		Nombre:         "Cerámica",
		FechaInicio:    now.Add(24 * time.Hour),
		FechaFin:       now.Add(48 * time.Hour),
		Horario:        "10:00-12:00",
		Modalidad:      model.ModalidadPresencial,
		Duracion:       2,
		Precio:         decimal.NewFromInt(20),
		CupoTotal:      cupo,
		CupoDisponible: cupo,
		IDSubcategoria: model.NewID(),
		Estado:         model.EstadoActivo,
	}
	s.Require().NoError(s.talleres.Create(s.ctx, t))
	return t
}

func (s *MySQLSuite) available(id string) int {
	t, err := s.talleres.FindByID(s.ctx, id)
	s.Require().NoError(err)
	return t.CupoDisponible
}

func (s *MySQLSuite) TestLastSeatGoesToExactlyOneCaller() {
	taller := s.newTaller(1)

	const callers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		refused   int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.talleres.Reserve(s.ctx, taller.ID, 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, apperrors.ErrInsufficientCapacity):
				refused++
			default:
				s.T().Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	s.Equal(1, succeeded)
	s.Equal(callers-1, refused)
	s.Equal(0, s.available(taller.ID))
}

func (s *MySQLSuite) TestConcurrentReservesNeverOversell() {
	taller := s.newTaller(10)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.talleres.Reserve(s.ctx, taller.ID, 1)
		}()
	}
	wg.Wait()

	s.Equal(0, s.available(taller.ID))
}

func (s *MySQLSuite) TestReleaseCapsAtTotal() {
	taller := s.newTaller(5)

	s.Require().NoError(s.talleres.Reserve(s.ctx, taller.ID, 2))
	s.Equal(3, s.available(taller.ID))

	s.Require().NoError(s.talleres.Release(s.ctx, taller.ID, 10))
	s.Equal(5, s.available(taller.ID))

	// Already full: zero rows change but the row exists.
	s.NoError(s.talleres.Release(s.ctx, taller.ID, 1))
}

func (s *MySQLSuite) TestMissingRow() {
	id := model.NewID()
	s.ErrorIs(s.talleres.Reserve(s.ctx, id, 1), gorm.ErrRecordNotFound)
	s.ErrorIs(s.talleres.Release(s.ctx, id, 1), gorm.ErrRecordNotFound)
}
