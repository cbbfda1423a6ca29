package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "festivales/internal/errors"
	"festivales/internal/model"
	"festivales/internal/repository"
)

type detalleMocks struct {
	repo          *MockDetalleRepository
	inscripciones *MockInscripcionRepository
	capacity      *MockCapacityService
	recorder      *MockRecorder
}

func newDetalleTest() (DetalleService, detalleMocks) {
	m := detalleMocks{
		repo:          new(MockDetalleRepository),
		inscripciones: new(MockInscripcionRepository),
		capacity:      new(MockCapacityService),
		recorder:      new(MockRecorder),
	}
	m.recorder.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	return NewDetalleService(m.repo, m.inscripciones, m.capacity, m.recorder, zap.NewNop()), m
}

func (m detalleMocks) assert(t *testing.T) {
	m.repo.AssertExpectations(t)
	m.inscripciones.AssertExpectations(t)
	m.capacity.AssertExpectations(t)
}

func ptr[T any](v T) *T { return &v }

func TestDetalleService_Create(t *testing.T) {
	inscripcionID := model.NewID()
	tallerID := model.NewID()
	bloqueID := model.NewID()
	dbDown := errors.New("db down")

	tests := []struct {
		name          string
		detalle       func() *model.DetalleInscripcion
		setupMock     func(detalleMocks)
		expectedError error
	}{
		{
			name: "neither taller nor bloque",
			detalle: func() *model.DetalleInscripcion {
				return &model.DetalleInscripcion{IDInscripcion: inscripcionID, Cantidad: 1}
			},
			setupMock:     func(detalleMocks) {},
			expectedError: apperrors.ErrInvalidReference,
		},
		{
			name: "blank references count as absent",
			detalle: func() *model.DetalleInscripcion {
				return &model.DetalleInscripcion{IDInscripcion: inscripcionID, IDTaller: ptr(""), IDBloque: ptr(" ")}
			},
			setupMock:     func(detalleMocks) {},
			expectedError: apperrors.ErrInvalidReference,
		},
		{
			name: "taller only reserves on the taller",
			detalle: func() *model.DetalleInscripcion {
				return &model.DetalleInscripcion{IDInscripcion: inscripcionID, IDTaller: ptr(tallerID), Cantidad: 2}
			},
			setupMock: func(m detalleMocks) {
				m.inscripciones.On("FindByID", mock.Anything, inscripcionID).Return(&model.Inscripcion{}, nil)
				m.capacity.On("Reserve", mock.Anything, RecursoTaller, tallerID, 2).Return(nil)
				m.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.DetalleInscripcion")).Return(nil)
				m.repo.On("FindByID", mock.Anything, mock.AnythingOfType("string")).Return(&model.DetalleInscripcion{}, nil)
			},
		},
		{
			name: "both references reserve on the bloque",
			detalle: func() *model.DetalleInscripcion {
				return &model.DetalleInscripcion{IDInscripcion: inscripcionID, IDTaller: ptr(tallerID), IDBloque: ptr(bloqueID)}
			},
			setupMock: func(m detalleMocks) {
				m.inscripciones.On("FindByID", mock.Anything, inscripcionID).Return(&model.Inscripcion{}, nil)
				m.capacity.On("Reserve", mock.Anything, RecursoBloque, bloqueID, 1).Return(nil)
				m.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.DetalleInscripcion")).Return(nil)
				m.repo.On("FindByID", mock.Anything, mock.AnythingOfType("string")).Return(&model.DetalleInscripcion{}, nil)
			},
		},
		{
			name: "insufficient seats create nothing",
			detalle: func() *model.DetalleInscripcion {
				return &model.DetalleInscripcion{IDInscripcion: inscripcionID, IDTaller: ptr(tallerID), Cantidad: 40}
			},
			setupMock: func(m detalleMocks) {
				m.inscripciones.On("FindByID", mock.Anything, inscripcionID).Return(&model.Inscripcion{}, nil)
				m.capacity.On("Reserve", mock.Anything, RecursoTaller, tallerID, 40).Return(apperrors.ErrInsufficientCapacity)
			},
			expectedError: apperrors.ErrInsufficientCapacity,
		},
		{
			name: "failed insert gives the seats back",
			detalle: func() *model.DetalleInscripcion {
				return &model.DetalleInscripcion{IDInscripcion: inscripcionID, IDBloque: ptr(bloqueID), Cantidad: 3}
			},
			setupMock: func(m detalleMocks) {
				m.inscripciones.On("FindByID", mock.Anything, inscripcionID).Return(&model.Inscripcion{}, nil)
				m.capacity.On("Reserve", mock.Anything, RecursoBloque, bloqueID, 3).Return(nil)
				m.repo.On("Create", mock.Anything, mock.Anything).Return(dbDown)
				m.capacity.On("Release", mock.Anything, RecursoBloque, bloqueID, 3).Return(nil)
			},
			expectedError: dbDown,
		},
		{
			name: "cancelled item holds no seats",
			detalle: func() *model.DetalleInscripcion {
				return &model.DetalleInscripcion{IDInscripcion: inscripcionID, IDTaller: ptr(tallerID), Estado: model.DetalleCancelado}
			},
			setupMock: func(m detalleMocks) {
				m.inscripciones.On("FindByID", mock.Anything, inscripcionID).Return(&model.Inscripcion{}, nil)
				m.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
				m.repo.On("FindByID", mock.Anything, mock.AnythingOfType("string")).Return(&model.DetalleInscripcion{}, nil)
			},
		},
		{
			name: "unknown registration",
			detalle: func() *model.DetalleInscripcion {
				return &model.DetalleInscripcion{IDInscripcion: inscripcionID, IDTaller: ptr(tallerID)}
			},
			setupMock: func(m detalleMocks) {
				m.inscripciones.On("FindByID", mock.Anything, inscripcionID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrNotFound,
		},
		{
			name: "negative price",
			detalle: func() *model.DetalleInscripcion {
				return &model.DetalleInscripcion{IDInscripcion: inscripcionID, IDTaller: ptr(tallerID), PrecioTotal: decimal.NewFromInt(-5)}
			},
			setupMock:     func(detalleMocks) {},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newDetalleTest()
			tt.setupMock(m)

			created, err := service.Create(context.Background(), tt.detalle())
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, created)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, created)
			}
			m.assert(t)
		})
	}
}

func TestDetalleService_CambiarEstado(t *testing.T) {
	id := model.NewID()
	tallerID := model.NewID()

	item := func(estado model.DetalleEstado) *model.DetalleInscripcion {
		return &model.DetalleInscripcion{
			Base:     model.Base{ID: id},
			IDTaller: ptr(tallerID),
			Cantidad: 2,
			Estado:   estado,
		}
	}

	tests := []struct {
		name          string
		estado        string
		setupMock     func(detalleMocks)
		expectedError error
	}{
		{
			name:   "unknown state leaves the item unchanged",
			estado: "foo",
			setupMock: func(detalleMocks) {
			},
			expectedError: apperrors.ErrInvalidState,
		},
		{
			name:   "cancelling releases the seats",
			estado: "cancelado",
			setupMock: func(m detalleMocks) {
				m.repo.On("FindByID", mock.Anything, id).Return(item(model.DetallePendiente), nil)
				m.repo.On("UpdateEstado", mock.Anything, id, model.DetallePendiente, model.DetalleCancelado).Return(true, nil)
				m.capacity.On("Release", mock.Anything, RecursoTaller, tallerID, 2).Return(nil)
			},
		},
		{
			name:   "leaving cancelado reserves again",
			estado: "confirmado",
			setupMock: func(m detalleMocks) {
				m.repo.On("FindByID", mock.Anything, id).Return(item(model.DetalleCancelado), nil)
				m.capacity.On("Reserve", mock.Anything, RecursoTaller, tallerID, 2).Return(nil)
				m.repo.On("UpdateEstado", mock.Anything, id, model.DetalleCancelado, model.DetalleConfirmado).Return(true, nil)
			},
		},
		{
			name:   "leaving cancelado without seats fails",
			estado: "pendiente",
			setupMock: func(m detalleMocks) {
				m.repo.On("FindByID", mock.Anything, id).Return(item(model.DetalleCancelado), nil)
				m.capacity.On("Reserve", mock.Anything, RecursoTaller, tallerID, 2).Return(apperrors.ErrInsufficientCapacity)
			},
			expectedError: apperrors.ErrInsufficientCapacity,
		},
		{
			name:   "confirming keeps the seats",
			estado: "confirmado",
			setupMock: func(m detalleMocks) {
				m.repo.On("FindByID", mock.Anything, id).Return(item(model.DetallePendiente), nil)
				m.repo.On("UpdateEstado", mock.Anything, id, model.DetallePendiente, model.DetalleConfirmado).Return(true, nil)
			},
		},
		{
			name:   "concurrent change is a conflict",
			estado: "cancelado",
			setupMock: func(m detalleMocks) {
				m.repo.On("FindByID", mock.Anything, id).Return(item(model.DetallePendiente), nil)
				m.repo.On("UpdateEstado", mock.Anything, id, model.DetallePendiente, model.DetalleCancelado).Return(false, nil)
			},
			expectedError: apperrors.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newDetalleTest()
			tt.setupMock(m)

			_, err := service.CambiarEstado(context.Background(), id, tt.estado)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			m.assert(t)
			if tt.expectedError == apperrors.ErrInvalidState {
				m.repo.AssertNotCalled(t, "UpdateEstado", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestDetalleService_Update(t *testing.T) {
	id := model.NewID()
	tallerID := model.NewID()

	confirmed := func() *model.DetalleInscripcion {
		return &model.DetalleInscripcion{
			Base:        model.Base{ID: id},
			IDTaller:    ptr(tallerID),
			Cantidad:    2,
			PrecioTotal: decimal.NewFromInt(30),
			Estado:      model.DetalleConfirmado,
		}
	}

	tests := []struct {
		name          string
		patch         DetallePatch
		setupMock     func(detalleMocks)
		expectedError error
		untouched     bool
	}{
		{
			name: "invalid price rejects the whole patch before cancelling",
			patch: DetallePatch{
				Estado:      ptr(model.DetalleCancelado),
				PrecioTotal: ptr(decimal.NewFromInt(-1)),
			},
			setupMock: func(m detalleMocks) {
				m.repo.On("FindByID", mock.Anything, id).Return(confirmed(), nil)
			},
			expectedError: apperrors.ErrValidation,
			untouched:     true,
		},
		{
			name: "unknown state is rejected before any read",
			patch: DetallePatch{
				Estado:        ptr(model.DetalleEstado("foo")),
				Observaciones: ptr("nota"),
			},
			setupMock:     func(detalleMocks) {},
			expectedError: apperrors.ErrInvalidState,
			untouched:     true,
		},
		{
			name: "state and fields together",
			patch: DetallePatch{
				Estado:        ptr(model.DetalleCancelado),
				Observaciones: ptr("baja voluntaria"),
			},
			setupMock: func(m detalleMocks) {
				m.repo.On("FindByID", mock.Anything, id).Return(confirmed(), nil)
				m.repo.On("UpdateEstado", mock.Anything, id, model.DetalleConfirmado, model.DetalleCancelado).Return(true, nil)
				m.capacity.On("Release", mock.Anything, RecursoTaller, tallerID, 2).Return(nil)
				m.repo.On("Update", mock.Anything, mock.MatchedBy(func(d *model.DetalleInscripcion) bool {
					return d.Observaciones == "baja voluntaria"
				})).Return(nil)
			},
		},
		{
			name:  "fields only leave the seats alone",
			patch: DetallePatch{PrecioUnitario: ptr(decimal.NewFromInt(15))},
			setupMock: func(m detalleMocks) {
				m.repo.On("FindByID", mock.Anything, id).Return(confirmed(), nil)
				m.repo.On("Update", mock.Anything, mock.AnythingOfType("*model.DetalleInscripcion")).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newDetalleTest()
			tt.setupMock(m)

			_, err := service.Update(context.Background(), id, tt.patch)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			m.assert(t)
			if tt.untouched {
				m.repo.AssertNotCalled(t, "UpdateEstado", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				m.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				m.capacity.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				m.recorder.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestDetalleService_Delete(t *testing.T) {
	id := model.NewID()
	bloqueID := model.NewID()

	t.Run("active item returns its seats", func(t *testing.T) {
		service, m := newDetalleTest()
		d := &model.DetalleInscripcion{Base: model.Base{ID: id}, IDBloque: ptr(bloqueID), Cantidad: 4, Estado: model.DetalleConfirmado}
		m.repo.On("FindByID", mock.Anything, id).Return(d, nil)
		m.repo.On("Delete", mock.Anything, id, model.DetalleConfirmado).Return(true, nil)
		m.capacity.On("Release", mock.Anything, RecursoBloque, bloqueID, 4).Return(nil)

		require.NoError(t, service.Delete(context.Background(), id))
		m.assert(t)
	})

	t.Run("cancelled item releases nothing", func(t *testing.T) {
		service, m := newDetalleTest()
		d := &model.DetalleInscripcion{Base: model.Base{ID: id}, IDBloque: ptr(bloqueID), Cantidad: 4, Estado: model.DetalleCancelado}
		m.repo.On("FindByID", mock.Anything, id).Return(d, nil)
		m.repo.On("Delete", mock.Anything, id, model.DetalleCancelado).Return(true, nil)

		require.NoError(t, service.Delete(context.Background(), id))
		m.capacity.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid id", func(t *testing.T) {
		service, _ := newDetalleTest()
		assert.ErrorIs(t, service.Delete(context.Background(), "123"), apperrors.ErrInvalidID)
	})
}

func TestDetalleService_StatsByTaller(t *testing.T) {
	service, m := newDetalleTest()
	tallerID := model.NewID()
	m.repo.On("StatsByTaller", mock.Anything, tallerID).Return([]model.DetalleEstadoStat{
		{Estado: "cancelado", Registros: 1, Cantidad: 2, Total: decimal.RequireFromString("40.00")},
		{Estado: "confirmado", Registros: 3, Cantidad: 5, Total: decimal.RequireFromString("100.50")},
	}, nil)

	stats, err := service.StatsByTaller(context.Background(), tallerID)
	require.NoError(t, err)
	assert.Equal(t, tallerID, stats.IDTaller)
	assert.Len(t, stats.PorEstado, 2)
	assert.Equal(t, int64(4), stats.TotalRegistros)
	assert.Equal(t, int64(7), stats.TotalCantidad)
	assert.True(t, decimal.RequireFromString("140.50").Equal(stats.TotalMonto))
}

func TestDetalleService_ListValidatesFilterIDs(t *testing.T) {
	service, _ := newDetalleTest()
	_, err := service.List(context.Background(), repository.DetalleFilter{IDTaller: "xyz"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidID)
}
