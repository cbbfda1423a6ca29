package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "festivales/internal/errors"
	"festivales/internal/model"
)

func TestCategoriaService_Create(t *testing.T) {
	tests := []struct {
		name          string
		input         *model.Categoria
		setupMock     func(*MockCategoriaRepository)
		expectedError error
		notConflict   bool
	}{
		{
			name:  "creates with default estado",
			input: &model.Categoria{Nombre: " Musica ", Tipo: "arte"},
			setupMock: func(m *MockCategoriaRepository) {
				m.On("FindByNombre", mock.Anything, "Musica").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Categoria) bool {
					return c.Nombre == "Musica" && c.Estado == model.EstadoActivo
				})).Return(nil)
			},
		},
		{
			name:  "nombre taken by another categoria",
			input: &model.Categoria{Nombre: "Musica", Tipo: "arte"},
			setupMock: func(m *MockCategoriaRepository) {
				m.On("FindByNombre", mock.Anything, "Musica").
					Return(&model.Categoria{Base: model.Base{ID: model.NewID()}, Nombre: "Musica"}, nil)
			},
			expectedError: apperrors.ErrConflict,
		},
		{
			name:  "lookup failure is not a free nombre",
			input: &model.Categoria{Nombre: "Musica", Tipo: "arte"},
			setupMock: func(m *MockCategoriaRepository) {
				m.On("FindByNombre", mock.Anything, "Musica").Return(nil, errors.New("connection reset"))
			},
			notConflict: true,
		},
		{
			name:  "unique index catches a concurrent create",
			input: &model.Categoria{Nombre: "Musica", Tipo: "arte"},
			setupMock: func(m *MockCategoriaRepository) {
				m.On("FindByNombre", mock.Anything, "Musica").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrConflict,
		},
		{
			name:          "missing tipo",
			input:         &model.Categoria{Nombre: "Musica"},
			setupMock:     func(*MockCategoriaRepository) {},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:          "unknown estado",
			input:         &model.Categoria{Nombre: "Musica", Tipo: "arte", Estado: "archivado"},
			setupMock:     func(*MockCategoriaRepository) {},
			expectedError: apperrors.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCategoriaRepository)
			tt.setupMock(repo)

			got, err := NewCategoriaService(repo).Create(context.Background(), tt.input)
			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, got)
			case tt.notConflict:
				assert.Error(t, err)
				assert.NotErrorIs(t, err, apperrors.ErrConflict)
				repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			default:
				require.NoError(t, err)
				assert.NotEmpty(t, got.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestCategoriaService_Rename(t *testing.T) {
	id := model.NewID()
	stored := func() *model.Categoria {
		return &model.Categoria{Base: model.Base{ID: id}, Nombre: "Musica", Tipo: "arte", Estado: model.EstadoActivo}
	}
	tests := []struct {
		name          string
		nombre        string
		setupMock     func(*MockCategoriaRepository)
		expectedError error
	}{
		{
			name:   "free nombre",
			nombre: "Teatro",
			setupMock: func(m *MockCategoriaRepository) {
				m.On("FindByNombre", mock.Anything, "Teatro").Return(nil, gorm.ErrRecordNotFound)
				m.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Categoria) bool { return c.Nombre == "Teatro" })).Return(nil)
			},
		},
		{
			name:   "own nombre is not a collision",
			nombre: "Musica",
			setupMock: func(m *MockCategoriaRepository) {
				m.On("FindByNombre", mock.Anything, "Musica").Return(stored(), nil)
				m.On("Update", mock.Anything, mock.Anything).Return(nil)
			},
		},
		{
			name:   "nombre of another categoria",
			nombre: "Danza",
			setupMock: func(m *MockCategoriaRepository) {
				m.On("FindByNombre", mock.Anything, "Danza").
					Return(&model.Categoria{Base: model.Base{ID: model.NewID()}, Nombre: "Danza"}, nil)
			},
			expectedError: apperrors.ErrConflict,
		},
		{
			name:          "blank nombre",
			nombre:        "  ",
			setupMock:     func(*MockCategoriaRepository) {},
			expectedError: apperrors.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCategoriaRepository)
			repo.On("FindByID", mock.Anything, id).Return(stored(), nil)
			tt.setupMock(repo)

			nombre := tt.nombre
			got, err := NewCategoriaService(repo).Update(context.Background(), id, CategoriaPatch{Nombre: &nombre})
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.nombre, got.Nombre)
			repo.AssertExpectations(t)
		})
	}
}

func TestCategoriaService_CambiarEstado(t *testing.T) {
	id := model.NewID()
	tests := []struct {
		name          string
		estado        string
		expected      model.Estado
		expectedError error
	}{
		{name: "desactivar", estado: "inactivo", expected: model.EstadoInactivo},
		{name: "activar", estado: "activo", expected: model.EstadoActivo},
		{name: "unknown estado", estado: "foo", expectedError: apperrors.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockCategoriaRepository)
			current := model.EstadoActivo
			if tt.expected == model.EstadoActivo {
				current = model.EstadoInactivo
			}
			repo.On("FindByID", mock.Anything, id).
				Return(&model.Categoria{Base: model.Base{ID: id}, Nombre: "Musica", Tipo: "arte", Estado: current}, nil)
			repo.On("Update", mock.Anything, mock.Anything).Return(nil)

			got, err := NewCategoriaService(repo).CambiarEstado(context.Background(), id, tt.estado)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.Estado)
			repo.AssertCalled(t, "Update", mock.Anything, mock.MatchedBy(func(c *model.Categoria) bool { return c.Estado == tt.expected }))
		})
	}
}
