package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"festivales/internal/auth"
	"festivales/internal/model"
	"festivales/internal/repository"
	"festivales/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, usuario *model.Usuario, password, rolNombre string) (*model.Usuario, error) {
	args := m.Called(ctx, usuario, password, rolNombre)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Usuario), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string, access *auth.Claims) error {
	return m.Called(ctx, refreshToken, access).Error(0)
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*service.UserSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UserSummary), args.Error(1)
}

// MockTallerService is a mock implementation of service.TallerService.
type MockTallerService struct {
	mock.Mock
}

func (m *MockTallerService) taller(args mock.Arguments) (*model.Taller, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Taller), args.Error(1)
}

func (m *MockTallerService) talleres(args mock.Arguments) ([]model.Taller, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Taller), args.Error(1)
}

func (m *MockTallerService) Create(ctx context.Context, taller *model.Taller) (*model.Taller, error) {
	return m.taller(m.Called(ctx, taller))
}

func (m *MockTallerService) Get(ctx context.Context, id string) (*model.Taller, error) {
	return m.taller(m.Called(ctx, id))
}

func (m *MockTallerService) List(ctx context.Context, f repository.TallerFilter) ([]model.Taller, error) {
	return m.talleres(m.Called(ctx, f))
}

func (m *MockTallerService) ListActivos(ctx context.Context) ([]model.Taller, error) {
	return m.talleres(m.Called(ctx))
}

func (m *MockTallerService) ListProximos(ctx context.Context) ([]model.Taller, error) {
	return m.talleres(m.Called(ctx))
}

func (m *MockTallerService) Update(ctx context.Context, id string, patch service.TallerPatch) (*model.Taller, error) {
	return m.taller(m.Called(ctx, id, patch))
}

func (m *MockTallerService) CambiarEstado(ctx context.Context, id, estado string) (*model.Taller, error) {
	return m.taller(m.Called(ctx, id, estado))
}

func (m *MockTallerService) ReservarCupo(ctx context.Context, id string, n int) (*model.Taller, error) {
	return m.taller(m.Called(ctx, id, n))
}

func (m *MockTallerService) LiberarCupo(ctx context.Context, id string, n int) (*model.Taller, error) {
	return m.taller(m.Called(ctx, id, n))
}

func (m *MockTallerService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockDetalleService is a mock implementation of service.DetalleService.
type MockDetalleService struct {
	mock.Mock
}

func (m *MockDetalleService) detalle(args mock.Arguments) (*model.DetalleInscripcion, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DetalleInscripcion), args.Error(1)
}

func (m *MockDetalleService) Create(ctx context.Context, detalle *model.DetalleInscripcion) (*model.DetalleInscripcion, error) {
	return m.detalle(m.Called(ctx, detalle))
}

func (m *MockDetalleService) Get(ctx context.Context, id string) (*model.DetalleInscripcion, error) {
	return m.detalle(m.Called(ctx, id))
}

func (m *MockDetalleService) List(ctx context.Context, f repository.DetalleFilter) ([]model.DetalleInscripcion, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DetalleInscripcion), args.Error(1)
}

func (m *MockDetalleService) Update(ctx context.Context, id string, patch service.DetallePatch) (*model.DetalleInscripcion, error) {
	return m.detalle(m.Called(ctx, id, patch))
}

func (m *MockDetalleService) CambiarEstado(ctx context.Context, id, estado string) (*model.DetalleInscripcion, error) {
	return m.detalle(m.Called(ctx, id, estado))
}

func (m *MockDetalleService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDetalleService) StatsByTaller(ctx context.Context, idTaller string) (*model.DetalleStats, error) {
	args := m.Called(ctx, idTaller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DetalleStats), args.Error(1)
}
