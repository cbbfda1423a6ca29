package service

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"festivales/internal/auth"
	apperrors "festivales/internal/errors"
	"festivales/internal/model"
	"festivales/internal/repository"
)

// MockUsuarioRepository is a mock implementation of UsuarioRepository.
type MockUsuarioRepository struct {
	mock.Mock
}

func (m *MockUsuarioRepository) Create(ctx context.Context, usuario *model.Usuario) error {
	args := m.Called(ctx, usuario)
	if args.Error(0) == nil && usuario.ID == "" {
		usuario.ID = model.NewID()
	}
	return args.Error(0)
}

func (m *MockUsuarioRepository) Update(ctx context.Context, usuario *model.Usuario) error {
	args := m.Called(ctx, usuario)
	return args.Error(0)
}

func (m *MockUsuarioRepository) usuario(args mock.Arguments) (*model.Usuario, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) FindByID(ctx context.Context, id string) (*model.Usuario, error) {
	return m.usuario(m.Called(ctx, id))
}

func (m *MockUsuarioRepository) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	return m.usuario(m.Called(ctx, email))
}

func (m *MockUsuarioRepository) FindByDNI(ctx context.Context, dni string) (*model.Usuario, error) {
	return m.usuario(m.Called(ctx, dni))
}

func (m *MockUsuarioRepository) List(ctx context.Context) ([]model.Usuario, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockRolRepository is a mock implementation of RolRepository.
type MockRolRepository struct {
	mock.Mock
}

func (m *MockRolRepository) Create(ctx context.Context, rol *model.Rol) error {
	return m.Called(ctx, rol).Error(0)
}

func (m *MockRolRepository) Update(ctx context.Context, rol *model.Rol) error {
	return m.Called(ctx, rol).Error(0)
}

func (m *MockRolRepository) rol(args mock.Arguments) (*model.Rol, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Rol), args.Error(1)
}

func (m *MockRolRepository) FindByID(ctx context.Context, id string) (*model.Rol, error) {
	return m.rol(m.Called(ctx, id))
}

func (m *MockRolRepository) FindByNombre(ctx context.Context, nombre string) (*model.Rol, error) {
	return m.rol(m.Called(ctx, nombre))
}

func (m *MockRolRepository) List(ctx context.Context) ([]model.Rol, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Rol), args.Error(1)
}

func (m *MockRolRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, session auth.Session, ttl time.Duration) error {
	return m.Called(ctx, tokenID, session, ttl).Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (*auth.Session, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return m.Called(ctx, tokenID).Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, tokenID, ttl).Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// MockCapacityService is a mock implementation of CapacityService.
type MockCapacityService struct {
	mock.Mock
}

func (m *MockCapacityService) Reserve(ctx context.Context, recurso Recurso, id string, n int) error {
	return m.Called(ctx, recurso, id, n).Error(0)
}

func (m *MockCapacityService) Release(ctx context.Context, recurso Recurso, id string, n int) error {
	return m.Called(ctx, recurso, id, n).Error(0)
}

// MockRecorder is a mock implementation of Recorder.
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, accion string, idDetalle *string, observacion string) {
	m.Called(ctx, accion, idDetalle, observacion)
}

// MockDetalleRepository is a mock implementation of DetalleRepository.
type MockDetalleRepository struct {
	mock.Mock
}

func (m *MockDetalleRepository) Create(ctx context.Context, detalle *model.DetalleInscripcion) error {
	args := m.Called(ctx, detalle)
	if args.Error(0) == nil && detalle.ID == "" {
		detalle.ID = model.NewID()
	}
	return args.Error(0)
}

func (m *MockDetalleRepository) Update(ctx context.Context, detalle *model.DetalleInscripcion) error {
	return m.Called(ctx, detalle).Error(0)
}

func (m *MockDetalleRepository) FindByID(ctx context.Context, id string) (*model.DetalleInscripcion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DetalleInscripcion), args.Error(1)
}

func (m *MockDetalleRepository) List(ctx context.Context, f repository.DetalleFilter) ([]model.DetalleInscripcion, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.DetalleInscripcion), args.Error(1)
}

func (m *MockDetalleRepository) Delete(ctx context.Context, id string, estado model.DetalleEstado) (bool, error) {
	args := m.Called(ctx, id, estado)
	return args.Bool(0), args.Error(1)
}

func (m *MockDetalleRepository) UpdateEstado(ctx context.Context, id string, from, to model.DetalleEstado) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockDetalleRepository) StatsByTaller(ctx context.Context, idTaller string) ([]model.DetalleEstadoStat, error) {
	args := m.Called(ctx, idTaller)
	return args.Get(0).([]model.DetalleEstadoStat), args.Error(1)
}

// MockInscripcionRepository is a mock implementation of InscripcionRepository.
type MockInscripcionRepository struct {
	mock.Mock
}

func (m *MockInscripcionRepository) Create(ctx context.Context, inscripcion *model.Inscripcion) error {
	args := m.Called(ctx, inscripcion)
	if args.Error(0) == nil && inscripcion.ID == "" {
		inscripcion.ID = model.NewID()
	}
	return args.Error(0)
}

func (m *MockInscripcionRepository) Update(ctx context.Context, inscripcion *model.Inscripcion) error {
	return m.Called(ctx, inscripcion).Error(0)
}

func (m *MockInscripcionRepository) FindByID(ctx context.Context, id string) (*model.Inscripcion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Inscripcion), args.Error(1)
}

func (m *MockInscripcionRepository) List(ctx context.Context, f repository.InscripcionFilter) ([]model.Inscripcion, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.Inscripcion), args.Error(1)
}

func (m *MockInscripcionRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockInscripcionRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInscripcionRepository) CountByEstado(ctx context.Context) ([]model.EstadoCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.EstadoCount), args.Error(1)
}

func (m *MockInscripcionRepository) SumTotal(ctx context.Context, estado model.InscripcionEstado) (decimal.Decimal, error) {
	args := m.Called(ctx, estado)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockPagoRepository is a mock implementation of PagoRepository.
type MockPagoRepository struct {
	mock.Mock
}

func (m *MockPagoRepository) Create(ctx context.Context, pago *model.Pago) error {
	args := m.Called(ctx, pago)
	if args.Error(0) == nil && pago.ID == "" {
		pago.ID = model.NewID()
	}
	return args.Error(0)
}

func (m *MockPagoRepository) Update(ctx context.Context, pago *model.Pago) error {
	return m.Called(ctx, pago).Error(0)
}

func (m *MockPagoRepository) FindByID(ctx context.Context, id string) (*model.Pago, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Pago), args.Error(1)
}

func (m *MockPagoRepository) List(ctx context.Context, f repository.PagoFilter) ([]model.Pago, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.Pago), args.Error(1)
}

func (m *MockPagoRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPagoRepository) StatsByEstado(ctx context.Context) ([]model.PagoEstadoStat, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.PagoEstadoStat), args.Error(1)
}

// MockSubcategoriaRepository is a mock implementation of SubcategoriaRepository.
type MockSubcategoriaRepository struct {
	mock.Mock
}

func (m *MockSubcategoriaRepository) Create(ctx context.Context, sub *model.Subcategoria) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockSubcategoriaRepository) Update(ctx context.Context, sub *model.Subcategoria) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockSubcategoriaRepository) FindByID(ctx context.Context, id string) (*model.Subcategoria, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subcategoria), args.Error(1)
}

func (m *MockSubcategoriaRepository) List(ctx context.Context, idCategoria string) ([]model.Subcategoria, error) {
	args := m.Called(ctx, idCategoria)
	return args.Get(0).([]model.Subcategoria), args.Error(1)
}

func (m *MockSubcategoriaRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockHistorialRepository is a mock implementation of HistorialRepository.
type MockHistorialRepository struct {
	mock.Mock
}

func (m *MockHistorialRepository) CreateBatch(ctx context.Context, entries []model.Historial) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockHistorialRepository) ListByUsuario(ctx context.Context, idUsuario string) ([]model.Historial, error) {
	args := m.Called(ctx, idUsuario)
	return args.Get(0).([]model.Historial), args.Error(1)
}

func (m *MockHistorialRepository) ListByDetalle(ctx context.Context, idDetalle string) ([]model.Historial, error) {
	args := m.Called(ctx, idDetalle)
	return args.Get(0).([]model.Historial), args.Error(1)
}

// memoryTalleres is an in-memory TallerRepository whose ledger applies the
// same conditional arithmetic as the SQL one under a mutex.
type memoryTalleres struct {
	mu   sync.Mutex
	rows map[string]model.Taller
}

func newMemoryTalleres() *memoryTalleres {
	return &memoryTalleres{rows: map[string]model.Taller{}}
}

func (r *memoryTalleres) Reserve(_ context.Context, id string, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if t.CupoDisponible < n {
		return apperrors.ErrInsufficientCapacity
	}
	t.CupoDisponible -= n
	r.rows[id] = t
	return nil
}

func (r *memoryTalleres) Release(_ context.Context, id string, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.CupoDisponible += n
	if t.CupoDisponible > t.CupoTotal {
		t.CupoDisponible = t.CupoTotal
	}
	r.rows[id] = t
	return nil
}

func (r *memoryTalleres) Create(_ context.Context, t *model.Taller) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == "" {
		t.ID = model.NewID()
	}
	r.rows[t.ID] = *t
	return nil
}

func (r *memoryTalleres) Update(_ context.Context, t *model.Taller) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[t.ID] = *t
	return nil
}

func (r *memoryTalleres) FindByID(_ context.Context, id string) (*model.Taller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (r *memoryTalleres) FindByIDForUpdate(ctx context.Context, id string) (*model.Taller, error) {
	return r.FindByID(ctx, id)
}

func (r *memoryTalleres) List(_ context.Context, _ repository.TallerFilter) ([]model.Taller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Taller, 0, len(r.rows))
	for _, t := range r.rows {
		out = append(out, t)
	}
	return out, nil
}

func (r *memoryTalleres) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[id]
	delete(r.rows, id)
	return ok, nil
}

func (r *memoryTalleres) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.TallerRepository) error) error {
	return fn(ctx, r)
}

// memoryBloques is the BloqueRepository counterpart of memoryTalleres.
type memoryBloques struct {
	mu   sync.Mutex
	rows map[string]model.Bloque
}

func newMemoryBloques() *memoryBloques {
	return &memoryBloques{rows: map[string]model.Bloque{}}
}

func (r *memoryBloques) Reserve(_ context.Context, id string, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if b.CupoDisponible < n {
		return apperrors.ErrInsufficientCapacity
	}
	b.CupoDisponible -= n
	r.rows[id] = b
	return nil
}

func (r *memoryBloques) Release(_ context.Context, id string, n int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.CupoDisponible += n
	if b.CupoDisponible > b.CupoTotal {
		b.CupoDisponible = b.CupoTotal
	}
	r.rows[id] = b
	return nil
}

func (r *memoryBloques) Create(_ context.Context, b *model.Bloque) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = model.NewID()
	}
	r.rows[b.ID] = *b
	return nil
}

func (r *memoryBloques) Update(_ context.Context, b *model.Bloque) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[b.ID] = *b
	return nil
}

func (r *memoryBloques) FindByID(_ context.Context, id string) (*model.Bloque, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (r *memoryBloques) FindByIDForUpdate(ctx context.Context, id string) (*model.Bloque, error) {
	return r.FindByID(ctx, id)
}

func (r *memoryBloques) List(_ context.Context, idTaller string) ([]model.Bloque, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Bloque, 0, len(r.rows))
	for _, b := range r.rows {
		if idTaller == "" || b.IDTaller == idTaller {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memoryBloques) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[id]
	delete(r.rows, id)
	return ok, nil
}

func (r *memoryBloques) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.BloqueRepository) error) error {
	return fn(ctx, r)
}

// MockCategoriaRepository is a mock implementation of CategoriaRepository.
type MockCategoriaRepository struct {
	mock.Mock
}

func (m *MockCategoriaRepository) Create(ctx context.Context, categoria *model.Categoria) error {
	args := m.Called(ctx, categoria)
	if args.Error(0) == nil && categoria.ID == "" {
		categoria.ID = model.NewID()
	}
	return args.Error(0)
}

func (m *MockCategoriaRepository) Update(ctx context.Context, categoria *model.Categoria) error {
	return m.Called(ctx, categoria).Error(0)
}

func (m *MockCategoriaRepository) FindByID(ctx context.Context, id string) (*model.Categoria, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Categoria), args.Error(1)
}

func (m *MockCategoriaRepository) FindByNombre(ctx context.Context, nombre string) (*model.Categoria, error) {
	args := m.Called(ctx, nombre)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Categoria), args.Error(1)
}

func (m *MockCategoriaRepository) List(ctx context.Context, f repository.CategoriaFilter) ([]model.Categoria, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.Categoria), args.Error(1)
}

func (m *MockCategoriaRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockServicioRepository is a mock implementation of ServicioRepository.
type MockServicioRepository struct {
	mock.Mock
}

func (m *MockServicioRepository) Create(ctx context.Context, servicio *model.Servicio) error {
	args := m.Called(ctx, servicio)
	if args.Error(0) == nil && servicio.ID == "" {
		servicio.ID = model.NewID()
	}
	return args.Error(0)
}

func (m *MockServicioRepository) Update(ctx context.Context, servicio *model.Servicio) error {
	return m.Called(ctx, servicio).Error(0)
}

func (m *MockServicioRepository) FindByID(ctx context.Context, id string) (*model.Servicio, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Servicio), args.Error(1)
}

func (m *MockServicioRepository) List(ctx context.Context, f repository.ServicioFilter) ([]model.Servicio, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]model.Servicio), args.Error(1)
}

func (m *MockServicioRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
