package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"festivales/internal/auth"
	apperrors "festivales/internal/errors"
	"festivales/internal/model"
)

func newTestAuthService(usuarios *MockUsuarioRepository, roles *MockRolRepository, tokens *MockTokenStore) (AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(usuarios, NewRolService(roles, nil), jwtService, tokens, MinBcryptCost), jwtService
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Register(t *testing.T) {
	userRol := &model.Rol{Base: model.Base{ID: model.NewID()}, Nombre: model.RolUser}
	existing := &model.Usuario{Base: model.Base{ID: model.NewID()}, Email: "taken@example.com", DNI: "11111111"}

	tests := []struct {
		name          string
		email         string
		dni           string
		setupMock     func(*MockUsuarioRepository, *MockRolRepository)
		expectedError error
	}{
		{
			name:  "successful registration",
			email: "Ana@Example.com ",
			dni:   "12345678",
			setupMock: func(u *MockUsuarioRepository, r *MockRolRepository) {
				r.On("FindByNombre", mock.Anything, model.RolUser).Return(userRol, nil)
				u.On("FindByEmail", mock.Anything, "ana@example.com").Return(nil, gorm.ErrRecordNotFound)
				u.On("FindByDNI", mock.Anything, "12345678").Return(nil, gorm.ErrRecordNotFound)
				u.On("Create", mock.Anything, mock.AnythingOfType("*model.Usuario")).Return(nil)
			},
		},
		{
			name:  "duplicate email",
			email: "taken@example.com",
			dni:   "12345678",
			setupMock: func(u *MockUsuarioRepository, r *MockRolRepository) {
				r.On("FindByNombre", mock.Anything, model.RolUser).Return(userRol, nil)
				u.On("FindByEmail", mock.Anything, "taken@example.com").Return(existing, nil)
			},
			expectedError: apperrors.ErrConflict,
		},
		{
			name:  "duplicate dni",
			email: "new@example.com",
			dni:   "11111111",
			setupMock: func(u *MockUsuarioRepository, r *MockRolRepository) {
				r.On("FindByNombre", mock.Anything, model.RolUser).Return(userRol, nil)
				u.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
				u.On("FindByDNI", mock.Anything, "11111111").Return(existing, nil)
			},
			expectedError: apperrors.ErrConflict,
		},
		{
			name:  "missing role",
			email: "new@example.com",
			dni:   "12345678",
			setupMock: func(u *MockUsuarioRepository, r *MockRolRepository) {
				r.On("FindByNombre", mock.Anything, model.RolUser).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrNotFound,
		},
		{
			name:  "unique index catches a concurrent registration",
			email: "new@example.com",
			dni:   "12345678",
			setupMock: func(u *MockUsuarioRepository, r *MockRolRepository) {
				r.On("FindByNombre", mock.Anything, model.RolUser).Return(userRol, nil)
				u.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
				u.On("FindByDNI", mock.Anything, "12345678").Return(nil, gorm.ErrRecordNotFound)
				u.On("Create", mock.Anything, mock.AnythingOfType("*model.Usuario")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usuarios := new(MockUsuarioRepository)
			roles := new(MockRolRepository)
			tt.setupMock(usuarios, roles)
			service, _ := newTestAuthService(usuarios, roles, new(MockTokenStore))

			candidate := &model.Usuario{Nombre: "Ana", Apellido: "Quispe", Email: tt.email, DNI: tt.dni}
			created, err := service.Register(context.Background(), candidate, "secret123", model.RolUser)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, created)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "ana@example.com", created.Email)
				assert.Equal(t, userRol.ID, created.IDRol)
				assert.Equal(t, model.EstadoActivo, created.Estado)
				assert.NotEqual(t, "secret123", created.Contrasena)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Contrasena), []byte("secret123")))
				cost, err := bcrypt.Cost([]byte(created.Contrasena))
				require.NoError(t, err)
				assert.GreaterOrEqual(t, cost, MinBcryptCost)
			}

			usuarios.AssertExpectations(t)
			roles.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	adminRol := &model.Rol{Base: model.Base{ID: model.NewID()}, Nombre: model.RolAdmin}
	active := &model.Usuario{
		Base:       model.Base{ID: model.NewID()},
		Nombre:     "Luis",
		Apellido:   "Rojas",
		Email:      "luis@example.com",
		Contrasena: hashed(t, "password123"),
		Estado:     model.EstadoActivo,
		IDRol:      adminRol.ID,
		Rol:        adminRol,
	}

	t.Run("successful login", func(t *testing.T) {
		usuarios := new(MockUsuarioRepository)
		tokens := new(MockTokenStore)
		usuarios.On("FindByEmail", mock.Anything, "luis@example.com").Return(active, nil)
		tokens.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"),
			auth.Session{UserID: active.ID, Email: active.Email, Rol: model.RolAdmin}, 24*time.Hour).Return(nil)
		service, jwtService := newTestAuthService(usuarios, new(MockRolRepository), tokens)

		res, err := service.Login(context.Background(), "LUIS@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, UserSummary{ID: active.ID, Nombre: "Luis", Apellido: "Rojas", Email: "luis@example.com", Rol: model.RolAdmin}, res.User)

		claims, err := jwtService.ValidateAccessToken(res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, active.ID, claims.Subject)
		assert.Equal(t, model.RolAdmin, claims.Rol)
		_, err = jwtService.ValidateRefreshToken(res.RefreshToken)
		assert.NoError(t, err)

		usuarios.AssertExpectations(t)
		tokens.AssertExpectations(t)
	})

	t.Run("unknown email and wrong password fail the same way", func(t *testing.T) {
		usuarios := new(MockUsuarioRepository)
		usuarios.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
		usuarios.On("FindByEmail", mock.Anything, "luis@example.com").Return(active, nil)
		service, _ := newTestAuthService(usuarios, new(MockRolRepository), new(MockTokenStore))

		_, errUnknown := service.Login(context.Background(), "nobody@example.com", "password123")
		_, errWrong := service.Login(context.Background(), "luis@example.com", "wrong")

		assert.Equal(t, apperrors.ErrInvalidCredentials, errUnknown)
		assert.Equal(t, errUnknown, errWrong)
		assert.Equal(t, apperrors.MapErrorToHTTP(errUnknown), apperrors.MapErrorToHTTP(errWrong))
	})

	t.Run("inactive user is rejected", func(t *testing.T) {
		inactive := *active
		inactive.Estado = model.EstadoInactivo
		usuarios := new(MockUsuarioRepository)
		usuarios.On("FindByEmail", mock.Anything, "luis@example.com").Return(&inactive, nil)
		service, _ := newTestAuthService(usuarios, new(MockRolRepository), new(MockTokenStore))

		_, err := service.Login(context.Background(), "luis@example.com", "password123")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	user := &model.Usuario{
		Base:   model.Base{ID: model.NewID()},
		Email:  "eva@example.com",
		Estado: model.EstadoActivo,
		Rol:    &model.Rol{Nombre: model.RolUser},
	}

	t.Run("live refresh token issues an access token", func(t *testing.T) {
		usuarios := new(MockUsuarioRepository)
		tokens := new(MockTokenStore)
		service, jwtService := newTestAuthService(usuarios, new(MockRolRepository), tokens)
		tokenID, refresh, err := jwtService.GenerateRefreshToken(user.ID, user.Email, model.RolUser)
		require.NoError(t, err)

		tokens.On("GetRefreshToken", mock.Anything, tokenID).Return(&auth.Session{UserID: user.ID, Email: user.Email}, nil)
		usuarios.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		access, err := service.RefreshToken(context.Background(), refresh)
		require.NoError(t, err)
		claims, err := jwtService.ValidateAccessToken(access)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.Subject)
	})

	t.Run("access token is not accepted as refresh token", func(t *testing.T) {
		service, jwtService := newTestAuthService(new(MockUsuarioRepository), new(MockRolRepository), new(MockTokenStore))
		access, err := jwtService.GenerateAccessToken(user.ID, user.Email, model.RolUser)
		require.NoError(t, err)

		_, err = service.RefreshToken(context.Background(), access)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("revoked refresh token", func(t *testing.T) {
		tokens := new(MockTokenStore)
		service, jwtService := newTestAuthService(new(MockUsuarioRepository), new(MockRolRepository), tokens)
		tokenID, refresh, err := jwtService.GenerateRefreshToken(user.ID, user.Email, model.RolUser)
		require.NoError(t, err)
		tokens.On("GetRefreshToken", mock.Anything, tokenID).Return(nil, auth.ErrRefreshTokenNotFound)

		_, err = service.RefreshToken(context.Background(), refresh)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestAuthService_Logout(t *testing.T) {
	tokens := new(MockTokenStore)
	service, jwtService := newTestAuthService(new(MockUsuarioRepository), new(MockRolRepository), tokens)
	userID := model.NewID()

	refreshID, refresh, err := jwtService.GenerateRefreshToken(userID, "a@example.com", model.RolUser)
	require.NoError(t, err)
	access, err := jwtService.GenerateAccessToken(userID, "a@example.com", model.RolUser)
	require.NoError(t, err)
	claims, err := jwtService.ValidateAccessToken(access)
	require.NoError(t, err)

	tokens.On("DeleteRefreshToken", mock.Anything, refreshID).Return(nil)
	tokens.On("BlacklistAccessToken", mock.Anything, claims.ID, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 0 && ttl <= time.Hour
	})).Return(nil)

	require.NoError(t, service.Logout(context.Background(), refresh, claims))
	tokens.AssertExpectations(t)
}
