package service

import (
	"context"
	"fmt"

	"festivales/internal/auth"
	apperrors "festivales/internal/errors"
	"festivales/internal/model"
	"festivales/internal/repository"
)

// UserSummary is the session view of a user.
type UserSummary struct {
	ID       string `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
	Rol      string `json:"rol"`
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         UserSummary `json:"user"`
}

func summarize(u *model.Usuario, rol string) UserSummary {
	return UserSummary{
		ID:       u.ID,
		Nombre:   u.Nombre,
		Apellido: u.Apellido,
		Email:    u.Email,
		Rol:      rol,
	}
}

// AuthService handles registration and sessions.
type AuthService interface {
	// Register creates a user with the role named rolNombre.
	Register(ctx context.Context, usuario *model.Usuario, password, rolNombre string) (*model.Usuario, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	// Logout drops the refresh token and blacklists the caller's access token.
	Logout(ctx context.Context, refreshToken string, access *auth.Claims) error
	Me(ctx context.Context, userID string) (*UserSummary, error)
}

type authService struct {
	usuarios    repository.UsuarioRepository
	roles       RolService
	credentials credentialStore
	jwtService  *auth.JWTService
	tokenStore  auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	usuarios repository.UsuarioRepository,
	roles RolService,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	bcryptCost int,
) AuthService {
	return &authService{
		usuarios:    usuarios,
		roles:       roles,
		credentials: newCredentialStore(usuarios, bcryptCost),
		jwtService:  jwtService,
		tokenStore:  tokenStore,
	}
}

func (s *authService) Register(ctx context.Context, usuario *model.Usuario, password, rolNombre string) (*model.Usuario, error) {
	rol, err := s.roles.FindByNombre(ctx, rolNombre)
	if err != nil {
		return nil, fmt.Errorf("resolve role: %w", err)
	}
	usuario.IDRol = rol.ID
	if err := s.credentials.create(ctx, usuario, password); err != nil {
		return nil, err
	}
	usuario.Rol = rol
	return usuario, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.credentials.verify(ctx, email, password)
	if err != nil {
		return nil, err
	}
	rol := u.RolNombre()

	accessToken, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, rol)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(u.ID, u.Email, rol)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	session := auth.Session{UserID: u.ID, Email: u.Email, Rol: rol}
	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, session, s.jwtService.RefreshExpiry()); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         summarize(u, rol),
	}, nil
}

// RefreshToken issues a new access token for a live refresh token. The role
// is read again so a changed role takes effect.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: invalid or expired refresh token", apperrors.ErrUnauthorized)
	}
	session, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil || session.UserID != claims.Subject {
		return "", fmt.Errorf("%w: invalid or expired refresh token", apperrors.ErrUnauthorized)
	}
	u, err := s.usuarios.FindByID(ctx, claims.Subject)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", fmt.Errorf("%w: user no longer exists", apperrors.ErrUnauthorized)
		}
		return "", fmt.Errorf("find usuario: %w", err)
	}
	if u.Estado != model.EstadoActivo {
		return "", fmt.Errorf("%w: user is inactive", apperrors.ErrUnauthorized)
	}

	accessToken, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, u.RolNombre())
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string, access *auth.Claims) error {
	if refreshToken != "" {
		claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
		if err != nil {
			return fmt.Errorf("%w: invalid refresh token", apperrors.ErrUnauthorized)
		}
		if access != nil && claims.Subject != access.Subject {
			return fmt.Errorf("%w: refresh token belongs to another user", apperrors.ErrForbidden)
		}
		if err := s.tokenStore.DeleteRefreshToken(ctx, claims.ID); err != nil {
			return fmt.Errorf("delete refresh token: %w", err)
		}
	}
	if access != nil && access.ID != "" {
		if ttl := auth.Remaining(access); ttl > 0 {
			if err := s.tokenStore.BlacklistAccessToken(ctx, access.ID, ttl); err != nil {
				return fmt.Errorf("blacklist access token: %w", err)
			}
		}
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID string) (*UserSummary, error) {
	if err := checkID(userID); err != nil {
		return nil, err
	}
	u, err := s.usuarios.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(err, "usuario", userID)
	}
	summary := summarize(u, u.RolNombre())
	return &summary, nil
}
