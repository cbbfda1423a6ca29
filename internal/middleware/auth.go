package middleware

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"festivales/internal/auth"
	apperrors "festivales/internal/errors"
)

// ClaimsKey is the echo context key holding the caller's *auth.Claims.
const ClaimsKey = "claims"

var errTokenRevoked = errors.New("token revoked")

// JWT authenticates the request with a bearer access token. Refresh tokens
// and blacklisted access tokens are rejected.
func JWT(jwtService *auth.JWTService, tokens auth.TokenStoreInterface, logger *zap.Logger) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ClaimsKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ValidateAccessToken(token)
			if err != nil {
				return nil, err
			}
			revoked, err := tokens.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID)
			if err != nil {
				return nil, err
			}
			if revoked {
				return nil, errTokenRevoked
			}
			return claims, nil
		},
		SuccessHandler: func(c echo.Context) {
			if claims, ok := c.Get(ClaimsKey).(*auth.Claims); ok {
				req := c.Request()
				c.SetRequest(req.WithContext(auth.WithClaims(req.Context(), claims)))
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			logger.Debug("rejected token", zap.String("path", c.Path()), zap.Error(err))
			msg := "invalid or expired token"
			var missing *echojwt.TokenExtractionError
			if errors.As(err, &missing) {
				msg = "missing bearer token"
			}
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: msg,
				Code:  "UNAUTHORIZED",
			})
		},
	})
}

// RequireRole lets the request through only when the token's role is one of
// roles. It must run after JWT.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ClaimsKey).(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "missing bearer token",
					Code:  "UNAUTHORIZED",
				})
			}
			if _, ok := allowed[claims.Rol]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Error: "insufficient permissions",
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}
