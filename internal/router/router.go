package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"festivales/internal/auth"
	"festivales/internal/config"
	apperrors "festivales/internal/errors"
	"festivales/internal/handler"
	appmw "festivales/internal/middleware"
	"festivales/internal/model"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Usuario     *handler.UsuarioHandler
	Rol         *handler.RolHandler
	Categoria   *handler.CategoriaHandler
	Taller      *handler.TallerHandler
	Servicio    *handler.ServicioHandler
	Inscripcion *handler.InscripcionHandler
	Pago        *handler.PagoHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger *zap.Logger,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	h Handlers,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(appmw.AccessLog(logger))
	e.Use(appmw.Metrics())

	e.Validator = handler.NewValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	secured := api.Group("", appmw.JWT(jwtService, tokenStore, logger))
	admin := appmw.RequireRole(model.RolAdmin)

	// Auth
	loginLimiter := middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.LoginRateLimit)),
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, apperrors.ErrorResponse{
				Error: "too many login attempts",
				Code:  "RATE_LIMITED",
			})
		},
	})
	api.POST("/auth/login", h.Auth.Login, loginLimiter)
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/register-user", h.Auth.RegisterUser)
	api.POST("/auth/refresh", h.Auth.Refresh)
	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/me", h.Auth.Me)

	// Usuarios and roles
	usuarios := secured.Group("/usuarios", admin)
	usuarios.POST("", h.Usuario.CreateUsuario)
	usuarios.GET("", h.Usuario.ListUsuarios)
	usuarios.GET("/:id", h.Usuario.GetUsuario)
	usuarios.PUT("/:id", h.Usuario.UpdateUsuario)
	usuarios.DELETE("/:id", h.Usuario.DeleteUsuario)

	roles := secured.Group("/roles", admin)
	roles.POST("", h.Rol.CreateRol)
	roles.GET("", h.Rol.ListRoles)
	roles.GET("/:id", h.Rol.GetRol)
	roles.PUT("/:id", h.Rol.UpdateRol)
	roles.DELETE("/:id", h.Rol.DeleteRol)

	// Catalog reads are public, writes need an admin token.
	api.GET("/categorias", h.Categoria.ListCategorias)
	api.GET("/categorias/tipo/:tipo", h.Categoria.ListCategoriasByTipo)
	api.GET("/categorias/:id", h.Categoria.GetCategoria)
	categorias := secured.Group("/categorias", admin)
	categorias.POST("", h.Categoria.CreateCategoria)
	categorias.PUT("/:id", h.Categoria.UpdateCategoria)
	categorias.PUT("/:id/desactivar", h.Categoria.DesactivarCategoria)
	categorias.PUT("/:id/activar", h.Categoria.ActivarCategoria)
	categorias.DELETE("/:id", h.Categoria.DeleteCategoria)

	api.GET("/subcategorias", h.Categoria.ListSubcategorias)
	api.GET("/subcategorias/categoria/:idCategoria", h.Categoria.ListSubcategoriasByCategoria)
	api.GET("/subcategorias/:id", h.Categoria.GetSubcategoria)
	subcategorias := secured.Group("/subcategorias", admin)
	subcategorias.POST("", h.Categoria.CreateSubcategoria)
	subcategorias.PATCH("/:id", h.Categoria.UpdateSubcategoria)
	subcategorias.PATCH("/:id/estado", h.Categoria.CambiarEstadoSubcategoria)
	subcategorias.DELETE("/:id", h.Categoria.DeleteSubcategoria)

	api.GET("/talleres", h.Taller.ListTalleres)
	api.GET("/talleres/activos", h.Taller.ListTalleresActivos)
	api.GET("/talleres/proximos", h.Taller.ListTalleresProximos)
	api.GET("/talleres/subcategoria/:id", h.Taller.ListTalleresBySubcategoria)
	api.GET("/talleres/:id", h.Taller.GetTaller)
	talleres := secured.Group("/talleres", admin)
	talleres.POST("", h.Taller.CreateTaller)
	talleres.PATCH("/:id", h.Taller.UpdateTaller)
	talleres.PATCH("/:id/estado", h.Taller.CambiarEstadoTaller)
	talleres.PATCH("/:id/cupo", h.Taller.ReservarCupoTaller)
	talleres.POST("/:id/cupo/liberar", h.Taller.LiberarCupoTaller)
	talleres.DELETE("/:id", h.Taller.DeleteTaller)

	api.GET("/bloques", h.Taller.ListBloques)
	api.GET("/bloques/taller/:idTaller", h.Taller.ListBloquesByTaller)
	api.GET("/bloques/:id", h.Taller.GetBloque)
	bloques := secured.Group("/bloques", admin)
	bloques.POST("", h.Taller.CreateBloque)
	bloques.PATCH("/:id", h.Taller.UpdateBloque)
	bloques.PATCH("/:id/estado", h.Taller.CambiarEstadoBloque)
	bloques.PATCH("/:id/cupo", h.Taller.ReservarCupoBloque)
	bloques.POST("/:id/cupo/liberar", h.Taller.LiberarCupoBloque)
	bloques.DELETE("/:id", h.Taller.DeleteBloque)

	api.GET("/servicios", h.Servicio.ListServicios)
	api.GET("/servicios/subcategoria/:id", h.Servicio.ListServiciosBySubcategoria)
	api.GET("/servicios/categoria/:id", h.Servicio.ListServiciosByCategoria)
	api.GET("/servicios/:id", h.Servicio.GetServicio)
	servicios := secured.Group("/servicios", admin)
	servicios.POST("", h.Servicio.CreateServicio)
	servicios.PATCH("/:id", h.Servicio.UpdateServicio)
	servicios.PATCH("/:id/estado", h.Servicio.CambiarEstadoServicio)
	servicios.DELETE("/:id", h.Servicio.DeleteServicio)

	api.GET("/festivales", h.Servicio.ListFestivales)
	api.GET("/festivales/proximos", h.Servicio.ListFestivalesProximos)
	api.GET("/festivales/categoria/:id", h.Servicio.ListFestivalesByCategoria)
	api.GET("/festivales/tipo/:tipo", h.Servicio.ListFestivalesByTipo)
	api.GET("/festivales/:id", h.Servicio.GetFestival)
	festivales := secured.Group("/festivales", admin)
	festivales.POST("", h.Servicio.CreateFestival)
	festivales.PATCH("/:id", h.Servicio.UpdateFestival)
	festivales.PATCH("/:id/estado", h.Servicio.CambiarEstadoFestival)
	festivales.DELETE("/:id", h.Servicio.DeleteFestival)

	// Registrations
	inscripciones := secured.Group("/inscripciones")
	inscripciones.POST("", h.Inscripcion.CreateInscripcion)
	inscripciones.GET("", h.Inscripcion.ListInscripciones)
	inscripciones.GET("/estadisticas", h.Inscripcion.EstadisticasInscripciones, admin)
	inscripciones.GET("/usuario/:id", h.Inscripcion.ListInscripcionesByUsuario)
	inscripciones.GET("/estado/:estado", h.Inscripcion.ListInscripcionesByEstado)
	inscripciones.GET("/:id", h.Inscripcion.GetInscripcion)
	inscripciones.PATCH("/:id", h.Inscripcion.UpdateInscripcion)
	inscripciones.PATCH("/:id/estado", h.Inscripcion.CambiarEstadoInscripcion)
	inscripciones.DELETE("/:id", h.Inscripcion.DeleteInscripcion)

	detalles := secured.Group("/detalles")
	detalles.POST("", h.Inscripcion.CreateDetalle)
	detalles.GET("", h.Inscripcion.ListDetalles)
	detalles.GET("/inscripcion/:id", h.Inscripcion.ListDetallesByInscripcion)
	detalles.GET("/taller/:id", h.Inscripcion.ListDetallesByTaller)
	detalles.GET("/bloque/:id", h.Inscripcion.ListDetallesByBloque)
	detalles.GET("/estadisticas/taller/:id", h.Inscripcion.EstadisticasTaller)
	detalles.GET("/:id", h.Inscripcion.GetDetalle)
	detalles.PATCH("/:id", h.Inscripcion.UpdateDetalle)
	detalles.PATCH("/:id/estado", h.Inscripcion.CambiarEstadoDetalle)
	detalles.DELETE("/:id", h.Inscripcion.DeleteDetalle)

	pagos := secured.Group("/pagos")
	pagos.POST("", h.Pago.CreatePago)
	pagos.GET("", h.Pago.ListPagos)
	pagos.GET("/estadisticas", h.Pago.EstadisticasPagos, admin)
	pagos.GET("/usuario/:id", h.Pago.ListPagosByUsuario)
	pagos.GET("/detalle/:id", h.Pago.ListPagosByDetalle)
	pagos.GET("/:id", h.Pago.GetPago)
	pagos.PATCH("/:id", h.Pago.UpdatePago)
	pagos.PATCH("/:id/estado", h.Pago.CambiarEstadoPago)
	pagos.DELETE("/:id", h.Pago.DeletePago)

	historial := secured.Group("/historial")
	historial.GET("/usuario/:id", h.Pago.HistorialByUsuario)
	historial.GET("/detalle/:id", h.Pago.HistorialByDetalle)
}
