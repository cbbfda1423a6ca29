package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "festivales/docs" // swagger docs

	"github.com/labstack/echo/v4"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"festivales/internal/auth"
	"festivales/internal/cache"
	"festivales/internal/config"
	"festivales/internal/db"
	"festivales/internal/handler"
	"festivales/internal/logger"
	"festivales/internal/repository"
	"festivales/internal/router"
	"festivales/internal/service"
)

const shutdownTimeout = 15 * time.Second

// @title Festivales API
// @version 1.0
// @description Catalog, workshops with seat capacity, registrations and payments for cultural events.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Bootstrap().Fatal("load config", zap.Error(err))
	}

	log, flush := logger.New(logger.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON, File: cfg.LogFile})
	defer flush()

	gormDB, err := db.NewMySQL(db.Options{
		DSN:             cfg.MySQLDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		LogLevel:        cfg.DBLogLevel,
	})
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}

	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.Fatal("reset database", zap.Error(err))
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Warn("redis unreachable, sessions and caching degrade", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	cancel()

	// Initialize repositories
	usuarioRepo := repository.NewUsuarioRepository(gormDB)
	rolRepo := repository.NewRolRepository(gormDB)
	categoriaRepo := repository.NewCategoriaRepository(gormDB)
	subcategoriaRepo := repository.NewSubcategoriaRepository(gormDB)
	servicioRepo := repository.NewServicioRepository(gormDB)
	festivalRepo := repository.NewFestivalRepository(gormDB)
	tallerRepo := repository.NewTallerRepository(gormDB)
	bloqueRepo := repository.NewBloqueRepository(gormDB)
	inscripcionRepo := repository.NewInscripcionRepository(gormDB)
	detalleRepo := repository.NewDetalleRepository(gormDB)
	pagoRepo := repository.NewPagoRepository(gormDB)
	historialRepo := repository.NewHistorialRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn, cfg.JWTRefreshExpires)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	historial := service.NewHistorialService(historialRepo, log.Named("historial"))
	capacity := service.NewCapacityService(tallerRepo, bloqueRepo, log.Named("capacity"))
	rolService := service.NewRolService(rolRepo, cacheClient)
	authService := service.NewAuthService(usuarioRepo, rolService, jwtService, tokenStore, cfg.BcryptCost)
	usuarioService := service.NewUsuarioService(usuarioRepo, rolRepo, cfg.BcryptCost)
	categoriaService := service.NewCategoriaService(categoriaRepo)
	subcategoriaService := service.NewSubcategoriaService(subcategoriaRepo, categoriaRepo)
	servicioService := service.NewServicioService(servicioRepo, subcategoriaRepo)
	festivalService := service.NewFestivalService(festivalRepo, categoriaRepo)
	tallerService := service.NewTallerService(tallerRepo, subcategoriaRepo, capacity)
	bloqueService := service.NewBloqueService(bloqueRepo, tallerRepo, capacity)
	inscripcionService := service.NewInscripcionService(inscripcionRepo, usuarioRepo)
	detalleService := service.NewDetalleService(detalleRepo, inscripcionRepo, capacity, historial, log.Named("detalle"))
	pagoService := service.NewPagoService(pagoRepo, detalleRepo, usuarioRepo, historial)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, log, jwtService, tokenStore, router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Usuario:     handler.NewUsuarioHandler(usuarioService),
		Rol:         handler.NewRolHandler(rolService),
		Categoria:   handler.NewCategoriaHandler(categoriaService, subcategoriaService),
		Taller:      handler.NewTallerHandler(tallerService, bloqueService),
		Servicio:    handler.NewServicioHandler(servicioService, festivalService),
		Inscripcion: handler.NewInscripcionHandler(inscripcionService, detalleService),
		Pago:        handler.NewPagoHandler(pagoService, historial),
	})

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "localhost:" + cfg.ServerPort
	}
	log.Info("swagger documentation available", zap.String("url", "http://"+swaggerHost+"/swagger/index.html"))

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info("server starting", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	historial.Close()
	log.Info("server stopped")
}
