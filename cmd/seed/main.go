package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"festivales/internal/auth"
	"festivales/internal/config"
	"festivales/internal/db"
	apperrors "festivales/internal/errors"
	"festivales/internal/logger"
	"festivales/internal/model"
	"festivales/internal/repository"
	"festivales/internal/service"
)

// seedAdmin is read from the environment on top of the server config.
type seedAdmin struct {
	Email    string `env:"SEED_ADMIN_EMAIL"`
	Password string `env:"SEED_ADMIN_PASSWORD"`
	Nombre   string `env:"SEED_ADMIN_NOMBRE" envDefault:"Admin"`
	Apellido string `env:"SEED_ADMIN_APELLIDO" envDefault:"Festivales"`
	DNI      string `env:"SEED_ADMIN_DNI" envDefault:"00000000"`
}

var defaultRoles = []model.Rol{
	{Nombre: model.RolAdmin, Descripcion: "Platform administrator", Permisos: []string{"*"}},
	{Nombre: model.RolUser, Descripcion: "Registered participant", Permisos: []string{}},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Bootstrap().Fatal("load config", zap.Error(err))
	}
	log, flush := logger.New(logger.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	defer flush()

	var admin seedAdmin
	if err := env.Parse(&admin); err != nil {
		log.Fatal("parse seed env", zap.Error(err))
	}

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
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	ctx := context.Background()
	rolService := service.NewRolService(repository.NewRolRepository(gormDB), nil)

	created, err := seedRoles(ctx, rolService)
	if err != nil {
		log.Fatal("seed roles", zap.Error(err))
	}
	log.Info("roles seeded", zap.Int("created", created), zap.Int("total", len(defaultRoles)))

	if admin.Email == "" || admin.Password == "" {
		log.Info("SEED_ADMIN_EMAIL or SEED_ADMIN_PASSWORD not set, skipping admin user")
		return
	}

	authService := service.NewAuthService(
		repository.NewUsuarioRepository(gormDB),
		rolService,
		auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiresIn, cfg.JWTRefreshExpires),
		nil,
		cfg.BcryptCost,
	)
	ok, err := seedAdminUser(ctx, authService, admin)
	if err != nil {
		log.Fatal("seed admin user", zap.Error(err))
	}
	if ok {
		log.Info("admin user created", zap.String("email", admin.Email))
	} else {
		log.Info("admin user already exists", zap.String("email", admin.Email))
	}
}

// seedRoles creates the missing default roles and reports how many were new.
func seedRoles(ctx context.Context, roles service.RolService) (int, error) {
	created := 0
	for _, r := range defaultRoles {
		rol := r
		if _, err := roles.Create(ctx, &rol); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				continue
			}
			return created, fmt.Errorf("create role %s: %w", r.Nombre, err)
		}
		created++
	}
	return created, nil
}

func seedAdminUser(ctx context.Context, authService service.AuthService, a seedAdmin) (bool, error) {
	_, err := authService.Register(ctx, &model.Usuario{
		Nombre:   a.Nombre,
		Apellido: a.Apellido,
		DNI:      a.DNI,
		Email:    a.Email,
	}, a.Password, model.RolAdmin)
	if errors.Is(err, apperrors.ErrConflict) {
		return false, nil
	}
	return err == nil, err
}
