package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	MySQLDSN          string        `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/festivales?charset=utf8mb4&parseTime=True&loc=Local"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	DBLogLevel        string        `env:"DB_LOG_LEVEL" envDefault:"warn"`
	ResetDB           bool          `env:"RESET_DB" envDefault:"false"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`
	RedisPass string `env:"REDIS_PASSWORD"`

	JWTSecret         string        `env:"JWT_SECRET" envDefault:"change-me"`
	JWTExpiresIn      time.Duration `env:"JWT_EXPIRES_IN" envDefault:"1h"`
	JWTRefreshExpires time.Duration `env:"JWT_REFRESH_EXPIRES_IN" envDefault:"168h"`
	BcryptCost        int           `env:"BCRYPT_COST" envDefault:"12"`
	LoginRateLimit    float64       `env:"LOGIN_RATE_LIMIT" envDefault:"5"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"LOG_JSON" envDefault:"true"`
	LogFile  string `env:"LOG_FILE"`

	SwaggerHost string `env:"SWAGGER_HOST"`
}

// Load reads an optional .env file and then parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.BcryptCost < 10 {
		cfg.BcryptCost = 10
	}
	return cfg, nil
}
