package config

import (
	"fmt"
	"time"

	"github.com/travelswift/booking-system/pkg/configparser"
)

// Config contains all configuration variables of the application
type (
	Config struct {
		Server     ServerConfig
		Database   DatabaseConfig
		Redis      RedisConfig
		RabbitMQ   RabbitMQConfig
		Auth       Auth
		Simulation SimulationConfig
	}

	ServerConfig struct {
		Port     string `env:"SERVER_PORT" default:"3000"`
		LogLevel string `env:"SERVER_LOG_LEVEL" default:"info"`
	}

	DatabaseConfig struct {
		Host     string `env:"DATABASE_HOST" default:"localhost"`
		Port     string `env:"DATABASE_PORT" default:"5432"`
		User     string `env:"DATABASE_USER" default:"booking_user"`
		Password string `env:"DATABASE_PASSWORD" default:"booking_pass"`
		Database string `env:"DATABASE_DATABASE" default:"booking_db"`

		// Enabled switches the booking ledger and refresh token store
		// from in-memory to postgres.
		Enabled bool `env:"DATABASE_ENABLED" default:"false"`

		MaxConns        int32         `env:"DATABASE_MAXCONNS" default:"20"`
		MinConns        int32         `env:"DATABASE_MINCONNS" default:"2"`
		MaxConnLifetime time.Duration `env:"DATABASE_MAXCONNLIFETIME" default:"30m"`
		MaxConnIdleTime time.Duration `env:"DATABASE_MAXCONNIDLETIME" default:"5m"`
	}

	RedisConfig struct {
		Host     string `env:"REDIS_HOST" default:"localhost"`
		Port     string `env:"REDIS_PORT" default:"6379"`
		Password string `env:"REDIS_PASSWORD" default:""`
		DB       int    `env:"REDIS_DB" default:"0"`

		// Enabled switches session profile persistence from in-memory
		// to redis.
		Enabled bool `env:"REDIS_ENABLED" default:"false"`
	}

	RabbitMQConfig struct {
		Host     string `env:"RABBITMQ_HOST" default:"localhost"`
		Port     string `env:"RABBITMQ_PORT" default:"5672"`
		User     string `env:"RABBITMQ_USER" default:"guest"`
		Password string `env:"RABBITMQ_PASSWORD" default:"guest"`

		// Enabled controls whether booking events are published at all.
		Enabled bool `env:"RABBITMQ_ENABLED" default:"false"`
	}

	Auth struct {
		AccessTokenTTL  time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" default:"15m"`
		RefreshTokenTTL time.Duration `env:"AUTH_REFRESH_TOKEN_TTL" default:"168h"`
		JWTSecret       string        `env:"AUTH_JWT_SECRET" default:"supersecretkey"`
	}

	// SimulationConfig tunes the simulated upstreams: how long a
	// search appears to take and how flaky the UPI gateway is.
	SimulationConfig struct {
		SearchLatency  time.Duration `env:"SIMULATION_SEARCH_LATENCY" default:"1500ms"`
		UPILatency     time.Duration `env:"SIMULATION_UPI_LATENCY" default:"2s"`
		UPIDeclineRate float64       `env:"SIMULATION_UPI_DECLINE_RATE" default:"0.2"`
	}
)

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

func (c RabbitMQConfig) GetDSN() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.User,
		c.Password,
		c.Host,
		c.Port,
	)
}

func (c RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func (c RedisConfig) GetPassword() string {
	return c.Password
}

func (c RedisConfig) GetDB() int {
	return c.DB
}

func NewConfig(filepath string) (*Config, error) {
	cfg := &Config{}

	// Loading enviromental variables and parsing to config struct.
	if err := configparser.LoadAndParseYaml(filepath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	return cfg, nil
}
