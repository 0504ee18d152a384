package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug   bool    `yaml:"debug" env:"DEBUG"`
	Limiter Limiter `yaml:"limiter"`
	Auth    Auth    `yaml:"auth"`
	Server  Server  `yaml:"server"`
	DB      DB      `yaml:"db"`
}

type Limiter struct {
	Enabled bool    `yaml:"enabled" env:"LIMITER_ENABLED"`
	Rps     float64 `yaml:"rps" env:"LIMITER_RPS" env-default:"20"`
	Burst   int     `yaml:"burst" env:"LIMITER_BURST" env-default:"5"`
}

type Auth struct {
	BcryptCost int `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"12"`
}

type Server struct {
	Port string `yaml:"port" env:"SERVER_PORT" env-default:"8000"`
	Host string `yaml:"host" env:"SERVER_HOST" env-default:"localhost"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"20s"`
}

type DB struct {
	Dsn             string        `yaml:"dsn" env:"DB_DSN" env-required:"true"`
	MaxConns        int           `yaml:"max_conns" env-default:"25"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env-default:"10m"`
	Migrate         bool          `yaml:"migrate" env:"DB_MIGRATE" env-default:"true"`
}

// MustLoad reads the yaml file at configPath, overriding values from the
// environment (a .env file in the working directory is loaded first if present).
func MustLoad(configPath string) *Config {
	var cfg Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic(fmt.Errorf("config file %s not found", configPath))
	}
	_ = godotenv.Load()
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic(err)
	}

	return &cfg
}
