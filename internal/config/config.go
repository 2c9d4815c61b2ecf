package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Sim      SimConfig
	Store    StoreConfig
	Database DatabaseConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type LoggerConfig struct {
	Level  string
	Format string
}

// SimConfig controls the seeds and playback speed of every simulation.
type SimConfig struct {
	ProjectSeed  uint32
	CurveSeed    uint32
	DataGenSeed  uint32
	Speed        float64
	ArtifactsDir string
	SeedExamples bool
}

type StoreConfig struct {
	Driver string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN builds a postgres connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("SIM_PROJECT_SEED", 1337)
	v.SetDefault("SIM_CURVE_SEED", 123)
	v.SetDefault("SIM_DATAGEN_SEED", 42)
	v.SetDefault("SIM_SPEED", 1.0)
	v.SetDefault("SIM_SEED_EXAMPLES", true)
	v.SetDefault("ARTIFACTS_DIR", "")
	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "postgres")
	v.SetDefault("DATABASE_NAME", "finetune_sim")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	// Env
	v.AutomaticEnv()

	lifetime, err := time.ParseDuration(v.GetString("DATABASE_CONN_MAX_LIFETIME"))
	if err != nil {
		lifetime = 30 * time.Minute
	}

	driver := v.GetString("STORE_DRIVER")
	if driver != StoreMemory && driver != StorePostgres {
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}
	speed := v.GetFloat64("SIM_SPEED")
	if speed <= 0 {
		return nil, fmt.Errorf("SIM_SPEED must be positive, got %v", speed)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Sim: SimConfig{
			ProjectSeed:  v.GetUint32("SIM_PROJECT_SEED"),
			CurveSeed:    v.GetUint32("SIM_CURVE_SEED"),
			DataGenSeed:  v.GetUint32("SIM_DATAGEN_SEED"),
			Speed:        speed,
			ArtifactsDir: v.GetString("ARTIFACTS_DIR"),
			SeedExamples: v.GetBool("SIM_SEED_EXAMPLES"),
		},
		Store: StoreConfig{
			Driver: driver,
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetInt("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: lifetime,
		},
	}

	return cfg, nil
}
