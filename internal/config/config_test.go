package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, uint32(1337), cfg.Sim.ProjectSeed)
	assert.Equal(t, uint32(123), cfg.Sim.CurveSeed)
	assert.Equal(t, uint32(42), cfg.Sim.DataGenSeed)
	assert.Equal(t, 1.0, cfg.Sim.Speed)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SIM_SPEED", "4")
	t.Setenv("SIM_CURVE_SEED", "7")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_HOST", "db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.Sim.Speed)
	assert.Equal(t, uint32(7), cfg.Sim.CurveSeed)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, "postgres://postgres:postgres@db:5432/finetune_sim?sslmode=disable", cfg.Database.DSN())
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SIM_SPEED", "0")
	_, err = Load()
	assert.Error(t, err)
}
