package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Catalogos-api/pkg/config"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, config.DriverMemory, cfg.DB.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 15*time.Minute, cfg.Blob.URLTTL)
	assert.Empty(t, cfg.Events.Brokers)
	assert.Equal(t, []string{"acme", "globex"}, cfg.Seed.GlobalTenants)
	assert.False(t, cfg.Seed.Demo)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "SQLite")
	v.Set("HTTP_PORT", "9000")
	v.Set("KAFKA_BROKERS", "k1:9092, k2:9092,")
	v.Set("SEED_DEMO", "true")
	v.Set("DB_PORT", "no-es-numero")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.Brokers)
	assert.True(t, cfg.Seed.Demo)
	assert.Equal(t, 5432, cfg.DB.Port, "un entero inválido usa el default")
}

func TestFromViper_DriversInvalidos(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "mongo")
	_, err := config.FromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("BLOB_DRIVER", "s3")
	_, err = config.FromViper(v)
	assert.Error(t, err, "s3 sin bucket")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "catalogos", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/catalogos?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
