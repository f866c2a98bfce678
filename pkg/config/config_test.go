package config_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreMemory, cfg.Store.Driver)
	assert.True(t, cfg.Checkout.TaxRate.IsZero(), "la caja no cobra impuesto por defecto")
	assert.Equal(t, 8, cfg.Recommendation.Limit)
	assert.Equal(t, 200, cfg.Audit.QueryLimit)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("CHECKOUT_TAX_RATE", "0.08")
	t.Setenv("RECOMMENDATION_LIMIT", "12")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SWAGGER_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoreSQLite, cfg.Store.Driver)
	assert.True(t, cfg.Checkout.TaxRate.Equal(decimal.RequireFromString("0.08")))
	assert.Equal(t, 12, cfg.Recommendation.Limit)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.App.SwaggerEnabled)
}

func TestLoad_RechazaTasaFueraDeRango(t *testing.T) {
	t.Setenv("CHECKOUT_TAX_RATE", "8")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_RechazaDriverDesconocido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "firestore")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "farmacia", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/farmacia?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", c.ConnectionString())
}
