package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.App.HTTPAddr)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)

	sf, err := cfg.Storefront()
	require.NoError(t, err)
	assert.Equal(t, "1000", sf.StartingBalance.String())
	assert.Equal(t, "50", sf.Pricing.DeliveryFee.String())
	assert.Equal(t, "SMART10", sf.Pricing.Coupon.Code)
	assert.Equal(t, "BDT", sf.Currency)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeFile(t, `
app:
  http_addr: ":9090"
storage:
  driver: redis
store:
  starting_balance: "250.50"
`)
	t.Setenv("STOREFRONT_STORAGE__KEY_PREFIX", "shop:")
	t.Setenv("STOREFRONT_REDIS__ADDR", "cache:6379")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.App.HTTPAddr)
	assert.Equal(t, DriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "shop:", cfg.Storage.KeyPrefix)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)

	sf, err := cfg.Storefront()
	require.NoError(t, err)
	assert.Equal(t, "250.5", sf.StartingBalance.String())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base, err := Load("")
	require.NoError(t, err)

	cases := map[string]func(c *Config){
		"unknown driver":     func(c *Config) { c.Storage.Driver = "mongo" },
		"postgres dsn":       func(c *Config) { c.Storage.Driver = DriverPostgres; c.Postgres.DSN = "" },
		"missing addr":       func(c *Config) { c.App.HTTPAddr = "" },
		"bad balance":        func(c *Config) { c.Store.StartingBalance = "lots" },
		"negative fee":       func(c *Config) { c.Store.DeliveryFee = "-1" },
		"percent over 100":   func(c *Config) { c.Store.CouponPercent = "150" },
		"zero top-up":        func(c *Config) { c.Store.TopUpAmount = "0" },
		"probability over 1": func(c *Config) { c.Tracing.Probability = 2 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
