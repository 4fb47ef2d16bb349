// Package config loads storefront settings from defaults, an optional YAML
// file and STOREFRONT_ environment variables, in that order.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"

	"storefront/pkg/money"
	"storefront/pkg/pricing"
	"storefront/pkg/storefront"
)

// EnvPrefix is the prefix of overriding environment variables. Nested keys
// use a double underscore, e.g. STOREFRONT_STORAGE__DRIVER.
const EnvPrefix = "STOREFRONT_"

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	App struct {
		Name     string `koanf:"name"`
		HTTPAddr string `koanf:"http_addr"`
		LogLevel string `koanf:"log_level"`
		LogFile  string `koanf:"log_file"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout  time.Duration `koanf:"read_timeout"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
	} `koanf:"http"`

	Storage struct {
		Driver    string `koanf:"driver"`
		KeyPrefix string `koanf:"key_prefix"`
	} `koanf:"storage"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
	} `koanf:"redis"`

	Postgres struct {
		DSN string `koanf:"dsn"`
	} `koanf:"postgres"`

	Catalog struct {
		URL     string        `koanf:"url"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"catalog"`

	Store struct {
		StartingBalance string `koanf:"starting_balance"`
		TopUpAmount     string `koanf:"top_up_amount"`
		Currency        string `koanf:"currency"`
		DeliveryFee     string `koanf:"delivery_fee"`
		ShippingFee     string `koanf:"shipping_fee"`
		CouponCode      string `koanf:"coupon_code"`
		CouponPercent   string `koanf:"coupon_percent"`
	} `koanf:"store"`

	Tracing struct {
		Host        string  `koanf:"host"`
		Probability float64 `koanf:"probability"`
	} `koanf:"tracing"`
}

var defaults = map[string]any{
	"app.name":               "storefront",
	"app.http_addr":          ":8080",
	"app.log_level":          "info",
	"http.read_timeout":      "10s",
	"http.write_timeout":     "10s",
	"storage.driver":         DriverMemory,
	"redis.addr":             "localhost:6379",
	"catalog.url":            "https://fakestoreapi.com/products",
	"catalog.timeout":        "5s",
	"store.starting_balance": "1000",
	"store.top_up_amount":    "1000",
	"store.currency":         "BDT",
	"store.delivery_fee":     "50",
	"store.shipping_fee":     "30",
	"store.coupon_code":      "SMART10",
	"store.coupon_percent":   "10",
	"tracing.probability":    0.05,
}

// Load builds the configuration. path may be empty; a non-empty path that
// does not exist is an error.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	for key, v := range defaults {
		if err := k.Set(key, v); err != nil {
			return Config{}, errors.Wrapf(err, "default %s", key)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, errors.Wrapf(err, "load %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, errors.Wrap(err, "env overlay")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by STOREFRONT_CONFIG, if any.
func LoadFromEnv() (Config, error) {
	return Load(os.Getenv(EnvPrefix + "CONFIG"))
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return errors.New("app.http_addr required")
	}
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis.addr required for the redis driver")
		}
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return errors.New("postgres.dsn required for the postgres driver")
		}
	default:
		return errors.Errorf("storage.driver %q: want memory, redis or postgres", c.Storage.Driver)
	}
	if c.Catalog.Timeout <= 0 {
		return errors.New("catalog.timeout must be positive")
	}
	if c.Tracing.Probability < 0 || c.Tracing.Probability > 1 {
		return errors.New("tracing.probability must be within [0, 1]")
	}
	_, err := c.Storefront()
	return err
}

// Storefront converts the store section into a storefront.Config.
func (c Config) Storefront() (storefront.Config, error) {
	fields := []struct {
		name string
		raw  string
	}{
		{"store.starting_balance", c.Store.StartingBalance},
		{"store.top_up_amount", c.Store.TopUpAmount},
		{"store.delivery_fee", c.Store.DeliveryFee},
		{"store.shipping_fee", c.Store.ShippingFee},
		{"store.coupon_percent", c.Store.CouponPercent},
	}
	vals := make([]decimal.Decimal, len(fields))
	for i, f := range fields {
		d, err := money.Parse(f.raw)
		if err != nil {
			return storefront.Config{}, errors.Wrap(err, f.name)
		}
		if d.IsNegative() {
			return storefront.Config{}, errors.Errorf("%s must not be negative", f.name)
		}
		vals[i] = d
	}
	if !vals[1].IsPositive() {
		return storefront.Config{}, errors.New("store.top_up_amount must be positive")
	}

	out := storefront.Config{
		StartingBalance: vals[0],
		TopUpAmount:     vals[1],
		Currency:        c.Store.Currency,
		Pricing: pricing.Config{
			DeliveryFee: vals[2],
			ShippingFee: vals[3],
			Coupon:      pricing.Coupon{Code: c.Store.CouponCode, Percent: vals[4]},
		},
	}
	if err := out.Pricing.Validate(); err != nil {
		return storefront.Config{}, err
	}
	return out, nil
}
