package account

import (
	"strings"
	"time"

	"github.com/n10ty/account/storage"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	RouterGorilla = "gorilla"
	RouterGin     = "gin"
)

type Config struct {
	Host           string
	Secret         string
	DisableXSRF    bool
	TokenDuration  time.Duration
	CookieDuration time.Duration
	Storage        storage.Config
	Router         string // gorilla or gin
	BasePath       string // where AccountState is mounted
	Listen         string
	LogLevel       string
	// DescribeMissing serves the descriptor of routes whose component was not
	// provided instead of failing to start.
	DescribeMissing bool
}

func ReadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "fatal error config file")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "fatal to read config file")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "localhost")
	v.SetDefault("tokenDuration", defaultTokenDuration)
	v.SetDefault("cookieDuration", 24*time.Hour)
	v.SetDefault("storage.type", string(storage.TypeInMemory))
	v.SetDefault("router", RouterGorilla)
	v.SetDefault("basePath", "")
	v.SetDefault("listen", ":8080")
	v.SetDefault("logLevel", "info")
	v.SetDefault("describeMissing", true)
}

func (cfg *Config) validate() error {
	if cfg.Secret == "" {
		return errors.New("secret is required")
	}
	switch cfg.Router {
	case RouterGorilla, RouterGin:
	default:
		return errors.Errorf("unknown router %q", cfg.Router)
	}
	if cfg.BasePath != "" && !strings.HasPrefix(cfg.BasePath, "/") {
		return errors.Errorf("base path %q must start with /", cfg.BasePath)
	}
	return nil
}
