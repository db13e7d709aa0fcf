package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/agriscan/internal/imaging"
)

// EnvPrefix prefixes every environment override, e.g. AGRISCAN_SEED.
const EnvPrefix = "AGRISCAN"

// Config is the resolved runtime configuration.
type Config struct {
	// Catalog is a YAML label catalog path. Empty uses the built-in catalog.
	Catalog string `mapstructure:"catalog"`

	// Seed seeds the random scorer. Zero picks a seed from the clock.
	Seed uint64 `mapstructure:"seed"`

	// AnalyzeDelay is how long the shell shows the analyzing spinner.
	AnalyzeDelay time.Duration `mapstructure:"analyze_delay" validate:"gte=0"`

	Log   LogConfig   `mapstructure:"log"`
	Serve ServeConfig `mapstructure:"serve"`
	Scan  ScanConfig  `mapstructure:"scan"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
	File   string `mapstructure:"file"`
}

type ServeConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`

	// SessionTTL drops browser sessions idle for longer.
	SessionTTL  time.Duration `mapstructure:"session_ttl" validate:"gt=0"`
	MaxSessions int           `mapstructure:"max_sessions" validate:"gt=0"`
}

type ScanConfig struct {
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" validate:"gt=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// New returns a viper instance with defaults and AGRISCAN_* env overrides.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("catalog", "")
	v.SetDefault("seed", 0)
	v.SetDefault("analyze_delay", 2*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("serve.addr", ":3000")
	v.SetDefault("serve.session_ttl", time.Hour)
	v.SetDefault("serve.max_sessions", 10000)
	v.SetDefault("scan.max_upload_bytes", imaging.DefaultMaxBytes)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds command-line flags to config keys. Flags that are not
// defined on fs are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for key, flag := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// Load reads the optional config file and resolves the final Config.
// With an empty path, ./agriscan.yaml is used when present.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("agriscan")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}
